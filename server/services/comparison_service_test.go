package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"winecompare/database"
	"winecompare/matching"
	apperrors "winecompare/server/errors"
)

// MockHistoryWriter is a mock for the HistoryWriter
type MockHistoryWriter struct {
	mock.Mock
}

func (m *MockHistoryWriter) SaveRun(run *database.ComparisonRun) error {
	args := m.Called(run)
	return args.Error(0)
}

// ComparisonServiceTestSuite is a test suite for ComparisonService
type ComparisonServiceTestSuite struct {
	suite.Suite
	service *ComparisonService
	store   *ResultsStore
	history *MockHistoryWriter
}

func (s *ComparisonServiceTestSuite) SetupTest() {
	s.store = NewResultsStore(0)
	s.history = new(MockHistoryWriter)
	s.service = NewComparisonService(matching.DefaultPolicy(), s.store, s.history)
}

// Колонки журнала: название в 2,4,5,6, год в 7, объем (л) в 8, LWIN в 10
func cellarCSV() []byte {
	return []byte("id;qte;producteur;region;cuvee;appellation;detail;millesime;volume;prix;lwin\n" +
		"1;6;Chateau Margaux;;;;;2015;0,75;;1011247\n" +
		"2;3;Petrus;;;;Pomerol;2010;0,75;;\n" +
		"3;1;Romanee Conti;;;;;2018;0,75;;\n")
}

// Колонки ведомости: название в 0, год в 2, объем (cl) в 3, LWIN в 6
func referenceCSV() []byte {
	return []byte("nom,region,millesime,contenance,prix,note,lwin\n" +
		"Chateau Margaux Premier Cru,Bordeaux,2015,75,,,1011247\n" +
		"Petrus Pomerol,Bordeaux,2010,75,,,\n")
}

func (s *ComparisonServiceTestSuite) defaultUpload() CompareUpload {
	return CompareUpload{
		CellarName:    "livre_de_cave.csv",
		CellarData:    cellarCSV(),
		ReferenceName: "google_sheet.csv",
		ReferenceData: referenceCSV(),
		Threshold:     -1,
	}
}

func (s *ComparisonServiceTestSuite) TestCompareHappyPath() {
	var saved *database.ComparisonRun
	s.history.On("SaveRun", mock.AnythingOfType("*database.ComparisonRun")).
		Run(func(args mock.Arguments) {
			saved = args.Get(0).(*database.ComparisonRun)
		}).
		Return(nil)

	resp, err := s.service.Compare(context.Background(), s.defaultUpload())

	s.Require().NoError(err)
	s.Require().NotNil(resp)
	s.NotEmpty(resp.RunID)
	s.Equal("default", resp.Preset)
	s.Equal(float64(70), resp.Threshold)

	// Margaux совпадает по ключу LWIN16 несмотря на разные названия,
	// Petrus по нечеткому сопоставлению, Romanee Conti отсутствует
	s.Equal(3, resp.TotalEvaluated)
	s.Equal(1, resp.MatchedExact)
	s.Equal(1, resp.MatchedFuzzy)
	s.Equal(1, resp.MissingCount)
	s.Require().Len(resp.Missing, 1)
	s.Equal("Romanee Conti", resp.Missing[0].DisplayName)

	// Сводки источников
	s.Equal("csv", resp.Cellar.Format)
	s.Equal(3, resp.Cellar.Stats.Projected)
	s.Equal(2, resp.Reference.Stats.Projected)

	// Отчет удержан для выгрузки
	stored, ok := s.store.Get(resp.RunID)
	s.Require().True(ok)
	s.Equal("livre_de_cave.csv", stored.CellarFile)
	s.Equal(1, stored.Report.MissingCount)

	// История получила итоговые счетчики
	s.history.AssertNumberOfCalls(s.T(), "SaveRun", 1)
	s.Require().NotNil(saved)
	s.Equal(resp.RunID, saved.ID)
	s.Equal(3, saved.TotalCellar)
	s.Equal(2, saved.TotalReference)
	s.Equal(1, saved.Missing)
	s.Equal("default", saved.Preset)
}

func (s *ComparisonServiceTestSuite) TestCompareLenientPreset() {
	s.history.On("SaveRun", mock.Anything).Return(nil)

	upload := s.defaultUpload()
	upload.Preset = "lenient"

	resp, err := s.service.Compare(context.Background(), upload)

	s.Require().NoError(err)
	s.Equal("lenient", resp.Preset)
	s.Equal(float64(40), resp.Threshold)
}

func (s *ComparisonServiceTestSuite) TestCompareThresholdOverride() {
	s.history.On("SaveRun", mock.Anything).Return(nil)

	upload := s.defaultUpload()
	upload.Threshold = 98

	resp, err := s.service.Compare(context.Background(), upload)

	s.Require().NoError(err)
	s.Equal(float64(98), resp.Threshold)
	// Petrus дает балл 100 и проходит даже поднятый порог
	s.Equal(1, resp.MatchedFuzzy)
}

func (s *ComparisonServiceTestSuite) TestCompareUnknownPreset() {
	upload := s.defaultUpload()
	upload.Preset = "aggressive"

	resp, err := s.service.Compare(context.Background(), upload)

	s.Require().Error(err)
	s.Nil(resp)

	var appErr *apperrors.AppError
	s.Require().True(errors.As(err, &appErr))
	s.Equal(http.StatusBadRequest, appErr.StatusCode())
}

func (s *ComparisonServiceTestSuite) TestCompareInvalidThreshold() {
	upload := s.defaultUpload()
	upload.Threshold = 150

	_, err := s.service.Compare(context.Background(), upload)

	var appErr *apperrors.AppError
	s.Require().True(errors.As(err, &appErr))
	s.Equal(http.StatusBadRequest, appErr.StatusCode())
}

func (s *ComparisonServiceTestSuite) TestCompareEmptyCellarFile() {
	upload := s.defaultUpload()
	upload.CellarData = nil

	_, err := s.service.Compare(context.Background(), upload)

	var appErr *apperrors.AppError
	s.Require().True(errors.As(err, &appErr))
	s.Equal(http.StatusBadRequest, appErr.StatusCode())
	s.Contains(appErr.UserMessage(), "livre_de_cave.csv")
}

func (s *ComparisonServiceTestSuite) TestCompareUnsupportedExtension() {
	upload := s.defaultUpload()
	upload.CellarName = "livre_de_cave.xls"

	_, err := s.service.Compare(context.Background(), upload)

	var appErr *apperrors.AppError
	s.Require().True(errors.As(err, &appErr))
	s.Equal(http.StatusBadRequest, appErr.StatusCode())
}

func (s *ComparisonServiceTestSuite) TestCompareHistoryFailureDoesNotFailRun() {
	s.history.On("SaveRun", mock.Anything).Return(errors.New("disk full"))

	resp, err := s.service.Compare(context.Background(), s.defaultUpload())

	s.Require().NoError(err)
	s.NotEmpty(resp.RunID)
}

func (s *ComparisonServiceTestSuite) TestCompareWithoutHistory() {
	service := NewComparisonService(matching.DefaultPolicy(), s.store, nil)

	resp, err := service.Compare(context.Background(), s.defaultUpload())

	s.Require().NoError(err)
	s.Equal(1, resp.MissingCount)
}

func (s *ComparisonServiceTestSuite) TestCompareCanceledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.service.Compare(ctx, s.defaultUpload())

	var appErr *apperrors.AppError
	s.Require().True(errors.As(err, &appErr))
	s.Equal(http.StatusServiceUnavailable, appErr.StatusCode())
}

func TestComparisonServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ComparisonServiceTestSuite))
}
