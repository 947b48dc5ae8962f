package handlers

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"winecompare/matching"
	apperrors "winecompare/server/errors"
	"winecompare/server/services"
)

// Имена полей multipart-формы. Исторические: так файлы называл
// веб-клиент первой версии, и существующие интеграции шлют именно их.
const (
	cellarFormField    = "livredecave"
	referenceFormField = "googlesheet"
)

// ComparisonHandler обработчик сверки и выгрузки её результатов
type ComparisonHandler struct {
	comparison     *services.ComparisonService
	store          *services.ResultsStore
	maxUploadBytes int64
}

// NewComparisonHandler создает обработчик сверки
func NewComparisonHandler(comparison *services.ComparisonService, store *services.ResultsStore, maxUploadBytes int64) *ComparisonHandler {
	return &ComparisonHandler{
		comparison:     comparison,
		store:          store,
		maxUploadBytes: maxUploadBytes,
	}
}

// HandleCompare сверяет загруженный журнал погреба с эталонной ведомостью
// @Summary Сверить журнал погреба с эталонной ведомостью
// @Description Принимает два файла (CSV или XLSX), проецирует их строки к каноническим записям и возвращает вина, отсутствующие в эталоне
// @Tags comparison
// @Accept multipart/form-data
// @Produce json
// @Param livredecave formData file true "Журнал погреба (Livre de Cave)"
// @Param googlesheet formData file true "Эталонная ведомость (Google Sheet)"
// @Param preset formData string false "Имя пресета политики (default, lenient)"
// @Param threshold formData number false "Переопределение порога сходства [0,100]"
// @Success 200 {object} models.CompareResponse "Результат сверки"
// @Failure 400 {object} ErrorResponse "Неверный запрос"
// @Failure 413 {object} ErrorResponse "Файл слишком велик"
// @Failure 500 {object} ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/compare [post]
func (h *ComparisonHandler) HandleCompare(c *gin.Context) {
	log.Printf("[HandleCompare] Начало сверки, request_id=%s", c.GetString("request_id"))

	cellarName, cellarData, err := h.readUpload(c, cellarFormField)
	if err != nil {
		SendAppError(c, err)
		return
	}

	referenceName, referenceData, err := h.readUpload(c, referenceFormField)
	if err != nil {
		SendAppError(c, err)
		return
	}

	threshold := -1.0
	if raw := c.PostForm("threshold"); raw != "" {
		threshold, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			SendJSONError(c, http.StatusBadRequest, "неверный формат threshold: "+raw)
			return
		}
	}

	response, err := h.comparison.Compare(c.Request.Context(), services.CompareUpload{
		CellarName:    cellarName,
		CellarData:    cellarData,
		ReferenceName: referenceName,
		ReferenceData: referenceData,
		Preset:        c.PostForm("preset"),
		Threshold:     threshold,
	})
	if err != nil {
		log.Printf("[HandleCompare] ✗ Ошибка сверки: %v", err)
		SendAppError(c, err)
		return
	}

	log.Printf("[HandleCompare] ✓ Сверка %s завершена: %d оценено, %d отсутствует",
		response.RunID, response.TotalEvaluated, response.MissingCount)
	SendJSONResponse(c, http.StatusOK, response)
}

// HandleDownloadMissing выгружает список отсутствующих вин завершенной сверки
// @Summary Выгрузить отсутствующие вина
// @Description Возвращает список отсутствующих вин сверки в формате xlsx, csv или json
// @Tags comparison
// @Produce octet-stream
// @Param id path string true "Run ID сверки"
// @Param format query string false "Формат выгрузки: xlsx (по умолчанию), csv, json"
// @Success 200 {file} file "Файл с отсутствующими винами"
// @Failure 400 {object} ErrorResponse "Неизвестный формат"
// @Failure 404 {object} ErrorResponse "Сверка не найдена или истекла"
// @Router /api/download/missing/{id} [get]
func (h *ComparisonHandler) HandleDownloadMissing(c *gin.Context) {
	runID := c.Param("id")

	format, err := matching.ParseExportFormat(c.DefaultQuery("format", string(matching.FormatExcel)))
	if err != nil {
		SendJSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	stored, ok := h.store.Get(runID)
	if !ok {
		SendJSONError(c, http.StatusNotFound, "сверка не найдена или срок хранения результата истек")
		return
	}

	filename := matching.DefaultFilename(format)
	c.Header("Content-Type", matching.ContentType(format))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	switch format {
	case matching.FormatCSV:
		err = matching.ExportMissingCSV(c.Writer, stored.Report)
	case matching.FormatExcel:
		err = matching.ExportMissingExcel(c.Writer, stored.Report)
	default:
		err = matching.ExportMissingJSON(c.Writer, stored.Report)
	}
	if err != nil {
		// Заголовки уже ушли: остается только залогировать
		log.Printf("[HandleDownloadMissing] ✗ Ошибка выгрузки %s: %v", runID, err)
		return
	}

	log.Printf("[HandleDownloadMissing] ✓ Выгрузка %s в формате %s", runID, format)
}

// readUpload читает один файл multipart-формы с контролем размера
func (h *ComparisonHandler) readUpload(c *gin.Context, field string) (string, []byte, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return "", nil, apperrors.NewValidationError(
			fmt.Sprintf("файл %q не передан", field), err)
	}

	if h.maxUploadBytes > 0 && fileHeader.Size > h.maxUploadBytes {
		return "", nil, apperrors.NewPayloadTooLargeError(
			fmt.Sprintf("файл %q больше лимита %d байт", field, h.maxUploadBytes), nil)
	}

	data, err := readAll(fileHeader)
	if err != nil {
		return "", nil, apperrors.NewValidationError(
			fmt.Sprintf("не удалось прочитать файл %q", field), err)
	}

	return fileHeader.Filename, data, nil
}

func readAll(fileHeader *multipart.FileHeader) ([]byte, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}
