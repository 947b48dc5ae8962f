package matching

import (
	"reflect"
	"strings"
	"testing"

	"winecompare/matching/algorithms"
	"winecompare/wine"
)

// newTestRecord строит каноническую запись так же, как это делает
// проектор: нормализованное название и точный ключ при наличии кода
func newTestRecord(name string, vintage, volumeCL int, lwin7 string, sourceRow int) wine.Record {
	normalizer := algorithms.NewTextNormalizer()
	return wine.Record{
		DisplayName:    name,
		NormalizedName: normalizer.Normalize(name),
		Vintage:        vintage,
		VolumeCL:       volumeCL,
		LWIN7:          lwin7,
		ExactKey:       wine.BuildExactKey(lwin7, vintage, volumeCL, wine.KeyVolumeCL),
		SourceRow:      sourceRow,
	}
}

// Совпадение по ключу LWIN16 не смотрит на названия вовсе
func TestReconcile_ExactKeyMatchesDespiteNameDifference(t *testing.T) {
	engine := NewEngine()

	cellar := []wine.Record{
		newTestRecord("Ch. Margaux", 2015, 75, "1011247", 2),
	}
	reference := []wine.Record{
		newTestRecord("Chateau Margaux Premier Grand Cru Classe", 2015, 75, "1011247", 2),
	}

	report, err := engine.Reconcile(cellar, reference, DefaultPolicy())
	if err != nil {
		t.Fatalf("Reconcile вернул ошибку: %v", err)
	}

	if report.MatchedExact != 1 {
		t.Errorf("MatchedExact = %d, want 1", report.MatchedExact)
	}
	if report.MissingCount != 0 {
		t.Errorf("MissingCount = %d, want 0", report.MissingCount)
	}
}

// Запись с кодом LWIN7 сопоставляется только по ключу: если ключа нет
// в эталоне, приблизительная фаза не запускается даже при идентичном названии
func TestReconcile_ExactKeyStrictFastPath(t *testing.T) {
	engine := NewEngine()

	// Год в эталоне другой, значит ключ LWIN16 другой
	cellar := []wine.Record{
		newTestRecord("Chateau Latour", 2015, 75, "1012316", 2),
	}
	reference := []wine.Record{
		newTestRecord("Chateau Latour", 2016, 75, "1012316", 2),
	}

	report, err := engine.Reconcile(cellar, reference, DefaultPolicy())
	if err != nil {
		t.Fatalf("Reconcile вернул ошибку: %v", err)
	}

	if report.MissingCount != 1 {
		t.Fatalf("MissingCount = %d, want 1", report.MissingCount)
	}
	missing := report.Missing[0]
	if missing.Reason != reasonExactKeyMissing {
		t.Errorf("Reason = %q, want %q", missing.Reason, reasonExactKeyMissing)
	}
	// Приблизительная фаза не выполнялась, балла нет
	if missing.BestScore != nil {
		t.Errorf("BestScore = %v, want nil", *missing.BestScore)
	}
}

// Акценты и регистр не мешают полному совпадению нормализованных названий
func TestReconcile_AccentAndCaseInsensitiveMatch(t *testing.T) {
	engine := NewEngine()

	cellar := []wine.Record{
		newTestRecord("Château LAFITE-Rothschild", 2016, 75, "", 2),
	}
	reference := []wine.Record{
		newTestRecord("chateau lafite rothschild", 2016, 75, "", 2),
	}

	report, err := engine.Reconcile(cellar, reference, DefaultPolicy())
	if err != nil {
		t.Fatalf("Reconcile вернул ошибку: %v", err)
	}

	if report.MatchedFuzzy != 1 {
		t.Errorf("MatchedFuzzy = %d, want 1 (missing: %+v)", report.MatchedFuzzy, report.Missing)
	}
}

// Приблизительное совпадение с подтверждением по году и объему
func TestReconcile_FuzzyMatchWithCorroboration(t *testing.T) {
	engine := NewEngine()

	cellar := []wine.Record{
		newTestRecord("Domaine Roulot Meursault Les Tillets", 2018, 75, "", 2),
	}
	reference := []wine.Record{
		newTestRecord("Roulot Meursault Les Tillets", 2018, 75, "", 2),
	}

	report, err := engine.Reconcile(cellar, reference, DefaultPolicy())
	if err != nil {
		t.Fatalf("Reconcile вернул ошибку: %v", err)
	}

	if report.MatchedFuzzy != 1 {
		t.Errorf("MatchedFuzzy = %d, want 1 (missing: %+v)", report.MatchedFuzzy, report.Missing)
	}
}

// Высокое сходство названий при разных годах не дает совпадения:
// строгая политика требует равенства года или сентинела
func TestReconcile_VintageConflictRejectedDespiteHighScore(t *testing.T) {
	engine := NewEngine()

	cellar := []wine.Record{
		newTestRecord("Pétrus Pomerol", 2010, 75, "", 2),
	}
	reference := []wine.Record{
		newTestRecord("Petrus Pomerol", 2011, 75, "", 2),
	}

	report, err := engine.Reconcile(cellar, reference, DefaultPolicy())
	if err != nil {
		t.Fatalf("Reconcile вернул ошибку: %v", err)
	}

	if report.MissingCount != 1 {
		t.Fatalf("MissingCount = %d, want 1", report.MissingCount)
	}
	missing := report.Missing[0]
	if !strings.Contains(missing.Reason, "millésime différent (2010 vs 2011)") {
		t.Errorf("Reason = %q, ожидался конфликт миллезимов", missing.Reason)
	}
	if missing.BestScore == nil || *missing.BestScore < 95 {
		t.Errorf("BestScore = %v, ожидался балл полного совпадения названий", missing.BestScore)
	}

	// Мягкий пресет допускает разницу в один год
	lenient, err := engine.Reconcile(cellar, reference, LenientPolicy())
	if err != nil {
		t.Fatalf("Reconcile(lenient) вернул ошибку: %v", err)
	}
	if lenient.MatchedFuzzy != 1 {
		t.Errorf("lenient MatchedFuzzy = %d, want 1", lenient.MatchedFuzzy)
	}
}

// Сентинел NV совместим с любым годом эталона
func TestReconcile_SentinelVintageMatchesAnyYear(t *testing.T) {
	engine := NewEngine()

	cellar := []wine.Record{
		newTestRecord("Champagne Krug Grande Cuvee", wine.NoVintage, 75, "", 2),
	}
	reference := []wine.Record{
		newTestRecord("Krug Grande Cuvee", 2019, 75, "", 2),
	}

	report, err := engine.Reconcile(cellar, reference, DefaultPolicy())
	if err != nil {
		t.Fatalf("Reconcile вернул ошибку: %v", err)
	}

	if report.MatchedFuzzy != 1 {
		t.Errorf("MatchedFuzzy = %d, want 1 (missing: %+v)", report.MatchedFuzzy, report.Missing)
	}
}

// Соотношение объемов поглощает путаницу единиц: 75 против 7500
// означает сантилитры против миллилитров одной и той же бутылки
func TestReconcile_VolumeRatioAbsorbsUnitMismatch(t *testing.T) {
	engine := NewEngine()

	cellar := []wine.Record{
		newTestRecord("Champagne Salon Le Mesnil", 2012, 75, "", 2),
	}
	reference := []wine.Record{
		newTestRecord("Salon Le Mesnil", 2012, 7500, "", 2),
	}

	report, err := engine.Reconcile(cellar, reference, DefaultPolicy())
	if err != nil {
		t.Fatalf("Reconcile вернул ошибку: %v", err)
	}

	if report.MatchedFuzzy != 1 {
		t.Errorf("MatchedFuzzy = %d, want 1 (missing: %+v)", report.MatchedFuzzy, report.Missing)
	}
}

// Бутылка против магнума: разница объемов вне допуска и вне соотношений
func TestReconcile_VolumeConflictRejected(t *testing.T) {
	engine := NewEngine()

	cellar := []wine.Record{
		newTestRecord("Domaine de la Romanee Conti La Tache", 2015, 75, "", 2),
	}
	reference := []wine.Record{
		newTestRecord("Romanee Conti La Tache", 2015, 150, "", 2),
	}

	report, err := engine.Reconcile(cellar, reference, DefaultPolicy())
	if err != nil {
		t.Fatalf("Reconcile вернул ошибку: %v", err)
	}

	if report.MissingCount != 1 {
		t.Fatalf("MissingCount = %d, want 1", report.MissingCount)
	}
	if !strings.Contains(report.Missing[0].Reason, "contenance différente (75cl vs 150cl)") {
		t.Errorf("Reason = %q, ожидался конфликт объемов", report.Missing[0].Reason)
	}
}

// Порог монотонен: пара, проходящая мягкий порог, отклоняется строгим
func TestReconcile_ThresholdMonotonicity(t *testing.T) {
	engine := NewEngine()

	cellar := []wine.Record{
		newTestRecord("Les Clos Rouge", 2019, 75, "", 2),
	}
	reference := []wine.Record{
		newTestRecord("Les Clos Vert", 2019, 75, "", 2),
	}

	// Страховка фикстуры: балл пары должен лежать между порогами
	score := algorithms.NewScorer().BestRatio(cellar[0].NormalizedName, reference[0].NormalizedName)
	if score < 40 || score >= 70 {
		t.Fatalf("фикстура вне окна порогов: BestRatio = %v", score)
	}

	strict, err := engine.Reconcile(cellar, reference, DefaultPolicy())
	if err != nil {
		t.Fatalf("Reconcile(default) вернул ошибку: %v", err)
	}
	if strict.MissingCount != 1 {
		t.Errorf("default: MissingCount = %d, want 1", strict.MissingCount)
	}

	lenient, err := engine.Reconcile(cellar, reference, LenientPolicy())
	if err != nil {
		t.Fatalf("Reconcile(lenient) вернул ошибку: %v", err)
	}
	if lenient.MatchedFuzzy != 1 {
		t.Errorf("lenient: MatchedFuzzy = %d, want 1 (missing: %+v)", lenient.MatchedFuzzy, lenient.Missing)
	}
}

// Отбор по общим токенам отсекает кандидата с одним общим словом
func TestReconcile_TokenOverlapPruning(t *testing.T) {
	engine := NewEngine()

	cellar := []wine.Record{
		newTestRecord("Chateau Margaux", 2015, 75, "", 2),
	}
	reference := []wine.Record{
		// Одно общее слово "chateau"
		newTestRecord("Chateau Latour", 2015, 75, "", 2),
	}

	pruned, err := engine.Reconcile(cellar, reference, DefaultPolicy())
	if err != nil {
		t.Fatalf("Reconcile вернул ошибку: %v", err)
	}
	if pruned.MissingCount != 1 {
		t.Fatalf("MissingCount = %d, want 1", pruned.MissingCount)
	}
	if pruned.Missing[0].BestScore == nil || *pruned.Missing[0].BestScore != 0 {
		t.Errorf("BestScore = %v, want 0: кандидат должен быть отсечен до оценки", pruned.Missing[0].BestScore)
	}

	// Без отбора кандидат оценивается, но порога все равно не достигает
	noPruning := DefaultPolicy()
	noPruning.MinTokenOverlap = 0

	scored, err := engine.Reconcile(cellar, reference, noPruning)
	if err != nil {
		t.Fatalf("Reconcile вернул ошибку: %v", err)
	}
	if scored.MissingCount != 1 {
		t.Fatalf("MissingCount = %d, want 1", scored.MissingCount)
	}
	got := scored.Missing[0].BestScore
	if got == nil || *got <= 0 || *got >= 70 {
		t.Errorf("BestScore = %v, ожидался ненулевой балл ниже порога", got)
	}
}

// Потолок кандидатов может срезать истинно лучшего: он берет первых
// прошедших отбор в исходном порядке эталона
func TestReconcile_CandidateCapTruncatesInOriginalOrder(t *testing.T) {
	engine := NewEngine()

	cellar := []wine.Record{
		newTestRecord("Chateau Margaux", 2015, 75, "", 2),
	}
	reference := []wine.Record{
		newTestRecord("Chateau Latour", 2015, 75, "", 2),
		newTestRecord("Chateau Margaux", 2015, 75, "", 3),
	}

	capped := DefaultPolicy()
	capped.MinTokenOverlap = 0
	capped.CandidateCap = 1

	report, err := engine.Reconcile(cellar, reference, capped)
	if err != nil {
		t.Fatalf("Reconcile вернул ошибку: %v", err)
	}
	if report.MissingCount != 1 {
		t.Errorf("с потолком 1: MissingCount = %d, want 1", report.MissingCount)
	}

	unbounded := DefaultPolicy()
	unbounded.MinTokenOverlap = 0

	full, err := engine.Reconcile(cellar, reference, unbounded)
	if err != nil {
		t.Fatalf("Reconcile вернул ошибку: %v", err)
	}
	if full.MatchedFuzzy != 1 {
		t.Errorf("без потолка: MatchedFuzzy = %d, want 1", full.MatchedFuzzy)
	}
}

// При равных баллах побеждает первый встреченный кандидат:
// подтверждение идет против него, а не против более позднего
func TestReconcile_FirstCandidateWinsTies(t *testing.T) {
	engine := NewEngine()

	cellar := []wine.Record{
		newTestRecord("Petrus Pomerol", 2010, 75, "", 2),
	}
	reference := []wine.Record{
		// Оба кандидата дают балл 100, но год совпадает только у второго
		newTestRecord("Petrus Pomerol", 2011, 75, "", 2),
		newTestRecord("Petrus Pomerol", 2010, 75, "", 3),
	}

	report, err := engine.Reconcile(cellar, reference, DefaultPolicy())
	if err != nil {
		t.Fatalf("Reconcile вернул ошибку: %v", err)
	}

	if report.MissingCount != 1 {
		t.Fatalf("MissingCount = %d, want 1 (подтверждение должно идти против первого кандидата)", report.MissingCount)
	}
	if !strings.Contains(report.Missing[0].Reason, "millésime différent (2010 vs 2011)") {
		t.Errorf("Reason = %q, ожидался год первого кандидата", report.Missing[0].Reason)
	}
}

// Отсутствующие записи сохраняют порядок исходного файла
func TestReconcile_MissingPreservesSourceOrder(t *testing.T) {
	engine := NewEngine()

	cellar := []wine.Record{
		newTestRecord("Vin Imaginaire Alpha Beta", 2001, 75, "", 2),
		newTestRecord("Chateau Margaux", 2015, 75, "1011247", 3),
		newTestRecord("Vin Imaginaire Gamma Delta", 2002, 75, "", 7),
	}
	reference := []wine.Record{
		newTestRecord("Chateau Margaux", 2015, 75, "1011247", 2),
	}

	report, err := engine.Reconcile(cellar, reference, DefaultPolicy())
	if err != nil {
		t.Fatalf("Reconcile вернул ошибку: %v", err)
	}

	if report.MissingCount != 2 {
		t.Fatalf("MissingCount = %d, want 2", report.MissingCount)
	}
	if report.Missing[0].SourceRow != 2 || report.Missing[1].SourceRow != 7 {
		t.Errorf("порядок строк = [%d, %d], want [2, 7]",
			report.Missing[0].SourceRow, report.Missing[1].SourceRow)
	}
	if report.MatchedExact != 1 {
		t.Errorf("MatchedExact = %d, want 1", report.MatchedExact)
	}
}

// Пустой эталон: все записи журнала отсутствуют с нулевым баллом
func TestReconcile_EmptyReference(t *testing.T) {
	engine := NewEngine()

	cellar := []wine.Record{
		newTestRecord("Chateau Margaux", 2015, 75, "", 2),
	}

	report, err := engine.Reconcile(cellar, nil, DefaultPolicy())
	if err != nil {
		t.Fatalf("Reconcile вернул ошибку: %v", err)
	}

	if report.MissingCount != 1 {
		t.Fatalf("MissingCount = %d, want 1", report.MissingCount)
	}
	missing := report.Missing[0]
	if missing.BestScore == nil || *missing.BestScore != 0 {
		t.Errorf("BestScore = %v, want 0", missing.BestScore)
	}
	if !strings.Contains(missing.Reason, "meilleur score: 0%") {
		t.Errorf("Reason = %q, ожидался нулевой балл в тексте", missing.Reason)
	}
}

// Пустой журнал: пустой отчет без ошибок
func TestReconcile_EmptyCellar(t *testing.T) {
	engine := NewEngine()

	reference := []wine.Record{
		newTestRecord("Chateau Margaux", 2015, 75, "1011247", 2),
	}

	report, err := engine.Reconcile(nil, reference, DefaultPolicy())
	if err != nil {
		t.Fatalf("Reconcile вернул ошибку: %v", err)
	}

	if report.TotalEvaluated != 0 || report.MissingCount != 0 {
		t.Errorf("TotalEvaluated = %d, MissingCount = %d, want 0 и 0",
			report.TotalEvaluated, report.MissingCount)
	}
	if report.Missing == nil {
		t.Error("Missing должен быть пустым срезом, не nil")
	}
}

// Невалидная политика отвергается до обработки строк
func TestReconcile_InvalidPolicyRejected(t *testing.T) {
	engine := NewEngine()

	bad := DefaultPolicy()
	bad.Threshold = 150

	report, err := engine.Reconcile(nil, nil, bad)
	if err == nil {
		t.Fatal("ожидалась ошибка конфигурации")
	}
	if report != nil {
		t.Errorf("report = %+v, want nil", report)
	}
}

// Сверка чистая: входы не изменяются, повторный вызов дает тот же результат
func TestReconcile_PureAndRepeatable(t *testing.T) {
	engine := NewEngine()

	cellar := []wine.Record{
		newTestRecord("Pétrus Pomerol", 2010, 75, "", 2),
		newTestRecord("Chateau Margaux", 2015, 75, "1011247", 3),
		newTestRecord("Domaine Roulot Meursault Les Tillets", 2018, 75, "", 4),
	}
	reference := []wine.Record{
		newTestRecord("Petrus Pomerol", 2011, 75, "", 2),
		newTestRecord("Chateau Margaux", 2015, 75, "1011247", 3),
		newTestRecord("Roulot Meursault Les Tillets", 2018, 75, "", 4),
	}

	cellarCopy := append([]wine.Record{}, cellar...)
	referenceCopy := append([]wine.Record{}, reference...)

	first, err := engine.Reconcile(cellar, reference, DefaultPolicy())
	if err != nil {
		t.Fatalf("Reconcile вернул ошибку: %v", err)
	}
	second, err := engine.Reconcile(cellar, reference, DefaultPolicy())
	if err != nil {
		t.Fatalf("повторный Reconcile вернул ошибку: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("повторный вызов дал другой результат")
	}
	if !reflect.DeepEqual(cellar, cellarCopy) {
		t.Error("Reconcile изменил журнал погреба")
	}
	if !reflect.DeepEqual(reference, referenceCopy) {
		t.Error("Reconcile изменил эталон")
	}
}

// Тесты подтверждения года
func TestVintageCorroborated(t *testing.T) {
	tests := []struct {
		a, b      int
		tolerance int
		want      bool
	}{
		{2015, 2015, 0, true},
		{2015, 2016, 0, false},
		{2015, 2016, 1, true},
		{2015, 2017, 1, false},
		{wine.NoVintage, 2016, 0, true},
		{2015, wine.NoVintage, 0, true},
		{wine.NoVintage, wine.NoVintage, 0, true},
	}

	for _, tt := range tests {
		if got := vintageCorroborated(tt.a, tt.b, tt.tolerance); got != tt.want {
			t.Errorf("vintageCorroborated(%d, %d, %d) = %v, want %v",
				tt.a, tt.b, tt.tolerance, got, tt.want)
		}
	}
}

// Тесты подтверждения объема
func TestVolumeCorroborated(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name string
		a, b int
		want bool
	}{
		{"равные объемы", 75, 75, true},
		{"в пределах допуска", 76, 80, true},
		{"на границе допуска", 75, 85, true},
		{"вне допуска и соотношений", 75, 90, false},
		{"бутылка против магнума", 75, 150, false},
		{"сантилитры против миллилитров", 75, 7500, true},
		{"соотношение 0.1", 75, 750, true},
		{"соотношение 10", 750, 75, true},
		{"в пяти процентах от соотношения", 75, 7300, true},
		{"вне пяти процентов от соотношения", 75, 6900, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := volumeCorroborated(tt.a, tt.b, p); got != tt.want {
				t.Errorf("volumeCorroborated(%d, %d) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// Подтверждение симметрично
			if got := volumeCorroborated(tt.b, tt.a, p); got != tt.want {
				t.Errorf("volumeCorroborated(%d, %d) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}
