package matching

import (
	"fmt"
	"math"
	"strings"

	"winecompare/matching/algorithms"
	"winecompare/wine"
)

// Engine выполняет сверку журнала погреба с эталонной ведомостью.
// Экземпляр не хранит состояния между вызовами: все кеши создаются
// внутри Reconcile и умирают вместе с ним, поэтому один Engine можно
// безопасно использовать из нескольких горутин одновременно.
type Engine struct {
	scorer *algorithms.Scorer
}

// NewEngine создает движок сверки
func NewEngine() *Engine {
	return &Engine{scorer: algorithms.NewScorer()}
}

// reconcileState держит состояние одного вызова Reconcile: индекс
// точных ключей и лениво построенные множества токенов эталона
type reconcileState struct {
	reference []wine.Record
	keyIndex  map[string]int
	extractor *algorithms.TokenExtractor
	tokenSets []map[string]bool
}

// newReconcileState строит индекс точных ключей эталона.
// Множества токенов не строятся заранее: если все записи журнала
// сопоставятся по ключу, приблизительная фаза не понадобится вовсе.
func newReconcileState(reference []wine.Record, p Policy) *reconcileState {
	keyIndex := make(map[string]int, len(reference))
	for i, ref := range reference {
		if ref.ExactKey != "" {
			// При коллизии ключей побеждает последняя запись
			keyIndex[ref.ExactKey] = i
		}
	}

	extractor := algorithms.NewTokenExtractor()
	if p.UseStemming {
		extractor = algorithms.NewTokenExtractorWithStemming()
	}

	return &reconcileState{
		reference: reference,
		keyIndex:  keyIndex,
		extractor: extractor,
	}
}

// ensureTokenSets строит множества токенов эталона при первом обращении
// приблизительной фазы. Кеш живет только внутри вызова Reconcile.
func (st *reconcileState) ensureTokenSets() {
	if st.tokenSets != nil {
		return
	}
	st.tokenSets = make([]map[string]bool, len(st.reference))
	for i, ref := range st.reference {
		st.tokenSets[i] = st.extractor.TokenSet(ref.NormalizedName)
	}
}

// Reconcile сверяет записи журнала погреба с эталоном и возвращает
// отчет об отсутствующих. Входные срезы не модифицируются; порядок
// отсутствующих записей повторяет порядок журнала.
//
// Алгоритм:
//  1. По эталону строится индекс точных ключей LWIN16, при коллизии
//     побеждает последняя запись.
//  2. Запись с кодом LWIN7 сопоставляется только по точному ключу:
//     если ключ не найден, запись считается отсутствующей без
//     приблизительной фазы.
//  3. Запись без кода проходит приблизительную фазу: отбор кандидатов
//     по общим токенам, балл BestRatio по нормализованным названиям,
//     затем подтверждение по миллезиму и объему.
func (e *Engine) Reconcile(cellar, reference []wine.Record, p Policy) (*Report, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("невалидная политика сопоставления: %w", err)
	}

	st := newReconcileState(reference, p)
	report := &Report{
		Missing:   []MissingRecord{},
		Preset:    p.Preset,
		Threshold: p.Threshold,
	}

	for _, rec := range cellar {
		report.TotalEvaluated++

		// Точная фаза: запись с кодом сопоставляется только по ключу
		if rec.HasLWIN() {
			if _, ok := st.keyIndex[rec.ExactKey]; ok {
				report.MatchedExact++
				continue
			}
			report.Missing = append(report.Missing, newMissingRecord(rec, reasonExactKeyMissing, nil))
			continue
		}

		// Приблизительная фаза
		best, bestIdx := e.findBestCandidate(rec, st, p)
		if bestIdx < 0 || best < p.Threshold {
			score := best
			reason := fmt.Sprintf(reasonNoMatch, score)
			report.Missing = append(report.Missing, newMissingRecord(rec, reason, &score))
			continue
		}

		// Подтверждение: балл достаточный, но миллезим и объем
		// должны быть согласованы с кандидатом
		candidate := st.reference[bestIdx]
		vintageOK := vintageCorroborated(rec.Vintage, candidate.Vintage, p.VintageTolerance)
		volumeOK := volumeCorroborated(rec.VolumeCL, candidate.VolumeCL, p)
		if vintageOK && volumeOK {
			report.MatchedFuzzy++
			continue
		}

		score := best
		var parts []string
		if !vintageOK {
			parts = append(parts, fmt.Sprintf(reasonVintagePart,
				vintageString(rec.Vintage), vintageString(candidate.Vintage)))
		}
		if !volumeOK {
			parts = append(parts, fmt.Sprintf(reasonVolumePart, rec.VolumeCL, candidate.VolumeCL))
		}
		reason := fmt.Sprintf(reasonCorroborationPrefix, best) + strings.Join(parts, " ")
		report.Missing = append(report.Missing, newMissingRecord(rec, reason, &score))
	}

	report.MissingCount = len(report.Missing)
	return report, nil
}

// findBestCandidate возвращает лучший балл сходства и индекс кандидата
// в эталоне, либо -1 если ни один кандидат не прошел отбор.
// При равных баллах побеждает первый встреченный кандидат.
func (e *Engine) findBestCandidate(rec wine.Record, st *reconcileState, p Policy) (float64, int) {
	st.ensureTokenSets()

	queryTokens := st.extractor.TokenSet(rec.NormalizedName)

	best := 0.0
	bestIdx := -1
	scored := 0

	for i := range st.reference {
		// Отбор по общим токенам ускоряет поиск, порог 0 его отключает
		if p.MinTokenOverlap > 0 &&
			st.extractor.CommonTokenCount(queryTokens, st.tokenSets[i]) < p.MinTokenOverlap {
			continue
		}

		// Лимит кандидатов берет первых прошедших отбор в исходном
		// порядке эталона. Лимит 0 означает без ограничения.
		if p.CandidateCap > 0 && scored >= p.CandidateCap {
			break
		}
		scored++

		score := e.scorer.BestRatio(rec.NormalizedName, st.reference[i].NormalizedName)
		if score > best || bestIdx < 0 {
			best = score
			bestIdx = i
		}
		// Балл выше порога раннего выхода решение уже не изменит
		if best >= p.EarlyExitScore {
			break
		}
	}

	return best, bestIdx
}

// vintageCorroborated проверяет согласованность миллезимов.
// Сентинел NoVintage с любой стороны совместим с чем угодно, иначе
// годы должны совпадать с точностью до tolerance лет.
func vintageCorroborated(a, b, tolerance int) bool {
	if a == wine.NoVintage || b == wine.NoVintage {
		return true
	}
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff <= tolerance
}

// volumeCorroborated проверяет согласованность объемов: либо абсолютная
// разница в пределах допуска, либо отношение объемов близко к одному из
// масштабных коэффициентов. Проверка отношения поглощает путаницу единиц,
// когда один источник записал литры, а другой сантилитры или миллилитры.
func volumeCorroborated(a, b int, p Policy) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	if diff <= p.VolumeToleranceCL {
		return true
	}

	if a <= 0 || b <= 0 {
		return false
	}
	directRatio := float64(a) / float64(b)
	inverseRatio := float64(b) / float64(a)
	for _, target := range p.VolumeRatioSet {
		if ratioNear(directRatio, target, p.VolumeRatioSlack) ||
			ratioNear(inverseRatio, target, p.VolumeRatioSlack) {
			return true
		}
	}
	return false
}

// ratioNear проверяет относительную близость отношения к целевому коэффициенту
func ratioNear(ratio, target, slack float64) bool {
	if target <= 0 {
		return false
	}
	return math.Abs(ratio-target) <= slack*target
}
