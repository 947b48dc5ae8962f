package matching

import (
	"fmt"

	"winecompare/wine"
)

// Причины отсутствия формулируются по-французски: их видит
// пользователь в отчете и в выгрузках.
const (
	reasonExactKeyMissing     = "Code LWIN16 introuvable dans le Google Sheet"
	reasonNoMatch             = "Pas de correspondance fuzzy suffisante (meilleur score: %.0f%%)"
	reasonCorroborationPrefix = "Fuzzy match trouvé (%.0f%%) mais "
	reasonVintagePart         = "millésime différent (%s vs %s)"
	reasonVolumePart          = "contenance différente (%dcl vs %dcl)"
)

// MissingRecord запись журнала погреба, не нашедшая пары в эталоне
type MissingRecord struct {
	// DisplayName исходное название
	DisplayName string `json:"display_name"`

	// Vintage год как число либо строка "NV" для сентинела
	Vintage any `json:"vintage"`

	// VolumeCL объем в сантилитрах
	VolumeCL int `json:"volume_cl"`

	// LWIN7 идентификатор, если был
	LWIN7 string `json:"lwin7,omitempty"`

	// SourceRow строка исходного файла
	SourceRow int `json:"source_row"`

	// Reason человекочитаемая причина отсутствия
	Reason string `json:"reason"`

	// BestScore лучший балл приблизительного сопоставления,
	// если приблизительная фаза выполнялась
	BestScore *float64 `json:"best_score,omitempty"`
}

// Report результат одной сверки
type Report struct {
	// Missing отсутствующие записи в порядке исходного файла
	Missing []MissingRecord `json:"missing"`

	// TotalEvaluated сколько канонических записей журнала оценено
	TotalEvaluated int `json:"total_evaluated"`

	// MissingCount сколько из них не нашли пары
	MissingCount int `json:"missing_count"`

	// MatchedExact совпадения по ключу LWIN16
	MatchedExact int `json:"matched_exact"`

	// MatchedFuzzy совпадения приблизительной фазы
	MatchedFuzzy int `json:"matched_fuzzy"`

	// Preset имя политики, с которой шла сверка
	Preset string `json:"preset"`

	// Threshold действовавший порог сходства
	Threshold float64 `json:"threshold"`
}

// vintageDisplay форматирует год для отчета: сентинел показывается как "NV"
func vintageDisplay(vintage int) any {
	if vintage == wine.NoVintage {
		return "NV"
	}
	return vintage
}

// vintageString строковая форма года для текстов причин
func vintageString(vintage int) string {
	if vintage == wine.NoVintage {
		return "NV"
	}
	return fmt.Sprintf("%d", vintage)
}

// newMissingRecord собирает запись отчета из канонической записи
func newMissingRecord(r wine.Record, reason string, bestScore *float64) MissingRecord {
	return MissingRecord{
		DisplayName: r.DisplayName,
		Vintage:     vintageDisplay(r.Vintage),
		VolumeCL:    r.VolumeCL,
		LWIN7:       r.LWIN7,
		SourceRow:   r.SourceRow,
		Reason:      reason,
		BestScore:   bestScore,
	}
}
