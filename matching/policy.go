// Package matching содержит движок сверки двух канонических коллекций
// записей: точный проход по ключам LWIN16 и приблизительное
// сопоставление названий с подтверждением по году и объему.
package matching

import (
	"fmt"

	"winecompare/wine"
)

// Имена встроенных пресетов политики
const (
	PresetDefault = "default"
	PresetLenient = "lenient"
)

// Policy — полная конфигурация одного вызова сверки. Движок никогда
// не читает окружение процесса: все пороги и допуски приходят явно
// через Policy. Исторически расходящиеся константы разных версий
// собраны в именованные пресеты.
type Policy struct {
	// Preset — имя пресета для диагностики и отчетов
	Preset string `json:"preset"`

	// Threshold — минимальный балл приблизительного сходства [0,100],
	// при котором кандидат допускается к подтверждению
	Threshold float64 `json:"threshold"`

	// EarlyExitScore — балл, после которого перебор кандидатов
	// останавливается: выше при данном пороге решение уже не изменится
	EarlyExitScore float64 `json:"early_exit_score"`

	// MinTokenOverlap — минимум общих токенов для отбора кандидата;
	// 0 отключает отбор, и оцениваются все записи эталона
	MinTokenOverlap int `json:"min_token_overlap"`

	// CandidateCap — жесткий потолок числа оцениваемых кандидатов
	// (в исходном порядке). 0 = без потолка; потолок может срезать
	// истинно лучшего кандидата, это осознанный размен скорости
	// на полноту
	CandidateCap int `json:"candidate_cap"`

	// VintageTolerance — допустимая разница лет при подтверждении;
	// сентинел NoVintage с любой стороны принимается всегда
	VintageTolerance int `json:"vintage_tolerance"`

	// VolumeToleranceCL — допустимая абсолютная разница объемов
	VolumeToleranceCL int `json:"volume_tolerance_cl"`

	// VolumeRatioSet — соотношения объемов, поглощающие путаницу
	// единиц (cl против l против ml)
	VolumeRatioSet []float64 `json:"volume_ratio_set"`

	// VolumeRatioSlack — относительный допуск соотношения (0.05 = 5%)
	VolumeRatioSlack float64 `json:"volume_ratio_slack"`

	// VintageBounds — границы разбора года при проекции
	VintageBounds wine.VintageBounds `json:"vintage_bounds"`

	// KeyVolumeFormat — формат объема в ключе LWIN16
	KeyVolumeFormat wine.KeyVolumeFormat `json:"key_volume_format"`

	// UseStemming — стеммить токены при отборе кандидатов.
	// На балл сходства не влияет
	UseStemming bool `json:"use_stemming"`

	// AccessoryKeywords — ключевые слова фильтра аксессуаров;
	// пустой список = список по умолчанию
	AccessoryKeywords []string `json:"accessory_keywords,omitempty"`
}

// DefaultPolicy — рабочая точка продуктивной версии: порог 70,
// год строго (или сентинел), объем в ключе в сантилитрах.
func DefaultPolicy() Policy {
	return Policy{
		Preset:            PresetDefault,
		Threshold:         70,
		EarlyExitScore:    95,
		MinTokenOverlap:   2,
		CandidateCap:      0,
		VintageTolerance:  0,
		VolumeToleranceCL: 10,
		VolumeRatioSet:    []float64{1, 0.01, 100, 0.1, 10},
		VolumeRatioSlack:  0.05,
		VintageBounds:     wine.DefaultVintageBounds(),
		KeyVolumeFormat:   wine.KeyVolumeCL,
	}
}

// LenientPolicy — пресет ранней версии: низкий порог 40 при
// обязательном подтверждении (порог и строгость подтверждения
// меняются согласованно), допуск года ±1, исторические границы
// миллезима, объем в ключе в миллилитрах.
func LenientPolicy() Policy {
	p := DefaultPolicy()
	p.Preset = PresetLenient
	p.Threshold = 40
	p.VintageTolerance = 1
	p.VintageBounds = wine.LegacyVintageBounds()
	p.KeyVolumeFormat = wine.KeyVolumeML
	return p
}

// PolicyByName возвращает пресет по имени
func PolicyByName(name string) (Policy, error) {
	switch name {
	case "", PresetDefault:
		return DefaultPolicy(), nil
	case PresetLenient:
		return LenientPolicy(), nil
	default:
		return Policy{}, fmt.Errorf("неизвестный пресет политики: %q", name)
	}
}

// Presets возвращает все встроенные пресеты
func Presets() []Policy {
	return []Policy{DefaultPolicy(), LenientPolicy()}
}

// Validate проверяет политику. Ошибка здесь — ошибка конфигурации:
// она фатальна для вызова сверки и возвращается до обработки строк.
func (p Policy) Validate() error {
	if p.Threshold < 0 || p.Threshold > 100 {
		return fmt.Errorf("policy: порог %v вне диапазона [0, 100]", p.Threshold)
	}
	if p.EarlyExitScore < p.Threshold {
		return fmt.Errorf("policy: ранний выход %v ниже порога %v", p.EarlyExitScore, p.Threshold)
	}
	if p.MinTokenOverlap < 0 {
		return fmt.Errorf("policy: отрицательный минимум общих токенов (%d)", p.MinTokenOverlap)
	}
	if p.CandidateCap < 0 {
		return fmt.Errorf("policy: отрицательный потолок кандидатов (%d)", p.CandidateCap)
	}
	if p.VintageTolerance < 0 {
		return fmt.Errorf("policy: отрицательный допуск года (%d)", p.VintageTolerance)
	}
	if p.VolumeToleranceCL < 0 {
		return fmt.Errorf("policy: отрицательный допуск объема (%d)", p.VolumeToleranceCL)
	}
	if len(p.VolumeRatioSet) == 0 {
		return fmt.Errorf("policy: пустой набор соотношений объема")
	}
	for _, r := range p.VolumeRatioSet {
		if r <= 0 {
			return fmt.Errorf("policy: неположительное соотношение объема (%v)", r)
		}
	}
	if p.VolumeRatioSlack < 0 || p.VolumeRatioSlack >= 1 {
		return fmt.Errorf("policy: допуск соотношения %v вне диапазона [0, 1)", p.VolumeRatioSlack)
	}
	if p.VintageBounds.Min > p.VintageBounds.Max {
		return fmt.Errorf("policy: границы года перепутаны (%d > %d)",
			p.VintageBounds.Min, p.VintageBounds.Max)
	}
	return nil
}
