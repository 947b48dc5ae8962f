// Package wine описывает каноническую форму записи о бутылке и правила
// приведения разнородных табличных строк к этой форме. Канонические записи
// живут ровно один цикл сверки: построены из загруженных файлов, отданы
// движку сопоставления, забыты.
package wine

import "fmt"

const (
	// NoVintage — сентинел "без миллезима / год неизвестен".
	// При сверке трактуется как wildcard.
	NoVintage = 1000

	// DefaultVolumeCL — объем по умолчанию, когда поле отсутствует
	// или не разбирается. Стандартная бутылка 75 cl.
	DefaultVolumeCL = 75
)

// KeyVolumeFormat определяет, как объем кодируется в последних пяти
// символах ключа LWIN16. Обе стороны сверки всегда строят ключ одним
// и тем же способом, поэтому оба формата внутренне согласованы.
type KeyVolumeFormat int

const (
	// KeyVolumeCL — объем в сантилитрах: 75 -> "00075".
	// Формат действующей продуктивной версии.
	KeyVolumeCL KeyVolumeFormat = iota

	// KeyVolumeML — объем в миллилитрах: 75 -> "00750".
	// Формат ранней версии, совпадает с конвенцией Liv-ex.
	KeyVolumeML
)

// Record — каноническая запись об одной строке инвентаря
type Record struct {
	// DisplayName — человекочитаемое название, возможно склеенное
	// из нескольких колонок источника
	DisplayName string `json:"display_name"`

	// NormalizedName — производный ключ сравнения, пользователю
	// никогда не показывается
	NormalizedName string `json:"-"`

	// Vintage — год урожая в допустимых границах либо NoVintage
	Vintage int `json:"vintage"`

	// VolumeCL — объем в сантилитрах, всегда заполнен
	VolumeCL int `json:"volume_cl"`

	// LWIN7 — семизначный отраслевой идентификатор этикетки,
	// пустая строка = отсутствует
	LWIN7 string `json:"lwin7,omitempty"`

	// ExactKey — LWIN16; пуст тогда и только тогда, когда пуст LWIN7
	ExactKey string `json:"-"`

	// SourceRow — исходная строка файла (нумерация с 1), только
	// для диагностики
	SourceRow int `json:"source_row"`
}

// HasLWIN сообщает, есть ли у записи отраслевой идентификатор
func (r Record) HasLWIN() bool {
	return r.LWIN7 != ""
}

// BuildExactKey собирает ключ LWIN16 из трех компонентов:
// идентификатор (7 символов) + год с ведущими нулями (4) + объем с
// ведущими нулями (5). Пустой lwin7 дает пустой ключ: ключ никогда
// не строится из частичных данных.
func BuildExactKey(lwin7 string, vintage, volumeCL int, format KeyVolumeFormat) string {
	if lwin7 == "" {
		return ""
	}

	vol := volumeCL
	if format == KeyVolumeML {
		vol = volumeCL * 10
	}

	return fmt.Sprintf("%s%04d%05d", lwin7, vintage, vol)
}
