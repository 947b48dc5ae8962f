package wine

import "testing"

func TestBuildExactKey(t *testing.T) {
	tests := []struct {
		name     string
		lwin7    string
		vintage  int
		volumeCL int
		format   KeyVolumeFormat
		expected string
	}{
		{
			name:     "стандартная бутылка, формат cl",
			lwin7:    "1012361",
			vintage:  2015,
			volumeCL: 75,
			format:   KeyVolumeCL,
			expected: "1012361201500075",
		},
		{
			name:     "стандартная бутылка, формат ml",
			lwin7:    "1012361",
			vintage:  2015,
			volumeCL: 75,
			format:   KeyVolumeML,
			expected: "1012361201500750",
		},
		{
			name:     "сентинел года кодируется как 1000",
			lwin7:    "1012361",
			vintage:  NoVintage,
			volumeCL: 75,
			format:   KeyVolumeCL,
			expected: "1012361100000075",
		},
		{
			name:     "магнум",
			lwin7:    "1009922",
			vintage:  1996,
			volumeCL: 150,
			format:   KeyVolumeML,
			expected: "1009922199601500",
		},
		{
			name:     "пустой идентификатор дает пустой ключ",
			lwin7:    "",
			vintage:  2015,
			volumeCL: 75,
			format:   KeyVolumeCL,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := BuildExactKey(tt.lwin7, tt.vintage, tt.volumeCL, tt.format)
			if result != tt.expected {
				t.Errorf("BuildExactKey(%q, %d, %d) = %q, expected %q",
					tt.lwin7, tt.vintage, tt.volumeCL, result, tt.expected)
			}
		})
	}
}

// Ключ всегда 16 символов и детерминирован
func TestBuildExactKey_Deterministic(t *testing.T) {
	first := BuildExactKey("1012361", 2015, 75, KeyVolumeCL)
	second := BuildExactKey("1012361", 2015, 75, KeyVolumeCL)

	if first != second {
		t.Errorf("Ключ недетерминирован: %q != %q", first, second)
	}
	if len(first) != 16 {
		t.Errorf("Длина ключа %d, expected 16", len(first))
	}
}

func TestRecord_HasLWIN(t *testing.T) {
	with := Record{LWIN7: "1012361"}
	without := Record{}

	if !with.HasLWIN() {
		t.Error("Record с LWIN7 должен возвращать HasLWIN() == true")
	}
	if without.HasLWIN() {
		t.Error("Record без LWIN7 должен возвращать HasLWIN() == false")
	}
}
