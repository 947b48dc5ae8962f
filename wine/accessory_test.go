package wine

import "testing"

func TestAccessoryFilter_IsAccessory(t *testing.T) {
	filter := NewAccessoryFilter(nil)

	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"подарочный набор", "Coffret cadeau 2 verres", true},
		{"картонная упаковка", "Carton de 6 bouteilles", true},
		{"штопор", "Tire-bouchon sommelier", true},
		{"регистр не важен", "CAISSE BOIS 12 BTL", true},
		{"декантер с акцентом", "Décanteur cristal", true},
		{"обычное вино", "Château Margaux 2015", false},
		{"пустое название", "", false},
		{"бургундия", "Domaine Roulot Meursault", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := filter.IsAccessory(tt.input)
			if result != tt.expected {
				t.Errorf("IsAccessory(%q) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

// Поиск по подстроке без границ слов: ключ срабатывает и внутри
// длинного слова. Поведение зафиксировано и управляется списком ключей.
func TestAccessoryFilter_SubstringMatch(t *testing.T) {
	filter := NewAccessoryFilter(nil)

	// "box" внутри "Boxwood" тоже сработает
	if !filter.IsAccessory("Boxwood Estate Red") {
		t.Error("Подстрока ключа внутри слова должна срабатывать")
	}
}

func TestAccessoryFilter_CustomKeywords(t *testing.T) {
	filter := NewAccessoryFilter([]string{"panier"})

	if !filter.IsAccessory("Panier garni") {
		t.Error("Пользовательский ключ не сработал")
	}
	// Ключи по умолчанию при этом не действуют
	if filter.IsAccessory("Coffret cadeau") {
		t.Error("Список ключей должен полностью заменяться пользовательским")
	}
}

func TestAccessoryFilter_KeywordsCopy(t *testing.T) {
	filter := NewAccessoryFilter(nil)

	keywords := filter.Keywords()
	if len(keywords) == 0 {
		t.Fatal("Список ключей по умолчанию пуст")
	}
	keywords[0] = "mutated"

	if filter.Keywords()[0] == "mutated" {
		t.Error("Keywords() должен возвращать копию списка")
	}
}
