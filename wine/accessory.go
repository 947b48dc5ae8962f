package wine

import "strings"

// DefaultAccessoryKeywords — список подстрок, по которым строка
// инвентаря классифицируется как аксессуар (упаковка, подарки,
// инструменты), а не вино. Список конфигурационный, не выводимый
// из данных.
func DefaultAccessoryKeywords() []string {
	return []string{
		"caisse", "carton", "coffret", "box", "étui", "emballage",
		"tire-bouchon", "décanteur", "verre", "flute", "coupe",
		"seau", "rafraîchisseur", "thermomètre", "bouchon", "capsule",
		"catalogue", "livre", "book", "poster", "affiche",
		"gift", "cadeau", "accessoire", "outil", "support",
	}
}

// AccessoryFilter классифицирует записи-аксессуары по списку
// ключевых подстрок. Поиск ведется по подстроке без границ слов:
// короткое ключевое слово может сработать внутри длинного. Это
// зафиксированное поведение источника, а не дефект; при
// необходимости список ключей настраивается.
type AccessoryFilter struct {
	keywords []string
}

// NewAccessoryFilter создает фильтр со списком ключевых слов.
// Пустой список означает фильтр по умолчанию.
func NewAccessoryFilter(keywords []string) *AccessoryFilter {
	if len(keywords) == 0 {
		keywords = DefaultAccessoryKeywords()
	}

	lowered := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			lowered = append(lowered, kw)
		}
	}

	return &AccessoryFilter{keywords: lowered}
}

// IsAccessory сообщает, содержит ли название одно из ключевых слов
func (f *AccessoryFilter) IsAccessory(displayName string) bool {
	name := strings.ToLower(displayName)
	if name == "" {
		return false
	}

	for _, kw := range f.keywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

// Keywords возвращает действующий список ключевых слов
func (f *AccessoryFilter) Keywords() []string {
	out := make([]string, len(f.keywords))
	copy(out, f.keywords)
	return out
}
