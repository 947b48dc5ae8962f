// Утилита анализа загружаемых файлов: кодировка, разделитель, профиль
// колонок и пробная проекция по выбранной схеме. Помогает понять, почему
// конкретный журнал погреба или эталонная ведомость разбирается плохо,
// не поднимая сервер.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"

	"winecompare/importer"
	"winecompare/wine"
)

func main() {
	filePath := flag.String("file", "", "путь к CSV или XLSX файлу")
	schemaName := flag.String("schema", "cellar", "схема проекции: cellar или reference")
	delimiter := flag.String("delimiter", "", "разделитель CSV; пусто = по схеме (';' для cellar, ',' для reference)")
	sample := flag.Int("sample", 5, "сколько спроецированных записей показать")
	flag.Parse()

	if *filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	var schema wine.Schema
	var delim rune
	switch *schemaName {
	case "cellar":
		schema = wine.CellarBookSchema()
		delim = ';'
	case "reference":
		schema = wine.ReferenceSheetSchema()
		delim = ','
	default:
		log.Fatalf("Неизвестная схема %q: ожидается cellar или reference", *schemaName)
	}
	if *delimiter != "" {
		delim = rune((*delimiter)[0])
	}

	data, err := os.ReadFile(*filePath)
	if err != nil {
		log.Fatalf("Не удалось прочитать файл: %v", err)
	}

	fmt.Printf("Файл: %s (%d байт)\n", *filePath, len(data))
	fmt.Printf("Счетчики разделителей: ';' = %d, ',' = %d, '\\t' = %d\n",
		bytes.Count(data, []byte{';'}), bytes.Count(data, []byte{','}), bytes.Count(data, []byte{'\t'}))

	reader := importer.NewReader(importer.Options{Delimiter: delim})
	table, err := reader.ReadTable(*filePath, data)
	if err != nil {
		log.Fatalf("Не удалось разобрать таблицу: %v", err)
	}

	fmt.Printf("Формат: %s, кодировка: %s, строк: %d\n", table.Format, table.Encoding, len(table.Rows))
	printColumnHistogram(table.Rows)

	projector, err := wine.NewProjector(schema, wine.ProjectorOptions{})
	if err != nil {
		log.Fatalf("Невалидная схема: %v", err)
	}

	records, stats := projector.ProjectAll(table.Rows)
	fmt.Printf("\nПробная проекция по схеме %q:\n", schema.Name)
	fmt.Printf("  строк данных:        %d\n", stats.TotalRows)
	fmt.Printf("  спроецировано:       %d\n", stats.Projected)
	fmt.Printf("  пустые названия:     %d\n", stats.SkippedEmptyName)
	fmt.Printf("  аксессуары:          %d\n", stats.SkippedAccessory)
	fmt.Printf("  битые поля:          %d\n", stats.MalformedFields)
	fmt.Printf("  без кода LWIN:       %d\n", stats.NoLWIN)

	fmt.Println("\nПервые спроецированные записи:")
	for i, rec := range records {
		if i >= *sample {
			break
		}
		key := rec.ExactKey
		if key == "" {
			key = "-"
		}
		fmt.Printf("  строка %-4d %-50q год=%-4d объем=%dcl ключ=%s\n",
			rec.SourceRow, rec.DisplayName, rec.Vintage, rec.VolumeCL, key)
	}
}

// printColumnHistogram печатает распределение числа колонок по строкам.
// Рваные строки — норма для выгрузок Excel, но резкий разброс обычно
// значит неверный разделитель.
func printColumnHistogram(rows [][]string) {
	histogram := map[int]int{}
	for _, row := range rows {
		histogram[len(row)]++
	}

	fmt.Println("Распределение числа колонок:")
	for width, count := range histogram {
		fmt.Printf("  %2d колонок: %d строк\n", width, count)
	}
}
