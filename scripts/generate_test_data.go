// Генератор тестовых файлов для ручной проверки сверки: фейковый журнал
// погреба (CSV с ';', раскладка Livre de Cave) и эталонная ведомость
// (CSV с ','). Часть вин присутствует в обоих файлах, часть только в
// журнале — они и должны попасть в список отсутствующих.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
)

var producers = []string{
	"Château Margaux", "Château Latour", "Domaine Roulot", "Domaine Leflaive",
	"Château Pétrus", "Domaine de la Romanée-Conti", "Château d'Yquem",
	"Domaine Armand Rousseau", "Château Cheval Blanc", "Maison Trimbach",
	"Domaine Zind-Humbrecht", "Château Rayas", "Clos Rougeard", "Château Ausone",
}

var cuvees = []string{
	"", "Les Perrières", "Grand Cru", "Premier Cru", "Vieilles Vignes",
	"Cuvée Spéciale", "Clos de la Roche", "Les Charmes",
}

var appellations = []string{
	"Margaux", "Pauillac", "Meursault", "Puligny-Montrachet", "Pomerol",
	"Vosne-Romanée", "Sauternes", "Gevrey-Chambertin", "Saint-Émilion",
	"Alsace", "Châteauneuf-du-Pape", "Saumur-Champigny",
}

var accessories = []string{
	"Coffret cadeau 2 verres", "Carton de transport", "Tire-bouchon sommelier",
	"Seau à glace inox",
}

// fakeWine одно сгенерированное вино
type fakeWine struct {
	producer    string
	cuvee       string
	appellation string
	vintage     int
	volumeCL    int
	lwin        string
}

func main() {
	cellarSize := flag.Int("cellar", 200, "число строк журнала погреба")
	overlap := flag.Float64("overlap", 0.8, "доля вин журнала, присутствующих в эталоне")
	extraReference := flag.Int("extra", 50, "число вин только в эталоне")
	outDir := flag.String("out", "testdata/generated", "каталог вывода")
	seed := flag.Int64("seed", 0, "seed генератора (0 = фиксированный)")
	flag.Parse()

	gofakeit.Seed(*seed)

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	wines := make([]fakeWine, *cellarSize)
	for i := range wines {
		wines[i] = generateWine()
	}

	if err := writeCellarBook(filepath.Join(*outDir, "livre_de_cave.csv"), wines); err != nil {
		log.Fatalf("Failed to write cellar book: %v", err)
	}

	shared := int(float64(len(wines)) * *overlap)
	reference := make([]fakeWine, 0, shared+*extraReference)
	reference = append(reference, wines[:shared]...)
	for i := 0; i < *extraReference; i++ {
		reference = append(reference, generateWine())
	}

	if err := writeReferenceSheet(filepath.Join(*outDir, "google_sheet.csv"), reference); err != nil {
		log.Fatalf("Failed to write reference sheet: %v", err)
	}

	fmt.Printf("✓ Журнал погреба: %d строк (%s)\n", len(wines), filepath.Join(*outDir, "livre_de_cave.csv"))
	fmt.Printf("✓ Эталонная ведомость: %d строк (%s)\n", len(reference), filepath.Join(*outDir, "google_sheet.csv"))
	fmt.Printf("✓ Ожидается отсутствующих: ~%d\n", len(wines)-shared)
}

func generateWine() fakeWine {
	wine := fakeWine{
		producer:    gofakeit.RandomString(producers),
		cuvee:       gofakeit.RandomString(cuvees),
		appellation: gofakeit.RandomString(appellations),
		vintage:     gofakeit.Number(1990, 2023),
		volumeCL:    gofakeit.RandomInt([]int{37, 75, 75, 75, 150}),
	}

	// Примерно у 40% вин есть код LWIN, как в реальных журналах
	if gofakeit.Number(0, 9) < 4 {
		wine.lwin = gofakeit.DigitN(7)
	}

	// Изредка год отсутствует: non-vintage шампанское и крепленые
	if gofakeit.Number(0, 19) == 0 {
		wine.vintage = 0
	}

	return wine
}

// writeCellarBook пишет журнал погреба: ';' как разделитель, название
// разнесено по колонкам 2/4/5/6, объем в литрах с запятой, LWIN в 10-й
func writeCellarBook(path string, wines []fakeWine) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	w.Comma = ';'
	defer w.Flush()

	header := []string{"N", "Zone", "Producteur", "Couleur", "Cuvée", "Classement", "Appellation", "Millésime", "Contenance (L)", "Quantité", "LWIN"}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, wine := range wines {
		vintage := ""
		if wine.vintage > 0 {
			vintage = fmt.Sprintf("%d", wine.vintage)
		} else {
			vintage = "NV"
		}

		volume := strings.Replace(fmt.Sprintf("%.2f", float64(wine.volumeCL)/100), ".", ",", 1)

		lwin := ""
		if wine.lwin != "" {
			lwin = "LWIN" + wine.lwin
		}

		row := []string{
			fmt.Sprintf("%d", i+1),
			gofakeit.RandomString([]string{"Cave A", "Cave B", "Réserve"}),
			wine.producer,
			gofakeit.RandomString([]string{"Rouge", "Blanc", "Rosé"}),
			wine.cuvee,
			"",
			wine.appellation,
			vintage,
			volume,
			fmt.Sprintf("%d", gofakeit.Number(1, 12)),
			lwin,
		}
		if err := w.Write(row); err != nil {
			return err
		}

		// Изредка вставляем аксессуар: проекция должна его отбросить
		if gofakeit.Number(0, 24) == 0 {
			accessory := []string{"", "", gofakeit.RandomString(accessories), "", "", "", "", "", "", "1", ""}
			if err := w.Write(accessory); err != nil {
				return err
			}
		}
	}

	return nil
}

// writeReferenceSheet пишет эталонную ведомость: ',' как разделитель,
// название одной колонкой, объем в сантилитрах, LWIN в 6-й
func writeReferenceSheet(path string, wines []fakeWine) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	header := []string{"Nom", "Région", "Millésime", "Contenance (cl)", "Quantité", "Prix", "LWIN"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, wine := range wines {
		name := wine.producer
		if wine.cuvee != "" {
			name += " " + wine.cuvee
		}
		name += " " + wine.appellation

		vintage := "NV"
		if wine.vintage > 0 {
			vintage = fmt.Sprintf("%d", wine.vintage)
		}

		row := []string{
			name,
			gofakeit.RandomString([]string{"Bordeaux", "Bourgogne", "Rhône", "Loire", "Alsace"}),
			vintage,
			fmt.Sprintf("%d", wine.volumeCL),
			fmt.Sprintf("%d", gofakeit.Number(1, 24)),
			fmt.Sprintf("%d", gofakeit.Number(20, 3000)),
			wine.lwin,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}
