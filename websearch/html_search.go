package websearch

import (
	"fmt"
	"io"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// lwinLabeledPattern код LWIN рядом с явной пометкой "LWIN"
var lwinLabeledPattern = regexp.MustCompile(`(?i)lwin\D{0,10}([1-9]\d{6})`)

// lwinBarePattern семизначное число без пометки.
// Первая цифра ненулевая: коды LWIN семизначные без ведущих нулей.
var lwinBarePattern = regexp.MustCompile(`\b[1-9]\d{6}\b`)

// parseSearchPage разбирает HTML-страницу результатов DuckDuckGo
// и извлекает кандидатов кодов LWIN
func parseSearchPage(body io.Reader, query string) (*LookupResult, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	result := &LookupResult{
		Query:     query,
		Source:    "duckduckgo-html",
		Timestamp: time.Now(),
		Results:   make([]SearchItem, 0),
	}

	// DuckDuckGo размечает результаты классами "result" и "web-result".
	// Контейнеры вложены друг в друга, поэтому результаты дедуплицируются по URL.
	seen := make(map[string]bool)
	doc.Find(".result, .web-result, .links_main").Each(func(i int, s *goquery.Selection) {
		if item := extractSearchItem(s); item != nil && !seen[item.URL] {
			seen[item.URL] = true
			result.Results = append(result.Results, *item)
		}
	})

	result.Candidates = extractCandidates(result.Results)

	// Разметка страницы меняется; если селекторы ничего не дали,
	// сканируем видимый текст всего документа
	if len(result.Results) == 0 && len(doc.Nodes) > 0 {
		result.Candidates = candidatesFromText(visibleText(doc.Nodes[0]))
	}

	if len(result.Candidates) > 0 {
		result.Found = true
		result.Confidence = result.Candidates[0].Confidence
	}

	return result, nil
}

// extractSearchItem извлекает один результат поиска из узла
func extractSearchItem(s *goquery.Selection) *SearchItem {
	link := s.Find("a.result__a").First()
	if link.Length() == 0 {
		link = s.Find("a[href]").First()
	}

	href, _ := link.Attr("href")
	href = resolveRedirect(href)
	if href == "" {
		return nil
	}

	item := &SearchItem{
		URL:       href,
		Title:     strings.TrimSpace(link.Text()),
		Snippet:   strings.TrimSpace(s.Find(".result__snippet").First().Text()),
		Relevance: 0.5,
	}

	if item.Title == "" && item.Snippet != "" {
		item.Title = extractTitle(item.Snippet)
	}

	return item
}

// extractTitle строит заголовок из сниппета, когда у результата нет своего
func extractTitle(text string) string {
	if len(text) > 100 {
		return text[:100] + "..."
	}
	return text
}

// resolveRedirect разворачивает редирект DuckDuckGo в исходный URL.
// Ссылки результатов ведут через /l/?uddg=<закодированный URL>.
func resolveRedirect(href string) string {
	if href == "" {
		return ""
	}

	if strings.HasPrefix(href, "/l/") || strings.HasPrefix(href, "//duckduckgo.com/l/") {
		if parsed, err := url.Parse(href); err == nil {
			if uddg := parsed.Query().Get("uddg"); uddg != "" {
				if decoded, err := url.QueryUnescape(uddg); err == nil {
					return decoded
				}
			}
		}
	}

	if strings.HasPrefix(href, "//") {
		return "https:" + href
	}
	if strings.HasPrefix(href, "/") {
		return "https://html.duckduckgo.com" + href
	}

	return href
}

// codeTally счетчик упоминаний одного кода
type codeTally struct {
	labeled int
	bare    int
	source  string
}

// extractCandidates собирает коды LWIN из заголовков и сниппетов результатов
func extractCandidates(items []SearchItem) []LWINCandidate {
	counts := make(map[string]*codeTally)
	for _, item := range items {
		scanForCodes(counts, item.Title+" "+item.Snippet, item.URL)
	}
	return rankCandidates(counts)
}

// candidatesFromText собирает коды LWIN из сплошного текста страницы
func candidatesFromText(text string) []LWINCandidate {
	counts := make(map[string]*codeTally)
	scanForCodes(counts, text, "")
	return rankCandidates(counts)
}

// scanForCodes ищет коды LWIN в тексте и пополняет счетчики.
// Код с пометкой "LWIN" учитывается отдельно от простого семизначного
// числа: в текстах о вине хватает других семизначных чисел.
func scanForCodes(counts map[string]*codeTally, text, source string) {
	labeled := make(map[string]bool)

	for _, m := range lwinLabeledPattern.FindAllStringSubmatch(text, -1) {
		code := m[1]
		tallyCode(counts, code, source).labeled++
		labeled[code] = true
	}

	for _, code := range lwinBarePattern.FindAllString(text, -1) {
		if labeled[code] {
			continue
		}
		tallyCode(counts, code, source).bare++
	}
}

// tallyCode возвращает счетчик кода, создавая его при первом упоминании
func tallyCode(counts map[string]*codeTally, code, source string) *codeTally {
	t, ok := counts[code]
	if !ok {
		t = &codeTally{source: source}
		counts[code] = t
	}
	return t
}

// rankCandidates превращает счетчики в отсортированный список кандидатов.
// Упоминание с пометкой "LWIN" весит втрое больше простого числа.
func rankCandidates(counts map[string]*codeTally) []LWINCandidate {
	candidates := make([]LWINCandidate, 0, len(counts))
	for code, t := range counts {
		candidates = append(candidates, LWINCandidate{
			Code:        code,
			Occurrences: t.labeled + t.bare,
			Confidence:  confidenceFromWeight(t.labeled*3 + t.bare),
			Source:      t.source,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Confidence != candidates[j].Confidence {
			return candidates[i].Confidence > candidates[j].Confidence
		}
		if candidates[i].Occurrences != candidates[j].Occurrences {
			return candidates[i].Occurrences > candidates[j].Occurrences
		}
		return candidates[i].Code < candidates[j].Code
	})

	return candidates
}

// confidenceFromWeight переводит взвешенное число упоминаний в уверенность
func confidenceFromWeight(weight int) float64 {
	switch {
	case weight >= 6:
		return 0.9
	case weight >= 3:
		return 0.75
	case weight >= 2:
		return 0.6
	default:
		return 0.4
	}
}

// visibleText собирает видимый текст страницы обходом дерева узлов.
// Содержимое script и style пропускается: оно полно семизначных чисел,
// не имеющих отношения к результатам поиска.
func visibleText(n *html.Node) string {
	var sb strings.Builder

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && (node.Data == "script" || node.Data == "style") {
			return
		}
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
			sb.WriteString(" ")
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}

	walk(n)
	return sb.String()
}
