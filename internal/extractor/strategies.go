package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/text/width"
)

// MinCells is the minimum number of cells a table row needs to be parsed.
const MinCells = 4

// Strategy names.
const (
	StrategyRacerTbody      = "racer-tbody"
	StrategyNamedTable      = "named-table"
	StrategyFirstLargeTable = "first-large-table"
	StrategyTextPattern     = "text-pattern"
)

// Row is one candidate competitor row located by a strategy.
type Row struct {
	// Cells holds the normalized text of each cell.
	Cells []string
	// Text is the normalized text of the whole row.
	Text string
	// NameHint is the racer name when the markup marks it explicitly.
	NameHint string
	// Columnar is set when cells follow the registration, name, class,
	// branch, hometown, age column order.
	Columnar bool
}

// Strategy locates competitor rows in a document. Find returns nil when the
// layout it knows is absent.
type Strategy struct {
	Name     string
	MinCells int
	Find     func(doc *goquery.Document) []Row
}

// DefaultStrategies returns the built-in strategies in priority order.
func DefaultStrategies() []Strategy {
	return []Strategy{
		{Name: StrategyRacerTbody, MinCells: MinCells, Find: findRacerTbodies},
		{Name: StrategyNamedTable, MinCells: MinCells, Find: findNamedTable},
		{Name: StrategyFirstLargeTable, MinCells: MinCells, Find: findFirstLargeTable},
		{Name: StrategyTextPattern, Find: findTextPattern},
	}
}

var namedTableSelectors = []string{
	"table.is-w495",
	"table.racelist",
	"table.is-tableFixed__3rdadd",
}

// findRacerTbodies reads the official race list, where each lane is its own
// tbody inside the div.table1 wrapper.
func findRacerTbodies(doc *goquery.Document) []Row {
	var rows []Row
	doc.Find("div.table1 table tbody.is-fs12").Each(func(_ int, tb *goquery.Selection) {
		rows = append(rows, Row{
			Cells:    cellTexts(tb.Find("td")),
			Text:     spacedText(tb),
			NameHint: nameHint(tb, "div.is-fs18 a", "div.is-fs18"),
		})
	})
	return rows
}

func findNamedTable(doc *goquery.Document) []Row {
	for _, sel := range namedTableSelectors {
		table := doc.Find(sel).First()
		if table.Length() == 0 {
			continue
		}
		if rows := tableRows(table); len(rows) > 0 {
			return rows
		}
	}
	return nil
}

func findFirstLargeTable(doc *goquery.Document) []Row {
	var rows []Row
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		if table.Find("tr").Length() <= 6 {
			return true
		}
		rows = tableRows(table)
		return false
	})
	return rows
}

var candidateElements = "tr, li, div, p"

// findTextPattern is the last resort for unstructured markup: any innermost
// element whose text carries a registration number and a class tier.
func findTextPattern(doc *goquery.Document) []Row {
	var rows []Row
	doc.Find(candidateElements).Each(func(_ int, el *goquery.Selection) {
		if !looksLikeCompetitor(el) {
			return
		}
		// A deeper element matches on its own; let that one produce the row.
		if el.Find(candidateElements).FilterFunction(func(_ int, inner *goquery.Selection) bool {
			return looksLikeCompetitor(inner)
		}).Length() > 0 {
			return
		}
		rows = append(rows, Row{
			Cells:    cellTexts(el.Children()),
			Text:     spacedText(el),
			NameHint: nameHint(el, ".racer-name", ".name", "a"),
		})
	})
	return rows
}

func looksLikeCompetitor(el *goquery.Selection) bool {
	text := spacedText(el)
	return registrationPattern.MatchString(text) && classPattern.MatchString(text)
}

// tableRows returns the data rows of a table. Rows with no td cells are
// skipped, as is every leading row before the first one that carries a
// registration number, so headers built from td cells never take lane 1.
func tableRows(table *goquery.Selection) []Row {
	var rows []Row
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		if tr.Find("td").Length() == 0 {
			return
		}
		text := spacedText(tr)
		if len(rows) == 0 && !registrationPattern.MatchString(text) {
			return
		}
		rows = append(rows, Row{
			Cells:    cellTexts(tr.Find("td, th")),
			Text:     text,
			Columnar: true,
		})
	})
	return rows
}

func cellTexts(cells *goquery.Selection) []string {
	out := make([]string, 0, cells.Length())
	cells.Each(func(_ int, c *goquery.Selection) {
		out = append(out, spacedText(c))
	})
	return out
}

// nameHint returns the text of the first selector that yields a name-like
// value.
func nameHint(sel *goquery.Selection, selectors ...string) string {
	for _, s := range selectors {
		if name, ok := parseName(spacedText(sel.Find(s).First())); ok {
			return name
		}
	}
	return ""
}

// normalize folds full-width digits and letters to ASCII and collapses runs
// of whitespace into single spaces.
func normalize(s string) string {
	return strings.Join(strings.Fields(width.Fold.String(s)), " ")
}

// spacedText is like Selection.Text but separates text nodes, so values split
// by <br> do not run together.
func spacedText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		collectText(n, &b)
	}
	return normalize(b.String())
}

func collectText(n *html.Node, b *strings.Builder) {
	switch {
	case n.Type == html.TextNode:
		b.WriteString(n.Data)
		b.WriteByte(' ')
		return
	case n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style"):
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}
