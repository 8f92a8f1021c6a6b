package registrysync

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func rowsFromHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestParseLotRow(t *testing.T) {
	doc := rowsFromHTML(t, `
<table><tbody>
  <tr><td>1</td><td>NIFTY</td><td>75</td></tr>
  <tr><td>2</td><td>BANKNIFTY</td><td>1,000</td></tr>
  <tr><td>3</td><td>SYMBOL</td><td>10</td></tr>
  <tr><td>4</td><td>TCS</td><td>n/a</td></tr>
  <tr><td>5</td><td></td><td>50</td></tr>
  <tr><td>short row</td></tr>
</tbody></table>`)

	var got []string
	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		underlying, lot, ok := parseLotRow(row, 1, 2)
		if !ok {
			return
		}
		got = append(got, underlying)
		switch underlying {
		case "NIFTY":
			if lot != 75 {
				t.Errorf("NIFTY lot = %d, want 75", lot)
			}
		case "BANKNIFTY":
			// Thousands separators in the lot cell are tolerated.
			if lot != 1000 {
				t.Errorf("BANKNIFTY lot = %d, want 1000", lot)
			}
		}
	})

	// Header rows, empty symbols, non-numeric lots and short rows are
	// all skipped.
	if len(got) != 2 {
		t.Errorf("expected 2 parsed rows, got %v", got)
	}
}

func TestNewScraperDefaults(t *testing.T) {
	s := NewScraper(0)
	if len(s.sources) == 0 {
		t.Fatal("expected default lot sources")
	}
	for _, src := range s.sources {
		if src.URL == "" || src.RowSelector == "" {
			t.Errorf("source %s missing URL or selector", src.Name)
		}
	}
}
