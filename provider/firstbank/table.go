package firstbank

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// tableSelector locates the published rate table
const tableSelector = "table#table1"

// Row is a single table row, as an ordered list of cell texts
type Row []string

// Cell returns the text of the n-th cell (1-based, like the page layout)
func (r Row) Cell(n int) (string, bool) {
	if n < 1 || n > len(r) {
		return "", false
	}

	return r[n-1], true
}

// ParseTable reads the HTML document and extracts the rate table rows.
// The header row is skipped
func ParseTable(r io.Reader) ([]Row, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("unable to construct query doc: %w", err)
	}

	return tableRows(doc)
}

// tableRows extracts the data rows of the rate table from the document
func tableRows(doc *goquery.Document) ([]Row, error) {
	table := doc.Find(tableSelector).First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("%w: missing element %s", ErrMalformedRow, tableSelector)
	}

	trs := table.Find("tr")
	rows := make([]Row, 0, trs.Length())

	trs.Each(func(i int, tr *goquery.Selection) {
		if i == 0 {
			return // header
		}

		tds := tr.ChildrenFiltered("td")
		row := make(Row, 0, tds.Length())

		tds.Each(func(_ int, td *goquery.Selection) {
			row = append(row, cleanCell(td.Text()))
		})

		rows = append(rows, row)
	})

	return rows, nil
}

// cleanCell strips whitespace and non-breaking space artifacts from cell text
func cleanCell(s string) string {
	s = strings.ReplaceAll(s, "&nbsp;", "")
	s = strings.ReplaceAll(s, "\u00a0", "")

	return strings.TrimSpace(s)
}
