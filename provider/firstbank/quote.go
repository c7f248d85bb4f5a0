package firstbank

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Table cell positions (1-based)
const (
	cellCurrency = 1
	cellBuying   = 3
	cellSelling  = 4
)

// QuoteRecord is the parsed quote set for a single currency.
// Prices are in anchor currency units per one unit of the currency
type QuoteRecord struct {
	DisplayName  string
	CurrencyCode string

	CashBuy  decimal.NullDecimal
	CashSell decimal.NullDecimal
	SpotBuy  decimal.NullDecimal
	SpotSell decimal.NullDecimal
}

// HasSpot returns true if both spot prices are present
func (q QuoteRecord) HasSpot() bool {
	return q.SpotBuy.Valid && q.SpotSell.Valid
}

// HasCash returns true if both cash prices are present
func (q QuoteRecord) HasCash() bool {
	return q.CashBuy.Valid && q.CashSell.Valid
}

// rowGroup holds the raw rows published for a single currency name
type rowGroup struct {
	name string
	rows []Row
}

// ParseQuotes converts the table rows into one quote record per currency,
// in first-seen order. The first row of a currency is its spot quote, the
// (optional) second row is its cash quote
func ParseQuotes(rows []Row) ([]QuoteRecord, error) {
	groups, err := groupRows(rows)
	if err != nil {
		return nil, err
	}

	quotes := make([]QuoteRecord, 0, len(groups))

	for _, g := range groups {
		q, err := reduceGroup(g)
		if err != nil {
			return nil, err
		}

		quotes = append(quotes, q)
	}

	return quotes, nil
}

// groupRows groups the rows by currency name, preserving first-seen order
func groupRows(rows []Row) ([]rowGroup, error) {
	var (
		groups = make([]rowGroup, 0, len(rows))
		index  = make(map[string]int, len(rows))
	)

	for i, row := range rows {
		if len(row) < cellSelling {
			return nil, fmt.Errorf(
				"%w: row %d has %d cells, expected at least %d",
				ErrMalformedRow,
				i+1,
				len(row),
				cellSelling,
			)
		}

		name, _ := row.Cell(cellCurrency)
		if name == "" {
			return nil, fmt.Errorf("%w: row %d has no currency name", ErrMalformedRow, i+1)
		}

		idx, ok := index[name]
		if !ok {
			index[name] = len(groups)
			groups = append(groups, rowGroup{name: name, rows: []Row{row}})

			continue
		}

		groups[idx].rows = append(groups[idx].rows, row)
	}

	return groups, nil
}

// reduceGroup reduces the currency's rows into a single quote record
func reduceGroup(g rowGroup) (QuoteRecord, error) {
	displayName, code := splitCurrencyName(g.name)

	q := QuoteRecord{
		DisplayName:  displayName,
		CurrencyCode: code,
	}

	var err error

	switch len(g.rows) {
	case 2:
		if q.CashBuy, q.CashSell, err = parsePricePair(g.rows[1]); err != nil {
			return QuoteRecord{}, fmt.Errorf("cash quote for %s: %w", code, err)
		}

		fallthrough
	case 1:
		if q.SpotBuy, q.SpotSell, err = parsePricePair(g.rows[0]); err != nil {
			return QuoteRecord{}, fmt.Errorf("spot quote for %s: %w", code, err)
		}
	default:
		return QuoteRecord{}, fmt.Errorf(
			"%w: currency %q spans %d rows",
			ErrMalformedRow,
			g.name,
			len(g.rows),
		)
	}

	return q, nil
}

// parsePricePair parses the buying and selling cells of the row
func parsePricePair(row Row) (decimal.NullDecimal, decimal.NullDecimal, error) {
	buyTxt, _ := row.Cell(cellBuying)
	sellTxt, _ := row.Cell(cellSelling)

	buy, err := parsePrice(buyTxt)
	if err != nil {
		return decimal.NullDecimal{}, decimal.NullDecimal{}, err
	}

	sell, err := parsePrice(sellTxt)
	if err != nil {
		return decimal.NullDecimal{}, decimal.NullDecimal{}, err
	}

	return buy, sell, nil
}

// parsePrice parses a price cell. Placeholders ("-") and empty cells are absent
func parsePrice(s string) (decimal.NullDecimal, error) {
	s = cleanCell(s)
	if s == "" || strings.Contains(s, "-") {
		return decimal.NullDecimal{}, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("%w %q: %w", ErrNumericParse, s, err)
	}

	return decimal.NewNullDecimal(d), nil
}

// splitCurrencyName splits a display cell like "美金(USD)" into
// its display name and upper-case currency code
func splitCurrencyName(s string) (string, string) {
	s = strings.TrimSpace(s)

	name, code, found := strings.Cut(s, "(")
	name = strings.TrimSpace(name)

	if !found {
		return name, strings.ToUpper(name)
	}

	code = strings.TrimSpace(strings.ReplaceAll(code, ")", ""))

	return name, strings.ToUpper(code)
}
