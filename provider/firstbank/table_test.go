package firstbank

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTableHTML mirrors the published page layout
const testTableHTML = `<html>
<body>
<table id="table2"><tr><td>unrelated</td></tr></table>
<table id="table1">
  <tr><td>幣別</td><td>類別</td><td>買進</td><td>賣出</td></tr>
  <tr><td>美金(USD)&nbsp;</td><td>即期</td><td> 31.5 </td><td>31.9</td></tr>
  <tr><td>美金(USD)&nbsp;</td><td>現金</td><td>31.2</td><td>32.0</td></tr>
  <tr><td>日圓(JPY)</td><td>即期</td><td>0.21</td><td>0.22</td></tr>
  <tr><td>人民幣(CNY)</td><td>即期</td><td>-</td><td>-</td></tr>
  <tr><td>人民幣(CNY)</td><td>現金</td><td>4.3</td><td>4.5</td></tr>
</table>
</body>
</html>`

func TestTable_ParseTable(t *testing.T) {
	t.Parallel()

	t.Run("valid table", func(t *testing.T) {
		t.Parallel()

		rows, err := ParseTable(strings.NewReader(testTableHTML))
		require.NoError(t, err)

		// The header row is skipped
		require.Len(t, rows, 5)

		assert.Equal(t, Row{"美金(USD)", "即期", "31.5", "31.9"}, rows[0])
		assert.Equal(t, Row{"美金(USD)", "現金", "31.2", "32.0"}, rows[1])
		assert.Equal(t, Row{"日圓(JPY)", "即期", "0.21", "0.22"}, rows[2])
		assert.Equal(t, Row{"人民幣(CNY)", "即期", "-", "-"}, rows[3])
	})

	t.Run("missing table", func(t *testing.T) {
		t.Parallel()

		_, err := ParseTable(strings.NewReader(`<table id="table2"><tr><td>x</td></tr></table>`))

		assert.ErrorIs(t, err, ErrMalformedRow)
	})

	t.Run("header only", func(t *testing.T) {
		t.Parallel()

		rows, err := ParseTable(strings.NewReader(`<table id="table1"><tr><th>幣別</th></tr></table>`))
		require.NoError(t, err)

		assert.Empty(t, rows)
	})
}

func TestTable_Cell(t *testing.T) {
	t.Parallel()

	row := Row{"a", "b", "c"}

	value, ok := row.Cell(1)
	assert.True(t, ok)
	assert.Equal(t, "a", value)

	_, ok = row.Cell(4)
	assert.False(t, ok)

	_, ok = row.Cell(0)
	assert.False(t, ok)
}

func TestTable_CleanCell(t *testing.T) {
	t.Parallel()

	testTable := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "31.5", "31.5"},
		{"whitespace", "  31.5\n\t", "31.5"},
		{"non-breaking space", "31.5\u00a0", "31.5"},
		{"escaped nbsp", "美金(USD)&nbsp;", "美金(USD)"},
	}

	for _, testCase := range testTable {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, cleanCell(testCase.input))
		})
	}
}
