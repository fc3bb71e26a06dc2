package report

import (
	"fmt"
	"strings"
)

// Table is a header-indexed delimited table. The name-to-position index is built once from
// the header row - vendor reports do not guarantee a fixed column order.
type Table struct {
	index   map[string]int
	records [][]string
}

func NewTable(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("Empty table")
	}

	// .. build index
	index := map[string]int{}
	for i, v := range records[0] {
		k := normalise(v)
		if _, ok := index[k]; ok {
			return nil, fmt.Errorf("Duplicate column name '%s'", v)
		}

		index[k] = i
	}

	if len(index) == 0 {
		return nil, fmt.Errorf("Missing/invalid header row")
	}

	return &Table{
		index:   index,
		records: records[1:],
	}, nil
}

// Lookup returns the position of the named column in the header row.
func (t *Table) Lookup(column string) (int, bool) {
	ix, ok := t.index[normalise(column)]

	return ix, ok
}

// Records returns the data rows (header row excluded), in file order.
func (t *Table) Records() [][]string {
	return t.records
}

// Get returns the value of the named column for a record. The second return value is false
// when the table has no such column; a short record yields an empty value.
func (t *Table) Get(record []string, column string) (string, bool) {
	ix, ok := t.index[normalise(column)]
	if !ok {
		return "", false
	}

	if ix >= len(record) {
		return "", true
	}

	return clean(record[ix]), true
}

func clean(v string) string {
	return strings.TrimSpace(v)
}

func normalise(v string) string {
	return strings.ToLower(strings.ReplaceAll(v, " ", ""))
}
