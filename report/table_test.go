package report

import (
	"testing"
)

func TestNewTable(t *testing.T) {
	records := [][]string{
		{"Date", "Country", "Daily User Installs"},
		{"2024-03-01", "US", "5"},
		{"2024-03-01", "JP", "0"},
	}

	table, err := NewTable(records)
	if err != nil {
		t.Fatalf("Unexpected error returned from NewTable (%v)", err)
	}

	if table == nil {
		t.Fatalf("NewTable returned %v", table)
	}

	if v, ok := table.Get(table.Records()[0], "Country"); !ok || v != "US" {
		t.Errorf("Incorrect 'Country' value - expected:%v, got:%v", "US", v)
	}

	if v, ok := table.Get(table.Records()[1], "Daily User Installs"); !ok || v != "0" {
		t.Errorf("Incorrect 'Daily User Installs' value - expected:%v, got:%v", "0", v)
	}
}

func TestNewTableWithOutOfOrderColumns(t *testing.T) {
	records := [][]string{
		{"Units", "SKU", "Country Code"},
		{"7", "com.example.app", "JP"},
	}

	table, err := NewTable(records)
	if err != nil {
		t.Fatalf("Unexpected error returned from NewTable (%v)", err)
	}

	if v, ok := table.Get(table.Records()[0], "Country Code"); !ok || v != "JP" {
		t.Errorf("Incorrect 'Country Code' value - expected:%v, got:%v", "JP", v)
	}

	if v, ok := table.Get(table.Records()[0], "Units"); !ok || v != "7" {
		t.Errorf("Incorrect 'Units' value - expected:%v, got:%v", "7", v)
	}
}

func TestNewTableWithEmptyTable(t *testing.T) {
	records := [][]string{}

	if _, err := NewTable(records); err == nil {
		t.Fatalf("Expected error return for empty table, got %v", err)
	}
}

func TestNewTableWithDuplicatedColumn(t *testing.T) {
	records := [][]string{
		{"Date", "Country", "Date"},
		{"2024-03-01", "US", "2024-03-01"},
	}

	if _, err := NewTable(records); err == nil {
		t.Fatalf("Expected error return for duplicated column, got %v", err)
	}
}

func TestTableLookup(t *testing.T) {
	records := [][]string{
		{"Provider", "Country Code", "Units"},
	}

	table, err := NewTable(records)
	if err != nil {
		t.Fatalf("Unexpected error returned from NewTable (%v)", err)
	}

	if ix, ok := table.Lookup("Units"); !ok || ix != 2 {
		t.Errorf("Incorrect 'Units' index - expected:%v, got:%v", 2, ix)
	}

	if _, ok := table.Lookup("Developer Proceeds"); ok {
		t.Errorf("Expected lookup miss for 'Developer Proceeds'")
	}
}

func TestTableGetWithMissingColumn(t *testing.T) {
	records := [][]string{
		{"Date", "Daily User Installs"},
		{"2024-03-01", "5"},
	}

	table, err := NewTable(records)
	if err != nil {
		t.Fatalf("Unexpected error returned from NewTable (%v)", err)
	}

	if _, ok := table.Get(table.Records()[0], "Country"); ok {
		t.Errorf("Expected miss for absent 'Country' column")
	}
}

func TestTableGetWithShortRecord(t *testing.T) {
	records := [][]string{
		{"Date", "Country", "Daily User Installs"},
		{"2024-03-01"},
	}

	table, err := NewTable(records)
	if err != nil {
		t.Fatalf("Unexpected error returned from NewTable (%v)", err)
	}

	if v, ok := table.Get(table.Records()[0], "Country"); !ok || v != "" {
		t.Errorf("Incorrect value for short record - expected:'%v', got:'%v'", "", v)
	}
}
