package report

// Platform identifies the vendor a row was fetched from.
type Platform string

const (
	Android Platform = "Android"
	IOS     Platform = "iOS"
)

// Row is a single (date, country, platform, count) install record. Rows have no identity
// beyond their field values - repeated runs for the same date append duplicates.
type Row struct {
	Date     string
	Country  string
	Platform Platform
	Count    int
}

type Rows []Row

// Values converts the rows to the sheets API value format, preserving order.
func (rows Rows) Values() [][]interface{} {
	values := make([][]interface{}, 0, len(rows))

	for _, row := range rows {
		values = append(values, []interface{}{row.Date, row.Country, string(row.Platform), row.Count})
	}

	return values
}
