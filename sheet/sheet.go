package sheet

import (
	"context"
	"fmt"
	"log"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/zerocost/zerocost-etl/report"
)

// Writer appends install rows to a worksheet in the destination spreadsheet.
type Writer struct {
	google        *sheets.Service
	spreadsheetID string
	worksheet     string
}

// NewWriter authorizes against the spreadsheet scope pair with the service account key
// and returns a writer for the named worksheet.
func NewWriter(ctx context.Context, credentials []byte, spreadsheetID, worksheet string) (*Writer, error) {
	config, err := google.JWTConfigFromJSON(credentials, sheets.SpreadsheetsScope, drive.DriveScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service account credentials (%w)", err)
	}

	service, err := sheets.NewService(ctx, option.WithHTTPClient(config.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to create new Sheets client (%w)", err)
	}

	return &Writer{
		google:        service,
		spreadsheetID: spreadsheetID,
		worksheet:     worksheet,
	}, nil
}

// Append appends the rows to the worksheet as new lines, in order, in a single batch
// call. An empty row list is a no-op and makes no API calls.
func (w *Writer) Append(ctx context.Context, rows report.Rows) error {
	if len(rows) == 0 {
		info("No new data to upload")
		return nil
	}

	spreadsheet, err := w.google.Spreadsheets.Get(w.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("unable to fetch spreadsheet (%w)", err)
	}

	if _, err := getSheet(spreadsheet, w.worksheet); err != nil {
		return err
	}

	values := sheets.ValueRange{
		Values: rows.Values(),
	}

	area := fmt.Sprintf("%s!A1", w.worksheet)

	if _, err := w.google.Spreadsheets.Values.Append(w.spreadsheetID, area, &values).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do(); err != nil {
		return fmt.Errorf("unable to append rows to worksheet (%w)", err)
	}

	return nil
}

func getSheet(spreadsheet *sheets.Spreadsheet, name string) (*sheets.Sheet, error) {
	for _, sheet := range spreadsheet.Sheets {
		if strings.EqualFold(strings.TrimSpace(sheet.Properties.Title), strings.TrimSpace(name)) {
			return sheet, nil
		}
	}

	return nil, fmt.Errorf("unable to identify worksheet '%s'", name)
}

func info(msg string) {
	log.Printf("%-5s %s", "INFO", msg)
}
