package commands

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/zerocost/zerocost-etl/report"
)

type stub struct {
	rows report.Rows
	err  error
}

func (s *stub) Fetch(ctx context.Context, date time.Time) (report.Rows, error) {
	return s.rows, s.err
}

func TestTargetDate(t *testing.T) {
	now := time.Date(2024, 3, 3, 9, 15, 0, 0, time.Local)

	if v := targetDate(now).Format("2006-01-02"); v != "2024-03-01" {
		t.Errorf("Incorrect target date - expected:%v, got:%v", "2024-03-01", v)
	}
}

func TestTargetDateAcrossDSTTransition(t *testing.T) {
	tz, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("Unexpected error loading timezone (%v)", err)
	}

	// 2025-03-09 is the US spring-forward date - 00:30 on the 10th is only 47.5 elapsed
	// hours after 00:30 on the 8th, but the target date is still two calendar days back
	now := time.Date(2025, 3, 10, 0, 30, 0, 0, tz)

	if v := targetDate(now).Format("2006-01-02"); v != "2025-03-08" {
		t.Errorf("Incorrect target date - expected:%v, got:%v", "2025-03-08", v)
	}
}

func TestFetchConcatenatesInCallOrder(t *testing.T) {
	expected := report.Rows{
		{Date: "2024-03-01", Country: "US", Platform: report.Android, Count: 5},
		{Date: "2024-03-01", Country: "DE", Platform: report.Android, Count: 1},
		{Date: "2024-03-01", Country: "JP", Platform: report.IOS, Count: 7},
	}

	android := stub{
		rows: report.Rows{
			{Date: "2024-03-01", Country: "US", Platform: report.Android, Count: 5},
			{Date: "2024-03-01", Country: "DE", Platform: report.Android, Count: 1},
		},
	}

	ios := stub{
		rows: report.Rows{
			{Date: "2024-03-01", Country: "JP", Platform: report.IOS, Count: 7},
		},
	}

	ctx := context.Background()
	date := time.Now()

	rows := fetch(ctx, &android, date)
	rows = append(rows, fetch(ctx, &ios, date)...)

	if !reflect.DeepEqual(rows, expected) {
		t.Errorf("Incorrect combined rows\n   expected: %v\n   got:      %v\n", expected, rows)
	}
}

func TestFetchDegradesFailureToZeroRows(t *testing.T) {
	expected := report.Rows{
		{Date: "2024-03-01", Country: "JP", Platform: report.IOS, Count: 7},
	}

	android := stub{
		err: errors.New("permission denied"),
	}

	ios := stub{
		rows: report.Rows{
			{Date: "2024-03-01", Country: "JP", Platform: report.IOS, Count: 7},
		},
	}

	ctx := context.Background()
	date := time.Now()

	rows := fetch(ctx, &android, date)
	rows = append(rows, fetch(ctx, &ios, date)...)

	if !reflect.DeepEqual(rows, expected) {
		t.Errorf("Incorrect combined rows\n   expected: %v\n   got:      %v\n", expected, rows)
	}
}

func TestFetchWithBothSourcesFailing(t *testing.T) {
	android := stub{err: errors.New("unable to download")}
	ios := stub{err: errors.New("sales report request failed")}

	ctx := context.Background()
	date := time.Now()

	rows := fetch(ctx, &android, date)
	rows = append(rows, fetch(ctx, &ios, date)...)

	if len(rows) != 0 {
		t.Errorf("Expected no rows when both sources fail, got %v", rows)
	}
}
