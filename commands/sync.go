package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/zerocost/zerocost-etl/appstore"
	"github.com/zerocost/zerocost-etl/config"
	"github.com/zerocost/zerocost-etl/play"
	"github.com/zerocost/zerocost-etl/report"
	"github.com/zerocost/zerocost-etl/sheet"
)

// reportingLag is how many calendar days the target date trails the current date. Apple
// reports are usually ready the next day but Play exports can lag two days.
const reportingLag = 2

var SyncCmd = Sync{
	date:  "",
	debug: false,
}

// Sync fetches the install counts for the target date from both vendor reporting systems
// and appends the combined rows to the destination worksheet.
type Sync struct {
	date  string
	debug bool
}

func (cmd *Sync) Name() string {
	return "sync"
}

func (cmd *Sync) Description() string {
	return "Fetches the daily install counts from Google Play and the App Store and appends them to the worksheet"
}

func (cmd *Sync) Usage() string {
	return "[--date <date>]"
}

func (cmd *Sync) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] [--env <file>] sync [--date <date>]\n", APP)
	fmt.Println()
	fmt.Printf("  Fetches the install counts for the target date and appends them to the '%s' worksheet\n", config.WorksheetName)
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %s sync\n", APP)
	fmt.Printf("    %s --debug --env .env sync --date 2024-03-01\n", APP)
	fmt.Println()
}

func (cmd *Sync) FlagSet() *flag.FlagSet {
	flagset := flag.NewFlagSet("sync", flag.ExitOnError)

	flagset.StringVar(&cmd.date, "date", cmd.date, "Target date (YYYY-MM-DD). Defaults to two days ago to allow for vendor reporting lag")

	return flagset
}

func (cmd *Sync) Execute(args ...interface{}) error {
	options := args[0].(*Options)

	cmd.debug = options.Debug

	// ... target date
	date := targetDate(time.Now())

	if v := strings.TrimSpace(cmd.date); v != "" {
		d, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --date '%s' - expected a date like '2024-03-01'", cmd.date)
		}

		date = d
	}

	infof("Running ETL for date %s", date.Format("2006-01-02"))

	// ... configuration
	conf, err := config.Load(options.Env)
	if err != nil {
		return fmt.Errorf("configuration error (%v)", err)
	}

	if cmd.debug {
		debugf("Spreadsheet - ID:%s  worksheet:%s", conf.SheetID, config.WorksheetName)
		debugf("Play export - bucket:%s  package:%s", conf.BucketID, conf.PackageName)
	}

	ctx := context.Background()

	// ... fetch
	android, err := play.NewSource(ctx, []byte(conf.GCPKey), conf.BucketID, conf.PackageName)
	if err != nil {
		return err
	}

	ios, err := appstore.NewSource(conf.AppleKeyID, conf.AppleIssuerID, conf.AppleVendorID, []byte(conf.ApplePrivateKey))
	if err != nil {
		return err
	}

	infof("Fetching Google Play data")
	rows := fetch(ctx, android, date)

	infof("Fetching App Store data")
	rows = append(rows, fetch(ctx, ios, date)...)

	// ... upload
	if len(rows) == 0 {
		infof("No new data to upload")
		return nil
	}

	writer, err := sheet.NewWriter(ctx, []byte(conf.GCPKey), conf.SheetID, config.WorksheetName)
	if err != nil {
		return err
	}

	infof("Uploading %v rows to worksheet '%s'", len(rows), config.WorksheetName)

	if err := writer.Append(ctx, rows); err != nil {
		return err
	}

	infof("Upload complete")

	return nil
}

// targetDate returns the calendar day reportingLag days before now. Calendar arithmetic,
// not elapsed hours - across a DST transition 48 elapsed hours is not two days.
func targetDate(now time.Time) time.Time {
	return now.AddDate(0, 0, -reportingLag)
}

// fetcher is the contract shared by both vendor sources.
type fetcher interface {
	Fetch(ctx context.Context, date time.Time) (report.Rows, error)
}

// fetch degrades a fetch failure to zero rows for that platform - a failure in one vendor
// never blocks the other.
func fetch(ctx context.Context, source fetcher, date time.Time) report.Rows {
	rows, err := source.Fetch(ctx, date)
	if err != nil {
		warnf("%v", err)
		return nil
	}

	infof("Found %v rows", len(rows))

	return rows
}
