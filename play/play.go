package play

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"cloud.google.com/go/storage"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/zerocost/zerocost-etl/report"
)

// ErrPermissionDenied is returned when the service account is not allowed to read the
// Play Console export bucket.
var ErrPermissionDenied = errors.New("permission denied")

// Bucket is the slice of the object store the fetcher needs - an existence check (to
// distinguish 'not yet published' from other failures) and a download.
type Bucket interface {
	Exists(ctx context.Context, object string) (bool, error)
	Download(ctx context.Context, object string) (io.ReadCloser, error)
}

// Source fetches install counts from the Play Console monthly installs overview export.
type Source struct {
	bucket   Bucket
	bucketID string
	pkg      string
}

func NewSource(ctx context.Context, credentials []byte, bucketID, pkg string) (*Source, error) {
	client, err := storage.NewClient(ctx, option.WithCredentialsJSON(credentials))
	if err != nil {
		return nil, fmt.Errorf("unable to create storage client (%w)", err)
	}

	return &Source{
		bucket:   gcs{client.Bucket(bucketID)},
		bucketID: bucketID,
		pkg:      pkg,
	}, nil
}

// Fetch returns the Android install rows for the target date. The overview export is a
// monthly cumulative file that Google rewrites every day - a missing file (typically at
// the start of a month) is expected and yields no rows without an error.
func (s *Source) Fetch(ctx context.Context, date time.Time) (report.Rows, error) {
	object := fmt.Sprintf("stats/installs/installs_%s_%s_overview.csv", s.pkg, date.Format("200601"))

	if ok, err := s.bucket.Exists(ctx, object); err != nil {
		return nil, s.classify(err, object)
	} else if !ok {
		infof("File %s not found (maybe start of month?)", object)
		return nil, nil
	}

	r, err := s.bucket.Download(ctx, object)
	if err != nil {
		return nil, s.classify(err, object)
	}

	defer r.Close()

	// Play Console exports are UTF-16, not UTF-8
	decoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()

	records, err := csv.NewReader(transform.NewReader(r, decoder)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("unable to parse %s (%w)", object, err)
	}

	table, err := report.NewTable(records)
	if err != nil {
		return nil, fmt.Errorf("unable to parse %s (%w)", object, err)
	}

	if _, ok := table.Lookup("Date"); !ok {
		return nil, fmt.Errorf("could not find 'Date' column in %s", object)
	}

	rows := report.Rows{}
	target := date.Format("2006-01-02")

	for _, record := range table.Records() {
		if v, _ := table.Get(record, "Date"); v != target {
			continue
		}

		installs := 0
		if v, ok := table.Get(record, "Daily User Installs"); ok {
			installs, _ = strconv.Atoi(v)
		}

		country, ok := table.Get(record, "Country")
		if !ok {
			country = "Unknown"
		}

		if installs > 0 {
			rows = append(rows, report.Row{
				Date:     target,
				Country:  country,
				Platform: report.Android,
				Count:    installs,
			})
		}
	}

	return rows, nil
}

func (s *Source) classify(err error, object string) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusForbidden {
		return fmt.Errorf("%w accessing %s - the service account needs 'Storage Object Viewer' on bucket %s", ErrPermissionDenied, object, s.bucketID)
	}

	return fmt.Errorf("unable to download %s (%w)", object, err)
}

type gcs struct {
	bucket *storage.BucketHandle
}

func (g gcs) Exists(ctx context.Context, object string) (bool, error) {
	if _, err := g.bucket.Object(object).Attrs(ctx); errors.Is(err, storage.ErrObjectNotExist) {
		return false, nil
	} else if err != nil {
		return false, err
	}

	return true, nil
}

func (g gcs) Download(ctx context.Context, object string) (io.ReadCloser, error) {
	return g.bucket.Object(object).NewReader(ctx)
}

func infof(format string, args ...interface{}) {
	log.Printf("%-5s %s", "INFO", fmt.Sprintf(format, args...))
}
