package appstore

import (
	"compress/gzip"
	"context"
	"crypto/ecdsa"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/zerocost/zerocost-etl/report"
)

// DefaultURL is the App Store Connect sales reports endpoint.
const DefaultURL = "https://api.appstoreconnect.apple.com/v1/salesReports"

const (
	// audience claim for App Store Connect API tokens
	audience = "appstoreconnect-v1"

	// tokenExpiry is the lifetime of a generated bearer token
	tokenExpiry = 20 * time.Minute
)

// Source fetches install counts from the App Store Connect daily sales summary report.
type Source struct {
	keyID    string
	issuerID string
	vendorID string
	key      *ecdsa.PrivateKey
	url      string
	client   *http.Client
}

// NewSource parses the PEM-encoded EC private key and returns a sales report source.
func NewSource(keyID, issuerID, vendorID string, privateKey []byte) (*Source, error) {
	key, err := jwt.ParseECPrivateKeyFromPEM(privateKey)
	if err != nil {
		return nil, fmt.Errorf("invalid App Store Connect private key (%w)", err)
	}

	return &Source{
		keyID:    keyID,
		issuerID: issuerID,
		vendorID: vendorID,
		key:      key,
		url:      DefaultURL,
		client:   http.DefaultClient,
	}, nil
}

// Fetch returns the iOS install rows for the target date. Any non-200 response is a
// failure - the endpoint does not distinguish 'report not ready yet' from other errors.
func (s *Source) Fetch(ctx context.Context, date time.Time) (report.Rows, error) {
	token, err := s.token(time.Now())
	if err != nil {
		return nil, fmt.Errorf("unable to sign bearer token (%w)", err)
	}

	target := date.Format("2006-01-02")

	rq, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}

	query := rq.URL.Query()
	query.Set("filter[frequency]", "DAILY")
	query.Set("filter[reportSubType]", "SUMMARY")
	query.Set("filter[reportType]", "SALES")
	query.Set("filter[reportDate]", target)
	query.Set("filter[vendorNumber]", s.vendorID)
	rq.URL.RawQuery = query.Encode()

	rq.Header.Set("Authorization", "Bearer "+token)

	response, err := s.client.Do(rq)
	if err != nil {
		return nil, err
	}

	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(response.Body)
		return nil, fmt.Errorf("sales report request failed with status %v: %s", response.StatusCode, body)
	}

	// ... decompress (the report is a gzipped TSV)
	gz, err := gzip.NewReader(response.Body)
	if err != nil {
		return nil, fmt.Errorf("unable to decompress sales report (%w)", err)
	}

	defer gz.Close()

	content, err := io.ReadAll(gz)
	if err != nil {
		return nil, fmt.Errorf("unable to decompress sales report (%w)", err)
	}

	return parse(string(content), target)
}

// token generates a short-lived ES256 bearer token for the App Store Connect API.
func (s *Source) token(now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:    s.issuerID,
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenExpiry)),
		Audience:  jwt.ClaimStrings{audience},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodES256, claims)
	token.Header["kid"] = s.keyID

	return token.SignedString(s.key)
}

// parse extracts the (country, units) pairs from the tab-separated report. Column
// positions are located by name in the header row - the report layout is not fixed.
func parse(content string, target string) (report.Rows, error) {
	lines := strings.Split(strings.TrimSpace(strings.ReplaceAll(content, "\r\n", "\n")), "\n")

	records := make([][]string, 0, len(lines))
	for _, line := range lines {
		records = append(records, strings.Split(line, "\t"))
	}

	table, err := report.NewTable(records)
	if err != nil {
		return nil, fmt.Errorf("unable to parse sales report (%v)", err)
	}

	if _, ok := table.Lookup("Units"); !ok {
		return nil, fmt.Errorf("could not find 'Units' column in sales report")
	}

	if _, ok := table.Lookup("Country Code"); !ok {
		return nil, fmt.Errorf("could not find 'Country Code' column in sales report")
	}

	rows := report.Rows{}

	for _, record := range table.Records() {
		v, _ := table.Get(record, "Units")

		units, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid 'Units' value '%s' in sales report", v)
		}

		country, _ := table.Get(record, "Country Code")

		if units > 0 {
			rows = append(rows, report.Row{
				Date:     target,
				Country:  country,
				Platform: report.IOS,
				Count:    units,
			})
		}
	}

	return rows, nil
}
