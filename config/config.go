package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// WorksheetName is the fixed worksheet tab the combined rows are appended to.
const WorksheetName = "Data"

// Config carries all process configuration. It is read once from the environment at startup
// and passed into the fetchers and the sheet writer.
type Config struct {
	// Google service account key (JSON content), used both for the Play Console export
	// bucket and the destination spreadsheet.
	GCPKey string `env:"GCP_JSON_KEY,required"`

	// Google Play
	BucketID    string `env:"GCP_BUCKET_ID,required"`
	PackageName string `env:"ANDROID_PACKAGE_NAME,required"`

	// App Store Connect
	AppleKeyID    string `env:"APPLE_KEY_ID,required"`
	AppleIssuerID string `env:"APPLE_ISSUER_ID,required"`
	AppleVendorID string `env:"APPLE_VENDOR_ID,required"`

	// PEM content of the App Store Connect .p8 key. Never trimmed - the key must be
	// preserved byte-for-byte, line breaks included.
	ApplePrivateKey string `env:"APPLE_PRIVATE_KEY,required"`

	// Google Sheets
	SheetID string `env:"SHEET_ID,required"`
}

// Load reads the configuration from the process environment. If dotenv is not blank the
// named file is loaded into the environment first (for local runs - a scheduler normally
// provides the environment directly).
func Load(dotenv string) (Config, error) {
	config := Config{}

	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil {
			return config, fmt.Errorf("unable to load %s (%w)", dotenv, err)
		}
	}

	if err := envdecode.Decode(&config); err != nil {
		return config, err
	}

	// ... trim incidental whitespace from everything except the Apple private key
	config.GCPKey = strings.TrimSpace(config.GCPKey)
	config.BucketID = strings.TrimSpace(config.BucketID)
	config.PackageName = strings.TrimSpace(config.PackageName)
	config.AppleKeyID = strings.TrimSpace(config.AppleKeyID)
	config.AppleIssuerID = strings.TrimSpace(config.AppleIssuerID)
	config.AppleVendorID = strings.TrimSpace(config.AppleVendorID)
	config.SheetID = strings.TrimSpace(config.SheetID)

	if !json.Valid([]byte(config.GCPKey)) {
		return config, fmt.Errorf("GCP_JSON_KEY is not valid JSON")
	}

	return config, nil
}
