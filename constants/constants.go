package constants

import (
	"os"

	"github.com/pkg/errors"
)

var ErrMediaDirUnset = errors.New("MEDIA_PATH environment variable is not set")

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetMediaDir() (string, error) {
	path := os.Getenv("MEDIA_PATH")
	if path != "" {
		return path, nil
	}
	return "", ErrMediaDirUnset
}

func GetHistogramDir() string {
	return getenv("HISTOGRAM_PATH", "./histograms")
}

func GetOutputDir() string {
	return getenv("OUTPUT_PATH", "./generatedGroove")
}

// GetDynamoTable selects the DynamoDB store when set; otherwise histograms
// live in CSV files under GetHistogramDir.
func GetDynamoTable() string {
	return os.Getenv("DYNAMO_TABLE")
}

func GetDynamoEndpoint() string {
	return os.Getenv("DYNAMO_ENDPOINT")
}

func GetPort() string {
	return getenv("PORT", "8080")
}

func GetEnvironment() string {
	return getenv("ENVIRONMENT", "development")
}

func GetSentryDSN() string {
	return os.Getenv("SENTRY_DSN")
}

const ExtractWorkers = 8
