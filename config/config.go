package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds every environment key the core consumes. Presence of the
// required keys is a hard precondition; Validate reports all missing ones
// at once instead of failing on the first network call.
type Config struct {
	Port string

	// Object storage (issuer side).
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	Bucket         string
	PublicBaseURL  string

	// Metadata backend. DatabaseURL (postgres) wins when set; otherwise
	// SQLitePath is used, which suits local development.
	DatabaseURL string
	SQLitePath  string

	// Client pipeline.
	WorkerURL    string
	PhotoDir     string
	DeviceIDPath string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	}
	return def
}

func Load() *Config {
	return &Config{
		Port:           getenv("PORT", "8080"),
		MinioEndpoint:  os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinioUseSSL:    getbool("MINIO_USE_SSL", false),
		Bucket:         getenv("MINIO_BUCKET", "poles"),
		PublicBaseURL:  strings.TrimRight(os.Getenv("PUBLIC_BASE_URL"), "/"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		SQLitePath:     getenv("SQLITE_PATH", "polebrothers.db"),
		WorkerURL:      os.Getenv("WORKER_URL"),
		PhotoDir:       getenv("PHOTO_DIR", os.TempDir()+"/photos"),
		DeviceIDPath:   getenv("DEVICE_ID_PATH", ".device_id"),
	}
}

// ValidateIssuer checks the keys the upload URL issuer needs.
func (c *Config) ValidateIssuer() error {
	var missing []string
	if c.MinioEndpoint == "" {
		missing = append(missing, "MINIO_ENDPOINT")
	}
	if c.MinioAccessKey == "" {
		missing = append(missing, "MINIO_ACCESS_KEY")
	}
	if c.MinioSecretKey == "" {
		missing = append(missing, "MINIO_SECRET_KEY")
	}
	if c.PublicBaseURL == "" {
		missing = append(missing, "PUBLIC_BASE_URL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ValidateCapture checks the keys the capture pipeline needs.
func (c *Config) ValidateCapture() error {
	var missing []string
	if c.WorkerURL == "" {
		missing = append(missing, "WORKER_URL")
	}
	if c.DatabaseURL == "" && c.SQLitePath == "" {
		missing = append(missing, "DATABASE_URL or SQLITE_PATH")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment: %s", strings.Join(missing, ", "))
	}
	return nil
}
