package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "poles", cfg.Bucket)
	assert.Equal(t, "polebrothers.db", cfg.SQLitePath)
}

func TestValidateIssuerNamesEveryMissingKey(t *testing.T) {
	cfg := &Config{}
	err := cfg.ValidateIssuer()
	require.Error(t, err)

	assert.Contains(t, err.Error(), "MINIO_ENDPOINT")
	assert.Contains(t, err.Error(), "MINIO_ACCESS_KEY")
	assert.Contains(t, err.Error(), "MINIO_SECRET_KEY")
	assert.Contains(t, err.Error(), "PUBLIC_BASE_URL")
}

func TestValidateIssuerComplete(t *testing.T) {
	cfg := &Config{
		MinioEndpoint:  "localhost:9000",
		MinioAccessKey: "key",
		MinioSecretKey: "secret",
		PublicBaseURL:  "https://cdn.example.com",
	}
	assert.NoError(t, cfg.ValidateIssuer())
}

func TestValidateCapture(t *testing.T) {
	cfg := &Config{SQLitePath: "x.db"}
	err := cfg.ValidateCapture()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WORKER_URL")

	cfg.WorkerURL = "https://worker.example.com/"
	assert.NoError(t, cfg.ValidateCapture())
}

func TestPublicBaseURLTrailingSlashTrimmed(t *testing.T) {
	t.Setenv("PUBLIC_BASE_URL", "https://cdn.example.com/")

	cfg := Load()
	assert.Equal(t, "https://cdn.example.com", cfg.PublicBaseURL)
}
