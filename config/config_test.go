package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "coffee-journal", cfg.AppName)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "coffeejournal", cfg.DBName)
	assert.Equal(t, time.Hour, cfg.AccessTTL)
	assert.Equal(t, "entries", cfg.ESEntriesIndex)
	assert.True(t, cfg.MailSendEnabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("JWT_ACCESS_TTL", "15m")
	t.Setenv("MAIL_SEND_ENABLED", "false")

	cfg := Load()
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, int32(25), cfg.DBMaxConns)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.False(t, cfg.MailSendEnabled)
}

func TestValidateMissingBucket(t *testing.T) {
	cfg := Load()
	cfg.GCSBucket = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GCS_BUCKET")
}

func TestValidateDevSecretsRejectedOutsideDevelopment(t *testing.T) {
	cfg := Load()
	cfg.GCSBucket = "bucket"
	cfg.Env = "production"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_ACCESS_SECRET")
	assert.Contains(t, err.Error(), "JWT_REFRESH_SECRET")

	cfg.JWTAccessSecret = "real-access-secret"
	cfg.JWTRefreshSecret = "real-refresh-secret"
	assert.NoError(t, cfg.Validate())
}

func TestPostgresDSN(t *testing.T) {
	cfg := Load()
	cfg.DBUser = "app"
	cfg.DBPassword = "secret"
	cfg.DBHost = "db"
	cfg.DBPort = "5433"
	cfg.DBName = "journal"
	cfg.DBSSLMode = "require"

	assert.Equal(t, "postgres://app:secret@db:5433/journal?sslmode=require", cfg.PostgresDSN())
}

func TestSplitCSVHelpers(t *testing.T) {
	cfg := Load()
	cfg.CORSAllowedOrigins = "http://localhost:3000, https://app.example.com ,"
	assert.Equal(t, []string{"http://localhost:3000", "https://app.example.com"}, cfg.CORSOrigins())

	cfg.ElasticsearchAddrs = "http://es1:9200,http://es2:9200"
	assert.Equal(t, []string{"http://es1:9200", "http://es2:9200"}, cfg.ESAddrs())
}
