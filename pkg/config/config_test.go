package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CATALOG_BACKEND", "")
	t.Setenv("TYPESENSE_URL", "")
	t.Setenv("COMPARISON_MAX_MEDICINES", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, CatalogBackendMemory, cfg.Catalog.Backend)
	assert.Equal(t, 4, cfg.Comparison.MaxMedicines)
	assert.Empty(t, cfg.Typesense.URL)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("CATALOG_BACKEND", "Postgres")
	t.Setenv("TYPESENSE_URL", "http://test-typesense:8108")
	t.Setenv("TYPESENSE_API_KEY", "test-key")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("AUTHENTICITY_LATENCY_MS", "250")
	t.Setenv("OPENAI_TIMEOUT", "5s")
	t.Setenv("CACHE_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, CatalogBackendPostgres, cfg.Catalog.Backend)
	assert.Equal(t, "http://test-typesense:8108", cfg.Typesense.URL)
	assert.Equal(t, "test-key", cfg.Typesense.APIKey)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 250*time.Millisecond, cfg.Authenticity.Latency)
	assert.Equal(t, 5*time.Second, cfg.OpenAI.Timeout)
	assert.True(t, cfg.Redis.Enabled)
}

func TestLoad_InvalidBackend(t *testing.T) {
	t.Setenv("CATALOG_BACKEND", "mongo")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "CATALOG_BACKEND")
}

func TestLoad_RejectsComparisonMaxBelowTwo(t *testing.T) {
	t.Setenv("COMPARISON_MAX_MEDICINES", "1")

	_, err := Load()
	assert.Error(t, err)
}

func TestDatabaseDSN(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: 5433, User: "u", Password: "p", Database: "pv", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=pv sslmode=disable", db.DatabaseDSN())
}
