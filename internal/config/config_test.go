package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 10, cfg.Redis.PoolSize)
	assert.Equal(t, 3, cfg.DiscoverPages)
	assert.Equal(t, "https://api.themoviedb.org/3", cfg.TMDBBaseURL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("REDIS_POOL_SIZE", "25")
	t.Setenv("TMDB_DISCOVER_PAGES", "7")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Redis.PoolSize)
	assert.Equal(t, 7, cfg.DiscoverPages)
	assert.Equal(t, "9090", cfg.Port)
}

func TestLoad_InvalidNumericEnvFallsBack(t *testing.T) {
	t.Setenv("REDIS_POOL_SIZE", "-5")
	t.Setenv("TMDB_DISCOVER_PAGES", "0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Redis.PoolSize)
	assert.Equal(t, 1, cfg.DiscoverPages)
}

func TestDBConfig_DSN(t *testing.T) {
	dsn := DBConfig{
		Host: "db.internal", Port: 5433, User: "svc", Password: "secret",
		DBName: "reelpick", SSLMode: "require",
	}.DSN()
	assert.Equal(t, "host=db.internal port=5433 user=svc password=secret dbname=reelpick sslmode=require", dsn)

	withCert := DBConfig{
		Host: "db.internal", Port: 5432, User: "svc", Password: "secret",
		DBName: "reelpick", SSLMode: "verify-ca", SSLRootCert: "/etc/ssl/root.crt",
	}.DSN()
	assert.Contains(t, withCert, "sslrootcert=/etc/ssl/root.crt")
}
