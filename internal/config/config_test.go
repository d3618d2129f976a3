package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_TYPE", "")
	t.Setenv("HTTP_ADDR", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DBTypePostgres, cfg.DBType)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.True(t, cfg.RunMigrations)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DATABASE_TYPE", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/x.db")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DBTypeSQLite, cfg.DBType)
	assert.Equal(t, "/tmp/x.db", cfg.SQLitePath)
	assert.Equal(t, "cache:6379", cfg.RedisAddr)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
}

func TestLoadRejectsUnknownDatabase(t *testing.T) {
	t.Setenv("DATABASE_TYPE", "mysql")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsEmptyOriginList(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", " , ,")

	_, err := Load()
	assert.EqualError(t, err, "CORS_ALLOWED_ORIGINS lists no origins")
}

func TestPostgresDSN(t *testing.T) {
	cfg := Config{DBHost: "db", DBUser: "u", DBPassword: "p", DBName: "n", DBPort: "5432", DBSSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5432 sslmode=disable TimeZone=UTC", cfg.PostgresDSN())

	cfg.PostgresURL = "postgres://u:p@db/n"
	assert.Equal(t, "postgres://u:p@db/n", cfg.PostgresDSN())
}

func TestInitRedisWithoutAddress(t *testing.T) {
	assert.Nil(t, InitRedis(Config{}, nil))
}
