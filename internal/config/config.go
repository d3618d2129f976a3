package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DBTypePostgres = "postgres"
	DBTypeSQLite   = "sqlite"
)

// Config holds application configuration.
type Config struct {
	Environment        string
	HTTPAddr           string
	LogLevel           string
	CORSAllowedOrigins []string

	DBType            string
	PostgresURL       string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSSLMode         string
	SQLitePath        string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	RunMigrations     bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration
}

// Load reads .env (if present) and the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system env")
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := Config{
		Environment:        v.GetString("app_env"),
		HTTPAddr:           v.GetString("http_addr"),
		LogLevel:           v.GetString("log_level"),
		CORSAllowedOrigins: splitList(v.GetString("cors_allowed_origins")),

		DBType:            strings.ToLower(strings.TrimSpace(v.GetString("database_type"))),
		PostgresURL:       strings.TrimSpace(v.GetString("postgres_url")),
		DBHost:            v.GetString("database_host"),
		DBPort:            v.GetString("database_port"),
		DBUser:            v.GetString("database_user"),
		DBPassword:        v.GetString("database_password"),
		DBName:            v.GetString("database_name"),
		DBSSLMode:         v.GetString("database_sslmode"),
		SQLitePath:        v.GetString("sqlite_path"),
		DBMaxOpenConns:    v.GetInt("database_max_open_conns"),
		DBMaxIdleConns:    v.GetInt("database_max_idle_conns"),
		DBConnMaxLifetime: v.GetDuration("database_conn_max_lifetime"),
		RunMigrations:     v.GetBool("run_migrations"),

		RedisAddr:     strings.TrimSpace(v.GetString("redis_addr")),
		RedisPassword: v.GetString("redis_password"),
		RedisDB:       v.GetInt("redis_db"),
		CacheTTL:      v.GetDuration("cache_ttl"),
	}

	switch cfg.DBType {
	case DBTypePostgres, DBTypeSQLite:
	default:
		return Config{}, fmt.Errorf("unsupported DATABASE_TYPE %q", cfg.DBType)
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, errors.New("CORS_ALLOWED_ORIGINS lists no origins")
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", "development")
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("cors_allowed_origins", "http://localhost:3000")

	v.SetDefault("database_type", DBTypePostgres)
	v.SetDefault("postgres_url", "")
	v.SetDefault("database_host", "localhost")
	v.SetDefault("database_port", "5432")
	v.SetDefault("database_user", "postgres")
	v.SetDefault("database_password", "postgres")
	v.SetDefault("database_name", "invoices")
	v.SetDefault("database_sslmode", "disable")
	v.SetDefault("sqlite_path", "invoices.db")
	v.SetDefault("database_max_open_conns", 25)
	v.SetDefault("database_max_idle_conns", 5)
	v.SetDefault("database_conn_max_lifetime", 5*time.Minute)
	v.SetDefault("run_migrations", true)

	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("cache_ttl", 5*time.Minute)
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

// PostgresDSN returns POSTGRES_URL when set, otherwise a DSN built from the discrete keys.
func (c Config) PostgresDSN() string {
	if c.PostgresURL != "" {
		return c.PostgresURL
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.DBHost,
		c.DBUser,
		c.DBPassword,
		c.DBName,
		c.DBPort,
		c.DBSSLMode,
	)
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
