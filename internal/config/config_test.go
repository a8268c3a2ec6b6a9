package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 9090
base_path = "/api/v1"

[database]
driver = "sqlite"
path = "/tmp/venuebook.db"

[auth]
jwt_secret = "from-file"

[booking]
slot_minutes = 30
bucket_minutes = 15

[catalog]
url = "http://catalog:8081"
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FileAndDefaults(t *testing.T) {
	path := writeFile(t, "config.toml", sampleConfig)

	cfg, err := LoadWithEnvFile(path, "")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "/api/v1", cfg.Server.BasePath)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, 30, cfg.Booking.SlotMinutes)
	assert.Equal(t, 24, cfg.Booking.CancelCutoffHours)
	assert.Equal(t, "offline", cfg.Payment.Provider)
	assert.Equal(t, "log", cfg.Notification.Driver)
	assert.Contains(t, cfg.Database.DSN(), "file:/tmp/venuebook.db")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "config.toml", sampleConfig)
	t.Setenv("VENUEBOOK_AUTH_JWT_SECRET", "from-env")
	t.Setenv("VENUEBOOK_BOOKING_CANCEL_CUTOFF_HOURS", "12")

	cfg, err := LoadWithEnvFile(path, "")
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, 12, cfg.Booking.CancelCutoffHours)
}

func TestLoad_EnvFile(t *testing.T) {
	path := writeFile(t, "config.toml", sampleConfig)
	envFile := writeFile(t, ".env", "VENUEBOOK_SERVER_HTTP_PORT=7070\n")
	t.Cleanup(func() { os.Unsetenv("VENUEBOOK_SERVER_HTTP_PORT") })

	cfg, err := LoadWithEnvFile(path, envFile)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.HTTPPort)
}

func TestLoad_MissingEnvFileIsIgnored(t *testing.T) {
	path := writeFile(t, "config.toml", sampleConfig)

	_, err := LoadWithEnvFile(path, filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "missing secret", mutate: func(c *Config) { c.Auth.JWTSecret = "" }},
		{name: "bucket does not divide slot", mutate: func(c *Config) { c.Booking.BucketMinutes = 7 }},
		{name: "unknown driver", mutate: func(c *Config) { c.Database.Driver = "mysql" }},
		{name: "omise without keys", mutate: func(c *Config) { c.Payment.Provider = "omise" }},
		{name: "amqp without url", mutate: func(c *Config) { c.Notification.Driver = "amqp" }},
		{name: "missing catalog", mutate: func(c *Config) { c.Catalog.URL = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Auth.JWTSecret = "secret"
			cfg.Catalog.URL = "http://catalog"
			cfg.Database.DBName = "venuebook"
			require.NoError(t, cfg.Validate())

			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestDatabaseConfig_PostgresDSN(t *testing.T) {
	c := DatabaseConfig{
		Driver:   DriverPostgres,
		Host:     "db",
		Port:     5432,
		User:     "app",
		Password: "p@ss",
		DBName:   "venuebook",
		SSLMode:  "disable",
	}
	assert.Equal(t, "postgres://app:p%40ss@db:5432/venuebook?sslmode=disable", c.DSN())
}
