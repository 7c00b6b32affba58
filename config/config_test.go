package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults with secrets from env", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("BLOG_JWT_ACCESS_SECRET", "access")
		t.Setenv("BLOG_JWT_REFRESH_SECRET", "refresh")

		cfg, err := LoadConfig(dir)

		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, "postgres", cfg.Storage.Driver)
		assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTTL)
		assert.Equal(t, 240*time.Hour, cfg.JWT.RefreshTTL)
		assert.Equal(t, 10*time.Minute, cfg.Redis.PostsTTL)
		assert.True(t, cfg.Cookie.Secure)
	})

	t.Run("yaml file and env override", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "config.yml", `
server:
  port: "9090"
storage:
  driver: memory
jwt:
  access_secret: from-file
  refresh_secret: from-file
  access_ttl: 5m
`)
		t.Setenv("BLOG_JWT_ACCESS_SECRET", "from-env")

		cfg, err := LoadConfig(dir)

		require.NoError(t, err)
		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, "memory", cfg.Storage.Driver)
		assert.Equal(t, "from-env", cfg.JWT.AccessSecret)
		assert.Equal(t, "from-file", cfg.JWT.RefreshSecret)
		assert.Equal(t, 5*time.Minute, cfg.JWT.AccessTTL)
	})

	t.Run("dotenv file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, ".env", "BLOG_JWT_ACCESS_SECRET=dot-access\nBLOG_JWT_REFRESH_SECRET=dot-refresh\n")
		// godotenv writes into the process environment.
		t.Cleanup(func() {
			os.Unsetenv("BLOG_JWT_ACCESS_SECRET")
			os.Unsetenv("BLOG_JWT_REFRESH_SECRET")
		})

		cfg, err := LoadConfig(dir)

		require.NoError(t, err)
		assert.Equal(t, "dot-access", cfg.JWT.AccessSecret)
		assert.Equal(t, "dot-refresh", cfg.JWT.RefreshSecret)
	})

	t.Run("missing secrets", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("BLOG_JWT_ACCESS_SECRET", "")
		t.Setenv("BLOG_JWT_REFRESH_SECRET", "")

		_, err := LoadConfig(dir)

		assert.Error(t, err)
	})

	t.Run("unknown driver", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("BLOG_JWT_ACCESS_SECRET", "a")
		t.Setenv("BLOG_JWT_REFRESH_SECRET", "r")
		t.Setenv("BLOG_STORAGE_DRIVER", "sqlite")

		_, err := LoadConfig(dir)

		assert.ErrorContains(t, err, "unknown storage driver")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "secret", Name: "blog", SSLMode: "disable"}

	assert.Contains(t, cfg.DSN(false), "password=secret")
	assert.NotContains(t, cfg.DSN(true), "secret")
}
