package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-almacenes/pkg/config"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := config.LoadFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 10*1024*1024, cfg.Upload.MaxBytes())
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, time.Minute, cfg.Redis.TTL)
	assert.False(t, cfg.DB.AutoMigrate)
}

func TestLoadFrom_EnvFileYVariables(t *testing.T) {
	dir := t.TempDir()
	env := "APP_ENV=production\nHTTP_PORT=9090\nDB_PASSWORD=p@ss word\nUPLOAD_MAX_MB=2\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))

	// la variable de entorno gana al archivo
	t.Setenv("HTTP_PORT", "7070")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("DB_AUTO_MIGRATE", "true")

	cfg, err := config.LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, 7070, cfg.HTTP.Port)
	assert.Equal(t, 2, cfg.Upload.MaxMB)
	assert.True(t, cfg.Redis.Enabled())
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Contains(t, cfg.DB.DSN(), "p%40ss%20word")
}

func TestConnectionString_PrefiereDatabaseURL(t *testing.T) {
	c := config.DBConfig{DatabaseURL: "postgres://u:p@db:5432/x", Host: "otro"}
	assert.Equal(t, "postgres://u:p@db:5432/x", c.ConnectionString())
}

func TestLoadFrom_UploadInvalido(t *testing.T) {
	t.Setenv("UPLOAD_MAX_MB", "0")
	_, err := config.LoadFrom(t.TempDir())
	assert.Error(t, err)
}
