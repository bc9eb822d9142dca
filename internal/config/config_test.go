package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	return dir
}

func TestLoadConfig(t *testing.T) {
	viper.Reset()
	dir := writeConfig(t, `
server:
  port: "9000"
  mode: debug
jwt:
  secret: dev-secret
  expire_hours: 2
storage:
  type: minio
aurabot:
  session_quota: 5
analytics:
  timezone: UTC
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 2*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, 5, cfg.AuraBot.SessionQuota)
	assert.Equal(t, 80, cfg.Activity.PassThreshold)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, time.UTC, cfg.Analytics.Location())
}

func TestLoadConfigRejectsWeakSecretInRelease(t *testing.T) {
	viper.Reset()
	dir := writeConfig(t, `
server:
  mode: release
jwt:
  secret: short
storage:
  type: minio
`)

	_, err := LoadConfig(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT secret is too short")
}

func TestLoadConfigRejectsBadThreshold(t *testing.T) {
	viper.Reset()
	dir := writeConfig(t, `
storage:
  type: minio
activity:
  pass_threshold: 150
`)

	_, err := LoadConfig(dir)
	require.Error(t, err)
}

func TestAnalyticsLocationFallback(t *testing.T) {
	assert.Equal(t, time.Local, AnalyticsConfig{Timezone: "Not/AZone"}.Location())
	assert.Equal(t, time.Local, AnalyticsConfig{}.Location())
}
