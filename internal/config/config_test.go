package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(8765), cfg.HTTP.Port)
	assert.Equal(t, "127.0.0.1", cfg.HTTP.Host)
	assert.Equal(t, 2, cfg.Global.ShutdownTimeoutInSeconds)

	assert.Empty(t, cfg.Database.DataDir)
	assert.Equal(t, DefaultAppDirName, cfg.Database.AppDirName)
	assert.Equal(t, DefaultDatabaseFileName, cfg.Database.FileName)
	assert.Equal(t, DefaultConnectAttempts, cfg.Database.ConnectAttempts)
	assert.Equal(t, DefaultConnectBackoff, cfg.Database.ConnectBackoff)
	assert.False(t, cfg.Database.LogSQL)

	assert.Empty(t, cfg.Log.File)
	assert.Equal(t, 10, cfg.Log.MaxSizeMB)

	assert.False(t, cfg.Backup.Enabled)
	assert.Equal(t, "0 3 * * *", cfg.Backup.Schedule)
	assert.Equal(t, 7, cfg.Backup.Keep)

	assert.True(t, cfg.Tasks.Enabled)
	assert.Equal(t, 1, cfg.Tasks.Workers)
	assert.Equal(t, 15*time.Minute, cfg.Tasks.ReleaseAfter)
	assert.Equal(t, time.Hour, cfg.Tasks.CleanupInterval)
}

func TestNewConfig_Environment(t *testing.T) {
	t.Setenv("MISSIONCONTROL_HTTP_PORT", "9000")
	t.Setenv("MISSIONCONTROL_DATABASE_DATA_DIR", "/srv/missioncontrol")
	t.Setenv("MISSIONCONTROL_DATABASE_CONNECT_ATTEMPTS", "5")
	t.Setenv("MISSIONCONTROL_DATABASE_CONNECT_BACKOFF", "250ms")
	t.Setenv("MISSIONCONTROL_BACKUP_ENABLED", "true")
	t.Setenv("MISSIONCONTROL_LOG_FILE", "/var/log/missioncontrol.log")

	cfg := NewConfig()

	assert.Equal(t, int32(9000), cfg.HTTP.Port)
	assert.Equal(t, "/srv/missioncontrol", cfg.Database.DataDir)
	assert.Equal(t, 5, cfg.Database.ConnectAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.Database.ConnectBackoff)
	assert.True(t, cfg.Backup.Enabled)
	assert.Equal(t, "/var/log/missioncontrol.log", cfg.Log.File)
}

func TestNewConfig_IgnoresUnprefixedEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "1234")

	cfg := NewConfig()

	assert.Equal(t, int32(8765), cfg.HTTP.Port)
}
