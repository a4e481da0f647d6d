package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Log
		Backup
		Tasks
	}

	HTTP struct {
		Port int32
		Host string
	}

	Global struct {
		ShutdownTimeoutInSeconds int
	}

	Database struct {
		DataDir         string // Preferred data directory, probed before the platform defaults
		AppDirName      string // Directory name appended to each candidate base directory
		FileName        string
		ConnectAttempts int
		ConnectBackoff  time.Duration
		LogSQL          bool
	}

	Log struct {
		File       string // Rotating log file; empty logs to stderr only
		MaxSizeMB  int
		MaxBackups int
		MaxAgeDays int
	}

	Backup struct {
		Enabled  bool
		Schedule string // Cron format: "0 3 * * *" = daily at 03:00
		Dir      string // Defaults to <data dir>/backups
		Keep     int
	}

	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetDefault("http_port", 8765)
	v.SetDefault("http_host", "127.0.0.1")
	v.SetDefault("shutdown_timeout_in_seconds", 2)

	v.SetDefault("database_data_dir", "")
	v.SetDefault("database_app_dir_name", DefaultAppDirName)
	v.SetDefault("database_file_name", DefaultDatabaseFileName)
	v.SetDefault("database_connect_attempts", DefaultConnectAttempts)
	v.SetDefault("database_connect_backoff", DefaultConnectBackoff)
	v.SetDefault("database_log_sql", false)

	v.SetDefault("log_file", "")
	v.SetDefault("log_max_size_mb", 10)
	v.SetDefault("log_max_backups", 3)
	v.SetDefault("log_max_age_days", 28)

	v.SetDefault("backup_enabled", false)
	v.SetDefault("backup_schedule", "0 3 * * *") // Daily at 03:00
	v.SetDefault("backup_dir", "")
	v.SetDefault("backup_keep", 7)

	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("HTTP_PORT"),
			Host: v.GetString("HTTP_HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			DataDir:         v.GetString("DATABASE_DATA_DIR"),
			AppDirName:      v.GetString("DATABASE_APP_DIR_NAME"),
			FileName:        v.GetString("DATABASE_FILE_NAME"),
			ConnectAttempts: v.GetInt("DATABASE_CONNECT_ATTEMPTS"),
			ConnectBackoff:  v.GetDuration("DATABASE_CONNECT_BACKOFF"),
			LogSQL:          v.GetBool("DATABASE_LOG_SQL"),
		},
		Log: Log{
			File:       v.GetString("LOG_FILE"),
			MaxSizeMB:  v.GetInt("LOG_MAX_SIZE_MB"),
			MaxBackups: v.GetInt("LOG_MAX_BACKUPS"),
			MaxAgeDays: v.GetInt("LOG_MAX_AGE_DAYS"),
		},
		Backup: Backup{
			Enabled:  v.GetBool("BACKUP_ENABLED"),
			Schedule: v.GetString("BACKUP_SCHEDULE"),
			Dir:      v.GetString("BACKUP_DIR"),
			Keep:     v.GetInt("BACKUP_KEEP"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
	}
}
