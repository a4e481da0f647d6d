package config

import "time"

// EnvPrefix is prepended to every environment key, e.g. MISSIONCONTROL_HTTP_PORT.
const EnvPrefix = "MISSIONCONTROL"

// Database location defaults
const (
	// DefaultAppDirName is the per-application directory created under each candidate base directory
	DefaultAppDirName = "missioncontrol"

	// DefaultDatabaseFileName is the name of the database file inside the data directory
	DefaultDatabaseFileName = "todos.db"
)

// Connection retry defaults
const (
	DefaultConnectAttempts = 3
	DefaultConnectBackoff  = time.Second
)
