package http

import "github.com/mrlokans/missioncontrol/internal/database"

// RouterConfig contains all dependencies needed to create the HTTP router.
type RouterConfig struct {
	// Stores
	Projects ProjectStore
	Tasks    TaskStore
	Drawings DrawingStore

	// Database lifecycle
	Initializer DatabaseInitializer
	Handles     database.HandleProvider

	// Backups run on the task queue; nil disables the endpoint.
	Backups BackupEnqueuer

	// Application info
	Version string
}
