package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/missioncontrol/internal/backup"
	"github.com/mrlokans/missioncontrol/internal/database"
	"github.com/mrlokans/missioncontrol/internal/database/drawings"
	"github.com/mrlokans/missioncontrol/internal/database/projects"
	dbtasks "github.com/mrlokans/missioncontrol/internal/database/tasks"
	"github.com/mrlokans/missioncontrol/internal/http"
	"github.com/mrlokans/missioncontrol/internal/scheduler"
	"github.com/mrlokans/missioncontrol/internal/tasks"
)

// =============================================================================
// Connection Lifecycle
// =============================================================================

var _ database.HandleProvider = (*database.Manager)(nil)
var _ database.PathResolver = (*database.Resolver)(nil)
var _ database.Provisioner = database.Provision
var _ http.DatabaseInitializer = (*database.Manager)(nil)
var _ backup.Source = (*database.Manager)(nil)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ http.ProjectStore = (*projects.Repository)(nil)
var _ http.TaskStore = (*dbtasks.Repository)(nil)
var _ http.DrawingStore = (*drawings.Repository)(nil)

// =============================================================================
// Background Work
// =============================================================================

var _ tasks.Backuper = (*backup.Service)(nil)
var _ http.BackupEnqueuer = (*tasks.Client)(nil)
var _ scheduler.BackupEnqueuer = (*tasks.Client)(nil)
