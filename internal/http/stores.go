package http

import (
	"context"

	"github.com/mrlokans/missioncontrol/internal/database"
	"github.com/mrlokans/missioncontrol/internal/entities"
)

// Each controller depends only on the store methods it calls.

// ProjectStore provides project persistence.
type ProjectStore interface {
	List(ctx context.Context) ([]entities.Project, error)
	Create(ctx context.Context, req entities.CreateProject) (*entities.Project, error)
	Delete(ctx context.Context, id int64) error
}

// TaskStore provides task persistence.
type TaskStore interface {
	ListByProject(ctx context.Context, projectID int64) ([]entities.Task, error)
	Create(ctx context.Context, req entities.CreateTask) (*entities.Task, error)
	Update(ctx context.Context, id int64, update entities.TaskUpdate) (*entities.Task, error)
	Delete(ctx context.Context, id int64) error
}

// DrawingStore provides drawing persistence.
type DrawingStore interface {
	Save(ctx context.Context, req entities.SaveDrawing) (*entities.Drawing, error)
	Current(ctx context.Context, projectID int64) (*entities.Drawing, error)
}

// DatabaseInitializer brings the database up and reports what happened.
type DatabaseInitializer interface {
	Init(ctx context.Context) (database.Status, error)
}

// BackupEnqueuer schedules a database backup on the task queue.
type BackupEnqueuer interface {
	EnqueueBackup(ctx context.Context, reason string) (string, error)
}
