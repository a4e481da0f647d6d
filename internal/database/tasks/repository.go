// Package tasks provides database operations for tasks, including the
// partial-update statement builder used by Update.
//
// # Usage
//
//	repo := tasks.NewRepository(manager)
//	done := true
//	task, err := repo.Update(ctx, id, entities.TaskUpdate{Completed: &done})
package tasks

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/missioncontrol/internal/database"
	"github.com/mrlokans/missioncontrol/internal/entities"
)

const taskColumns = "id, text, completed, duration, created_at, project_id"

// taskRow mirrors the stored representation; completed is 0/1.
type taskRow struct {
	ID        int64  `gorm:"column:id"`
	Text      string `gorm:"column:text"`
	Completed int64  `gorm:"column:completed"`
	Duration  int    `gorm:"column:duration"`
	CreatedAt string `gorm:"column:created_at"`
	ProjectID int64  `gorm:"column:project_id"`
}

func (r taskRow) toEntity() (entities.Task, error) {
	createdAt, err := database.ParseTimestamp(r.CreatedAt)
	if err != nil {
		return entities.Task{}, fmt.Errorf("task %d: %w", r.ID, err)
	}
	return entities.Task{
		ID:        r.ID,
		Text:      r.Text,
		Completed: r.Completed != 0,
		Duration:  r.Duration,
		CreatedAt: createdAt,
		ProjectID: r.ProjectID,
	}, nil
}

// Repository handles all task database operations.
type Repository struct {
	handles database.HandleProvider
}

// NewRepository creates a new tasks repository.
func NewRepository(handles database.HandleProvider) *Repository {
	return &Repository{handles: handles}
}

func (r *Repository) db(ctx context.Context) (*gorm.DB, error) {
	db, err := r.handles.Handle(ctx)
	if err != nil {
		return nil, err
	}
	return db.WithContext(ctx), nil
}

// ListByProject returns a project's tasks in creation order.
func (r *Repository) ListByProject(ctx context.Context, projectID int64) ([]entities.Task, error) {
	db, err := r.db(ctx)
	if err != nil {
		return nil, err
	}

	var rows []taskRow
	err = db.Raw(
		"SELECT "+taskColumns+" FROM tasks WHERE project_id = ? ORDER BY created_at ASC, id ASC",
		projectID,
	).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}
	return toEntities(rows)
}

// Get returns a single task by ID.
func (r *Repository) Get(ctx context.Context, id int64) (*entities.Task, error) {
	db, err := r.db(ctx)
	if err != nil {
		return nil, err
	}

	var row taskRow
	result := db.Raw("SELECT "+taskColumns+" FROM tasks WHERE id = ?", id).Scan(&row)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to fetch task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, database.ErrNotFound
	}
	return rowToTask(row)
}

// Create inserts an incomplete task. A zero ProjectID selects the first
// project; a zero Duration selects the default estimate.
func (r *Repository) Create(ctx context.Context, req entities.CreateTask) (*entities.Task, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: task text is required", database.ErrInvalidInput)
	}
	duration := req.Duration
	if duration == 0 {
		duration = entities.DefaultTaskDuration
	}
	if duration < 0 {
		return nil, fmt.Errorf("%w: duration must be positive, got %d", database.ErrInvalidInput, duration)
	}

	db, err := r.db(ctx)
	if err != nil {
		return nil, err
	}

	projectID := req.ProjectID
	if projectID == 0 {
		result := db.Raw("SELECT id FROM projects ORDER BY id ASC LIMIT 1").Scan(&projectID)
		if result.Error != nil {
			return nil, fmt.Errorf("failed to find default project: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, fmt.Errorf("%w: no project to own the task", database.ErrNotFound)
		}
	}

	var row taskRow
	err = db.Raw(
		"INSERT INTO tasks (text, duration, completed, project_id) VALUES (?, ?, 0, ?) RETURNING "+taskColumns,
		text, duration, projectID,
	).Scan(&row).Error
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: project %d", database.ErrNotFound, projectID)
		}
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return rowToTask(row)
}

// Update applies a partial update and returns the task as stored afterwards.
func (r *Repository) Update(ctx context.Context, id int64, update entities.TaskUpdate) (*entities.Task, error) {
	stmt, err := BuildUpdate(id, update)
	if err != nil {
		return nil, err
	}

	db, err := r.db(ctx)
	if err != nil {
		return nil, err
	}

	var row taskRow
	result := db.Raw(stmt.SQL, stmt.Args...).Scan(&row)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, database.ErrNotFound
	}
	return rowToTask(row)
}

// Delete removes a task.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	db, err := r.db(ctx)
	if err != nil {
		return err
	}

	result := db.Exec("DELETE FROM tasks WHERE id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return database.ErrNotFound
	}
	return nil
}

func rowToTask(row taskRow) (*entities.Task, error) {
	t, err := row.toEntity()
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toEntities(rows []taskRow) ([]entities.Task, error) {
	tasks := make([]entities.Task, 0, len(rows))
	for _, row := range rows {
		t, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}
