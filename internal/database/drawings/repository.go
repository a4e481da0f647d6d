// Package drawings stores the canvas snapshot of each project. A project has
// at most one drawing; saving replaces it.
package drawings

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/missioncontrol/internal/database"
	"github.com/mrlokans/missioncontrol/internal/entities"
)

const drawingColumns = "id, elements, app_state, updated_at, project_id"

type drawingRow struct {
	ID        int64  `gorm:"column:id"`
	Elements  string `gorm:"column:elements"`
	AppState  string `gorm:"column:app_state"`
	UpdatedAt string `gorm:"column:updated_at"`
	ProjectID int64  `gorm:"column:project_id"`
}

func (r drawingRow) toEntity() (*entities.Drawing, error) {
	updatedAt, err := database.ParseTimestamp(r.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("drawing %d: %w", r.ID, err)
	}
	return &entities.Drawing{
		ID:        r.ID,
		Elements:  r.Elements,
		AppState:  r.AppState,
		UpdatedAt: updatedAt,
		ProjectID: r.ProjectID,
	}, nil
}

// Repository handles all drawing database operations.
type Repository struct {
	handles database.HandleProvider
}

// NewRepository creates a new drawings repository.
func NewRepository(handles database.HandleProvider) *Repository {
	return &Repository{handles: handles}
}

// Save replaces the project's drawing. Empty content is stored as given so
// that switching projects never shows another project's canvas.
func (r *Repository) Save(ctx context.Context, req entities.SaveDrawing) (*entities.Drawing, error) {
	db, err := r.handles.Handle(ctx)
	if err != nil {
		return nil, err
	}

	var saved *entities.Drawing
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM drawings WHERE project_id = ?", req.ProjectID).Error; err != nil {
			return fmt.Errorf("failed to clear drawing: %w", err)
		}

		var row drawingRow
		err := tx.Raw(
			"INSERT INTO drawings (elements, app_state, project_id) VALUES (?, ?, ?) RETURNING "+drawingColumns,
			req.Elements, req.AppState, req.ProjectID,
		).Scan(&row).Error
		if err != nil {
			if database.IsForeignKeyViolation(err) {
				return fmt.Errorf("%w: project %d", database.ErrNotFound, req.ProjectID)
			}
			return fmt.Errorf("failed to save drawing: %w", err)
		}

		saved, err = row.toEntity()
		return err
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// Current returns the most recently updated drawing for a project, or
// database.ErrNotFound if the project has none.
func (r *Repository) Current(ctx context.Context, projectID int64) (*entities.Drawing, error) {
	db, err := r.handles.Handle(ctx)
	if err != nil {
		return nil, err
	}

	var row drawingRow
	result := db.WithContext(ctx).Raw(
		"SELECT "+drawingColumns+" FROM drawings WHERE project_id = ? ORDER BY updated_at DESC, id DESC LIMIT 1",
		projectID,
	).Scan(&row)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to fetch drawing: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, database.ErrNotFound
	}
	return row.toEntity()
}
