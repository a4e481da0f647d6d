// Package projects provides database operations for projects.
//
// # Usage
//
//	repo := projects.NewRepository(manager)
//	all, err := repo.List(ctx)
package projects

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/missioncontrol/internal/database"
	"github.com/mrlokans/missioncontrol/internal/entities"
)

const projectColumns = "id, name, description, created_at"

type projectRow struct {
	ID          int64   `gorm:"column:id"`
	Name        string  `gorm:"column:name"`
	Description *string `gorm:"column:description"`
	CreatedAt   string  `gorm:"column:created_at"`
}

func (r projectRow) toEntity() (entities.Project, error) {
	createdAt, err := database.ParseTimestamp(r.CreatedAt)
	if err != nil {
		return entities.Project{}, fmt.Errorf("project %d: %w", r.ID, err)
	}
	return entities.Project{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		CreatedAt:   createdAt,
	}, nil
}

// Repository handles all project database operations.
type Repository struct {
	handles database.HandleProvider
}

// NewRepository creates a new projects repository.
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

// List returns all projects, oldest first.
func (r *Repository) List(ctx context.Context) ([]entities.Project, error) {
	db, err := r.db(ctx)
	if err != nil {
		return nil, err
	}

	var rows []projectRow
	err = db.Raw("SELECT " + projectColumns + " FROM projects ORDER BY created_at ASC, id ASC").Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch projects: %w", err)
	}

	projects := make([]entities.Project, 0, len(rows))
	for _, row := range rows {
		p, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, nil
}

// Get returns a single project by ID.
func (r *Repository) Get(ctx context.Context, id int64) (*entities.Project, error) {
	db, err := r.db(ctx)
	if err != nil {
		return nil, err
	}

	var row projectRow
	result := db.Raw("SELECT "+projectColumns+" FROM projects WHERE id = ?", id).Scan(&row)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to fetch project: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, database.ErrNotFound
	}

	p, err := row.toEntity()
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new project. Names are unique.
func (r *Repository) Create(ctx context.Context, req entities.CreateProject) (*entities.Project, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: project name is required", database.ErrInvalidInput)
	}

	db, err := r.db(ctx)
	if err != nil {
		return nil, err
	}

	var row projectRow
	err = db.Raw(
		"INSERT INTO projects (name, description) VALUES (?, ?) RETURNING "+projectColumns,
		name, req.Description,
	).Scan(&row).Error
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", database.ErrProjectNameTaken, name)
		}
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	p, err := row.toEntity()
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Count returns the number of projects.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	db, err := r.db(ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := db.Raw("SELECT COUNT(*) FROM projects").Scan(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}
	return count, nil
}

// Delete removes a project together with its tasks and drawings. The last
// remaining project cannot be deleted.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	db, err := r.db(ctx)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Raw("SELECT COUNT(*) FROM projects").Scan(&count).Error; err != nil {
			return fmt.Errorf("failed to count projects: %w", err)
		}
		if count <= 1 {
			return database.ErrLastProject
		}

		if err := tx.Exec("DELETE FROM tasks WHERE project_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete tasks for project: %w", err)
		}
		if err := tx.Exec("DELETE FROM drawings WHERE project_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete drawings for project: %w", err)
		}

		result := tx.Exec("DELETE FROM projects WHERE id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete project: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return database.ErrNotFound
		}
		return nil
	})
}
