package database

import (
	"context"
	"log"

	"gorm.io/gorm"

	"github.com/mrlokans/missioncontrol/internal/entities"
)

type schemaStep struct {
	name string
	sql  string
}

// Projects come first: tasks and drawings reference them.
var schemaSteps = []schemaStep{
	{
		name: "create projects table",
		sql: `CREATE TABLE IF NOT EXISTS projects (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			description TEXT,
			created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	},
	{
		name: "create tasks table",
		sql: `CREATE TABLE IF NOT EXISTS tasks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			text TEXT NOT NULL,
			completed INTEGER NOT NULL DEFAULT 0,
			duration INTEGER NOT NULL DEFAULT 25,
			created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
			project_id INTEGER REFERENCES projects(id) DEFAULT 1
		)`,
	},
	{
		name: "create drawings table",
		sql: `CREATE TABLE IF NOT EXISTS drawings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			elements TEXT NOT NULL,
			app_state TEXT NOT NULL,
			updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
			project_id INTEGER REFERENCES projects(id) DEFAULT 1
		)`,
	},
	{
		name: "create tasks project index",
		sql:  `CREATE INDEX IF NOT EXISTS idx_tasks_project_id ON tasks(project_id)`,
	},
	{
		name: "create drawings project index",
		sql:  `CREATE INDEX IF NOT EXISTS idx_drawings_project_id ON drawings(project_id)`,
	},
}

// Provisioner applies the schema to a freshly opened connection.
type Provisioner func(ctx context.Context, db *gorm.DB) error

// Provision creates any missing tables and seeds the default project when the
// projects table is empty. It is safe to run against an existing database.
//
// The count-then-insert seed is not guarded by the database; callers must not
// run Provision concurrently against the same file. Manager guarantees this.
func Provision(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)

	for _, step := range schemaSteps {
		if err := db.Exec(step.sql).Error; err != nil {
			return &SchemaError{Step: step.name, Err: err}
		}
	}

	var count int64
	if err := db.Raw("SELECT COUNT(*) FROM projects").Scan(&count).Error; err != nil {
		return &SchemaError{Step: "count projects", Err: err}
	}
	if count > 0 {
		return nil
	}

	err := db.Exec(
		"INSERT INTO projects (name, description) VALUES (?, ?)",
		entities.DefaultProjectName,
		entities.DefaultProjectDescription,
	).Error
	if err != nil {
		return &SchemaError{Step: "create default project", Err: err}
	}
	log.Printf("Created default project: %s", entities.DefaultProjectName)
	return nil
}
