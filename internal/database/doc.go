// Package database owns the application's single SQLite database: where the
// file lives, how the connection is opened, and the schema it must have.
//
// # Architecture
//
//	database/
//	├── manager.go       # Lazy, once-only handle with connection retry
//	├── storagepath.go   # Writable data directory discovery
//	├── schema.go        # Idempotent DDL and default project seed
//	├── errors.go        # Error taxonomy shared by all stores
//	├── projects/        # Project CRUD, guarded cascade delete
//	├── tasks/           # Task CRUD and the partial-update builder
//	└── drawings/        # One canvas snapshot per project
//
// # Lifecycle
//
// A Manager is constructed once by the process and passed to every store:
//
//	manager := database.NewManager(cfg.Database)
//	projectsRepo := projects.NewRepository(manager)
//	tasksRepo := tasks.NewRepository(manager)
//
// Nothing touches the filesystem until a store first asks for the handle. The
// first caller resolves the data directory, opens the database (retrying a
// bounded number of times) and provisions the schema; concurrent callers wait
// on the same lock and then share the cached handle. If any step fails the
// manager stays uninitialized and the next caller starts from the beginning.
//
// # Errors
//
// Initialization failures match ErrNoWritableLocation, ErrConnectionFailed or
// ErrSchema with errors.Is; the concrete types carry the attempted paths, the
// attempt count or the failing step. Stores return ErrNotFound,
// ErrNoFieldsToUpdate, ErrInvalidInput, ErrLastProject and ErrProjectNameTaken.
//
// # Adding a New Domain
//
//  1. Create a new sub-package: internal/database/<domain>/
//  2. Add its CREATE TABLE IF NOT EXISTS statement to schemaSteps
//  3. Define a Repository holding a HandleProvider
//  4. Add NewRepository(handles database.HandleProvider) constructor
//  5. Add a compile-time interface check in internal/interfaces
package database
