// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Connection Lifecycle
//
//   - HandleProvider: Lazily initialized shared handle (internal/database/manager.go)
//   - PathResolver: Writable data directory discovery (internal/database/storagepath.go)
//   - Provisioner: Schema creation and seeding (internal/database/schema.go)
//   - DatabaseInitializer: Explicit initialization with status (internal/http/stores.go)
//
// ## Data Access Interfaces
//
//   - ProjectStore: Project listing, creation and guarded deletion (internal/http/stores.go)
//   - TaskStore: Task CRUD with partial updates (internal/http/stores.go)
//   - DrawingStore: Per-project canvas snapshot (internal/http/stores.go)
//
// ## Background Work
//
//   - Backuper: Writes one database backup (internal/tasks/backup.go)
//   - BackupEnqueuer: Queues a backup on the task queue (internal/http, internal/scheduler)
//
// # Adding a New Database Domain
//
// To add a new data domain (e.g., notes):
//
//  1. Add its CREATE TABLE IF NOT EXISTS step to schemaSteps in
//     internal/database/schema.go
//
//  2. Create sub-package: internal/database/notes/
//
//  3. Define repository:
//
//     type Repository struct { handles database.HandleProvider }
//
//     func NewRepository(handles database.HandleProvider) *Repository
//
//  4. Declare the store interface next to the controller that uses it
//
//  5. Add compile-time check:
//
//     var _ http.NoteStore = (*notes.Repository)(nil)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the full list.
package interfaces
