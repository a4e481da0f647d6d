package database

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/missioncontrol/internal/config"
)

// HandleProvider hands out the shared database handle. Stores depend on this
// rather than on *gorm.DB so the connection is established on first use.
type HandleProvider interface {
	Handle(ctx context.Context) (*gorm.DB, error)
}

// Opener opens a connection for the given DSN.
type Opener func(dsn string) (*gorm.DB, error)

// Status describes the outcome of an initialization. Message is meant for
// humans; callers should branch on the other fields.
type Status struct {
	Path               string `json:"path"`
	DSN                string `json:"dsn"`
	NewDatabase        bool   `json:"new_database"`
	AlreadyInitialized bool   `json:"already_initialized"`
	Message            string `json:"message"`
}

// Manager owns the process-wide database handle. The handle is created on the
// first call to Handle or Init and cached until Close.
//
// One mutex guards both the handle and the initialized flag, so concurrent
// first callers block while a single caller resolves, opens and provisions.
type Manager struct {
	resolver    PathResolver
	open        Opener
	provision   Provisioner
	sleep       func(time.Duration)
	maxAttempts int
	backoff     time.Duration

	mu          sync.Mutex
	handle      *gorm.DB
	initialized bool
	path        string
	dsn         string
}

type Option func(*Manager)

func WithResolver(r PathResolver) Option {
	return func(m *Manager) { m.resolver = r }
}

func WithOpener(open Opener) Option {
	return func(m *Manager) { m.open = open }
}

func WithProvisioner(p Provisioner) Option {
	return func(m *Manager) { m.provision = p }
}

// WithSleep replaces the delay between connection attempts. Tests pass a no-op.
func WithSleep(sleep func(time.Duration)) Option {
	return func(m *Manager) { m.sleep = sleep }
}

func WithRetry(attempts int, backoff time.Duration) Option {
	return func(m *Manager) {
		m.maxAttempts = attempts
		m.backoff = backoff
	}
}

// NewManager creates a manager for the configured database location. No I/O
// happens until the handle is first requested.
func NewManager(cfg config.Database, opts ...Option) *Manager {
	logLevel := logger.Warn
	if cfg.LogSQL {
		logLevel = logger.Info
	}

	m := &Manager{
		resolver:    NewResolver(cfg),
		open:        OpenSQLite(logLevel),
		provision:   Provision,
		sleep:       time.Sleep,
		maxAttempts: cfg.ConnectAttempts,
		backoff:     cfg.ConnectBackoff,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.maxAttempts < 1 {
		m.maxAttempts = config.DefaultConnectAttempts
	}
	return m
}

// OpenSQLite returns an Opener backed by gorm's sqlite driver.
func OpenSQLite(logLevel logger.LogLevel) Opener {
	return func(dsn string) (*gorm.DB, error) {
		db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logLevel),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return db, nil
	}
}

// uriPathEscaper escapes the characters SQLite treats specially in a file: URI path.
var uriPathEscaper = strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23")

// DSN builds the read-write-create connection string for an absolute path.
func DSN(absPath string) string {
	return fmt.Sprintf("file:%s?mode=rwc&_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL",
		uriPathEscaper.Replace(filepath.ToSlash(absPath)))
}

// Handle returns the shared handle, initializing it on first use. Callers that
// arrive while another caller is initializing wait for it to finish. A failed
// initialization leaves the manager uninitialized, so the next call starts over.
func (m *Manager) Handle(ctx context.Context) (*gorm.DB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return m.handle, nil
	}
	if _, err := m.initLocked(ctx); err != nil {
		return nil, err
	}
	return m.handle, nil
}

// Init initializes the handle if needed and reports what happened.
func (m *Manager) Init(ctx context.Context) (Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return Status{
			Path:               m.path,
			DSN:                m.dsn,
			AlreadyInitialized: true,
			Message:            "Database already initialized",
		}, nil
	}
	return m.initLocked(ctx)
}

// Path returns the database file path once the handle is ready.
func (m *Manager) Path() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.path, m.initialized
}

// Close releases the handle and returns the manager to its initial state.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.handle == nil {
		return nil
	}
	err := closeHandle(m.handle)
	m.handle = nil
	m.initialized = false
	m.path = ""
	m.dsn = ""
	return err
}

// initLocked runs resolve, connect and provision. m.mu must be held.
func (m *Manager) initLocked(ctx context.Context) (Status, error) {
	// Initialization finishes even if the caller that triggered it gives up.
	ctx = context.WithoutCancel(ctx)

	log.Printf("Starting database initialization...")

	path, err := m.resolver.Resolve()
	if err != nil {
		log.Printf("Database initialization failed: %v", err)
		return Status{}, err
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	dsn := DSN(path)

	_, statErr := os.Stat(path)
	isNew := errors.Is(statErr, fs.ErrNotExist)
	if isNew {
		log.Printf("Database file %s doesn't exist - it will be created", path)
	}

	db, err := m.connect(dsn)
	if err != nil {
		log.Printf("Database initialization failed: %v", err)
		return Status{}, err
	}

	if err := m.provision(ctx, db); err != nil {
		var schemaErr *SchemaError
		if !errors.As(err, &schemaErr) {
			err = &SchemaError{Step: "provision schema", Err: err}
		}
		if closeErr := closeHandle(db); closeErr != nil {
			log.Printf("Error closing database after failed provisioning: %v", closeErr)
		}
		log.Printf("Database initialization failed: %v", err)
		return Status{}, err
	}

	m.handle = db
	m.path = path
	m.dsn = dsn
	m.initialized = true

	status := Status{Path: path, DSN: dsn, NewDatabase: isNew}
	if isNew {
		status.Message = fmt.Sprintf("New database created and initialized successfully at: %s", dsn)
	} else {
		status.Message = fmt.Sprintf("Existing database initialized successfully at: %s", dsn)
	}
	log.Printf("Database initialization completed: %s", path)
	return status, nil
}

func (m *Manager) connect(dsn string) (*gorm.DB, error) {
	var lastErr error
	for attempt := 1; attempt <= m.maxAttempts; attempt++ {
		db, err := m.open(dsn)
		if err == nil {
			log.Printf("Database connected on attempt %d of %d", attempt, m.maxAttempts)
			return db, nil
		}
		lastErr = err
		log.Printf("Connection attempt %d of %d failed: %v", attempt, m.maxAttempts, err)

		if attempt < m.maxAttempts {
			log.Printf("Retrying in %v...", m.backoff)
			m.sleep(m.backoff)
		}
	}
	return nil, &ConnectionFailedError{DSN: dsn, Attempts: m.maxAttempts, Err: lastErr}
}

func closeHandle(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
