package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrlokans/missioncontrol/internal/config"
)

const writeProbeFile = "test_write.tmp"

// PathResolver picks the file the database lives in.
type PathResolver interface {
	Resolve() (string, error)
}

// Resolver probes candidate data directories in priority order and returns
// the database path inside the first one that can be created and written to.
type Resolver struct {
	// DataDir, when set, is probed before the platform conventions.
	DataDir    string
	AppDirName string
	FileName   string

	// LookupEnv and TempDir default to the os package.
	LookupEnv func(key string) (string, bool)
	TempDir   func() string
}

// NewResolver creates a resolver using the process environment.
func NewResolver(cfg config.Database) *Resolver {
	return &Resolver{
		DataDir:    cfg.DataDir,
		AppDirName: cfg.AppDirName,
		FileName:   cfg.FileName,
	}
}

// Candidates returns the directories Resolve will try, in order. Candidates
// whose environment variable is unset are omitted.
func (r *Resolver) Candidates() []string {
	lookup := r.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	tempDir := r.TempDir
	if tempDir == nil {
		tempDir = os.TempDir
	}
	appDir := r.AppDirName
	if appDir == "" {
		appDir = config.DefaultAppDirName
	}

	env := func(key string) (string, bool) {
		v, ok := lookup(key)
		return v, ok && v != ""
	}

	var dirs []string
	if r.DataDir != "" {
		dirs = append(dirs, r.DataDir)
	}
	// XDG data home (Linux standard)
	if v, ok := env("XDG_DATA_HOME"); ok {
		dirs = append(dirs, filepath.Join(v, appDir))
	}
	if home, ok := env("HOME"); ok {
		dirs = append(dirs,
			filepath.Join(home, ".local", "share", appDir),
			filepath.Join(home, "."+appDir),
		)
	}
	// Windows roaming app data
	if v, ok := env("APPDATA"); ok {
		dirs = append(dirs, filepath.Join(v, appDir))
	}
	// Last resort
	dirs = append(dirs, filepath.Join(tempDir(), appDir))
	return dirs
}

// Resolve returns <dir>/<file name> for the first writable candidate. The file
// itself may not exist yet. Each candidate is tried once.
func (r *Resolver) Resolve() (string, error) {
	fileName := r.FileName
	if fileName == "" {
		fileName = config.DefaultDatabaseFileName
	}

	var attempts []PathAttempt
	for _, dir := range r.Candidates() {
		if err := probeDir(dir); err != nil {
			attempts = append(attempts, PathAttempt{Dir: dir, Err: err})
			continue
		}
		return filepath.Join(dir, fileName), nil
	}
	return "", &NoWritableLocationError{Attempts: attempts}
}

// probeDir creates dir and confirms a file can be written inside it.
func probeDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create directory: %w", err)
	}
	probe := filepath.Join(dir, writeProbeFile)
	if err := os.WriteFile(probe, []byte("test"), 0o644); err != nil {
		return fmt.Errorf("cannot write to directory: %w", err)
	}
	_ = os.Remove(probe)
	return nil
}
