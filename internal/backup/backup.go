// Package backup writes consistent point-in-time copies of the database with
// VACUUM INTO and keeps only the most recent ones.
package backup

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mrlokans/missioncontrol/internal/config"
	"github.com/mrlokans/missioncontrol/internal/database"
)

const timestampFormat = "20060102-150405"

// Source is the database being backed up.
type Source interface {
	database.HandleProvider
	Path() (string, bool)
}

// Result describes one completed backup.
type Result struct {
	Path    string   `json:"path"`
	Removed []string `json:"removed,omitempty"`
}

// Service creates backups on demand.
type Service struct {
	source Source
	dir    string
	keep   int
	now    func() time.Time
}

// NewService creates a backup service. An empty cfg.Dir places backups in a
// "backups" directory next to the database file.
func NewService(source Source, cfg config.Backup) *Service {
	return &Service{
		source: source,
		dir:    cfg.Dir,
		keep:   cfg.Keep,
		now:    time.Now,
	}
}

// WithDir returns a copy of the service writing to dir.
func (s *Service) WithDir(dir string) *Service {
	c := *s
	c.dir = dir
	return &c
}

// Run writes a new backup and prunes old ones beyond the retention count.
func (s *Service) Run(ctx context.Context) (Result, error) {
	db, err := s.source.Handle(ctx)
	if err != nil {
		return Result{}, err
	}
	dbPath, ok := s.source.Path()
	if !ok {
		return Result{}, fmt.Errorf("database path unknown")
	}

	dir := s.dir
	if dir == "" {
		dir = filepath.Join(filepath.Dir(dbPath), "backups")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Result{}, fmt.Errorf("failed to create backup directory: %w", err)
	}

	stem, ext := splitName(dbPath)
	target := filepath.Join(dir, fmt.Sprintf("%s-%s%s", stem, s.now().UTC().Format(timestampFormat), ext))
	if _, err := os.Stat(target); err == nil {
		return Result{}, fmt.Errorf("backup %s already exists", target)
	}

	if err := db.WithContext(ctx).Exec("VACUUM INTO " + quote(target)).Error; err != nil {
		return Result{}, fmt.Errorf("failed to write backup: %w", err)
	}
	log.Printf("Database backup written to %s", target)

	removed, err := prune(dir, stem, ext, s.keep)
	if err != nil {
		return Result{Path: target}, fmt.Errorf("backup written but pruning failed: %w", err)
	}
	for _, p := range removed {
		log.Printf("Removed old backup %s", p)
	}
	return Result{Path: target, Removed: removed}, nil
}

// prune deletes all but the newest keep backups. keep <= 0 keeps everything.
func prune(dir, stem, ext string, keep int) ([]string, error) {
	if keep <= 0 {
		return nil, nil
	}

	matches, err := filepath.Glob(filepath.Join(dir, stem+"-*"+ext))
	if err != nil {
		return nil, err
	}
	var backups []string
	for _, m := range matches {
		ts := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(m), stem+"-"), ext)
		if _, err := time.Parse(timestampFormat, ts); err == nil {
			backups = append(backups, m)
		}
	}
	if len(backups) <= keep {
		return nil, nil
	}

	// Timestamped names sort chronologically.
	sort.Sort(sort.Reverse(sort.StringSlice(backups)))

	var removed []string
	for _, old := range backups[keep:] {
		if err := os.Remove(old); err != nil {
			return removed, err
		}
		removed = append(removed, old)
	}
	return removed, nil
}

func splitName(path string) (stem, ext string) {
	base := filepath.Base(path)
	ext = filepath.Ext(base)
	return strings.TrimSuffix(base, ext), ext
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
