package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/missioncontrol/internal/backup"
)

// Backuper writes one database backup.
type Backuper interface {
	Run(ctx context.Context) (backup.Result, error)
}

// DatabaseBackupTask requests a point-in-time copy of the database.
type DatabaseBackupTask struct {
	Reason string `json:"reason"`
}

// Config returns the queue configuration for backup tasks.
func (t DatabaseBackupTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "database_backup",
		MaxAttempts: 3,
		Backoff:     time.Minute,
		Timeout:     5 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   7 * 24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// DatabaseBackupProcessor creates a processor function for DatabaseBackupTask.
func DatabaseBackupProcessor(b Backuper) backlite.QueueProcessor[DatabaseBackupTask] {
	return func(ctx context.Context, task DatabaseBackupTask) error {
		if b == nil {
			return fmt.Errorf("backup service not configured")
		}

		result, err := b.Run(ctx)
		if err != nil {
			return fmt.Errorf("database backup: %w", err)
		}

		log.Printf("[TASK] Database backup (%s) written to %s, %d old backup(s) removed",
			task.Reason, result.Path, len(result.Removed))
		return nil
	}
}

// NewDatabaseBackupQueue creates a backlite queue for backup tasks.
func NewDatabaseBackupQueue(b Backuper) backlite.Queue {
	return backlite.NewQueue(DatabaseBackupProcessor(b))
}
