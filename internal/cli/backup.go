package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/missioncontrol/internal/backup"
	"github.com/mrlokans/missioncontrol/internal/config"
	"github.com/mrlokans/missioncontrol/internal/database"
)

// BackupCommand writes one backup synchronously, bypassing the task queue.
type BackupCommand struct {
	Config config.Config
	OutDir string
	Keep   int
	Out    io.Writer

	options []database.Option
}

// NewBackupCommand creates a new BackupCommand
func NewBackupCommand(cfg config.Config) *BackupCommand {
	return &BackupCommand{Config: cfg, Out: os.Stdout}
}

// ParseFlags parses command line flags
func (cmd *BackupCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("backup", flag.ContinueOnError)

	fs.StringVar(&cmd.OutDir, "out", cmd.Config.Backup.Dir, "Backup directory (default: <data dir>/backups)")
	fs.IntVar(&cmd.Keep, "keep", cmd.Config.Backup.Keep, "Number of backups to keep, 0 keeps all")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s backup [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Write a consistent copy of the database.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s backup -out ~/Backups/missioncontrol -keep 14\n", os.Args[0])
	}

	return fs.Parse(args)
}

// Run executes the command
func (cmd *BackupCommand) Run() error {
	manager := database.NewManager(cmd.Config.Database, cmd.options...)
	defer manager.Close()

	svc := backup.NewService(manager, config.Backup{Dir: cmd.OutDir, Keep: cmd.Keep})
	result, err := svc.Run(context.Background())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.Out, "Backup written to %s\n", result.Path)
	for _, removed := range result.Removed {
		fmt.Fprintf(cmd.Out, "Removed old backup %s\n", removed)
	}
	return nil
}
