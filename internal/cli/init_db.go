package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/missioncontrol/internal/config"
	"github.com/mrlokans/missioncontrol/internal/database"
	"github.com/mrlokans/missioncontrol/internal/database/projects"
)

// InitDBCommand resolves the data directory, creates the database if needed
// and provisions its schema.
type InitDBCommand struct {
	Config  config.Database
	DataDir string
	Out     io.Writer

	options []database.Option
}

// NewInitDBCommand creates a new InitDBCommand
func NewInitDBCommand(cfg config.Database) *InitDBCommand {
	return &InitDBCommand{Config: cfg, Out: os.Stdout}
}

// ParseFlags parses command line flags
func (cmd *InitDBCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("init-db", flag.ContinueOnError)

	fs.StringVar(&cmd.DataDir, "data-dir", cmd.Config.DataDir, "Directory to try first for the database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s init-db [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create or upgrade the local database and print where it lives.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

// Run executes the command
func (cmd *InitDBCommand) Run() error {
	cfg := cmd.Config
	cfg.DataDir = cmd.DataDir

	manager := database.NewManager(cfg, cmd.options...)
	defer manager.Close()

	ctx := context.Background()
	status, err := manager.Init(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	count, err := projects.NewRepository(manager).Count(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.Out, status.Message)
	fmt.Fprintf(cmd.Out, "Path:     %s\n", status.Path)
	fmt.Fprintf(cmd.Out, "Projects: %d\n", count)
	return nil
}
