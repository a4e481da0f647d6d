package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/missioncontrol/internal/backup"
	"github.com/mrlokans/missioncontrol/internal/config"
	"github.com/mrlokans/missioncontrol/internal/database"
	"github.com/mrlokans/missioncontrol/internal/database/drawings"
	"github.com/mrlokans/missioncontrol/internal/database/projects"
	dbtasks "github.com/mrlokans/missioncontrol/internal/database/tasks"
	http_controllers "github.com/mrlokans/missioncontrol/internal/http"
	"github.com/mrlokans/missioncontrol/internal/logging"
	"github.com/mrlokans/missioncontrol/internal/scheduler"
	"github.com/mrlokans/missioncontrol/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work before the HTTP server goes away
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// App holds the long-lived components wired from configuration.
type App struct {
	Manager   *database.Manager
	Router    *gin.Engine
	Tasks     *tasks.Client
	Scheduler *scheduler.BackupScheduler
}

// Build wires the database, stores, task queue and router. The database is
// initialized eagerly so a broken data directory is reported at startup and
// the task queue can be placed next to the database file.
func Build(ctx context.Context, cfg *config.Config, version string) (*App, error) {
	manager := database.NewManager(cfg.Database)

	status, err := manager.Init(ctx)
	if err != nil {
		return nil, err
	}
	log.Println(status.Message)

	app := &App{Manager: manager}

	routerCfg := http_controllers.RouterConfig{
		Projects:    projects.NewRepository(manager),
		Tasks:       dbtasks.NewRepository(manager),
		Drawings:    drawings.NewRepository(manager),
		Initializer: manager,
		Handles:     manager,
		Version:     version,
	}

	if cfg.Tasks.Enabled {
		client, err := tasks.NewClient(status.Path, tasks.FromConfig(cfg.Tasks))
		if err != nil {
			manager.Close()
			return nil, fmt.Errorf("failed to create task client: %w", err)
		}
		client.Register(tasks.NewDatabaseBackupQueue(backup.NewService(manager, cfg.Backup)))
		app.Tasks = client
		routerCfg.Backups = client

		if cfg.Backup.Enabled {
			app.Scheduler = scheduler.NewBackupScheduler(client, cfg.Backup.Schedule)
		}
	} else if cfg.Backup.Enabled {
		log.Printf("WARNING: scheduled backups need the task queue; set MISSIONCONTROL_TASKS_ENABLED=true to enable them")
	}

	app.Router = http_controllers.NewRouter(routerCfg)
	return app, nil
}

// Start launches background workers. They stop when ctx is cancelled.
func (a *App) Start(ctx context.Context) error {
	if a.Tasks != nil {
		go a.Tasks.Start(ctx)
	}
	if a.Scheduler != nil {
		if err := a.Scheduler.Start(ctx); err != nil {
			return err
		}
	}
	return nil
}

// StopWorkers stops the scheduler and waits for running tasks.
func (a *App) StopWorkers(ctx context.Context) {
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}
	if a.Tasks != nil {
		a.Tasks.Stop(ctx)
	}
}

// Close releases the task queue and the database. Call after StopWorkers.
func (a *App) Close() {
	if a.Tasks != nil {
		if err := a.Tasks.Close(); err != nil {
			log.Printf("Error closing task queue: %v", err)
		}
	}
	if err := a.Manager.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}

func Run(cfg *config.Config, version string) {
	logCloser, err := logging.Setup(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logCloser.Close()

	log.Printf("Starting Mission Control v%s", version)

	app, err := Build(context.Background(), cfg, version)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := app.Start(ctx); err != nil {
		app.StopWorkers(context.Background())
		app.Close()
		log.Fatalf("Failed to start background workers: %v", err)
	}

	Serve(app.Router, cfg, func(ctx context.Context) {
		app.StopWorkers(ctx)
		cancel()
	})
	app.Close()
}
