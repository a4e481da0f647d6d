package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Handles, cfg.Version)
	projects := NewProjectsController(cfg.Projects)
	tasks := NewTasksController(cfg.Tasks)
	drawings := NewDrawingsController(cfg.Drawings)
	db := NewDatabaseController(cfg.Initializer, cfg.Backups)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	api := router.Group("/api")

	// Database lifecycle
	api.POST("/database/init", db.InitDatabase)
	api.POST("/database/backup", db.BackupDatabase)

	// Projects
	api.GET("/projects", projects.GetAllProjects)
	api.POST("/projects", projects.CreateProject)
	api.DELETE("/projects/:id", projects.DeleteProject)

	// Tasks
	api.GET("/projects/:id/tasks", tasks.GetProjectTasks)
	api.POST("/tasks", tasks.CreateTask)
	api.PATCH("/tasks/:id", tasks.UpdateTask)
	api.DELETE("/tasks/:id", tasks.DeleteTask)

	// Drawings
	api.PUT("/projects/:id/drawing", drawings.SaveDrawing)
	api.GET("/projects/:id/drawing", drawings.GetDrawing)

	return router
}
