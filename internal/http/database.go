package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type DatabaseController struct {
	initializer DatabaseInitializer
	backups     BackupEnqueuer
}

func NewDatabaseController(initializer DatabaseInitializer, backups BackupEnqueuer) *DatabaseController {
	return &DatabaseController{initializer: initializer, backups: backups}
}

// InitDatabase brings the database up, or reports that it already is
// POST /api/database/init
func (dc *DatabaseController) InitDatabase(c *gin.Context) {
	status, err := dc.initializer.Init(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "init database")
		return
	}
	c.JSON(http.StatusOK, status)
}

// BackupDatabase enqueues a backup on the task queue
// POST /api/database/backup
func (dc *DatabaseController) BackupDatabase(c *gin.Context) {
	if dc.backups == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "task queue is disabled", Code: "tasks_disabled"})
		return
	}

	id, err := dc.backups.EnqueueBackup(c.Request.Context(), "manual")
	if err != nil {
		respondInternalError(c, err, "enqueue backup")
		return
	}
	respondAccepted(c, "Backup scheduled", gin.H{"task_id": id})
}
