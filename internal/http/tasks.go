package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/missioncontrol/internal/entities"
)

type TasksController struct {
	store TaskStore
}

func NewTasksController(store TaskStore) *TasksController {
	return &TasksController{store: store}
}

// GetProjectTasks returns a project's tasks in creation order
// GET /api/projects/:id/tasks
func (tc *TasksController) GetProjectTasks(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	tasks, err := tc.store.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		respondStoreError(c, err, "list tasks")
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// CreateTask adds a task
// POST /api/tasks
func (tc *TasksController) CreateTask(c *gin.Context) {
	var req entities.CreateTask
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "text is required")
		return
	}

	task, err := tc.store.Create(c.Request.Context(), req)
	if err != nil {
		respondStoreError(c, err, "create task")
		return
	}
	respondCreated(c, task)
}

// UpdateTask changes only the fields present in the body
// PATCH /api/tasks/:id
func (tc *TasksController) UpdateTask(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var update entities.TaskUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respondBadRequest(c, "invalid task update")
		return
	}

	task, err := tc.store.Update(c.Request.Context(), id, update)
	if err != nil {
		respondStoreError(c, err, "update task")
		return
	}
	c.JSON(http.StatusOK, task)
}

// DeleteTask removes a task
// DELETE /api/tasks/:id
func (tc *TasksController) DeleteTask(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := tc.store.Delete(c.Request.Context(), id); err != nil {
		respondStoreError(c, err, "delete task")
		return
	}
	respondSuccess(c, "Task deleted")
}
