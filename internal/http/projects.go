package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/missioncontrol/internal/entities"
)

type ProjectsController struct {
	store ProjectStore
}

func NewProjectsController(store ProjectStore) *ProjectsController {
	return &ProjectsController{store: store}
}

// GetAllProjects returns every project, oldest first
// GET /api/projects
func (pc *ProjectsController) GetAllProjects(c *gin.Context) {
	projects, err := pc.store.List(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "list projects")
		return
	}
	c.JSON(http.StatusOK, projects)
}

// CreateProject creates a new project
// POST /api/projects
func (pc *ProjectsController) CreateProject(c *gin.Context) {
	var req entities.CreateProject
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name is required")
		return
	}

	project, err := pc.store.Create(c.Request.Context(), req)
	if err != nil {
		respondStoreError(c, err, "create project")
		return
	}
	respondCreated(c, project)
}

// DeleteProject removes a project with its tasks and drawing
// DELETE /api/projects/:id
func (pc *ProjectsController) DeleteProject(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := pc.store.Delete(c.Request.Context(), id); err != nil {
		respondStoreError(c, err, "delete project")
		return
	}
	respondSuccess(c, "Project deleted")
}
