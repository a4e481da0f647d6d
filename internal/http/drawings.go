package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/missioncontrol/internal/database"
	"github.com/mrlokans/missioncontrol/internal/entities"
)

type DrawingsController struct {
	store DrawingStore
}

func NewDrawingsController(store DrawingStore) *DrawingsController {
	return &DrawingsController{store: store}
}

// SaveDrawing replaces the project's canvas snapshot
// PUT /api/projects/:id/drawing
func (dc *DrawingsController) SaveDrawing(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req entities.SaveDrawing
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid drawing")
		return
	}
	req.ProjectID = projectID

	drawing, err := dc.store.Save(c.Request.Context(), req)
	if err != nil {
		respondStoreError(c, err, "save drawing")
		return
	}
	c.JSON(http.StatusOK, drawing)
}

// GetDrawing returns the project's canvas snapshot, or null when it has none
// GET /api/projects/:id/drawing
func (dc *DrawingsController) GetDrawing(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	drawing, err := dc.store.Current(c.Request.Context(), projectID)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusOK, nil)
		return
	}
	if err != nil {
		respondStoreError(c, err, "get drawing")
		return
	}
	c.JSON(http.StatusOK, drawing)
}
