package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/missioncontrol/internal/database"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"` // machine-readable error code
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message, Code: "bad_request"})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// storeErrorStatus maps store errors to a status code and machine-readable code.
// ok is false for errors that should be reported as internal.
func storeErrorStatus(err error) (status int, code string, ok bool) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		return http.StatusNotFound, "not_found", true
	case errors.Is(err, database.ErrNoFieldsToUpdate):
		return http.StatusBadRequest, "no_fields_to_update", true
	case errors.Is(err, database.ErrInvalidInput):
		return http.StatusBadRequest, "invalid_input", true
	case errors.Is(err, database.ErrLastProject):
		return http.StatusConflict, "last_project", true
	case errors.Is(err, database.ErrProjectNameTaken):
		return http.StatusConflict, "project_name_taken", true
	case errors.Is(err, database.ErrNoWritableLocation):
		return http.StatusServiceUnavailable, "no_writable_location", true
	case errors.Is(err, database.ErrConnectionFailed):
		return http.StatusServiceUnavailable, "connection_failed", true
	case errors.Is(err, database.ErrSchema):
		return http.StatusServiceUnavailable, "schema_error", true
	}
	return http.StatusInternalServerError, "", false
}

// respondStoreError translates a store error into the matching response.
// Initialization failures carry their detail so the user can see which
// directories were tried or why the database could not be opened.
func respondStoreError(c *gin.Context, err error, context string) {
	status, code, ok := storeErrorStatus(err)
	if !ok {
		respondInternalError(c, err, context)
		return
	}
	if status >= http.StatusInternalServerError {
		log.Printf("Database unavailable (%s): %v", context, err)
	}
	c.JSON(status, ErrorResponse{Error: err.Error(), Code: code})
}

// --- Success Response Helpers ---

// respondSuccess sends a 200 OK response with a message.
func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, SuccessResponse{Message: message})
}

// respondCreated sends a 201 Created response with data.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// respondAccepted sends a 202 Accepted response (for async operations).
func respondAccepted(c *gin.Context, message string, data any) {
	c.JSON(http.StatusAccepted, SuccessResponse{Message: message, Data: data})
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates a positive integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(paramName), 10, 64)
	if err != nil || id <= 0 {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return id, true
}
