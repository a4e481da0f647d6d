package entities

import "time"

// Drawing is the canvas snapshot of a project. Elements and AppState are
// opaque serialized blobs owned by the front-end.
type Drawing struct {
	ID        int64     `json:"id"`
	Elements  string    `json:"elements"`
	AppState  string    `json:"app_state"`
	UpdatedAt time.Time `json:"updated_at"`
	ProjectID int64     `json:"project_id"`
}

type SaveDrawing struct {
	Elements  string `json:"elements"`
	AppState  string `json:"app_state"`
	ProjectID int64  `json:"project_id"`
}
