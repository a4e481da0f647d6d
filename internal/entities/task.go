package entities

import "time"

// DefaultTaskDuration is the estimate (in minutes) used when none is given.
const DefaultTaskDuration = 25

type Task struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	Duration  int       `json:"duration"` // minutes
	CreatedAt time.Time `json:"created_at"`
	ProjectID int64     `json:"project_id"`
}

type CreateTask struct {
	Text      string `json:"text" binding:"required"`
	Duration  int    `json:"duration"`
	ProjectID int64  `json:"project_id"` // 0 selects the first project
}

// TaskUpdate names only the fields to change. A nil field is left untouched.
type TaskUpdate struct {
	Text      *string `json:"text,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
	Duration  *int    `json:"duration,omitempty"`
}

// IsEmpty reports whether the update names no fields at all.
func (u TaskUpdate) IsEmpty() bool {
	return u.Text == nil && u.Completed == nil && u.Duration == nil
}
