package entities

import "time"

// Project groups tasks and a drawing. At least one project always exists.
type Project struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateProject struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// Seeded on first provisioning so tasks and drawings always have an owner.
const (
	DefaultProjectName        = "Default Project"
	DefaultProjectDescription = "Your first project"
)
