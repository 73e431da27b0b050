package domain

import "time"

// Task represents one to-do item.
//
// Description is a pointer so a task created without one serializes as JSON
// null rather than an empty string.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	IsComplete  bool      `json:"isComplete"`
	CreatedAt   time.Time `json:"createdAt"`
}
