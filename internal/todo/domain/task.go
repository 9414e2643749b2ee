package domain

import "time"

// Task is a single to-do entry. It only moves forward: created incomplete,
// then completed, then purged.
type Task struct {
	ID          string
	UserID      string
	Description string
	IsComplete  bool
	CreatedAt   time.Time
}
