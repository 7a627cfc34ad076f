// Package models defines the persisted entities of the task tracker.
package models

import "time"

// Task represents a tracked to-do item, mapping to the tasks table.
// Version is bumped on every successful update and drives optimistic
// concurrency detection in the repository.
type Task struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	IsCompleted bool      `json:"is_completed"`
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
