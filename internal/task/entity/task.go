package entity

import "time"

// Task is an owned work item. UserID is immutable after creation and every
// read/write is scoped by it. The two flags move together: marking complete
// sets both, marking incomplete clears both; nothing else touches IsArchived.
type Task struct {
	ID         string    `db:"id" json:"id"`
	UserID     string    `db:"user_id" json:"user_id"`
	Title      string    `db:"title" json:"title"`
	Completed  bool      `db:"completed" json:"completed"`
	IsArchived bool      `db:"is_archived" json:"is_archived"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}
