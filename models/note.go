package models

import "time"

// Note is a single text note owned by exactly one user. All note operations
// are scoped by UserID; a note is never visible outside its owner's account.
type Note struct {
	// ID is the unique identifier of the note (UUIDv7 string).
	ID string `json:"id"`

	// UserID is the identifier of the owning user account.
	// It is an internal linkage field and is not exposed via JSON.
	UserID string `json:"-"`

	// Title is the required note headline.
	Title string `json:"title"`

	// Content is the required note body.
	Content string `json:"content"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the Note model.
func (n Note) TableName() string {
	return "notes"
}
