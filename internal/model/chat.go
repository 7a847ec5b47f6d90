package model

import "time"

type ChatSession struct {
	ID        int       `db:"id"         json:"id"`
	UserID    int       `db:"user_id"    json:"user_id"`
	Title     string    `db:"title"      json:"title"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ChatMessage is one entry in a session's append-only transcript.
// Role is either "user" or "assistant".
type ChatMessage struct {
	ID        int       `db:"id"         json:"id"`
	SessionID int       `db:"session_id" json:"session_id"`
	UserID    int       `db:"user_id"    json:"user_id"`
	Role      string    `db:"role"       json:"role"`
	Content   string    `db:"content"    json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
