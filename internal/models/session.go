package models

import "time"

// EmergencyContact is a trusted contact kept for the current session.
type EmergencyContact struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Relationship string    `json:"relationship"`
	CreatedAt    time.Time `json:"created_at"`
}

// UploadedDocument is the bookkeeping record of a user document.
type UploadedDocument struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	SizeBytes  int64     `json:"size_bytes"`
	Size       string    `json:"size"`
	UploadedAt time.Time `json:"uploaded_at"`
	Tags       []string  `json:"tags"`
	Pages      int       `json:"pages,omitempty"`
	Preview    string    `json:"preview,omitempty"`
}

// User is the profile held by the login stub.
type User struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}

// Role is the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one turn of a conversation.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
