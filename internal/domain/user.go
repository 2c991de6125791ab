package domain

import "github.com/google/uuid"

// User is the minimal shape the workflow core needs from the user service:
// an identity, optionally with a quality score attached.
type User struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name,omitempty"`
}

// UserScore is a user's stored average translating quality score.
type UserScore struct {
	UserID                  uuid.UUID
	AverageTranslatingScore float64
}
