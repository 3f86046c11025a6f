package domain

import "time"

// Member is the domain model for coworking-space members. Accounts are
// created via registration and flagged as admin only through administrative
// updates outside the API surface.
type Member struct {
	ID           string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
