package entity

import "github.com/google/uuid"

// Caller is the authenticated principal of a request, taken from a verified token.
type Caller struct {
	UserID   *uuid.UUID
	Username string
	Roles    []string
}

func (c Caller) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}
