package pkg

import "github.com/google/uuid"

// GenerateNewSessionID - returns a random id for a UI session.
func GenerateNewSessionID() string {
	return uuid.NewString()
}
