package utils

import "github.com/google/uuid"

// UUID returns a new random identifier string.
func UUID() string {
	return uuid.New().String()
}
