package utils

import "github.com/maruel/ksid"

// GenerateID returns a new time-sortable identifier, used as request ID.
func GenerateID() string {
	return ksid.NewID().String()
}
