package util

import (
	"fmt"
	"regexp"
)

// validIDChars matches lowercase alphanumerics, underscores, and hyphens.
var validIDChars = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// ValidateActionID checks that an action id (or lineup name) is usable as
// a catalog key:
//   - Non-empty
//   - Only lowercase alphanumerics, underscores, and hyphens
//   - First character must be alphanumeric
func ValidateActionID(id string) error {
	if id == "" {
		return fmt.Errorf("id must not be empty")
	}
	if !validIDChars.MatchString(id) {
		return fmt.Errorf("id %q contains invalid characters (only a-z, 0-9, underscores, and hyphens are allowed, starting with an alphanumeric)", id)
	}
	return nil
}
