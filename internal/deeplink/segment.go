package deeplink

import (
	"errors"
	"fmt"
	"regexp"
)

var (
	// ErrIDEmpty is returned when a photo id or friendship uuid is empty.
	ErrIDEmpty = errors.New("link id must not be empty")

	// ErrIDFormat is returned when an id cannot be carried as a single path
	// segment.
	ErrIDFormat = errors.New("link id must not contain '/', '?', '#', '%' or whitespace")

	// ErrNotLinkable is returned when building a link for the None intent.
	ErrNotLinkable = errors.New("intent has nothing to link to")

	// idPattern matches a value that survives as a single path segment
	// without escaping.
	idPattern = regexp.MustCompile(`^[^/?#%\s]+$`)
)

// ValidateID checks that id can be embedded as a path segment of a link.
func ValidateID(id string) error {
	if id == "" {
		return ErrIDEmpty
	}
	if !idPattern.MatchString(id) {
		return fmt.Errorf("%w: %q", ErrIDFormat, id)
	}
	return nil
}
