package effects

import "errors"

var (
	// ErrInvalidSpec indicates a missing or malformed effect geometry,
	// such as fewer than 2 wall vertices or a non-positive axial length.
	ErrInvalidSpec = errors.New("invalid effect spec")
	// ErrAlreadyExists indicates a create call with an id that already
	// has a live effect. The existing effect is never replaced.
	ErrAlreadyExists = errors.New("effect already exists")
	// ErrNotFound indicates a destroy or lookup on an unknown id.
	ErrNotFound = errors.New("effect not found")
	// ErrHostUnavailable indicates the rendering engine is missing,
	// uninitialised, or failed during primitive construction.
	ErrHostUnavailable = errors.New("rendering host unavailable")
)

// failureReason maps an error onto the label used by the create-failure
// counter.
func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrAlreadyExists):
		return "already_exists"
	case errors.Is(err, ErrInvalidSpec):
		return "invalid_spec"
	case errors.Is(err, ErrHostUnavailable):
		return "host_unavailable"
	default:
		return "other"
	}
}
