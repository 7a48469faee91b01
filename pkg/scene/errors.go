package scene

import (
	"errors"
	"fmt"
)

// ErrDesynchronized is matched by every DesynchronizationError.
var ErrDesynchronized = errors.New("node out of sync with its descriptor")

// DesynchronizationError reports a node that could not be matched to a
// descriptor during an update. The node is skipped for that frame.
type DesynchronizationError struct {
	Path   string
	Reason string
}

func (e *DesynchronizationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrDesynchronized, e.Path, e.Reason)
}

// Unwrap lets errors.Is match ErrDesynchronized.
func (e *DesynchronizationError) Unwrap() error {
	return ErrDesynchronized
}

// DesynchronizationErrors flattens a joined update error into its
// individual node errors.
func DesynchronizationErrors(err error) []*DesynchronizationError {
	if err == nil {
		return nil
	}
	var out []*DesynchronizationError
	var visit func(error)
	visit = func(err error) {
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			for _, inner := range joined.Unwrap() {
				visit(inner)
			}
			return
		}
		var desync *DesynchronizationError
		if errors.As(err, &desync) {
			out = append(out, desync)
		}
	}
	visit(err)
	return out
}
