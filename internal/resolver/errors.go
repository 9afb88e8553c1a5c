package resolver

import (
	"errors"
	"fmt"
)

// ErrEmptyQuery reports a query with no usable text after normalization.
var ErrEmptyQuery = errors.New("query is empty")

// NoMatchError reports that nothing in the index cleared the acceptance
// threshold for a query. It is an expected outcome, not a fault.
type NoMatchError struct {
	Query string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no target matches %q", e.Query)
}

// IsNoMatch reports whether err represents a below-threshold resolution.
func IsNoMatch(err error) bool {
	var nm *NoMatchError
	return errors.As(err, &nm)
}
