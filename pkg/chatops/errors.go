package chatops

import (
	"errors"
	"fmt"
)

// ErrNeedsUserChoice signals that resolution stopped to show a
// disambiguation menu. It is a suspension, not a failure: the invocation
// ends and the chat framework re-invokes with the user's selection.
var ErrNeedsUserChoice = errors.New("waiting on user menu selection")

// ParseError reports malformed chat argument syntax. User-visible.
type ParseError struct {
	Token  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse argument %q: %s", e.Token, e.Reason)
}

// PanelConfigError reports a mistake in the panel definition itself: an
// unknown entity type, a missing modelattr, an empty object set, or a filter
// on an unknown attribute. Reported distinctly so operators can tell config
// bugs from user errors.
type PanelConfigError struct {
	Reason string
	Err    error
}

func (e *PanelConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *PanelConfigError) Unwrap() error {
	return e.Err
}

// DefaultArgsError reports a default display parameter that failed
// validation, carrying the offending value for the user-facing message.
type DefaultArgsError struct {
	Param string
	Value string
	Err   error
}

func (e *DefaultArgsError) Error() string {
	return fmt.Sprintf("invalid value %q for %s: %v", e.Value, e.Param, e.Err)
}

func (e *DefaultArgsError) Unwrap() error {
	return e.Err
}
