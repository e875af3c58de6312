package gateway

import (
	"errors"
	"fmt"
)

// Error is a failed gateway call. Status 0 means the agent could not
// be reached at all; 422 means the agent understood the request but
// its business rules rejected it, with the agent's own explanation in
// Body, passed on verbatim.
type Error struct {
	Status int
	Op     string
	Body   string
	cause  error
}

func (e *Error) Error() string {
	switch {
	case e.Status == 0:
		return fmt.Sprintf("agent unavailable: %s: %v", e.Op, e.cause)
	case e.Body != "":
		return fmt.Sprintf("%s: agent rejected request (%d): %s",
			e.Op, e.Status, e.Body)
	default:
		return fmt.Sprintf("%s: agent returned status %d", e.Op, e.Status)
	}
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Transport tells if the agent was unreachable. Nothing is assumed to
// have changed at the agent; the pollers keep trying on their normal
// cadence.
func (e *Error) Transport() bool {
	return e.Status == 0
}

// Rejection tells if the agent refused the request on business rules.
func (e *Error) Rejection() bool {
	return e.Status == 422
}

// AsError returns err as a gateway error when it is one.
func AsError(err error) (*Error, bool) {
	var ge *Error
	if errors.As(err, &ge) {
		return ge, true
	}
	return nil, false
}

func transportErr(op string, cause error) *Error {
	return &Error{Op: op, cause: cause}
}

func statusErr(op string, status int, body []byte) *Error {
	return &Error{Op: op, Status: status, Body: string(body)}
}
