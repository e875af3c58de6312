package protocol

import (
	"errors"
	"fmt"
)

// IllegalTransitionError is an operation invoked against a record
// whose last known state does not permit it. It is raised locally and
// never causes a gateway call.
type IllegalTransitionError struct {
	Op         string
	ExchangeID string
	State      string
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf(
		"illegal transition: %s not allowed for exchange %s in state %q",
		e.Op, e.ExchangeID, e.State)
}

// Illegal builds an IllegalTransitionError.
func Illegal(op, exchangeID, state string) error {
	return &IllegalTransitionError{Op: op, ExchangeID: exchangeID, State: state}
}

// IsIllegal tells if err is an illegal transition.
func IsIllegal(err error) bool {
	var ite *IllegalTransitionError
	return errors.As(err, &ite)
}

// ErrUnknownExchange is an operation against an exchange id the cache
// has never seen or has already dropped.
var ErrUnknownExchange = errors.New("unknown exchange record")
