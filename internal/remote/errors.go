package remote

import (
	"errors"
	"fmt"
)

// TransportError wraps any failure reaching a remote collaborator: dial or
// timeout errors, non-2xx responses and undecodable bodies.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether err originated in the transport layer.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
