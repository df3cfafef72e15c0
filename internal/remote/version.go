package remote

import (
	"errors"
	"fmt"
)

// ErrInvalidDriverVersion is returned when a backend does not support the
// protocol version of this build.
var ErrInvalidDriverVersion = errors.New("driver does not support this protocol version")

// ErrInvalidMiddlewareVersion is returned when a middleware does not
// support the protocol version of this build.
var ErrInvalidMiddlewareVersion = errors.New("middleware does not support this protocol version")

// Versioned is anything declaring a supported protocol version range.
type Versioned interface {
	VersionRange() (min, max int)
}

// ValidateVersion checks that v supports [ProtocolVersion], wrapping
// sentinel on mismatch.
func ValidateVersion(v Versioned, sentinel error) error {
	min, max := v.VersionRange()
	if ProtocolVersion < min || ProtocolVersion > max {
		return fmt.Errorf("%w: supported [%d, %d], have %d", sentinel, min, max, ProtocolVersion)
	}
	return nil
}
