package validate

import (
	"errors"
	"fmt"
)

// UnitTestError is a violated property. The failing indices and the computed
// and expected values are in Msg.
type UnitTestError struct {
	Check string
	Msg   string
}

func (e *UnitTestError) Error() string {
	return fmt.Sprintf("%s test failed: %s", e.Check, e.Msg)
}

func failf(check, format string, args ...interface{}) error {
	return &UnitTestError{Check: check, Msg: fmt.Sprintf(format, args...)}
}

// ErrConstruction means no valid random element could be generated, the
// check that needed it is abandoned
var ErrConstruction = errors.New("could not create non-singular element")
