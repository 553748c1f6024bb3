package host

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrHostCall matches every failed host call.
var ErrHostCall = errors.New("host call failed")

// CallError is a host call that reported success=false or did not complete.
type CallError struct {
	Op      string
	Message string
}

func (e *CallError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *CallError) Is(target error) bool {
	return target == ErrHostCall
}

// DeletionFailedError is a failed RecycleElement call.
type DeletionFailedError struct {
	ID      string
	Message string
}

func (e *DeletionFailedError) Error() string {
	return fmt.Sprintf("delete element %s: %s", e.ID, e.Message)
}

func (e *DeletionFailedError) Is(target error) bool {
	return target == ErrHostCall
}

func fallbackMessage(op string) string {
	return op + " call failed"
}
