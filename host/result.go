package host

// ResultError is the error object of a host reply.
type ResultError struct {
	Message string `json:"message"`
}

// Result is the envelope every host reply comes in.
type Result[T any] struct {
	Success bool         `json:"success"`
	Result  T            `json:"result,omitempty"`
	Error   *ResultError `json:"error,omitempty"`
}

// Ok wraps a successful value.
func Ok[T any](v T) Result[T] {
	return Result[T]{Success: true, Result: v}
}

// Fail builds a failed reply.
func Fail[T any](message string) Result[T] {
	return Result[T]{Error: &ResultError{Message: message}}
}

// Value unwraps the reply of op. A failed reply becomes a *CallError
// carrying the host's message, or "<op> call failed" when there is none.
func (r Result[T]) Value(op string) (T, error) {
	if !r.Success {
		var zero T
		return zero, &CallError{Op: op, Message: r.message(op)}
	}
	return r.Result, nil
}

func (r Result[T]) message(op string) string {
	if r.Error != nil && r.Error.Message != "" {
		return r.Error.Message
	}
	return fallbackMessage(op)
}
