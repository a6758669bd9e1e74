package errors

import "fmt"

// Failure is the outcome of a processing run that produced no result.
type Failure struct {
	Message  string `json:"message"`
	Internal bool   `json:"-"`
}

// FailureOf converts err into a Failure. User errors keep their message as is;
// anything else is reported as internal.
func FailureOf(err error) Failure {
	if IsUserError(err) {
		return Failure{Message: err.Error()}
	}
	return Failure{Message: "Internal error: " + err.Error(), Internal: true}
}

// FromPanic wraps a recovered panic value into an internal PlotError.
func FromPanic(op string, recovered any) *PlotError {
	if err, ok := recovered.(error); ok {
		return NewInternalError(op, err)
	}
	return NewInternalError(op, fmt.Errorf("panic: %v", recovered))
}
