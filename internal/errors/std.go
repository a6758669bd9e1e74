package errors

import stderrors "errors"

// As and Is forward to the standard library so callers importing this package
// under its own name do not need a second errors import.

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}
