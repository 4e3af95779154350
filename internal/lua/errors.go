package lua

import "errors"

var (
	// ErrNilRuntime is returned when a nil runtime is passed to a function that requires one.
	ErrNilRuntime = errors.New("runtime cannot be nil")

	// ErrNotCallable is returned when a Lua value expected to be a function is not one.
	ErrNotCallable = errors.New("value is not a function")

	// ErrLimitExceeded wraps a resource limit hit while running Lua code.
	ErrLimitExceeded = errors.New("lua resource limit exceeded")

	// ErrBadResult is returned when a Lua function returns a value of the wrong type.
	ErrBadResult = errors.New("unexpected lua result")
)
