package rbm

import "github.com/pkg/errors"

var (
	// ErrInvalidArgument indicates a layer assignment or training
	// argument that does not agree with the machine's dimensions.
	// Calls failing with ErrInvalidArgument perform no computation and
	// never mutate the weight matrix.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotInitialized indicates that an operation needing a weight
	// matrix was called before one was built, and the caller supplied
	// no hidden unit count to build one.
	ErrNotInitialized = errors.New("not initialized")
)
