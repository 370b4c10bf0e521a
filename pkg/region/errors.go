package region

import "errors"

// Error taxonomy shared by every generation stage. Call sites wrap these with
// fmt.Errorf so callers can match them with errors.Is.
var (
	// ErrInvalidConfig reports zero or negative dimensions and other unusable parameters.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrInsufficientSpace reports a placement asked for more points than it has candidates.
	ErrInsufficientSpace = errors.New("insufficient space")
	// ErrInvalidInput reports an empty field handed to the cluster finder.
	ErrInvalidInput = errors.New("invalid input")
	// ErrIO reports a persistence failure.
	ErrIO = errors.New("io error")
)
