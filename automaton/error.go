package automaton

import (
	"errors"
	"fmt"
)

// Build errors. Every construction failure matches ErrBuild via errors.Is.
var (
	// ErrBuild is the kind shared by all construction failures.
	ErrBuild = errors.New("automaton build failed")

	// ErrTooManyPatterns indicates the pattern count exceeds Config.MaxPatterns.
	ErrTooManyPatterns = errors.New("too many patterns")

	// ErrTooManyStates indicates the trie exceeds Config.MaxStates.
	ErrTooManyStates = errors.New("too many states")

	// ErrDFATooLarge indicates KindDFA was requested but the transition table
	// exceeds Config.DFASizeLimit.
	ErrDFATooLarge = errors.New("DFA transition table too large")

	// ErrOutputsTooLarge indicates the flattened output sets overflow 32-bit
	// offsets.
	ErrOutputsTooLarge = errors.New("output sets too large")

	// ErrInvalidConfig indicates invalid configuration was provided.
	ErrInvalidConfig = errors.New("invalid automaton configuration")
)

// BuildError describes a construction failure. No automaton is returned
// alongside it.
type BuildError struct {
	// Pattern is the index of the pattern being inserted when a limit was
	// hit, or -1 when the failure is not tied to one pattern.
	Pattern int

	// Limit is the configured limit that was exceeded, if any.
	Limit int

	Err error
}

// Error implements the error interface
func (e *BuildError) Error() string {
	switch {
	case e.Pattern >= 0 && e.Limit > 0:
		return fmt.Sprintf("automaton build failed at pattern %d: %v (limit %d)", e.Pattern, e.Err, e.Limit)
	case e.Limit > 0:
		return fmt.Sprintf("automaton build failed: %v (limit %d)", e.Err, e.Limit)
	default:
		return fmt.Sprintf("automaton build failed: %v", e.Err)
	}
}

// Unwrap returns the underlying error
func (e *BuildError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrBuild.
func (e *BuildError) Is(target error) bool {
	return target == ErrBuild
}
