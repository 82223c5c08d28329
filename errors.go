package acsearch

import (
	"errors"

	"github.com/coregx/acsearch/automaton"
)

// Error kinds. Every error returned by this module matches exactly one of
// them via errors.Is.
var (
	// ErrInvalidPatternInput indicates the pattern argument was not a list
	// of strings. Returned by hosts that accept untyped input.
	ErrInvalidPatternInput = errors.New("acsearch: invalid pattern input")

	// ErrAutomatonBuild indicates the automaton could not be constructed,
	// for example because a configured limit was exceeded.
	ErrAutomatonBuild = automaton.ErrBuild

	// ErrResultEncoding indicates matches could not be converted to the
	// host representation.
	ErrResultEncoding = errors.New("acsearch: result encoding failed")
)
