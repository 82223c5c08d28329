package automaton

import "strconv"

// Kind selects how transitions are represented at search time.
type Kind uint8

const (
	// KindAuto uses a DFA when its transition table fits DFASizeLimit and an
	// NFA otherwise.
	KindAuto Kind = iota

	// KindNFA keeps only the trie edges and follows failure links while
	// searching. Smallest memory footprint; a mismatch may walk several links.
	KindNFA

	// KindDFA precomputes a total transition table (goto completion), so each
	// haystack byte costs exactly one table lookup.
	KindDFA
)

// String returns the flag spelling of the kind.
func (k Kind) String() string {
	switch k {
	case KindAuto:
		return "auto"
	case KindNFA:
		return "nfa"
	case KindDFA:
		return "dfa"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// ParseKind parses the String form of a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "auto", "":
		return KindAuto, nil
	case "nfa":
		return KindNFA, nil
	case "dfa":
		return KindDFA, nil
	}
	return KindAuto, &ConfigError{Field: "Kind", Message: "unknown kind " + strconv.Quote(s) + " (want auto, nfa or dfa)"}
}

// Config controls automaton construction.
//
// Example:
//
//	config := automaton.DefaultConfig()
//	config.Kind = automaton.KindNFA // Trade speed for memory
//	a, err := automaton.Build(patterns, config)
type Config struct {
	// Kind selects the transition representation.
	// Default: KindAuto
	Kind Kind

	// MaxPatterns caps the number of patterns.
	// Default: 1<<24
	MaxPatterns int

	// MaxStates caps the number of trie states (distinct prefixes plus root).
	// Default: 1<<26
	MaxStates int

	// DFASizeLimit caps the dense transition table in bytes. KindAuto falls
	// back to an NFA above it; KindDFA fails to build.
	// Default: 64 MiB
	DFASizeLimit int

	// ByteClasses shrinks the dense table to one column per byte class
	// instead of one per byte value.
	// Default: true
	ByteClasses bool

	// EnablePrefilter lets the matcher skip ahead with memchr/memmem while
	// in the root state.
	// Default: true
	EnablePrefilter bool
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Kind:            KindAuto,
		MaxPatterns:     1 << 24,
		MaxStates:       1 << 26,
		DFASizeLimit:    64 << 20,
		ByteClasses:     true,
		EnablePrefilter: true,
	}
}

// Validate checks if the configuration is valid.
//
// Valid ranges:
//   - Kind: KindAuto, KindNFA or KindDFA
//   - MaxPatterns: 0 to 1<<30
//   - MaxStates: 1 to 1<<31 - 2
//   - DFASizeLimit: >= 0
func (c Config) Validate() error {
	if c.Kind > KindDFA {
		return &ConfigError{Field: "Kind", Message: "must be KindAuto, KindNFA or KindDFA"}
	}
	if c.MaxPatterns < 0 || c.MaxPatterns > 1<<30 {
		return &ConfigError{Field: "MaxPatterns", Message: "must be between 0 and 1<<30"}
	}
	if c.MaxStates < 1 || int64(c.MaxStates) > 1<<31-2 {
		return &ConfigError{Field: "MaxStates", Message: "must be between 1 and 1<<31 - 2"}
	}
	if c.DFASizeLimit < 0 {
		return &ConfigError{Field: "DFASizeLimit", Message: "must not be negative"}
	}
	return nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "acsearch: invalid config: " + e.Field + ": " + e.Message
}

// Unwrap lets errors.Is match ErrInvalidConfig.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// Is reports a ConfigError as a construction failure, so errors from
// Validate and ParseKind match ErrBuild even when not wrapped in a
// BuildError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrBuild
}
