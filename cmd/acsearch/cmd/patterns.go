package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coregx/acsearch"
	"github.com/coregx/acsearch/automaton"
	"github.com/coregx/acsearch/binding"
)

// Pattern flags shared by search and inspect.
var (
	patternFlags []string
	patternsFile string
	kindFlag     string
	noPrefilter  bool
)

func addPatternFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringArrayVarP(&patternFlags, "pattern", "p", nil, "pattern to search for (repeatable)")
	f.StringVar(&patternsFile, "patterns-file", "", "file holding a JSON array of pattern strings")
	f.StringVar(&kindFlag, "kind", "auto", "automaton kind: auto, nfa or dfa")
	f.BoolVar(&noPrefilter, "no-prefilter", false, "disable memchr/memmem skipping")
}

// loadPatterns returns the patterns of --patterns-file followed by the -p
// flags, in that order. Pattern indices in the output follow this order.
func loadPatterns() ([]string, error) {
	var patterns []string
	if patternsFile != "" {
		data, err := os.ReadFile(patternsFile)
		if err != nil {
			return nil, fmt.Errorf("reading patterns: %w", err)
		}
		patterns, err = binding.Patterns(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", patternsFile, err)
		}
	}
	patterns = append(patterns, patternFlags...)
	if len(patterns) == 0 {
		return nil, fmt.Errorf("no patterns: use -p or --patterns-file")
	}
	return patterns, nil
}

// buildConfig turns the pattern flags into a construction config.
func buildConfig() (acsearch.Config, error) {
	config := acsearch.DefaultConfig()
	kind, err := automaton.ParseKind(kindFlag)
	if err != nil {
		return config, err
	}
	config.Kind = kind
	config.EnablePrefilter = !noPrefilter
	return config, nil
}

// compile loads the patterns and builds a handle for them.
func compile() (*binding.Handle, error) {
	patterns, err := loadPatterns()
	if err != nil {
		return nil, err
	}
	config, err := buildConfig()
	if err != nil {
		return nil, err
	}
	h, err := binding.NewWithConfig(patterns, config)
	if err != nil {
		return nil, err
	}

	a := h.Searcher().Automaton()
	logger.Debug("automaton built",
		"patterns", len(patterns),
		"states", a.StateCount(),
		"kind", a.Kind().String(),
		"alphabet", a.AlphabetLen(),
		"memory_bytes", a.MemoryUsage(),
	)
	return h, nil
}
