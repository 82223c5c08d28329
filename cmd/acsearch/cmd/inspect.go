package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	"github.com/coregx/acsearch/automaton"
	"github.com/coregx/acsearch/prefilter"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Describe the automaton built for the patterns",
	Args:  cobra.NoArgs,
	RunE:  runInspect,
}

func init() {
	addPatternFlags(inspectCmd)
}

// automatonInfo is the shape printed by inspect.
type automatonInfo struct {
	Kind        string `json:"kind"`
	Patterns    int    `json:"patterns"`
	States      int    `json:"states"`
	AlphabetLen int    `json:"alphabet_len"`
	MemoryBytes int    `json:"memory_bytes"`
	Prefilter   string `json:"prefilter"`
}

func describe(a *automaton.Automaton) automatonInfo {
	return automatonInfo{
		Kind:        a.Kind().String(),
		Patterns:    a.PatternCount(),
		States:      a.StateCount(),
		AlphabetLen: a.AlphabetLen(),
		MemoryBytes: a.MemoryUsage(),
		Prefilter:   prefilterName(a.Prefilter()),
	}
}

func prefilterName(p prefilter.Prefilter) string {
	switch p := p.(type) {
	case *prefilter.StartBytes:
		return fmt.Sprintf("start-bytes %q", p.Bytes())
	case *prefilter.Substring:
		return "substring"
	default:
		return "none"
	}
}

func runInspect(cmd *cobra.Command, args []string) error {
	h, err := compile()
	if err != nil {
		return err
	}
	data, err := json.Marshal(describe(h.Searcher().Automaton()))
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(pretty.Pretty(data))
	return err
}
