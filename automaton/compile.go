package automaton

import (
	"math"

	"github.com/coregx/acsearch/internal/conv"
	"github.com/coregx/acsearch/internal/sparse"
	"github.com/coregx/acsearch/prefilter"
	"github.com/coregx/acsearch/trie"
)

// Build inserts patterns into a trie and compiles it. Limits from config are
// enforced while inserting, so an oversized pattern set fails before the
// whole trie is materialized. Construction is all-or-nothing: on error the
// returned automaton is nil.
//
// Zero patterns are accepted and yield a one-state automaton that never
// matches.
func Build(patterns [][]byte, config Config) (*Automaton, error) {
	if err := config.Validate(); err != nil {
		return nil, &BuildError{Pattern: -1, Err: err}
	}
	if len(patterns) > config.MaxPatterns {
		return nil, &BuildError{Pattern: config.MaxPatterns, Limit: config.MaxPatterns, Err: ErrTooManyPatterns}
	}

	b := trie.NewBuilderWithCapacity(stateEstimate(patterns, config.MaxStates))
	for i, p := range patterns {
		b.AddPattern(p)
		if b.Len() > config.MaxStates {
			return nil, &BuildError{Pattern: i, Limit: config.MaxStates, Err: ErrTooManyStates}
		}
	}
	return Compile(b.Build(), config)
}

// stateEstimate bounds the trie size by one state per pattern byte plus the
// root, capped at limit.
func stateEstimate(patterns [][]byte, limit int) int {
	n := 1
	for _, p := range patterns {
		n += len(p)
		if n > limit {
			return limit
		}
	}
	return n
}

// Compile turns a trie into an automaton.
//
// Steps:
//  1. Validate config and limits, pick the transition representation
//  2. Flatten the trie edges into one arena
//  3. Compute failure links breadth first
//  4. Propagate output lists along failure links in the same order
//  5. For KindDFA, fill the dense table row by row
//  6. Select a prefilter
func Compile(tr *trie.Trie, config Config) (*Automaton, error) {
	if err := config.Validate(); err != nil {
		return nil, &BuildError{Pattern: -1, Err: err}
	}
	if tr.PatternCount() > config.MaxPatterns {
		return nil, &BuildError{Pattern: -1, Limit: config.MaxPatterns, Err: ErrTooManyPatterns}
	}
	if tr.Len() > config.MaxStates {
		return nil, &BuildError{Pattern: -1, Limit: config.MaxStates, Err: ErrTooManyStates}
	}

	classes := trie.SingletonByteClasses()
	if config.ByteClasses {
		classes = tr.ByteClasses()
	}
	stride := classes.AlphabetLen()

	kind, err := selectKind(config, tr.Len(), stride)
	if err != nil {
		return nil, err
	}

	a := &Automaton{
		kind:        kind,
		classes:     classes,
		stride:      stride,
		patternLens: tr.PatternLens(),
	}
	a.flatten(tr)
	order := a.computeFailures(tr)
	if err := a.computeOutputs(tr, order); err != nil {
		return nil, err
	}
	if kind == KindDFA {
		a.buildDense(order)
	}
	if config.EnablePrefilter {
		a.prefilter = prefilter.New(tr)
	}
	return a, nil
}

// selectKind resolves KindAuto and checks the dense table against
// DFASizeLimit.
func selectKind(config Config, states, stride int) (Kind, error) {
	size := uint64(states) * uint64(stride) * 4
	fits := size <= uint64(config.DFASizeLimit)

	switch config.Kind {
	case KindNFA:
		return KindNFA, nil
	case KindDFA:
		if !fits {
			return 0, &BuildError{Pattern: -1, Limit: config.DFASizeLimit, Err: ErrDFATooLarge}
		}
		return KindDFA, nil
	default:
		if fits {
			return KindDFA, nil
		}
		return KindNFA, nil
	}
}

// flatten copies the sparse trie edges into a single arena.
func (a *Automaton) flatten(tr *trie.Trie) {
	n := tr.Len()
	a.transStart = make([]uint32, n+1)
	total := 0
	for s := 0; s < n; s++ {
		total += len(tr.Transitions(StateID(s)))
	}
	a.trans = make([]trie.Transition, 0, total)
	for s := 0; s < n; s++ {
		a.transStart[s] = conv.IntToUint32(len(a.trans))
		a.trans = append(a.trans, tr.Transitions(StateID(s))...)
	}
	a.transStart[n] = conv.IntToUint32(len(a.trans))
}

// computeFailures assigns a failure link to every state and returns the
// breadth-first visiting order.
//
// A state t reached by edge (s, b) fails to the first state on s's failure
// chain that has an explicit edge on b, taking that edge. Depth-one states
// fail to the root. The chain only holds shallower states, all of which were
// visited before s, so their links are final.
func (a *Automaton) computeFailures(tr *trie.Trie) []uint32 {
	n := tr.Len()
	a.fail = make([]StateID, n)

	queue := sparse.NewSparseSet(conv.IntToUint32(n))
	queue.Insert(uint32(Root))
	for i := 0; i < queue.Len(); i++ {
		s := StateID(queue.At(i))
		for _, e := range tr.Transitions(s) {
			queue.Insert(uint32(e.Next))
			if s == Root {
				a.fail[e.Next] = Root
				continue
			}
			f := a.fail[s]
			for {
				if next, ok := tr.Next(f, e.Byte); ok {
					a.fail[e.Next] = next
					break
				}
				if f == Root {
					a.fail[e.Next] = Root
					break
				}
				f = a.fail[f]
			}
		}
	}
	return queue.Values()
}

// computeOutputs builds output(s) = own(s) ++ output(fail(s)) in
// breadth-first order, so output(fail(s)) is complete before s needs it.
func (a *Automaton) computeOutputs(tr *trie.Trie, order []uint32) error {
	n := tr.Len()
	a.outStart = make([]uint32, n)
	a.outEnd = make([]uint32, n)

	for _, v := range order {
		s := StateID(v)
		own := tr.Terminals(s)
		if s == Root {
			a.setOutputs(s, len(a.outputs), len(a.outputs)+len(own))
			a.outputs = append(a.outputs, own...)
			continue
		}

		f := a.fail[s]
		if len(own) == 0 {
			a.outStart[s], a.outEnd[s] = a.outStart[f], a.outEnd[f]
			continue
		}

		inherited := a.outEnd[f] - a.outStart[f]
		start := len(a.outputs)
		end := start + len(own) + int(inherited)
		if uint64(end) > math.MaxUint32 {
			return &BuildError{Pattern: -1, Limit: math.MaxUint32, Err: ErrOutputsTooLarge}
		}
		a.outputs = append(a.outputs, own...)
		a.outputs = append(a.outputs, a.outputs[a.outStart[f]:a.outEnd[f]]...)
		a.setOutputs(s, start, end)
	}
	return nil
}

func (a *Automaton) setOutputs(s StateID, start, end int) {
	a.outStart[s] = conv.IntToUint32(start)
	a.outEnd[s] = conv.IntToUint32(end)
}

// buildDense fills the total transition table. Each row starts as a copy of
// the failure target's row (already final, being shallower) and is then
// overwritten with the state's own trie edges. The root row starts as all
// zeros, which is the root self-loop.
func (a *Automaton) buildDense(order []uint32) {
	stride := a.stride
	a.dense = make([]StateID, len(a.fail)*stride)

	for _, v := range order {
		s := int(v)
		row := a.dense[s*stride : (s+1)*stride]
		if StateID(s) != Root {
			f := int(a.fail[s])
			copy(row, a.dense[f*stride:(f+1)*stride])
		}
		for _, e := range a.trans[a.transStart[s]:a.transStart[s+1]] {
			row[a.classes.Get(e.Byte)] = e.Next
		}
	}
}
