package binding

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/acsearch"
)

func TestNewAcceptedShapes(t *testing.T) {
	want := []Record{
		{PatternIndex: 1, Start: 1, End: 4},
		{PatternIndex: 0, Start: 2, End: 4},
		{PatternIndex: 3, Start: 2, End: 6},
	}

	inputs := map[string]any{
		"strings":     []string{"he", "she", "his", "hers"},
		"any":         []any{"he", "she", "his", "hers"},
		"bytes":       [][]byte{[]byte("he"), []byte("she"), []byte("his"), []byte("hers")},
		"raw message": json.RawMessage(`["he","she","his","hers"]`),
		"json bytes":  []byte(` [ "he", "she", "his", "hers" ] `),
	}

	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			h, err := New(in)
			require.NoError(t, err)

			got, err := h.Search("ushers")
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestNewJSONEscapes(t *testing.T) {
	h, err := New([]byte(`["café", "tab\there"]`))
	require.NoError(t, err)

	got, err := h.Search("un café, tab\there")
	require.NoError(t, err)
	assert.Equal(t, []Record{
		{PatternIndex: 0, Start: 3, End: 8},
		{PatternIndex: 1, Start: 10, End: 18},
	}, got)
}

func TestNewInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		in    any
		index int
		msg   string
	}{
		{"nil", nil, -1, "got nil"},
		{"int", 42, -1, "got int"},
		{"bare string", "he", -1, "got string"},
		{"map", map[string]string{"a": "b"}, -1, "got map[string]string"},
		{"mixed any", []any{"ok", 7}, 1, "element 1 is int"},
		{"nil element", []any{nil}, 0, "element 0 is <nil>"},
		{"malformed json", []byte(`["a",`), -1, "got malformed JSON"},
		{"json object", []byte(`{"a":1}`), -1, "got JSON object"},
		{"json string", json.RawMessage(`"he"`), -1, "got JSON string"},
		{"json number element", []byte(`["a", 1]`), 1, "element 1 is JSON number"},
		{"json null element", []byte(`[null]`), 0, "element 0 is JSON null"},
		{"json bool element", []byte(`["a","b",true]`), 2, "element 2 is JSON boolean"},
		{"json nested array", []byte(`[["a"]]`), 0, "element 0 is JSON array"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := New(tt.in)
			assert.Nil(t, h)
			require.Error(t, err)

			assert.ErrorIs(t, err, acsearch.ErrInvalidPatternInput)
			assert.NotErrorIs(t, err, acsearch.ErrAutomatonBuild)

			var ie *InputError
			require.ErrorAs(t, err, &ie)
			assert.Equal(t, tt.index, ie.Index)
			assert.Contains(t, err.Error(), "expected an array of strings")
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestNewBuildFailure(t *testing.T) {
	config := acsearch.DefaultConfig()
	config.MaxPatterns = 1

	h, err := NewWithConfig([]string{"a", "b"}, config)
	assert.Nil(t, h)
	assert.ErrorIs(t, err, acsearch.ErrAutomatonBuild)
	assert.NotErrorIs(t, err, acsearch.ErrInvalidPatternInput)
}

func TestNewEmptyList(t *testing.T) {
	for _, in := range []any{[]string{}, []byte(`[]`)} {
		h, err := New(in)
		require.NoError(t, err)

		got, err := h.Search("anything")
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}
}

func TestPatternsCopiesInput(t *testing.T) {
	in := []string{"a", "b"}
	got, err := Patterns(in)
	require.NoError(t, err)

	in[0] = "z"
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestSearchIsPure(t *testing.T) {
	h, err := New([]string{"ab", "b"})
	require.NoError(t, err)

	first, err := h.Search("abab")
	require.NoError(t, err)
	snapshot := append([]Record(nil), first...)

	_, err = h.Search("bbbb")
	require.NoError(t, err)
	again, err := h.Search("abab")
	require.NoError(t, err)

	assert.Equal(t, snapshot, first)
	assert.Equal(t, first, again)
}

func TestSearchJSON(t *testing.T) {
	h, err := New([]string{"he", "she"})
	require.NoError(t, err)

	out, err := h.SearchJSON("she")
	require.NoError(t, err)
	assert.JSONEq(t,
		`[{"pattern_index":1,"start":0,"end":3},{"pattern_index":0,"start":1,"end":3}]`,
		string(out))

	out, err = h.SearchJSON("nothing")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(out))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteJSONFailure(t *testing.T) {
	h, err := New([]string{"x"})
	require.NoError(t, err)

	err = h.WriteJSON(failingWriter{}, "xx")
	require.Error(t, err)
	assert.ErrorIs(t, err, acsearch.ErrResultEncoding)

	var ee *EncodeError
	require.ErrorAs(t, err, &ee)
	assert.EqualError(t, ee.Err, "disk full")
	assert.Contains(t, err.Error(), "result encoding failed")
}

func TestToRecordsOffsetLimit(t *testing.T) {
	if strconv.IntSize < 64 {
		t.Skip("offsets above 2^53 need 64-bit int")
	}

	records, err := toRecords([]acsearch.Match{
		{PatternIndex: 0, Start: 0, End: 1},
		{PatternIndex: 0, Start: math.MaxInt - 1, End: math.MaxInt},
	})
	assert.Nil(t, records)
	assert.ErrorIs(t, err, acsearch.ErrResultEncoding)
	assert.NotErrorIs(t, err, acsearch.ErrInvalidPatternInput)
}
