// Package binding adapts a Searcher to hosts that exchange loosely typed
// values: a pattern list arrives as an arbitrary value and matches leave as
// plain records or JSON.
//
// A Handle is created once and searched any number of times. Neither New nor
// Search mutates a previously returned Handle or result slice.
package binding

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/tidwall/gjson"

	"github.com/coregx/acsearch"
)

// maxSafeInteger is the largest integer a JSON consumer using IEEE-754
// doubles (JavaScript) reads back exactly.
const maxSafeInteger int64 = 1<<53 - 1

// Record is a match in host form.
type Record struct {
	PatternIndex int `json:"pattern_index"`
	Start        int `json:"start"`
	End          int `json:"end"`
}

// Handle is an opaque compiled pattern set.
type Handle struct {
	searcher *acsearch.Searcher
}

// New compiles the pattern list held by v with the default configuration.
//
// Accepted shapes:
//   - []string
//   - []any whose elements are all strings
//   - [][]byte
//   - json.RawMessage or []byte holding a JSON array of strings
//
// Any other value yields an *InputError matching
// acsearch.ErrInvalidPatternInput. Construction limits yield errors matching
// acsearch.ErrAutomatonBuild.
func New(v any) (*Handle, error) {
	return NewWithConfig(v, acsearch.DefaultConfig())
}

// NewWithConfig is New with a custom construction configuration.
func NewWithConfig(v any, config acsearch.Config) (*Handle, error) {
	patterns, err := Patterns(v)
	if err != nil {
		return nil, err
	}
	s, err := acsearch.NewWithConfig(patterns, config)
	if err != nil {
		return nil, err
	}
	return &Handle{searcher: s}, nil
}

// Patterns interprets v as a list of pattern strings. See New for the
// accepted shapes.
func Patterns(v any) ([]string, error) {
	switch v := v.(type) {
	case nil:
		return nil, &InputError{Index: -1, Got: "nil"}
	case []string:
		return append([]string(nil), v...), nil
	case [][]byte:
		out := make([]string, len(v))
		for i, p := range v {
			out[i] = string(p)
		}
		return out, nil
	case []any:
		out := make([]string, len(v))
		for i, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil, &InputError{Index: i, Got: fmt.Sprintf("%T", e)}
			}
			out[i] = s
		}
		return out, nil
	case json.RawMessage:
		return decodeJSON(v)
	case []byte:
		return decodeJSON(v)
	default:
		return nil, &InputError{Index: -1, Got: fmt.Sprintf("%T", v)}
	}
}

// decodeJSON reads a JSON array of strings.
func decodeJSON(data []byte) ([]string, error) {
	if !gjson.ValidBytes(data) {
		return nil, &InputError{Index: -1, Got: "malformed JSON"}
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsArray() {
		return nil, &InputError{Index: -1, Got: "JSON " + jsonKind(doc)}
	}

	elems := doc.Array()
	out := make([]string, len(elems))
	for i, e := range elems {
		if e.Type != gjson.String {
			return nil, &InputError{Index: i, Got: "JSON " + jsonKind(e)}
		}
		out[i] = e.Str
	}
	return out, nil
}

func jsonKind(r gjson.Result) string {
	switch r.Type {
	case gjson.Null:
		return "null"
	case gjson.True, gjson.False:
		return "boolean"
	case gjson.Number:
		return "number"
	case gjson.String:
		return "string"
	}
	if r.IsArray() {
		return "array"
	}
	return "object"
}

// Searcher returns the underlying searcher.
func (h *Handle) Searcher() *acsearch.Searcher {
	return h.searcher
}

// Search returns the matches in haystack as records, in report order. A
// haystack without matches yields an empty, non-nil slice.
//
// An *EncodeError matching acsearch.ErrResultEncoding is returned, with no
// records, when an offset cannot be represented exactly by JSON hosts.
func (h *Handle) Search(haystack string) ([]Record, error) {
	return toRecords(h.searcher.Search(haystack))
}

func toRecords(matches []acsearch.Match) ([]Record, error) {
	records := make([]Record, len(matches))
	for i, m := range matches {
		if int64(m.End) > maxSafeInteger {
			return nil, &EncodeError{Err: fmt.Errorf("offset %d exceeds %d", m.End, maxSafeInteger)}
		}
		records[i] = Record{PatternIndex: m.PatternIndex, Start: m.Start, End: m.End}
	}
	return records, nil
}

// SearchJSON returns the matches in haystack as a JSON array of records.
//
// Example:
//
//	h, _ := binding.New([]string{"he", "she"})
//	out, _ := h.SearchJSON("she")
//	// [{"pattern_index":1,"start":0,"end":3},{"pattern_index":0,"start":1,"end":3}]
func (h *Handle) SearchJSON(haystack string) ([]byte, error) {
	var buf bytes.Buffer
	if err := h.WriteJSON(&buf, haystack); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// WriteJSON encodes the matches in haystack to w as a JSON array followed by
// a newline. The array is encoded in full before anything is written, so a
// failed call writes nothing unless w itself fails midway.
func (h *Handle) WriteJSON(w io.Writer, haystack string) error {
	records, err := h.Search(haystack)
	if err != nil {
		return err
	}
	data, err := json.Marshal(records)
	if err != nil {
		return &EncodeError{Err: err}
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return &EncodeError{Err: err}
	}
	return nil
}
