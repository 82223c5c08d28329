package cmd

import (
	"errors"
)

// errNoMatch is returned by search when nothing matched, so scripts can branch
// on the exit status like they do with grep.
var errNoMatch = errors.New("no match")

// ExitCode maps an Execute error to a process exit status, following grep:
// 1 when nothing matched, 2 for every real error.
func ExitCode(err error) int {
	if errors.Is(err, errNoMatch) {
		return 1
	}
	return 2
}
