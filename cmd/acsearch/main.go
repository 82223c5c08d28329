// acsearch searches input for many fixed patterns at once and prints every
// occurrence as a JSON record.
package main

import (
	"os"

	"github.com/coregx/acsearch/cmd/acsearch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(cmd.ExitCode(err))
	}
}
