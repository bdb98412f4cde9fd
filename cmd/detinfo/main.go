// Command detinfo reports on germanium detector metadata: parameter tables,
// production status and parameter plots, and the one-shot schema migration.
package main

import (
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
