// Command ghgcalc calculates greenhouse gas emissions from activity data.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rshade/ghgcalc/internal/cli"
	"github.com/rshade/ghgcalc/pkg/version"
)

func main() {
	os.Exit(run())
}

// run executes the root command and returns the process exit code.
func run() int {
	root := cli.NewRootCmd(version.String())
	err := root.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return extractExitCode(err)
}

// extractExitCode maps err to a process exit code: 0 for nil, the carried
// code for a *cli.ExitError anywhere in the chain, 1 otherwise.
func extractExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode
	}
	return 1
}
