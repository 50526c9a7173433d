package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"mkcdda/internal/cdda"
)

func main() {
	os.Exit(execute(newRootCommand(), os.Stderr))
}

// execute runs the command tree and returns the process exit status. Usage
// errors are followed by the usage text of the command that failed.
func execute(root *cobra.Command, stderr io.Writer) int {
	cmd, err := root.ExecuteC()
	if err == nil {
		return 0
	}
	if !errors.Is(err, context.Canceled) {
		fmt.Fprintln(stderr, err)
	}
	if errors.Is(err, cdda.UsageError) {
		fmt.Fprint(stderr, cmd.UsageString())
	}
	return 1
}
