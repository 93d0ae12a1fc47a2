// Command numtower is a calculator over the numeric tower: fixed-width
// integers, rationals, reals, complex numbers, intervals and Julian dates.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/numtower/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			// Flag and argument errors never reached a formatter.
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
