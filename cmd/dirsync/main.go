package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sdejongh/dirsync/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		// Fatal errors that went through the run are already echoed and
		// recorded in an error report; everything else is printed here.
		var reported *cli.ReportedError
		if !errors.As(err, &reported) {
			fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		}
		os.Exit(1)
	}
}
