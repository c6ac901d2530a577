// Package main provides the regtb command line interface.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sarchlab/regtb/report"
)

func main() {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Message != "" {
				fmt.Fprintf(os.Stderr, "regtb: %s\n", exitErr.Message)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "regtb: %v\n", err)
		os.Exit(report.ExitIntegrity)
	}
}
