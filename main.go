// Package main provides the entry point for regtb.
// regtb is a self-checking, transaction-driven testbench for a synchronous
// 8-bit register-with-enable device model.
//
// For the full CLI, use: go run ./cmd/regtb
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("regtb - register testbench")
	fmt.Println("")
	fmt.Println("Usage: regtb run [options]")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  --seed      Generator seed for reproducible runs")
	fmt.Println("  --length    Number of stimulus transactions")
	fmt.Println("  --mode      RANDOM or DIRECTED")
	fmt.Println("  --pattern   YAML directed pattern file")
	fmt.Println("  --activity  Write switching-activity artifact")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/regtb' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/regtb' instead.")
	}
}
