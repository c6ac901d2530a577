// Package report builds and renders the result summary of a testbench run.
package report

import (
	"encoding/json"
	"fmt"
	"io"
)

// Exit codes distinguish how a run ended.
const (
	// ExitPass means every check matched.
	ExitPass = 0
	// ExitMismatch means the run completed but one or more checks failed.
	ExitMismatch = 1
	// ExitIntegrity means the harness itself desynchronized and aborted.
	ExitIntegrity = 2
)

// Failure records a single data mismatch.
type Failure struct {
	// Cycle is the clock cycle the observed value was valid.
	Cycle uint64 `json:"cycle"`
	// Expected is the reference model's prediction.
	Expected uint8 `json:"expected"`
	// Observed is the value the monitor sampled.
	Observed uint8 `json:"observed"`
}

// Summary holds the outcome of a run.
type Summary struct {
	// Checks is the number of scoreboard comparisons performed.
	Checks uint64 `json:"checks"`
	// Passes is the number of comparisons that matched.
	Passes uint64 `json:"passes"`
	// Mismatches is the number of comparisons that did not match.
	Mismatches uint64 `json:"mismatches"`
	// Failures lists every mismatch in cycle order.
	Failures []Failure `json:"failures,omitempty"`

	// StimuliIssued is the number of transactions the driver applied.
	StimuliIssued uint64 `json:"stimuli_issued"`
	// Cycles is the total number of clock cycles simulated.
	Cycles uint64 `json:"cycles"`
	// Seed is the generator seed the run used.
	Seed int64 `json:"seed"`
	// FinalState names the environment state the run ended in.
	FinalState string `json:"final_state"`
	// IntegrityError carries the fatal harness error when the run aborted.
	IntegrityError string `json:"integrity_error,omitempty"`
}

// Clean reports whether the run completed without aborting.
func (s Summary) Clean() bool {
	return s.IntegrityError == ""
}

// Passed reports whether the run completed cleanly with no mismatches.
func (s Summary) Passed() bool {
	return s.Clean() && s.Mismatches == 0
}

// ExitCode maps the summary onto the process exit status.
func (s Summary) ExitCode() int {
	switch {
	case !s.Clean():
		return ExitIntegrity
	case s.Mismatches > 0:
		return ExitMismatch
	default:
		return ExitPass
	}
}

// WriteText renders the human-readable run report.
func (s Summary) WriteText(w io.Writer) {
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Seed: %d\n", s.Seed)
	fmt.Fprintf(w, "Stimuli issued: %d\n", s.StimuliIssued)
	fmt.Fprintf(w, "Total cycles: %d\n", s.Cycles)
	fmt.Fprintf(w, "Final state: %s\n", s.FinalState)
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Checks: %d\n", s.Checks)
	fmt.Fprintf(w, "  Passes:     %4d\n", s.Passes)
	fmt.Fprintf(w, "  Mismatches: %4d\n", s.Mismatches)

	if len(s.Failures) > 0 {
		fmt.Fprintf(w, "\nMismatch details:\n")
		for _, f := range s.Failures {
			fmt.Fprintf(w, "  cycle %4d: expected 0x%02X, observed 0x%02X\n",
				f.Cycle, f.Expected, f.Observed)
		}
	}

	fmt.Fprintf(w, "\n")
	switch {
	case !s.Clean():
		fmt.Fprintf(w, "Result: ABORTED (%s)\n", s.IntegrityError)
	case s.Mismatches > 0:
		fmt.Fprintf(w, "Result: FAIL\n")
	default:
		fmt.Fprintf(w, "Result: PASS\n")
	}
}

// WriteJSON renders the summary as indented JSON.
func (s Summary) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	return nil
}
