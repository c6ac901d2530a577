package bench

import (
	"errors"
	"fmt"

	"github.com/sarchlab/regtb/report"
	"github.com/sarchlab/regtb/stim"
)

// ErrExpectationUnderflow is returned when the scoreboard is asked to check
// an observation with no expectation queued. It never indicates a device
// bug: it means the expected and observed streams drifted out of lockstep,
// which is a harness-integrity failure and aborts the run.
var ErrExpectationUnderflow = errors.New(
	"expectation queue underflow: expected and observed streams out of lockstep")

// Scoreboard pairs each observed transaction with the oldest queued
// expectation and records mismatches. Mismatches are collected, not fatal:
// a single run reports every divergence.
type Scoreboard struct {
	queue []stim.Transaction

	checks   uint64
	passes   uint64
	failures []report.Failure
}

// NewScoreboard creates an empty scoreboard.
func NewScoreboard() *Scoreboard {
	return &Scoreboard{}
}

// Expect appends an expected transaction to the queue. Insertion order is
// arrival order from the reference model.
func (s *Scoreboard) Expect(tx stim.Transaction) {
	s.queue = append(s.queue, tx)
}

// Check pops the oldest expectation and compares it with the observation.
// A mismatch is recorded and the run continues. An empty queue returns
// ErrExpectationUnderflow.
func (s *Scoreboard) Check(observed stim.Transaction) error {
	if len(s.queue) == 0 {
		return fmt.Errorf("cycle %d: %w", observed.Cycle, ErrExpectationUnderflow)
	}

	expected := s.queue[0]
	s.queue = s.queue[1:]
	s.checks++

	if expected.Data == observed.Data {
		s.passes++
		return nil
	}

	s.failures = append(s.failures, report.Failure{
		Cycle:    observed.Cycle,
		Expected: expected.Data,
		Observed: observed.Data,
	})
	return nil
}

// Depth returns the number of expectations still queued.
func (s *Scoreboard) Depth() int {
	return len(s.queue)
}

// Checks returns the number of comparisons performed.
func (s *Scoreboard) Checks() uint64 {
	return s.checks
}

// Passes returns the number of comparisons that matched.
func (s *Scoreboard) Passes() uint64 {
	return s.passes
}

// Failures returns every recorded mismatch in cycle order.
func (s *Scoreboard) Failures() []report.Failure {
	return s.failures
}
