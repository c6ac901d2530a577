package bench

import (
	"fmt"
	"log/slog"

	"github.com/sarchlab/regtb/bench/activity"
	"github.com/sarchlab/regtb/dut"
	"github.com/sarchlab/regtb/report"
	"github.com/sarchlab/regtb/stim"
)

// State is the environment's run phase.
type State int

const (
	// StateReset holds reset asserted before any stimulus.
	StateReset State = iota
	// StateRunning issues stimulus transactions.
	StateRunning
	// StateDraining lets issued stimuli flush through the device's
	// registered latency; nothing may be dropped unchecked here.
	StateDraining
	// StateDone is the clean terminal state.
	StateDone
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateReset:
		return "RESET"
	case StateRunning:
		return "RUNNING"
	case StateDraining:
		return "DRAINING"
	case StateDone:
		return "DONE"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Environment wires the clock, driver, device, monitor, reference model,
// and scoreboard into a lockstep cycle loop. Within a cycle the phases run
// in a fixed order: the driver applies stimulus, the device registers it,
// the monitor samples, the reference model's prediction is enqueued, and
// the scoreboard checks the previous cycle's observation. That ordering is
// what keeps the one-cycle latency contract honest.
type Environment struct {
	cfg RunConfig

	sig      dut.Signals
	device   dut.Device
	gen      stim.Generator
	driver   *Driver
	monitor  *Monitor
	ref      *RefModel
	sb       *Scoreboard
	clock    *Clock
	recorder *activity.Recorder
	logger   *slog.Logger

	state     State
	cycle     uint64
	resetLeft int
	resetAt   map[uint64]bool

	prevObs  stim.Transaction
	checkDue bool
	fatal    error
}

// EnvOption is a functional option for configuring the Environment.
type EnvOption func(*Environment)

// WithDevice substitutes the device under test. Useful for checking the
// checker against a deliberately broken device.
func WithDevice(device dut.Device) EnvOption {
	return func(e *Environment) {
		e.device = device
	}
}

// WithGenerator substitutes the stimulus generator, overriding the one the
// configuration would build.
func WithGenerator(gen stim.Generator) EnvOption {
	return func(e *Environment) {
		e.gen = gen
	}
}

// WithClock substitutes the clock source.
func WithClock(clock *Clock) EnvOption {
	return func(e *Environment) {
		e.clock = clock
	}
}

// WithActivityRecorder attaches a switching-activity recorder.
func WithActivityRecorder(rec *activity.Recorder) EnvOption {
	return func(e *Environment) {
		e.recorder = rec
	}
}

// WithLogger enables per-cycle debug logging.
func WithLogger(logger *slog.Logger) EnvOption {
	return func(e *Environment) {
		e.logger = logger
	}
}

// NewEnvironment builds an environment for the given configuration.
func NewEnvironment(cfg *RunConfig, opts ...EnvOption) (*Environment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid run config: %w", err)
	}

	e := &Environment{
		cfg:       *cfg.Clone(),
		state:     StateReset,
		resetLeft: cfg.ResetCycles,
		resetAt:   make(map[uint64]bool, len(cfg.ResetAt)),
	}
	for _, cycle := range cfg.ResetAt {
		e.resetAt[cycle] = true
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.device == nil {
		e.device = dut.NewRegister()
	}
	if e.gen == nil {
		gen, err := buildGenerator(cfg)
		if err != nil {
			return nil, err
		}
		e.gen = gen
	}
	if e.clock == nil {
		e.clock = ClockBuilder{}.Build("TbClock")
	}
	if e.recorder == nil && cfg.ActivityFile != "" {
		e.recorder = activity.NewRecorder()
	}

	e.driver = NewDriver(e.gen, &e.sig)
	e.monitor = NewMonitor(&e.sig)
	e.ref = NewRefModel()
	e.sb = NewScoreboard()

	return e, nil
}

// buildGenerator constructs the generator the configuration asks for.
func buildGenerator(cfg *RunConfig) (stim.Generator, error) {
	switch cfg.TestMode {
	case TestModeRandom:
		return stim.NewRandom(cfg.Seed, cfg.SequenceLength), nil
	case TestModeDirected:
		if cfg.PatternFile != "" {
			pattern, err := stim.LoadPatternFile(cfg.PatternFile)
			if err != nil {
				return nil, err
			}
			return pattern.Generator()
		}
		return stim.NewDirected(stim.DefaultDirectedVectors(cfg.SequenceLength))
	default:
		return nil, fmt.Errorf("unknown test mode %q", cfg.TestMode)
	}
}

// State returns the environment's current phase.
func (e *Environment) State() State {
	return e.state
}

// Run executes the whole scenario and returns the result summary. A
// harness-integrity failure aborts the run and is returned as a non-nil
// error alongside the partial summary; device mismatches are not errors,
// they are counted in the summary.
func (e *Environment) Run() (report.Summary, error) {
	if err := e.clock.Run(e.onEdge); err != nil {
		return e.summary(), fmt.Errorf("clock engine: %w", err)
	}

	if e.recorder != nil && e.cfg.ActivityFile != "" {
		if err := e.recorder.WriteFile(e.cfg.ActivityFile); err != nil {
			return e.summary(), err
		}
	}

	return e.summary(), e.fatal
}

// onEdge runs one full cycle. It returns false to stop the clock.
func (e *Environment) onEdge() bool {
	e.cycle++
	cycle := e.cycle

	// Phase (a): the driver owns the inputs.
	var driven stim.Transaction
	drove := false
	reset := false

	switch e.state {
	case StateReset:
		reset = true
		e.sig.RstN = false
		e.driver.Idle()
		e.resetLeft--
	case StateRunning:
		if e.resetAt[cycle] {
			reset = true
			e.sig.RstN = false
			e.driver.Idle()
		} else {
			e.sig.RstN = true
			driven, drove = e.driver.Drive(cycle)
			if !drove {
				e.state = StateDraining
			}
		}
	case StateDraining:
		e.sig.RstN = true
		e.driver.Idle()
	}

	// Phase (b): the device registers its inputs.
	e.device.Edge(&e.sig)

	// Phase (c): sample the settled output. The value registered at this
	// edge is what the design outputs throughout the next cycle, so the
	// observation carries that cycle index.
	obs := e.monitor.Sample(cycle + 1)
	if e.recorder != nil {
		e.recorder.Sample(&e.sig)
	}

	// Phase (d): predict and enqueue. Startup reset cycles are not
	// enqueued, so an empty sequence ends with zero checks; a mid-run
	// reset is, so the forced zero is itself verified.
	enqueued := false
	switch {
	case drove:
		expected := e.ref.Step(false, driven.Enable, driven.Data)
		e.sb.Expect(stim.NewObservation(expected, cycle+1))
		enqueued = true
	case reset:
		expected := e.ref.Step(true, false, 0)
		if e.state != StateReset {
			e.sb.Expect(stim.NewObservation(expected, cycle+1))
			enqueued = true
		}
	}

	// Phase (e): check the previous cycle's observation against the
	// oldest expectation.
	if e.checkDue {
		if err := e.sb.Check(e.prevObs); err != nil {
			e.fatal = err
			return false
		}
	}
	e.checkDue = enqueued
	e.prevObs = obs

	if e.logger != nil {
		e.logger.Debug("cycle",
			"n", cycle,
			"state", e.state.String(),
			"rst_n", e.sig.RstN,
			"enable", e.sig.Enable,
			"data_in", e.sig.DataIn,
			"data_out", e.sig.DataOut,
			"queue_depth", e.sb.Depth(),
		)
	}

	// State machine advance.
	switch e.state {
	case StateReset:
		if e.resetLeft <= 0 {
			e.state = StateRunning
		}
	case StateDraining:
		if !e.checkDue && e.sb.Depth() == 0 {
			e.state = StateDone
			return false
		}
	}

	return true
}

// summary builds the result summary from the current component state.
func (e *Environment) summary() report.Summary {
	s := report.Summary{
		Checks:        e.sb.Checks(),
		Passes:        e.sb.Passes(),
		Mismatches:    uint64(len(e.sb.Failures())),
		Failures:      e.sb.Failures(),
		StimuliIssued: e.driver.Issued(),
		Cycles:        e.cycle,
		Seed:          e.cfg.Seed,
		FinalState:    e.state.String(),
	}
	if e.fatal != nil {
		s.IntegrityError = e.fatal.Error()
	}
	return s
}
