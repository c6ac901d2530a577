// Package bench implements the self-checking verification environment:
// clock source, driver, monitor, reference model, scoreboard, and the
// state machine that keeps them in lockstep.
package bench

import (
	"github.com/sarchlab/akita/v4/sim"
)

// Clock is the testbench's sole time base. It schedules strictly periodic
// rising-edge events on an Akita event engine and invokes the environment's
// edge function once per edge. Every other component's notion of "cycle" is
// one of these edges.
type Clock struct {
	name   string
	engine sim.Engine
	freq   sim.Freq

	edge func() bool
}

type edgeEvent struct {
	*sim.EventBase
}

// ClockBuilder constructs clocks.
type ClockBuilder struct {
	engine sim.Engine
	freq   sim.Freq
}

// WithEngine sets the event engine the clock schedules on.
func (b ClockBuilder) WithEngine(engine sim.Engine) ClockBuilder {
	b.engine = engine
	return b
}

// WithFreq sets the clock frequency.
func (b ClockBuilder) WithFreq(freq sim.Freq) ClockBuilder {
	b.freq = freq
	return b
}

// Build creates the clock. A serial engine and a 1 GHz frequency are used
// when none are provided.
func (b ClockBuilder) Build(name string) *Clock {
	if b.engine == nil {
		b.engine = sim.NewSerialEngine()
	}
	if b.freq == 0 {
		b.freq = 1 * sim.GHz
	}
	return &Clock{
		name:   name,
		engine: b.engine,
		freq:   b.freq,
	}
}

// Name returns the clock's name.
func (c *Clock) Name() string {
	return c.name
}

// Handle runs one rising edge and schedules the next one while the edge
// function asks for more.
func (c *Clock) Handle(e sim.Event) error {
	if c.edge() {
		c.engine.Schedule(edgeEvent{
			EventBase: sim.NewEventBase(c.freq.NextTick(e.Time()), c),
		})
	}
	return nil
}

// Run drives edge once per clock period until it returns false, then lets
// the engine drain and returns.
func (c *Clock) Run(edge func() bool) error {
	c.edge = edge
	c.engine.Schedule(edgeEvent{
		EventBase: sim.NewEventBase(c.freq.Period(), c),
	})
	return c.engine.Run()
}
