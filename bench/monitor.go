package bench

import (
	"github.com/sarchlab/regtb/dut"
	"github.com/sarchlab/regtb/stim"
)

// Monitor passively samples the interface output once per clock edge, after
// the device has settled, and emits one observed transaction per cycle
// whether or not the value changed. It never writes to the interface.
type Monitor struct {
	sig *dut.Signals

	sampled uint64
}

// NewMonitor creates a monitor over the given signal record.
func NewMonitor(sig *dut.Signals) *Monitor {
	return &Monitor{sig: sig}
}

// Sample reads DataOut and emits an observation. The value registered at
// this edge is the output the rest of the design sees during the following
// cycle, so the observation is stamped with that cycle index.
func (m *Monitor) Sample(validCycle uint64) stim.Transaction {
	m.sampled++
	return stim.NewObservation(m.sig.DataOut, validCycle)
}

// Sampled returns the number of observations emitted so far.
func (m *Monitor) Sampled() uint64 {
	return m.sampled
}
