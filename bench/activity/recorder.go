// Package activity records interface signal toggling during a run. The
// resulting artifact is an opaque input to external power reporting; the
// testbench only produces it, never interprets it.
package activity

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sarchlab/regtb/dut"
)

// Artifact is the on-disk switching-activity record: per-signal toggle
// counts over the sampled cycles. Data buses are counted per bit.
type Artifact struct {
	Cycles  uint64            `json:"cycles"`
	Toggles map[string]uint64 `json:"toggles"`
}

// Recorder samples the interface once per clock edge and counts signal
// transitions. It is a passive observer with read-only access.
type Recorder struct {
	cycles  uint64
	last    dut.Signals
	primed  bool
	toggles map[string]uint64
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{toggles: map[string]uint64{}}
}

// Sample records the interface state for one cycle, counting every signal
// that changed since the previous sample. The first sample only primes the
// baseline.
func (r *Recorder) Sample(sig *dut.Signals) {
	r.cycles++

	if r.primed {
		if sig.RstN != r.last.RstN {
			r.toggles["rst_n"]++
		}
		if sig.Enable != r.last.Enable {
			r.toggles["enable"]++
		}
		r.countBus("data_in", r.last.DataIn, sig.DataIn)
		r.countBus("data_out", r.last.DataOut, sig.DataOut)
	}

	r.last = *sig
	r.primed = true
}

func (r *Recorder) countBus(name string, prev, cur uint8) {
	diff := prev ^ cur
	for bit := 0; bit < 8; bit++ {
		if diff&(1<<bit) != 0 {
			r.toggles[fmt.Sprintf("%s[%d]", name, bit)]++
		}
	}
}

// Cycles returns the number of samples taken.
func (r *Recorder) Cycles() uint64 {
	return r.cycles
}

// Artifact returns the accumulated activity record.
func (r *Recorder) Artifact() Artifact {
	toggles := make(map[string]uint64, len(r.toggles))
	for k, v := range r.toggles {
		toggles[k] = v
	}
	return Artifact{Cycles: r.cycles, Toggles: toggles}
}

// WriteFile writes the artifact as JSON.
func (r *Recorder) WriteFile(path string) error {
	data, err := json.MarshalIndent(r.Artifact(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize activity artifact: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write activity artifact: %w", err)
	}

	return nil
}
