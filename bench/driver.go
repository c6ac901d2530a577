package bench

import (
	"github.com/sarchlab/regtb/dut"
	"github.com/sarchlab/regtb/stim"
)

// Driver pulls stimulus transactions from a generator one at a time and
// applies them to the interface inputs ahead of each clock edge. The pull
// is a strict handshake: the driver requests the next transaction only
// after the previous one has been consumed by an edge, so at most one
// transaction is ever in flight.
type Driver struct {
	gen stim.Generator
	sig *dut.Signals

	issued uint64
}

// NewDriver creates a driver over the given generator and signal record.
func NewDriver(gen stim.Generator, sig *dut.Signals) *Driver {
	return &Driver{gen: gen, sig: sig}
}

// Drive pulls the next stimulus and applies it to the interface for the
// given cycle. It returns the applied transaction and true, or false when
// the generator is exhausted, in which case the inputs are left idle and
// the driver's loop is over.
func (d *Driver) Drive(cycle uint64) (stim.Transaction, bool) {
	tx, ok := d.gen.Next()
	if !ok {
		d.Idle()
		return stim.Transaction{}, false
	}

	tx = tx.WithCycle(cycle)
	d.sig.Enable = tx.Enable
	d.sig.DataIn = tx.Data
	d.issued++
	return tx, true
}

// Idle deasserts enable, holding the interface inert for cycles with no
// stimulus. DataIn keeps its last value, as a real bus would.
func (d *Driver) Idle() {
	d.sig.Enable = false
}

// Issued returns the number of transactions applied so far.
func (d *Driver) Issued() uint64 {
	return d.issued
}
