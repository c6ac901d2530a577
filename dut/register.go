// Package dut models the device under test: a synchronous 8-bit register
// with enable and active-low reset, exposed through an explicit interface
// signal record.
package dut

// Signals is the interface bundle shared between the testbench and the
// device. Ownership is strict: the driver writes RstN, Enable, and DataIn;
// the device writes DataOut on each clock edge; the monitor only reads.
type Signals struct {
	// RstN is the active-low reset. False means the device is in reset.
	RstN bool
	// Enable gates loading of DataIn into the register.
	Enable bool
	// DataIn is the 8-bit input value.
	DataIn uint8
	// DataOut is the 8-bit registered output. Written only by the device.
	DataOut uint8
}

// Device is a synchronous block driven by the testbench clock. Edge applies
// one rising clock edge: the device reads the input signals, updates its
// registered state, and writes DataOut. The value written at edge N is the
// output visible throughout cycle N+1, which gives every device a one-cycle
// registered latency.
type Device interface {
	Edge(sig *Signals)
}

// Register is the reference device: an 8-bit register with enable.
// On reset the register clears to 0. Otherwise a rising edge loads DataIn
// when Enable is asserted and holds the prior value when it is not.
type Register struct {
	reg uint8
}

// NewRegister creates a register in its reset state.
func NewRegister() *Register {
	return &Register{}
}

// Edge applies one rising clock edge.
func (r *Register) Edge(sig *Signals) {
	if !sig.RstN {
		r.reg = 0
	} else if sig.Enable {
		r.reg = sig.DataIn
	}
	sig.DataOut = r.reg
}

// Value returns the current registered value.
func (r *Register) Value() uint8 {
	return r.reg
}

// FaultyRegister wraps Register and corrupts every Nth enabled load by
// flipping the low bit. It exists to exercise the checking path: a harness
// that cannot catch a planted fault is not checking anything.
type FaultyRegister struct {
	inner Register

	// CorruptEvery selects which enabled loads are corrupted. A value of 3
	// corrupts the 3rd, 6th, 9th, ... load. Zero disables corruption.
	CorruptEvery int

	loads int
}

// NewFaultyRegister creates a register that corrupts every nth enabled load.
func NewFaultyRegister(n int) *FaultyRegister {
	return &FaultyRegister{CorruptEvery: n}
}

// Edge applies one rising clock edge, occasionally planting a fault.
func (f *FaultyRegister) Edge(sig *Signals) {
	f.inner.Edge(sig)
	if sig.RstN && sig.Enable {
		f.loads++
		if f.CorruptEvery > 0 && f.loads%f.CorruptEvery == 0 {
			f.inner.reg ^= 0x01
			sig.DataOut = f.inner.reg
		}
	}
}
