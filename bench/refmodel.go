package bench

// NextState is the pure transfer function the device is expected to
// implement: reset clears the register, an enabled edge loads dataIn, and
// anything else holds the prior value.
func NextState(prev uint8, reset, enable bool, dataIn uint8) uint8 {
	switch {
	case reset:
		return 0
	case enable:
		return dataIn
	default:
		return prev
	}
}

// RefModel predicts the device output independently of the device itself.
// It is stepped once per driven cycle with the same stimulus the driver
// applies, one cycle ahead of when the monitor observes the corresponding
// output. That one-cycle lead is the registered-latency contract the whole
// environment is built around.
type RefModel struct {
	state uint8
}

// NewRefModel creates a reference model in its reset state.
func NewRefModel() *RefModel {
	return &RefModel{}
}

// Step advances the model by one cycle and returns the value the device is
// expected to output on the following cycle.
func (r *RefModel) Step(reset, enable bool, dataIn uint8) uint8 {
	r.state = NextState(r.state, reset, enable, dataIn)
	return r.state
}

// State returns the current predicted register value.
func (r *RefModel) State() uint8 {
	return r.state
}
