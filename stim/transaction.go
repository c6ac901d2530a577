// Package stim provides the transaction value object and the stimulus
// sequence generators for the register testbench.
package stim

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	// DataMin is the smallest legal transaction payload.
	DataMin = 0
	// DataMax is the largest legal transaction payload.
	DataMax = 255
)

// Transaction is one unit of stimulus or observation. It is immutable once
// created: the generator and the monitor construct transactions, the driver
// and the scoreboard consume them.
type Transaction struct {
	// ID identifies the transaction in logs. It takes no part in equality
	// checks, so seeded runs stay reproducible.
	ID uuid.UUID
	// Enable is the enable flag driven with the payload. Always false on
	// observations.
	Enable bool
	// Data is the 8-bit payload.
	Data uint8
	// Cycle is the clock cycle the transaction belongs to: the cycle a
	// stimulus is driven, or the cycle an observed output is valid.
	Cycle uint64
}

// NewStimulus creates a stimulus transaction. The payload is taken as an int
// so out-of-domain values from pattern files or flags are rejected here and
// never enter the pipeline.
func NewStimulus(enable bool, data int) (Transaction, error) {
	if data < DataMin || data > DataMax {
		return Transaction{}, fmt.Errorf(
			"stimulus data %d out of range [%d,%d]", data, DataMin, DataMax)
	}

	return Transaction{
		ID:     uuid.New(),
		Enable: enable,
		Data:   uint8(data),
	}, nil
}

// NewObservation creates an observed transaction for the given cycle.
func NewObservation(data uint8, cycle uint64) Transaction {
	return Transaction{
		ID:    uuid.New(),
		Data:  data,
		Cycle: cycle,
	}
}

// WithCycle returns a copy of the transaction stamped with a cycle index.
func (t Transaction) WithCycle(cycle uint64) Transaction {
	t.Cycle = cycle
	return t
}

// String formats the transaction for logs.
func (t Transaction) String() string {
	return fmt.Sprintf("tx{en=%t data=0x%02X cycle=%d}", t.Enable, t.Data, t.Cycle)
}
