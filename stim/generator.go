package stim

import (
	"fmt"
	"math/rand"
)

// Generator produces a finite, lazy sequence of stimulus transactions.
// Next returns the next transaction and true, or a zero transaction and
// false once the sequence is exhausted. Generators are not restartable:
// replaying a sequence requires a fresh instance.
type Generator interface {
	Next() (Transaction, bool)
}

// RandomGenerator draws enable and data independently and uniformly from
// their legal domains. The same seed always yields the same sequence.
type RandomGenerator struct {
	rng  *rand.Rand
	left int
}

// NewRandom creates a seeded random generator producing length transactions.
func NewRandom(seed int64, length int) *RandomGenerator {
	return &RandomGenerator{
		rng:  rand.New(rand.NewSource(seed)),
		left: length,
	}
}

// Next returns the next randomized stimulus.
func (g *RandomGenerator) Next() (Transaction, bool) {
	if g.left <= 0 {
		return Transaction{}, false
	}
	g.left--

	tx, err := NewStimulus(g.rng.Intn(2) == 1, g.rng.Intn(DataMax+1))
	if err != nil {
		// Intn keeps the draw inside the legal domain.
		panic(err)
	}
	return tx, true
}

// Vector is one directed stimulus entry. Data is an int so a pattern file
// can carry out-of-domain values that are rejected at construction.
type Vector struct {
	Enable bool `yaml:"enable" json:"enable"`
	Data   int  `yaml:"data" json:"data"`
}

// DirectedGenerator replays a fixed vector list in order.
type DirectedGenerator struct {
	txs []Transaction
	pos int
}

// NewDirected creates a directed generator from the given vectors. Every
// vector is validated eagerly so a bad pattern file fails before the run
// starts.
func NewDirected(vectors []Vector) (*DirectedGenerator, error) {
	txs := make([]Transaction, 0, len(vectors))
	for i, v := range vectors {
		tx, err := NewStimulus(v.Enable, v.Data)
		if err != nil {
			return nil, fmt.Errorf("vector %d: %w", i, err)
		}
		txs = append(txs, tx)
	}
	return &DirectedGenerator{txs: txs}, nil
}

// Next returns the next directed stimulus.
func (g *DirectedGenerator) Next() (Transaction, bool) {
	if g.pos >= len(g.txs) {
		return Transaction{}, false
	}
	tx := g.txs[g.pos]
	g.pos++
	return tx, true
}

// DefaultDirectedVectors returns the canonical directed scenario: enable
// follows the repeating pattern 1,0,1,1,0 and data walks 0x11, 0x22, 0x33,
// wrapping within 8 bits.
func DefaultDirectedVectors(length int) []Vector {
	enables := []bool{true, false, true, true, false}
	vectors := make([]Vector, length)
	for i := range vectors {
		vectors[i] = Vector{
			Enable: enables[i%len(enables)],
			Data:   (0x11 * (i + 1)) & 0xFF,
		}
	}
	return vectors
}
