package bench_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/regtb/bench"
	"github.com/sarchlab/regtb/bench/activity"
	"github.com/sarchlab/regtb/dut"
	"github.com/sarchlab/regtb/report"
	"github.com/sarchlab/regtb/stim"
)

// spyDevice wraps a device and records DataOut after every edge.
type spyDevice struct {
	inner dut.Device
	outs  []uint8
}

func (s *spyDevice) Edge(sig *dut.Signals) {
	s.inner.Edge(sig)
	s.outs = append(s.outs, sig.DataOut)
}

func directedConfig(length int) *bench.RunConfig {
	cfg := bench.DefaultRunConfig()
	cfg.TestMode = bench.TestModeDirected
	cfg.SequenceLength = length
	return cfg
}

var _ = Describe("Environment", func() {
	It("should reject an invalid configuration", func() {
		cfg := bench.DefaultRunConfig()
		cfg.ResetCycles = 0

		_, err := bench.NewEnvironment(cfg)
		Expect(err).To(HaveOccurred())
	})

	It("should pass a full random run against the reference register", func() {
		cfg := bench.DefaultRunConfig()
		cfg.Seed = 3
		cfg.SequenceLength = 50

		env, err := bench.NewEnvironment(cfg)
		Expect(err).NotTo(HaveOccurred())

		summary, err := env.Run()
		Expect(err).NotTo(HaveOccurred())
		Expect(summary.Passed()).To(BeTrue())
		Expect(summary.Checks).To(Equal(uint64(50)))
		Expect(summary.Passes).To(Equal(uint64(50)))
		Expect(summary.StimuliIssued).To(Equal(uint64(50)))
		Expect(summary.FinalState).To(Equal("DONE"))
	})

	It("should observe outputs exactly one cycle behind inputs, holding across disabled cycles", func() {
		spy := &spyDevice{inner: dut.NewRegister()}

		env, err := bench.NewEnvironment(directedConfig(5), bench.WithDevice(spy))
		Expect(err).NotTo(HaveOccurred())

		summary, err := env.Run()
		Expect(err).NotTo(HaveOccurred())
		Expect(summary.Passed()).To(BeTrue())

		// Pattern: en=[1,0,1,1,0], data=[0x11,0x22,0x33,0x44,0x55] after
		// one reset cycle, then two cycles to detect exhaustion and drain.
		Expect(spy.outs).To(Equal([]uint8{
			0x00, 0x11, 0x11, 0x33, 0x44, 0x44, 0x44,
		}))
		Expect(summary.Cycles).To(Equal(uint64(7)))
	})

	It("should hold the reset value when enable is never asserted", func() {
		vectors := make([]stim.Vector, 6)
		for i := range vectors {
			vectors[i] = stim.Vector{Enable: false, Data: 0x11 * (i + 1)}
		}
		gen, err := stim.NewDirected(vectors)
		Expect(err).NotTo(HaveOccurred())

		spy := &spyDevice{inner: dut.NewRegister()}
		cfg := directedConfig(6)
		env, err := bench.NewEnvironment(cfg,
			bench.WithGenerator(gen), bench.WithDevice(spy))
		Expect(err).NotTo(HaveOccurred())

		summary, err := env.Run()
		Expect(err).NotTo(HaveOccurred())
		Expect(summary.Passed()).To(BeTrue())
		Expect(summary.Checks).To(Equal(uint64(6)))

		for _, out := range spy.outs {
			Expect(out).To(Equal(uint8(0)))
		}
	})

	It("should produce identical results when replayed with the same seed", func() {
		cfg := bench.DefaultRunConfig()
		cfg.Seed = 42
		cfg.SequenceLength = 30

		first, err := bench.NewEnvironment(cfg)
		Expect(err).NotTo(HaveOccurred())
		second, err := bench.NewEnvironment(cfg)
		Expect(err).NotTo(HaveOccurred())

		sumA, errA := first.Run()
		sumB, errB := second.Run()

		Expect(errA).NotTo(HaveOccurred())
		Expect(errB).NotTo(HaveOccurred())
		Expect(sumA).To(Equal(sumB))
	})

	It("should finish cleanly with zero checks for an empty sequence", func() {
		cfg := bench.DefaultRunConfig()
		cfg.SequenceLength = 0

		env, err := bench.NewEnvironment(cfg)
		Expect(err).NotTo(HaveOccurred())

		summary, err := env.Run()
		Expect(err).NotTo(HaveOccurred())
		Expect(summary.Checks).To(Equal(uint64(0)))
		Expect(summary.StimuliIssued).To(Equal(uint64(0)))
		Expect(summary.FinalState).To(Equal("DONE"))
	})

	It("should collect every planted fault without aborting", func() {
		vectors := make([]stim.Vector, 10)
		for i := range vectors {
			vectors[i] = stim.Vector{Enable: true, Data: (0x10 + i*7) & 0xFF}
		}
		gen, err := stim.NewDirected(vectors)
		Expect(err).NotTo(HaveOccurred())

		cfg := directedConfig(10)
		env, err := bench.NewEnvironment(cfg,
			bench.WithGenerator(gen),
			bench.WithDevice(dut.NewFaultyRegister(2)))
		Expect(err).NotTo(HaveOccurred())

		summary, err := env.Run()

		Expect(err).NotTo(HaveOccurred())
		Expect(summary.Clean()).To(BeTrue())
		Expect(summary.FinalState).To(Equal("DONE"))
		Expect(summary.Checks).To(Equal(uint64(10)))
		Expect(summary.Mismatches).To(Equal(uint64(5)))
		Expect(summary.Passes).To(Equal(uint64(5)))
		Expect(summary.ExitCode()).To(Equal(report.ExitMismatch))

		for _, f := range summary.Failures {
			Expect(f.Observed).To(Equal(f.Expected ^ 0x01))
		}
	})

	It("should force and verify a zero on a mid-run reset", func() {
		spy := &spyDevice{inner: dut.NewRegister()}
		cfg := directedConfig(5)
		cfg.ResetAt = []uint64{4}

		env, err := bench.NewEnvironment(cfg, bench.WithDevice(spy))
		Expect(err).NotTo(HaveOccurred())

		summary, err := env.Run()
		Expect(err).NotTo(HaveOccurred())
		Expect(summary.Passed()).To(BeTrue())

		// Five stimuli plus one checked reset cycle.
		Expect(summary.Checks).To(Equal(uint64(6)))
		Expect(summary.StimuliIssued).To(Equal(uint64(5)))

		// Cycle 4 is the re-asserted reset edge: output clears to zero.
		Expect(spy.outs).To(Equal([]uint8{
			0x00, 0x11, 0x11, 0x00, 0x33, 0x44, 0x44, 0x44,
		}))
	})

	It("should feed the activity recorder once per cycle", func() {
		rec := activity.NewRecorder()

		env, err := bench.NewEnvironment(directedConfig(5),
			bench.WithActivityRecorder(rec))
		Expect(err).NotTo(HaveOccurred())

		summary, err := env.Run()
		Expect(err).NotTo(HaveOccurred())
		Expect(rec.Cycles()).To(Equal(summary.Cycles))

		artifact := rec.Artifact()
		Expect(artifact.Toggles["rst_n"]).To(BeNumerically(">", 0))
		Expect(artifact.Toggles["enable"]).To(BeNumerically(">", 0))
	})
})
