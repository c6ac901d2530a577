package bench_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/regtb/bench"
	"github.com/sarchlab/regtb/stim"
)

var _ = Describe("Scoreboard", func() {
	var sb *bench.Scoreboard

	BeforeEach(func() {
		sb = bench.NewScoreboard()
	})

	It("should pass when expected and observed data match", func() {
		sb.Expect(stim.NewObservation(0x42, 3))

		err := sb.Check(stim.NewObservation(0x42, 3))

		Expect(err).NotTo(HaveOccurred())
		Expect(sb.Checks()).To(Equal(uint64(1)))
		Expect(sb.Passes()).To(Equal(uint64(1)))
		Expect(sb.Failures()).To(BeEmpty())
	})

	It("should collect mismatches without failing the run", func() {
		sb.Expect(stim.NewObservation(0x10, 2))
		sb.Expect(stim.NewObservation(0x20, 3))

		Expect(sb.Check(stim.NewObservation(0x11, 2))).To(Succeed())
		Expect(sb.Check(stim.NewObservation(0x20, 3))).To(Succeed())

		Expect(sb.Checks()).To(Equal(uint64(2)))
		Expect(sb.Passes()).To(Equal(uint64(1)))
		Expect(sb.Failures()).To(HaveLen(1))
		Expect(sb.Failures()[0].Cycle).To(Equal(uint64(2)))
		Expect(sb.Failures()[0].Expected).To(Equal(uint8(0x10)))
		Expect(sb.Failures()[0].Observed).To(Equal(uint8(0x11)))
	})

	It("should compare in FIFO order", func() {
		sb.Expect(stim.NewObservation(0x01, 2))
		sb.Expect(stim.NewObservation(0x02, 3))

		Expect(sb.Check(stim.NewObservation(0x01, 2))).To(Succeed())
		Expect(sb.Check(stim.NewObservation(0x02, 3))).To(Succeed())
		Expect(sb.Passes()).To(Equal(uint64(2)))
	})

	It("should report underflow as a distinct fatal error", func() {
		err := sb.Check(stim.NewObservation(0x00, 9))

		Expect(err).To(HaveOccurred())
		Expect(errors.Is(err, bench.ErrExpectationUnderflow)).To(BeTrue())
		Expect(sb.Checks()).To(Equal(uint64(0)))
	})

	It("should track queue depth", func() {
		Expect(sb.Depth()).To(Equal(0))
		sb.Expect(stim.NewObservation(0, 1))
		Expect(sb.Depth()).To(Equal(1))
		Expect(sb.Check(stim.NewObservation(0, 1))).To(Succeed())
		Expect(sb.Depth()).To(Equal(0))
	})
})

var _ = Describe("RefModel", func() {
	It("should implement reset, load, and hold", func() {
		Expect(bench.NextState(0x55, true, true, 0xFF)).To(Equal(uint8(0)))
		Expect(bench.NextState(0x55, false, true, 0xFF)).To(Equal(uint8(0xFF)))
		Expect(bench.NextState(0x55, false, false, 0xFF)).To(Equal(uint8(0x55)))
	})

	It("should carry state across steps", func() {
		ref := bench.NewRefModel()

		Expect(ref.Step(true, false, 0)).To(Equal(uint8(0)))
		Expect(ref.Step(false, true, 0x11)).To(Equal(uint8(0x11)))
		Expect(ref.Step(false, false, 0x22)).To(Equal(uint8(0x11)))
		Expect(ref.Step(false, true, 0x33)).To(Equal(uint8(0x33)))
		Expect(ref.State()).To(Equal(uint8(0x33)))
	})
})
