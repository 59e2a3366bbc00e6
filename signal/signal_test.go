package signal_test

import (
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/behave/signal"
)

var _ = Describe("Signal", func() {
	It("should give no signal for a nil error", func() {
		Expect(signal.From(nil)).To(BeNil())
	})

	It("should keep signals returned as errors", func() {
		var err error = signal.Skip("not on this platform")

		s := signal.From(err)

		Expect(s.Kind()).To(Equal(signal.KindSkip))
		Expect(s.Message()).To(Equal("not on this platform"))
	})

	It("should find wrapped signals", func() {
		err := fmt.Errorf("setup: %w", signal.Stop("db unavailable"))

		s := signal.From(err)

		Expect(s.Kind()).To(Equal(signal.KindStopWithMessage))
		Expect(s.Message()).To(Equal("db unavailable"))
	})

	It("should turn other errors into faults", func() {
		boom := errors.New("boom")

		s := signal.From(boom)

		Expect(s.Kind()).To(Equal(signal.KindFault))
		Expect(s.Cause()).To(MatchError(boom))
		Expect(errors.Is(s, boom)).To(BeTrue())
	})

	It("should convert panics", func() {
		Expect(signal.FromPanic(signal.StopSilently()).Kind()).
			To(Equal(signal.KindStopSilent))
		Expect(signal.FromPanic("oops").Kind()).To(Equal(signal.KindFault))
		Expect(signal.FromPanic("oops").Message()).To(ContainSubstring("oops"))
		Expect(signal.FromPanic(errors.New("x")).Kind()).
			To(Equal(signal.KindFault))
		Expect(signal.FromPanic(fmt.Errorf("w: %w", signal.Fail("f"))).Kind()).
			To(Equal(signal.KindFailure))
	})

	It("should format the error message", func() {
		Expect(signal.Failf("expected %d", 3).Error()).
			To(Equal("failure: expected 3"))
		Expect(signal.StopSilently().Error()).To(Equal("stopSilent"))
	})

	It("should raise failures from the gomega fail handler", func() {
		defer func() {
			s := signal.FromPanic(recover())
			Expect(s.Kind()).To(Equal(signal.KindFailure))
			Expect(s.Message()).To(Equal("Expected 1 to equal 2"))
		}()

		signal.FailHandler("Expected 1 to equal 2")
	})

	It("should surface gomega assertion failures as failure signals", func() {
		g := NewGomega(signal.FailHandler)

		defer func() {
			s := signal.FromPanic(recover())
			Expect(s.Kind()).To(Equal(signal.KindFailure))
			Expect(s.Message()).To(ContainSubstring("to equal"))
		}()

		g.Expect(1).To(Equal(2))
	})
})
