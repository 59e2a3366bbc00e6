package outcome_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/behave/outcome"
	"github.com/sarchlab/behave/signal"
)

var _ = Describe("Classify", func() {
	DescribeTable("signal to outcome",
		func(s *signal.Signal, kind outcome.Kind, failure, unexpected bool) {
			o := outcome.Classify(s)

			Expect(o.Kind).To(Equal(kind))
			Expect(o.IsFailure()).To(Equal(failure))
			Expect(o.IsUnexpected()).To(Equal(unexpected))
		},
		Entry("none", nil, outcome.Passed, false, false),
		Entry("failure", signal.Fail("x"), outcome.Failed, true, false),
		Entry("skip", signal.Skip("x"), outcome.Skipped, false, false),
		Entry("silent stop", signal.StopSilently(),
			outcome.AbortedSilently, false, false),
		Entry("stop with message", signal.Stop("x"),
			outcome.AbortedWithMessage, true, false),
		Entry("fault", signal.Fault(errors.New("x")),
			outcome.Faulted, true, true),
	)

	It("should keep reasons and errors", func() {
		boom := errors.New("boom")

		Expect(outcome.Classify(signal.Skip("later")).Reason).To(Equal("later"))
		Expect(outcome.Classify(signal.Stop("halt")).String()).
			To(Equal("abortedWithMessage (halt)"))
		Expect(outcome.Classify(signal.Fault(boom)).Err).To(MatchError(boom))
	})
})

var _ = Describe("Summary", func() {
	It("should count skips separately from failures", func() {
		s := outcome.Summary{}
		s.Add(outcome.Classify(signal.Skip("a")))
		s.Add(outcome.Classify(signal.Skip("b")))

		Expect(s.ExecutionCount).To(Equal(2))
		Expect(s.SkipCount).To(Equal(2))
		Expect(s.TotalFailureCount()).To(Equal(0))
		Expect(s.HasSucceeded()).To(BeTrue())
	})

	It("should count only stops with a message as failures", func() {
		s := outcome.Summary{}
		s.Add(outcome.Classify(signal.StopSilently()))
		s.Add(outcome.Classify(signal.Stop("some error")))

		Expect(s.ExecutionCount).To(Equal(2))
		Expect(s.FailureCount).To(Equal(1))
		Expect(s.UnexpectedExceptionCount).To(Equal(0))
		Expect(s.TotalFailureCount()).To(Equal(1))
		Expect(s.HasSucceeded()).To(BeFalse())
	})

	It("should count faults as unexpected", func() {
		s := outcome.Summary{}
		s.Add(outcome.Classify(signal.Fault(errors.New("x"))))
		s.Add(outcome.Classify(nil))

		Expect(s.UnexpectedExceptionCount).To(Equal(1))
		Expect(s.FailureCount).To(Equal(0))
		Expect(s.TotalFailureCount()).To(Equal(1))
	})

	It("should count failed teardown hooks next to a passing outcome", func() {
		s := outcome.Summary{}
		s.Add(outcome.Classify(nil),
			signal.Fail("cleanup"), signal.StopSilently())

		Expect(s.TotalFailureCount()).To(Equal(0))
		Expect(s.TeardownFailureCount).To(Equal(1))
		Expect(s.HasSucceeded()).To(BeFalse())
	})
})
