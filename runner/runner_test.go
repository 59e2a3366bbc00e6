package runner_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sarchlab/behave/execution"
	"github.com/sarchlab/behave/hook"
	"github.com/sarchlab/behave/outcome"
	"github.com/sarchlab/behave/runner"
	"github.com/sarchlab/behave/signal"
	"github.com/sarchlab/behave/tracing"
	"github.com/sarchlab/behave/tree"
)

var _ = Describe("Runner", func() {
	var (
		mockCtrl *gomock.Controller
		s        *tree.Suite
		r        *runner.Runner
		trace    []string
	)

	record := func(name string) func() error {
		return func() error {
			trace = append(trace, name)
			return nil
		}
	}

	pass := hook.Sync(func() error { return nil })

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		s = tree.NewSuite("suite")
		r = runner.MakeBuilder().Build()
		trace = nil
	})

	AfterEach(func() {
		r.Close()
		mockCtrl.Finish()
	})

	It("should run examples depth first in declaration order", func() {
		_, _ = s.Root().It("first", hook.Sync(record("first")))
		g, _ := s.Root().Describe("G")
		_, _ = g.It("second", hook.Sync(record("second")))
		_, _ = g.It("third", hook.Sync(record("third")))
		_, _ = s.Root().It("fourth", hook.Sync(record("fourth")))

		report := r.Run(context.Background(), s)

		Expect(trace).To(Equal([]string{"first", "second", "third", "fourth"}))
		Expect(report.Results).To(HaveLen(4))
		Expect(report.Results[2].Metadata.FullName()).
			To(Equal("suite G third"))
		Expect(report.Results[2].Metadata.Index).To(Equal(2))
		Expect(report.Summary.ExecutionCount).To(Equal(4))
		Expect(report.Summary.HasSucceeded()).To(BeTrue())
	})

	It("should freeze the suite", func() {
		r.Run(context.Background(), s)

		_, err := s.Root().Describe("late")

		var cfgErr *tree.ConfigurationError
		Expect(errors.As(err, &cfgErr)).To(BeTrue())
		Expect(cfgErr.Reason).To(Equal(tree.ReasonFrozen))
	})

	It("should count outcomes", func() {
		_, _ = s.Root().It("passes", pass)
		_, _ = s.Root().It("skips", hook.Sync(func() error {
			return signal.Skip("later")
		}))
		_, _ = s.Root().It("fails", hook.Sync(func() error {
			return signal.Fail("nope")
		}))
		_, _ = s.Root().It("faults", hook.Sync(func() error {
			return errors.New("boom")
		}))
		_, _ = s.Root().It("stops silently", hook.Sync(func() error {
			return signal.StopSilently()
		}))
		_, _ = s.Root().It("stops", hook.Sync(func() error {
			return signal.Stop("some error")
		}))

		report := r.Run(context.Background(), s)

		Expect(report.Summary).To(Equal(outcome.Summary{
			ExecutionCount:           6,
			SkipCount:                1,
			FailureCount:             2,
			UnexpectedExceptionCount: 1,
		}))
		Expect(report.Summary.TotalFailureCount()).To(Equal(3))
		Expect(report.Summary.HasSucceeded()).To(BeFalse())
	})

	It("should count teardown failures without changing outcomes", func() {
		_ = s.Root().Register(hook.AfterEach(func() error {
			return errors.New("cleanup")
		}))
		_, _ = s.Root().It("passes", pass)

		report := r.Run(context.Background(), s)

		Expect(report.Results[0].Outcome.Kind).To(Equal(outcome.Passed))
		Expect(report.Summary.TeardownFailureCount).To(Equal(1))
		Expect(report.Summary.HasSucceeded()).To(BeFalse())
	})

	Context("suite hooks", func() {
		It("should run suite hooks around all examples", func() {
			_ = s.BeforeSuite(hook.Sync(record("beforeSuite")))
			_ = s.AfterSuite(hook.Sync(record("afterSuite")))
			_ = s.Root().Register(hook.BeforeEach(record("beforeEach")))
			_, _ = s.Root().It("e1", hook.Sync(record("e1")))
			_, _ = s.Root().It("e2", hook.Sync(record("e2")))

			r.Run(context.Background(), s)

			Expect(trace).To(Equal([]string{
				"beforeSuite",
				"beforeEach", "e1",
				"beforeEach", "e2",
				"afterSuite",
			}))
		})

		It("should not run examples when a before-suite hook raises", func() {
			_ = s.BeforeSuite(hook.Sync(func() error {
				return signal.Skip("no device")
			}))
			_ = s.BeforeSuite(hook.Sync(record("second beforeSuite")))
			_ = s.AfterSuite(hook.Sync(record("afterSuite")))
			_ = s.Root().Register(hook.AfterEach(record("afterEach")))
			_, _ = s.Root().It("e1", hook.Sync(record("e1")))
			_, _ = s.Root().It("e2", hook.Sync(record("e2")))

			report := r.Run(context.Background(), s)

			Expect(trace).To(Equal([]string{"afterSuite"}))
			Expect(report.BeforeSuite.Kind()).To(Equal(signal.KindSkip))
			Expect(report.Results).To(HaveLen(2))
			for _, result := range report.Results {
				Expect(result.Outcome.Kind).To(Equal(outcome.Skipped))
				Expect(result.Outcome.Reason).To(Equal("no device"))
			}
			Expect(report.Summary.SkipCount).To(Equal(2))
		})

		It("should attempt every after-suite hook", func() {
			_ = s.AfterSuite(hook.Sync(func() error {
				panic("first")
			}))
			_ = s.AfterSuite(hook.Async(func(context.Context) error {
				trace = append(trace, "second")
				return signal.Fail("second")
			}))
			_ = s.AfterSuiteMain(hook.Sync(record("third")))

			report := r.Run(context.Background(), s)

			Expect(trace).To(Equal([]string{"second", "third"}))
			Expect(report.AfterSuite).To(HaveLen(2))
			Expect(report.Summary.TeardownFailureCount).To(Equal(2))
		})

		It("should give suite hooks the suite name", func() {
			var got hook.Metadata
			_ = s.BeforeSuite(hook.SyncWithMetadata(func(m hook.Metadata) error {
				got = m
				return nil
			}))

			r.Run(context.Background(), s)

			Expect(got.Name).To(Equal("suite"))
		})
	})

	Context("reporters", func() {
		It("should report every example and then the suite", func() {
			reporter := NewMockReporter(mockCtrl)
			r.AddReporter(reporter)

			_, _ = s.Root().It("e1", pass)
			_, _ = s.Root().It("e2", pass)

			gomock.InOrder(
				reporter.EXPECT().ExampleFinished(
					gomock.Cond(func(res execution.Result) bool {
						return res.Metadata.Name == "e1"
					})),
				reporter.EXPECT().ExampleFinished(
					gomock.Cond(func(res execution.Result) bool {
						return res.Metadata.Name == "e2"
					})),
				reporter.EXPECT().SuiteFinished(
					gomock.Cond(func(rep runner.Report) bool {
						return rep.Summary.ExecutionCount == 2
					})),
			)

			r.Run(context.Background(), s)
		})
	})

	Context("tracing", func() {
		It("should invoke hooks at suite and example boundaries", func() {
			h := NewMockHook(mockCtrl)
			r.AcceptHook(h)

			_, _ = s.Root().It("e", pass)

			at := func(pos *tracing.HookPos) gomock.Matcher {
				return gomock.Cond(func(ctx tracing.HookCtx) bool {
					return ctx.Pos == pos
				})
			}

			gomock.InOrder(
				h.EXPECT().Func(at(tracing.HookPosSuiteStart)),
				h.EXPECT().Func(at(tracing.HookPosExampleStart)),
				h.EXPECT().Func(at(tracing.HookPosExampleEnd)),
				h.EXPECT().Func(at(tracing.HookPosSuiteEnd)),
			)

			r.Run(context.Background(), s)
		})

		It("should let executor hooks follow state changes", func() {
			h := NewMockHook(mockCtrl)
			r.Executor().AcceptHook(h)

			_, _ = s.Root().It("e", pass)

			h.EXPECT().Func(gomock.Any()).Times(6)

			r.Run(context.Background(), s)
		})
	})

	Context("logging", func() {
		It("should log the summary", func() {
			core, logs := observer.New(zapcore.InfoLevel)
			r.Close()
			r = runner.MakeBuilder().WithLogger(zap.New(core)).Build()

			_, _ = s.Root().It("e", pass)

			r.Run(context.Background(), s)

			finished := logs.FilterMessage("suite finished").All()
			Expect(finished).To(HaveLen(1))
			Expect(finished[0].ContextMap()).To(HaveKeyWithValue("executed", int64(1)))
		})
	})
})
