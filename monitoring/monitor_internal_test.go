package monitoring

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/behave/hook"
	"github.com/sarchlab/behave/runner"
	"github.com/sarchlab/behave/signal"
	"github.com/sarchlab/behave/tree"
)

var _ = Describe("Monitor", func() {
	var (
		m *Monitor
	)

	get := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		m.Router().ServeHTTP(rec, req)

		return rec
	}

	runSuite := func() {
		s := tree.NewSuite("demo")
		_, _ = s.Root().It("passes", hook.Sync(func() error { return nil }))
		_, _ = s.Root().It("fails", hook.Sync(func() error {
			return signal.Fail("expected failure")
		}))

		r := runner.MakeBuilder().Build()
		defer r.Close()
		r.AcceptHook(m)
		r.Run(context.Background(), s)
	}

	BeforeEach(func() {
		m = NewMonitor().WithProfileDuration(10 * time.Millisecond)
	})

	It("should reject reserved port numbers", func() {
		m.WithPortNumber(80)
		Expect(m.portNumber).To(Equal(0))

		m.WithPortNumber(8080)
		Expect(m.portNumber).To(Equal(8080))
	})

	It("should track the progress of a running suite", func() {
		var during []byte
		s := tree.NewSuite("demo")
		_, _ = s.Root().It("fails", hook.Sync(func() error {
			return signal.Fail("expected failure")
		}))
		_, _ = s.Root().It("looks", hook.Sync(func() error {
			during = get("/api/progress").Body.Bytes()
			return nil
		}))

		r := runner.MakeBuilder().Build()
		defer r.Close()
		r.AcceptHook(m)
		r.Run(context.Background(), s)

		var bars []progressRsp
		Expect(json.Unmarshal(during, &bars)).To(Succeed())
		Expect(bars).To(HaveLen(1))
		Expect(bars[0].Name).To(Equal("demo"))
		Expect(bars[0].Total).To(Equal(uint64(2)))
		Expect(bars[0].Finished).To(Equal(uint64(1)))
		Expect(bars[0].InProgress).To(Equal(uint64(1)))
		Expect(bars[0].Failed).To(Equal(uint64(1)))
	})

	It("should drop the progress bar once the suite ends", func() {
		runSuite()

		rec := get("/api/progress")

		Expect(rec.Code).To(Equal(http.StatusOK))
		var bars []progressRsp
		Expect(json.Unmarshal(rec.Body.Bytes(), &bars)).To(Succeed())
		Expect(bars).To(BeEmpty())
		Expect(m.current).To(BeNil())
	})

	It("should remove completed progress bars", func() {
		bar := m.CreateProgressBar("bar", 10)
		bar.IncrementInProgress(3)
		bar.MoveInProgressToFinished(2, false)

		Expect(bar.InProgress).To(Equal(uint64(1)))
		Expect(bar.Finished).To(Equal(uint64(2)))

		m.CompleteProgressBar(bar)

		Expect(m.progressBars).To(BeEmpty())
	})

	It("should list results", func() {
		runSuite()

		rec := get("/api/results")

		var results []resultRsp
		Expect(json.Unmarshal(rec.Body.Bytes(), &results)).To(Succeed())
		Expect(results).To(HaveLen(2))
		Expect(results[0].Name).To(Equal("demo passes"))
		Expect(results[0].Outcome).To(Equal("passed"))
		Expect(results[1].Outcome).To(Equal("failed"))
		Expect(results[1].Reason).To(Equal("expected failure"))
	})

	It("should serialize one result", func() {
		runSuite()

		rec := get("/api/result/2")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).NotTo(BeEmpty())
	})

	It("should answer 404 for unknown results", func() {
		rec := get("/api/result/nope")

		Expect(rec.Code).To(Equal(http.StatusNotFound))
	})

	It("should report resources", func() {
		rec := get("/api/resource")

		var rsp map[string]any
		Expect(json.Unmarshal(rec.Body.Bytes(), &rsp)).To(Succeed())
		Expect(rsp).To(HaveKey("cpu_percent"))
		Expect(rsp).To(HaveKey("memory_size"))
	})

	It("should collect a profile", func() {
		rec := get("/api/profile")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(json.Valid(rec.Body.Bytes())).To(BeTrue())
	})

	It("should serve the page", func() {
		url, err := m.StartServer()
		Expect(err).NotTo(HaveOccurred())
		defer func() {
			Expect(m.StopServer(context.Background())).To(Succeed())
		}()

		rsp, err := http.Get(url + "/")
		Expect(err).NotTo(HaveOccurred())
		defer rsp.Body.Close()

		body, err := io.ReadAll(rsp.Body)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(body)).To(ContainSubstring("behave monitor"))
	})

	It("should not open a browser before the server starts", func() {
		Expect(m.OpenInBrowser()).To(HaveOccurred())
	})
})
