// Package monitoring serves the progress and the results of a running suite
// over HTTP.
package monitoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"
	"go.uber.org/zap"

	"github.com/sarchlab/behave/execution"
	"github.com/sarchlab/behave/id"
	"github.com/sarchlab/behave/monitoring/web"
	"github.com/sarchlab/behave/tracing"
	"github.com/sarchlab/behave/tree"
)

// Monitor is a tracing hook that follows a run and serves what it saw to a
// web page. Attach it to a runner.
type Monitor struct {
	portNumber      int
	profileDuration time.Duration
	logger          *zap.Logger
	ids             id.IDGenerator

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar
	current          *ProgressBar

	resultsLock sync.Mutex
	results     []execution.Result

	server   *http.Server
	listener net.Listener
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{
		profileDuration: time.Second,
		logger:          zap.NewNop(),
		ids:             id.NewXIDGenerator(),
	}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber != 0 && portNumber < 1000 {
		m.logger.Warn("port number not allowed, using a random port",
			zap.Int("port", portNumber))
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithLogger sets the logger.
func (m *Monitor) WithLogger(logger *zap.Logger) *Monitor {
	m.logger = logger
	return m
}

// WithProfileDuration sets how long /api/profile samples the CPU.
func (m *Monitor) WithProfileDuration(d time.Duration) *Monitor {
	m.profileDuration = d
	return m
}

// Func follows the suite and example boundaries of a runner. A suite shows a
// progress bar while it runs, and the bar goes away when the suite ends.
func (m *Monitor) Func(ctx tracing.HookCtx) {
	switch ctx.Pos {
	case tracing.HookPosSuiteStart:
		s, ok := ctx.Item.(*tree.Suite)
		if !ok {
			return
		}

		m.current = m.CreateProgressBar(s.Name(), uint64(len(s.Examples())))
	case tracing.HookPosExampleStart:
		if m.current != nil {
			m.current.IncrementInProgress(1)
		}
	case tracing.HookPosExampleEnd:
		result, ok := ctx.Item.(execution.Result)
		if !ok {
			return
		}

		m.addResult(result)

		if m.current != nil {
			m.current.MoveInProgressToFinished(1, result.Outcome.IsFailure())
		}
	case tracing.HookPosSuiteEnd:
		if m.current != nil {
			m.CompleteProgressBar(m.current)
			m.current = nil
		}
	}
}

func (m *Monitor) addResult(result execution.Result) {
	m.resultsLock.Lock()
	defer m.resultsLock.Unlock()

	m.results = append(m.results, result)
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := &ProgressBar{
		ID:        m.ids.Generate(),
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
	}

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar to be shown on the webpage.
func (m *Monitor) CompleteProgressBar(pb *ProgressBar) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	newBars := make([]*ProgressBar, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		if b != pb {
			newBars = append(newBars, b)
		}
	}

	m.progressBars = newBars
}

// Router returns the routes of the monitor.
func (m *Monitor) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/results", m.listResults)
	r.HandleFunc("/api/result/{id}", m.resultDetails)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	r.PathPrefix("/").Handler(http.FileServer(web.GetAssets()))

	return r
}

// StartServer starts the monitor as a web server and returns its URL.
func (m *Monitor) StartServer() (string, error) {
	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	if err != nil {
		return "", err
	}

	m.listener = listener
	m.server = &http.Server{
		Handler:           m.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	url := m.URL()
	fmt.Fprintf(os.Stderr, "Monitoring run with %s\n", url)

	go func() {
		err := m.server.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			m.logger.Error("monitor stopped", zap.Error(err))
		}
	}()

	return url, nil
}

// URL returns the address the server listens on. It is empty before the
// server starts.
func (m *Monitor) URL() string {
	if m.listener == nil {
		return ""
	}

	return fmt.Sprintf("http://localhost:%d",
		m.listener.Addr().(*net.TCPAddr).Port)
}

// OpenInBrowser opens the monitor page in the default browser.
func (m *Monitor) OpenInBrowser() error {
	if m.listener == nil {
		return errors.New("monitor server not started")
	}

	return browser.OpenURL(m.URL())
}

// StopServer shuts the web server down.
func (m *Monitor) StopServer(ctx context.Context) error {
	if m.server == nil {
		return nil
	}

	return m.server.Shutdown(ctx)
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	rsp := make([]progressRsp, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		rsp = append(rsp, b.snapshot())
	}
	m.progressBarsLock.Unlock()

	writeJSON(w, rsp)
}

type resultRsp struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Outcome          string  `json:"outcome"`
	Reason           string  `json:"reason"`
	TeardownFailures int     `json:"teardown_failures"`
	DurationSec      float64 `json:"duration_sec"`
}

func (m *Monitor) listResults(w http.ResponseWriter, _ *http.Request) {
	m.resultsLock.Lock()
	rsp := make([]resultRsp, 0, len(m.results))
	for _, r := range m.results {
		rsp = append(rsp, resultRsp{
			ID:               r.Metadata.ID,
			Name:             r.Metadata.FullName(),
			Outcome:          r.Outcome.Kind.String(),
			Reason:           r.Outcome.Reason,
			TeardownFailures: len(r.Teardown),
			DurationSec:      r.Duration.Seconds(),
		})
	}
	m.resultsLock.Unlock()

	writeJSON(w, rsp)
}

func (m *Monitor) resultDetails(w http.ResponseWriter, r *http.Request) {
	exampleID := mux.Vars(r)["id"]

	result, found := m.findResult(exampleID)
	if !found {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("Result not found"))
		dieOnErr(err)

		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(result)
	serializer.SetMaxDepth(2)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

func (m *Monitor) findResult(exampleID string) (execution.Result, bool) {
	m.resultsLock.Lock()
	defer m.resultsLock.Unlock()

	for _, r := range m.results {
		if r.Metadata.ID == exampleID {
			return r, true
		}
	}

	return execution.Result{}, false
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	time.Sleep(m.profileDuration)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v any) {
	bytes, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
