package services_test

import (
	"context"
	"errors"
	"fmt"
	"net"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/assr-bot/assr/internal/config"
	"github.com/assr-bot/assr/internal/incentive"
	"github.com/assr-bot/assr/internal/incentive/incentivetest"
	"github.com/assr-bot/assr/internal/services"
	"github.com/assr-bot/assr/internal/store"
)

type entry struct {
	level string
	msg   string
}

// recordingReporter keeps every message for assertions
type recordingReporter struct {
	mu      sync.Mutex
	entries []entry
}

func (r *recordingReporter) add(level, format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry{level: level, msg: fmt.Sprintf(format, args...)})
}

func (r *recordingReporter) Info(f string, a ...interface{})    { r.add("info", f, a...) }
func (r *recordingReporter) Success(f string, a ...interface{}) { r.add("success", f, a...) }
func (r *recordingReporter) Warn(f string, a ...interface{})    { r.add("warn", f, a...) }
func (r *recordingReporter) Failure(f string, a ...interface{}) { r.add("failure", f, a...) }

func (r *recordingReporter) messages(level string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.entries {
		if e.level == level {
			out = append(out, e.msg)
		}
	}
	return out
}

func (r *recordingReporter) containing(level, substr string) []string {
	var out []string
	for _, m := range r.messages(level) {
		if strings.Contains(m, substr) {
			out = append(out, m)
		}
	}
	return out
}

// fakeClock never blocks; it advances its own time by every slept duration
type fakeClock struct {
	mu      sync.Mutex
	now     time.Time
	slept   []time.Duration
	onSleep func(ctx context.Context, d time.Duration) error
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	c.mu.Lock()
	c.slept = append(c.slept, d)
	c.now = c.now.Add(d)
	hook := c.onSleep
	c.mu.Unlock()

	if hook != nil {
		if err := hook(ctx, d); err != nil {
			return err
		}
	}
	return ctx.Err()
}

func (c *fakeClock) count(d time.Duration) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, s := range c.slept {
		if s == d {
			n++
		}
	}
	return n
}

// faultyAPI fails selected login-challenge calls with a transport error
type faultyAPI struct {
	services.IncentiveAPI
	mu             sync.Mutex
	failChallenge  map[int]bool // 1-based call numbers
	challengeCalls int
}

func (f *faultyAPI) GetLoginMessage(ctx context.Context) (string, error) {
	f.mu.Lock()
	f.challengeCalls++
	fail := f.failChallenge[f.challengeCalls]
	f.mu.Unlock()
	if fail {
		return "", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection reset by peer")}
	}
	return f.IncentiveAPI.GetLoginMessage(ctx)
}

type fixture struct {
	srv      *incentivetest.Server
	api      services.IncentiveAPI
	client   *incentive.Client
	bearers  *store.FileBearerStore
	reporter *recordingReporter
	clock    *fakeClock
	auth     *services.Authenticator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	srv := incentivetest.NewServer()
	t.Cleanup(srv.Close)

	cfg := &config.Config{Incentive: config.IncentiveConfig{BaseURL: srv.URL, Timeout: 5 * time.Second}}
	client := incentive.NewClient(cfg)

	f := &fixture{
		srv:      srv,
		api:      client,
		client:   client,
		bearers:  store.NewFileBearerStore(filepath.Join(t.TempDir(), "bearers.json")),
		reporter: &recordingReporter{},
		clock:    newFakeClock(),
	}
	f.auth = services.NewAuthenticator(f.api, f.bearers, f.reporter, f.clock, time.Second)
	return f
}

// withAPI rebuilds the authenticator on top of a wrapped API
func (f *fixture) withAPI(api services.IncentiveAPI) {
	f.api = api
	f.auth = services.NewAuthenticator(api, f.bearers, f.reporter, f.clock, time.Second)
}
