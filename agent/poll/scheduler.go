/*
Package poll keeps the console's record caches eventually consistent
with the agent. The agent offers no push notifications to this layer,
so each logical view counts down a fixed number of ticks and re-fetches
its record set when the countdown hits zero. A user action that changed
state at the agent gets its view refreshed immediately, out of band of
the countdown. The whole thing is cancelable so a torn-down view never
leaves a timer running.

The tick source is gocron in production and the test's own hand on
Tick otherwise; the countdown logic never knows the difference, which
is also what will let a push transport replace the ticker one day
without touching the state machines.
*/
package poll

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/golang/glog"
	"github.com/sudoplatform-labs/sudo-di-agent-console/agent/pltype"
)

const (
	// DefaultInterval is the tick period.
	DefaultInterval = 2 * time.Second
	// DefaultTicks is the countdown length: 30 ticks at 2 s is a
	// fetch roughly every minute per view.
	DefaultTicks = 30
)

// FetchFunc re-fetches one view's record set from the agent. A failed
// fetch leaves the cache as it was; the countdown keeps its normal
// cadence and tries again, there is no backoff.
type FetchFunc func(ctx context.Context) error

// View is one polled record set and its countdown.
type View struct {
	name  pltype.View
	fetch FetchFunc
	ticks int

	mu       sync.Mutex
	left     int
	inFlight bool
	lastErr  error
}

// Name returns the view's name.
func (v *View) Name() pltype.View { return v.name }

// Err returns the last fetch error, nil when the view is current.
// A non-nil transport error is the view's "agent unavailable"
// condition.
func (v *View) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastErr
}

// tick advances the countdown and fires the fetch at zero. A fetch
// already in flight is never duplicated: the countdown parks at one
// and the next tick tries again.
func (v *View) tick(ctx context.Context) {
	v.mu.Lock()
	v.left--
	if v.left > 0 {
		v.mu.Unlock()
		return
	}
	if v.inFlight {
		v.left = 1
		v.mu.Unlock()
		return
	}
	v.inFlight = true
	v.left = v.ticks
	v.mu.Unlock()

	go v.run(ctx)
}

func (v *View) run(ctx context.Context) {
	err := v.fetch(ctx)

	v.mu.Lock()
	v.inFlight = false
	v.lastErr = err
	v.mu.Unlock()

	if err != nil && ctx.Err() == nil {
		glog.V(1).Infoln("fetch failed:", v.name, err)
	}
}

// Refresh fetches now, synchronously, and restarts the countdown. The
// command layer calls this right after a transition resolves so the
// next render reflects the action without waiting out the countdown.
func (v *View) Refresh(ctx context.Context) error {
	v.mu.Lock()
	v.left = v.ticks
	v.inFlight = true
	v.mu.Unlock()

	err := v.fetch(ctx)

	v.mu.Lock()
	v.inFlight = false
	v.lastErr = err
	v.mu.Unlock()
	return err
}

// Scheduler owns the shared ticker and the registered views.
type Scheduler struct {
	interval time.Duration
	cron     *gocron.Scheduler

	ctx    context.Context
	cancel context.CancelFunc

	mu    sync.Mutex
	views []*View
}

// NewScheduler builds a stopped scheduler ticking at interval once
// started.
func NewScheduler(interval time.Duration) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		interval: interval,
		cron:     gocron.NewScheduler(time.UTC),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Add registers a view with its own countdown length. The first fetch
// happens after a full countdown; callers wanting data right away do
// an initial Refresh themselves.
func (s *Scheduler) Add(
	name pltype.View,
	ticks int,
	fetch FetchFunc,
) *View {
	if ticks <= 0 {
		ticks = DefaultTicks
	}
	v := &View{name: name, fetch: fetch, ticks: ticks, left: ticks}
	s.mu.Lock()
	s.views = append(s.views, v)
	s.mu.Unlock()
	return v
}

// Start begins ticking in the background.
func (s *Scheduler) Start() error {
	_, err := s.cron.Every(s.interval).Do(s.Tick)
	if err != nil {
		return err
	}
	s.cron.StartAsync()
	return nil
}

// Tick advances every view by one. Exported so tests can be their own
// clock.
func (s *Scheduler) Tick() {
	if s.ctx.Err() != nil {
		return
	}
	s.mu.Lock()
	views := make([]*View, len(s.views))
	copy(views, s.views)
	s.mu.Unlock()

	for _, v := range views {
		v.tick(s.ctx)
	}
}

// Stop tears the scheduler down: the ticker stops and the context
// handed to in-flight fetches is canceled so they abort where the
// transport supports it. No fetch fires after Stop returns.
func (s *Scheduler) Stop() {
	s.cancel()
	s.cron.Stop()
	glog.V(2).Infoln("scheduler stopped")
}
