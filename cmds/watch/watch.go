// Package watch implements the console's follow mode: the refresh
// scheduler polls the chosen views and every observed change is
// printed as it lands in the cache. This is where the polling loop,
// the repository, the correlator and the revocation resolver meet.
package watch

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"sync"

	"github.com/lainio/err2"
	"github.com/sudoplatform-labs/sudo-di-agent-console/agent/gateway"
	"github.com/sudoplatform-labs/sudo-di-agent-console/agent/pltype"
	"github.com/sudoplatform-labs/sudo-di-agent-console/agent/poll"
	"github.com/sudoplatform-labs/sudo-di-agent-console/agent/repo"
	"github.com/sudoplatform-labs/sudo-di-agent-console/agent/revocation"
	"github.com/sudoplatform-labs/sudo-di-agent-console/agent/utils"
	"github.com/sudoplatform-labs/sudo-di-agent-console/cmds"
)

var allViews = []pltype.View{
	pltype.ViewConnections,
	pltype.ViewCredActive,
	pltype.ViewCredIssued,
	pltype.ViewProofActive,
	pltype.ViewProofCompleted,
}

// Cmd runs follow mode until interrupted.
type Cmd struct {
	cmds.Cmd
	Views []string
}

func (c Cmd) Validate() error {
	if err := c.Cmd.Validate(); err != nil {
		return err
	}
	for _, name := range c.Views {
		if !knownView(name) {
			return fmt.Errorf("%w: unknown view %q", cmds.ErrInvalid, name)
		}
	}
	return nil
}

func knownView(name string) bool {
	for _, v := range allViews {
		if string(v) == name {
			return true
		}
	}
	return false
}

func (c Cmd) selected() []pltype.View {
	if len(c.Views) == 0 {
		return allViews
	}
	out := make([]pltype.View, 0, len(c.Views))
	for _, name := range c.Views {
		out = append(out, pltype.View(name))
	}
	return out
}

func (c Cmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return nil, c.Run(ctx, w)
}

// Run follows the selected views until ctx is done. Split from Exec
// so callers owning their own lifetime, like tests, can use it.
func (c Cmd) Run(ctx context.Context, w io.Writer) error {
	gw := c.Gateway()
	f := newFollower(gw, w)

	sch := poll.NewScheduler(utils.Settings.PollInterval())
	ticks := utils.Settings.PollTicks()
	views := make([]*poll.View, 0, len(c.selected()))
	for _, name := range c.selected() {
		v := sch.Add(name, ticks, f.fetcher(name))
		views = append(views, v)
	}

	// first paint before the countdowns start
	for _, v := range views {
		if err := v.Refresh(ctx); err != nil {
			cmds.Fprintf(w, "! %s: agent unavailable\n", v.Name())
		}
	}

	if err := sch.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	sch.Stop()
	return nil
}

// follower renders cache changes as diff lines: one prefix character,
// the view, the record and its state.
type follower struct {
	gw       gateway.Gateway
	store    *repo.Store
	resolver *revocation.Resolver

	mu   sync.Mutex
	w    io.Writer
	seen map[pltype.View]map[string]string
}

func newFollower(gw gateway.Gateway, w io.Writer) *follower {
	return &follower{
		gw:       gw,
		store:    repo.NewStore(),
		resolver: revocation.New(gw.Revocation()),
		w:        w,
		seen:     make(map[pltype.View]map[string]string),
	}
}

func (f *follower) fetcher(name pltype.View) poll.FetchFunc {
	switch name {
	case pltype.ViewConnections:
		return f.fetchConnections
	case pltype.ViewCredActive:
		return f.fetchCreds(name, func(r gateway.CredExRecord) bool {
			return r.State.Active()
		})
	case pltype.ViewCredIssued:
		return f.fetchCreds(name, func(r gateway.CredExRecord) bool {
			return r.State.Completed()
		})
	case pltype.ViewProofActive:
		return f.fetchProofs(name, func(r gateway.ProofExRecord) bool {
			return r.State.Active()
		})
	case pltype.ViewProofCompleted:
		return f.fetchProofs(name, func(r gateway.ProofExRecord) bool {
			return r.State.Completed()
		})
	}
	return func(context.Context) error { return nil }
}

func (f *follower) fetchConnections(ctx context.Context) error {
	recs, err := f.gw.Connections().List(ctx)
	if err != nil {
		return err
	}
	f.store.SetConnections(recs)

	lines := make(map[string]string, len(recs))
	for _, r := range recs {
		lines[r.ID] = fmt.Sprintf("%s\t%s\t%s", r.Alias, r.State, r.TheirDID)
	}
	f.render(pltype.ViewConnections, lines)
	return nil
}

func (f *follower) fetchCreds(
	name pltype.View,
	keep func(gateway.CredExRecord) bool,
) poll.FetchFunc {
	return func(ctx context.Context) error {
		recs, err := f.gw.Credentials().ListExchanges(
			ctx, gateway.ExchangeFilter{})
		if err != nil {
			return err
		}
		f.store.SetCredExchanges(recs)
		if name == pltype.ViewCredIssued {
			// fresh render pass, stale verdicts must not survive it
			f.resolver.Reset()
		}

		lines := make(map[string]string, len(recs))
		for _, r := range recs {
			if !keep(r) {
				continue
			}
			alias := "-"
			if conn := repo.Correlate(f.store, r.ConnectionID); conn != nil {
				alias = conn.Alias
			}
			line := fmt.Sprintf("%s\t%s\t%s", r.Role, r.State, alias)
			if r.State.Completed() {
				rec := r
				line += "\t" + f.resolver.PeekExchange(&rec).State.String()
			}
			lines[r.ID] = line
		}
		f.render(name, lines)
		return nil
	}
}

func (f *follower) fetchProofs(
	name pltype.View,
	keep func(gateway.ProofExRecord) bool,
) poll.FetchFunc {
	return func(ctx context.Context) error {
		recs, err := f.gw.Proofs().ListExchanges(ctx, gateway.ExchangeFilter{})
		if err != nil {
			return err
		}
		f.store.SetProofExchanges(recs)

		lines := make(map[string]string, len(recs))
		for _, r := range recs {
			if !keep(r) {
				continue
			}
			alias := "-"
			if conn := repo.Correlate(f.store, r.ConnectionID); conn != nil {
				alias = conn.Alias
			}
			lines[r.ID] = fmt.Sprintf("%s\t%s\t%s", r.Role, r.State, alias)
		}
		f.render(name, lines)
		return nil
	}
}

// render diffs the new snapshot against the last one and prints what
// changed. A record that vanished from its listing is reported as
// removed; for exchanges that is the terminal abort signal.
func (f *follower) render(name pltype.View, lines map[string]string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	old := f.seen[name]
	ids := make([]string, 0, len(lines))
	for id := range lines {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		prev, ok := old[id]
		switch {
		case !ok:
			cmds.Fprintf(f.w, "+ %s\t%s\t%s\n", name, id, lines[id])
		case prev != lines[id]:
			cmds.Fprintf(f.w, "~ %s\t%s\t%s\n", name, id, lines[id])
		}
	}
	removed := make([]string, 0)
	for id := range old {
		if _, ok := lines[id]; !ok {
			removed = append(removed, id)
		}
	}
	sort.Strings(removed)
	for _, id := range removed {
		cmds.Fprintf(f.w, "- %s\t%s\n", name, id)
	}
	f.seen[name] = lines
}
