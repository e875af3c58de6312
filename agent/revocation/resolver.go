/*
Package revocation derives a credential's effective status. The
exchange record alone cannot answer "is this credential still good":
that fact lives in the issuer's revocation registry and is reached
through an out-of-band agent query. The resolver centralizes those
queries, memoizes them per credential for the life of a render pass,
and folds every failure into an unknown status. Callers never see an
error from here.
*/
package revocation

import (
	"context"
	"sync"
	"time"

	"github.com/bluele/gcache"
	"github.com/golang/glog"
	"github.com/sudoplatform-labs/sudo-di-agent-console/agent/gateway"
)

// State is the resolved revocation status.
type State int

const (
	// Loading means the registry query is still in flight.
	Loading State = iota
	// Active means not revoked, or not revocable in the first place.
	Active
	// Revoked means the issuer has revoked the credential.
	Revoked
	// Unknown means the registry query failed. Not an error condition,
	// the next render pass asks again.
	Unknown
)

func (s State) String() string {
	return [...]string{"loading", "active", "revoked", "unknown"}[s]
}

// Status is the resolver's answer for one credential.
type Status struct {
	State State
}

const (
	cacheSize = 256
	cacheTTL  = 60 * time.Second
)

// Resolver answers revocation status questions against one agent.
// Concurrent questions about the same credential share a single
// gateway query.
type Resolver struct {
	rev gateway.Revocation

	cache    gcache.Cache
	mu       sync.Mutex
	inflight map[string]chan struct{}
}

func New(rev gateway.Revocation) *Resolver {
	return &Resolver{
		rev:      rev,
		cache:    gcache.New(cacheSize).LRU().Expiration(cacheTTL).Build(),
		inflight: make(map[string]chan struct{}),
	}
}

// Reset drops all memoized answers. Views call it when they reload
// from scratch so a stale verdict never outlives the records it was
// derived from.
func (r *Resolver) Reset() {
	r.cache.Purge()
}

// ResolveExchange answers for an issuer-side exchange record,
// blocking until the answer is in. Records from a non-revocable
// credential definition are active by definition, no query needed.
func (r *Resolver) ResolveExchange(
	ctx context.Context,
	rec *gateway.CredExRecord,
) Status {
	if !rec.Revocable() {
		return Status{State: Active}
	}
	return Status{State: r.resolve(ctx, "ex:"+rec.ID, func(ctx context.Context) (bool, error) {
		return r.rev.IssuerStatus(ctx, rec.ID)
	})}
}

// ResolveOwned answers for a holder-side wallet credential, blocking
// until the answer is in.
func (r *Resolver) ResolveOwned(
	ctx context.Context,
	cred *gateway.OwnedCredential,
) Status {
	if !cred.Revocable() {
		return Status{State: Active}
	}
	return Status{State: r.resolve(ctx, "cred:"+cred.Referent, func(ctx context.Context) (bool, error) {
		return r.rev.HolderStatus(ctx, cred.Referent)
	})}
}

// PeekExchange is the non-blocking form of ResolveExchange: a cached
// answer comes back immediately, otherwise the query starts in the
// background and the caller gets a loading status to render now and a
// real one on its next pass.
func (r *Resolver) PeekExchange(rec *gateway.CredExRecord) Status {
	if !rec.Revocable() {
		return Status{State: Active}
	}
	return r.peek("ex:"+rec.ID, func(ctx context.Context) (bool, error) {
		return r.rev.IssuerStatus(ctx, rec.ID)
	})
}

// PeekOwned is the non-blocking form of ResolveOwned.
func (r *Resolver) PeekOwned(cred *gateway.OwnedCredential) Status {
	if !cred.Revocable() {
		return Status{State: Active}
	}
	ref := cred.Referent
	return r.peek("cred:"+ref, func(ctx context.Context) (bool, error) {
		return r.rev.HolderStatus(ctx, ref)
	})
}

type query func(ctx context.Context) (bool, error)

func (r *Resolver) peek(key string, q query) Status {
	if v, err := r.cache.GetIFPresent(key); err == nil {
		return Status{State: v.(State)}
	}
	go r.resolve(context.Background(), key, q)
	return Status{State: Loading}
}

func (r *Resolver) resolve(ctx context.Context, key string, q query) State {
	if v, err := r.cache.GetIFPresent(key); err == nil {
		return v.(State)
	}

	r.mu.Lock()
	if ch, ok := r.inflight[key]; ok {
		r.mu.Unlock()
		<-ch
		if v, err := r.cache.GetIFPresent(key); err == nil {
			return v.(State)
		}
		return Unknown
	}
	ch := make(chan struct{})
	r.inflight[key] = ch
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		delete(r.inflight, key)
		r.mu.Unlock()
		close(ch)
	}()

	st := Unknown
	revoked, err := q(ctx)
	switch {
	case err != nil:
		glog.V(1).Infoln("revocation lookup failed:", key, err)
	case revoked:
		st = Revoked
	default:
		st = Active
	}
	_ = r.cache.Set(key, st)
	return st
}
