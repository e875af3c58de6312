package revocation

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sudoplatform-labs/sudo-di-agent-console/agent/gateway"
	"github.com/sudoplatform-labs/sudo-di-agent-console/agent/gateway/fake"
)

func TestNonRevocableIsActiveWithoutQuery(t *testing.T) {
	a := fake.New()
	r := New(a.Revocation())

	rec := gateway.CredExRecord{ID: "ex-1"}
	assert.Equal(t, Active, r.ResolveExchange(context.Background(), &rec).State)
	assert.Equal(t, Active, r.PeekExchange(&rec).State)

	cred := gateway.OwnedCredential{Referent: "cred-1"}
	assert.Equal(t, Active, r.ResolveOwned(context.Background(), &cred).State)

	assert.Equal(t, 0, a.TotalCalls())
}

func TestResolveExchange(t *testing.T) {
	a := fake.New()
	a.RevokedAt["ex-revoked"] = 1700000000
	r := New(a.Revocation())
	ctx := context.Background()

	revoked := gateway.CredExRecord{ID: "ex-revoked", RevRegID: "rr-1"}
	assert.Equal(t, Revoked, r.ResolveExchange(ctx, &revoked).State)

	active := gateway.CredExRecord{ID: "ex-active", RevRegID: "rr-1"}
	assert.Equal(t, Active, r.ResolveExchange(ctx, &active).State)
}

func TestMemoization(t *testing.T) {
	a := fake.New()
	r := New(a.Revocation())
	ctx := context.Background()

	cred := gateway.OwnedCredential{Referent: "cred-1", RevRegID: "rr-1"}
	for i := 0; i < 5; i++ {
		r.ResolveOwned(ctx, &cred)
	}
	assert.Equal(t, 1, a.Calls("revocation.holder-status"))

	// revocation happens, but the memo answers until reset
	a.RevokedAt["cred-1"] = 1700000000
	assert.Equal(t, Active, r.ResolveOwned(ctx, &cred).State)

	r.Reset()
	assert.Equal(t, Revoked, r.ResolveOwned(ctx, &cred).State)
	assert.Equal(t, 2, a.Calls("revocation.holder-status"))
}

func TestFailureIsUnknownNotError(t *testing.T) {
	a := fake.New()
	a.Fail = errors.New("agent down")
	r := New(a.Revocation())

	rec := gateway.CredExRecord{ID: "ex-1", RevRegID: "rr-1"}
	assert.Equal(t, Unknown, r.ResolveExchange(context.Background(), &rec).State)
}

func TestConcurrentResolveSharesQuery(t *testing.T) {
	a := fake.New()
	r := New(a.Revocation())

	rec := gateway.CredExRecord{ID: "ex-1", RevRegID: "rr-1"}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, Active, r.ResolveExchange(context.Background(), &rec).State)
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, a.Calls("revocation.issuer-status"), 2)
}

func TestPeekLoadsInBackground(t *testing.T) {
	a := fake.New()
	r := New(a.Revocation())

	rec := gateway.CredExRecord{ID: "ex-1", RevRegID: "rr-1"}
	first := r.PeekExchange(&rec)
	if first.State == Loading {
		// the background query lands before the blocking form returns
		assert.Equal(t, Active,
			r.ResolveExchange(context.Background(), &rec).State)
	}
	assert.Equal(t, Active, r.PeekExchange(&rec).State)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "revoked", Revoked.String())
	assert.Equal(t, "unknown", Unknown.String())
}
