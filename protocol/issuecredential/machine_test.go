package issuecredential

import (
	"context"
	"testing"

	gomock "github.com/golang/mock/gomock"
	"github.com/lainio/err2/assert"
	"github.com/sudoplatform-labs/sudo-di-agent-console/agent/gateway"
	"github.com/sudoplatform-labs/sudo-di-agent-console/agent/gateway/fake"
	"github.com/sudoplatform-labs/sudo-di-agent-console/agent/pltype"
	"github.com/sudoplatform-labs/sudo-di-agent-console/agent/repo"
	"github.com/sudoplatform-labs/sudo-di-agent-console/protocol"
)

// harness wires a machine to a fake agent with one seeded exchange.
func harness(
	role pltype.Role,
	state pltype.CredState,
	revRegID string,
) (*Machine, *fake.Agent, string) {
	a := fake.New()
	rec := gateway.CredExRecord{
		ID:       "ex-1",
		ThreadID: "thread-1",
		Role:     role,
		State:    state,
		RevRegID: revRegID,
	}
	a.Creds[rec.ID] = rec
	store := repo.NewStore()
	store.SetCredExchanges([]gateway.CredExRecord{rec})
	return New(a.Credentials(), a.Revocation(), store), a, rec.ID
}

// sync refreshes the cache from the fake after the agent moved the
// record, the same way a poll tick would.
func sync(m *Machine, a *fake.Agent) {
	recs := make([]gateway.CredExRecord, 0, len(a.Creds))
	for _, r := range a.Creds {
		recs = append(recs, r)
	}
	m.store.SetCredExchanges(recs)
}

func TestHolderFlow(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	a := fake.New()
	store := repo.NewStore()
	m := New(a.Credentials(), a.Revocation(), store)
	ctx := context.Background()

	rec, err := m.Propose(ctx, "conn-1", "cred-def-1",
		[]gateway.CredentialAttribute{{Name: "email", Value: "a@b.c"}}, "")
	assert.NoError(err)
	assert.Equal(rec.State, pltype.CredProposalSent)
	assert.Equal(rec.Role, pltype.RoleHolder)
	assert.That(rec.ThreadID != "")

	// the peer's offer arrives
	got := a.Creds[rec.ID]
	got.State = pltype.CredOfferReceived
	a.Creds[rec.ID] = got
	sync(m, a)

	rec, err = m.AcceptOffer(ctx, rec.ID)
	assert.NoError(err)
	assert.Equal(rec.State, pltype.CredRequestSent)

	// the peer issues
	got = a.Creds[rec.ID]
	got.State = pltype.CredReceived
	a.Creds[rec.ID] = got
	sync(m, a)

	rec, err = m.Store(ctx, rec.ID)
	assert.NoError(err)
	assert.Equal(rec.State, pltype.CredAcked)
	assert.MLen(a.Owned, 1)
}

func TestIssuerFlow(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	m, a, id := harness(
		pltype.RoleIssuer, pltype.CredProposalReceived, "rev-reg-1")
	ctx := context.Background()

	rec, err := m.Offer(ctx, id)
	assert.NoError(err)
	assert.Equal(rec.State, pltype.CredOfferSent)

	got := a.Creds[id]
	got.State = pltype.CredRequestReceived
	a.Creds[id] = got
	sync(m, a)

	rec, err = m.Issue(ctx, id, "here you go")
	assert.NoError(err)
	assert.Equal(rec.State, pltype.CredIssued)
	sync(m, a)

	assert.NoError(m.Revoke(ctx, id))
	assert.Equal(a.Calls("revocation.revoke"), 1)
}

func TestIllegalTransitionsStayLocal(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name  string
		role  pltype.Role
		state pltype.CredState
		run   func(m *Machine, id string) error
	}{
		{"offer from offer_sent", pltype.RoleIssuer, pltype.CredOfferSent,
			func(m *Machine, id string) error {
				_, err := m.Offer(ctx, id)
				return err
			}},
		{"offer as holder", pltype.RoleHolder, pltype.CredProposalReceived,
			func(m *Machine, id string) error {
				_, err := m.Offer(ctx, id)
				return err
			}},
		{"accept from proposal_sent", pltype.RoleHolder, pltype.CredProposalSent,
			func(m *Machine, id string) error {
				_, err := m.AcceptOffer(ctx, id)
				return err
			}},
		{"issue from proposal_received", pltype.RoleIssuer,
			pltype.CredProposalReceived,
			func(m *Machine, id string) error {
				_, err := m.Issue(ctx, id, "")
				return err
			}},
		{"store from offer_received", pltype.RoleHolder, pltype.CredOfferReceived,
			func(m *Machine, id string) error {
				_, err := m.Store(ctx, id)
				return err
			}},
		{"abort from terminal", pltype.RoleHolder, pltype.CredAcked,
			func(m *Machine, id string) error {
				return m.Abort(ctx, id, "too late")
			}},
		{"delete non-terminal", pltype.RoleIssuer, pltype.CredOfferSent,
			func(m *Machine, id string) error {
				return m.DeleteCompleted(ctx, id)
			}},
		{"delete before storing", pltype.RoleHolder, pltype.CredReceived,
			func(m *Machine, id string) error {
				return m.DeleteCompleted(ctx, id)
			}},
		{"revoke before issuing", pltype.RoleIssuer, pltype.CredRequestReceived,
			func(m *Machine, id string) error {
				return m.Revoke(ctx, id)
			}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.PushTester(t)
			defer assert.PopTester()

			m, a, id := harness(tt.role, tt.state, "rev-reg-1")
			err := tt.run(m, id)
			assert.That(protocol.IsIllegal(err), "expecting illegal transition")
			assert.Equal(a.TotalCalls(), 0)
		})
	}
}

func TestUnknownStateIsDisplayOnly(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	m, a, id := harness(pltype.RoleIssuer, "some_future_state", "rev-reg-1")
	ctx := context.Background()

	_, err := m.Offer(ctx, id)
	assert.That(protocol.IsIllegal(err))
	_, err = m.Issue(ctx, id, "")
	assert.That(protocol.IsIllegal(err))
	assert.That(protocol.IsIllegal(m.Abort(ctx, id, "")))
	assert.That(protocol.IsIllegal(m.Revoke(ctx, id)))
	assert.Equal(a.TotalCalls(), 0)
}

func TestAbortDeletesRecord(t *testing.T) {
	nonTerminal := []pltype.CredState{
		pltype.CredProposalSent, pltype.CredProposalReceived,
		pltype.CredOfferSent, pltype.CredOfferReceived,
		pltype.CredRequestSent, pltype.CredRequestReceived,
		pltype.CredReceived,
	}
	for _, state := range nonTerminal {
		t.Run(state.String(), func(t *testing.T) {
			assert.PushTester(t)
			defer assert.PopTester()

			m, a, id := harness(pltype.RoleHolder, state, "")
			assert.NoError(m.Abort(context.Background(), id, "changed my mind"))
			assert.MLen(a.Creds, 0)
		})
	}
}

func TestRevokeNeedsRevocableCredential(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	m, a, id := harness(pltype.RoleIssuer, pltype.CredAcked, "")
	err := m.Revoke(context.Background(), id)
	assert.That(protocol.IsIllegal(err))
	assert.Equal(a.Calls("revocation.revoke"), 0)
}

// how to install and use mockgen:
// go install github.com/golang/mock/mockgen
// mockgen -package issuecredential -destination ./protocol/issuecredential/mock_test.go github.com/sudoplatform-labs/sudo-di-agent-console/agent/gateway Revocation
func TestRevokeUsesRevocationCapability(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rev := NewMockRevocation(ctrl)
	rev.EXPECT().Revoke(gomock.Any(), "ex-1").Return(nil)

	a := fake.New()
	store := repo.NewStore()
	store.SetCredExchanges([]gateway.CredExRecord{{
		ID:       "ex-1",
		Role:     pltype.RoleIssuer,
		State:    pltype.CredAcked,
		RevRegID: "rev-reg-1",
	}})
	m := New(a.Credentials(), rev, store)

	assert.NoError(m.Revoke(context.Background(), "ex-1"))
}

func TestUnknownExchange(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	m, _, _ := harness(pltype.RoleHolder, pltype.CredProposalSent, "")
	_, err := m.AcceptOffer(context.Background(), "no-such-exchange")
	assert.Equal(err, protocol.ErrUnknownExchange)
}
