// Package fake is an in-memory agent for tests: it implements the
// full gateway capability set over plain maps, counts every call, and
// honors revocation timestamps when verifying presentations so the
// non-revocation window semantics can be asserted end to end without a
// real agent.
package fake

import (
	"context"
	"sync"

	"github.com/sudoplatform-labs/sudo-di-agent-console/agent/gateway"
	"github.com/sudoplatform-labs/sudo-di-agent-console/agent/pltype"
	"github.com/sudoplatform-labs/sudo-di-agent-console/agent/utils"
)

// Agent is the fake. Seed the maps directly to set up a scenario; the
// zero value of the exported knobs means everything succeeds.
type Agent struct {
	mu sync.Mutex

	Conns    map[string]gateway.ConnectionRecord
	Creds    map[string]gateway.CredExRecord
	ProofExs map[string]gateway.ProofExRecord
	Owned    map[string]gateway.OwnedCredential

	// RevokedAt maps a credential referent or exchange id to its
	// revocation time in unix seconds.
	RevokedAt map[string]int64

	// PresentedWith names the credential referent behind a proof
	// exchange, so Verify knows whose revocation time applies.
	PresentedWith map[string]string

	// TAA is what the ledger capability reports.
	TAA gateway.TAAInfo

	// Fail, when set, makes every call return it.
	Fail error

	calls map[string]int
}

func New() *Agent {
	return &Agent{
		Conns:         make(map[string]gateway.ConnectionRecord),
		Creds:         make(map[string]gateway.CredExRecord),
		ProofExs:      make(map[string]gateway.ProofExRecord),
		Owned:         make(map[string]gateway.OwnedCredential),
		RevokedAt:     make(map[string]int64),
		PresentedWith: make(map[string]string),
		calls:         make(map[string]int),
	}
}

func (a *Agent) Connections() gateway.Connections { return &connAPI{a} }

func (a *Agent) Credentials() gateway.Credentials { return &credAPI{a} }

func (a *Agent) Proofs() gateway.Proofs { return &proofAPI{a} }

func (a *Agent) Revocation() gateway.Revocation { return &revAPI{a} }

func (a *Agent) Ledger() gateway.Ledger { return &ledgerAPI{a} }

// count registers the call and reports the injected failure if any.
func (a *Agent) count(op string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls[op]++
	return a.Fail
}

// Calls returns how many times the named operation ran.
func (a *Agent) Calls(op string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls[op]
}

// TotalCalls returns how many gateway calls ran in total.
func (a *Agent) TotalCalls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for _, c := range a.calls {
		n += c
	}
	return n
}

type connAPI struct{ a *Agent }

func (c *connAPI) List(ctx context.Context) ([]gateway.ConnectionRecord, error) {
	a := c.a
	if err := a.count("connections.list"); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]gateway.ConnectionRecord, 0, len(a.Conns))
	for _, r := range a.Conns {
		out = append(out, r)
	}
	return out, nil
}

func (c *connAPI) CreateInvitation(
	ctx context.Context,
	alias string,
	multiUse, public bool,
) (*gateway.Invitation, error) {
	a := c.a
	if err := a.count("connections.create-invitation"); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	id := utils.UUID()
	mode := pltype.InvitationOnce
	if multiUse {
		mode = pltype.InvitationMulti
	}
	a.Conns[id] = gateway.ConnectionRecord{
		ID:             id,
		Alias:          alias,
		State:          pltype.ConnInvitation,
		InvitationMode: mode,
	}
	return &gateway.Invitation{
		ConnectionID: id,
		Payload:      []byte(`{"@type":"invitation","@id":"` + id + `"}`),
		URL:          "http://fake/invite?c_i=e30",
	}, nil
}

func (c *connAPI) ReceiveInvitation(
	ctx context.Context,
	alias string,
	autoAccept bool,
	invitation *gateway.Invitation,
) (*gateway.ConnectionRecord, error) {
	a := c.a
	if err := a.count("connections.receive-invitation"); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	rec := gateway.ConnectionRecord{
		ID:    utils.UUID(),
		Alias: alias,
		State: pltype.ConnRequest,
	}
	a.Conns[rec.ID] = rec
	return &rec, nil
}

func (c *connAPI) Delete(ctx context.Context, id string) error {
	a := c.a
	if err := a.count("connections.delete"); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.Conns, id)
	return nil
}

type credAPI struct{ a *Agent }

func (c *credAPI) ListExchanges(
	ctx context.Context,
	filter gateway.ExchangeFilter,
) ([]gateway.CredExRecord, error) {
	a := c.a
	if err := a.count("creds.list"); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]gateway.CredExRecord, 0, len(a.Creds))
	for _, r := range a.Creds {
		if filter.Role != "" && r.Role != filter.Role {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (c *credAPI) Propose(
	ctx context.Context,
	connectionID, credDefID string,
	attrs []gateway.CredentialAttribute,
	comment string,
) (*gateway.CredExRecord, error) {
	a := c.a
	if err := a.count("creds.propose"); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	rec := gateway.CredExRecord{
		ID:           utils.UUID(),
		ThreadID:     utils.UUID(),
		Role:         pltype.RoleHolder,
		State:        pltype.CredProposalSent,
		ConnectionID: connectionID,
		CredDefID:    credDefID,
		Attributes:   attrs,
	}
	a.Creds[rec.ID] = rec
	return &rec, nil
}

func (c *credAPI) step(
	op, exchangeID string,
	state pltype.CredState,
) (*gateway.CredExRecord, error) {
	a := c.a
	if err := a.count(op); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	rec, ok := a.Creds[exchangeID]
	if !ok {
		return nil, &gateway.Error{Status: 404, Op: op}
	}
	rec.State = state
	a.Creds[exchangeID] = rec
	return &rec, nil
}

func (c *credAPI) Offer(
	ctx context.Context,
	exchangeID string,
) (*gateway.CredExRecord, error) {
	return c.step("creds.offer", exchangeID, pltype.CredOfferSent)
}

func (c *credAPI) AcceptOffer(
	ctx context.Context,
	exchangeID string,
) (*gateway.CredExRecord, error) {
	return c.step("creds.accept-offer", exchangeID, pltype.CredRequestSent)
}

func (c *credAPI) Issue(
	ctx context.Context,
	exchangeID, comment string,
) (*gateway.CredExRecord, error) {
	return c.step("creds.issue", exchangeID, pltype.CredIssued)
}

func (c *credAPI) Store(
	ctx context.Context,
	exchangeID string,
) (*gateway.CredExRecord, error) {
	rec, err := c.step("creds.store", exchangeID, pltype.CredAcked)
	if err != nil {
		return nil, err
	}
	a := c.a
	a.mu.Lock()
	defer a.mu.Unlock()
	ref := utils.UUID()
	a.Owned[ref] = gateway.OwnedCredential{
		Referent:  ref,
		SchemaID:  rec.SchemaID,
		CredDefID: rec.CredDefID,
		RevRegID:  rec.RevRegID,
	}
	return rec, nil
}

func (c *credAPI) Abort(ctx context.Context, exchangeID, reason string) error {
	a := c.a
	if err := a.count("creds.abort"); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.Creds, exchangeID)
	return nil
}

func (c *credAPI) DeleteExchange(ctx context.Context, exchangeID string) error {
	a := c.a
	if err := a.count("creds.delete"); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.Creds, exchangeID)
	return nil
}

func (c *credAPI) ListOwned(
	ctx context.Context,
) ([]gateway.OwnedCredential, error) {
	a := c.a
	if err := a.count("creds.list-owned"); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]gateway.OwnedCredential, 0, len(a.Owned))
	for _, r := range a.Owned {
		out = append(out, r)
	}
	return out, nil
}

func (c *credAPI) DeleteOwned(ctx context.Context, referent string) error {
	a := c.a
	if err := a.count("creds.delete-owned"); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.Owned, referent)
	return nil
}
