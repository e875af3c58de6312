/*
Package issuecredential validates and executes the issue-credential
protocol transitions for both the holder and the issuer role. The
remote agent owns the records; the machine checks every intent against
the last cached state and refuses illegal ones locally, so a stale or
misordered UI action never turns into a protocol error at the agent.
*/
package issuecredential

import (
	"context"

	"github.com/golang/glog"
	"github.com/sudoplatform-labs/sudo-di-agent-console/agent/gateway"
	"github.com/sudoplatform-labs/sudo-di-agent-console/agent/pltype"
	"github.com/sudoplatform-labs/sudo-di-agent-console/agent/repo"
	"github.com/sudoplatform-labs/sudo-di-agent-console/protocol"
)

type op string

const (
	opOffer       op = "offer"
	opAcceptOffer op = "accept offer"
	opIssue       op = "issue"
	opStore       op = "store"
	opAbort       op = "abort"
	opDelete      op = "delete"
	opRevoke      op = "revoke"
)

// legal names the source states each operation may fire from, per
// role. An offer is reachable only from proposal_received: once a
// holder walks away from an offer the exchange is gone and a new
// proposal starts over, there is no re-offer.
var legal = map[op]struct {
	role pltype.Role
	from map[pltype.CredState]bool
}{
	opOffer:       {pltype.RoleIssuer, states(pltype.CredProposalReceived)},
	opAcceptOffer: {pltype.RoleHolder, states(pltype.CredOfferReceived)},
	opIssue:       {pltype.RoleIssuer, states(pltype.CredRequestReceived)},
	opStore: {pltype.RoleHolder, states(
		pltype.CredReceived, pltype.CredIssued)},
	opRevoke: {pltype.RoleIssuer, states(
		pltype.CredIssued, pltype.CredAcked)},
}

func states(ss ...pltype.CredState) map[pltype.CredState]bool {
	m := make(map[pltype.CredState]bool, len(ss))
	for _, s := range ss {
		m[s] = true
	}
	return m
}

// Machine drives one agent's side of credential issuance. All
// dependencies come in through the constructor; there is no ambient
// agent anywhere.
type Machine struct {
	creds gateway.Credentials
	rev   gateway.Revocation
	store *repo.Store
}

func New(
	creds gateway.Credentials,
	rev gateway.Revocation,
	store *repo.Store,
) *Machine {
	return &Machine{creds: creds, rev: rev, store: store}
}

// record loads the cached exchange and checks the operation against
// the transition table. Unknown future states range-check as illegal
// for every operation: such records are display-only.
func (m *Machine) record(o op, exchangeID string) (gateway.CredExRecord, error) {
	rec, ok := m.store.CredExchange(exchangeID)
	if !ok {
		return rec, protocol.ErrUnknownExchange
	}
	rule, ok := legal[o]
	if !ok || !rec.State.Known() ||
		rec.Role != rule.role || !rule.from[rec.State] {

		return rec, protocol.Illegal(string(o), exchangeID, rec.State.String())
	}
	return rec, nil
}

// Propose starts a brand new exchange as holder: the agent creates a
// record in proposal_sent and sends the proposal over the connection.
// The returned record carries the thread id that will tie both sides
// of the exchange together.
func (m *Machine) Propose(
	ctx context.Context,
	connectionID, credDefID string,
	attrs []gateway.CredentialAttribute,
	comment string,
) (*gateway.CredExRecord, error) {
	rec, err := m.creds.Propose(ctx, connectionID, credDefID, attrs, comment)
	if err != nil {
		return nil, err
	}
	glog.V(1).Infoln("proposed credential, thread:", rec.ThreadID)
	return rec, nil
}

// Offer answers a received proposal as issuer, moving the exchange to
// offer_sent.
func (m *Machine) Offer(
	ctx context.Context,
	exchangeID string,
) (*gateway.CredExRecord, error) {
	if _, err := m.record(opOffer, exchangeID); err != nil {
		return nil, err
	}
	return m.creds.Offer(ctx, exchangeID)
}

// AcceptOffer answers a received offer as holder, moving the exchange
// to request_sent.
func (m *Machine) AcceptOffer(
	ctx context.Context,
	exchangeID string,
) (*gateway.CredExRecord, error) {
	if _, err := m.record(opAcceptOffer, exchangeID); err != nil {
		return nil, err
	}
	return m.creds.AcceptOffer(ctx, exchangeID)
}

// Issue answers a received request as issuer, moving the exchange to
// credential_issued.
func (m *Machine) Issue(
	ctx context.Context,
	exchangeID, comment string,
) (*gateway.CredExRecord, error) {
	if _, err := m.record(opIssue, exchangeID); err != nil {
		return nil, err
	}
	return m.creds.Issue(ctx, exchangeID, comment)
}

// Store saves a received credential into the holder wallet and acks
// the exchange. Besides moving the exchange to credential_acked this
// materializes a new owned credential at the agent; the exchange
// record keeps describing the process, the owned credential the
// holding.
func (m *Machine) Store(
	ctx context.Context,
	exchangeID string,
) (*gateway.CredExRecord, error) {
	if _, err := m.record(opStore, exchangeID); err != nil {
		return nil, err
	}
	return m.creds.Store(ctx, exchangeID)
}

// Abort walks away from an exchange in any non-terminal state, from
// either role. The agent sends a problem report to the peer and the
// record is deleted; its disappearance from the next listing is the
// only trace. There is no aborted state value, on purpose: the agent
// deletes rather than marks.
func (m *Machine) Abort(
	ctx context.Context,
	exchangeID, reason string,
) error {
	rec, ok := m.store.CredExchange(exchangeID)
	if !ok {
		return protocol.ErrUnknownExchange
	}
	if !rec.State.Known() || rec.State.Terminal() {
		return protocol.Illegal(string(opAbort), exchangeID, rec.State.String())
	}
	glog.V(1).Infoln("aborting credential exchange:", exchangeID)
	return m.creds.Abort(ctx, exchangeID, reason)
}

// DeleteCompleted removes a finished exchange record without a problem
// report. Only terminal records qualify.
func (m *Machine) DeleteCompleted(
	ctx context.Context,
	exchangeID string,
) error {
	rec, ok := m.store.CredExchange(exchangeID)
	if !ok {
		return protocol.ErrUnknownExchange
	}
	if !rec.State.Terminal() {
		return protocol.Illegal(string(opDelete), exchangeID, rec.State.String())
	}
	return m.creds.DeleteExchange(ctx, exchangeID)
}

// Revoke marks a previously issued credential invalid on the issuer's
// revocation registry. Only issued credentials from a revocable
// credential definition qualify; for the rest the action stays
// disabled.
func (m *Machine) Revoke(
	ctx context.Context,
	exchangeID string,
) error {
	rec, err := m.record(opRevoke, exchangeID)
	if err != nil {
		return err
	}
	if !rec.Revocable() {
		return protocol.Illegal(string(opRevoke), exchangeID, rec.State.String())
	}
	glog.V(1).Infoln("revoking credential, exchange:", exchangeID)
	return m.rev.Revoke(ctx, exchangeID)
}
