/*
Package presentproof validates and executes the present-proof protocol
transitions for the prover and the verifier role. Verification itself
is the agent's job; the machine only guards transition legality and
passes the verdict through. Non-revocation windows travel to the agent
unmodified, the console never recomputes them.
*/
package presentproof

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
	opMatch   op = "match credentials"
	opPresent op = "present proof"
	opVerify  op = "verify"
	opAbort   op = "abort"
	opDelete  op = "delete"
)

var legal = map[op]struct {
	role pltype.Role
	from map[pltype.ProofState]bool
}{
	opMatch:   {pltype.RoleProver, states(pltype.ProofRequestReceived)},
	opPresent: {pltype.RoleProver, states(pltype.ProofRequestReceived)},
	opVerify:  {pltype.RoleVerifier, states(pltype.ProofPresentationReceived)},
}

func states(ss ...pltype.ProofState) map[pltype.ProofState]bool {
	m := make(map[pltype.ProofState]bool, len(ss))
	for _, s := range ss {
		m[s] = true
	}
	return m
}

// Machine drives one agent's side of proof presentation. Dependencies
// are explicit constructor arguments.
type Machine struct {
	proofs gateway.Proofs
	store  *repo.Store
}

func New(proofs gateway.Proofs, store *repo.Store) *Machine {
	return &Machine{proofs: proofs, store: store}
}

func (m *Machine) record(o op, exchangeID string) (gateway.ProofExRecord, error) {
	rec, ok := m.store.ProofExchange(exchangeID)
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

// Request starts a new exchange as verifier: the agent builds the
// proof request and sends it, leaving the record in request_sent.
// Attribute restrictions and non-revocation windows go through as
// given.
func (m *Machine) Request(
	ctx context.Context,
	connectionID, comment string,
	attrs map[string]gateway.RequestedAttribute,
) (*gateway.ProofExRecord, error) {
	rec, err := m.proofs.RequestProof(ctx, connectionID, comment, attrs)
	if err != nil {
		return nil, err
	}
	glog.V(1).Infoln("requested proof, thread:", rec.ThreadID)
	return rec, nil
}

// MatchCredentials asks the agent which wallet credentials satisfy
// each requested attribute. It reads only; the record state does not
// move.
func (m *Machine) MatchCredentials(
	ctx context.Context,
	exchangeID string,
) ([]gateway.CredentialCandidate, error) {
	if _, err := m.record(opMatch, exchangeID); err != nil {
		return nil, err
	}
	return m.proofs.MatchCredentials(ctx, exchangeID)
}

// Present answers a received request as prover with the chosen
// credential per attribute, moving the exchange to presentation_sent.
func (m *Machine) Present(
	ctx context.Context,
	exchangeID string,
	selections map[string]gateway.AttributeSelection,
) (*gateway.ProofExRecord, error) {
	if _, err := m.record(opPresent, exchangeID); err != nil {
		return nil, err
	}
	return m.proofs.PresentProof(ctx, exchangeID, selections)
}

// Verify has the agent check a received presentation and moves the
// exchange to verified. The pass/fail verdict on the returned record
// is the agent's and is final; a revoked credential inside the
// requested non-revocation window fails here, nothing in this process
// re-checks it.
func (m *Machine) Verify(
	ctx context.Context,
	exchangeID string,
) (*gateway.ProofExRecord, error) {
	if _, err := m.record(opVerify, exchangeID); err != nil {
		return nil, err
	}
	return m.proofs.Verify(ctx, exchangeID)
}

// Abort walks away from a non-terminal exchange from either role:
// problem report to the peer, then record deletion. See the credential
// machine for why deletion is the terminal representation.
func (m *Machine) Abort(
	ctx context.Context,
	exchangeID, reason string,
) error {
	rec, ok := m.store.ProofExchange(exchangeID)
	if !ok {
		return protocol.ErrUnknownExchange
	}
	if !rec.State.Known() || rec.State.Terminal() {
		return protocol.Illegal(string(opAbort), exchangeID, rec.State.String())
	}
	glog.V(1).Infoln("aborting proof exchange:", exchangeID)
	return m.proofs.Abort(ctx, exchangeID, reason)
}

// DeleteCompleted removes a finished exchange record, no problem
// report sent.
func (m *Machine) DeleteCompleted(
	ctx context.Context,
	exchangeID string,
) error {
	rec, ok := m.store.ProofExchange(exchangeID)
	if !ok {
		return protocol.ErrUnknownExchange
	}
	if !rec.State.Terminal() {
		return protocol.Illegal(string(opDelete), exchangeID, rec.State.String())
	}
	return m.proofs.DeleteExchange(ctx, exchangeID)
}
