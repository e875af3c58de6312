package fake

import (
	"context"
	"time"

	"github.com/sudoplatform-labs/sudo-di-agent-console/agent/gateway"
	"github.com/sudoplatform-labs/sudo-di-agent-console/agent/pltype"
	"github.com/sudoplatform-labs/sudo-di-agent-console/agent/utils"
)

type proofAPI struct{ a *Agent }

func (p *proofAPI) ListExchanges(
	ctx context.Context,
	filter gateway.ExchangeFilter,
) ([]gateway.ProofExRecord, error) {
	a := p.a
	if err := a.count("proofs.list"); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]gateway.ProofExRecord, 0, len(a.ProofExs))
	for _, r := range a.ProofExs {
		if filter.Role != "" && r.Role != filter.Role {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (p *proofAPI) RequestProof(
	ctx context.Context,
	connectionID, comment string,
	attrs map[string]gateway.RequestedAttribute,
) (*gateway.ProofExRecord, error) {
	a := p.a
	if err := a.count("proofs.request"); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	rec := gateway.ProofExRecord{
		ID:           utils.UUID(),
		ThreadID:     utils.UUID(),
		Role:         pltype.RoleVerifier,
		State:        pltype.ProofRequestSent,
		ConnectionID: connectionID,
		Request:      attrs,
	}
	a.ProofExs[rec.ID] = rec
	return &rec, nil
}

func (p *proofAPI) MatchCredentials(
	ctx context.Context,
	exchangeID string,
) ([]gateway.CredentialCandidate, error) {
	a := p.a
	if err := a.count("proofs.credentials"); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	rec, ok := a.ProofExs[exchangeID]
	if !ok {
		return nil, &gateway.Error{Status: 404, Op: "proofs.credentials"}
	}
	refs := make([]string, 0, len(rec.Request))
	for ref := range rec.Request {
		refs = append(refs, ref)
	}
	out := make([]gateway.CredentialCandidate, 0, len(a.Owned))
	for _, cred := range a.Owned {
		out = append(out, gateway.CredentialCandidate{
			CredentialInfo:   cred,
			PresentationRefs: refs,
		})
	}
	return out, nil
}

func (p *proofAPI) PresentProof(
	ctx context.Context,
	exchangeID string,
	selections map[string]gateway.AttributeSelection,
) (*gateway.ProofExRecord, error) {
	a := p.a
	if err := a.count("proofs.present"); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	rec, ok := a.ProofExs[exchangeID]
	if !ok {
		return nil, &gateway.Error{Status: 404, Op: "proofs.present"}
	}
	rec.State = pltype.ProofPresentationSent
	for _, sel := range selections {
		if sel.CredentialID != "" {
			a.PresentedWith[rec.ThreadID] = sel.CredentialID
			break
		}
	}
	a.ProofExs[exchangeID] = rec
	return &rec, nil
}

func (p *proofAPI) Verify(
	ctx context.Context,
	exchangeID string,
) (*gateway.ProofExRecord, error) {
	a := p.a
	if err := a.count("proofs.verify"); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	rec, ok := a.ProofExs[exchangeID]
	if !ok {
		return nil, &gateway.Error{Status: 404, Op: "proofs.verify"}
	}
	rec.State = pltype.ProofVerified
	rec.Verified = "true"
	if revokedAt, yes := a.revokedBehind(rec); yes {
		for _, attr := range rec.Request {
			w := attr.NonRevoked
			if w != nil && w.To >= revokedAt {
				rec.Verified = "false"
				break
			}
		}
	}
	a.ProofExs[exchangeID] = rec
	return &rec, nil
}

// revokedBehind digs up the revocation time of the credential the
// prover presented in this exchange, correlating the two sides of the
// thread if needed.
func (a *Agent) revokedBehind(rec gateway.ProofExRecord) (int64, bool) {
	ref, ok := a.PresentedWith[rec.ThreadID]
	if !ok {
		ref, ok = a.PresentedWith[rec.ID]
	}
	if !ok {
		return 0, false
	}
	at, ok := a.RevokedAt[ref]
	return at, ok
}

func (p *proofAPI) Abort(ctx context.Context, exchangeID, reason string) error {
	a := p.a
	if err := a.count("proofs.abort"); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.ProofExs, exchangeID)
	return nil
}

func (p *proofAPI) DeleteExchange(ctx context.Context, exchangeID string) error {
	a := p.a
	if err := a.count("proofs.delete"); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.ProofExs, exchangeID)
	return nil
}

type revAPI struct{ a *Agent }

func (r *revAPI) IssuerStatus(
	ctx context.Context,
	exchangeID string,
) (bool, error) {
	a := r.a
	if err := a.count("revocation.issuer-status"); err != nil {
		return false, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	_, revoked := a.RevokedAt[exchangeID]
	return revoked, nil
}

func (r *revAPI) HolderStatus(
	ctx context.Context,
	referent string,
) (bool, error) {
	a := r.a
	if err := a.count("revocation.holder-status"); err != nil {
		return false, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	_, revoked := a.RevokedAt[referent]
	return revoked, nil
}

func (r *revAPI) Revoke(ctx context.Context, exchangeID string) error {
	a := r.a
	if err := a.count("revocation.revoke"); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.RevokedAt[exchangeID] = time.Now().Unix()
	return nil
}

type ledgerAPI struct{ a *Agent }

func (l *ledgerAPI) TAA(ctx context.Context) (*gateway.TAAInfo, error) {
	a := l.a
	if err := a.count("ledger.taa"); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	info := a.TAA
	return &info, nil
}

func (l *ledgerAPI) AcceptTAA(
	ctx context.Context,
	acceptance gateway.TAAAcceptance,
) error {
	return l.a.count("ledger.taa-accept")
}
