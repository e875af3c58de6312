/*
Package gateway is the console's only road to the cloud agent. The
agent does all the heavy lifting (wallet crypto, ledger writes, DIDComm
transport) behind its admin REST API; this package models that API as a
set of capability interfaces, one per protocol, so the state machines
can take exactly the capability they drive and tests can hand them
fakes.

All calls are plain request/response over HTTP. The agent pushes
nothing back to us; staying current is the poller's job.
*/
package gateway

import "context"

// Connections drives the connection protocol.
type Connections interface {
	List(ctx context.Context) ([]ConnectionRecord, error)
	CreateInvitation(
		ctx context.Context,
		alias string,
		multiUse, public bool,
	) (*Invitation, error)
	ReceiveInvitation(
		ctx context.Context,
		alias string,
		autoAccept bool,
		invitation *Invitation,
	) (*ConnectionRecord, error)
	Delete(ctx context.Context, id string) error
}

// Credentials drives the issue-credential protocol from either role.
type Credentials interface {
	ListExchanges(
		ctx context.Context,
		filter ExchangeFilter,
	) ([]CredExRecord, error)
	Propose(
		ctx context.Context,
		connectionID, credDefID string,
		attrs []CredentialAttribute,
		comment string,
	) (*CredExRecord, error)
	Offer(ctx context.Context, exchangeID string) (*CredExRecord, error)
	AcceptOffer(ctx context.Context, exchangeID string) (*CredExRecord, error)
	Issue(
		ctx context.Context,
		exchangeID, comment string,
	) (*CredExRecord, error)
	Store(ctx context.Context, exchangeID string) (*CredExRecord, error)
	Abort(ctx context.Context, exchangeID, reason string) error
	DeleteExchange(ctx context.Context, exchangeID string) error
	ListOwned(ctx context.Context) ([]OwnedCredential, error)
	DeleteOwned(ctx context.Context, referent string) error
}

// Proofs drives the present-proof protocol from either role.
type Proofs interface {
	ListExchanges(
		ctx context.Context,
		filter ExchangeFilter,
	) ([]ProofExRecord, error)
	RequestProof(
		ctx context.Context,
		connectionID, comment string,
		attrs map[string]RequestedAttribute,
	) (*ProofExRecord, error)
	MatchCredentials(
		ctx context.Context,
		exchangeID string,
	) ([]CredentialCandidate, error)
	PresentProof(
		ctx context.Context,
		exchangeID string,
		selections map[string]AttributeSelection,
	) (*ProofExRecord, error)
	Verify(ctx context.Context, exchangeID string) (*ProofExRecord, error)
	Abort(ctx context.Context, exchangeID, reason string) error
	DeleteExchange(ctx context.Context, exchangeID string) error
}

// Revocation answers revocation questions and executes revocations.
// The issuer asks by exchange id, the holder by wallet referent; both
// are lookups of the same conceptual fact through different keys.
type Revocation interface {
	IssuerStatus(ctx context.Context, exchangeID string) (bool, error)
	HolderStatus(ctx context.Context, referent string) (bool, error)
	Revoke(ctx context.Context, exchangeID string) error
}

// Ledger passes transaction author agreement handling through to the
// agent, nothing protocol-stateful here.
type Ledger interface {
	TAA(ctx context.Context) (*TAAInfo, error)
	AcceptTAA(ctx context.Context, acceptance TAAAcceptance) error
}

// Gateway bundles every capability of one agent admin endpoint.
type Gateway interface {
	Connections() Connections
	Credentials() Credentials
	Proofs() Proofs
	Revocation() Revocation
	Ledger() Ledger
}
