// Package pltype holds the protocol-level type constants the console
// shares with the cloud agent: exchange states, participant roles and
// the view partitions built from them. The string values are the wire
// labels the agent's admin API reports, don't edit them.
package pltype

// Role tells which side of an exchange our agent is on. The agent
// reports the role per record; it never changes during an exchange.
type Role string

const (
	RoleHolder   Role = "holder"
	RoleIssuer   Role = "issuer"
	RoleProver   Role = "prover"
	RoleVerifier Role = "verifier"

	RoleInvitee Role = "invitee"
	RoleInviter Role = "inviter"
)

// ConnState is a connection protocol state.
type ConnState string

const (
	ConnInvitation ConnState = "invitation"
	ConnRequest    ConnState = "request"
	ConnResponse   ConnState = "response"
	ConnActive     ConnState = "active"
	ConnError      ConnState = "error"
)

// InvitationMode tells if an invitation can be used more than once.
type InvitationMode string

const (
	InvitationOnce  InvitationMode = "once"
	InvitationMulti InvitationMode = "multi"
)

// CredState is an issue-credential exchange state as observed by one
// side of the protocol. A record's state only moves forward along the
// protocol graph; abandonment shows up as record deletion, there is no
// aborted state value.
type CredState string

const (
	CredProposalSent     CredState = "proposal_sent"
	CredProposalReceived CredState = "proposal_received"
	CredOfferSent        CredState = "offer_sent"
	CredOfferReceived    CredState = "offer_received"
	CredRequestSent      CredState = "request_sent"
	CredRequestReceived  CredState = "request_received"
	CredIssued           CredState = "credential_issued"
	CredReceived         CredState = "credential_received"
	CredAcked            CredState = "credential_acked"
)

var credStates = map[CredState]struct{}{
	CredProposalSent:     {},
	CredProposalReceived: {},
	CredOfferSent:        {},
	CredOfferReceived:    {},
	CredRequestSent:      {},
	CredRequestReceived:  {},
	CredIssued:           {},
	CredReceived:         {},
	CredAcked:            {},
}

// Known tells if the state belongs to the protocol version we speak.
// An agent running a newer protocol may report states we have never
// heard of; those records are shown read-only with all actions
// disabled.
func (s CredState) Known() bool {
	_, ok := credStates[s]
	return ok
}

// Terminal reports whether the exchange has run to completion. Only
// terminal records may be cleaned up without a problem report. A
// delivered credential still waiting to be stored is not terminal:
// the holder may yet store it or walk away with a problem report.
func (s CredState) Terminal() bool {
	return s == CredIssued || s == CredAcked
}

// Completed is the "Issued" view membership: the credential is out,
// whether or not the final ack has landed yet.
func (s CredState) Completed() bool {
	return s == CredIssued || s == CredAcked
}

// Active is the in-progress view membership, everything up to and
// including the request leg.
func (s CredState) Active() bool {
	return s.Known() && !s.Completed() && s != CredReceived
}

func (s CredState) String() string {
	return string(s)
}

// ProofState is a present-proof exchange state.
type ProofState string

const (
	ProofProposalSent         ProofState = "proposal_sent"
	ProofProposalReceived     ProofState = "proposal_received"
	ProofRequestSent          ProofState = "request_sent"
	ProofRequestReceived      ProofState = "request_received"
	ProofPresentationSent     ProofState = "presentation_sent"
	ProofPresentationReceived ProofState = "presentation_received"
	ProofVerified             ProofState = "verified"
	ProofPresentationAcked    ProofState = "presentation_acked"
)

var proofStates = map[ProofState]struct{}{
	ProofProposalSent:         {},
	ProofProposalReceived:     {},
	ProofRequestSent:          {},
	ProofRequestReceived:      {},
	ProofPresentationSent:     {},
	ProofPresentationReceived: {},
	ProofVerified:             {},
	ProofPresentationAcked:    {},
}

// Known tells if the state belongs to the protocol version we speak.
func (s ProofState) Known() bool {
	_, ok := proofStates[s]
	return ok
}

// Terminal reports whether the proof exchange is finished.
func (s ProofState) Terminal() bool {
	return s == ProofVerified || s == ProofPresentationAcked
}

// Completed is the completed-proofs view membership.
func (s ProofState) Completed() bool {
	return s.Terminal()
}

// Active is the in-progress view membership, through the presentation
// leg.
func (s ProofState) Active() bool {
	return s.Known() && !s.Terminal()
}

func (s ProofState) String() string {
	return string(s)
}

// View names the logical record sets the console polls. Each view owns
// its own refresh countdown.
type View string

const (
	ViewConnections    View = "connections"
	ViewCredActive     View = "credentials-active"
	ViewCredIssued     View = "credentials-issued"
	ViewCredOwned      View = "credentials-owned"
	ViewProofActive    View = "proofs-active"
	ViewProofCompleted View = "proofs-completed"
)

func (v View) String() string {
	return string(v)
}
