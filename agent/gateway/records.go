package gateway

import (
	"encoding/json"

	"github.com/sudoplatform-labs/sudo-di-agent-console/agent/pltype"
)

// ConnectionRecord is the agent's view of a pairwise connection. The
// alias is ours alone, the agent echoes it back but never rewrites it.
type ConnectionRecord struct {
	ID             string                `json:"connection_id"`
	Alias          string                `json:"alias,omitempty"`
	MyDID          string                `json:"my_did,omitempty"`
	TheirDID       string                `json:"their_did,omitempty"`
	TheirLabel     string                `json:"their_label,omitempty"`
	TheirRole      pltype.Role           `json:"their_role,omitempty"`
	State          pltype.ConnState      `json:"state"`
	InvitationMode pltype.InvitationMode `json:"invitation_mode,omitempty"`
	RoutingState   string                `json:"routing_state,omitempty"`
	CreatedAt      string                `json:"created_at,omitempty"`
	UpdatedAt      string                `json:"updated_at,omitempty"`
}

// Invitation is the out-of-band payload a peer needs to connect to us.
// URL is the base64url c_i form ready for pasting; the agent builds it,
// we pass it through.
type Invitation struct {
	ConnectionID string          `json:"connection_id,omitempty"`
	Payload      json.RawMessage `json:"invitation"`
	URL          string          `json:"invitation_url,omitempty"`
}

// CredentialAttribute is one proposed name/value pair of a credential
// preview.
type CredentialAttribute struct {
	Name     string `json:"name"`
	Value    string `json:"value"`
	MimeType string `json:"mime-type,omitempty"`
}

// CredExRecord is one side's record of an issue-credential exchange.
// ThreadID glues the issuer's and the holder's records of the same
// logical exchange together; it never changes once set.
type CredExRecord struct {
	ID           string                `json:"credential_exchange_id"`
	ThreadID     string                `json:"thread_id"`
	Role         pltype.Role           `json:"role"`
	State        pltype.CredState      `json:"state"`
	ConnectionID string                `json:"connection_id,omitempty"`
	CredDefID    string                `json:"credential_definition_id,omitempty"`
	SchemaID     string                `json:"schema_id,omitempty"`
	RevRegID     string                `json:"revoc_reg_id,omitempty"`
	RevocationID string                `json:"revocation_id,omitempty"`
	Attributes   []CredentialAttribute `json:"credential_proposal,omitempty"`
	ErrorMsg     string                `json:"error_msg,omitempty"`
	CreatedAt    string                `json:"created_at,omitempty"`
	UpdatedAt    string                `json:"updated_at,omitempty"`
}

// Revocable tells if the credential definition behind this exchange
// supports revocation at all.
func (r *CredExRecord) Revocable() bool {
	return r.RevRegID != ""
}

// OwnedCredential is a credential stored to the holder wallet. It is a
// different thing than the exchange record that delivered it: the
// exchange describes the process, this describes the holding.
type OwnedCredential struct {
	Referent  string            `json:"referent"`
	SchemaID  string            `json:"schema_id"`
	CredDefID string            `json:"cred_def_id"`
	RevRegID  string            `json:"rev_reg_id,omitempty"`
	CredRevID string            `json:"cred_rev_id,omitempty"`
	Attrs     map[string]string `json:"attrs"`
}

// Revocable tells if this credential can ever be revoked.
func (c *OwnedCredential) Revocable() bool {
	return c.RevRegID != ""
}

// NonRevokedWindow is the time range a verifier asks the prover to
// prove non-revocation within, as unix seconds. From == To asks "valid
// at this instant". The window travels to the agent untouched; the
// verification verdict is the agent's business.
type NonRevokedWindow struct {
	From int64 `json:"from"`
	To   int64 `json:"to"`
}

// RequestedAttribute is one attribute of a proof request.
type RequestedAttribute struct {
	Name         string              `json:"name"`
	Restrictions []map[string]string `json:"restrictions,omitempty"`
	NonRevoked   *NonRevokedWindow   `json:"non_revoked,omitempty"`
}

// ProofExRecord is one side's record of a present-proof exchange.
type ProofExRecord struct {
	ID           string                        `json:"presentation_exchange_id"`
	ThreadID     string                        `json:"thread_id"`
	Role         pltype.Role                   `json:"role"`
	State        pltype.ProofState             `json:"state"`
	ConnectionID string                        `json:"connection_id,omitempty"`
	Request      map[string]RequestedAttribute `json:"requested_attributes,omitempty"`
	Verified     string                        `json:"verified,omitempty"`
	ErrorMsg     string                        `json:"error_msg,omitempty"`
	CreatedAt    string                        `json:"created_at,omitempty"`
	UpdatedAt    string                        `json:"updated_at,omitempty"`
}

// VerifiedOK tells if the agent judged the presentation cryptographically
// valid. Meaningful only in the verified state.
func (r *ProofExRecord) VerifiedOK() bool {
	return r.Verified == "true"
}

// CredentialCandidate is an owned credential that can satisfy one or
// more requested attributes of a proof request.
type CredentialCandidate struct {
	CredentialInfo   OwnedCredential `json:"cred_info"`
	PresentationRefs []string        `json:"presentation_referents"`
}

// AttributeSelection picks the credential to present for one requested
// attribute. Revealed self-attested values carry no credential id.
type AttributeSelection struct {
	CredentialID string `json:"cred_id,omitempty"`
	Revealed     bool   `json:"revealed"`
	SelfAttested string `json:"self_attested,omitempty"`
}

// TAAInfo is the ledger's transaction author agreement, passed through
// for display and acceptance.
type TAAInfo struct {
	Required bool   `json:"taa_required"`
	Text     string `json:"text,omitempty"`
	Version  string `json:"version,omitempty"`
	Digest   string `json:"digest,omitempty"`
}

// TAAAcceptance names how and when we accepted the TAA.
type TAAAcceptance struct {
	Text      string `json:"text"`
	Version   string `json:"version"`
	Mechanism string `json:"mechanism"`
}

// ExchangeFilter narrows a record listing at the agent.
type ExchangeFilter struct {
	Role         pltype.Role
	ConnectionID string
	ThreadID     string
	States       []string
}
