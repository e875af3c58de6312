package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang/glog"
)

const defaultTimeout = 30 * time.Second

// Client talks to a cloud agent's admin REST API. It carries no state
// of its own beyond the endpoint address and the admin api key, so one
// client is safe for any number of views.
type Client struct {
	base   string
	apiKey string
	hc     *http.Client
}

// New builds a client for the admin API at baseURL. An empty apiKey is
// allowed for agents running with admin auth disabled.
func New(baseURL, apiKey string) *Client {
	return &Client{
		base:   strings.TrimRight(baseURL, "/"),
		apiKey: apiKey,
		hc:     &http.Client{Timeout: defaultTimeout},
	}
}

func (c *Client) Connections() Connections { return &connClient{c} }
func (c *Client) Credentials() Credentials { return &credClient{c} }
func (c *Client) Proofs() Proofs           { return &proofClient{c} }
func (c *Client) Revocation() Revocation   { return &revClient{c} }
func (c *Client) Ledger() Ledger           { return &ledgerClient{c} }

// call runs one admin API request. A nil out skips decoding the
// response body. Failures come back as *Error: status 0 when the agent
// was unreachable, otherwise the HTTP status with the agent's body
// kept verbatim for 4xx explanations.
func (c *Client) call(
	ctx context.Context,
	op, method, path string,
	query url.Values,
	in, out interface{},
) error {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return transportErr(op, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return transportErr(op, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	glog.V(3).Infoln("gateway call:", method, path)
	resp, err := c.hc.Do(req)
	if err != nil {
		return transportErr(op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportErr(op, err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return statusErr(op, resp.StatusCode, data)
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return transportErr(op, err)
		}
	}
	return nil
}

func (f ExchangeFilter) query() url.Values {
	q := url.Values{}
	if f.Role != "" {
		q.Set("role", string(f.Role))
	}
	if f.ConnectionID != "" {
		q.Set("connection_id", f.ConnectionID)
	}
	if f.ThreadID != "" {
		q.Set("thread_id", f.ThreadID)
	}
	for _, s := range f.States {
		q.Add("state", s)
	}
	return q
}

type connClient struct{ c *Client }

func (cc *connClient) List(ctx context.Context) ([]ConnectionRecord, error) {
	var res struct {
		Results []ConnectionRecord `json:"results"`
	}
	err := cc.c.call(ctx, "list connections", http.MethodGet,
		"/connections", nil, nil, &res)
	return res.Results, err
}

func (cc *connClient) CreateInvitation(
	ctx context.Context,
	alias string,
	multiUse, public bool,
) (*Invitation, error) {
	q := url.Values{}
	if alias != "" {
		q.Set("alias", alias)
	}
	if multiUse {
		q.Set("multi_use", "true")
	}
	if public {
		q.Set("public", "true")
	}
	inv := &Invitation{}
	err := cc.c.call(ctx, "create invitation", http.MethodPost,
		"/connections/create-invitation", q, struct{}{}, inv)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (cc *connClient) ReceiveInvitation(
	ctx context.Context,
	alias string,
	autoAccept bool,
	invitation *Invitation,
) (*ConnectionRecord, error) {
	q := url.Values{}
	if alias != "" {
		q.Set("alias", alias)
	}
	if autoAccept {
		q.Set("auto_accept", "true")
	}
	rec := &ConnectionRecord{}
	err := cc.c.call(ctx, "receive invitation", http.MethodPost,
		"/connections/receive-invitation", q, invitation.Payload, rec)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (cc *connClient) Delete(ctx context.Context, id string) error {
	return cc.c.call(ctx, "delete connection", http.MethodDelete,
		"/connections/"+id, nil, nil, nil)
}

type credClient struct{ c *Client }

func (cc *credClient) ListExchanges(
	ctx context.Context,
	filter ExchangeFilter,
) ([]CredExRecord, error) {
	var res struct {
		Results []CredExRecord `json:"results"`
	}
	err := cc.c.call(ctx, "list credential exchanges", http.MethodGet,
		"/issue-credential/records", filter.query(), nil, &res)
	return res.Results, err
}

func (cc *credClient) Propose(
	ctx context.Context,
	connectionID, credDefID string,
	attrs []CredentialAttribute,
	comment string,
) (*CredExRecord, error) {
	body := map[string]interface{}{
		"connection_id": connectionID,
		"cred_def_id":   credDefID,
		"comment":       comment,
		"credential_proposal": map[string]interface{}{
			"attributes": attrs,
		},
	}
	rec := &CredExRecord{}
	err := cc.c.call(ctx, "propose credential", http.MethodPost,
		"/issue-credential/send-proposal", nil, body, rec)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (cc *credClient) Offer(
	ctx context.Context,
	exchangeID string,
) (*CredExRecord, error) {
	rec := &CredExRecord{}
	err := cc.c.call(ctx, "send credential offer", http.MethodPost,
		"/issue-credential/records/"+exchangeID+"/send-offer",
		nil, struct{}{}, rec)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (cc *credClient) AcceptOffer(
	ctx context.Context,
	exchangeID string,
) (*CredExRecord, error) {
	rec := &CredExRecord{}
	err := cc.c.call(ctx, "accept credential offer", http.MethodPost,
		"/issue-credential/records/"+exchangeID+"/send-request",
		nil, struct{}{}, rec)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (cc *credClient) Issue(
	ctx context.Context,
	exchangeID, comment string,
) (*CredExRecord, error) {
	rec := &CredExRecord{}
	err := cc.c.call(ctx, "issue credential", http.MethodPost,
		"/issue-credential/records/"+exchangeID+"/issue",
		nil, map[string]string{"comment": comment}, rec)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (cc *credClient) Store(
	ctx context.Context,
	exchangeID string,
) (*CredExRecord, error) {
	rec := &CredExRecord{}
	err := cc.c.call(ctx, "store credential", http.MethodPost,
		"/issue-credential/records/"+exchangeID+"/store",
		nil, struct{}{}, rec)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (cc *credClient) Abort(
	ctx context.Context,
	exchangeID, reason string,
) error {
	err := cc.c.call(ctx, "abort credential exchange", http.MethodPost,
		"/issue-credential/records/"+exchangeID+"/problem-report",
		nil, map[string]string{"description": reason}, nil)
	if err != nil {
		return err
	}
	return cc.DeleteExchange(ctx, exchangeID)
}

func (cc *credClient) DeleteExchange(
	ctx context.Context,
	exchangeID string,
) error {
	return cc.c.call(ctx, "delete credential exchange", http.MethodDelete,
		"/issue-credential/records/"+exchangeID, nil, nil, nil)
}

func (cc *credClient) ListOwned(
	ctx context.Context,
) ([]OwnedCredential, error) {
	var res struct {
		Results []OwnedCredential `json:"results"`
	}
	err := cc.c.call(ctx, "list owned credentials", http.MethodGet,
		"/credentials", nil, nil, &res)
	return res.Results, err
}

func (cc *credClient) DeleteOwned(
	ctx context.Context,
	referent string,
) error {
	return cc.c.call(ctx, "delete owned credential", http.MethodDelete,
		"/credential/"+referent, nil, nil, nil)
}

type proofClient struct{ c *Client }

func (pc *proofClient) ListExchanges(
	ctx context.Context,
	filter ExchangeFilter,
) ([]ProofExRecord, error) {
	var res struct {
		Results []ProofExRecord `json:"results"`
	}
	err := pc.c.call(ctx, "list proof exchanges", http.MethodGet,
		"/present-proof/records", filter.query(), nil, &res)
	return res.Results, err
}

func (pc *proofClient) RequestProof(
	ctx context.Context,
	connectionID, comment string,
	attrs map[string]RequestedAttribute,
) (*ProofExRecord, error) {
	body := map[string]interface{}{
		"connection_id": connectionID,
		"comment":       comment,
		"proof_request": map[string]interface{}{
			"name":                 "proof-request",
			"version":              "1.0",
			"requested_attributes": attrs,
			"requested_predicates": map[string]interface{}{},
		},
	}
	rec := &ProofExRecord{}
	err := pc.c.call(ctx, "request proof", http.MethodPost,
		"/present-proof/send-request", nil, body, rec)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (pc *proofClient) MatchCredentials(
	ctx context.Context,
	exchangeID string,
) ([]CredentialCandidate, error) {
	var res []CredentialCandidate
	err := pc.c.call(ctx, "match credentials", http.MethodGet,
		"/present-proof/records/"+exchangeID+"/credentials",
		nil, nil, &res)
	return res, err
}

func (pc *proofClient) PresentProof(
	ctx context.Context,
	exchangeID string,
	selections map[string]AttributeSelection,
) (*ProofExRecord, error) {
	requested := map[string]interface{}{}
	selfAttested := map[string]string{}
	for name, sel := range selections {
		if sel.CredentialID == "" {
			selfAttested[name] = sel.SelfAttested
			continue
		}
		requested[name] = map[string]interface{}{
			"cred_id":  sel.CredentialID,
			"revealed": sel.Revealed,
		}
	}
	body := map[string]interface{}{
		"requested_attributes":     requested,
		"requested_predicates":     map[string]interface{}{},
		"self_attested_attributes": selfAttested,
	}
	rec := &ProofExRecord{}
	err := pc.c.call(ctx, "present proof", http.MethodPost,
		"/present-proof/records/"+exchangeID+"/send-presentation",
		nil, body, rec)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (pc *proofClient) Verify(
	ctx context.Context,
	exchangeID string,
) (*ProofExRecord, error) {
	rec := &ProofExRecord{}
	err := pc.c.call(ctx, "verify presentation", http.MethodPost,
		"/present-proof/records/"+exchangeID+"/verify-presentation",
		nil, struct{}{}, rec)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (pc *proofClient) Abort(
	ctx context.Context,
	exchangeID, reason string,
) error {
	err := pc.c.call(ctx, "abort proof exchange", http.MethodPost,
		"/present-proof/records/"+exchangeID+"/problem-report",
		nil, map[string]string{"description": reason}, nil)
	if err != nil {
		return err
	}
	return pc.DeleteExchange(ctx, exchangeID)
}

func (pc *proofClient) DeleteExchange(
	ctx context.Context,
	exchangeID string,
) error {
	return pc.c.call(ctx, "delete proof exchange", http.MethodDelete,
		"/present-proof/records/"+exchangeID, nil, nil, nil)
}

type revClient struct{ c *Client }

func (rc *revClient) IssuerStatus(
	ctx context.Context,
	exchangeID string,
) (bool, error) {
	var res struct {
		Result struct {
			State string `json:"state"`
		} `json:"result"`
	}
	q := url.Values{"cred_ex_id": []string{exchangeID}}
	err := rc.c.call(ctx, "issuer revocation status", http.MethodGet,
		"/revocation/credential-record", q, nil, &res)
	if err != nil {
		return false, err
	}
	return res.Result.State == "revoked", nil
}

func (rc *revClient) HolderStatus(
	ctx context.Context,
	referent string,
) (bool, error) {
	var res struct {
		Revoked bool `json:"revoked"`
	}
	err := rc.c.call(ctx, "holder revocation status", http.MethodGet,
		"/credential/revoked/"+referent, nil, nil, &res)
	if err != nil {
		return false, err
	}
	return res.Revoked, nil
}

func (rc *revClient) Revoke(ctx context.Context, exchangeID string) error {
	body := map[string]interface{}{
		"cred_ex_id": exchangeID,
		"publish":    true,
	}
	return rc.c.call(ctx, "revoke credential", http.MethodPost,
		"/revocation/revoke", nil, body, nil)
}

type ledgerClient struct{ c *Client }

func (lc *ledgerClient) TAA(ctx context.Context) (*TAAInfo, error) {
	var res struct {
		Result TAAInfo `json:"result"`
	}
	err := lc.c.call(ctx, "get taa", http.MethodGet,
		"/ledger/taa", nil, nil, &res)
	if err != nil {
		return nil, err
	}
	return &res.Result, nil
}

func (lc *ledgerClient) AcceptTAA(
	ctx context.Context,
	acceptance TAAAcceptance,
) error {
	return lc.c.call(ctx, "accept taa", http.MethodPost,
		"/ledger/taa/accept", nil, acceptance, nil)
}
