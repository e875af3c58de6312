// Package proof has the console commands for proof presentation, both
// roles: request, match, present, verify, abort and listings.
package proof

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/sudoplatform-labs/sudo-di-agent-console/agent/gateway"
	"github.com/sudoplatform-labs/sudo-di-agent-console/agent/pltype"
	"github.com/sudoplatform-labs/sudo-di-agent-console/agent/repo"
	"github.com/sudoplatform-labs/sudo-di-agent-console/cmds"
	"github.com/sudoplatform-labs/sudo-di-agent-console/protocol/presentproof"
)

// Cmd is the base of every proof command.
type Cmd struct {
	cmds.Cmd
}

func (c Cmd) machine(
	ctx context.Context,
	gw gateway.Gateway,
) (*presentproof.Machine, *repo.Store, error) {
	recs, err := gw.Proofs().ListExchanges(ctx, gateway.ExchangeFilter{})
	if err != nil {
		return nil, nil, err
	}
	store := repo.NewStore()
	store.SetProofExchanges(recs)
	return presentproof.New(gw.Proofs(), store), store, nil
}

// ExchangeCmd is the base of commands acting on one exchange.
type ExchangeCmd struct {
	Cmd
	ID string
}

func (c ExchangeCmd) Validate() error {
	if err := c.Cmd.Validate(); err != nil {
		return err
	}
	if c.ID == "" {
		return errors.New("exchange id cannot be empty")
	}
	return nil
}

func (c ExchangeCmd) exec(
	w io.Writer,
	op func(ctx context.Context, m *presentproof.Machine) (interface{}, error),
) (r cmds.Result, err error) {
	defer err2.Handle(&err)

	gw := c.Gateway()
	ctx, cancel := cmds.NewCtx()
	defer cancel()

	m, _, e := c.machine(ctx, gw)
	try.To(e)
	out := try.To1(op(ctx, m))
	if out == nil {
		out = c.ID
	}
	cmds.Fprintln(w, "ok")
	return cmds.JSONResult{Data: out}, nil
}

// ListCmd lists proof exchanges, optionally narrowed to the active or
// the completed partition, joined with the owning connection alias.
type ListCmd struct {
	Cmd
	View string
}

func (c ListCmd) Validate() error {
	if err := c.Cmd.Validate(); err != nil {
		return err
	}
	switch c.View {
	case "", "active", "completed":
		return nil
	}
	return fmt.Errorf("%w: unknown view %q", cmds.ErrInvalid, c.View)
}

func (c ListCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err)

	gw := c.Gateway()
	ctx, cancel := cmds.NewCtx()
	defer cancel()

	store := repo.NewStore()
	store.SetProofExchanges(
		try.To1(gw.Proofs().ListExchanges(ctx, gateway.ExchangeFilter{})))
	store.SetConnections(try.To1(gw.Connections().List(ctx)))

	keep := func(rec gateway.ProofExRecord) bool {
		switch c.View {
		case "active":
			return rec.State.Active()
		case "completed":
			return rec.State.Completed()
		}
		return true
	}

	recs := store.ProofExchanges(keep)
	for _, rec := range recs {
		alias := "-"
		if conn := repo.Correlate(store, rec.ConnectionID); conn != nil {
			alias = conn.Alias
		}
		verdict := "-"
		if rec.State == pltype.ProofVerified {
			verdict = rec.Verified
		}
		cmds.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			rec.ID, rec.ThreadID, rec.Role, rec.State, alias, verdict)
	}
	return cmds.JSONResult{Data: recs}, nil
}

// RequestCmd starts a new exchange as verifier. Attributes come as
// name[:nonrevoked] specs; a bare "now" window asks for validity at
// this instant. Issuer restrictions default to the given credential
// definition id.
type RequestCmd struct {
	Cmd
	ConnectionID string
	CredDefID    string
	Attrs        []string
	Comment      string
}

func (c RequestCmd) Validate() error {
	if err := c.Cmd.Validate(); err != nil {
		return err
	}
	if c.ConnectionID == "" {
		return errors.New("connection id cannot be empty")
	}
	if len(c.Attrs) == 0 {
		return errors.New("at least one attribute must be requested")
	}
	if _, err := parseAttrSpecs(c.Attrs, c.CredDefID); err != nil {
		return err
	}
	return nil
}

func (c RequestCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err)

	attrs := try.To1(parseAttrSpecs(c.Attrs, c.CredDefID))
	gw := c.Gateway()
	ctx, cancel := cmds.NewCtx()
	defer cancel()

	m, _, e := c.machine(ctx, gw)
	try.To(e)
	rec := try.To1(m.Request(ctx, c.ConnectionID, c.Comment, attrs))
	cmds.Fprintln(w, rec.ThreadID)
	return cmds.JSONResult{Data: rec}, nil
}

// parseAttrSpecs turns CLI attribute specs into a proof request. A
// spec is name, name:now, or name:from-to with unix second bounds.
func parseAttrSpecs(
	in []string,
	credDefID string,
) (map[string]gateway.RequestedAttribute, error) {
	out := make(map[string]gateway.RequestedAttribute, len(in))
	for i, spec := range in {
		name, window, _ := strings.Cut(spec, ":")
		if name == "" {
			return nil, fmt.Errorf(
				"%w: empty attribute name in %q", cmds.ErrInvalid, spec)
		}
		attr := gateway.RequestedAttribute{Name: name}
		if credDefID != "" {
			attr.Restrictions = []map[string]string{
				{"cred_def_id": credDefID},
			}
		}
		switch {
		case window == "":
		case window == "now":
			now := time.Now().Unix()
			attr.NonRevoked = &gateway.NonRevokedWindow{From: now, To: now}
		default:
			from, to, ok := strings.Cut(window, "-")
			if !ok {
				return nil, fmt.Errorf(
					"%w: bad non-revocation window %q", cmds.ErrInvalid, spec)
			}
			f, ferr := strconv.ParseInt(from, 10, 64)
			t, terr := strconv.ParseInt(to, 10, 64)
			if ferr != nil || terr != nil || t < f {
				return nil, fmt.Errorf(
					"%w: bad non-revocation window %q", cmds.ErrInvalid, spec)
			}
			attr.NonRevoked = &gateway.NonRevokedWindow{From: f, To: t}
		}
		out[fmt.Sprintf("attr_%d_%s", i, name)] = attr
	}
	return out, nil
}

// MatchCmd lists the wallet credentials able to satisfy a received
// request, per attribute.
type MatchCmd struct{ ExchangeCmd }

func (c MatchCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err)

	gw := c.Gateway()
	ctx, cancel := cmds.NewCtx()
	defer cancel()

	m, _, e := c.machine(ctx, gw)
	try.To(e)
	candidates := try.To1(m.MatchCredentials(ctx, c.ID))
	for _, cand := range candidates {
		cmds.Fprintf(w, "%s\t%s\n",
			cand.CredentialInfo.Referent,
			strings.Join(cand.PresentationRefs, ","))
	}
	return cmds.JSONResult{Data: candidates}, nil
}

// PresentCmd answers a request as prover. Selections map requested
// attribute referents to wallet credential ids, ref=credID; a bare
// ref=value! form self-attests the value instead.
type PresentCmd struct {
	ExchangeCmd
	Selections []string
}

func (c PresentCmd) Validate() error {
	if err := c.ExchangeCmd.Validate(); err != nil {
		return err
	}
	if len(c.Selections) == 0 {
		return errors.New("at least one selection must be given")
	}
	if _, err := parseSelections(c.Selections); err != nil {
		return err
	}
	return nil
}

func (c PresentCmd) Exec(w io.Writer) (cmds.Result, error) {
	selections, err := parseSelections(c.Selections)
	if err != nil {
		return nil, err
	}
	return c.exec(w, func(ctx context.Context, m *presentproof.Machine) (interface{}, error) {
		return m.Present(ctx, c.ID, selections)
	})
}

func parseSelections(in []string) (map[string]gateway.AttributeSelection, error) {
	out := make(map[string]gateway.AttributeSelection, len(in))
	for _, s := range in {
		ref, val, ok := strings.Cut(s, "=")
		if !ok || ref == "" || val == "" {
			return nil, fmt.Errorf(
				"%w: selection %q is not ref=credential", cmds.ErrInvalid, s)
		}
		if strings.HasSuffix(val, "!") {
			out[ref] = gateway.AttributeSelection{
				SelfAttested: strings.TrimSuffix(val, "!"),
			}
			continue
		}
		out[ref] = gateway.AttributeSelection{CredentialID: val, Revealed: true}
	}
	return out, nil
}

// VerifyCmd verifies a received presentation as verifier and reports
// the agent's verdict.
type VerifyCmd struct{ ExchangeCmd }

func (c VerifyCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err)

	gw := c.Gateway()
	ctx, cancel := cmds.NewCtx()
	defer cancel()

	m, _, e := c.machine(ctx, gw)
	try.To(e)
	rec := try.To1(m.Verify(ctx, c.ID))
	if rec.VerifiedOK() {
		cmds.Fprintln(w, "verified: true")
	} else {
		cmds.Fprintln(w, "verified: false")
	}
	return cmds.JSONResult{Data: rec}, nil
}

// AbortCmd abandons a running exchange with a problem report.
type AbortCmd struct {
	ExchangeCmd
	Reason string
}

func (c AbortCmd) Exec(w io.Writer) (cmds.Result, error) {
	return c.exec(w, func(ctx context.Context, m *presentproof.Machine) (interface{}, error) {
		return nil, m.Abort(ctx, c.ID, c.Reason)
	})
}

// RemoveCmd deletes a completed exchange record.
type RemoveCmd struct{ ExchangeCmd }

func (c RemoveCmd) Exec(w io.Writer) (cmds.Result, error) {
	return c.exec(w, func(ctx context.Context, m *presentproof.Machine) (interface{}, error) {
		return nil, m.DeleteCompleted(ctx, c.ID)
	})
}
