// Package credential has the console commands for credential
// issuance, both roles: propose, offer, accept, issue, store, abort,
// revoke and the exchange/wallet listings.
package credential

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/sudoplatform-labs/sudo-di-agent-console/agent/gateway"
	"github.com/sudoplatform-labs/sudo-di-agent-console/agent/repo"
	"github.com/sudoplatform-labs/sudo-di-agent-console/agent/revocation"
	"github.com/sudoplatform-labs/sudo-di-agent-console/cmds"
	"github.com/sudoplatform-labs/sudo-di-agent-console/protocol/issuecredential"
)

// Cmd is the base of every credential command.
type Cmd struct {
	cmds.Cmd
}

// machine loads the current exchange set into a fresh store and
// builds the state machine over it. The listing is the validation
// snapshot: transition legality is judged against what the agent
// reported just now.
func (c Cmd) machine(
	ctx context.Context,
	gw gateway.Gateway,
) (*issuecredential.Machine, *repo.Store, error) {
	recs, err := gw.Credentials().ListExchanges(ctx, gateway.ExchangeFilter{})
	if err != nil {
		return nil, nil, err
	}
	store := repo.NewStore()
	store.SetCredExchanges(recs)
	return issuecredential.New(gw.Credentials(), gw.Revocation(), store),
		store, nil
}

// ExchangeCmd is the base of commands that act on one exchange.
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
	op func(ctx context.Context, m *issuecredential.Machine) (interface{}, error),
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

// ListCmd lists credential exchanges. View narrows to the active or
// the issued partition; empty means everything. Each line joins the
// owning connection when the cache can still name it.
type ListCmd struct {
	Cmd
	View string
}

func (c ListCmd) Validate() error {
	if err := c.Cmd.Validate(); err != nil {
		return err
	}
	switch c.View {
	case "", "active", "issued":
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
	store.SetCredExchanges(
		try.To1(gw.Credentials().ListExchanges(ctx, gateway.ExchangeFilter{})))
	store.SetConnections(try.To1(gw.Connections().List(ctx)))

	keep := func(rec gateway.CredExRecord) bool {
		switch c.View {
		case "active":
			return rec.State.Active()
		case "issued":
			return rec.State.Completed()
		}
		return true
	}

	resolver := revocation.New(gw.Revocation())
	recs := store.CredExchanges(keep)
	for _, rec := range recs {
		alias := "-"
		if conn := repo.Correlate(store, rec.ConnectionID); conn != nil {
			alias = conn.Alias
		}
		status := "-"
		if rec.State.Completed() {
			status = resolver.ResolveExchange(ctx, &rec).State.String()
		}
		cmds.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			rec.ID, rec.ThreadID, rec.Role, rec.State, alias, status)
	}
	return cmds.JSONResult{Data: recs}, nil
}

// ProposeCmd starts a new exchange as holder.
type ProposeCmd struct {
	Cmd
	ConnectionID string
	CredDefID    string
	Attrs        []string
	Comment      string
}

func (c ProposeCmd) Validate() error {
	if err := c.Cmd.Validate(); err != nil {
		return err
	}
	if c.ConnectionID == "" {
		return errors.New("connection id cannot be empty")
	}
	if c.CredDefID == "" {
		return errors.New("credential definition id cannot be empty")
	}
	if len(c.Attrs) == 0 {
		return errors.New("at least one attribute must be given")
	}
	if _, err := parseAttrs(c.Attrs); err != nil {
		return err
	}
	return nil
}

func (c ProposeCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err)

	attrs := try.To1(parseAttrs(c.Attrs))
	gw := c.Gateway()
	ctx, cancel := cmds.NewCtx()
	defer cancel()

	m, _, e := c.machine(ctx, gw)
	try.To(e)
	rec := try.To1(m.Propose(ctx, c.ConnectionID, c.CredDefID, attrs, c.Comment))
	cmds.Fprintln(w, rec.ThreadID)
	return cmds.JSONResult{Data: rec}, nil
}

func parseAttrs(in []string) ([]gateway.CredentialAttribute, error) {
	out := make([]gateway.CredentialAttribute, 0, len(in))
	for _, a := range in {
		name, value, ok := strings.Cut(a, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf(
				"%w: attribute %q is not name=value", cmds.ErrInvalid, a)
		}
		out = append(out, gateway.CredentialAttribute{Name: name, Value: value})
	}
	return out, nil
}

// OfferCmd answers a proposal as issuer.
type OfferCmd struct{ ExchangeCmd }

func (c OfferCmd) Exec(w io.Writer) (cmds.Result, error) {
	return c.exec(w, func(ctx context.Context, m *issuecredential.Machine) (interface{}, error) {
		return m.Offer(ctx, c.ID)
	})
}

// AcceptCmd accepts an offer as holder.
type AcceptCmd struct{ ExchangeCmd }

func (c AcceptCmd) Exec(w io.Writer) (cmds.Result, error) {
	return c.exec(w, func(ctx context.Context, m *issuecredential.Machine) (interface{}, error) {
		return m.AcceptOffer(ctx, c.ID)
	})
}

// IssueCmd issues the requested credential as issuer.
type IssueCmd struct {
	ExchangeCmd
	Comment string
}

func (c IssueCmd) Exec(w io.Writer) (cmds.Result, error) {
	return c.exec(w, func(ctx context.Context, m *issuecredential.Machine) (interface{}, error) {
		return m.Issue(ctx, c.ID, c.Comment)
	})
}

// StoreCmd stores a received credential into the wallet as holder.
type StoreCmd struct{ ExchangeCmd }

func (c StoreCmd) Exec(w io.Writer) (cmds.Result, error) {
	return c.exec(w, func(ctx context.Context, m *issuecredential.Machine) (interface{}, error) {
		return m.Store(ctx, c.ID)
	})
}

// AbortCmd abandons a running exchange with a problem report.
type AbortCmd struct {
	ExchangeCmd
	Reason string
}

func (c AbortCmd) Exec(w io.Writer) (cmds.Result, error) {
	return c.exec(w, func(ctx context.Context, m *issuecredential.Machine) (interface{}, error) {
		return nil, m.Abort(ctx, c.ID, c.Reason)
	})
}

// RemoveCmd deletes a completed exchange record.
type RemoveCmd struct{ ExchangeCmd }

func (c RemoveCmd) Exec(w io.Writer) (cmds.Result, error) {
	return c.exec(w, func(ctx context.Context, m *issuecredential.Machine) (interface{}, error) {
		return nil, m.DeleteCompleted(ctx, c.ID)
	})
}

// RevokeCmd revokes an issued credential as issuer.
type RevokeCmd struct{ ExchangeCmd }

func (c RevokeCmd) Exec(w io.Writer) (cmds.Result, error) {
	return c.exec(w, func(ctx context.Context, m *issuecredential.Machine) (interface{}, error) {
		return nil, m.Revoke(ctx, c.ID)
	})
}

// OwnedCmd lists the wallet credentials with their effective status.
type OwnedCmd struct {
	Cmd
}

func (c OwnedCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err)

	gw := c.Gateway()
	ctx, cancel := cmds.NewCtx()
	defer cancel()

	creds := try.To1(gw.Credentials().ListOwned(ctx))
	resolver := revocation.New(gw.Revocation())
	for _, cred := range creds {
		st := resolver.ResolveOwned(ctx, &cred)
		cmds.Fprintf(w, "%s\t%s\t%s\n",
			cred.Referent, cred.CredDefID, st.State)
	}
	return cmds.JSONResult{Data: creds}, nil
}

// RemoveOwnedCmd deletes a credential from the wallet.
type RemoveOwnedCmd struct {
	Cmd
	Referent string
}

func (c RemoveOwnedCmd) Validate() error {
	if err := c.Cmd.Validate(); err != nil {
		return err
	}
	if c.Referent == "" {
		return errors.New("credential referent cannot be empty")
	}
	return nil
}

func (c RemoveOwnedCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err)

	ctx, cancel := cmds.NewCtx()
	defer cancel()

	try.To(c.Gateway().Credentials().DeleteOwned(ctx, c.Referent))
	cmds.Fprintln(w, "removed", c.Referent)
	return cmds.JSONResult{Data: c.Referent}, nil
}
