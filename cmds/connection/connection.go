// Package connection has the console commands for the connection
// protocol: listing, inviting, receiving invitations and removing
// connections.
package connection

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/url"
	"strings"

	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/sudoplatform-labs/sudo-di-agent-console/agent/gateway"
	"github.com/sudoplatform-labs/sudo-di-agent-console/cmds"
)

// ListCmd lists the agent's connections.
type ListCmd struct {
	cmds.Cmd
}

func (c ListCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err)

	ctx, cancel := cmds.NewCtx()
	defer cancel()

	recs := try.To1(c.Gateway().Connections().List(ctx))
	for _, rec := range recs {
		cmds.Fprintf(w, "%s\t%s\t%s\t%s\n",
			rec.ID, rec.Alias, rec.State, rec.TheirDID)
	}
	return cmds.JSONResult{Data: recs}, nil
}

// InviteCmd creates a new invitation for a peer to connect to us.
type InviteCmd struct {
	cmds.Cmd
	Alias    string
	MultiUse bool
	Public   bool
}

func (c InviteCmd) Validate() error {
	if err := c.Cmd.Validate(); err != nil {
		return err
	}
	if c.Alias == "" {
		return errors.New("connection alias cannot be empty")
	}
	return nil
}

func (c InviteCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err)

	ctx, cancel := cmds.NewCtx()
	defer cancel()

	inv := try.To1(c.Gateway().Connections().
		CreateInvitation(ctx, c.Alias, c.MultiUse, c.Public))
	if inv.URL != "" {
		cmds.Fprintln(w, inv.URL)
	}
	return cmds.JSONResult{Data: inv}, nil
}

// ReceiveCmd accepts a peer's invitation, given either as the raw
// invitation JSON or as an invitation URL with a c_i query parameter.
type ReceiveCmd struct {
	cmds.Cmd
	Alias      string
	AutoAccept bool
	Invitation string
}

func (c ReceiveCmd) Validate() error {
	if err := c.Cmd.Validate(); err != nil {
		return err
	}
	if c.Alias == "" {
		return errors.New("connection alias cannot be empty")
	}
	if c.Invitation == "" {
		return errors.New("invitation cannot be empty")
	}
	return nil
}

func (c ReceiveCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err)

	payload := try.To1(invitationPayload(c.Invitation))

	ctx, cancel := cmds.NewCtx()
	defer cancel()

	rec := try.To1(c.Gateway().Connections().ReceiveInvitation(
		ctx, c.Alias, c.AutoAccept, &gateway.Invitation{Payload: payload}))
	cmds.Fprintln(w, rec.ID)
	return cmds.JSONResult{Data: rec}, nil
}

// invitationPayload digs the invitation JSON out of whatever form the
// user pasted.
func invitationPayload(s string) (p json.RawMessage, err error) {
	defer err2.Handle(&err, "parse invitation")

	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "{") {
		var check map[string]interface{}
		try.To(json.Unmarshal([]byte(s), &check))
		return json.RawMessage(s), nil
	}

	u := try.To1(url.Parse(s))
	ci := u.Query().Get("c_i")
	if ci == "" {
		return nil, errors.New("invitation URL has no c_i parameter")
	}
	data := try.To1(base64.URLEncoding.WithPadding(base64.NoPadding).
		DecodeString(ci))
	return json.RawMessage(data), nil
}

// RemoveCmd deletes a connection. Removal is terminal, exchanges that
// traveled over it keep working from their own records.
type RemoveCmd struct {
	cmds.Cmd
	ID string
}

func (c RemoveCmd) Validate() error {
	if err := c.Cmd.Validate(); err != nil {
		return err
	}
	if c.ID == "" {
		return errors.New("connection id cannot be empty")
	}
	return nil
}

func (c RemoveCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err)

	ctx, cancel := cmds.NewCtx()
	defer cancel()

	try.To(c.Gateway().Connections().Delete(ctx, c.ID))
	cmds.Fprintln(w, "removed", c.ID)
	return cmds.JSONResult{Data: c.ID}, nil
}
