// Package ledger passes transaction author agreement handling through
// to the agent. Nothing here touches the exchange state machines.
package ledger

import (
	"errors"
	"io"

	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/sudoplatform-labs/sudo-di-agent-console/agent/gateway"
	"github.com/sudoplatform-labs/sudo-di-agent-console/cmds"
)

// TaaShowCmd prints the ledger's transaction author agreement.
type TaaShowCmd struct {
	cmds.Cmd
}

func (c TaaShowCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err)

	ctx, cancel := cmds.NewCtx()
	defer cancel()

	taa := try.To1(c.Gateway().Ledger().TAA(ctx))
	if !taa.Required {
		cmds.Fprintln(w, "no TAA required")
	} else {
		cmds.Fprintf(w, "version %s\n%s\n", taa.Version, taa.Text)
	}
	return cmds.JSONResult{Data: taa}, nil
}

// TaaAcceptCmd accepts the current transaction author agreement.
type TaaAcceptCmd struct {
	cmds.Cmd
	Mechanism string
}

func (c TaaAcceptCmd) Validate() error {
	if err := c.Cmd.Validate(); err != nil {
		return err
	}
	if c.Mechanism == "" {
		return errors.New("acceptance mechanism cannot be empty")
	}
	return nil
}

func (c TaaAcceptCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err)

	ctx, cancel := cmds.NewCtx()
	defer cancel()

	gw := c.Gateway()
	taa := try.To1(gw.Ledger().TAA(ctx))
	if !taa.Required {
		cmds.Fprintln(w, "no TAA required")
		return cmds.JSONResult{Data: taa}, nil
	}

	acceptance := gateway.TAAAcceptance{
		Text:      taa.Text,
		Version:   taa.Version,
		Mechanism: c.Mechanism,
	}
	try.To(gw.Ledger().AcceptTAA(ctx, acceptance))
	cmds.Fprintln(w, "accepted TAA version", taa.Version)
	return cmds.JSONResult{Data: acceptance}, nil
}
