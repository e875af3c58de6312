/*
Package cmds implements the console commands as data: a command is a
struct carrying its arguments, validated before execution, executed
against the agent gateway with results written to the given writer.
The cobra layer in cmd/ only parses flags into these structs; every
piece of behavior lives here where tests can drive it directly.
*/
package cmds

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/sudoplatform-labs/sudo-di-agent-console/agent/gateway"
	"github.com/sudoplatform-labs/sudo-di-agent-console/agent/utils"
)

// ErrInvalid is returned by Validate for commands whose arguments
// cannot work.
var ErrInvalid = errors.New("invalid command, check arguments")

// Result is what a command execution produced.
type Result interface {
	JSON() ([]byte, error)
}

// Command is the console command interface.
type Command interface {
	Validate() error
	Exec(w io.Writer) (Result, error)
}

// Cmd is the part every command shares: where the agent is and how to
// authenticate to it.
type Cmd struct {
	GatewayURL string `cmd_usage:"agent admin API URL is required"`
	APIKey     string
}

func (c Cmd) Validate() error {
	if c.GatewayURL == "" {
		return errors.New("agent admin API URL cannot be empty")
	}
	u, err := url.Parse(c.GatewayURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: bad agent URL %q", ErrInvalid, c.GatewayURL)
	}
	return nil
}

// Gateway builds the client for this command's agent.
func (c Cmd) Gateway() gateway.Gateway {
	return gateway.New(c.GatewayURL, c.APIKey)
}

// NewCtx returns the bounded context every gateway call runs under.
func NewCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), utils.Settings.Timeout())
}

// JSONResult wraps any marshalable payload as a command result.
type JSONResult struct {
	Data interface{}
}

func (r JSONResult) JSON() ([]byte, error) {
	return json.MarshalIndent(r.Data, "", "  ")
}

// Fprintln is fmt.Fprintln but allows the writer to be nil. Note! it
// throws the write error.
func Fprintln(w io.Writer, a ...interface{}) {
	if w != nil {
		try.To1(fmt.Fprintln(w, a...))
	}
}

// Fprintf is fmt.Fprintf but allows the writer to be nil. Note! it
// throws the write error.
func Fprintf(w io.Writer, format string, a ...interface{}) {
	if w != nil {
		try.To1(fmt.Fprintf(w, format, a...))
	}
}

// WriteJSON writes a result's JSON form to w.
func WriteJSON(w io.Writer, r Result) (err error) {
	defer err2.Handle(&err)

	data := try.To1(r.JSON())
	Fprintln(w, string(data))
	return nil
}
