package watch

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/lainio/err2/assert"
	"github.com/sudoplatform-labs/sudo-di-agent-console/agent/gateway"
	"github.com/sudoplatform-labs/sudo-di-agent-console/agent/gateway/fake"
	"github.com/sudoplatform-labs/sudo-di-agent-console/agent/pltype"
	"github.com/sudoplatform-labs/sudo-di-agent-console/cmds"
)

func TestValidate(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	base := cmds.Cmd{GatewayURL: "http://localhost:8021"}
	assert.NoError(Cmd{Cmd: base}.Validate())
	assert.NoError(Cmd{Cmd: base, Views: []string{"connections"}}.Validate())
	assert.Error(Cmd{Cmd: base, Views: []string{"everything"}}.Validate())
	assert.Error(Cmd{Views: []string{"connections"}}.Validate())
}

func TestSelected(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	assert.SLen(Cmd{}.selected(), len(allViews))
	only := Cmd{Views: []string{"proofs-active"}}.selected()
	assert.SLen(only, 1)
	assert.Equal(only[0], pltype.ViewProofActive)
}

func TestFollowerDiffs(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	a := fake.New()
	a.Conns["conn-1"] = gateway.ConnectionRecord{
		ID: "conn-1", Alias: "faber", State: pltype.ConnRequest,
	}

	var buf bytes.Buffer
	f := newFollower(a, &buf)
	fetch := f.fetcher(pltype.ViewConnections)
	ctx := context.Background()

	assert.NoError(fetch(ctx))
	assert.That(strings.HasPrefix(buf.String(), "+ connections\tconn-1"))

	// unchanged snapshot renders nothing
	buf.Reset()
	assert.NoError(fetch(ctx))
	assert.Equal(buf.String(), "")

	// state moves
	a.Conns["conn-1"] = gateway.ConnectionRecord{
		ID: "conn-1", Alias: "faber", State: pltype.ConnActive,
	}
	buf.Reset()
	assert.NoError(fetch(ctx))
	assert.That(strings.HasPrefix(buf.String(), "~ connections\tconn-1"))

	// deletion
	delete(a.Conns, "conn-1")
	buf.Reset()
	assert.NoError(fetch(ctx))
	assert.That(strings.HasPrefix(buf.String(), "- connections\tconn-1"))
}

func TestFollowerFiltersCredViews(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	a := fake.New()
	a.Conns["conn-1"] = gateway.ConnectionRecord{ID: "conn-1", Alias: "faber"}
	a.Creds["ex-active"] = gateway.CredExRecord{
		ID: "ex-active", Role: pltype.RoleIssuer,
		State: pltype.CredOfferSent, ConnectionID: "conn-1",
	}
	a.Creds["ex-done"] = gateway.CredExRecord{
		ID: "ex-done", Role: pltype.RoleIssuer,
		State: pltype.CredAcked, ConnectionID: "conn-1",
	}

	var buf bytes.Buffer
	f := newFollower(a, &buf)
	ctx := context.Background()

	assert.NoError(f.fetchConnections(ctx))
	buf.Reset()
	assert.NoError(f.fetcher(pltype.ViewCredActive)(ctx))
	out := buf.String()
	assert.That(strings.Contains(out, "ex-active"))
	assert.That(!strings.Contains(out, "ex-done"))
	assert.That(strings.Contains(out, "faber"), "alias joined from cache")

	buf.Reset()
	assert.NoError(f.fetcher(pltype.ViewCredIssued)(ctx))
	out = buf.String()
	assert.That(strings.Contains(out, "ex-done"))
	assert.That(!strings.Contains(out, "ex-active"))
}
