package credential

import (
	"testing"

	"github.com/lainio/err2/assert"
	"github.com/sudoplatform-labs/sudo-di-agent-console/cmds"
)

var base = Cmd{Cmd: cmds.Cmd{GatewayURL: "http://localhost:8021"}}

func TestValidate(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	assert.NoError(ListCmd{Cmd: base}.Validate())
	assert.NoError(ListCmd{Cmd: base, View: "active"}.Validate())
	assert.NoError(ListCmd{Cmd: base, View: "issued"}.Validate())
	assert.Error(ListCmd{Cmd: base, View: "everything"}.Validate())

	propose := ProposeCmd{
		Cmd:          base,
		ConnectionID: "conn-1",
		CredDefID:    "cred-def-1",
		Attrs:        []string{"email=a@b.c"},
	}
	assert.NoError(propose.Validate())

	missing := propose
	missing.ConnectionID = ""
	assert.Error(missing.Validate())
	missing = propose
	missing.CredDefID = ""
	assert.Error(missing.Validate())
	missing = propose
	missing.Attrs = nil
	assert.Error(missing.Validate())
	missing = propose
	missing.Attrs = []string{"no-separator"}
	assert.Error(missing.Validate())

	assert.NoError(ExchangeCmd{Cmd: base, ID: "ex-1"}.Validate())
	assert.Error(ExchangeCmd{Cmd: base}.Validate())

	assert.NoError(RemoveOwnedCmd{Cmd: base, Referent: "cred-1"}.Validate())
	assert.Error(RemoveOwnedCmd{Cmd: base}.Validate())
}

func TestParseAttrs(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	attrs, err := parseAttrs([]string{"email=a@b.c", "score=7=ish"})
	assert.NoError(err)
	assert.SLen(attrs, 2)
	assert.Equal(attrs[0].Name, "email")
	assert.Equal(attrs[0].Value, "a@b.c")
	assert.Equal(attrs[1].Value, "7=ish")

	_, err = parseAttrs([]string{"=value"})
	assert.Error(err)
	_, err = parseAttrs([]string{"plain"})
	assert.Error(err)
}
