package connection

import (
	"encoding/base64"
	"testing"

	"github.com/lainio/err2/assert"
	"github.com/sudoplatform-labs/sudo-di-agent-console/cmds"
)

var base = cmds.Cmd{GatewayURL: "http://localhost:8021"}

func TestValidate(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	assert.NoError(InviteCmd{Cmd: base, Alias: "faber"}.Validate())
	assert.Error(InviteCmd{Cmd: base}.Validate())

	assert.NoError(ReceiveCmd{
		Cmd: base, Alias: "faber", Invitation: `{"@type":"invitation"}`,
	}.Validate())
	assert.Error(ReceiveCmd{Cmd: base, Alias: "faber"}.Validate())
	assert.Error(ReceiveCmd{Cmd: base, Invitation: "{}"}.Validate())

	assert.NoError(RemoveCmd{Cmd: base, ID: "conn-1"}.Validate())
	assert.Error(RemoveCmd{Cmd: base}.Validate())
}

func TestInvitationPayload(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	raw := `{"@type":"invitation","label":"faber"}`
	p, err := invitationPayload(raw)
	assert.NoError(err)
	assert.Equal(string(p), raw)

	ci := base64.URLEncoding.WithPadding(base64.NoPadding).
		EncodeToString([]byte(raw))
	p, err = invitationPayload("http://agent.example.com/invite?c_i=" + ci)
	assert.NoError(err)
	assert.Equal(string(p), raw)

	_, err = invitationPayload("http://agent.example.com/invite")
	assert.Error(err)
	_, err = invitationPayload("{broken json")
	assert.Error(err)
	_, err = invitationPayload("http://agent.example.com/invite?c_i=%%%")
	assert.Error(err)
}
