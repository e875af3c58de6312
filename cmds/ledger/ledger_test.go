package ledger

import (
	"testing"

	"github.com/lainio/err2/assert"
	"github.com/sudoplatform-labs/sudo-di-agent-console/cmds"
)

func TestValidate(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	base := cmds.Cmd{GatewayURL: "http://localhost:8021"}
	assert.NoError(TaaShowCmd{Cmd: base}.Validate())
	assert.NoError(TaaAcceptCmd{Cmd: base, Mechanism: "on_file"}.Validate())
	assert.Error(TaaAcceptCmd{Cmd: base}.Validate())
	assert.Error(TaaAcceptCmd{Mechanism: "on_file"}.Validate())
}
