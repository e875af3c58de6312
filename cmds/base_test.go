package cmds

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lainio/err2/assert"
)

func TestCmdValidate(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	assert.NoError(Cmd{GatewayURL: "http://localhost:8021"}.Validate())
	assert.NoError(Cmd{
		GatewayURL: "https://agent.example.com",
		APIKey:     "secret",
	}.Validate())

	assert.Error(Cmd{}.Validate())
	assert.Error(Cmd{GatewayURL: "not a url"}.Validate())
	assert.Error(Cmd{GatewayURL: "localhost:8021"}.Validate())
}

func TestWriteJSON(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	var buf bytes.Buffer
	r := JSONResult{Data: map[string]string{"state": "active"}}
	assert.NoError(WriteJSON(&buf, r))
	assert.That(strings.Contains(buf.String(), `"state": "active"`))
}

func TestFprintlnNilWriter(t *testing.T) {
	Fprintln(nil, "dropped")
	Fprintf(nil, "%s", "dropped")
}
