package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sudoplatform-labs/sudo-di-agent-console/agent/utils"
)

func TestBaseCmdReadsSettingsHub(t *testing.T) {
	utils.Settings.SetGatewayURL("http://agent.example.com:8021")
	utils.Settings.SetAPIKey("hub-key")

	c := baseCmd()
	assert.Equal(t, "http://agent.example.com:8021", c.GatewayURL)
	assert.Equal(t, "hub-key", c.APIKey)
}
