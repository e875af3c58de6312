// Package completionhelp feeds shell completion with the console's
// known value sets.
package completionhelp

import "github.com/sudoplatform-labs/sudo-di-agent-console/agent/pltype"

// WatchViews are the --view values follow mode accepts.
func WatchViews() []string {
	return []string{
		pltype.ViewConnections.String(),
		pltype.ViewCredActive.String(),
		pltype.ViewCredIssued.String(),
		pltype.ViewProofActive.String(),
		pltype.ViewProofCompleted.String(),
	}
}

// CredViews are the credential listing partitions.
func CredViews() []string {
	return []string{"active", "issued"}
}

// ProofViews are the proof listing partitions.
func ProofViews() []string {
	return []string{"active", "completed"}
}
