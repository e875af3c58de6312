package pltype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCredStateViews(t *testing.T) {
	assert.True(t, CredProposalSent.Active())
	assert.True(t, CredRequestReceived.Active())
	assert.False(t, CredIssued.Active())
	assert.False(t, CredReceived.Active(), "delivered but not stored is neither view")

	assert.True(t, CredIssued.Completed())
	assert.True(t, CredAcked.Completed())
	assert.False(t, CredReceived.Completed())

	assert.True(t, CredIssued.Terminal())
	assert.True(t, CredAcked.Terminal())
	assert.False(t, CredReceived.Terminal(),
		"store and abort must stay open until the credential is stored")
	assert.False(t, CredRequestSent.Terminal())
}

func TestCredStateUnknown(t *testing.T) {
	s := CredState("some_future_state")
	assert.False(t, s.Known())
	assert.False(t, s.Active())
	assert.False(t, s.Terminal())
}

func TestProofStateViews(t *testing.T) {
	assert.True(t, ProofRequestSent.Active())
	assert.True(t, ProofPresentationReceived.Active())
	assert.False(t, ProofVerified.Active())

	assert.True(t, ProofVerified.Completed())
	assert.True(t, ProofPresentationAcked.Completed())
	assert.False(t, ProofPresentationSent.Completed())

	assert.False(t, ProofState("not_a_state").Active())
}
