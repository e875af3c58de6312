package repo

import "github.com/sudoplatform-labs/sudo-di-agent-console/agent/gateway"

// Correlate joins an exchange to the connection it travels over. A nil
// result is normal, not a failure: the exchange may be connectionless,
// the connection listing may simply not have caught up yet, or the
// connection may have been deleted after the exchange was created. The
// caller renders a missing-connection placeholder and the next poll
// gets another chance.
func Correlate(
	s *Store,
	connectionID string,
) *gateway.ConnectionRecord {
	if connectionID == "" {
		return nil
	}
	r, ok := s.Connection(connectionID)
	if !ok {
		return nil
	}
	return &r
}
