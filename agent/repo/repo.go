/*
Package repo caches the latest records fetched from the agent. The
agent is the system of record; this cache only exists so the state
machines can validate transitions against the last known state and so
views can render without a round trip. Every successful fetch rebuilds
its whole slice: a record that stops appearing in a listing is gone for
good, which is exactly how the agent signals an aborted exchange.
*/
package repo

import (
	"sort"
	"sync"

	"github.com/sudoplatform-labs/sudo-di-agent-console/agent/gateway"
)

// Store holds the cached record sets. Each slice is only ever replaced
// wholesale by the fetch that owns it; the lock is for readers racing
// a replacement, not for record-level edits, which never happen here.
type Store struct {
	mu     sync.RWMutex
	conns  map[string]gateway.ConnectionRecord
	creds  map[string]gateway.CredExRecord
	proofs map[string]gateway.ProofExRecord
	owned  map[string]gateway.OwnedCredential
}

func NewStore() *Store {
	return &Store{
		conns:  make(map[string]gateway.ConnectionRecord),
		creds:  make(map[string]gateway.CredExRecord),
		proofs: make(map[string]gateway.ProofExRecord),
		owned:  make(map[string]gateway.OwnedCredential),
	}
}

// SetConnections replaces the cached connection set.
func (s *Store) SetConnections(recs []gateway.ConnectionRecord) {
	m := make(map[string]gateway.ConnectionRecord, len(recs))
	for _, r := range recs {
		m[r.ID] = r
	}
	s.mu.Lock()
	s.conns = m
	s.mu.Unlock()
}

// SetCredExchanges replaces the cached credential exchange set.
func (s *Store) SetCredExchanges(recs []gateway.CredExRecord) {
	m := make(map[string]gateway.CredExRecord, len(recs))
	for _, r := range recs {
		m[r.ID] = r
	}
	s.mu.Lock()
	s.creds = m
	s.mu.Unlock()
}

// SetProofExchanges replaces the cached proof exchange set.
func (s *Store) SetProofExchanges(recs []gateway.ProofExRecord) {
	m := make(map[string]gateway.ProofExRecord, len(recs))
	for _, r := range recs {
		m[r.ID] = r
	}
	s.mu.Lock()
	s.proofs = m
	s.mu.Unlock()
}

// SetOwnedCredentials replaces the cached wallet credential set.
func (s *Store) SetOwnedCredentials(recs []gateway.OwnedCredential) {
	m := make(map[string]gateway.OwnedCredential, len(recs))
	for _, r := range recs {
		m[r.Referent] = r
	}
	s.mu.Lock()
	s.owned = m
	s.mu.Unlock()
}

// Connection looks up one cached connection.
func (s *Store) Connection(id string) (gateway.ConnectionRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.conns[id]
	return r, ok
}

// CredExchange looks up one cached credential exchange.
func (s *Store) CredExchange(id string) (gateway.CredExRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.creds[id]
	return r, ok
}

// ProofExchange looks up one cached proof exchange.
func (s *Store) ProofExchange(id string) (gateway.ProofExRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.proofs[id]
	return r, ok
}

// OwnedCredential looks up one cached wallet credential.
func (s *Store) OwnedCredential(ref string) (gateway.OwnedCredential, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.owned[ref]
	return r, ok
}

// Connections returns the cached connections ordered by creation time.
func (s *Store) Connections() []gateway.ConnectionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]gateway.ConnectionRecord, 0, len(s.conns))
	for _, r := range s.conns {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt < out[j].CreatedAt
	})
	return out
}

// CredExchanges returns the cached credential exchanges, filtered by
// keep when given, ordered by creation time.
func (s *Store) CredExchanges(
	keep func(gateway.CredExRecord) bool,
) []gateway.CredExRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]gateway.CredExRecord, 0, len(s.creds))
	for _, r := range s.creds {
		if keep == nil || keep(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt < out[j].CreatedAt
	})
	return out
}

// ProofExchanges returns the cached proof exchanges, filtered by keep
// when given, ordered by creation time.
func (s *Store) ProofExchanges(
	keep func(gateway.ProofExRecord) bool,
) []gateway.ProofExRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]gateway.ProofExRecord, 0, len(s.proofs))
	for _, r := range s.proofs {
		if keep == nil || keep(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt < out[j].CreatedAt
	})
	return out
}

// OwnedCredentials returns the cached wallet credentials.
func (s *Store) OwnedCredentials() []gateway.OwnedCredential {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]gateway.OwnedCredential, 0, len(s.owned))
	for _, r := range s.owned {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Referent < out[j].Referent
	})
	return out
}
