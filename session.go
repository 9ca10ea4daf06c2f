package main

import (
	"net"
	"sync"
	"time"
)

// session is one admitted identity's transport binding (spec §3, §4.5).
// A session exists independently of whether its snake is alive —
// spectators never have a Snake at all.
type session struct {
	ID           string
	Addr         *net.UDPAddr
	LastSeen     time.Time
	Spectator    bool
	DeathPending bool // snake died this tick; one more send owed before reap
}

// SessionTable tracks identity <-> UDP endpoint bindings (spec §4.5),
// grounded on the teacher's ConnManager (connection.go) but keyed by
// identity and storing the remote address instead of a live
// *websocket.Conn, since UDP has no per-client connection object to
// hold onto.
type SessionTable struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

// NewSessionTable creates an empty table.
func NewSessionTable() *SessionTable {
	return &SessionTable{sessions: make(map[string]*session)}
}

// Admit registers identity id bound to addr, or rebinds it if already
// present (NAT rebinding, spec §4.5: "a later packet from a different
// address for the same identity updates the binding"). Returns the
// session and whether this is a brand-new identity.
func (t *SessionTable) Admit(id string, addr *net.UDPAddr, spectator bool) (*session, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if s, ok := t.sessions[id]; ok {
		s.Addr = addr
		s.LastSeen = time.Now()
		return s, false
	}
	s := &session{ID: id, Addr: addr, LastSeen: time.Now(), Spectator: spectator}
	t.sessions[id] = s
	return s, true
}

// Touch refreshes last_seen and rebinds addr for an existing identity
// (spec §4.5: any recognized packet, not just HEARTBEAT, touches the
// session). Reports false if the identity has no session yet.
func (t *SessionTable) Touch(id string, addr *net.UDPAddr) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.sessions[id]
	if !ok {
		return false
	}
	s.Addr = addr
	s.LastSeen = time.Now()
	return true
}

// Get returns the session for id, if any.
func (t *SessionTable) Get(id string) (*session, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s, ok := t.sessions[id]
	return s, ok
}

// MarkDeathPending flags id so it receives exactly one more outbound
// send (the DEAD datagram) before Server.broadcast removes it (spec
// §4.4 step 5, §4.5).
func (t *SessionTable) MarkDeathPending(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if s, ok := t.sessions[id]; ok {
		s.DeathPending = true
	}
}

// Remove deletes id's session outright (used once the death-pending
// send has gone out, or on timeout eviction).
func (t *SessionTable) Remove(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.sessions, id)
}

// Snapshot returns a stable, independently-ordered copy of all live
// sessions for the broadcast loop to range over without holding the
// table lock during network I/O.
func (t *SessionTable) Snapshot() []*session {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]*session, 0, len(t.sessions))
	for _, s := range t.sessions {
		cp := *s
		out = append(out, &cp)
	}
	return out
}

// ReapTimedOut evicts every session whose last_seen predates the given
// cutoff (spec §4.5: "idle more than SESSION_TIMEOUT seconds is
// considered disconnected"), returning the evicted identities.
func (t *SessionTable) ReapTimedOut(cutoff time.Time) []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	var reaped []string
	for id, s := range t.sessions {
		if s.LastSeen.Before(cutoff) {
			reaped = append(reaped, id)
			delete(t.sessions, id)
		}
	}
	return reaped
}
