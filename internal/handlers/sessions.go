package handlers

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/draftkit/valuation-api/internal/logic"
	"github.com/draftkit/valuation-api/internal/models"
	"github.com/draftkit/valuation-api/internal/sources"
)

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = errors.New("session not found")

// Session is one drafter's valuation inputs.
type Session struct {
	ID                      uuid.UUID
	Tables                  map[string]models.ProjectionTable
	ADP                     []models.ADPEntry
	Drafted                 []string
	LeagueSize              int
	IncludeZeroPointPlayers *bool
	CreatedAt               time.Time
	UpdatedAt               time.Time
	// LastSeen is the last read or write; the idle TTL counts from it.
	LastSeen time.Time
}

// Inputs builds a valuation pass from the session, tables in load order.
func (s *Session) Inputs() logic.Inputs {
	in := logic.Inputs{
		ADP:                     s.ADP,
		Drafted:                 s.Drafted,
		LeagueSize:              s.LeagueSize,
		IncludeZeroPointPlayers: s.IncludeZeroPointPlayers,
	}
	for _, name := range sources.ProjectionTables {
		if t, ok := s.Tables[name]; ok {
			in.Tables = append(in.Tables, t)
		}
	}
	return in
}

// Summary describes the session's contents.
func (s *Session) Summary() models.SessionSummary {
	tables := make(map[string]int, len(s.Tables))
	for name, t := range s.Tables {
		tables[name] = len(t.Records)
	}
	return models.SessionSummary{
		SessionID:               s.ID.String(),
		Tables:                  tables,
		ADPRows:                 len(s.ADP),
		Drafted:                 len(s.Drafted),
		LeagueSize:              s.LeagueSize,
		IncludeZeroPointPlayers: s.IncludeZeroPointPlayers,
		CreatedAt:               s.CreatedAt,
		UpdatedAt:               s.UpdatedAt,
	}
}

func (s *Session) clone() *Session {
	c := *s
	c.Tables = make(map[string]models.ProjectionTable, len(s.Tables))
	for k, v := range s.Tables {
		c.Tables[k] = v
	}
	c.Drafted = append([]string(nil), s.Drafted...)
	return &c
}

// SessionStore holds sessions in memory. Sessions neither read nor written
// within the TTL are dropped by Sweep.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionStore creates an empty store. A ttl <= 0 keeps sessions forever.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{sessions: make(map[uuid.UUID]*Session), ttl: ttl, now: time.Now}
}

// Create stores a new session seeded from set.
func (st *SessionStore) Create(set *sources.TableSet, leagueSize int, includeZero *bool) *Session {
	now := st.now()
	s := &Session{
		ID:                      uuid.New(),
		Tables:                  make(map[string]models.ProjectionTable),
		LeagueSize:              leagueSize,
		IncludeZeroPointPlayers: includeZero,
		CreatedAt:               now,
		UpdatedAt:               now,
		LastSeen:                now,
	}
	if set != nil {
		for _, t := range set.Tables {
			s.Tables[t.Name] = t
		}
		s.ADP = set.ADP
	}

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s.clone()
}

// Get returns a copy of the session and resets its idle clock.
func (st *SessionStore) Get(id uuid.UUID) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok || st.expired(s) {
		return nil, ErrSessionNotFound
	}
	s.LastSeen = st.now()
	return s.clone(), nil
}

// Update applies fn to the stored session under the store lock.
func (st *SessionStore) Update(id uuid.UUID, fn func(s *Session)) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok || st.expired(s) {
		return nil, ErrSessionNotFound
	}
	fn(s)
	s.UpdatedAt = st.now()
	s.LastSeen = s.UpdatedAt
	return s.clone(), nil
}

// Delete removes a session.
func (st *SessionStore) Delete(id uuid.UUID) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(st.sessions, id)
	return nil
}

// Sweep drops expired sessions and returns how many were removed.
func (st *SessionStore) Sweep() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	n := 0
	for id, s := range st.sessions {
		if st.expired(s) {
			delete(st.sessions, id)
			n++
		}
	}
	return n
}

// Len returns the number of stored sessions.
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

func (st *SessionStore) expired(s *Session) bool {
	return st.ttl > 0 && st.now().Sub(s.LastSeen) > st.ttl
}

// normalizeDrafted trims, drops blanks and dedupes, keeping first-seen order.
func normalizeDrafted(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = trimName(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// unknownNames lists names absent from the valued pool, sorted.
func unknownNames(names []string, pool []models.ValuedPlayer) []string {
	known := make(map[string]bool, len(pool))
	for _, p := range pool {
		known[p.Name] = true
	}
	unknown := []string{}
	for _, n := range names {
		if !known[n] {
			unknown = append(unknown, n)
		}
	}
	sort.Strings(unknown)
	return unknown
}
