package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"lacque/pkg/model"
)

var contactZero = model.Contact{}

// Session is one customer's booking attempt. It exclusively owns its
// draft; nothing outside the wizard mutates it.
type Session struct {
	ID         string             `json:"id"`
	MerchantID string             `json:"merchant_id"`
	State      State              `json:"state"`
	Draft      model.BookingDraft `json:"draft"`

	// LastResolved is the slot list shown when the customer picked a
	// time. The time gate checks against a fresh resolution, this copy
	// exists for rendering only.
	LastResolved []model.ResolvedSlot `json:"last_resolved,omitempty"`

	ContactConfirmed bool                  `json:"contact_confirmed"`
	FailureReason    model.RejectionReason `json:"failure_reason,omitempty"`
	BookingID        string                `json:"booking_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// generation invalidates in-flight submissions: Back bumps it, and a
	// submission result is applied only if the generation it captured
	// still matches.
	generation uint64
	mu         sync.Mutex
}

func newSession(merchantID, staffID string) *Session {
	now := time.Now()
	return &Session{
		ID:         uuid.New().String(),
		MerchantID: merchantID,
		State:      StateSelectingDate,
		Draft: model.BookingDraft{
			StaffID: staffID,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *Session) touch() {
	s.UpdatedAt = time.Now()
}

// copyLocked returns a detached copy safe for callers to read and
// serialize while the live session keeps changing. Caller must hold s.mu.
func (s *Session) copyLocked() *Session {
	cp := &Session{
		ID:               s.ID,
		MerchantID:       s.MerchantID,
		State:            s.State,
		Draft:            s.Draft,
		ContactConfirmed: s.ContactConfirmed,
		FailureReason:    s.FailureReason,
		BookingID:        s.BookingID,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
	if len(s.Draft.Services) > 0 {
		cp.Draft.Services = append([]model.Service(nil), s.Draft.Services...)
	}
	if len(s.LastResolved) > 0 {
		cp.LastResolved = append([]model.ResolvedSlot(nil), s.LastResolved...)
	}
	return cp
}

// SessionStore is an in-memory TTL store for wizard sessions. Sessions
// expire from last update, abandoned wizards vanish on their own.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	stopCh   chan struct{}
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	store := &SessionStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		stopCh:   make(chan struct{}),
	}

	go store.cleanup()

	return store
}

func (s *SessionStore) Get(id string) (*Session, bool) {
	s.mu.RLock()
	sess, exists := s.sessions[id]
	s.mu.RUnlock()

	if !exists {
		return nil, false
	}

	// UpdatedAt is written under the session lock, so it is read there too.
	sess.mu.Lock()
	expired := time.Since(sess.UpdatedAt) > s.ttl
	sess.mu.Unlock()

	if expired {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return nil, false
	}

	return sess, true
}

func (s *SessionStore) Put(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
}

func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

func (s *SessionStore) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			for id, sess := range s.sessions {
				sess.mu.Lock()
				expired := time.Since(sess.UpdatedAt) > s.ttl
				sess.mu.Unlock()
				if expired {
					delete(s.sessions, id)
				}
			}
			s.mu.Unlock()
		case <-s.stopCh:
			return
		}
	}
}

func (s *SessionStore) Stop() {
	close(s.stopCh)
}
