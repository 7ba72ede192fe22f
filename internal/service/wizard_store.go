package service

import (
	"sync"

	"github.com/google/uuid"

	"github.com/you/padel-booking/internal/domain"
)

// WizardStore keeps in-flight wizard sessions in memory. Sessions are cheap
// and abandonable; an abandoned one simply never reaches AttemptBooking.
type WizardStore struct {
	mu       sync.Mutex
	sessions map[string]*Wizard
}

func NewWizardStore() *WizardStore {
	return &WizardStore{sessions: make(map[string]*Wizard)}
}

func (s *WizardStore) Create(bookings *BookingSvc, userID string) (string, *Wizard) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	w := NewWizard(bookings, userID)
	s.sessions[id] = w
	return id, w
}

func (s *WizardStore) Get(id, userID string) (*Wizard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if w.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return w, nil
}

func (s *WizardStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}
