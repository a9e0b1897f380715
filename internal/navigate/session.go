package navigate

import "sync"

// Session records which kernel card the user last pointed at. The most
// recent selection wins; there is no history. Interaction is single-user
// and single-pointer, the mutex only guards against UI event handlers and
// background refreshes touching the field at once.
type Session struct {
	mu       sync.Mutex
	selected string
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{}
}

// Select records the display name of the kernel card under the pointer.
func (s *Session) Select(displayName string) {
	s.mu.Lock()
	s.selected = displayName
	s.mu.Unlock()
}

// Selected returns the most recently selected kernel display name, or
// ErrNoSelection when nothing has been selected yet.
func (s *Session) Selected() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == "" {
		return "", ErrNoSelection
	}
	return s.selected, nil
}
