package tui

import "sync"

// session is the signed-in identity shared by every page.
type session struct {
	mu     sync.RWMutex
	userID int64
	email  string
	name   string
}

func (s *session) set(userID int64, email, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID, s.email, s.name = userID, email, name
}

func (s *session) clear() {
	s.set(0, "", "")
}

func (s *session) signedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID != 0
}

// label is the greeting shown in page headers.
func (s *session) label() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch {
	case s.userID == 0:
		return "guest"
	case s.name != "":
		return s.name
	default:
		return s.email
	}
}
