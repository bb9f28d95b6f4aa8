package sessions

import "time"

// Session is the per-client state threaded through each request. Username is
// empty for anonymous sessions; Message and Error are one-shot flash fields;
// PendingDocument carries the target of an in-progress edit.
type Session struct {
	Token           string
	Username        string
	Message         string
	Error           string
	PendingDocument string
	ExpiresAt       time.Time
}

// Authenticated reports whether the session carries a username.
func (s *Session) Authenticated() bool {
	return s != nil && s.Username != ""
}

// SetMessage replaces any unread informational flash.
func (s *Session) SetMessage(msg string) {
	s.Message = msg
}

// SetError replaces any unread error flash.
func (s *Session) SetError(msg string) {
	s.Error = msg
}

// TakeMessage returns the informational flash and clears it, so a rendered
// page consumes the message exactly once.
func (s *Session) TakeMessage() string {
	msg := s.Message
	s.Message = ""
	return msg
}

// TakeError returns the error flash and clears it.
func (s *Session) TakeError() string {
	msg := s.Error
	s.Error = ""
	return msg
}

// Login moves the session into the authenticated state.
func (s *Session) Login(username string) {
	s.Username = username
}

// Logout clears the username, returning the session to anonymous.
func (s *Session) Logout() {
	s.Username = ""
	s.PendingDocument = ""
}

func (s *Session) clone() *Session {
	if s == nil {
		return nil
	}
	copied := *s
	return &copied
}
