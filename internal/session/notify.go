package session

import "time"

// NotificationKind distinguishes success from failure notices.
type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

const (
	successNotifyTTL = 4 * time.Second
	failureNotifyTTL = 3 * time.Second
)

// Notification is a transient, auto-clearing notice shown after a refresh.
type Notification struct {
	Kind    NotificationKind `json:"kind"`
	Message string           `json:"message"`
}

// notify replaces the current notification and schedules its removal. A newer
// notification supersedes the pending clear of an older one, so notices
// replace rather than queue.
func (s *Session) notify(kind NotificationKind, message string, ttl time.Duration) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.notification = &Notification{Kind: kind, Message: message}
	s.notifySeq++
	seq := s.notifySeq
	s.mu.Unlock()

	time.AfterFunc(ttl, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.notifySeq == seq {
			s.notification = nil
		}
	})
}

// Notification returns the currently visible notification, if any.
func (s *Session) Notification() *Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notification
}
