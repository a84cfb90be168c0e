package session

import "context"

// Toggle expands or collapses an account's holdings row. At most one account
// is expanded at a time: toggling the expanded account collapses it, toggling
// any other expands it and implicitly collapses the previous one. Cache
// entries survive collapse, so re-expanding an account is free.
func (s *Session) Toggle(ctx context.Context, accountID string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if s.expanded != nil && *s.expanded == accountID {
		s.expanded = nil
		s.mu.Unlock()
		return
	}
	id := accountID
	s.expanded = &id
	s.mu.Unlock()

	s.cache.EnsureLoaded(ctx, accountID, s.fetchHoldings)
}

// Expanded returns the currently expanded account id, if any.
func (s *Session) Expanded() *string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.expanded == nil {
		return nil
	}
	id := *s.expanded
	return &id
}
