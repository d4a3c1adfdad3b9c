package service

import (
	"fmt"
	"sync"

	"haus-finance/domain"
	"haus-finance/finance"
)

// ThemeStore holds the process-wide theme preference. Subscribers receive
// every change; a slow subscriber only ever sees the latest theme.
type ThemeStore struct {
	mu      sync.Mutex
	current domain.Theme
	nextID  int
	subs    map[int]chan domain.Theme
}

func NewThemeStore(initial domain.Theme) *ThemeStore {
	if !initial.Valid() {
		initial = domain.ThemeSystem
	}
	return &ThemeStore{
		current: initial,
		subs:    make(map[int]chan domain.Theme),
	}
}

func (s *ThemeStore) Current() domain.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Set changes the theme and notifies subscribers. Setting the current theme
// again still notifies.
func (s *ThemeStore) Set(theme domain.Theme) error {
	if !theme.Valid() {
		return &finance.ValidationError{Field: "theme", Message: fmt.Sprintf("unknown theme %q", theme)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = theme
	for _, ch := range s.subs {
		// drop the stale value so the newest one fits
		select {
		case <-ch:
		default:
		}
		ch <- theme
	}
	return nil
}

// Subscribe returns a channel of theme changes and a cancel func that must be
// called to release it. The channel is closed on cancel.
func (s *ThemeStore) Subscribe() (<-chan domain.Theme, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan domain.Theme, 1)
	s.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

// Subscribers reports the number of live subscriptions.
func (s *ThemeStore) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}
