package session

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Registry keeps one session per chat in a bounded LRU. Evicted sessions
// are closed so a pending attachment's preview is never leaked, even for
// chats that went quiet with an image attached.
type Registry struct {
	mu      sync.Mutex
	cache   *lru.Cache[int64, *Session]
	factory func() *Session
}

func NewRegistry(size int, factory func() *Session) (*Registry, error) {
	cache, err := lru.NewWithEvict(size, func(_ int64, s *Session) {
		s.Close()
	})
	if err != nil {
		return nil, err
	}
	return &Registry{cache: cache, factory: factory}, nil
}

// Get returns the chat's session, creating it on first contact.
func (r *Registry) Get(chatID int64) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.cache.Get(chatID); ok {
		return s
	}
	s := r.factory()
	r.cache.Add(chatID, s)
	return s
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cache.Len()
}
