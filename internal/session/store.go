package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/leafwise/florabot/internal/domain"
)

// Store is the ordered, in-memory message log of one conversation. It is
// append-only except for attaching translations. Not safe for concurrent
// use on its own; the owning Session serializes access.
type Store struct {
	messages   []domain.Message
	index      map[string]int
	generation int
}

func NewStore() *Store {
	return &Store{index: make(map[string]int)}
}

// Append adds a message to the end of the log and returns it with its id
// and creation time filled in. An empty or colliding id is replaced with a
// fresh one; ids are time-ordered so log order matches id order.
func (s *Store) Append(msg domain.Message) domain.Message {
	if msg.ID == "" || s.has(msg.ID) {
		msg.ID = newMessageID()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	s.index[msg.ID] = len(s.messages)
	s.messages = append(s.messages, msg)
	return msg
}

func (s *Store) has(id string) bool {
	_, ok := s.index[id]
	return ok
}

// Get returns the message with the given id.
func (s *Store) Get(id string) (domain.Message, bool) {
	i, ok := s.index[id]
	if !ok {
		return domain.Message{}, false
	}
	return s.messages[i], true
}

// Messages returns a copy of the log in creation order.
func (s *Store) Messages() []domain.Message {
	out := make([]domain.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Store) Len() int {
	return len(s.messages)
}

// HistorySnapshot maps the log to the (role, text) payload sent to the
// backend as prior context. Only canonical text is included: translations
// never reach the backend.
func (s *Store) HistorySnapshot() []domain.Turn {
	turns := make([]domain.Turn, len(s.messages))
	for i, m := range s.messages {
		turns[i] = domain.Turn{Role: m.Sender.Role(), Text: m.Text}
	}
	return turns
}

// AttachTranslation sets the translation of the target message,
// overwriting any previous value (last write wins).
func (s *Store) AttachTranslation(id, text string) error {
	i, ok := s.index[id]
	if !ok {
		return domain.ErrMessageNotFound
	}
	s.messages[i].Translation = text
	return nil
}

// Reset empties the log. Invoked on mode switches and landing navigation.
func (s *Store) Reset() {
	s.messages = nil
	s.index = make(map[string]int)
	s.generation++
}

// Generation counts resets. A caller that resumes after a suspension can
// compare generations to detect that the conversation it was working on is
// gone.
func (s *Store) Generation() int {
	return s.generation
}

// newMessageID returns a unique, creation-time-ordered id (UUIDv7).
func newMessageID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
