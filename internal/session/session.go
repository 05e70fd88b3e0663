package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/leafwise/florabot/internal/domain"
)

// Generator is the backend collaborator. Its output is opaque text; errors
// are only ever "it failed" to the engine.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
	Translate(ctx context.Context, text string, target domain.Language) (string, error)
}

// GenerateRequest is the assembled outbound payload for one turn.
type GenerateRequest struct {
	Mode        domain.Mode
	Language    domain.Language
	Instruction string
	History     []domain.Turn
	Text        string
	ImageMIME   string
	ImageData   []byte
}

// Instructions is the mode/language lookup table, configuration owned
// outside the engine.
type Instructions interface {
	Instruction(m domain.Mode, l domain.Language) string
	Fallback(l domain.Language) string
}

// Session owns one conversation: the message store, the pending
// attachment, the mode/context controller and the translation overlay.
// All operations are serialized by the session mutex; the backend calls
// are the only points where it is not held.
type Session struct {
	mu           sync.Mutex
	store        *Store
	attachments  *Attachments
	controller   *Controller
	backend      Generator
	instructions Instructions

	inFlight           bool
	visibleTranslation map[string]bool
	pendingTranslation string
}

// New creates a session in the landing view with an empty log. previewDir
// is where attachment previews are written ("" means the system temp dir).
func New(backend Generator, instructions Instructions, previewDir string) *Session {
	store := NewStore()
	return &Session{
		store:              store,
		attachments:        NewAttachments(previewDir),
		controller:         NewController(store),
		backend:            backend,
		instructions:       instructions,
		visibleTranslation: make(map[string]bool),
	}
}

// SendResult carries the two messages appended by one send: the optimistic
// user turn and the bot reply (generated text or the fixed fallback).
type SendResult struct {
	User domain.Message
	Bot  domain.Message
}

// Send runs one conversation turn. The user message is appended before the
// backend call resolves; exactly one bot message follows it, the fallback
// notice when generation fails. The pending attachment is consumed only
// after the outbound payload has been assembled. If the conversation is
// reset while the call is in flight, the reply is dropped with
// ErrConversationReset instead of being appended.
func (s *Session) Send(ctx context.Context, text string) (SendResult, error) {
	s.mu.Lock()

	text = strings.TrimSpace(text)
	att := s.attachments.Current()
	if text == "" && att == nil {
		s.mu.Unlock()
		return SendResult{}, domain.ErrEmptyMessage
	}
	if s.inFlight {
		s.mu.Unlock()
		return SendResult{}, domain.ErrRequestInFlight
	}
	s.inFlight = true

	mode := s.controller.Mode()
	language := s.controller.Language()

	req := GenerateRequest{
		Mode:        mode,
		Language:    language,
		Instruction: s.instructions.Instruction(mode, language),
		History:     s.store.HistorySnapshot(),
		Text:        text,
	}

	userMsg := domain.Message{Sender: domain.SenderUser, Text: text}
	if att != nil {
		req.ImageMIME = att.MIMEType
		req.ImageData = att.Data
		userMsg.Image = att.DataURI()
	}
	userMsg = s.store.Append(userMsg)
	generation := s.store.Generation()

	// The snapshot is taken; the attachment never survives a send.
	s.attachments.Clear()
	s.mu.Unlock()

	reply, err := s.backend.Generate(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false

	// The conversation may have been reset while the call was in flight.
	// The reply belongs to the old conversation and must not leak into
	// the fresh one.
	if s.store.Generation() != generation {
		return SendResult{}, domain.ErrConversationReset
	}

	botMsg := domain.Message{Sender: domain.SenderBot, Text: reply}
	if err != nil {
		botMsg.Text = s.instructions.Fallback(language)
	}
	botMsg = s.store.Append(botMsg)

	return SendResult{User: userMsg, Bot: botMsg}, nil
}

// TranslateResult reports what the caller should now display for the
// message: its translation or its original text.
type TranslateResult struct {
	Message            domain.Message
	Text               string
	ShowingTranslation bool
}

// Translate toggles the translation overlay of one message. A cached
// translation toggles without a backend call; at most one translation
// request is outstanding at a time, concurrent ones are rejected. A failed
// translation leaves the original visible and inserts nothing into the log.
func (s *Session) Translate(ctx context.Context, id string) (TranslateResult, error) {
	s.mu.Lock()

	msg, ok := s.store.Get(id)
	if !ok {
		s.mu.Unlock()
		return TranslateResult{}, domain.ErrMessageNotFound
	}
	if s.visibleTranslation[id] {
		delete(s.visibleTranslation, id)
		s.mu.Unlock()
		return TranslateResult{Message: msg, Text: msg.Text, ShowingTranslation: false}, nil
	}
	if msg.HasTranslation() {
		s.visibleTranslation[id] = true
		s.mu.Unlock()
		return TranslateResult{Message: msg, Text: msg.Translation, ShowingTranslation: true}, nil
	}
	if s.pendingTranslation != "" {
		s.mu.Unlock()
		return TranslateResult{}, domain.ErrTranslationPending
	}
	s.pendingTranslation = id
	target := s.controller.TranslationTarget()
	text := msg.Text
	s.mu.Unlock()

	translated, err := s.backend.Translate(ctx, text, target)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingTranslation = ""

	if err != nil {
		return TranslateResult{}, fmt.Errorf("%w: %v", domain.ErrTranslationFailed, err)
	}
	// The conversation may have been reset while the call was in flight.
	if err := s.store.AttachTranslation(id, translated); err != nil {
		return TranslateResult{}, err
	}
	s.visibleTranslation[id] = true
	msg, _ = s.store.Get(id)
	return TranslateResult{Message: msg, Text: msg.Translation, ShowingTranslation: true}, nil
}

// Attach routes a captured image into the attachment manager.
func (s *Session) Attach(data []byte, mimeType, name string) (*PendingAttachment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attachments.Attach(data, mimeType, name)
}

// ClearAttachment discards the pending attachment, if any.
func (s *Session) ClearAttachment() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attachments.Clear()
}

// CurrentAttachment peeks at the pending attachment without side effects.
func (s *Session) CurrentAttachment() *PendingAttachment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attachments.Current()
}

// Messages returns the conversation log in creation order.
func (s *Session) Messages() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Messages()
}

func (s *Session) View() domain.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller.View()
}

func (s *Session) Mode() domain.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller.Mode()
}

func (s *Session) Language() domain.Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller.Language()
}

// SelectMode enters a conversation from landing and starts it fresh.
func (s *Session) SelectMode(m domain.Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controller.SelectMode(m)
	s.resetOverlay()
}

// Navigate switches modes within a conversation; same-mode navigation
// keeps the history.
func (s *Session) Navigate(m domain.Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.controller.View() == domain.ViewConversation && m == s.controller.Mode() {
		return
	}
	s.controller.Navigate(m)
	s.resetOverlay()
}

// NavigateLanding returns to the landing menu, clearing the conversation.
func (s *Session) NavigateLanding() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controller.NavigateLanding()
	s.resetOverlay()
}

// SetLanguage switches the generation/translation language going forward.
// Already-attached translations are retained as-is.
func (s *Session) SetLanguage(l domain.Language) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controller.SetLanguage(l)
}

// resetOverlay drops overlay visibility for ids that no longer exist.
// Called with the mutex held after any store reset.
func (s *Session) resetOverlay() {
	s.visibleTranslation = make(map[string]bool)
}

// Close releases session resources; used when a session is evicted.
func (s *Session) Close() {
	s.ClearAttachment()
}
