package session

import "github.com/leafwise/florabot/internal/domain"

// Controller is the mode/context state machine: {landing, conversation}
// crossed with the mode set. Every transition into a conversation (or back
// to landing) resets the store; each mode is a fresh conversation.
// Language changes never touch history.
type Controller struct {
	store    *Store
	view     domain.View
	mode     domain.Mode
	language domain.Language
}

func NewController(store *Store) *Controller {
	return &Controller{
		store:    store,
		view:     domain.ViewLanding,
		language: domain.LanguageEnglish,
	}
}

func (c *Controller) View() domain.View         { return c.view }
func (c *Controller) Mode() domain.Mode         { return c.mode }
func (c *Controller) Language() domain.Language { return c.language }

// SelectMode enters a conversation from the landing view.
func (c *Controller) SelectMode(m domain.Mode) {
	c.view = domain.ViewConversation
	c.mode = m
	c.store.Reset()
}

// Navigate switches modes within a conversation. Re-navigating to the
// current mode is a no-op: no history is lost.
func (c *Controller) Navigate(m domain.Mode) {
	if c.view == domain.ViewLanding {
		c.SelectMode(m)
		return
	}
	if m == c.mode {
		return
	}
	c.mode = m
	c.store.Reset()
}

// NavigateLanding returns to the landing view and clears the conversation.
func (c *Controller) NavigateLanding() {
	c.view = domain.ViewLanding
	c.store.Reset()
}

// SetLanguage changes only which instruction variant and translation target
// are used from now on. No reset, no history mutation.
func (c *Controller) SetLanguage(l domain.Language) {
	c.language = l
}

// TranslationTarget is the language the overlay translates into: always the
// counterpart of the currently selected language, since canonical text is
// already generated in the selected one.
func (c *Controller) TranslationTarget() domain.Language {
	return c.language.Other()
}
