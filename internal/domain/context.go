package domain

// Mode is a topical conversation variant. Selecting a mode starts a fresh
// conversation with its own system instruction.
type Mode string

const (
	ModeIdentify Mode = "identify"
	ModeDiagnose Mode = "diagnose"
	ModeCare     Mode = "care"
	ModeExpert   Mode = "expert"
)

// Modes lists all selectable modes in menu order.
var Modes = []Mode{ModeIdentify, ModeDiagnose, ModeCare, ModeExpert}

func (m Mode) Valid() bool {
	switch m {
	case ModeIdentify, ModeDiagnose, ModeCare, ModeExpert:
		return true
	}
	return false
}

// Language selects which instruction variant is used for generation and
// which target the per-message translation overlay requests.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageSpanish Language = "es"
)

var Languages = []Language{LanguageEnglish, LanguageSpanish}

// Other returns the counterpart language, the translation target while this
// language is selected.
func (l Language) Other() Language {
	if l == LanguageSpanish {
		return LanguageEnglish
	}
	return LanguageSpanish
}

// View is the coarse navigation state: the landing menu or an active
// conversation.
type View string

const (
	ViewLanding      View = "landing"
	ViewConversation View = "conversation"
)
