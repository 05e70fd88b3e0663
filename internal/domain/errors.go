package domain

import "errors"

var (
	ErrUnsupportedType    = errors.New("attachment is not an image")
	ErrMessageNotFound    = errors.New("message not found")
	ErrEmptyMessage       = errors.New("empty message")
	ErrRequestInFlight    = errors.New("request already in flight")
	ErrConversationReset  = errors.New("conversation was reset")
	ErrTranslationPending = errors.New("another translation is pending")
	ErrGenerationFailed   = errors.New("generation failed")
	ErrTranslationFailed  = errors.New("translation failed")
)
