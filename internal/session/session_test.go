package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leafwise/florabot/internal/domain"
)

type fakeBackend struct {
	generate  func(ctx context.Context, req GenerateRequest) (string, error)
	translate func(ctx context.Context, text string, target domain.Language) (string, error)
}

func (f *fakeBackend) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	if f.generate == nil {
		return "reply", nil
	}
	return f.generate(ctx, req)
}

func (f *fakeBackend) Translate(ctx context.Context, text string, target domain.Language) (string, error) {
	if f.translate == nil {
		return "translated", nil
	}
	return f.translate(ctx, text, target)
}

type fakeInstructions struct{}

func (fakeInstructions) Instruction(m domain.Mode, l domain.Language) string {
	return string(m) + "/" + string(l)
}

func (fakeInstructions) Fallback(l domain.Language) string {
	return "fallback " + string(l)
}

func newTestSession(t *testing.T, backend Generator) *Session {
	t.Helper()
	s := New(backend, fakeInstructions{}, t.TempDir())
	s.SelectMode(domain.ModeExpert)
	return s
}

func TestSendAppendsUserAndBotMessages(t *testing.T) {
	s := newTestSession(t, &fakeBackend{})

	result, err := s.Send(context.Background(), "  how often to water a fern?  ")
	require.NoError(t, err)

	assert.Equal(t, "how often to water a fern?", result.User.Text)
	assert.Equal(t, domain.SenderUser, result.User.Sender)
	assert.Equal(t, "reply", result.Bot.Text)
	assert.Equal(t, domain.SenderBot, result.Bot.Sender)

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, result.User.ID, msgs[0].ID)
	assert.Equal(t, result.Bot.ID, msgs[1].ID)
}

func TestSendEmptyMessage(t *testing.T) {
	s := newTestSession(t, &fakeBackend{})

	_, err := s.Send(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrEmptyMessage)
	assert.Empty(t, s.Messages())
}

func TestSendHistoryExcludesCurrentTurn(t *testing.T) {
	var captured []GenerateRequest
	backend := &fakeBackend{
		generate: func(_ context.Context, req GenerateRequest) (string, error) {
			captured = append(captured, req)
			return "reply", nil
		},
	}
	s := newTestSession(t, backend)

	_, err := s.Send(context.Background(), "first")
	require.NoError(t, err)
	_, err = s.Send(context.Background(), "second")
	require.NoError(t, err)

	require.Len(t, captured, 2)
	assert.Empty(t, captured[0].History)
	require.Len(t, captured[1].History, 2)
	assert.Equal(t, domain.Turn{Role: "user", Text: "first"}, captured[1].History[0])
	assert.Equal(t, domain.Turn{Role: "model", Text: "reply"}, captured[1].History[1])
	assert.Equal(t, "second", captured[1].Text)
}

func TestSendGenerationFailureAppendsFallback(t *testing.T) {
	backend := &fakeBackend{
		generate: func(context.Context, GenerateRequest) (string, error) {
			return "", errors.New("boom")
		},
	}
	s := newTestSession(t, backend)

	result, err := s.Send(context.Background(), "hello")
	require.NoError(t, err)

	assert.Equal(t, "fallback en", result.Bot.Text)
	assert.Len(t, s.Messages(), 2)
}

func TestSendRejectsConcurrentRequest(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	backend := &fakeBackend{
		generate: func(context.Context, GenerateRequest) (string, error) {
			close(entered)
			<-release
			return "reply", nil
		},
	}
	s := newTestSession(t, backend)

	done := make(chan error, 1)
	go func() {
		_, err := s.Send(context.Background(), "first")
		done <- err
	}()
	<-entered

	_, err := s.Send(context.Background(), "second")
	assert.ErrorIs(t, err, domain.ErrRequestInFlight)

	close(release)
	require.NoError(t, <-done)

	// The rejected send left no trace; only the first turn landed.
	assert.Len(t, s.Messages(), 2)
}

func TestSendConsumesAttachment(t *testing.T) {
	var captured GenerateRequest
	backend := &fakeBackend{
		generate: func(_ context.Context, req GenerateRequest) (string, error) {
			captured = req
			return "a monstera", nil
		},
	}
	s := newTestSession(t, backend)

	att, err := s.Attach([]byte{0x89, 0x50}, "image/png", "plant.png")
	require.NoError(t, err)

	result, err := s.Send(context.Background(), "what is this?")
	require.NoError(t, err)

	assert.Equal(t, "image/png", captured.ImageMIME)
	assert.Equal(t, []byte{0x89, 0x50}, captured.ImageData)
	assert.NotEmpty(t, result.User.Image)

	assert.Nil(t, s.CurrentAttachment())
	assert.True(t, att.Preview.Released())
}

func TestSendWithAttachmentOnly(t *testing.T) {
	s := newTestSession(t, &fakeBackend{})

	_, err := s.Attach([]byte("img"), "image/jpeg", "plant.jpg")
	require.NoError(t, err)

	_, err = s.Send(context.Background(), "look")
	require.NoError(t, err)
	assert.Nil(t, s.CurrentAttachment())
}

func TestTranslateToggles(t *testing.T) {
	calls := 0
	backend := &fakeBackend{
		translate: func(_ context.Context, text string, target domain.Language) (string, error) {
			calls++
			assert.Equal(t, domain.LanguageSpanish, target)
			return "hola", nil
		},
	}
	s := newTestSession(t, backend)
	result, err := s.Send(context.Background(), "hello")
	require.NoError(t, err)
	id := result.Bot.ID

	// First toggle fetches the translation.
	tr, err := s.Translate(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, tr.ShowingTranslation)
	assert.Equal(t, "hola", tr.Text)

	// Second toggle shows the original again.
	tr, err = s.Translate(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, tr.ShowingTranslation)
	assert.Equal(t, "reply", tr.Text)

	// Third toggle reuses the cached translation.
	tr, err = s.Translate(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, tr.ShowingTranslation)
	assert.Equal(t, "hola", tr.Text)
	assert.Equal(t, 1, calls)
}

func TestTranslateUnknownMessage(t *testing.T) {
	s := newTestSession(t, &fakeBackend{})

	_, err := s.Translate(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrMessageNotFound)
}

func TestTranslateFailureLeavesOriginal(t *testing.T) {
	backend := &fakeBackend{
		translate: func(context.Context, string, domain.Language) (string, error) {
			return "", errors.New("boom")
		},
	}
	s := newTestSession(t, backend)
	result, err := s.Send(context.Background(), "hello")
	require.NoError(t, err)
	id := result.Bot.ID

	_, err = s.Translate(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrTranslationFailed)

	// Nothing was cached and nothing entered the log.
	msg, ok := s.store.Get(id)
	require.True(t, ok)
	assert.False(t, msg.HasTranslation())
	assert.Len(t, s.Messages(), 2)
}

func TestTranslateRejectsConcurrentRequest(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	backend := &fakeBackend{
		translate: func(context.Context, string, domain.Language) (string, error) {
			close(entered)
			<-release
			return "hola", nil
		},
	}
	s := newTestSession(t, backend)
	first, err := s.Send(context.Background(), "one")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := s.Translate(context.Background(), first.Bot.ID)
		done <- err
	}()
	<-entered

	_, err = s.Translate(context.Background(), first.User.ID)
	assert.ErrorIs(t, err, domain.ErrTranslationPending)

	close(release)
	require.NoError(t, <-done)
}

func TestSendAfterMidFlightReset(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	backend := &fakeBackend{
		generate: func(context.Context, GenerateRequest) (string, error) {
			close(entered)
			<-release
			return "stale reply", nil
		},
	}
	s := newTestSession(t, backend)

	done := make(chan error, 1)
	go func() {
		_, err := s.Send(context.Background(), "hello")
		done <- err
	}()
	<-entered

	s.Navigate(domain.ModeCare)
	close(release)

	assert.ErrorIs(t, <-done, domain.ErrConversationReset)

	// The fresh conversation carries nothing over from the old one.
	assert.Empty(t, s.Messages())
}

func TestSendAfterMidFlightLandingNavigation(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	backend := &fakeBackend{
		generate: func(context.Context, GenerateRequest) (string, error) {
			close(entered)
			<-release
			return "stale reply", nil
		},
	}
	s := newTestSession(t, backend)

	done := make(chan error, 1)
	go func() {
		_, err := s.Send(context.Background(), "hello")
		done <- err
	}()
	<-entered

	s.NavigateLanding()
	close(release)

	assert.ErrorIs(t, <-done, domain.ErrConversationReset)
	assert.Empty(t, s.Messages())
}

func TestTranslateAfterMidFlightReset(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	backend := &fakeBackend{
		translate: func(context.Context, string, domain.Language) (string, error) {
			close(entered)
			<-release
			return "hola", nil
		},
	}
	s := newTestSession(t, backend)
	result, err := s.Send(context.Background(), "hello")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := s.Translate(context.Background(), result.Bot.ID)
		done <- err
	}()
	<-entered

	s.NavigateLanding()
	close(release)

	assert.ErrorIs(t, <-done, domain.ErrMessageNotFound)
}

func TestSetLanguageKeepsTranslations(t *testing.T) {
	s := newTestSession(t, &fakeBackend{})
	result, err := s.Send(context.Background(), "hello")
	require.NoError(t, err)

	_, err = s.Translate(context.Background(), result.Bot.ID)
	require.NoError(t, err)

	s.SetLanguage(domain.LanguageSpanish)

	msg, ok := s.store.Get(result.Bot.ID)
	require.True(t, ok)
	assert.Equal(t, "translated", msg.Translation)
}

func TestNavigateOtherModeClearsConversation(t *testing.T) {
	s := newTestSession(t, &fakeBackend{})
	_, err := s.Send(context.Background(), "hello")
	require.NoError(t, err)

	s.Navigate(domain.ModeCare)

	assert.Empty(t, s.Messages())
	assert.Equal(t, domain.ModeCare, s.Mode())
}

func TestNavigateSameModeKeepsConversation(t *testing.T) {
	s := newTestSession(t, &fakeBackend{})
	_, err := s.Send(context.Background(), "hello")
	require.NoError(t, err)

	s.Navigate(domain.ModeExpert)

	assert.Len(t, s.Messages(), 2)
}

func TestCloseReleasesAttachment(t *testing.T) {
	s := newTestSession(t, &fakeBackend{})
	att, err := s.Attach([]byte("img"), "image/png", "plant.png")
	require.NoError(t, err)

	s.Close()

	assert.True(t, att.Preview.Released())
	assert.Nil(t, s.CurrentAttachment())
}
