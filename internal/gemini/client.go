// Package gemini implements the generation backend on the Gemini API.
package gemini

import (
	"context"
	"fmt"

	genai "google.golang.org/genai"

	"github.com/leafwise/florabot/internal/domain"
	"github.com/leafwise/florabot/internal/prompts"
	"github.com/leafwise/florabot/internal/session"
)

// Client is a thin wrapper around the official genai client. One attempt
// per call; no retry or backoff.
type Client struct {
	cli   *genai.Client
	model string
}

func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Client{cli: cli, model: model}, nil
}

func (c *Client) Name() string { return "Gemini:" + c.model }

// Generate sends the conversation history, the mode/language system
// instruction and the new turn (text plus optional inline image) and
// returns the model's text.
func (c *Client) Generate(ctx context.Context, req session.GenerateRequest) (string, error) {
	contents := make([]*genai.Content, 0, len(req.History)+1)
	for _, turn := range req.History {
		contents = append(contents, &genai.Content{
			Role:  turn.Role,
			Parts: []*genai.Part{{Text: turn.Text}},
		})
	}

	var parts []*genai.Part
	if len(req.ImageData) > 0 {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{MIMEType: req.ImageMIME, Data: req.ImageData},
		})
	}
	parts = append(parts, &genai.Part{Text: req.Text})
	contents = append(contents, &genai.Content{Role: "user", Parts: parts})

	return c.generate(ctx, contents, req.Instruction, domain.ErrGenerationFailed)
}

// Translate asks the model for a translation of one message's canonical
// text into the target language.
func (c *Client) Translate(ctx context.Context, text string, target domain.Language) (string, error) {
	contents := []*genai.Content{
		{Role: "user", Parts: []*genai.Part{{Text: text}}},
	}
	return c.generate(ctx, contents, prompts.TranslationInstruction(target), domain.ErrTranslationFailed)
}

func (c *Client) generate(ctx context.Context, contents []*genai.Content, instruction string, failure error) (string, error) {
	resp, err := c.cli.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: instruction}}},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", failure, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty response", failure)
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
