package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"kookboek/internal/recipe"
)

// Client is a client for the Gemini API.
type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewClient creates a new Gemini client for the given model.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	m := client.GenerativeModel(model)
	m.ResponseMIMEType = "application/json"
	return &Client{client: client, model: m}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.client.Close()
}

// ParseRecipeText turns free text, e.g. a pasted recipe, into a draft.
func (c *Client) ParseRecipeText(ctx context.Context, text string) (*recipe.Draft, error) {
	return c.generate(ctx, genai.Text("Input:\n"+text))
}

// ParseRecipeAudio turns a spoken recipe into a draft.
func (c *Client) ParseRecipeAudio(ctx context.Context, audioData []byte, mimeType string) (*recipe.Draft, error) {
	return c.generate(ctx, genai.Blob{MIMEType: mimeType, Data: audioData})
}

// ParseRecipeImage turns a photo of a recipe (cookbook page, handwritten
// card) into a draft. format is "jpeg" or "png".
func (c *Client) ParseRecipeImage(ctx context.Context, imageData []byte, format string) (*recipe.Draft, error) {
	return c.generate(ctx, genai.ImageData(format, imageData))
}

func (c *Client) generate(ctx context.Context, input genai.Part) (*recipe.Draft, error) {
	resp, err := c.model.GenerateContent(ctx, input, genai.Text(recipe.DraftPrompt))
	if err != nil {
		return nil, err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return nil, fmt.Errorf("unexpected response format from Gemini")
	}

	return recipe.ParseDraft(sb.String())
}
