package localllm

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"kookboek/internal/recipe"
)

// Client talks to a local OpenAI-compatible chat-completions endpoint.
type Client struct {
	httpClient *http.Client
	apiURL     string
	model      string
}

// NewClient creates a new client for the local LLM.
func NewClient(apiURL, model string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 2 * time.Minute},
		apiURL:     apiURL,
		model:      model,
	}
}

// Request represents the request body for the local LLM.
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

// Message represents a message in the request.
type Message struct {
	Role    string    `json:"role"`
	Content []Content `json:"content"`
}

// Content represents the content of a message.
type Content struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL represents the image URL in the content.
type ImageURL struct {
	URL string `json:"url"`
}

// Response represents the response from the local LLM.
type Response struct {
	Choices []Choice `json:"choices"`
}

// Choice represents a choice in the response.
type Choice struct {
	Message ResponseMessage `json:"message"`
}

// ResponseMessage represents a message in the response.
type ResponseMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenerateContent sends the content blocks as one user message and returns
// the text of the first choice.
func (c *Client) GenerateContent(ctx context.Context, content []Content) (string, error) {
	reqBody := Request{
		Model:       c.model,
		Messages:    []Message{{Role: "user", Content: content}},
		Temperature: 0.2,
		MaxTokens:   2048,
	}

	reqBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(reqBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("received non-OK status code: %d", resp.StatusCode)
	}

	var llmResp Response
	if err := json.NewDecoder(resp.Body).Decode(&llmResp); err != nil {
		return "", fmt.Errorf("failed to decode response body: %w", err)
	}

	if len(llmResp.Choices) == 0 {
		return "", fmt.Errorf("no content found in response")
	}
	return llmResp.Choices[0].Message.Content, nil
}

// ParseRecipeText turns free text into a draft.
func (c *Client) ParseRecipeText(ctx context.Context, text string) (*recipe.Draft, error) {
	responseText, err := c.GenerateContent(ctx, []Content{
		{Type: "text", Text: recipe.DraftPrompt},
		{Type: "text", Text: "Input:\n" + text},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}
	return recipe.ParseDraft(responseText)
}

// ParseRecipeImage turns a photo of a recipe into a draft.
func (c *Client) ParseRecipeImage(ctx context.Context, imageData []byte, format string) (*recipe.Draft, error) {
	encodedImage := base64.StdEncoding.EncodeToString(imageData)
	responseText, err := c.GenerateContent(ctx, []Content{
		{Type: "text", Text: recipe.DraftPrompt},
		{Type: "image_url", ImageURL: &ImageURL{URL: "data:image/" + format + ";base64," + encodedImage}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}
	return recipe.ParseDraft(responseText)
}

// ParseRecipeAudio is not available: chat-completions endpoints take no
// audio input.
func (c *Client) ParseRecipeAudio(context.Context, []byte, string) (*recipe.Draft, error) {
	return nil, fmt.Errorf("local llm audio input: %w", recipe.ErrUnsupported)
}
