package localllm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kookboek/internal/recipe"
)

func newTestServer(t *testing.T, reply string, received *Request) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(received))
		_ = json.NewEncoder(w).Encode(Response{Choices: []Choice{{Message: ResponseMessage{Role: "assistant", Content: reply}}}})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestParseRecipeText(t *testing.T) {
	var received Request
	srv := newTestServer(t, "```json\n{\"title\": \"Pannenkoeken\", \"servings\": 4}\n```", &received)

	client := NewClient(srv.URL, "test-model")
	draft, err := client.ParseRecipeText(context.Background(), "250g bloem, 2 eieren, 500ml melk")
	require.NoError(t, err)

	assert.Equal(t, "Pannenkoeken", draft.Title)
	assert.Equal(t, 4, draft.Servings)
	assert.Equal(t, "test-model", received.Model)
	require.Len(t, received.Messages, 1)
	require.Len(t, received.Messages[0].Content, 2)
	assert.Equal(t, recipe.DraftPrompt, received.Messages[0].Content[0].Text)
	assert.Contains(t, received.Messages[0].Content[1].Text, "250g bloem")
}

func TestParseRecipeImage(t *testing.T) {
	var received Request
	srv := newTestServer(t, `{"title": "Tosti"}`, &received)

	client := NewClient(srv.URL, "test-model")
	draft, err := client.ParseRecipeImage(context.Background(), []byte("fake image"), "png")
	require.NoError(t, err)
	assert.Equal(t, "Tosti", draft.Title)

	image := received.Messages[0].Content[1]
	assert.Equal(t, "image_url", image.Type)
	require.NotNil(t, image.ImageURL)
	assert.True(t, strings.HasPrefix(image.ImageURL.URL, "data:image/png;base64,"))
}

func TestGenerateContent_Errors(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer failing.Close()

	_, err := NewClient(failing.URL, "m").GenerateContent(context.Background(), []Content{{Type: "text", Text: "hi"}})
	assert.ErrorContains(t, err, "non-OK status code: 500")

	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer empty.Close()

	_, err = NewClient(empty.URL, "m").GenerateContent(context.Background(), []Content{{Type: "text", Text: "hi"}})
	assert.ErrorContains(t, err, "no content")
}

func TestParseRecipeAudio_Unsupported(t *testing.T) {
	_, err := NewClient("http://unused", "m").ParseRecipeAudio(context.Background(), []byte("x"), "audio/mpeg")
	assert.ErrorIs(t, err, recipe.ErrUnsupported)
}
