package openrouter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pricedeck/pricedeck/pkg/errors"
)

const catalogPayload = `{
  "data": [
    {
      "id": "openai/gpt-5-mini",
      "name": "OpenAI: GPT-5 Mini",
      "canonical_slug": "openai/gpt-5-mini",
      "context_length": 400000,
      "pricing": {"prompt": "0.000001", "completion": "0.000004"},
      "architecture": {"input_modalities": ["text", "image"]},
      "top_provider": {"context_length": 400000, "max_completion_tokens": 128000}
    },
    {
      "id": "some-brand-new/foo-bar-7b",
      "pricing": {"prompt": "0.0000001"},
      "capabilities": ["chat", "tools"]
    },
    {
      "id": "",
      "name": "record without id is skipped"
    }
  ]
}`

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(catalogPayload))
	}))
	defer server.Close()

	client := New(server.URL)
	entries, err := client.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2, "the record without an id must be dropped")

	first := entries[0]
	assert.Equal(t, "openai/gpt-5-mini", first.RawID)
	assert.Equal(t, "OpenAI: GPT-5 Mini", first.Name)
	assert.Equal(t, "openai/gpt-5-mini", first.CanonicalSlug)
	assert.Equal(t, int64(400000), first.ContextWindow)
	assert.Equal(t, int64(128000), first.MaxOutputTokens, "max output must fall back to top_provider")
	assert.Equal(t, "0.000001", first.PromptPrice)
	assert.Equal(t, "0.000004", first.CompletionPrice)
	assert.Equal(t, []string{"text", "image"}, first.InputModalities)

	second := entries[1]
	assert.Equal(t, "some-brand-new/foo-bar-7b", second.Name, "display name must fall back to the raw id")
	assert.Empty(t, second.CompletionPrice)
	assert.Equal(t, []string{"chat", "tools"}, second.Tags)
}

func TestFetchBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	client := New(server.URL)
	_, err := client.Fetch(context.Background())
	require.Error(t, err)

	var apiErr *errors.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}

func TestFetchUnparseableBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	client := New(server.URL)
	_, err := client.Fetch(context.Background())
	require.Error(t, err)

	var parseErr *errors.ParseError
	assert.True(t, errors.As(err, &parseErr), "an unparseable catalog body must be a parse error")
}

func TestFetchEmptyCatalog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": []}`))
	}))
	defer server.Close()

	client := New(server.URL)
	_, err := client.Fetch(context.Background())
	require.Error(t, err, "an empty catalog has no safe interpretation")
}

func TestNewDefaultsEndpoint(t *testing.T) {
	client := New("")
	assert.Equal(t, DefaultAPIURL, client.apiURL)
}
