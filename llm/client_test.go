package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionResponse(content string) map[string]any {
	return map[string]any{
		"choices": []any{
			map[string]any{
				"message": map[string]any{"content": content},
			},
		},
	}
}

func TestCompleteSendsBearerAuth(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewEncoder(w).Encode(completionResponse("coffee, bar")))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL, Model: "demo-model"})
	content, err := client.Complete(context.Background(), "pick tags")
	require.NoError(t, err)
	assert.Equal(t, "coffee, bar", content)
	assert.Equal(t, "Bearer test-key", gotAuth)
}

func TestCompleteRequiresAPIKey(t *testing.T) {
	client := NewClient(Config{})
	_, err := client.Complete(context.Background(), "prompt")
	assert.Error(t, err)
}

func TestCompleteVisionEncodesImageParts(t *testing.T) {
	var payload struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string          `json:"role"`
			Content json.RawMessage `json:"content"`
		} `json:"messages"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.NoError(t, json.NewEncoder(w).Encode(completionResponse(`{"places":[]}`)))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test", BaseURL: server.URL, Model: "demo-model"})
	_, err := client.CompleteVision(context.Background(), "system", "user text", []ImagePart{
		{MIME: "image/png", Data: []byte{0x89, 0x50}},
	})
	require.NoError(t, err)

	require.Len(t, payload.Messages, 2)
	assert.Equal(t, "system", payload.Messages[0].Role)
	assert.Equal(t, "user", payload.Messages[1].Role)

	var parts []struct {
		Type     string `json:"type"`
		Text     string `json:"text"`
		ImageURL *struct {
			URL    string `json:"url"`
			Detail string `json:"detail"`
		} `json:"image_url"`
	}
	require.NoError(t, json.Unmarshal(payload.Messages[1].Content, &parts))
	require.Len(t, parts, 2)
	assert.Equal(t, "text", parts[0].Type)
	assert.Equal(t, "user text", parts[0].Text)
	assert.Equal(t, "image_url", parts[1].Type)
	require.NotNil(t, parts[1].ImageURL)
	assert.True(t, strings.HasPrefix(parts[1].ImageURL.URL, "data:image/png;base64,"))
	assert.Equal(t, "low", parts[1].ImageURL.Detail)
}

func TestCompleteVisionRequiresImages(t *testing.T) {
	client := NewClient(Config{APIKey: "test"})
	_, err := client.CompleteVision(context.Background(), "system", "user", nil)
	assert.Error(t, err)
}

func TestCompleteRetriesOnTooManyRequests(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		require.NoError(t, json.NewEncoder(w).Encode(completionResponse("ok")))
	}))
	defer server.Close()

	var slept []time.Duration
	client := NewClient(
		Config{APIKey: "test", BaseURL: server.URL, Model: "demo-model"},
		WithSleeper(func(d time.Duration) { slept = append(slept, d) }),
	)
	content, err := client.Complete(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "ok", content)
	assert.Equal(t, 2, attempts)
	require.Len(t, slept, 1)
	assert.Equal(t, time.Second, slept[0])
}

func TestCompleteDoesNotRetryClientErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "bad", BaseURL: server.URL, Model: "demo-model"})
	_, err := client.Complete(context.Background(), "prompt")
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestDecodeModelJSON(t *testing.T) {
	var target struct {
		OK bool `json:"ok"`
	}

	require.NoError(t, DecodeModelJSON(`{"ok":true}`, &target))
	assert.True(t, target.OK)

	target.OK = false
	require.NoError(t, DecodeModelJSON("```json\n{\"ok\":true}\n```", &target))
	assert.True(t, target.OK)

	target.OK = false
	require.NoError(t, DecodeModelJSON("Here you go: {\"ok\":true}", &target))
	assert.True(t, target.OK)

	assert.Error(t, DecodeModelJSON("", &target))
	assert.Error(t, DecodeModelJSON("not json at all", &target))
}
