package notes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gogf/gf/v2/encoding/gjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatCompletions_Generate(t *testing.T) {
	var got *gjson.Json
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		got, _ = gjson.DecodeToJson(body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Introduction: ..."}}]}`))
	}))
	defer srv.Close()

	gen, err := NewChatCompletions(ChatCompletionsConfig{APIURL: srv.URL + "/v1/", APIKey: "sk-test", Model: "test-model"})
	require.NoError(t, err)

	text, err := gen.Generate(context.Background(), "spk_0: hello")
	require.NoError(t, err)
	assert.Equal(t, "Introduction: ...", text)

	require.NotNil(t, got)
	assert.Equal(t, "test-model", got.Get("model").String())
	assert.Equal(t, DefaultMaxTokens, got.Get("max_tokens").Int())
	assert.Equal(t, "system", got.Get("messages.0.role").String())
	assert.Equal(t, SystemPrompt, got.Get("messages.0.content").String())
	assert.Equal(t, "spk_0: hello", got.Get("messages.1.content").String())
}

func TestChatCompletions_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"api error", http.StatusUnauthorized, `{"error":{"message":"invalid api key"}}`},
		{"bad status", http.StatusBadGateway, `{}`},
		{"empty content", http.StatusOK, `{"choices":[]}`},
		{"not json", http.StatusOK, `<html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			gen, err := NewChatCompletions(ChatCompletionsConfig{APIURL: srv.URL, Model: "m"})
			require.NoError(t, err)
			_, err = gen.Generate(context.Background(), "prompt")
			assert.Error(t, err)
		})
	}
}

func TestNewChatCompletions_MissingConfig(t *testing.T) {
	_, err := NewChatCompletions(ChatCompletionsConfig{Model: "m"})
	assert.Error(t, err)
	_, err = NewChatCompletions(ChatCompletionsConfig{APIURL: "http://localhost"})
	assert.Error(t, err)
}
