package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"eduease-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChat(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "sk-ant-test", r.Header.Get("X-Api-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-sonnet-4-20250514",
			"content": [{"type": "text", "text": "[{\"id\":\"1\"}]"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 10, "output_tokens": 5}
		}`))
	}))
	defer srv.Close()

	p := NewAnthropicProvider("sk-ant-test", srv.URL, "")
	out, err := p.Chat(context.Background(), []llm.Message{
		{Role: llm.RoleSystem, Content: "only json"},
		{Role: llm.RoleUser, Content: "physics"},
	}, llm.WithMaxTokens(800))
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, out)

	assert.Equal(t, DefaultModel, body["model"])
	assert.EqualValues(t, 800, body["max_tokens"])

	system, ok := body["system"].([]any)
	require.True(t, ok)
	assert.Equal(t, "only json", system[0].(map[string]any)["text"])

	msgs := body["messages"].([]any)
	require.Len(t, msgs, 1)
	assert.Equal(t, "user", msgs[0].(map[string]any)["role"])
}

func TestBuildMessagesMapsRoles(t *testing.T) {
	params := buildMessages([]llm.Message{
		{Role: llm.RoleUser, Content: "q"},
		{Role: llm.RoleAssistant, Content: "a"},
	})
	require.Len(t, params, 2)
	assert.EqualValues(t, "user", params[0].Role)
	assert.EqualValues(t, "assistant", params[1].Role)
}
