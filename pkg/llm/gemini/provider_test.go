package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eduease-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChat(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/"+DefaultModel+":generateContent"), r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates": [{"content": {"role": "model", "parts": [{"text": "[]"}]}}]}`))
	}))
	defer srv.Close()

	p, err := NewGeminiProvider(context.Background(), "g-key", srv.URL+"/", "")
	require.NoError(t, err)

	out, err := p.Chat(context.Background(), []llm.Message{
		{Role: llm.RoleSystem, Content: "only json"},
		{Role: llm.RoleAssistant, Content: "earlier"},
		{Role: llm.RoleUser, Content: "physics"},
	}, llm.WithMaxTokens(800))
	require.NoError(t, err)
	assert.Equal(t, "[]", out)

	contents := body["contents"].([]any)
	require.Len(t, contents, 2)
	assert.Equal(t, "model", contents[0].(map[string]any)["role"])
	assert.Equal(t, "user", contents[1].(map[string]any)["role"])
	assert.Contains(t, body, "systemInstruction")
}
