package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"eduease-be/internal/constant"
	"eduease-be/internal/dto"
	"eduease-be/internal/entity"
	"eduease-be/internal/pkg/apperror"
	"eduease-be/internal/pkg/logger"
	"eduease-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoResources = `[{"id":"1","title":"Deep Learning","description":"Goodfellow et al.","link":"https://example.org/dl"},{"id":"2","title":"Attention","description":"Transformers","link":"https://example.org/attn"}]`

func scholarRequest(t *testing.T, messages interface{}) *dto.ScholarRequest {
	t.Helper()
	raw, err := json.Marshal(messages)
	require.NoError(t, err)
	return &dto.ScholarRequest{Messages: raw}
}

func TestScholarQuery_HappyPath(t *testing.T) {
	provider := &stubProvider{reply: "  " + twoResources + "\n"}
	svc := NewScholarService(provider, 0, nil, logger.NewNop())

	res, err := svc.Query(context.Background(), scholarRequest(t, []map[string]string{
		{"role": "system", "content": "client instruction"},
		{"role": "user", "content": "transformers"},
	}))
	require.NoError(t, err)

	assert.Equal(t, "assistant", res.Role)
	assert.JSONEq(t, twoResources, string(res.Result))

	require.Len(t, provider.history, 2)
	assert.Equal(t, llm.RoleSystem, provider.history[0].Role)
	assert.Equal(t, constant.ScholarSystemPrompt, provider.history[0].Content)
	assert.Equal(t, llm.Message{Role: "user", Content: "transformers"}, provider.history[1])
	assert.Equal(t, 0.7, provider.options.Temperature)
	assert.Equal(t, 800, provider.options.MaxTokens)
}

func TestScholarQuery_NonConformingPrefix(t *testing.T) {
	reply := "Sure, here you go: " + twoResources
	provider := &stubProvider{reply: reply}
	svc := NewScholarService(provider, 0, nil, logger.NewNop())

	_, err := svc.Query(context.Background(), scholarRequest(t, []map[string]string{
		{"role": "system", "content": "x"},
		{"role": "user", "content": "y"},
	}))

	e, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.MalformedUpstreamResponse, e.Kind)
	assert.Equal(t, 500, e.Status())
	assert.Equal(t, reply, e.Raw)
}

func TestScholarQuery_BracketedButInvalidJSON(t *testing.T) {
	provider := &stubProvider{reply: "[not json]"}
	svc := NewScholarService(provider, 0, nil, logger.NewNop())

	_, err := svc.Query(context.Background(), scholarRequest(t, []map[string]string{{"role": "user", "content": "y"}}))
	assert.Equal(t, apperror.MalformedUpstreamResponse, apperror.KindOf(err))
}

func TestScholarQuery_UpstreamFailure(t *testing.T) {
	provider := &stubProvider{err: errors.New("connection refused")}
	svc := NewScholarService(provider, 0, nil, logger.NewNop())

	_, err := svc.Query(context.Background(), scholarRequest(t, []map[string]string{{"role": "user", "content": "y"}}))

	e, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.UpstreamUnavailable, e.Kind)
	assert.Equal(t, "connection refused", e.Details)
	assert.Equal(t, 1, provider.calls)
}

func TestScholarQuery_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"missing", ``, "Invalid input. 'messages' must be an array."},
		{"null", `null`, "Invalid input. 'messages' must be an array."},
		{"object", `{"role":"user"}`, "Invalid input. 'messages' must be an array."},
		{"string", `"hello"`, "Invalid input. 'messages' must be an array."},
		{"missing content", `[{"role":"user"}]`, "Invalid message format. Each message must have 'role' and 'content'."},
		{"empty role", `[{"role":"","content":"x"}]`, "Invalid message format. Each message must have 'role' and 'content'."},
		{"non-object entry", `[42]`, "Invalid message format. Each message must have 'role' and 'content'."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &stubProvider{reply: twoResources}
			svc := NewScholarService(provider, 0, nil, logger.NewNop())

			_, err := svc.Query(context.Background(), &dto.ScholarRequest{Messages: json.RawMessage(tt.raw)})

			e, ok := apperror.As(err)
			require.True(t, ok)
			assert.Equal(t, apperror.InvalidInput, e.Kind)
			assert.Equal(t, tt.want, e.Message)
			assert.Zero(t, provider.calls)
		})
	}
}

func TestQueryResources_ReturnsResourceContent(t *testing.T) {
	provider := &stubProvider{reply: twoResources}
	svc := NewScholarService(provider, 0, nil, logger.NewNop())

	content, err := svc.QueryResources(context.Background(), []llm.Message{
		{Role: llm.RoleSystem, Content: constant.ChatSessionSystemPrompt},
		{Role: llm.RoleUser, Content: "dl"},
	})
	require.NoError(t, err)

	assert.Equal(t, []llm.Message{
		{Role: llm.RoleSystem, Content: constant.ScholarSystemPrompt},
		{Role: llm.RoleUser, Content: "dl"},
	}, provider.history)
	require.Equal(t, entity.ContentResources, content.Kind())
	assert.Len(t, content.Resources(), 2)
	assert.Equal(t, "Deep Learning", content.Resources()[0].Title)
}

func TestQueryResources_HonoursTimeout(t *testing.T) {
	provider := &blockingProvider{}
	svc := NewScholarService(provider, 1, nil, logger.NewNop())

	_, err := svc.QueryResources(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "dl"}})
	assert.Equal(t, apperror.UpstreamUnavailable, apperror.KindOf(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

type blockingProvider struct{}

func (blockingProvider) Chat(ctx context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func (b blockingProvider) Generate(ctx context.Context, _ string, _ ...llm.Option) (string, error) {
	return b.Chat(ctx, nil)
}
