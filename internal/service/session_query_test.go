package service

import (
	"context"
	"testing"

	"eduease-be/internal/constant"
	"eduease-be/internal/entity"
	"eduease-be/internal/pkg/logger"
	"eduease-be/internal/repository/memory"
	"eduease-be/pkg/chat"
	"eduease-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identifiedSession(t *testing.T) *chat.Session {
	t.Helper()
	s := chat.NewSession("session-1", memory.NewIdentityRepository())
	require.NoError(t, s.Identify(context.Background(), "Ada"))
	return s
}

func TestSessionSend_UsesScholarInstructionUpstream(t *testing.T) {
	ctx := context.Background()
	provider := &stubProvider{reply: twoResources}
	svc := NewScholarService(provider, 0, nil, logger.NewNop())
	s := identifiedSession(t)

	for _, q := range []string{"q0", "q1", "q2"} {
		_, err := s.Send(ctx, q, svc)
		require.NoError(t, err)
	}
	msgs, err := s.Send(ctx, "final", svc)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, entity.ContentResources, msgs[1].Content.Kind())

	history := provider.history
	require.Len(t, history, 1+constant.ChatHistoryWindow+1)
	assert.Equal(t, llm.Message{Role: llm.RoleSystem, Content: constant.ScholarSystemPrompt}, history[0])
	for _, m := range history {
		assert.NotEqual(t, constant.ChatSessionSystemPrompt, m.Content)
	}

	resourcesJSON := entity.ResourceContent(msgs[1].Content.Resources()).String()
	assert.Equal(t, []llm.Message{
		{Role: llm.RoleAssistant, Content: resourcesJSON},
		{Role: llm.RoleUser, Content: "q1"},
		{Role: llm.RoleAssistant, Content: resourcesJSON},
		{Role: llm.RoleUser, Content: "q2"},
		{Role: llm.RoleAssistant, Content: resourcesJSON},
	}, history[1:6])
	assert.Equal(t, llm.Message{Role: llm.RoleUser, Content: "final"}, history[6])

	assert.Equal(t, constant.ScholarTemperature, provider.options.Temperature)
	assert.Equal(t, constant.ScholarMaxTokens, provider.options.MaxTokens)
}

func TestSessionSend_ProseAnswerBecomesErrorCard(t *testing.T) {
	provider := &stubProvider{reply: "Here are some resources about go."}
	svc := NewScholarService(provider, 0, nil, logger.NewNop())
	s := identifiedSession(t)

	msgs, err := s.Send(context.Background(), "golang", svc)
	require.NoError(t, err)
	require.Len(t, msgs, 2)

	assert.Equal(t, constant.ScholarSystemPrompt, provider.history[0].Content)
	assert.Equal(t, []entity.Resource{entity.ErrorResource(msgParseFailed)}, msgs[1].Content.Resources())
	assert.Empty(t, s.SearchHistory())
}
