package service

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"eduease-be/internal/constant"
	"eduease-be/internal/dto"
	"eduease-be/internal/entity"
	"eduease-be/internal/pkg/apperror"
	"eduease-be/internal/pkg/logger"
	"eduease-be/internal/pkg/metrics"
	"eduease-be/pkg/llm"
	"eduease-be/pkg/scholar"
)

const (
	msgMessagesNotArray = "Invalid input. 'messages' must be an array."
	msgBadMessageFormat = "Invalid message format. Each message must have 'role' and 'content'."
	msgParseFailed      = "Failed to parse GPT response. Please refine your query."
	msgQueryFailed      = "Failed to process request. Please try again later."
)

type IScholarService interface {
	Query(ctx context.Context, request *dto.ScholarRequest) (*dto.ScholarResponse, error)
	QueryResources(ctx context.Context, messages []llm.Message) (entity.Content, error)
}

type scholarService struct {
	upstream upstream
	logger   logger.ILogger
}

func NewScholarService(provider llm.LLMProvider, timeout time.Duration, m *metrics.Metrics, log logger.ILogger) IScholarService {
	return &scholarService{
		upstream: upstream{provider: provider, timeout: timeout, metrics: m},
		logger:   log,
	}
}

// Query serves the stateless endpoint. The caller's first message is
// replaced by the scholar instruction.
func (s *scholarService) Query(ctx context.Context, request *dto.ScholarRequest) (*dto.ScholarResponse, error) {
	messages, err := parseMessages(request.Messages)
	if err != nil {
		return nil, err
	}

	result, err := s.complete(ctx, "scholar", withScholarPrompt(messages))
	if err != nil {
		return nil, err
	}

	return &dto.ScholarResponse{
		Result: result.Raw,
		Role:   llm.RoleAssistant,
	}, nil
}

// QueryResources serves chat sessions. Like Query, the leading client
// instruction is swapped for the scholar one.
func (s *scholarService) QueryResources(ctx context.Context, messages []llm.Message) (entity.Content, error) {
	result, err := s.complete(ctx, "session", withScholarPrompt(messages))
	if err != nil {
		return entity.Content{}, err
	}
	return result.Content(), nil
}

// withScholarPrompt drops the caller's first message and leads with the
// JSON-only scholar instruction.
func withScholarPrompt(messages []llm.Message) []llm.Message {
	history := make([]llm.Message, 0, len(messages))
	history = append(history, llm.Message{Role: llm.RoleSystem, Content: constant.ScholarSystemPrompt})
	if len(messages) > 1 {
		history = append(history, messages[1:]...)
	}
	return history
}

func (s *scholarService) complete(ctx context.Context, endpoint string, history []llm.Message) (scholar.Result, error) {
	text, took, err := s.upstream.chat(ctx, history,
		llm.WithTemperature(constant.ScholarTemperature),
		llm.WithMaxTokens(constant.ScholarMaxTokens),
	)
	if err != nil {
		s.upstream.metrics.ObserveUpstream(endpoint, metrics.OutcomeFailure, took)
		s.logger.Error("ScholarService", "Upstream call failed", map[string]interface{}{
			"endpoint": endpoint,
			"error":    err,
		})
		return scholar.Result{}, apperror.Wrap(apperror.UpstreamUnavailable, msgQueryFailed, err)
	}

	result, err := scholar.Decode(text)
	if err != nil {
		s.upstream.metrics.ObserveUpstream(endpoint, metrics.OutcomeMalformed, took)
		s.logger.Warn("ScholarService", "Model returned a non-conforming answer", map[string]interface{}{
			"endpoint": endpoint,
			"length":   len(text),
			"error":    err,
		})
		return scholar.Result{}, apperror.Wrap(apperror.MalformedUpstreamResponse, msgParseFailed, err).WithRaw(text)
	}

	s.upstream.metrics.ObserveUpstream(endpoint, metrics.OutcomeSuccess, took)
	s.logger.Info("ScholarService", "Resources received", map[string]interface{}{
		"endpoint": endpoint,
		"took_ms":  took.Milliseconds(),
	})
	return result, nil
}

func parseMessages(raw json.RawMessage) ([]llm.Message, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, apperror.New(apperror.InvalidInput, msgMessagesNotArray)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, apperror.New(apperror.InvalidInput, msgMessagesNotArray)
	}

	messages := make([]llm.Message, 0, len(items))
	for _, item := range items {
		var m dto.ScholarMessage
		if err := json.Unmarshal(item, &m); err != nil || m.Role == "" || m.Content == "" {
			return nil, apperror.New(apperror.InvalidInput, msgBadMessageFormat)
		}
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}
	return messages, nil
}
