package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eduease-be/internal/constant"
	"eduease-be/internal/dto"
	"eduease-be/internal/pkg/apperror"
	"eduease-be/internal/pkg/logger"
	"eduease-be/internal/pkg/metrics"
	"eduease-be/pkg/llm"
)

const (
	msgExpandMissingFields = "Title and description are required."
	msgExpandFailed        = "Failed to generate expanded content. Please try again later."
)

type IExpandService interface {
	Expand(ctx context.Context, request *dto.ExpandResourceRequest) (*dto.ExpandResourceResponse, error)
}

type expandService struct {
	upstream upstream
	logger   logger.ILogger
}

func NewExpandService(provider llm.LLMProvider, timeout time.Duration, m *metrics.Metrics, log logger.ILogger) IExpandService {
	return &expandService{
		upstream: upstream{provider: provider, timeout: timeout, metrics: m},
		logger:   log,
	}
}

func (s *expandService) Expand(ctx context.Context, request *dto.ExpandResourceRequest) (*dto.ExpandResourceResponse, error) {
	if strings.TrimSpace(request.Title) == "" || strings.TrimSpace(request.Description) == "" {
		return nil, apperror.New(apperror.InvalidInput, msgExpandMissingFields)
	}

	history := []llm.Message{
		{Role: llm.RoleSystem, Content: constant.ExpandSystemPrompt},
		{Role: llm.RoleUser, Content: fmt.Sprintf(constant.ExpandUserPromptFormat, request.Title, request.Description)},
	}

	text, took, err := s.upstream.chat(ctx, history,
		llm.WithTemperature(constant.ExpandTemperature),
		llm.WithMaxTokens(constant.ExpandMaxTokens),
	)
	if err != nil {
		s.upstream.metrics.ObserveUpstream("expand", metrics.OutcomeFailure, took)
		s.logger.Error("ExpandService", "Expansion failed", map[string]interface{}{
			"title": request.Title,
			"error": err,
		})
		return nil, apperror.Wrap(apperror.UpstreamUnavailable, msgExpandFailed, err)
	}

	s.upstream.metrics.ObserveUpstream("expand", metrics.OutcomeSuccess, took)
	return &dto.ExpandResourceResponse{
		Content: strings.TrimSpace(text),
		Success: true,
	}, nil
}
