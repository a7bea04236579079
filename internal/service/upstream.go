package service

import (
	"context"
	"strings"
	"time"

	"eduease-be/internal/pkg/metrics"
	"eduease-be/pkg/llm"
)

// upstream performs exactly one completion call. No retries.
type upstream struct {
	provider llm.LLMProvider
	timeout  time.Duration
	metrics  *metrics.Metrics
}

func (u upstream) chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, time.Duration, error) {
	if u.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := u.provider.Chat(ctx, history, opts...)
	if err == nil && strings.TrimSpace(text) == "" {
		err = llm.ErrEmptyCompletion
	}
	return text, time.Since(start), err
}
