package service

import (
	"context"
	"sync"

	"eduease-be/internal/entity"
	"eduease-be/pkg/llm"
)

// stubProvider answers every call with the same text or error and records
// what it was asked.
type stubProvider struct {
	mu      sync.Mutex
	reply   string
	err     error
	calls   int
	history []llm.Message
	options llm.Options
}

func (p *stubProvider) Chat(_ context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	p.history = append([]llm.Message(nil), history...)
	p.options = llm.Apply(llm.Options{}, opts...)
	return p.reply, p.err
}

func (p *stubProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}

type recordingPublisher struct {
	mu   sync.Mutex
	sent []entity.Notification
}

func (r *recordingPublisher) Publish(_ context.Context, n entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return nil
}

func (r *recordingPublisher) titles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.sent))
	for _, n := range r.sent {
		out = append(out, n.Title)
	}
	return out
}
