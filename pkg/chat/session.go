// Package chat implements the per-user study session: identity, the chat log
// and the saved collections, plus the transitions between them.
package chat

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"eduease-be/internal/constant"
	"eduease-be/internal/entity"
	"eduease-be/internal/pkg/apperror"
	"eduease-be/pkg/collection"
	"eduease-be/pkg/llm"
)

// IdentityKey names the durable slot that holds the display name.
const IdentityKey = "eduease-user-name"

const genericFailure = "Failed to process request. Please try again."

var (
	ErrIdentityRequired = errors.New("a display name is required before chatting")
	ErrEmptyName        = errors.New("display name must not be empty")
	ErrSendInProgress   = errors.New("another message is still being answered")
	ErrHistoryIndex     = errors.New("search history index out of range")
)

// Querier is the resource query service as seen from a session.
type Querier interface {
	QueryResources(ctx context.Context, messages []llm.Message) (entity.Content, error)
}

// IdentityStore persists the display name for a session.
type IdentityStore interface {
	GetName(ctx context.Context, sessionId string) (string, error)
	SetName(ctx context.Context, sessionId, name string) error
	DeleteName(ctx context.Context, sessionId string) error
}

type SettingsPatch struct {
	Name     *string
	Email    *string
	DarkMode *bool
}

type Session struct {
	mu sync.Mutex

	id          string
	name        string
	settings    entity.UserSettings
	messages    []entity.Message
	history     []string
	collections *collection.Store
	pending     bool

	identities IdentityStore
	now        func() time.Time
	lastId     int64

	CreatedAt time.Time
}

func NewSession(id string, identities IdentityStore) *Session {
	return &Session{
		id:          id,
		settings:    entity.UserSettings{Name: entity.GuestName},
		messages:    []entity.Message{},
		history:     []string{},
		collections: collection.NewStore(),
		identities:  identities,
		now:         time.Now,
		CreatedAt:   time.Now(),
	}
}

func (s *Session) Id() string { return s.id }

// Restore reads a previously persisted display name, if any.
func (s *Session) Restore(ctx context.Context) error {
	name, err := s.identities.GetName(ctx, s.id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if name != "" {
		s.name = name
		s.settings.Name = name
	}
	return nil
}

func (s *Session) Identify(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if err := s.identities.SetName(ctx, s.id, name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
	s.settings.Name = name
	return nil
}

// Identity returns the display name and whether one has been set.
func (s *Session) Identity() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name, s.name != ""
}

// Logout forgets the identity and the chat log. Collections stay.
func (s *Session) Logout(ctx context.Context) error {
	if err := s.identities.DeleteName(ctx, s.id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = ""
	s.settings.Name = entity.GuestName
	s.messages = []entity.Message{}
	return nil
}

func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = []entity.Message{}
}

func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

func (s *Session) Messages() []entity.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Send appends the user's question, asks q once, and appends the answer or an
// error card. Blank input is ignored and yields no messages.
func (s *Session) Send(ctx context.Context, input string, q Querier) ([]entity.Message, error) {
	s.mu.Lock()
	if s.name == "" {
		s.mu.Unlock()
		return nil, ErrIdentityRequired
	}
	text := strings.TrimSpace(input)
	if text == "" {
		s.mu.Unlock()
		return nil, nil
	}
	if s.pending {
		s.mu.Unlock()
		return nil, ErrSendInProgress
	}

	request := s.buildRequest(text)
	userMsg := s.newMessage(entity.SenderUser, entity.TextContent(text))
	s.messages = append(s.messages, userMsg)
	s.pending = true
	s.mu.Unlock()

	content, err := q.QueryResources(ctx, request)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		content = entity.ResourceContent([]entity.Resource{entity.ErrorResource(failureReason(err))})
	} else {
		s.history = append(s.history, text)
	}
	reply := s.newMessage(entity.SenderAssistant, content)
	s.messages = append(s.messages, reply)
	s.pending = false

	return []entity.Message{userMsg, reply}, nil
}

// buildRequest must run before the new user message is appended.
func (s *Session) buildRequest(text string) []llm.Message {
	prior := s.messages
	if len(prior) > constant.ChatHistoryWindow {
		prior = prior[len(prior)-constant.ChatHistoryWindow:]
	}

	out := make([]llm.Message, 0, len(prior)+2)
	out = append(out, llm.Message{Role: llm.RoleSystem, Content: constant.ChatSessionSystemPrompt})
	for _, m := range prior {
		out = append(out, llm.Message{Role: roleFor(m.Sender), Content: m.Content.String()})
	}
	out = append(out, llm.Message{Role: llm.RoleUser, Content: text})
	return out
}

func roleFor(sender entity.Sender) string {
	switch sender {
	case entity.SenderAssistant:
		return llm.RoleAssistant
	case entity.SenderUser:
		return llm.RoleUser
	default:
		return llm.RoleUser
	}
}

func failureReason(err error) string {
	if e, ok := apperror.As(err); ok && e.Message != "" {
		return e.Message
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err.Error()
	}
	return genericFailure
}

// newMessage stamps a millisecond id that never repeats within the session.
func (s *Session) newMessage(sender entity.Sender, content entity.Content) entity.Message {
	now := s.now()
	id := now.UnixMilli()
	if id <= s.lastId {
		id = s.lastId + 1
	}
	s.lastId = id
	return entity.Message{
		Id:        strconv.FormatInt(id, 10),
		Sender:    sender,
		Content:   content,
		CreatedAt: now,
	}
}

// Collections runs fn with exclusive access to the session's store.
func (s *Session) Collections(fn func(store *collection.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.collections)
}

func (s *Session) Settings() entity.UserSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

func (s *Session) UpdateSettings(patch SettingsPatch) entity.UserSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	if patch.Name != nil {
		if name := strings.TrimSpace(*patch.Name); name != "" {
			s.settings.Name = name
		}
	}
	if patch.Email != nil {
		s.settings.Email = strings.TrimSpace(*patch.Email)
	}
	if patch.DarkMode != nil {
		s.settings.DarkMode = *patch.DarkMode
	}
	return s.settings
}

func (s *Session) SearchHistory() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.history))
	copy(out, s.history)
	return out
}

func (s *Session) RemoveSearch(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.history) {
		return ErrHistoryIndex
	}
	s.history = append(s.history[:index], s.history[index+1:]...)
	return nil
}
