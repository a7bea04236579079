package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eduease-be/internal/constant"
	"eduease-be/internal/dto"
	"eduease-be/internal/entity"
	"eduease-be/internal/pkg/apperror"
	"eduease-be/internal/pkg/logger"
	"eduease-be/internal/pkg/metrics"
	"eduease-be/internal/repository/memory"
	"eduease-be/pkg/chat"
	"eduease-be/pkg/collection"

	"github.com/google/uuid"
)

// TokenIssuer signs the bearer token handed out with a new session.
type TokenIssuer func(sessionId string) (string, error)

type ISessionService interface {
	Create(ctx context.Context, request *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)

	Identity(ctx context.Context, sessionId string) (*dto.IdentityResponse, error)
	Identify(ctx context.Context, sessionId string, request *dto.IdentifyRequest) (*dto.IdentityResponse, error)
	Logout(ctx context.Context, sessionId string) error

	Messages(ctx context.Context, sessionId string) ([]entity.Message, error)
	Send(ctx context.Context, sessionId string, request *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	ClearMessages(ctx context.Context, sessionId string) error

	Collections(ctx context.Context, sessionId string) ([]entity.Collection, error)
	CreateCollection(ctx context.Context, sessionId string, request *dto.CreateCollectionRequest) (*entity.Collection, error)
	DeleteCollection(ctx context.Context, sessionId, name string) error
	AddResource(ctx context.Context, sessionId, name string, request *dto.AddResourceRequest) (*entity.Collection, error)
	SaveResource(ctx context.Context, sessionId string, request *dto.SaveResourceRequest) (*dto.SaveResourceResponse, error)
	ExpandResource(ctx context.Context, sessionId string, request *dto.ExpandSessionResourceRequest) (*dto.ExpandResourceResponse, error)

	Settings(ctx context.Context, sessionId string) (*entity.UserSettings, error)
	UpdateSettings(ctx context.Context, sessionId string, request *dto.UpdateSettingsRequest) (*entity.UserSettings, error)
	SearchHistory(ctx context.Context, sessionId string) (*dto.SearchHistoryResponse, error)
	RemoveSearch(ctx context.Context, sessionId string, index int) error
}

type sessionService struct {
	sessionRepo *memory.SessionRepository
	identities  chat.IdentityStore
	querier     chat.Querier
	expander    IExpandService
	publisher   IPublisherService
	issueToken  TokenIssuer
	metrics     *metrics.Metrics
	logger      logger.ILogger
}

func NewSessionService(
	sessionRepo *memory.SessionRepository,
	identities chat.IdentityStore,
	querier chat.Querier,
	expander IExpandService,
	publisher IPublisherService,
	issueToken TokenIssuer,
	m *metrics.Metrics,
	log logger.ILogger,
) ISessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
		identities:  identities,
		querier:     querier,
		expander:    expander,
		publisher:   publisher,
		issueToken:  issueToken,
		metrics:     m,
		logger:      log,
	}
}

func (s *sessionService) Create(ctx context.Context, request *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	session := chat.NewSession(uuid.NewString(), s.identities)

	if request.Name != "" {
		if err := session.Identify(ctx, request.Name); err != nil {
			return nil, s.mapError(err)
		}
	}

	token, err := s.issueToken(session.Id())
	if err != nil {
		return nil, apperror.Wrap(apperror.Internal, "Failed to issue session token", err)
	}

	s.sessionRepo.Save(session)
	s.metrics.SetSessions(s.sessionRepo.Count())
	s.logger.Info("SessionService", "Session created", map[string]interface{}{"session_id": session.Id()})

	name, identified := session.Identity()
	if identified {
		s.notify(ctx, session.Id(), constant.TitleWelcome, fmt.Sprintf(constant.DescWelcomeFormat, name), entity.VariantSuccess)
	}

	return &dto.CreateSessionResponse{
		SessionId: session.Id(),
		Token:     token,
		Name:      name,
	}, nil
}

// load fetches a live session, or rebuilds one for a token that outlived the
// in-memory copy. Only the identity survives such a rebuild.
func (s *sessionService) load(ctx context.Context, sessionId string) (*chat.Session, error) {
	if session, ok := s.sessionRepo.Get(sessionId); ok {
		return session, nil
	}

	session := chat.NewSession(sessionId, s.identities)
	if err := session.Restore(ctx); err != nil {
		s.logger.Warn("SessionService", "Failed to restore identity", map[string]interface{}{
			"session_id": sessionId,
			"error":      err,
		})
	}
	session = s.sessionRepo.Add(session)
	s.metrics.SetSessions(s.sessionRepo.Count())
	return session, nil
}

func (s *sessionService) Identity(ctx context.Context, sessionId string) (*dto.IdentityResponse, error) {
	session, err := s.load(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	name, identified := session.Identity()
	if !identified {
		name = entity.GuestName
	}
	return &dto.IdentityResponse{Name: name, Identified: identified}, nil
}

func (s *sessionService) Identify(ctx context.Context, sessionId string, request *dto.IdentifyRequest) (*dto.IdentityResponse, error) {
	session, err := s.load(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if err := session.Identify(ctx, request.Name); err != nil {
		return nil, s.mapError(err)
	}

	name, _ := session.Identity()
	s.notify(ctx, sessionId, constant.TitleWelcome, fmt.Sprintf(constant.DescWelcomeFormat, name), entity.VariantSuccess)
	return &dto.IdentityResponse{Name: name, Identified: true}, nil
}

func (s *sessionService) Logout(ctx context.Context, sessionId string) error {
	session, err := s.load(ctx, sessionId)
	if err != nil {
		return err
	}
	if err := session.Logout(ctx); err != nil {
		return s.mapError(err)
	}
	s.notify(ctx, sessionId, constant.TitleLoggedOut, constant.DescLoggedOut, entity.VariantSuccess)
	return nil
}

func (s *sessionService) Messages(ctx context.Context, sessionId string) ([]entity.Message, error) {
	session, err := s.load(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	return session.Messages(), nil
}

func (s *sessionService) Send(ctx context.Context, sessionId string, request *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	session, err := s.load(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	appended, err := session.Send(ctx, request.Input, s.querier)
	if err != nil {
		return nil, s.mapError(err)
	}
	if appended == nil {
		appended = []entity.Message{}
	}
	return &dto.SendMessageResponse{Messages: appended}, nil
}

func (s *sessionService) ClearMessages(ctx context.Context, sessionId string) error {
	session, err := s.load(ctx, sessionId)
	if err != nil {
		return err
	}
	session.Clear()
	s.notify(ctx, sessionId, constant.TitleChatCleared, constant.DescChatCleared, entity.VariantSuccess)
	return nil
}

func (s *sessionService) Collections(ctx context.Context, sessionId string) ([]entity.Collection, error) {
	session, err := s.load(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	var out []entity.Collection
	_ = session.Collections(func(store *collection.Store) error {
		out = store.List()
		return nil
	})
	return out, nil
}

func (s *sessionService) CreateCollection(ctx context.Context, sessionId string, request *dto.CreateCollectionRequest) (*entity.Collection, error) {
	session, err := s.load(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	var created entity.Collection
	err = session.Collections(func(store *collection.Store) error {
		if err := store.Create(request.Name); err != nil {
			return err
		}
		created, _ = store.Get(request.Name)
		return nil
	})
	if err != nil {
		s.notifyFailure(ctx, sessionId, err)
		return nil, s.mapError(err)
	}

	s.notify(ctx, sessionId, constant.TitleCollectionCreated,
		fmt.Sprintf(constant.DescCollectionCreatedFormat, request.Name), entity.VariantSuccess)
	return &created, nil
}

func (s *sessionService) DeleteCollection(ctx context.Context, sessionId, name string) error {
	session, err := s.load(ctx, sessionId)
	if err != nil {
		return err
	}

	var removed bool
	_ = session.Collections(func(store *collection.Store) error {
		removed = store.Delete(name)
		return nil
	})
	if !removed {
		s.notifyFailure(ctx, sessionId, collection.ErrCollectionNotFound)
		return s.mapError(collection.ErrCollectionNotFound)
	}

	s.notify(ctx, sessionId, constant.TitleCollectionDeleted,
		fmt.Sprintf(constant.DescCollectionDeletedFormat, name), entity.VariantSuccess)
	return nil
}

func (s *sessionService) AddResource(ctx context.Context, sessionId, name string, request *dto.AddResourceRequest) (*entity.Collection, error) {
	session, err := s.load(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	var updated entity.Collection
	err = session.Collections(func(store *collection.Store) error {
		if err := store.AddResource(name, request.Resource); err != nil {
			return err
		}
		updated, _ = store.Get(name)
		return nil
	})
	if err != nil {
		s.notifyFailure(ctx, sessionId, err)
		return nil, s.mapError(err)
	}

	s.notify(ctx, sessionId, constant.TitleResourceSaved,
		fmt.Sprintf(constant.DescResourceSavedFormat, name), entity.VariantSuccess)
	return &updated, nil
}

// SaveResource runs the save-to-collection flow. A missing target with no
// confirm_create answer is reported as ConfirmationRequired so the client can
// ask the user and retry.
func (s *sessionService) SaveResource(ctx context.Context, sessionId string, request *dto.SaveResourceRequest) (*dto.SaveResourceResponse, error) {
	session, err := s.load(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	var confirm collection.Confirmer
	if request.ConfirmCreate != nil {
		if *request.ConfirmCreate {
			confirm = collection.Always
		} else {
			confirm = collection.Never
		}
	}

	var (
		outcome collection.SaveOutcome
		saved   entity.Collection
	)
	err = session.Collections(func(store *collection.Store) error {
		var err error
		outcome, err = store.Save(request.Resource, request.Collection, confirm)
		if err != nil {
			return err
		}
		saved, _ = store.Get(request.Collection)
		return nil
	})
	if err != nil {
		if !errors.Is(err, collection.ErrConfirmationRequired) {
			s.notifyFailure(ctx, sessionId, err)
		}
		return nil, s.mapError(err)
	}

	if outcome != collection.SavedToExisting {
		s.notify(ctx, sessionId, constant.TitleCollectionCreated,
			fmt.Sprintf(constant.DescCollectionCreatedFormat, request.Collection), entity.VariantSuccess)
	}
	s.notify(ctx, sessionId, constant.TitleResourceSaved,
		fmt.Sprintf(constant.DescResourceSavedFormat, request.Collection), entity.VariantSuccess)

	return &dto.SaveResourceResponse{
		Outcome:    outcomeName(outcome),
		Collection: saved,
	}, nil
}

func outcomeName(o collection.SaveOutcome) string {
	switch o {
	case collection.SavedBootstrap:
		return "bootstrap"
	case collection.SavedAfterConfirm:
		return "created"
	default:
		return "existing"
	}
}

// ExpandResource never fails on upstream trouble; the reader sees a fixed
// message instead.
func (s *sessionService) ExpandResource(ctx context.Context, sessionId string, request *dto.ExpandSessionResourceRequest) (*dto.ExpandResourceResponse, error) {
	if _, err := s.load(ctx, sessionId); err != nil {
		return nil, err
	}

	res, err := s.expander.Expand(ctx, &dto.ExpandResourceRequest{
		Title:       request.Resource.Title,
		Description: request.Resource.Description,
	})
	if err != nil {
		s.logger.Warn("SessionService", "Expansion fell back to failure text", map[string]interface{}{
			"session_id": sessionId,
			"error":      err,
		})
		return &dto.ExpandResourceResponse{Content: constant.ExpandFailureContent, Success: false}, nil
	}
	return res, nil
}

func (s *sessionService) Settings(ctx context.Context, sessionId string) (*entity.UserSettings, error) {
	session, err := s.load(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	settings := session.Settings()
	return &settings, nil
}

func (s *sessionService) UpdateSettings(ctx context.Context, sessionId string, request *dto.UpdateSettingsRequest) (*entity.UserSettings, error) {
	session, err := s.load(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	settings := session.UpdateSettings(chat.SettingsPatch{
		Name:     request.Name,
		Email:    request.Email,
		DarkMode: request.DarkMode,
	})
	s.notify(ctx, sessionId, constant.TitleProfileUpdated, constant.DescProfileUpdated, entity.VariantSuccess)
	return &settings, nil
}

func (s *sessionService) SearchHistory(ctx context.Context, sessionId string) (*dto.SearchHistoryResponse, error) {
	session, err := s.load(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	return &dto.SearchHistoryResponse{Queries: session.SearchHistory()}, nil
}

func (s *sessionService) RemoveSearch(ctx context.Context, sessionId string, index int) error {
	session, err := s.load(ctx, sessionId)
	if err != nil {
		return err
	}
	if err := session.RemoveSearch(index); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *sessionService) mapError(err error) error {
	kind := apperror.Internal
	switch {
	case errors.Is(err, collection.ErrDuplicateName):
		kind = apperror.DuplicateName
	case errors.Is(err, collection.ErrDuplicateResource):
		kind = apperror.DuplicateResource
	case errors.Is(err, collection.ErrCollectionNotFound):
		kind = apperror.CollectionNotFound
	case errors.Is(err, collection.ErrConfirmationRequired):
		kind = apperror.ConfirmationRequired
	case errors.Is(err, chat.ErrIdentityRequired):
		kind = apperror.IdentityRequired
	case errors.Is(err, chat.ErrSendInProgress):
		kind = apperror.SendInProgress
	case errors.Is(err, chat.ErrEmptyName), errors.Is(err, chat.ErrHistoryIndex):
		kind = apperror.InvalidInput
	default:
		if _, ok := apperror.As(err); ok {
			return err
		}
		return apperror.Wrap(apperror.Internal, "Failed to process request. Please try again.", err)
	}
	return &apperror.Error{Kind: kind, Message: err.Error(), Err: err}
}

// notifyFailure turns a store violation into the matching toast.
func (s *sessionService) notifyFailure(ctx context.Context, sessionId string, err error) {
	switch {
	case errors.Is(err, collection.ErrDuplicateName):
		s.notify(ctx, sessionId, constant.TitleCollectionExists, constant.DescCollectionExists, entity.VariantDestructive)
	case errors.Is(err, collection.ErrDuplicateResource):
		s.notify(ctx, sessionId, constant.TitleAlreadySaved, constant.DescAlreadySaved, entity.VariantDestructive)
	case errors.Is(err, collection.ErrCollectionNotFound):
		s.notify(ctx, sessionId, constant.TitleCollectionNotFound, constant.DescCollectionNotFound, entity.VariantDestructive)
	}
}

func (s *sessionService) notify(ctx context.Context, sessionId, title, description string, variant entity.NotificationVariant) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.Publish(ctx, entity.Notification{
		SessionId:   sessionId,
		Title:       title,
		Description: description,
		Variant:     variant,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		s.logger.Warn("SessionService", "Failed to publish notification", map[string]interface{}{
			"session_id": sessionId,
			"title":      title,
			"error":      err,
		})
	}
}
