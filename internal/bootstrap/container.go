package bootstrap

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"path/filepath"
	"time"

	"eduease-be/internal/config"
	"eduease-be/internal/constant"
	"eduease-be/internal/controller"
	"eduease-be/internal/handler"
	"eduease-be/internal/pkg/logger"
	"eduease-be/internal/pkg/metrics"
	"eduease-be/internal/pkg/serverutils"
	"eduease-be/internal/repository/memory"
	redisrepo "eduease-be/internal/repository/redis"
	"eduease-be/internal/service"
	"eduease-be/internal/websocket"
	"eduease-be/pkg/chat"
	"eduease-be/pkg/llm"
	"eduease-be/pkg/llm/factory"
	pktNats "eduease-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	ScholarController controller.IScholarController
	SessionController controller.ISessionController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub

	Logger  logger.ILogger
	Metrics *metrics.Metrics

	closers []func()
}

// Infra holds optional external connections. Nil fields fall back to
// in-process implementations.
type Infra struct {
	Redis *redis.Client
	Nats  *pktNats.Publisher
}

func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction(), cfg.Secrets()...)
	sysLogger.Info("Bootstrap", "Configuration loaded", map[string]interface{}{"config": cfg.String()})

	llmProvider, err := factory.NewLLMProvider(ctx, factory.ProviderConfig{
		Provider: cfg.Ai.LLMProvider,
		Model:    cfg.Ai.LLMModel,
		APIKey:   cfg.APIKeyFor(cfg.Ai.LLMProvider),
		BaseURL:  cfg.Ai.LLMBaseURL,
	})
	if err != nil {
		return nil, err
	}
	sysLogger.Info("Bootstrap", "Using LLM provider", map[string]interface{}{
		"provider": cfg.Ai.LLMProvider,
		"model":    cfg.Ai.LLMModel,
	})

	infra := Infra{
		Redis: connectRedis(ctx, cfg.App.RedisURL, sysLogger),
		Nats:  connectNats(cfg.App.NatsURL, sysLogger),
	}

	return Wire(cfg, sysLogger, llmProvider, infra), nil
}

// Wire assembles the object graph from already-built dependencies.
func Wire(cfg *config.Config, sysLogger logger.ILogger, llmProvider llm.LLMProvider, infra Infra) *Container {
	m := metrics.New()

	jwtSecret := []byte(cfg.Session.JwtSecret)
	if len(jwtSecret) == 0 {
		jwtSecret = randomSecret()
		sysLogger.Warn("Bootstrap", "JWT_SECRET not set, tokens will not survive a restart", nil)
	}

	// Event Bus
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})

	var identities chat.IdentityStore = memory.NewIdentityRepository()
	if infra.Redis != nil {
		identities = redisrepo.NewIdentityRepository(infra.Redis, 0)
	}

	wsLogger := logger.NewIsolatedLogger(filepath.Join(filepath.Dir(cfg.App.LogFilePath), "notification.log"), cfg.Secrets()...)
	wsHub := websocket.NewHub(infra.Redis, wsLogger)

	var mirror service.EventPublisher
	if infra.Nats != nil {
		mirror = infra.Nats
	}

	publisherService := service.NewPublisherService(constant.NotificationTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, constant.NotificationTopic, wsHub, mirror, wsLogger)

	scholarService := service.NewScholarService(llmProvider, cfg.Ai.Timeout, m, sysLogger)
	expandService := service.NewExpandService(llmProvider, cfg.Ai.Timeout, m, sysLogger)

	ttl := cfg.Session.TTL
	sessionService := service.NewSessionService(
		memory.NewSessionRepository(ttl),
		identities,
		scholarService,
		expandService,
		publisherService,
		func(sessionId string) (string, error) {
			return serverutils.NewSessionToken(jwtSecret, sessionId, ttl)
		},
		m,
		sysLogger,
	)

	c := &Container{
		ScholarController:   controller.NewScholarController(scholarService, expandService),
		SessionController:   controller.NewSessionController(sessionService, serverutils.JwtMiddleware(jwtSecret)),
		NotificationHandler: handler.NewNotificationHandler(wsHub, jwtSecret, wsLogger),
		WebSocketHub:        wsHub,
		ConsumerService:     consumerService,
		Logger:              sysLogger,
		Metrics:             m,
	}

	c.closers = append(c.closers, func() { _ = pubSub.Close() })
	if infra.Nats != nil {
		c.closers = append(c.closers, infra.Nats.Close)
	}
	if infra.Redis != nil {
		c.closers = append(c.closers, func() { _ = infra.Redis.Close() })
	}
	return c
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

func connectRedis(ctx context.Context, url string, log logger.ILogger) *redis.Client {
	if url == "" {
		log.Info("Bootstrap", "REDIS_URL not set, using in-memory identity store", nil)
		return nil
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Warn("Bootstrap", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err})
		opt = &redis.Options{Addr: url}
	}
	rdb := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Warn("Bootstrap", "Failed to connect to Redis, using in-memory identity store", map[string]interface{}{"error": err})
		_ = rdb.Close()
		return nil
	}
	return rdb
}

func connectNats(url string, log logger.ILogger) *pktNats.Publisher {
	if url == "" {
		return nil
	}
	pub, err := pktNats.NewPublisher(url)
	if err != nil {
		log.Warn("Bootstrap", "Failed to connect to NATS, events will not be mirrored", map[string]interface{}{"error": err})
		return nil
	}
	return pub
}

func randomSecret() []byte {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return []byte(hex.EncodeToString(b))
}
