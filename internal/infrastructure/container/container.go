package container

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdugdh24/cofound-backend/internal/config"
	"github.com/gdugdh24/cofound-backend/internal/delivery/http"
	"github.com/gdugdh24/cofound-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/cofound-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/cofound-backend/internal/infrastructure/database"
	"github.com/gdugdh24/cofound-backend/internal/infrastructure/llm"
	"github.com/gdugdh24/cofound-backend/internal/infrastructure/server"
	"github.com/gdugdh24/cofound-backend/internal/repository/postgres"
	redisrepo "github.com/gdugdh24/cofound-backend/internal/repository/redis"
	"github.com/gdugdh24/cofound-backend/internal/usecase/assistant"
	"github.com/gdugdh24/cofound-backend/internal/usecase/auth"
	"github.com/gdugdh24/cofound-backend/internal/usecase/directory"
	"github.com/gdugdh24/cofound-backend/internal/usecase/messaging"
	"github.com/gdugdh24/cofound-backend/internal/usecase/onboarding"
	"github.com/gdugdh24/cofound-backend/internal/usecase/profile"
	"github.com/gdugdh24/cofound-backend/internal/usecase/team"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
	Gemini *llm.GeminiClient
	Log    zerolog.Logger
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Container, error) {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgresDB(ctx, &cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db, database.Up); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		log.Info().Msg("database migrations applied")
	}

	redisClient, err := database.NewRedisClient(ctx, &cfg.Redis)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	c := &Container{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
		Log:    log,
	}

	// The assistant runs without a completer and answers "not configured".
	completer := c.newCompleter(ctx)

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	onboardingRepo := postgres.NewOnboardingRepository(db)
	teamRepo := postgres.NewTeamRepository(db)
	messageRepo := postgres.NewMessageRepository(db)
	aiMessageRepo := postgres.NewAIMessageRepository(db)
	sessionRepo := redisrepo.NewSessionRepository(redisClient)
	onboardingStateRepo := redisrepo.NewOnboardingStateRepository(redisClient, cfg.Onboarding.DraftTTL)
	messageEvents := redisrepo.NewMessageEventBus(redisClient)

	// Initialize use cases
	authUseCase := auth.NewAuthUseCase(
		userRepo,
		sessionRepo,
		cfg.JWT.AccessSecret,
		cfg.JWT.AccessExpiry(),
	)
	profileUseCase := profile.NewProfileUseCase(profileRepo, onboardingStateRepo)
	onboardingUseCase := onboarding.NewOnboardingUseCase(
		profileRepo,
		onboardingRepo,
		onboardingStateRepo,
		log,
	)
	directoryUseCase := directory.NewDirectoryUseCase(profileRepo, teamRepo)
	teamUseCase := team.NewTeamUseCase(teamRepo, profileRepo, log)
	messagingUseCase := messaging.NewMessagingUseCase(
		messageRepo,
		profileRepo,
		messageEvents,
		log,
	)
	assistantUseCase := assistant.NewAssistantUseCase(
		completer,
		profileRepo,
		aiMessageRepo,
		log,
	)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUseCase)
	profileHandler := handler.NewProfileHandler(profileUseCase)
	onboardingHandler := handler.NewOnboardingHandler(onboardingUseCase)
	browseHandler := handler.NewBrowseHandler(directoryUseCase)
	teamHandler := handler.NewTeamHandler(teamUseCase)
	messageHandler := handler.NewMessageHandler(messagingUseCase)
	assistantHandler := handler.NewAssistantHandler(assistantUseCase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authUseCase, log)

	// Initialize router
	router := http.NewRouter(
		authHandler,
		profileHandler,
		onboardingHandler,
		browseHandler,
		teamHandler,
		messageHandler,
		assistantHandler,
		authMiddleware,
		log,
	)

	c.Server = server.NewServer(&cfg.Server, router.Setup(), log)
	return c, nil
}

// newCompleter picks the assistant backend. It returns a nil interface when
// the provider has no key or fails to start.
func (c *Container) newCompleter(ctx context.Context) llm.Completer {
	cfg := c.Config.LLM

	switch cfg.Provider {
	case config.LLMProviderGemini:
		client, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			c.warnNoAssistant(err)
			return nil
		}
		c.Gemini = client
		return client
	default:
		client, err := llm.NewGatewayClient(cfg.APIKey, cfg.BaseURL, cfg.Model)
		if err != nil {
			c.warnNoAssistant(err)
			return nil
		}
		return client
	}
}

func (c *Container) warnNoAssistant(err error) {
	event := c.Log.Warn().Str("provider", c.Config.LLM.Provider)
	if !errors.Is(err, llm.ErrNotConfigured) {
		event = event.Err(err)
	}
	event.Msg("assistant disabled")
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Gemini != nil {
		if err := c.Gemini.Close(); err != nil {
			c.Log.Warn().Err(err).Msg("error closing gemini client")
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Log.Warn().Err(err).Msg("error closing redis")
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
