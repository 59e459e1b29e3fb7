package http

import (
	"github.com/gdugdh24/cofound-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/cofound-backend/internal/delivery/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type Router struct {
	authHandler       *handler.AuthHandler
	profileHandler    *handler.ProfileHandler
	onboardingHandler *handler.OnboardingHandler
	browseHandler     *handler.BrowseHandler
	teamHandler       *handler.TeamHandler
	messageHandler    *handler.MessageHandler
	assistantHandler  *handler.AssistantHandler
	authMiddleware    *middleware.AuthMiddleware
	log               zerolog.Logger
}

func NewRouter(
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	onboardingHandler *handler.OnboardingHandler,
	browseHandler *handler.BrowseHandler,
	teamHandler *handler.TeamHandler,
	messageHandler *handler.MessageHandler,
	assistantHandler *handler.AssistantHandler,
	authMiddleware *middleware.AuthMiddleware,
	log zerolog.Logger,
) *Router {
	return &Router{
		authHandler:       authHandler,
		profileHandler:    profileHandler,
		onboardingHandler: onboardingHandler,
		browseHandler:     browseHandler,
		teamHandler:       teamHandler,
		messageHandler:    messageHandler,
		assistantHandler:  assistantHandler,
		authMiddleware:    authMiddleware,
		log:               log,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.Logging(r.log), middleware.Metrics())

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", r.authHandler.SignUp)
			auth.POST("/signin", r.authHandler.SignIn)
			auth.POST("/signout", r.authMiddleware.RequireAuth(), r.authHandler.SignOut)
			auth.GET("/me", r.authMiddleware.RequireAuth(), r.authHandler.Me)
		}

		// Assistant bridge, callable from any origin with or without a session
		functions := v1.Group("/functions")
		functions.Use(middleware.AssistantCORS(), r.authMiddleware.OptionalAuth())
		{
			functions.POST("/dova-chat", r.assistantHandler.Chat)
			functions.OPTIONS("/dova-chat", func(c *gin.Context) { c.Status(204) })
		}

		// Protected routes
		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			profile := protected.Group("/profile")
			{
				profile.GET("/me", r.profileHandler.GetMyProfile)
				profile.PUT("/me", r.profileHandler.UpdateMyProfile)
			}
			protected.GET("/profiles/:id", r.profileHandler.GetProfile)

			onboarding := protected.Group("/onboarding")
			{
				onboarding.GET("", r.onboardingHandler.GetState)
				onboarding.PATCH("/draft", r.onboardingHandler.UpdateDraft)
				onboarding.POST("/next", r.onboardingHandler.Next)
				onboarding.POST("/back", r.onboardingHandler.Back)
				onboarding.POST("/skip", r.onboardingHandler.Skip)
			}

			protected.GET("/browse", r.browseHandler.Browse)

			teams := protected.Group("/teams")
			{
				teams.POST("", r.teamHandler.CreateTeam)
				teams.GET("/:id", r.teamHandler.GetTeam)
				teams.DELETE("/:id", r.teamHandler.DeleteTeam)
			}

			messages := protected.Group("/messages")
			{
				messages.POST("", r.messageHandler.Send)
				messages.GET("", r.messageHandler.Inbox)
				messages.GET("/unread-count", r.messageHandler.UnreadCount)
				messages.GET("/unread-count/stream", r.messageHandler.StreamUnreadCount)
				messages.GET("/threads/:thread_id", r.messageHandler.Thread)
				messages.POST("/:id/reply", r.messageHandler.Reply)
				messages.POST("/:id/read", r.messageHandler.MarkRead)
				messages.DELETE("/:id", r.messageHandler.Delete)
			}

			protected.GET("/assistant/history", r.assistantHandler.History)
		}
	}

	return router
}
