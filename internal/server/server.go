// Package server exposes the assistant over HTTP: chat, conversation
// history, notification preferences, and device token registration.
package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"accountanta/finassist/internal/logging"
	"accountanta/finassist/internal/orchestrator"
	"accountanta/finassist/internal/store"
)

// ChatProcessor runs one conversation turn. Satisfied by the orchestrator.
type ChatProcessor interface {
	ProcessMessage(ctx context.Context, userID, userMessage, conversationID string) *orchestrator.Result
}

// Server wires the HTTP handlers over the chat processor and store.
type Server struct {
	processor ChatProcessor
	store     *store.Store
	log       logging.Logger
	router    *gin.Engine
}

// New builds the server and registers all routes.
func New(processor ChatProcessor, st *store.Store, logger logging.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		processor: processor,
		store:     st,
		log:       logger,
		router:    gin.New(),
	}
	s.router.Use(gin.Recovery())
	s.registerRoutes()
	return s
}

// Router exposes the configured handler, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run serves HTTP on the given address until the listener fails.
func (s *Server) Run(addr string) error {
	s.log.WithField("address", addr).Info("Starting HTTP server")
	return s.router.Run(addr)
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.router.Group("/api/v1")
	api.Use(AuthMiddleware(s.log))

	chat := api.Group("/chat")
	chat.POST("/messages", s.createMessage)
	chat.GET("/conversations", s.listConversations)
	chat.GET("/conversations/:id", s.showConversation)

	notifications := api.Group("/notifications")
	notifications.GET("/preferences", s.getPreferences)
	notifications.PUT("/preferences", s.updatePreferences)

	api.POST("/webhooks/fcm_token", s.registerFCMToken)
}
