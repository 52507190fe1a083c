// Package container provides dependency injection for the application.
// It centralizes the creation and wiring of all components, making the
// dependency graph explicit and testable.
package container

import (
	"context"
	"fmt"

	"accountanta/finassist/internal/analytics"
	"accountanta/finassist/internal/config"
	"accountanta/finassist/internal/llm"
	"accountanta/finassist/internal/logging"
	"accountanta/finassist/internal/notify"
	"accountanta/finassist/internal/orchestrator"
	"accountanta/finassist/internal/records"
	"accountanta/finassist/internal/store"
	"accountanta/finassist/internal/tools"
)

// Container holds all application dependencies. It is immutable after
// creation: fields are private and reachable only through getters.
type Container struct {
	logger       logging.Logger
	config       *config.Config
	store        *store.Store
	provider     records.Provider
	engine       *analytics.Engine
	catalog      []tools.Declaration
	dispatcher   *tools.Dispatcher
	geminiClient *llm.GeminiClient
	orchestrator *orchestrator.Orchestrator
	jobs         *notify.Jobs
}

// NewContainer creates and wires all application dependencies. Tool catalog
// and dispatcher parity is verified here so a missing handler fails startup
// instead of a conversation.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)

	st, err := store.Open(cfg.Database.Path, logger)
	if err != nil {
		return nil, err
	}

	provider := records.NewLocalProvider(cfg.Records.Directory, logger)
	engine := analytics.NewEngine(provider, logger)

	catalog := tools.Catalog()
	dispatcher := tools.NewDispatcher(engine, logger)
	if err := dispatcher.Verify(catalog); err != nil {
		st.Close()
		return nil, fmt.Errorf("tool catalog mismatch: %w", err)
	}

	geminiClient, err := llm.NewGeminiClient(ctx, cfg, logger)
	if err != nil {
		st.Close()
		return nil, err
	}

	orch := orchestrator.New(geminiClient, dispatcher, st, catalog, logger)
	jobs := notify.NewJobs(st, engine, provider, notify.NewLogSender(logger), logger)

	logger.Info("Container initialized successfully",
		logging.Field{Key: logging.FieldCount, Value: len(catalog)},
		logging.Field{Key: "model", Value: cfg.Gemini.Model})

	return &Container{
		logger:       logger,
		config:       cfg,
		store:        st,
		provider:     provider,
		engine:       engine,
		catalog:      catalog,
		dispatcher:   dispatcher,
		geminiClient: geminiClient,
		orchestrator: orch,
		jobs:         jobs,
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the persistence layer.
func (c *Container) GetStore() *store.Store {
	return c.store
}

// GetProvider returns the financial-records provider.
func (c *Container) GetProvider() records.Provider {
	return c.provider
}

// GetEngine returns the analytics engine.
func (c *Container) GetEngine() *analytics.Engine {
	return c.engine
}

// GetCatalog returns the tool declarations advertised to the model.
func (c *Container) GetCatalog() []tools.Declaration {
	return c.catalog
}

// GetDispatcher returns the tool dispatcher.
func (c *Container) GetDispatcher() *tools.Dispatcher {
	return c.dispatcher
}

// GetOrchestrator returns the conversation orchestrator.
func (c *Container) GetOrchestrator() *orchestrator.Orchestrator {
	return c.orchestrator
}

// GetJobs returns the notification job set.
func (c *Container) GetJobs() *notify.Jobs {
	return c.jobs
}

// Close releases container resources.
func (c *Container) Close() error {
	if err := c.geminiClient.Close(); err != nil {
		c.logger.WithError(err).Warn("Failed to close model client")
	}
	if err := c.store.Close(); err != nil {
		return err
	}
	c.logger.Info("Container closed")
	return nil
}
