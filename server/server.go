// HTTP API server.
//
// Routes:
// - POST /api/auth/register, POST /api/auth/login, GET /api/auth/me
// - POST /api/generate (SSE stream)
// - GET /api/history, GET /api/history/:id, DELETE /api/history/:id
// - GET /api/history/:id/export (file or zip download)
// - POST /api/history/:id/save (write into workspace)
// - GET/PUT /api/settings
// - GET /api/workspace

package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillsmith/skillsmith/auth"
	"github.com/skillsmith/skillsmith/config"
	"github.com/skillsmith/skillsmith/llm"
	"github.com/skillsmith/skillsmith/storage"
)

// ProviderFactory builds an LLM provider for a provider/model pair.
// Tests substitute a fake; the default reads API keys from the environment.
type ProviderFactory func(provider, model string) (llm.Provider, error)

// Server wires the HTTP API together.
type Server struct {
	store     storage.Store
	tokens    *auth.TokenManager
	settings  config.Settings
	providers ProviderFactory
}

// New creates a server.
func New(store storage.Store, tokens *auth.TokenManager, settings config.Settings, providers ProviderFactory) *Server {
	if providers == nil {
		providers = DefaultProviderFactory
	}
	return &Server{
		store:     store,
		tokens:    tokens,
		settings:  settings,
		providers: providers,
	}
}

// DefaultProviderFactory builds a real provider, reading the API key from
// the environment.
func DefaultProviderFactory(provider, model string) (llm.Provider, error) {
	providerType, err := llm.ParseProviderType(provider)
	if err != nil {
		return nil, err
	}
	builder := llm.NewProviderBuilder(providerType)
	if model != "" {
		builder = builder.Model(model)
	}
	return builder.FromEnv()
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	api := router.Group("/api")
	{
		api.POST("/auth/register", s.handleRegister)
		api.POST("/auth/login", s.handleLogin)

		protected := api.Group("", auth.RequireAuth(s.tokens))
		{
			protected.GET("/auth/me", s.handleMe)
			protected.POST("/generate", s.handleGenerate)
			protected.GET("/history", s.handleHistoryList)
			protected.GET("/history/:id", s.handleHistoryShow)
			protected.DELETE("/history/:id", s.handleHistoryDelete)
			protected.GET("/history/:id/export", s.handleExport)
			protected.POST("/history/:id/save", s.handleSave)
			protected.GET("/settings", s.handleSettingsGet)
			protected.PUT("/settings", s.handleSettingsPut)
			protected.GET("/workspace", s.handleWorkspace)
		}
	}

	return router
}

// Run starts the HTTP server on the configured address.
func (s *Server) Run() error {
	addr := s.settings.Server.Addr
	if err := s.Router().Run(addr); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func respondNotFound(c *gin.Context) {
	respondError(c, http.StatusNotFound, "not found")
}
