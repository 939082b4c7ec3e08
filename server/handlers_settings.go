package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillsmith/skillsmith/auth"
	"github.com/skillsmith/skillsmith/config"
	"github.com/skillsmith/skillsmith/workspace"
)

func (s *Server) handleSettingsGet(c *gin.Context) {
	settings, err := s.store.Settings(c.Request.Context(), auth.UserID(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load settings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

func (s *Server) handleSettingsPut(c *gin.Context) {
	var req map[string]string
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "expected a flat string map")
		return
	}

	// Unknown provider names are rejected. A missing API key is not an
	// error here; it only matters at generation time.
	if provider, ok := req["provider"]; ok && provider != "" {
		if _, err := config.ModelFor(provider); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	userID := auth.UserID(c)
	for key, value := range req {
		if err := s.store.SetSetting(c.Request.Context(), userID, key, value); err != nil {
			respondError(c, http.StatusInternalServerError, "failed to save settings")
			return
		}
	}

	settings, err := s.store.Settings(c.Request.Context(), userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load settings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// handleWorkspace reports where saved skills would land for a directory.
func (s *Server) handleWorkspace(c *gin.Context) {
	target, err := workspace.Detect(c.Query("dir"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to detect workspace")
		return
	}
	c.JSON(http.StatusOK, gin.H{"label": target.Label, "path": target.Path})
}
