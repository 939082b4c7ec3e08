package server

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skillsmith/skillsmith/artifact"
	"github.com/skillsmith/skillsmith/auth"
	"github.com/skillsmith/skillsmith/llm"
	"github.com/skillsmith/skillsmith/model"
	"github.com/skillsmith/skillsmith/prompt"
	"github.com/skillsmith/skillsmith/sse"
)

type generateRequest struct {
	Idea     string `json:"idea" binding:"required"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

// handleGenerate streams the model's output to the client as server-sent
// events, then parses the full text and records it in history.
func (s *Server) handleGenerate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "idea is required")
		return
	}
	if strings.TrimSpace(req.Idea) == "" {
		respondError(c, http.StatusBadRequest, "idea is required")
		return
	}

	userID := auth.UserID(c)
	providerName, modelName := s.resolveProvider(c, userID, req.Provider, req.Model)

	provider, err := s.providers(providerName, modelName)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	system, user, err := prompt.Build(prompt.Request{Idea: req.Idea, Name: req.Name})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to build prompt")
		return
	}

	writer := sse.NewWriter(c.Writer)
	client := llm.NewClient(provider)

	full, _, streamErr := client.StreamTo(c.Request.Context(), llm.GenerateRequest{
		System: system,
		Prompt: user,
	}, func(chunk string) {
		if err := writer.Content(chunk); err != nil {
			log.Printf("sse write failed: %v", err)
		}
	})
	if streamErr != nil {
		writer.Error(streamErr.Error())
		writer.Done()
		return
	}

	result := artifact.Parse(full)
	entry := model.HistoryEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		Idea:      req.Idea,
		SkillName: artifact.SkillName(result),
		Result:    result,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.SaveEntry(c.Request.Context(), entry); err != nil {
		log.Printf("failed to save history entry: %v", err)
		writer.Error("generation succeeded but could not be saved")
		writer.Done()
		return
	}

	writer.Done()
}

// resolveProvider picks the provider and model for a generation.
// Request fields win, then the user's saved settings, then server defaults.
func (s *Server) resolveProvider(c *gin.Context, userID, reqProvider, reqModel string) (string, string) {
	providerName := reqProvider
	modelName := reqModel

	if providerName == "" {
		if saved, err := s.store.Setting(c.Request.Context(), userID, "provider"); err == nil {
			providerName = saved
		}
	}
	if modelName == "" {
		if saved, err := s.store.Setting(c.Request.Context(), userID, "model"); err == nil {
			modelName = saved
		}
	}
	if providerName == "" {
		providerName = s.settings.LLM.Provider
	}
	return providerName, modelName
}
