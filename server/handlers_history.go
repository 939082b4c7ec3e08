package server

import (
	"bytes"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/skillsmith/skillsmith/auth"
	"github.com/skillsmith/skillsmith/export"
	"github.com/skillsmith/skillsmith/model"
	"github.com/skillsmith/skillsmith/workspace"
)

func (s *Server) handleHistoryList(c *gin.Context) {
	entries, err := s.store.List(c.Request.Context(), auth.UserID(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list history")
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (s *Server) handleHistoryShow(c *gin.Context) {
	entry, ok := s.ownedEntry(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (s *Server) handleHistoryDelete(c *gin.Context) {
	entry, ok := s.ownedEntry(c)
	if !ok {
		return
	}
	if err := s.store.DeleteEntry(c.Request.Context(), entry.ID); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to delete entry")
		return
	}
	c.Status(http.StatusNoContent)
}

// handleExport downloads an entry: the file itself for a single-file
// artifact, a zip of all files otherwise.
func (s *Server) handleExport(c *gin.Context) {
	entry, ok := s.ownedEntry(c)
	if !ok {
		return
	}

	if !entry.Result.MultiFile() {
		primary := entry.Result.Primary()
		name := filepath.Base(primary.Path)
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		c.Data(http.StatusOK, "application/octet-stream", []byte(primary.Content))
		return
	}

	var buf bytes.Buffer
	if err := export.Archive(&buf, entry.Result.Files); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to build archive")
		return
	}

	filename := export.ArchiveName(entry.SkillName)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/zip", buf.Bytes())
}

type saveRequest struct {
	Dir string `json:"dir"`
}

// handleSave writes the entry's files into the detected skills directory.
func (s *Server) handleSave(c *gin.Context) {
	entry, ok := s.ownedEntry(c)
	if !ok {
		return
	}

	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	target, err := workspace.Detect(req.Dir)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to detect workspace")
		return
	}

	root := filepath.Join(target.Path, skillDirName(entry))
	if err := export.SaveAll(root, entry.Result.Files); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to save files")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"label": target.Label,
		"path":  root,
		"files": len(entry.Result.Files),
	})
}

func skillDirName(entry model.HistoryEntry) string {
	if entry.SkillName != "" {
		return entry.SkillName
	}
	return entry.ID
}

// ownedEntry loads the :id entry and enforces ownership. Entries belonging
// to other users look like missing entries.
func (s *Server) ownedEntry(c *gin.Context) (model.HistoryEntry, bool) {
	entry, err := s.store.Entry(c.Request.Context(), c.Param("id"))
	if err != nil || entry.UserID != auth.UserID(c) {
		respondNotFound(c)
		return model.HistoryEntry{}, false
	}
	return entry, true
}
