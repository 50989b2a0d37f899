package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"email-agent/internal/logger"
	"email-agent/internal/prompt"
)

type PromptHandler struct {
	store  *prompt.Store
	logger *logger.Logger
}

func NewPromptHandler(store *prompt.Store, logger *logger.Logger) *PromptHandler {
	return &PromptHandler{
		store:  store,
		logger: logger,
	}
}

// GetPrompts returns the current template set, defaults included.
func (h *PromptHandler) GetPrompts(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Load())
}

// UpdatePrompt replaces one template and persists the set.
func (h *PromptHandler) UpdatePrompt(c echo.Context) error {
	var req struct {
		PromptType string `json:"prompt_type"`
		PromptText string `json:"prompt_text"`
	}

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	if err := h.store.Update(req.PromptType, req.PromptText); err != nil {
		if strings.Contains(err.Error(), "unknown prompt key") {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": err.Error(),
			})
		}
		h.logger.Error("Failed to save prompt:", req.PromptType, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to save prompt",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Prompt updated successfully",
	})
}

// ResetPrompts restores the built-in defaults.
func (h *PromptHandler) ResetPrompts(c echo.Context) error {
	if err := h.store.Reset(); err != nil {
		h.logger.Error("Failed to reset prompts:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to reset prompts",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Prompts reset to defaults",
	})
}
