package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"email-agent/internal/logger"
	"email-agent/internal/model"
	"email-agent/internal/service"
)

type AgentHandler struct {
	emailService service.EmailService
	agentService service.AgentService
	logger       *logger.Logger
}

func NewAgentHandler(emailService service.EmailService, agentService service.AgentService, logger *logger.Logger) *AgentHandler {
	return &AgentHandler{
		emailService: emailService,
		agentService: agentService,
		logger:       logger,
	}
}

// Categorize classifies a single email.
func (h *AgentHandler) Categorize(c echo.Context) error {
	var req struct {
		Email *model.Email `json:"email"`
	}

	if err := c.Bind(&req); err != nil || req.Email == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Email is required",
		})
	}

	category, err := h.emailService.CategorizeEmail(c.Request().Context(), req.Email)
	if err != nil {
		h.logger.Error("Failed to categorize email:", req.Email.ID, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to categorize email",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"email_id": req.Email.ID,
		"category": string(category),
	})
}

// CategorizeAll classifies every stored email, emitting progress over SSE.
func (h *AgentHandler) CategorizeAll(c echo.Context) error {
	results, err := h.emailService.CategorizeAll(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to categorize all emails:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to categorize emails",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Categorization complete",
		"results": results,
	})
}

// ExtractActions pulls action items out of an email.
func (h *AgentHandler) ExtractActions(c echo.Context) error {
	var req struct {
		Email *model.Email `json:"email"`
	}

	if err := c.Bind(&req); err != nil || req.Email == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Email is required",
		})
	}

	items, err := h.emailService.ExtractActions(c.Request().Context(), req.Email)
	if err != nil {
		h.logger.Error("Failed to extract actions:", req.Email.ID, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to extract action items",
		})
	}

	return c.JSON(http.StatusOK, items)
}

// GenerateReply drafts a reply to an email in the requested tone.
func (h *AgentHandler) GenerateReply(c echo.Context) error {
	var req struct {
		Email   *model.Email `json:"email"`
		Tone    string       `json:"tone"`
		Context string       `json:"context"`
	}

	if err := c.Bind(&req); err != nil || req.Email == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Email is required",
		})
	}

	reply, err := h.emailService.GenerateReply(c.Request().Context(), req.Email, req.Tone, req.Context)
	if err != nil {
		h.logger.Error("Failed to generate reply:", req.Email.ID, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to generate reply",
		})
	}

	return c.JSON(http.StatusOK, reply)
}

// Summarize condenses a batch of emails into a single overview.
func (h *AgentHandler) Summarize(c echo.Context) error {
	var req struct {
		Emails []*model.Email `json:"emails"`
		Focus  string         `json:"focus"`
	}

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	if len(req.Emails) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Emails are required",
		})
	}

	summary := h.agentService.Summarize(c.Request().Context(), req.Emails, req.Focus)

	return c.JSON(http.StatusOK, map[string]string{
		"summary": summary,
	})
}

// Chat answers a conversational query about the email collection.
func (h *AgentHandler) Chat(c echo.Context) error {
	var req struct {
		Message             string              `json:"message"`
		ConversationHistory []model.ChatMessage `json:"conversation_history"`
		EmailContext        []*model.Email      `json:"email_context"`
	}

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	if req.Message == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Message is required",
		})
	}

	response, err := h.emailService.Chat(c.Request().Context(), req.Message, req.ConversationHistory, req.EmailContext)
	if err != nil {
		h.logger.Error("Failed to answer chat message:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to answer chat message",
		})
	}

	return c.JSON(http.StatusOK, response)
}
