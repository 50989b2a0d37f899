package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"email-agent/internal/handler"
)

func SetupRoutes(
	e *echo.Echo,
	emailHandler *handler.EmailHandler,
	agentHandler *handler.AgentHandler,
	promptHandler *handler.PromptHandler,
) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api")

	// Email collection routes
	api.GET("/emails", emailHandler.GetEmails)
	api.GET("/emails/:id", emailHandler.GetEmail)
	api.POST("/emails/upload", emailHandler.UploadEmails)
	api.GET("/emails/export", emailHandler.ExportEmails)
	api.POST("/emails/import/gmail", emailHandler.ImportFromGmail)

	// Agent routes
	api.POST("/categorize", agentHandler.Categorize)
	api.POST("/categorize-all", agentHandler.CategorizeAll)
	api.POST("/extract-actions", agentHandler.ExtractActions)
	api.POST("/generate-reply", agentHandler.GenerateReply)
	api.POST("/summarize", agentHandler.Summarize)
	api.POST("/chat", agentHandler.Chat)

	// Action item routes
	api.GET("/action-items", emailHandler.GetActionItems)
	api.POST("/action-items/:id/complete", emailHandler.CompleteActionItem)

	// Prompt template routes
	api.GET("/prompts", promptHandler.GetPrompts)
	api.POST("/prompts/update", promptHandler.UpdatePrompt)
	api.POST("/prompts/reset", promptHandler.ResetPrompts)

	// Real-time progress updates via Server-Sent Events (SSE)
	api.GET("/events", emailHandler.SSEEvents)
}
