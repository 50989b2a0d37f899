package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"email-agent/internal/logger"
	"email-agent/internal/service"
	"email-agent/internal/sse"
)

type EmailHandler struct {
	emailService service.EmailService
	events       *sse.Manager
	logger       *logger.Logger
}

func NewEmailHandler(emailService service.EmailService, events *sse.Manager, logger *logger.Logger) *EmailHandler {
	return &EmailHandler{
		emailService: emailService,
		events:       events,
		logger:       logger,
	}
}

// GetEmails returns the stored collection, optionally filtered by category.
func (h *EmailHandler) GetEmails(c echo.Context) error {
	category := c.QueryParam("category")

	limit := 0
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err == nil && parsed > 0 {
			limit = parsed
		}
	}

	emails, err := h.emailService.ListEmails(c.Request().Context(), category, limit)
	if err != nil {
		h.logger.Error("Failed to list emails:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to list emails",
		})
	}

	return c.JSON(http.StatusOK, emails)
}

// GetEmail returns a single email by id.
func (h *EmailHandler) GetEmail(c echo.Context) error {
	id := c.Param("id")

	email, err := h.emailService.GetEmail(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Email not found",
		})
	}

	return c.JSON(http.StatusOK, email)
}

// UploadEmails replaces the stored collection with an uploaded JSON file.
func (h *EmailHandler) UploadEmails(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "File is required",
		})
	}

	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".json") {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "File must be a .json file",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("Failed to open uploaded file:", err)
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Failed to read uploaded file",
		})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("Failed to read uploaded file:", err)
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Failed to read uploaded file",
		})
	}

	count, err := h.emailService.ImportJSON(c.Request().Context(), data)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": err.Error(),
		})
	}

	h.logger.Info("Imported", count, "emails from upload")
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("Imported %d emails", count),
		"count":   count,
	})
}

// ExportEmails returns the full stored collection as a JSON download.
func (h *EmailHandler) ExportEmails(c echo.Context) error {
	emails, err := h.emailService.ExportEmails(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to export emails:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to export emails",
		})
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="emails.json"`)
	return c.JSON(http.StatusOK, emails)
}

// ImportFromGmail pulls recent messages into the collection using a
// caller-supplied OAuth access token.
func (h *EmailHandler) ImportFromGmail(c echo.Context) error {
	var req struct {
		AccessToken string `json:"access_token"`
		MaxResults  int64  `json:"max_results"`
	}

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	if req.AccessToken == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Access token is required",
		})
	}

	count, err := h.emailService.ImportFromGmail(c.Request().Context(), req.AccessToken, req.MaxResults)
	if err != nil {
		h.logger.Error("Failed to import from Gmail:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to import emails from Gmail",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("Imported %d emails from Gmail", count),
		"count":   count,
	})
}

// GetActionItems lists extracted action items, optionally filtered by
// completion state.
func (h *EmailHandler) GetActionItems(c echo.Context) error {
	var completed *bool
	if completedStr := c.QueryParam("completed"); completedStr != "" {
		parsed, err := strconv.ParseBool(completedStr)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "Invalid completed filter",
			})
		}
		completed = &parsed
	}

	items, err := h.emailService.ListActionItems(c.Request().Context(), completed)
	if err != nil {
		h.logger.Error("Failed to list action items:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to list action items",
		})
	}

	return c.JSON(http.StatusOK, items)
}

// CompleteActionItem marks an action item as done.
func (h *EmailHandler) CompleteActionItem(c echo.Context) error {
	id := c.Param("id")

	if err := h.emailService.CompleteActionItem(c.Request().Context(), id); err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Action item not found",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Action item completed",
	})
}

// SSEEvents streams progress events to the client over Server-Sent Events.
func (h *EmailHandler) SSEEvents(c echo.Context) error {
	c.Response().Header().Set("Content-Type", "text/event-stream")
	c.Response().Header().Set("Cache-Control", "no-cache")
	c.Response().Header().Set("Connection", "keep-alive")
	c.Response().Header().Set("Access-Control-Allow-Origin", "*")

	clientChannel := h.events.Subscribe()
	defer h.events.Unsubscribe(clientChannel)

	initEvent := map[string]interface{}{
		"type": "connection",
		"data": map[string]string{
			"message": "Connected to email agent updates",
		},
		"time": time.Now().Unix(),
	}
	initJSON, _ := json.Marshal(initEvent)
	fmt.Fprintf(c.Response(), "data: %s\n\n", initJSON)
	c.Response().Flush()

	for {
		select {
		case eventData, ok := <-clientChannel:
			if !ok {
				return nil
			}
			fmt.Fprintf(c.Response(), "data: %s\n\n", eventData)
			c.Response().Flush()
		case <-c.Request().Context().Done():
			return nil
		}
	}
}
