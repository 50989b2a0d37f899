package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"email-agent/internal/model"
)

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestCategorize(t *testing.T) {
	f := newHandlerFixture(t)
	f.client.Response = "Spam"

	body, err := json.Marshal(map[string]interface{}{"email": storedEmail("e1")})
	assert.NoError(t, err)

	rec := httptest.NewRecorder()
	c := f.echo.NewContext(jsonRequest(http.MethodPost, "/api/categorize", string(body)), rec)

	assert.NoError(t, f.agent.Categorize(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "e1", resp["email_id"])
	assert.Equal(t, "Spam", resp["category"])
}

func TestCategorizeRequiresEmail(t *testing.T) {
	f := newHandlerFixture(t)

	rec := httptest.NewRecorder()
	c := f.echo.NewContext(jsonRequest(http.MethodPost, "/api/categorize", `{}`), rec)

	assert.NoError(t, f.agent.Categorize(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCategorizeAll(t *testing.T) {
	f := newHandlerFixture(t)
	f.client.Response = "Newsletter"
	assert.NoError(t, f.emailRepo.Create(context.Background(), storedEmail("e1")))
	assert.NoError(t, f.emailRepo.Create(context.Background(), storedEmail("e2")))

	rec := httptest.NewRecorder()
	c := f.echo.NewContext(httptest.NewRequest(http.MethodPost, "/api/categorize-all", nil), rec)

	assert.NoError(t, f.agent.CategorizeAll(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool `json:"success"`
		Results []struct {
			EmailID  string `json:"email_id"`
			Category string `json:"category"`
		} `json:"results"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.Results, 2)
	assert.Equal(t, "Newsletter", resp.Results[0].Category)
}

func TestExtractActions(t *testing.T) {
	f := newHandlerFixture(t)
	f.client.Response = `[{"description": "Call Bob", "priority": "High"}]`

	body, err := json.Marshal(map[string]interface{}{"email": storedEmail("e1")})
	assert.NoError(t, err)

	rec := httptest.NewRecorder()
	c := f.echo.NewContext(jsonRequest(http.MethodPost, "/api/extract-actions", string(body)), rec)

	assert.NoError(t, f.agent.ExtractActions(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var items []*model.ActionItem
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	assert.Len(t, items, 1)
	assert.Equal(t, "e1_action_0", items[0].ID)
}

func TestGenerateReply(t *testing.T) {
	f := newHandlerFixture(t)
	f.client.Response = "Sounds good, see you then."

	body, err := json.Marshal(map[string]interface{}{
		"email": storedEmail("e1"),
		"tone":  "casual",
	})
	assert.NoError(t, err)

	rec := httptest.NewRecorder()
	c := f.echo.NewContext(jsonRequest(http.MethodPost, "/api/generate-reply", string(body)), rec)

	assert.NoError(t, f.agent.GenerateReply(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var reply model.DraftReply
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	assert.Equal(t, "Sounds good, see you then.", reply.ReplyText)
	assert.Equal(t, "casual", reply.Tone)
}

func TestSummarize(t *testing.T) {
	f := newHandlerFixture(t)
	f.client.Response = "Two emails about meetings."

	body, err := json.Marshal(map[string]interface{}{
		"emails": []*model.Email{storedEmail("e1"), storedEmail("e2")},
		"focus":  "meetings",
	})
	assert.NoError(t, err)

	rec := httptest.NewRecorder()
	c := f.echo.NewContext(jsonRequest(http.MethodPost, "/api/summarize", string(body)), rec)

	assert.NoError(t, f.agent.Summarize(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Two emails about meetings.", resp["summary"])
}

func TestSummarizeRequiresEmails(t *testing.T) {
	f := newHandlerFixture(t)

	rec := httptest.NewRecorder()
	c := f.echo.NewContext(jsonRequest(http.MethodPost, "/api/summarize", `{"emails": []}`), rec)

	assert.NoError(t, f.agent.Summarize(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChat(t *testing.T) {
	f := newHandlerFixture(t)
	f.client.Response = "You have one email from Alice."

	body := `{"message": "what do I have?", "conversation_history": [], "email_context": []}`
	rec := httptest.NewRecorder()
	c := f.echo.NewContext(jsonRequest(http.MethodPost, "/api/chat", body), rec)

	assert.NoError(t, f.agent.Chat(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp model.ChatResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "You have one email from Alice.", resp.Message)
}

func TestChatRequiresMessage(t *testing.T) {
	f := newHandlerFixture(t)

	rec := httptest.NewRecorder()
	c := f.echo.NewContext(jsonRequest(http.MethodPost, "/api/chat", `{"message": ""}`), rec)

	assert.NoError(t, f.agent.Chat(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
