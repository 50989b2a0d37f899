package service

import (
	"context"

	"email-agent/internal/model"
)

// AgentService is the prompt/response pipeline: render a template with email
// data, invoke the model backend, and coerce the raw text back into a typed
// result. Methods never fail upward — malformed model output degrades to the
// documented fallback value for each task.
type AgentService interface {
	Categorize(ctx context.Context, email *model.Email) model.Category
	ExtractActionItems(ctx context.Context, email *model.Email) []*model.ActionItem
	GenerateReply(ctx context.Context, email *model.Email, tone, extra string) *model.DraftReply
	Summarize(ctx context.Context, emails []*model.Email, focus string) string
	Chat(ctx context.Context, message string, history []model.ChatMessage, contextEmails []*model.Email) *model.ChatResponse
}

// EmailService owns the stored collection: reads, imports/exports, and the
// agent operations that mutate stored records with their results.
type EmailService interface {
	ListEmails(ctx context.Context, category string, limit int) ([]*model.Email, error)
	GetEmail(ctx context.Context, id string) (*model.Email, error)
	ImportJSON(ctx context.Context, data []byte) (int, error)
	ExportEmails(ctx context.Context) ([]*model.Email, error)
	ImportFromGmail(ctx context.Context, accessToken string, maxResults int64) (int, error)
	CategorizeEmail(ctx context.Context, email *model.Email) (model.Category, error)
	CategorizeAll(ctx context.Context) ([]CategorizeResult, error)
	ExtractActions(ctx context.Context, email *model.Email) ([]*model.ActionItem, error)
	GenerateReply(ctx context.Context, email *model.Email, tone, extra string) (*model.DraftReply, error)
	Chat(ctx context.Context, message string, history []model.ChatMessage, contextEmails []*model.Email) (*model.ChatResponse, error)
	ListActionItems(ctx context.Context, completed *bool) ([]*model.ActionItem, error)
	CompleteActionItem(ctx context.Context, id string) error
}

// CategorizeResult is one entry of a bulk categorization run.
type CategorizeResult struct {
	EmailID  string         `json:"email_id"`
	Category model.Category `json:"category"`
}

// LLMClient generates text from a fully-rendered prompt. It always returns a
// string: backend connection failures, timeouts, and missing credentials
// come back as text beginning with "Error:" so downstream parsers still run
// and degrade to their fallbacks. One backend implementation is chosen at
// process startup; there is no per-request switching.
type LLMClient interface {
	Generate(ctx context.Context, prompt string, temperature float64) string
}

// GmailClient fetches messages from a mailbox for import. Read-only.
type GmailClient interface {
	FetchRecentEmails(ctx context.Context, maxResults int64) ([]*model.Email, error)
}

// GmailClientFactory builds a GmailClient for a caller-supplied access
// token, one per import request.
type GmailClientFactory func(accessToken string) (GmailClient, error)
