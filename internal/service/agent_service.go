package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"email-agent/internal/jsonx"
	"email-agent/internal/logger"
	"email-agent/internal/model"
	"email-agent/internal/prompt"
)

// Sampling temperatures per task.
const (
	categorizeTemperature = 0.3
	extractTemperature    = 0.4
	replyTemperature      = 0.7
	summarizeTemperature  = 0.5
	chatTemperature       = 0.7
)

// Window bounds keeping prompts inside the backend's input budget.
const (
	categorizeBodyLimit = 1000
	summarizeEmailLimit = 10
	chatHistoryLimit    = 5
	chatContextLimit    = 15
	chatReferenceLimit  = 5
)

type agentService struct {
	prompts *prompt.Store
	client  LLMClient
	logger  *logger.Logger
}

func NewAgentService(prompts *prompt.Store, client LLMClient, logger *logger.Logger) AgentService {
	return &agentService{
		prompts: prompts,
		client:  client,
		logger:  logger,
	}
}

// Categorize classifies an email against the fixed vocabulary. The first
// vocabulary term found in the response wins, in vocabulary order — a
// response mentioning several categories is resolved by that order, not by
// where each appears in the text. Anything unrecognizable (including
// "Error:" responses from an unreachable backend) falls back to
// Informational.
func (s *agentService) Categorize(ctx context.Context, email *model.Email) model.Category {
	rendered := s.prompts.Format(prompt.KeyCategorization, map[string]string{
		"subject": email.Subject,
		"sender":  email.Sender,
		"body":    truncate(email.Body, categorizeBodyLimit),
	})

	response := strings.ToLower(s.client.Generate(ctx, rendered, categorizeTemperature))

	for _, category := range model.ClassificationVocabulary {
		if strings.Contains(response, strings.ToLower(string(category))) {
			return category
		}
	}
	return model.CategoryInformational
}

// extractedAction is the loosely-shaped object the extraction prompt asks
// the model to emit.
type extractedAction struct {
	Description string `json:"description"`
	Deadline    string `json:"deadline"`
	Priority    string `json:"priority"`
}

// ExtractActionItems pulls a JSON array of tasks out of the model response.
// On any parse failure the result is an empty list, never an error.
func (s *agentService) ExtractActionItems(ctx context.Context, email *model.Email) []*model.ActionItem {
	rendered := s.prompts.Format(prompt.KeyActionExtraction, map[string]string{
		"subject": email.Subject,
		"sender":  email.Sender,
		"body":    email.Body,
	})

	response := s.client.Generate(ctx, rendered, extractTemperature)

	var parsed []extractedAction
	if err := jsonx.DecodeArray(response, &parsed); err != nil {
		s.logger.Warn("Failed to parse action items for email", email.ID+":", err)
		return []*model.ActionItem{}
	}

	items := make([]*model.ActionItem, 0, len(parsed))
	for idx, action := range parsed {
		items = append(items, &model.ActionItem{
			ID:                 model.ActionItemID(email.ID, idx),
			EmailID:            email.ID,
			Description:        action.Description,
			Deadline:           action.Deadline,
			Priority:           model.ParsePriority(action.Priority),
			Completed:          false,
			SourceEmailSubject: email.Subject,
		})
	}
	return items
}

// GenerateReply drafts a reply in the requested tone. The confidence score
// is a length heuristic — longer answers score higher, clamped to 0.95 —
// not a calibrated probability.
func (s *agentService) GenerateReply(ctx context.Context, email *model.Email, tone, extra string) *model.DraftReply {
	if tone == "" {
		tone = "professional"
	}
	if extra == "" {
		extra = "No additional context"
	}

	rendered := s.prompts.Format(prompt.KeyReplyGeneration, map[string]string{
		"subject": email.Subject,
		"sender":  email.Sender,
		"body":    email.Body,
		"tone":    tone,
		"context": extra,
	})

	response := s.client.Generate(ctx, rendered, replyTemperature)

	confidence := math.Min(0.95, 0.6+float64(len(strings.Fields(response)))/200)
	confidence = math.Round(confidence*100) / 100

	return &model.DraftReply{
		EmailID:         email.ID,
		ReplyText:       strings.TrimSpace(response),
		Tone:            tone,
		ConfidenceScore: confidence,
	}
}

// Summarize condenses up to ten emails (extras silently dropped, original
// order kept) into one overview, steered by the focus string.
func (s *agentService) Summarize(ctx context.Context, emails []*model.Email, focus string) string {
	if focus == "" {
		focus = "general overview"
	}
	if len(emails) > summarizeEmailLimit {
		emails = emails[:summarizeEmailLimit]
	}

	lines := make([]string, 0, len(emails))
	for _, email := range emails {
		lines = append(lines, fmt.Sprintf("From: %s\nSubject: %s\nDate: %s\nPreview: %s",
			email.Sender, email.Subject, email.Date, email.Preview))
	}

	rendered := s.prompts.Format(prompt.KeySummarization, map[string]string{
		"emails": strings.Join(lines, "\n\n"),
		"focus":  focus,
	})

	return strings.TrimSpace(s.client.Generate(ctx, rendered, summarizeTemperature))
}

// Chat answers a conversational query over the email context. Only the last
// five history turns and the first fifteen context emails make it into the
// prompt. Referenced email ids are recovered by scanning the response for
// each context email's literal id or case-insensitive subject — a
// best-effort heuristic that can both under- and over-match.
func (s *agentService) Chat(ctx context.Context, message string, history []model.ChatMessage, contextEmails []*model.Email) *model.ChatResponse {
	if len(history) > chatHistoryLimit {
		history = history[len(history)-chatHistoryLimit:]
	}
	historyLines := make([]string, 0, len(history))
	for _, msg := range history {
		historyLines = append(historyLines, roleLabel(msg.Role)+": "+msg.Content)
	}
	historyText := strings.Join(historyLines, "\n")
	if historyText == "" {
		historyText = "No previous conversation"
	}

	promptEmails := contextEmails
	if len(promptEmails) > chatContextLimit {
		promptEmails = promptEmails[:chatContextLimit]
	}
	contextLines := make([]string, 0, len(promptEmails))
	for _, email := range promptEmails {
		category := string(email.Category)
		if category == "" {
			category = "Uncategorized"
		}
		contextLines = append(contextLines, fmt.Sprintf("ID: %s\nFrom: %s\nSubject: %s\nCategory: %s\nPreview: %s",
			email.ID, email.Sender, email.Subject, category, email.Preview))
	}
	contextText := strings.Join(contextLines, "\n\n")
	if contextText == "" {
		contextText = "No emails in context"
	}

	rendered := s.prompts.Format(prompt.KeyChatSystem, map[string]string{
		"conversation_history": historyText,
		"email_context":        contextText,
		"user_message":         message,
	})

	response := s.client.Generate(ctx, rendered, chatTemperature)

	return &model.ChatResponse{
		Message:          strings.TrimSpace(response),
		ReferencedEmails: referencedEmailIDs(response, contextEmails),
		SuggestedActions: []string{},
	}
}

// referencedEmailIDs collects ids of context emails mentioned in the
// response, capped at five, in context-list order rather than order of
// appearance in the text.
func referencedEmailIDs(response string, contextEmails []*model.Email) []string {
	lowered := strings.ToLower(response)

	referenced := []string{}
	for _, email := range contextEmails {
		if len(referenced) == chatReferenceLimit {
			break
		}
		if email.ID != "" && strings.Contains(response, email.ID) {
			referenced = append(referenced, email.ID)
			continue
		}
		if email.Subject != "" && strings.Contains(lowered, strings.ToLower(email.Subject)) {
			referenced = append(referenced, email.ID)
		}
	}
	return referenced
}

func roleLabel(role string) string {
	if role == "" {
		return ""
	}
	return strings.ToUpper(role[:1]) + strings.ToLower(role[1:])
}

// truncate bounds a string to limit runes.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
