package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"email-agent/internal/logger"
	"email-agent/internal/model"
	"email-agent/internal/repository"
	"email-agent/internal/sse"
)

const defaultListLimit = 100

type emailService struct {
	emailRepo    repository.EmailRepository
	actionRepo   repository.ActionItemRepository
	agent        AgentService
	gmailFactory GmailClientFactory
	events       *sse.Manager
	snapshotPath string
	logger       *logger.Logger
}

func NewEmailService(
	emailRepo repository.EmailRepository,
	actionRepo repository.ActionItemRepository,
	agent AgentService,
	gmailFactory GmailClientFactory,
	events *sse.Manager,
	snapshotPath string,
	logger *logger.Logger,
) EmailService {
	return &emailService{
		emailRepo:    emailRepo,
		actionRepo:   actionRepo,
		agent:        agent,
		gmailFactory: gmailFactory,
		events:       events,
		snapshotPath: snapshotPath,
		logger:       logger,
	}
}

func (s *emailService) ListEmails(ctx context.Context, category string, limit int) ([]*model.Email, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	var emails []*model.Email
	var err error
	if category != "" {
		emails, err = s.emailRepo.FindByCategory(ctx, model.Category(category))
	} else {
		emails, err = s.emailRepo.FindAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list emails: %w", err)
	}

	if len(emails) > limit {
		emails = emails[:limit]
	}
	return emails, nil
}

func (s *emailService) GetEmail(ctx context.Context, id string) (*model.Email, error) {
	return s.emailRepo.FindByID(ctx, id)
}

// ImportJSON validates an uploaded collection and replaces the stored one.
// Invalid input leaves the existing collection untouched.
func (s *emailService) ImportJSON(ctx context.Context, data []byte) (int, error) {
	var emails []*model.Email
	if err := json.Unmarshal(data, &emails); err != nil {
		return 0, fmt.Errorf("invalid JSON format: %w", err)
	}

	for _, email := range emails {
		if err := email.Validate(); err != nil {
			return 0, err
		}
	}

	if err := s.emailRepo.ReplaceAll(ctx, emails); err != nil {
		return 0, fmt.Errorf("failed to replace emails: %w", err)
	}

	s.snapshot(ctx)
	return len(emails), nil
}

func (s *emailService) ExportEmails(ctx context.Context) ([]*model.Email, error) {
	return s.emailRepo.FindAll(ctx)
}

// ImportFromGmail fetches recent messages with a caller-supplied access
// token and appends them to the stored collection.
func (s *emailService) ImportFromGmail(ctx context.Context, accessToken string, maxResults int64) (int, error) {
	client, err := s.gmailFactory(accessToken)
	if err != nil {
		return 0, fmt.Errorf("failed to create Gmail client: %w", err)
	}

	emails, err := client.FetchRecentEmails(ctx, maxResults)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch emails from Gmail: %w", err)
	}

	for _, email := range emails {
		if err := s.emailRepo.Create(ctx, email); err != nil {
			return 0, fmt.Errorf("failed to store imported email: %w", err)
		}
	}

	s.snapshot(ctx)
	s.logger.Info("Imported", len(emails), "emails from Gmail")
	return len(emails), nil
}

// CategorizeEmail classifies the supplied email and, when a stored record
// shares its id, stamps the category onto it. The caller may categorize an
// email that was never uploaded; the result is still returned.
func (s *emailService) CategorizeEmail(ctx context.Context, email *model.Email) (model.Category, error) {
	category := s.agent.Categorize(ctx, email)

	if stored, err := s.emailRepo.FindByID(ctx, email.ID); err == nil {
		stored.Category = category
		if err := s.emailRepo.Update(ctx, stored); err != nil {
			s.logger.Error("Failed to update email category:", email.ID, err)
		}
	}
	return category, nil
}

// CategorizeAll runs the classifier over the whole collection, broadcasting
// per-email progress to SSE subscribers.
func (s *emailService) CategorizeAll(ctx context.Context) ([]CategorizeResult, error) {
	emails, err := s.emailRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list emails: %w", err)
	}

	results := make([]CategorizeResult, 0, len(emails))
	for _, email := range emails {
		category := s.agent.Categorize(ctx, email)
		email.Category = category
		if err := s.emailRepo.Update(ctx, email); err != nil {
			s.logger.Error("Failed to update email category:", email.ID, err)
		}

		result := CategorizeResult{EmailID: email.ID, Category: category}
		results = append(results, result)
		s.events.Broadcast("categorize_progress", result)
	}

	s.events.Broadcast("categorize_done", map[string]int{"count": len(results)})
	return results, nil
}

// ExtractActions extracts action items from the email, records them, and
// attaches them to the stored record when one exists.
func (s *emailService) ExtractActions(ctx context.Context, email *model.Email) ([]*model.ActionItem, error) {
	items := s.agent.ExtractActionItems(ctx, email)

	for _, item := range items {
		if err := s.actionRepo.Create(ctx, item); err != nil {
			return nil, fmt.Errorf("failed to store action item: %w", err)
		}
	}

	if stored, err := s.emailRepo.FindByID(ctx, email.ID); err == nil {
		stored.ActionItems = items
		if err := s.emailRepo.Update(ctx, stored); err != nil {
			s.logger.Error("Failed to attach action items to email:", email.ID, err)
		}
	}
	return items, nil
}

// GenerateReply drafts a reply and stores it as the email's suggested reply
// when the email is part of the collection.
func (s *emailService) GenerateReply(ctx context.Context, email *model.Email, tone, extra string) (*model.DraftReply, error) {
	reply := s.agent.GenerateReply(ctx, email, tone, extra)

	if stored, err := s.emailRepo.FindByID(ctx, email.ID); err == nil {
		stored.SuggestedReply = reply.ReplyText
		if err := s.emailRepo.Update(ctx, stored); err != nil {
			s.logger.Error("Failed to store suggested reply:", email.ID, err)
		}
	}
	return reply, nil
}

// Chat answers a conversational query. With no explicit context the whole
// stored collection is offered to the agent.
func (s *emailService) Chat(ctx context.Context, message string, history []model.ChatMessage, contextEmails []*model.Email) (*model.ChatResponse, error) {
	if len(contextEmails) == 0 {
		all, err := s.emailRepo.FindAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load email context: %w", err)
		}
		contextEmails = all
	}
	return s.agent.Chat(ctx, message, history, contextEmails), nil
}

func (s *emailService) ListActionItems(ctx context.Context, completed *bool) ([]*model.ActionItem, error) {
	if completed != nil {
		return s.actionRepo.FindByCompleted(ctx, *completed)
	}
	return s.actionRepo.FindAll(ctx)
}

func (s *emailService) CompleteActionItem(ctx context.Context, id string) error {
	item, err := s.actionRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	item.Completed = true
	return s.actionRepo.Update(ctx, item)
}

// snapshot writes the current collection to the JSON data file, overwriting
// prior content. Best-effort: failures are logged, never surfaced.
func (s *emailService) snapshot(ctx context.Context) {
	if s.snapshotPath == "" {
		return
	}

	emails, err := s.emailRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to read emails for snapshot:", err)
		return
	}
	data, err := json.MarshalIndent(emails, "", "  ")
	if err != nil {
		s.logger.Error("Failed to encode email snapshot:", err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.snapshotPath), 0o755); err != nil {
		s.logger.Error("Failed to create snapshot directory:", err)
		return
	}
	if err := os.WriteFile(s.snapshotPath, data, 0o644); err != nil {
		s.logger.Error("Failed to write email snapshot:", err)
	}
}
