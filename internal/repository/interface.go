package repository

import (
	"context"

	"email-agent/internal/model"
)

// EmailRepository defines the interface for email data operations.
// Implementations preserve insertion order in FindAll so that an uploaded
// collection round-trips in file order.
type EmailRepository interface {
	Create(ctx context.Context, email *model.Email) error
	FindByID(ctx context.Context, id string) (*model.Email, error)
	FindAll(ctx context.Context) ([]*model.Email, error)
	FindByCategory(ctx context.Context, category model.Category) ([]*model.Email, error)
	Update(ctx context.Context, email *model.Email) error
	ReplaceAll(ctx context.Context, emails []*model.Email) error
}

// ActionItemRepository defines the interface for action item operations.
// Items are never deleted, only updated (completion flag).
type ActionItemRepository interface {
	Create(ctx context.Context, item *model.ActionItem) error
	FindByID(ctx context.Context, id string) (*model.ActionItem, error)
	FindAll(ctx context.Context) ([]*model.ActionItem, error)
	FindByCompleted(ctx context.Context, completed bool) ([]*model.ActionItem, error)
	Update(ctx context.Context, item *model.ActionItem) error
}
