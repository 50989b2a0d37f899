package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"email-agent/internal/model"
)

func TestEmailRepositoryPreservesInsertionOrder(t *testing.T) {
	repo := NewInMemoryEmailRepository()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		err := repo.Create(ctx, &model.Email{ID: fmt.Sprintf("e%d", i)})
		assert.NoError(t, err)
	}

	emails, err := repo.FindAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, emails, 5)
	for i, email := range emails {
		assert.Equal(t, fmt.Sprintf("e%d", i), email.ID)
	}
}

func TestEmailRepositoryCreateUpsertsKeepingPosition(t *testing.T) {
	repo := NewInMemoryEmailRepository()
	ctx := context.Background()

	assert.NoError(t, repo.Create(ctx, &model.Email{ID: "e1", Subject: "first"}))
	assert.NoError(t, repo.Create(ctx, &model.Email{ID: "e2", Subject: "second"}))
	assert.NoError(t, repo.Create(ctx, &model.Email{ID: "e1", Subject: "replaced"}))

	emails, err := repo.FindAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, emails, 2)
	assert.Equal(t, "replaced", emails[0].Subject)
}

func TestEmailRepositoryFindByID(t *testing.T) {
	repo := NewInMemoryEmailRepository()
	ctx := context.Background()

	assert.NoError(t, repo.Create(ctx, &model.Email{ID: "e1", Subject: "hello"}))

	email, err := repo.FindByID(ctx, "e1")
	assert.NoError(t, err)
	assert.Equal(t, "hello", email.Subject)

	_, err = repo.FindByID(ctx, "nope")
	assert.Error(t, err)
}

func TestEmailRepositoryFindByCategory(t *testing.T) {
	repo := NewInMemoryEmailRepository()
	ctx := context.Background()

	assert.NoError(t, repo.Create(ctx, &model.Email{ID: "e1", Category: model.CategorySpam}))
	assert.NoError(t, repo.Create(ctx, &model.Email{ID: "e2", Category: model.CategoryImportant}))
	assert.NoError(t, repo.Create(ctx, &model.Email{ID: "e3", Category: model.CategorySpam}))

	spam, err := repo.FindByCategory(ctx, model.CategorySpam)
	assert.NoError(t, err)
	assert.Len(t, spam, 2)
	assert.Equal(t, "e1", spam[0].ID)
	assert.Equal(t, "e3", spam[1].ID)
}

func TestEmailRepositoryReplaceAll(t *testing.T) {
	repo := NewInMemoryEmailRepository()
	ctx := context.Background()

	assert.NoError(t, repo.Create(ctx, &model.Email{ID: "old"}))

	err := repo.ReplaceAll(ctx, []*model.Email{{ID: "n1"}, {ID: "n2"}})
	assert.NoError(t, err)

	_, err = repo.FindByID(ctx, "old")
	assert.Error(t, err)

	emails, err := repo.FindAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, emails, 2)
	assert.Equal(t, "n1", emails[0].ID)
}

func TestEmailRepositoryUpdateMissing(t *testing.T) {
	repo := NewInMemoryEmailRepository()

	err := repo.Update(context.Background(), &model.Email{ID: "ghost"})
	assert.Error(t, err)
}

func TestActionItemRepositoryFindByCompleted(t *testing.T) {
	repo := NewInMemoryActionItemRepository()
	ctx := context.Background()

	assert.NoError(t, repo.Create(ctx, &model.ActionItem{ID: "a1", Completed: false}))
	assert.NoError(t, repo.Create(ctx, &model.ActionItem{ID: "a2", Completed: true}))
	assert.NoError(t, repo.Create(ctx, &model.ActionItem{ID: "a3", Completed: false}))

	open, err := repo.FindByCompleted(ctx, false)
	assert.NoError(t, err)
	assert.Len(t, open, 2)

	done, err := repo.FindByCompleted(ctx, true)
	assert.NoError(t, err)
	assert.Len(t, done, 1)
	assert.Equal(t, "a2", done[0].ID)
}

func TestActionItemRepositoryUpdate(t *testing.T) {
	repo := NewInMemoryActionItemRepository()
	ctx := context.Background()

	item := &model.ActionItem{ID: "a1"}
	assert.NoError(t, repo.Create(ctx, item))

	item.Completed = true
	assert.NoError(t, repo.Update(ctx, item))

	stored, err := repo.FindByID(ctx, "a1")
	assert.NoError(t, err)
	assert.True(t, stored.Completed)

	assert.Error(t, repo.Update(ctx, &model.ActionItem{ID: "ghost"}))
}
