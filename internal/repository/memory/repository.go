package memory

import (
	"context"
	"errors"
	"sync"

	"email-agent/internal/model"
)

// InMemoryEmailRepository keeps emails in a slice plus an id index. The slice
// preserves insertion order; the index keeps lookups O(1). Locking covers the
// repository itself, but read-modify-write sequences spanning requests are
// still last-write-wins.
type InMemoryEmailRepository struct {
	emails []*model.Email
	index  map[string]int
	mutex  sync.RWMutex
}

func NewInMemoryEmailRepository() *InMemoryEmailRepository {
	return &InMemoryEmailRepository{
		index: make(map[string]int),
	}
}

func (r *InMemoryEmailRepository) Create(ctx context.Context, email *model.Email) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if pos, exists := r.index[email.ID]; exists {
		r.emails[pos] = email
		return nil
	}
	r.index[email.ID] = len(r.emails)
	r.emails = append(r.emails, email)
	return nil
}

func (r *InMemoryEmailRepository) FindByID(ctx context.Context, id string) (*model.Email, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	pos, exists := r.index[id]
	if !exists {
		return nil, errors.New("email not found")
	}
	return r.emails[pos], nil
}

func (r *InMemoryEmailRepository) FindAll(ctx context.Context) ([]*model.Email, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make([]*model.Email, len(r.emails))
	copy(result, r.emails)
	return result, nil
}

func (r *InMemoryEmailRepository) FindByCategory(ctx context.Context, category model.Category) ([]*model.Email, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var result []*model.Email
	for _, email := range r.emails {
		if email.Category == category {
			result = append(result, email)
		}
	}
	return result, nil
}

func (r *InMemoryEmailRepository) Update(ctx context.Context, email *model.Email) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	pos, exists := r.index[email.ID]
	if !exists {
		return errors.New("email not found")
	}
	r.emails[pos] = email
	return nil
}

func (r *InMemoryEmailRepository) ReplaceAll(ctx context.Context, emails []*model.Email) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.emails = make([]*model.Email, 0, len(emails))
	r.index = make(map[string]int, len(emails))
	for _, email := range emails {
		r.index[email.ID] = len(r.emails)
		r.emails = append(r.emails, email)
	}
	return nil
}

// InMemoryActionItemRepository stores action items in extraction order.
type InMemoryActionItemRepository struct {
	items []*model.ActionItem
	index map[string]int
	mutex sync.RWMutex
}

func NewInMemoryActionItemRepository() *InMemoryActionItemRepository {
	return &InMemoryActionItemRepository{
		index: make(map[string]int),
	}
}

func (r *InMemoryActionItemRepository) Create(ctx context.Context, item *model.ActionItem) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if pos, exists := r.index[item.ID]; exists {
		r.items[pos] = item
		return nil
	}
	r.index[item.ID] = len(r.items)
	r.items = append(r.items, item)
	return nil
}

func (r *InMemoryActionItemRepository) FindByID(ctx context.Context, id string) (*model.ActionItem, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	pos, exists := r.index[id]
	if !exists {
		return nil, errors.New("action item not found")
	}
	return r.items[pos], nil
}

func (r *InMemoryActionItemRepository) FindAll(ctx context.Context) ([]*model.ActionItem, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make([]*model.ActionItem, len(r.items))
	copy(result, r.items)
	return result, nil
}

func (r *InMemoryActionItemRepository) FindByCompleted(ctx context.Context, completed bool) ([]*model.ActionItem, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var result []*model.ActionItem
	for _, item := range r.items {
		if item.Completed == completed {
			result = append(result, item)
		}
	}
	return result, nil
}

func (r *InMemoryActionItemRepository) Update(ctx context.Context, item *model.ActionItem) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	pos, exists := r.index[item.ID]
	if !exists {
		return errors.New("action item not found")
	}
	r.items[pos] = item
	return nil
}
