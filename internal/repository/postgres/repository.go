package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"email-agent/internal/model"

	_ "github.com/lib/pq"
)

// PostgresEmailRepository is the durable alternative to the in-memory store,
// selected by DATABASE_URL. The pos serial column preserves insertion order.
type PostgresEmailRepository struct {
	db *sql.DB
}

func NewPostgresEmailRepository(db *sql.DB) *PostgresEmailRepository {
	return &PostgresEmailRepository{db: db}
}

const emailColumns = `id, sender, sender_email, recipient, subject, body, date, preview, category, is_read, has_attachments, action_items, suggested_reply`

func (r *PostgresEmailRepository) Create(ctx context.Context, email *model.Email) error {
	items, err := marshalActionItems(email.ActionItems)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO emails (` + emailColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			sender = EXCLUDED.sender,
			sender_email = EXCLUDED.sender_email,
			recipient = EXCLUDED.recipient,
			subject = EXCLUDED.subject,
			body = EXCLUDED.body,
			date = EXCLUDED.date,
			preview = EXCLUDED.preview,
			category = EXCLUDED.category,
			is_read = EXCLUDED.is_read,
			has_attachments = EXCLUDED.has_attachments,
			action_items = EXCLUDED.action_items,
			suggested_reply = EXCLUDED.suggested_reply`
	_, err = r.db.ExecContext(ctx, query,
		email.ID, email.Sender, email.SenderEmail, email.Recipient,
		email.Subject, email.Body, email.Date, email.Preview,
		string(email.Category), email.IsRead, email.HasAttachments,
		items, email.SuggestedReply)
	return err
}

func (r *PostgresEmailRepository) FindByID(ctx context.Context, id string) (*model.Email, error) {
	query := `SELECT ` + emailColumns + ` FROM emails WHERE id = $1`
	return scanEmail(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresEmailRepository) FindAll(ctx context.Context) ([]*model.Email, error) {
	query := `SELECT ` + emailColumns + ` FROM emails ORDER BY pos`
	return r.queryEmails(ctx, query)
}

func (r *PostgresEmailRepository) FindByCategory(ctx context.Context, category model.Category) ([]*model.Email, error) {
	query := `SELECT ` + emailColumns + ` FROM emails WHERE category = $1 ORDER BY pos`
	return r.queryEmails(ctx, query, string(category))
}

func (r *PostgresEmailRepository) Update(ctx context.Context, email *model.Email) error {
	items, err := marshalActionItems(email.ActionItems)
	if err != nil {
		return err
	}
	query := `
		UPDATE emails SET sender=$1, sender_email=$2, recipient=$3, subject=$4,
		body=$5, date=$6, preview=$7, category=$8, is_read=$9,
		has_attachments=$10, action_items=$11, suggested_reply=$12 WHERE id=$13`
	res, err := r.db.ExecContext(ctx, query,
		email.Sender, email.SenderEmail, email.Recipient, email.Subject,
		email.Body, email.Date, email.Preview, string(email.Category),
		email.IsRead, email.HasAttachments, items, email.SuggestedReply,
		email.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.New("email not found")
	}
	return nil
}

func (r *PostgresEmailRepository) ReplaceAll(ctx context.Context, emails []*model.Email) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM emails`); err != nil {
		return err
	}
	query := `
		INSERT INTO emails (` + emailColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	for _, email := range emails {
		items, err := marshalActionItems(email.ActionItems)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query,
			email.ID, email.Sender, email.SenderEmail, email.Recipient,
			email.Subject, email.Body, email.Date, email.Preview,
			string(email.Category), email.IsRead, email.HasAttachments,
			items, email.SuggestedReply); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *PostgresEmailRepository) queryEmails(ctx context.Context, query string, args ...interface{}) ([]*model.Email, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []*model.Email
	for rows.Next() {
		email, err := scanEmail(rows)
		if err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEmail(row rowScanner) (*model.Email, error) {
	email := &model.Email{}
	var category string
	var items []byte
	err := row.Scan(
		&email.ID, &email.Sender, &email.SenderEmail, &email.Recipient,
		&email.Subject, &email.Body, &email.Date, &email.Preview,
		&category, &email.IsRead, &email.HasAttachments,
		&items, &email.SuggestedReply)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("email not found")
		}
		return nil, err
	}
	email.Category = model.Category(category)
	if len(items) > 0 {
		if err := json.Unmarshal(items, &email.ActionItems); err != nil {
			return nil, fmt.Errorf("failed to decode action items for email %s: %w", email.ID, err)
		}
	}
	return email, nil
}

func marshalActionItems(items []*model.ActionItem) ([]byte, error) {
	if items == nil {
		return nil, nil
	}
	return json.Marshal(items)
}

// Postgres ActionItem repository implementation
type PostgresActionItemRepository struct {
	db *sql.DB
}

func NewPostgresActionItemRepository(db *sql.DB) *PostgresActionItemRepository {
	return &PostgresActionItemRepository{db: db}
}

const actionItemColumns = `id, email_id, description, deadline, priority, completed, source_email_subject`

func (r *PostgresActionItemRepository) Create(ctx context.Context, item *model.ActionItem) error {
	query := `
		INSERT INTO action_items (` + actionItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			description = EXCLUDED.description,
			deadline = EXCLUDED.deadline,
			priority = EXCLUDED.priority,
			completed = EXCLUDED.completed,
			source_email_subject = EXCLUDED.source_email_subject`
	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.EmailID, item.Description, item.Deadline,
		string(item.Priority), item.Completed, item.SourceEmailSubject)
	return err
}

func (r *PostgresActionItemRepository) FindByID(ctx context.Context, id string) (*model.ActionItem, error) {
	query := `SELECT ` + actionItemColumns + ` FROM action_items WHERE id = $1`
	return scanActionItem(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresActionItemRepository) FindAll(ctx context.Context) ([]*model.ActionItem, error) {
	query := `SELECT ` + actionItemColumns + ` FROM action_items ORDER BY pos`
	return r.queryActionItems(ctx, query)
}

func (r *PostgresActionItemRepository) FindByCompleted(ctx context.Context, completed bool) ([]*model.ActionItem, error) {
	query := `SELECT ` + actionItemColumns + ` FROM action_items WHERE completed = $1 ORDER BY pos`
	return r.queryActionItems(ctx, query, completed)
}

func (r *PostgresActionItemRepository) Update(ctx context.Context, item *model.ActionItem) error {
	query := `
		UPDATE action_items SET description=$1, deadline=$2, priority=$3,
		completed=$4, source_email_subject=$5 WHERE id=$6`
	res, err := r.db.ExecContext(ctx, query,
		item.Description, item.Deadline, string(item.Priority),
		item.Completed, item.SourceEmailSubject, item.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.New("action item not found")
	}
	return nil
}

func (r *PostgresActionItemRepository) queryActionItems(ctx context.Context, query string, args ...interface{}) ([]*model.ActionItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*model.ActionItem
	for rows.Next() {
		item, err := scanActionItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanActionItem(row rowScanner) (*model.ActionItem, error) {
	item := &model.ActionItem{}
	var priority string
	err := row.Scan(
		&item.ID, &item.EmailID, &item.Description, &item.Deadline,
		&priority, &item.Completed, &item.SourceEmailSubject)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("action item not found")
		}
		return nil, err
	}
	item.Priority = model.Priority(priority)
	return item, nil
}

// InitializeDatabase creates the necessary tables
func InitializeDatabase(db *sql.DB) error {
	tables := []string{
		`CREATE TABLE IF NOT EXISTS emails (
			pos SERIAL,
			id VARCHAR(255) PRIMARY KEY,
			sender TEXT NOT NULL,
			sender_email TEXT NOT NULL,
			recipient TEXT NOT NULL,
			subject TEXT NOT NULL,
			body TEXT NOT NULL,
			date VARCHAR(255) NOT NULL,
			preview TEXT NOT NULL,
			category VARCHAR(32) DEFAULT '',
			is_read BOOLEAN DEFAULT FALSE,
			has_attachments BOOLEAN DEFAULT FALSE,
			action_items JSONB,
			suggested_reply TEXT DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS action_items (
			pos SERIAL,
			id VARCHAR(255) PRIMARY KEY,
			email_id VARCHAR(255) NOT NULL,
			description TEXT NOT NULL,
			deadline VARCHAR(255) DEFAULT '',
			priority VARCHAR(16) NOT NULL,
			completed BOOLEAN DEFAULT FALSE,
			source_email_subject TEXT DEFAULT ''
		)`,
	}

	for _, table := range tables {
		_, err := db.Exec(table)
		if err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	return nil
}
