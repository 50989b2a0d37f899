package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Category is the fixed classification vocabulary for emails.
type Category string

const (
	CategoryImportant     Category = "Important"
	CategoryToDo          Category = "To-Do"
	CategoryInformational Category = "Informational"
	CategoryNewsletter    Category = "Newsletter"
	CategorySpam          Category = "Spam"
	CategoryUnread        Category = "Unread"
)

// ClassificationVocabulary lists the categories the classifier may assign,
// in tie-break order: when a model response mentions several categories the
// earliest entry here wins, regardless of where it appears in the text.
var ClassificationVocabulary = []Category{
	CategoryImportant,
	CategoryToDo,
	CategoryInformational,
	CategoryNewsletter,
	CategorySpam,
}

func (c Category) Valid() bool {
	switch c {
	case CategoryImportant, CategoryToDo, CategoryInformational,
		CategoryNewsletter, CategorySpam, CategoryUnread:
		return true
	}
	return false
}

type Email struct {
	ID             string        `json:"id"`
	Sender         string        `json:"sender"`
	SenderEmail    string        `json:"sender_email"`
	Recipient      string        `json:"recipient"`
	Subject        string        `json:"subject"`
	Body           string        `json:"body"`
	Date           string        `json:"date"`
	Preview        string        `json:"preview"`
	Category       Category      `json:"category,omitempty"`
	IsRead         bool          `json:"is_read"`
	HasAttachments bool          `json:"has_attachments"`
	ActionItems    []*ActionItem `json:"action_items,omitempty"`
	SuggestedReply string        `json:"suggested_reply,omitempty"`
}

func NewEmail(sender, senderEmail, recipient, subject, body, date string) *Email {
	return &Email{
		ID:          uuid.New().String(),
		Sender:      sender,
		SenderEmail: senderEmail,
		Recipient:   recipient,
		Subject:     subject,
		Body:        body,
		Date:        date,
		Preview:     MakePreview(body),
	}
}

// MakePreview derives a short preview line from a body.
func MakePreview(body string) string {
	preview := strings.Join(strings.Fields(body), " ")
	runes := []rune(preview)
	if len(runes) > 120 {
		return string(runes[:120]) + "..."
	}
	return preview
}

// Validate checks the required fields of the interchange shape.
func (e *Email) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"id", e.ID},
		{"sender", e.Sender},
		{"sender_email", e.SenderEmail},
		{"recipient", e.Recipient},
		{"subject", e.Subject},
		{"body", e.Body},
		{"date", e.Date},
		{"preview", e.Preview},
	}
	for _, f := range required {
		if f.value == "" {
			return fmt.Errorf("email %q: missing required field %q", e.ID, f.name)
		}
	}
	if e.Category != "" && !e.Category.Valid() {
		return fmt.Errorf("email %q: invalid category %q", e.ID, e.Category)
	}
	return nil
}
