package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validEmail() *Email {
	return &Email{
		ID:          "e1",
		Sender:      "Alice",
		SenderEmail: "alice@example.com",
		Recipient:   "me@example.com",
		Subject:     "Meeting tomorrow",
		Body:        "Can we meet at 10?",
		Date:        "2025-01-06T09:00:00Z",
		Preview:     "Can we meet at 10?",
	}
}

func TestValidateAcceptsCompleteEmail(t *testing.T) {
	assert.NoError(t, validEmail().Validate())
}

func TestValidateRejectsMissingField(t *testing.T) {
	email := validEmail()
	email.Sender = ""

	err := email.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "sender")
}

func TestValidateRejectsUnknownCategory(t *testing.T) {
	email := validEmail()
	email.Category = "Urgent"

	assert.Error(t, email.Validate())
}

func TestValidateAcceptsEmptyCategory(t *testing.T) {
	email := validEmail()
	email.Category = ""

	assert.NoError(t, email.Validate())
}

func TestMakePreviewCollapsesWhitespaceAndTruncates(t *testing.T) {
	short := MakePreview("hello\n  world")
	assert.Equal(t, "hello world", short)

	long := MakePreview(strings.Repeat("a", 200))
	assert.Len(t, []rune(long), 123) // 120 runes plus ellipsis
	assert.True(t, strings.HasSuffix(long, "..."))
}

func TestNewEmailAssignsIDAndPreview(t *testing.T) {
	email := NewEmail("Alice", "alice@example.com", "me@example.com", "Hi", "body text", "2025-01-06")
	assert.NotEmpty(t, email.ID)
	assert.Equal(t, "body text", email.Preview)
}

func TestActionItemID(t *testing.T) {
	assert.Equal(t, "e1_action_0", ActionItemID("e1", 0))
	assert.Equal(t, "e1_action_3", ActionItemID("e1", 3))
}

func TestParsePriorityDefaultsToMedium(t *testing.T) {
	assert.Equal(t, PriorityHigh, ParsePriority("High"))
	assert.Equal(t, PriorityLow, ParsePriority("Low"))
	assert.Equal(t, PriorityMedium, ParsePriority("urgent"))
	assert.Equal(t, PriorityMedium, ParsePriority(""))
}
