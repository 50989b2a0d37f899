package model

import "fmt"

// Priority of an action item.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// ParsePriority maps free text onto a Priority, defaulting to Medium for
// anything outside the vocabulary.
func ParsePriority(s string) Priority {
	switch Priority(s) {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return Priority(s)
	}
	return PriorityMedium
}

// ActionItem is a task extracted from an email. Items are never deleted,
// only flagged completed.
type ActionItem struct {
	ID                 string   `json:"id"`
	EmailID            string   `json:"email_id"`
	Description        string   `json:"description"`
	Deadline           string   `json:"deadline,omitempty"`
	Priority           Priority `json:"priority"`
	Completed          bool     `json:"completed"`
	SourceEmailSubject string   `json:"source_email_subject,omitempty"`
}

// ActionItemID builds the synthetic id for the idx-th item extracted from an
// email.
func ActionItemID(emailID string, idx int) string {
	return fmt.Sprintf("%s_action_%d", emailID, idx)
}
