package model

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn of a conversation. Immutable once created; history
// is an append-only sequence kept by the caller.
type ChatMessage struct {
	Role             string   `json:"role"`
	Content          string   `json:"content"`
	Timestamp        string   `json:"timestamp,omitempty"`
	ReferencedEmails []string `json:"referenced_emails,omitempty"`
}

// ChatResponse is the assistant's reply to a chat request.
type ChatResponse struct {
	Message          string   `json:"message"`
	ReferencedEmails []string `json:"referenced_emails"`
	SuggestedActions []string `json:"suggested_actions"`
}

// DraftReply is a generated reply for an email. ConfidenceScore is a length
// heuristic in [0.6, 0.95], not a calibrated probability.
type DraftReply struct {
	EmailID         string  `json:"email_id"`
	ReplyText       string  `json:"reply_text"`
	Tone            string  `json:"tone"`
	ConfidenceScore float64 `json:"confidence_score"`
}
