package prompt

// The five prompt template keys. Every persisted set carries exactly these.
const (
	KeyCategorization   = "categorization"
	KeyActionExtraction = "action_extraction"
	KeyReplyGeneration  = "reply_generation"
	KeySummarization    = "summarization"
	KeyChatSystem       = "chat_system"
)

// Keys lists the template keys in their canonical order.
var Keys = []string{
	KeyCategorization,
	KeyActionExtraction,
	KeyReplyGeneration,
	KeySummarization,
	KeyChatSystem,
}

// ValidKey reports whether key names one of the five templates.
func ValidKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// Set maps template keys to template text. The store guarantees all five
// keys are present in every Set it returns.
type Set map[string]string

var defaults = Set{
	KeyCategorization: `Categorize emails into: Important, Newsletter, Spam, To-Do.
To-Do emails must include a direct request requiring user action.

Email to categorize:
Subject: {subject}
From: {sender}
Body: {body}

Respond with ONLY the category name (e.g., "Important", "To-Do", "Newsletter", or "Spam").`,

	KeyActionExtraction: `Extract tasks from the email. Respond in JSON:
{ "task": "...", "deadline": "..." }.

Email content:
Subject: {subject}
From: {sender}
Body: {body}

Extract action items in the following JSON format:
[
  {
    "description": "Clear description of the action item",
    "deadline": "YYYY-MM-DD or null if no deadline mentioned",
    "priority": "High" | "Medium" | "Low"
  }
]

If there are no action items, return an empty array [].
Respond with ONLY valid JSON.`,

	KeyReplyGeneration: `If an email is a meeting request, draft a polite reply asking for an agenda.

Original Email:
Subject: {subject}
From: {sender}
Body: {body}

Tone: {tone}
Additional Context: {context}

Generate a {tone} reply that:
1. Acknowledges the email content
2. If it's a meeting request, politely asks for an agenda
3. Is concise and professional
4. Includes appropriate greeting and closing

Respond with ONLY the reply text (no subject line).`,

	KeySummarization: `You are an email summarization assistant. Create a concise summary of the provided emails.

Emails to summarize:
{emails}

Focus: {focus}

Provide a brief summary that:
1. Highlights key themes and topics
2. Mentions urgent or important items
3. Groups similar emails together
4. Is easy to scan quickly

Keep the summary under 200 words.`,

	KeyChatSystem: `You are an intelligent email assistant helping users manage their inbox. You have access to the user's emails and can:
1. Answer questions about specific emails
2. Summarize email content
3. Find emails matching certain criteria
4. Extract information from emails
5. Suggest actions or replies

Be conversational, helpful, and concise. When referencing specific emails, mention the sender and subject.
Always provide actionable insights when possible.

Current conversation context:
{conversation_history}

Available emails:
{email_context}

User query: {user_message}

Provide a helpful, conversational response.`,
}

// Defaults returns a copy of the built-in template set.
func Defaults() Set {
	set := make(Set, len(defaults))
	for k, v := range defaults {
		set[k] = v
	}
	return set
}
