package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSubstitutesVariables(t *testing.T) {
	store := newTestStore(t)
	err := store.Update(KeyCategorization, "Subject: {subject}\nFrom: {sender}")
	assert.NoError(t, err)

	out := store.Format(KeyCategorization, map[string]string{
		"subject": "Q3 report",
		"sender":  "Alice",
	})
	assert.Equal(t, "Subject: Q3 report\nFrom: Alice", out)
}

func TestFormatLeavesMissingPlaceholderInPlace(t *testing.T) {
	store := newTestStore(t)
	err := store.Update(KeyCategorization, "Subject: {subject}, Body: {body}")
	assert.NoError(t, err)

	out := store.Format(KeyCategorization, map[string]string{"subject": "hi"})
	assert.Equal(t, "Subject: hi, Body: {body}", out)
}

func TestFormatIgnoresExtraVariables(t *testing.T) {
	store := newTestStore(t)
	err := store.Update(KeyCategorization, "just {subject}")
	assert.NoError(t, err)

	out := store.Format(KeyCategorization, map[string]string{
		"subject": "hello",
		"unused":  "never referenced",
	})
	assert.Equal(t, "just hello", out)
}

func TestFormatIsSinglePass(t *testing.T) {
	store := newTestStore(t)
	err := store.Update(KeyCategorization, "value: {subject}")
	assert.NoError(t, err)

	// A substituted value that looks like a placeholder must not be
	// substituted again.
	out := store.Format(KeyCategorization, map[string]string{
		"subject": "{sender}",
		"sender":  "should never appear",
	})
	assert.Equal(t, "value: {sender}", out)
}

func TestFormatLeavesLiteralJSONBracesAlone(t *testing.T) {
	store := newTestStore(t)
	err := store.Update(KeyActionExtraction, `Respond as [{"priority": "High"}] for {subject}`)
	assert.NoError(t, err)

	out := store.Format(KeyActionExtraction, map[string]string{"subject": "x"})
	assert.Equal(t, `Respond as [{"priority": "High"}] for x`, out)
}

func TestDefaultTemplatesRenderCompletely(t *testing.T) {
	store := newTestStore(t)

	vars := map[string]string{
		"subject": "s", "sender": "a", "body": "b", "tone": "t", "context": "c",
		"emails": "e", "focus": "f",
		"conversation_history": "h", "email_context": "x", "user_message": "m",
	}
	for _, key := range Keys {
		out := store.Format(key, vars)
		assert.NotRegexp(t, `\{[a-z_]+\}`, out, "unresolved placeholder in %s", key)
	}
}
