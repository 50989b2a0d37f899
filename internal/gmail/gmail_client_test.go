package gmail

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	gmailapi "google.golang.org/api/gmail/v1"
)

func encoded(s string) string {
	return base64.URLEncoding.EncodeToString([]byte(s))
}

func TestSplitAddress(t *testing.T) {
	name, email := splitAddress("Alice Smith <alice@example.com>")
	assert.Equal(t, "Alice Smith", name)
	assert.Equal(t, "alice@example.com", email)

	name, email = splitAddress(`"Bob Jones" <bob@example.com>`)
	assert.Equal(t, "Bob Jones", name)
	assert.Equal(t, "bob@example.com", email)

	name, email = splitAddress("carol@example.com")
	assert.Equal(t, "carol@example.com", name)
	assert.Equal(t, "carol@example.com", email)

	name, email = splitAddress("<dave@example.com>")
	assert.Equal(t, "dave@example.com", name)
	assert.Equal(t, "dave@example.com", email)
}

func TestExtractTextBodyPrefersPlainText(t *testing.T) {
	payload := &gmailapi.MessagePart{
		Parts: []*gmailapi.MessagePart{
			{
				MimeType: "text/html",
				Body:     &gmailapi.MessagePartBody{Data: encoded("<p>hello</p>")},
			},
			{
				MimeType: "text/plain",
				Body:     &gmailapi.MessagePartBody{Data: encoded("hello")},
			},
		},
	}
	assert.Equal(t, "hello", extractTextBody(payload))
}

func TestExtractTextBodyFallsBackToHTML(t *testing.T) {
	payload := &gmailapi.MessagePart{
		Parts: []*gmailapi.MessagePart{
			{
				MimeType: "text/html",
				Body:     &gmailapi.MessagePartBody{Data: encoded("<p>only html</p>")},
			},
		},
	}
	assert.Equal(t, "<p>only html</p>", extractTextBody(payload))
}

func TestExtractTextBodySinglePart(t *testing.T) {
	payload := &gmailapi.MessagePart{
		MimeType: "text/plain",
		Body:     &gmailapi.MessagePartBody{Data: encoded("flat body")},
	}
	assert.Equal(t, "flat body", extractTextBody(payload))
}

func TestExtractTextBodyNestedMultipart(t *testing.T) {
	payload := &gmailapi.MessagePart{
		Parts: []*gmailapi.MessagePart{
			{
				MimeType: "multipart/alternative",
				Parts: []*gmailapi.MessagePart{
					{
						MimeType: "text/plain",
						Body:     &gmailapi.MessagePartBody{Data: encoded("nested body")},
					},
				},
			},
		},
	}
	assert.Equal(t, "nested body", extractTextBody(payload))
}

func TestHasAttachments(t *testing.T) {
	withAttachment := &gmailapi.MessagePart{
		Parts: []*gmailapi.MessagePart{
			{MimeType: "text/plain", Body: &gmailapi.MessagePartBody{Data: encoded("x")}},
			{Filename: "report.pdf"},
		},
	}
	assert.True(t, hasAttachments(withAttachment))

	plain := &gmailapi.MessagePart{
		Parts: []*gmailapi.MessagePart{
			{MimeType: "text/plain", Body: &gmailapi.MessagePartBody{Data: encoded("x")}},
		},
	}
	assert.False(t, plain.Filename != "" || hasAttachments(plain))
}
