package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"email-agent/internal/logger"
	"email-agent/internal/model"
	"email-agent/internal/service"
)

const defaultFetchCount = 10

type gmailClient struct {
	client *gmail.Service
	logger *logger.Logger
}

// NewClient builds a read-only Gmail client around a caller-supplied OAuth
// access token.
func NewClient(accessToken string, logger *logger.Logger) (service.GmailClient, error) {
	httpClient := &http.Client{
		Transport: &tokenTransport{token: accessToken},
	}

	gmailService, err := gmail.NewService(context.Background(), option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}

	return &gmailClient{
		client: gmailService,
		logger: logger,
	}, nil
}

type tokenTransport struct {
	token string
}

func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "Bearer "+t.token)
	return http.DefaultTransport.RoundTrip(req)
}

// FetchRecentEmails pulls the most recent messages and converts them to the
// interchange Email shape. The mailbox is never modified.
func (g *gmailClient) FetchRecentEmails(ctx context.Context, maxResults int64) ([]*model.Email, error) {
	if maxResults <= 0 {
		maxResults = defaultFetchCount
	}

	list, err := g.client.Users.Messages.List("me").MaxResults(maxResults).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	var emails []*model.Email
	for _, msg := range list.Messages {
		message, err := g.client.Users.Messages.Get("me", msg.Id).Format("full").Context(ctx).Do()
		if err != nil {
			g.logger.Error("Failed to get message:", msg.Id, err)
			continue
		}

		var from, to, subject, date string
		for _, header := range message.Payload.Headers {
			switch header.Name {
			case "From":
				from = header.Value
			case "To":
				to = header.Value
			case "Subject":
				subject = header.Value
			case "Date":
				date = header.Value
			}
		}
		if subject == "" {
			subject = message.Snippet
		}
		if date == "" {
			date = time.Unix(message.InternalDate/1000, 0).Format(time.RFC1123Z)
		}

		body := extractTextBody(message.Payload)
		if body == "" {
			body = message.Snippet
		}
		senderName, senderEmail := splitAddress(from)

		emails = append(emails, &model.Email{
			ID:             msg.Id,
			Sender:         senderName,
			SenderEmail:    senderEmail,
			Recipient:      to,
			Subject:        subject,
			Body:           body,
			Date:           date,
			Preview:        model.MakePreview(body),
			HasAttachments: hasAttachments(message.Payload),
		})
	}

	g.logger.Info("Fetched", len(emails), "emails from Gmail")
	return emails, nil
}

// extractTextBody walks the MIME tree preferring text/plain parts; HTML is
// the fallback when no plain part exists.
func extractTextBody(payload *gmail.MessagePart) string {
	if payload == nil {
		return ""
	}

	if len(payload.Parts) == 0 {
		return decodePartBody(payload)
	}

	var htmlBody string
	for _, part := range payload.Parts {
		switch {
		case part.MimeType == "text/plain" && part.Body != nil && part.Body.Data != "":
			if text := decodePartBody(part); text != "" {
				return text
			}
		case part.MimeType == "text/html" && part.Body != nil && part.Body.Data != "":
			if htmlBody == "" {
				htmlBody = decodePartBody(part)
			}
		case len(part.Parts) > 0:
			if nested := extractTextBody(part); nested != "" {
				return nested
			}
		}
	}
	return htmlBody
}

func decodePartBody(part *gmail.MessagePart) string {
	if part.Body == nil || part.Body.Data == "" {
		return ""
	}
	decoded, err := base64.URLEncoding.DecodeString(part.Body.Data)
	if err != nil {
		return ""
	}
	return string(decoded)
}

func hasAttachments(payload *gmail.MessagePart) bool {
	if payload == nil {
		return false
	}
	for _, part := range payload.Parts {
		if part.Filename != "" {
			return true
		}
		if hasAttachments(part) {
			return true
		}
	}
	return false
}

// splitAddress separates `Name <addr@example.com>` into its display name
// and address. A bare address serves as both.
func splitAddress(from string) (name, email string) {
	if idx := strings.Index(from, "<"); idx >= 0 {
		name = strings.Trim(strings.TrimSpace(from[:idx]), `"`)
		email = strings.TrimRight(strings.TrimSpace(from[idx+1:]), ">")
		if name == "" {
			name = email
		}
		return name, email
	}
	from = strings.TrimSpace(from)
	return from, from
}
