// Package slack posts finalized incidents to Slack via incoming webhooks.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/linnemanlabs/go-core/log"

	"github.com/linnemanlabs/beacon/internal/incident"
)

const (
	maxDescriptionLen = 2000
	httpTimeout       = 10 * time.Second
)

// Notifier sends incident records to a Slack webhook.
type Notifier struct {
	webhookURL string
	client     *http.Client
	logger     log.Logger
}

// New creates a new Slack notifier. If webhookURL is empty, Send is a no-op.
func New(webhookURL string, logger log.Logger) *Notifier {
	if logger == nil {
		logger = log.Nop()
	}
	return &Notifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: httpTimeout},
		logger:     logger,
	}
}

// Send posts an incident to the configured Slack webhook.
// If no webhook URL is configured, it returns nil immediately.
func (n *Notifier) Send(ctx context.Context, inc *incident.Incident) error {
	if n.webhookURL == "" {
		return nil
	}

	msg := buildMessage(inc)

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("slack: marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("slack: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req) //nolint:gosec // G704: webhookURL is from trusted config, not user input
	if err != nil {
		return fmt.Errorf("slack: post webhook: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("slack: webhook returned %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

func buildMessage(inc *incident.Incident) map[string]any {
	return map[string]any{
		"blocks": []map[string]any{
			headerBlock(),
			{"type": "divider"},
			fieldsBlock(inc),
			{"type": "divider"},
			descriptionBlock(inc),
			{"type": "divider"},
			contextBlock(inc),
		},
	}
}

func headerBlock() map[string]any {
	return map[string]any{
		"type": "header",
		"text": map[string]any{
			"type": "plain_text",
			"text": "\U0001f6a8 New Incident Reported",
		},
	}
}

func fieldsBlock(inc *incident.Incident) map[string]any {
	location := "pending"
	if inc.ExtractedLocation != nil {
		location = *inc.ExtractedLocation
	}

	fields := []map[string]any{
		{
			"type": "mrkdwn",
			"text": fmt.Sprintf("*Location:* %s", location),
		},
		{
			"type": "mrkdwn",
			"text": fmt.Sprintf("*Reported:* %s", inc.CreatedAt.UTC().Format("2006-01-02 15:04 UTC")),
		},
	}

	return map[string]any{
		"type":   "section",
		"fields": fields,
	}
}

func descriptionBlock(inc *incident.Incident) map[string]any {
	text := truncate(inc.Description, maxDescriptionLen)
	if text == "" {
		text = "_No description available._"
	}

	return map[string]any{
		"type": "section",
		"text": map[string]any{
			"type": "mrkdwn",
			"text": fmt.Sprintf("*Description*\n\n%s", text),
		},
	}
}

func contextBlock(inc *incident.Incident) map[string]any {
	elements := []map[string]any{
		{
			"type": "mrkdwn",
			"text": fmt.Sprintf("beacon • incident %s", inc.ID),
		},
	}

	return map[string]any{
		"type":     "context",
		"elements": elements,
	}
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit-3] + "..."
}
