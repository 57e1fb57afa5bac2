// Package claude wraps the Anthropic Messages API behind a minimal
// single-turn completion interface.
package claude

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// responseTokens bounds the answer size; we only ever want a short
// location string back.
const responseTokens = 256

// Client calls the Claude Messages API.
type Client struct {
	client anthropic.Client
	model  string
}

// New creates a new Claude client with the given API key and model
// name. SDK retries are disabled: the enrichment contract is one
// outbound call per invocation, and retry policy belongs to the caller.
func New(apiKey, model string) *Client {
	return &Client{
		client: anthropic.NewClient(
			option.WithAPIKey(apiKey),
			option.WithMaxRetries(0),
		),
		model: model,
	}
}

// Complete sends a single user prompt under the given system
// instruction and returns the concatenated text of the response.
func (c *Client) Complete(ctx context.Context, system, prompt string) (string, error) {
	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: responseTokens,
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("claude: send message: %w", err)
	}

	return joinText(msg.Content), nil
}

// joinText concatenates the text blocks of a response, ignoring any
// other block types.
func joinText(blocks []anthropic.ContentBlockUnion) string {
	var sb strings.Builder
	for _, block := range blocks {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return strings.TrimSpace(sb.String())
}
