package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"promowatch/internal/model"
)

const summaryPrompt = `You write short notes for a price watcher.
Given a product snapshot and the alerts raised for it, answer with one plain-text paragraph
(at most four sentences) saying which promotions stand out and why. No markdown.`

// Summarizer asks a chat model for a short paragraph about a snapshot.
type Summarizer struct {
	Client *openai.Client
	Model  string
}

// NewSummarizer returns nil when no API key is configured.
func NewSummarizer(apiKey, model string) *Summarizer {
	if apiKey == "" {
		return nil
	}
	return &Summarizer{Client: openai.NewClient(apiKey), Model: model}
}

func (s *Summarizer) Summarize(ctx context.Context, p model.Product, flags []string) (string, error) {
	var sb strings.Builder
	sb.WriteString("ALERTS:\n")
	for _, f := range flags {
		sb.WriteString("- " + f + "\n")
	}
	sb.WriteString("\n" + Digest(p))

	modelName := s.Model
	if modelName == "" {
		modelName = openai.GPT4oMini
	}

	resp, err := s.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: modelName,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: summaryPrompt},
			{Role: openai.ChatMessageRoleUser, Content: sb.String()},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("summarize product %d: %w", p.ProductID, err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("summarize: empty completion")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
