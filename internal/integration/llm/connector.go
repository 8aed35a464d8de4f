package llm

import (
	"context"
	"fmt"

	"github.com/futig/career-agent/internal/config"
	"github.com/futig/career-agent/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const jsonMIMEType = "application/json"

// Connector talks to the Gemini API.
type Connector struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

func NewConnector(
	ctx context.Context,
	cfg config.GenerationConfig,
	logger *zap.Logger,
) (*Connector, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Connector{
		client: client,
		model:  cfg.Model,
		logger: logger,
	}, nil
}

// GenerateJSON sends a single prompt with the response forced to JSON.
func (c *Connector) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	ctxzap.Debug(ctx, "generating content via Gemini", zap.String("model", c.model), zap.Int("prompt_length", len(prompt)))

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: jsonMIMEType,
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	ctxzap.Debug(ctx, "content generated", zap.Int("result_length", len(text)))

	return text, nil
}

// GenerateChat replays history as prior turns and sends prompt as the current message.
func (c *Connector) GenerateChat(ctx context.Context, prompt string, history []entity.ChatTurn) (string, error) {
	ctxzap.Debug(ctx, "generating chat reply via Gemini",
		zap.String("model", c.model),
		zap.Int("history_length", len(history)),
	)

	chat, err := c.client.Chats.Create(ctx, c.model, nil, ToContents(history))
	if err != nil {
		return "", fmt.Errorf("create chat: %w", err)
	}

	resp, err := chat.SendMessage(ctx, genai.Part{Text: prompt})
	if err != nil {
		return "", fmt.Errorf("send message: %w", err)
	}

	text := resp.Text()
	ctxzap.Debug(ctx, "chat reply generated", zap.Int("result_length", len(text)))

	return text, nil
}

// ToContents converts chat turns to Gemini contents, one content per turn, in order.
func ToContents(turns []entity.ChatTurn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(turns))
	for _, turn := range turns {
		role := genai.RoleUser
		if turn.Role == entity.ChatRoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: turn.Content}},
		})
	}
	return contents
}
