package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/doeshing/jarvis-go/internal/domain"
	"github.com/doeshing/jarvis-go/internal/ports"
)

const defaultGeminiModel = "gemini-2.0-flash"

type geminiCompleter struct {
	model      domain.ModelDefinition
	apiKey     string
	httpClient *http.Client

	once      sync.Once
	client    *genai.Client
	clientErr error
}

func newGeminiCompleter(model domain.ModelDefinition, apiKey string, httpClient *http.Client) ports.Completer {
	return &geminiCompleter{model: model, apiKey: apiKey, httpClient: httpClient}
}

func (c *geminiCompleter) Name() string {
	return c.model.Name
}

func (c *geminiCompleter) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	ctx, cancel := withBackendTimeout(ctx, c.model)
	defer cancel()

	client, err := c.ensureClient(ctx)
	if err != nil {
		return "", err
	}

	contents := make([]*genai.Content, 0, len(req.History)+1)
	for _, msg := range req.History {
		role := genai.Role(genai.RoleUser)
		if msg.Role == domain.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(msg.Content, role))
	}
	contents = append(contents, genai.NewContentFromText(req.Prompt, genai.RoleUser))

	config := &genai.GenerateContentConfig{}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.Temperature > 0 {
		config.Temperature = genai.Ptr(float32(req.Temperature))
	}
	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}
	if req.JSON {
		config.ResponseMIMEType = "application/json"
	}

	modelID := valueOrDefault(c.model.ModelID, defaultGeminiModel)
	resp, err := client.Models.GenerateContent(ctx, modelID, contents, config)
	if err != nil {
		return "", fmt.Errorf("%s: %w", c.model.Name, err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("%s: empty completion", c.model.Name)
	}
	return text, nil
}

// ensureClient builds the genai client on first use.
func (c *geminiCompleter) ensureClient(ctx context.Context) (*genai.Client, error) {
	c.once.Do(func() {
		c.client, c.clientErr = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:     c.apiKey,
			Backend:    genai.BackendGeminiAPI,
			HTTPClient: c.httpClient,
		})
		if c.clientErr != nil {
			c.clientErr = fmt.Errorf("%s: create client: %w", c.model.Name, c.clientErr)
		}
	})
	return c.client, c.clientErr
}
