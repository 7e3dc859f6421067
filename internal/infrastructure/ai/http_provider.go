package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/doeshing/jarvis-go/internal/domain"
	"github.com/doeshing/jarvis-go/internal/ports"
)

type httpCompleter struct {
	name       string
	model      domain.ModelDefinition
	apiKey     string
	httpClient *http.Client
	adapter    providerAdapter
}

type providerAdapter struct {
	buildRequest  func(domain.ModelDefinition, domain.CompletionRequest) ([]byte, error)
	parseResponse func([]byte) (string, error)
	setHeaders    func(*http.Request, string)
}

func newHTTPCompleter(model domain.ModelDefinition, apiKey string, client *http.Client, adapter providerAdapter) ports.Completer {
	return &httpCompleter{
		name:       model.Name,
		model:      model,
		apiKey:     apiKey,
		httpClient: client,
		adapter:    adapter,
	}
}

func (c *httpCompleter) Name() string {
	return c.name
}

func (c *httpCompleter) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	ctx, cancel := withBackendTimeout(ctx, c.model)
	defer cancel()

	body, err := c.adapter.buildRequest(c.model, req)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.model.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("content-type", "application/json")
	c.adapter.setHeaders(httpReq, c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("%s: %s", c.name, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	content, err := c.adapter.parseResponse(data)
	if err != nil {
		return "", fmt.Errorf("%s: decode response: %w", c.name, err)
	}
	if content == "" {
		return "", fmt.Errorf("%s: empty completion", c.name)
	}
	return content, nil
}

func chatCompletionsAdapter() providerAdapter {
	return providerAdapter{
		buildRequest:  buildChatCompletionRequest,
		parseResponse: parseChatCompletionResponse,
		setHeaders:    setBearerHeaders,
	}
}

func anthropicAdapter() providerAdapter {
	return providerAdapter{
		buildRequest:  buildAnthropicRequest,
		parseResponse: parseAnthropicResponse,
		setHeaders:    setAnthropicHeaders,
	}
}

func buildChatCompletionRequest(model domain.ModelDefinition, req domain.CompletionRequest) ([]byte, error) {
	request := chatCompletionRequest{
		Model:       model.ModelID,
		Messages:    requestMessages(req),
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}
	if req.JSON {
		request.ResponseFormat = &responseFormat{Type: "json_object"}
	}
	return json.Marshal(request)
}

func parseChatCompletionResponse(body []byte) (string, error) {
	var response chatCompletionResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", err
	}
	return response.FirstMessage(), nil
}

// setBearerHeaders sends the key when one is configured; local servers such
// as Ollama accept unauthenticated requests.
func setBearerHeaders(req *http.Request, apiKey string) {
	if apiKey != "" {
		req.Header.Set("authorization", "Bearer "+apiKey)
	}
}

func buildAnthropicRequest(model domain.ModelDefinition, req domain.CompletionRequest) ([]byte, error) {
	var chat []map[string]interface{}
	for _, msg := range requestMessages(req) {
		if msg.Role == "system" {
			continue
		}
		chat = append(chat, map[string]interface{}{
			"role": msg.Role,
			"content": []map[string]string{
				{"type": "text", "text": msg.Content},
			},
		})
	}

	request := map[string]interface{}{
		"model":      valueOrDefault(model.ModelID, "claude-3-5-haiku-latest"),
		"max_tokens": valueOrDefaultInt(req.MaxTokens, 1024),
		"messages":   chat,
	}
	if system := strings.TrimSpace(req.System); system != "" {
		request["system"] = system
	}
	if req.Temperature > 0 {
		request["temperature"] = req.Temperature
	}
	return json.Marshal(request)
}

func parseAnthropicResponse(body []byte) (string, error) {
	var response struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", err
	}
	if len(response.Content) == 0 {
		return "", nil
	}
	return strings.TrimSpace(response.Content[0].Text), nil
}

func setAnthropicHeaders(req *http.Request, apiKey string) {
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")
}
