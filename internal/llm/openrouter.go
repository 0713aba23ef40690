package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

// rate limiter for upstream generation calls (5 requests/second with burst capacity of 10)
var openRouterRateLimiter = rate.NewLimiter(5, 10)

// creates a client configured from the environment
func NewLLM(apiKey string) *OpenRouterClient {
	return NewOpenRouterClient(loadConfig(apiKey))
}

// creates a client with explicit configuration; a missing key only fails at call time
func NewOpenRouterClient(config Config) *OpenRouterClient {
	config.applyDefaults()

	clientConfig := openai.DefaultConfig(config.APIKey)
	clientConfig.BaseURL = strings.TrimRight(config.BaseURL, "/")
	clientConfig.HTTPClient = &http.Client{
		Timeout: config.Timeout,
		Transport: &headerTransport{
			base: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
			headers: map[string]string{
				"HTTP-Referer": config.Referer,
				"X-Title":      config.Title,
			},
		},
	}

	return &OpenRouterClient{
		config:  config,
		client:  openai.NewClientWithConfig(clientConfig),
		limiter: openRouterRateLimiter,
	}
}

func (c *OpenRouterClient) Model() string {
	return c.config.Model
}

// reports whether an API key is configured
func (c *OpenRouterClient) HasCredential() bool {
	return c.config.APIKey != ""
}

func (c *OpenRouterClient) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	if !c.HasCredential() {
		return nil, ErrMissingCredential
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, msg := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &UpstreamError{Kind: UpstreamUnreachable, Err: fmt.Errorf("rate limiter: %w", err)}
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.config.Model,
		Messages:    messages,
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
	})

	if err != nil {
		return nil, classifyError(err)
	}

	if len(resp.Choices) == 0 {
		return nil, &UpstreamError{
			Kind:       UpstreamStatus,
			StatusCode: http.StatusOK,
			Body:       "no choices in response",
		}
	}

	return &CompletionResponse{
		Text:  resp.Choices[0].Message.Content,
		Model: resp.Model,
		Usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
		},
	}, nil
}

// maps go-openai errors onto UpstreamError kinds
func classifyError(err error) *UpstreamError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &UpstreamError{
			Kind:       UpstreamStatus,
			StatusCode: apiErr.HTTPStatusCode,
			Body:       apiErr.Message,
			Err:        err,
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &UpstreamError{
			Kind:       UpstreamStatus,
			StatusCode: reqErr.HTTPStatusCode,
			Body:       strings.TrimSpace(string(reqErr.Body)),
			Err:        err,
		}
	}

	return &UpstreamError{Kind: UpstreamUnreachable, Err: err}
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())

	for k, v := range t.headers {
		if v != "" {
			clone.Header.Set(k, v)
		}
	}

	return t.base.RoundTrip(clone)
}
