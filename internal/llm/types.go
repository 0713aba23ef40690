package llm

import (
	"context"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

// sends a chat-completion request to the generation backend
type ChatCompleter interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	Model() string
}

// role vocabulary of the generation backend
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type CompletionRequest struct {
	Messages []Message
}

type CompletionResponse struct {
	Text  string
	Model string
	Usage Usage
}

type Usage struct {
	InputTokens  int
	OutputTokens int
}

// holds configuration for the OpenRouter client
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string  // e.g. "openai/gpt-3.5-turbo"
	MaxTokens   int     // output token budget
	Temperature float32 // kept low; 0 means unset, use math.SmallestNonzeroFloat32 for greedy decoding
	Timeout     time.Duration
	Referer     string // OpenRouter attribution header
	Title       string // OpenRouter attribution header
}

// OpenAI-compatible chat-completion client pointed at OpenRouter
type OpenRouterClient struct {
	config  Config
	client  *openai.Client
	limiter *rate.Limiter
}

// injects static headers into every outbound request
type headerTransport struct {
	base    http.RoundTripper
	headers map[string]string
}
