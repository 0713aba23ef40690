package llm

import (
	"math"
	"os"
	"strconv"
	"time"
)

const (
	defaultBaseURL     = "https://openrouter.ai/api/v1"
	defaultModel       = "openai/gpt-3.5-turbo"
	defaultMaxTokens   = 2048
	defaultTemperature = 0.2
	defaultTimeout     = 60 * time.Second
	defaultReferer     = "http://localhost:3000"
	defaultTitle       = "Component Playground"
)

// loads generator configuration from environment variables; the API key is supplied by the caller
func loadConfig(apiKey string) Config {
	baseURL := os.Getenv("OPENROUTER_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	model := os.Getenv("GENERATOR_MODEL")
	if model == "" {
		model = defaultModel
	}

	maxTokens := defaultMaxTokens
	if maxTokensStr := os.Getenv("GENERATOR_MAX_TOKENS"); maxTokensStr != "" {
		if val, err := strconv.Atoi(maxTokensStr); err == nil && val > 0 {
			maxTokens = val
		}
	}

	temperature := float32(defaultTemperature)
	if tempStr := os.Getenv("GENERATOR_TEMPERATURE"); tempStr != "" {
		if val, err := strconv.ParseFloat(tempStr, 32); err == nil && val >= 0 {
			temperature = wireTemperature(float32(val))
		}
	}

	timeout := defaultTimeout
	if timeoutStr := os.Getenv("GENERATOR_TIMEOUT"); timeoutStr != "" {
		if val, err := time.ParseDuration(timeoutStr); err == nil && val > 0 {
			timeout = val
		}
	}

	referer := os.Getenv("APP_REFERER")
	if referer == "" {
		referer = defaultReferer
	}

	title := os.Getenv("APP_TITLE")
	if title == "" {
		title = defaultTitle
	}

	return Config{
		APIKey:      apiKey,
		BaseURL:     baseURL,
		Model:       model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		Timeout:     timeout,
		Referer:     referer,
		Title:       title,
	}
}

func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}

	if c.Model == "" {
		c.Model = defaultModel
	}

	if c.MaxTokens == 0 {
		c.MaxTokens = defaultMaxTokens
	}

	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}

	if c.Temperature == 0 {
		c.Temperature = defaultTemperature
	}
}

// go-openai drops a zero temperature from the request body (omitempty); an explicit 0 is sent as the smallest nonzero value
func wireTemperature(t float32) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return t
}
