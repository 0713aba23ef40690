package main

import (
	"codeberg.org/algrv/playground/internal/config"
	"codeberg.org/algrv/playground/internal/generator"
	"codeberg.org/algrv/playground/internal/llm"
	"codeberg.org/algrv/playground/internal/logger"
)

// creates and configures all service clients
func InitializeServices(cfg *config.Config) *Services {
	llmClient := llm.NewLLM(cfg.OpenRouterKey)

	// the server still starts, generate requests fail until a key is configured
	if !llmClient.HasCredential() {
		logger.Warn("OPENROUTER_API_KEY not set, component generation is disabled")
	}

	logger.Info("generation client configured", "model", llmClient.Model())

	return &Services{
		LLM:       llmClient,
		Generator: generator.New(llmClient),
	}
}
