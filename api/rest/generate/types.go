package generate

import (
	"context"

	"codeberg.org/algrv/playground/internal/generator"
	"codeberg.org/algrv/playground/playground/sessions"
)

// produces a component from a prompt
type ComponentGenerator interface {
	Generate(ctx context.Context, req generator.Request) (*generator.Result, error)
}

type Request struct {
	Prompt string         `json:"prompt" binding:"required,max=10000"`
	Chat   []ChatTurn     `json:"chat" binding:"omitempty,max=500,dive"`
	Code   *sessions.Code `json:"code,omitempty"`
}

// content is loosely typed; turns whose content is not a string are dropped
type ChatTurn struct {
	Role    string `json:"role" binding:"required,oneof=user ai assistant system"`
	Content any    `json:"content"`
}

type Response struct {
	JSX string `json:"jsx"`
	CSS string `json:"css"`
	Raw string `json:"raw"`
}
