package generator

import (
	"codeberg.org/algrv/playground/internal/llm"
	"codeberg.org/algrv/playground/playground/sessions"
)

// turns a prompt, chat history and the current code into a new component
type Generator struct {
	client llm.ChatCompleter
}

// a prior chat turn as sent by the client; role is one of user, ai, assistant or system
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Request struct {
	Prompt string
	Chat   []Turn
	Code   sessions.Code
}

// parsed reply; JSX or CSS is empty when the reply carried no matching block
type Result struct {
	JSX string `json:"jsx"`
	CSS string `json:"css"`
	Raw string `json:"raw"`
}
