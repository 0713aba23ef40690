package generator

import (
	"strings"

	"codeberg.org/algrv/playground/internal/llm"
)

// class name every generated component is wrapped in and every style rule is scoped under
const containerClass = "component-container"

const systemPrompt = "You are a React component generator. Always respond with JSX and CSS code in the following format:\n\n" +
	"```jsx\n" +
	"function Component() {\n" +
	"  return (\n" +
	"    <div className=\"" + containerClass + "\">\n" +
	"      {/* component markup */}\n" +
	"    </div>\n" +
	"  );\n" +
	"}\n\n" +
	"render(<Component />);\n" +
	"```\n\n" +
	"```css\n" +
	"." + containerClass + " {\n" +
	"  /* container styles */\n" +
	"}\n\n" +
	"." + containerClass + " button {\n" +
	"  /* element styles scoped to the component */\n" +
	"}\n" +
	"```\n\n" +
	"IMPORTANT: Always wrap your JSX in a single div with className=\"" + containerClass + "\" and scope ALL CSS rules " +
	"under ." + containerClass + " so the playground UI is not affected. Use specific class names for your elements " +
	"and always prefix CSS selectors with ." + containerClass + "."

const formatReminder = "\n\nPlease respond with the updated JSX and CSS code in the format specified."

// assembles the system instruction, translated history and the final user turn
func buildMessages(req Request) []llm.Message {
	messages := make([]llm.Message, 0, len(req.Chat)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: systemPrompt})

	for _, turn := range req.Chat {
		role, ok := upstreamRole(turn.Role)
		if !ok || turn.Content == "" {
			continue
		}

		messages = append(messages, llm.Message{Role: role, Content: turn.Content})
	}

	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: buildUserTurn(req)})

	return messages
}

func buildUserTurn(req Request) string {
	var builder strings.Builder

	builder.WriteString(req.Prompt)

	if !req.Code.IsEmpty() {
		builder.WriteString("\n\nCurrent JSX:\n```jsx\n")
		builder.WriteString(req.Code.JSX)
		builder.WriteString("\n```\n\nCurrent CSS:\n```css\n")
		builder.WriteString(req.Code.CSS)
		builder.WriteString("\n```")
	}

	builder.WriteString(formatReminder)

	return builder.String()
}

// maps a client chat role onto the upstream vocabulary; system and unknown roles are dropped
func upstreamRole(role string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "user":
		return llm.RoleUser, true
	case "ai", "assistant":
		return llm.RoleAssistant, true
	default:
		return "", false
	}
}
