package domain

import "time"

// Chat roles exchanged between the client, the engine and the model.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ChatMessage is one turn of rolling conversation history as seen by the
// presentation layer (user and assistant turns only).
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ToolResult is the uniform outcome of one executed tool call. Failures are
// values, not errors: the model reads them and decides how to recover.
type ToolResult struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ActionEntry records one executed tool call inside a turn, in execution
// order. The presentation layer renders these as per-action confirmations.
type ActionEntry struct {
	Tool      string     `json:"tool"`
	Result    ToolResult `json:"result"`
	Timestamp time.Time  `json:"timestamp"`
}

// Reply is the assembled outcome of processing one user message.
type Reply struct {
	Response string        `json:"response"`
	Actions  []ActionEntry `json:"actions"`
}

// TurnRecord is the journaled form of one processed message.
type TurnRecord struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user_id"`
	Message   string        `json:"message"`
	Response  string        `json:"response"`
	Actions   []ActionEntry `json:"actions"`
	CreatedAt time.Time     `json:"created_at"`
}
