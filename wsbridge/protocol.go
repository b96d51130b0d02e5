package wsbridge

// MessageType discriminates envelopes on the chat socket.
type MessageType string

const (
	// client -> server
	TypeAsk MessageType = "ask"

	// server -> client
	TypeWelcome MessageType = "welcome"
	TypeStage   MessageType = "stage"
	TypeAnswer  MessageType = "answer"
	TypeError   MessageType = "error"
)

// Stage labels carried by TypeStage envelopes.
const (
	StageThinking    = "thinking"
	StageRouting     = "routing"
	StageSearching   = "searching"
	StageCallingTool = "calling_tool"
)

// Envelope is the single wire message shape in both directions. Unused
// fields are omitted.
type Envelope struct {
	Type    MessageType `json:"type"`
	Content string      `json:"content,omitempty"`
	Stage   string      `json:"stage,omitempty"`
	Route   string      `json:"route,omitempty"`
	Tool    string      `json:"tool,omitempty"`
	Model   string      `json:"model,omitempty"`
	Session string      `json:"session,omitempty"`
}
