package streamers

// ChatHandler defines the interface for handling chat I/O.
// Different implementations can handle stdout/stdin, websocket, etc.
type ChatHandler interface {
	// Welcome displays the initial welcome message when chat starts
	Welcome(modelName string)

	// AwaitClientAnswer prompts for and reads user input, returns the input and any error
	AwaitClientAnswer() (string, error)

	// Goodbye displays the farewell message when chat ends
	Goodbye()

	// Error displays an error message
	Error(err error)

	// Thinking is called when the agent starts deciding how to answer
	Thinking()

	// Routing is called once the route for the turn is known
	Routing(route string, tool string)

	// Searching is called when a web search starts
	Searching(query string)

	// CallingTool is called when the agent invokes a deterministic tool
	CallingTool(toolName string)

	// Answer is called with the final markdown answer for the turn
	Answer(markdown string)
}

// Noop is a ChatHandler that discards every event. Useful in tests and
// for headless surfaces that only want the returned answer.
type Noop struct{}

func (Noop) Welcome(string) {}

func (Noop) AwaitClientAnswer() (string, error) { return "", nil }

func (Noop) Goodbye() {}

func (Noop) Error(error) {}

func (Noop) Thinking() {}

func (Noop) Routing(string, string) {}

func (Noop) Searching(string) {}

func (Noop) CallingTool(string) {}

func (Noop) Answer(string) {}
