package workflow

// EventSink receives progress notifications as a turn moves through the
// graph. Implementations must be fast; node execution blocks on them.
type EventSink interface {
	// Decided fires once the route for the turn is known.
	Decided(route Route, tool string)

	// Searching fires when the web search branch issues its request.
	Searching(query string)

	// CallingTool fires when the tool branch dispatches to a tool.
	CallingTool(name string)
}

type noopSink struct{}

func (noopSink) Decided(Route, string) {}
func (noopSink) Searching(string)      {}
func (noopSink) CallingTool(string)    {}

func (e *Env) events() EventSink {
	if e.Events == nil {
		return noopSink{}
	}
	return e.Events
}
