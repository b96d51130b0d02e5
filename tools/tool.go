// Package tools holds the deterministic capabilities the decision stage
// can select: arithmetic evaluation, date/time reporting, and web search.
package tools

import (
	"context"
	"fmt"
	"sort"
)

// Canonical tool selector values produced by the decision stage.
const (
	NameCalculator = "calculator"
	NameDateTime   = "date_time"
	NameWebSearch  = "web_search"
	NameNone       = "none"
)

// Tool is a single deterministic capability: a pure function from a
// string input to a string result with an explicit failure mode.
type Tool interface {
	// ToolName returns the selector name of the tool.
	ToolName() string

	// ToolDescription returns a description of what the tool does.
	ToolDescription() string

	// Call executes the tool against the raw query text.
	Call(ctx context.Context, input string) (string, error)
}

// Registry is the closed collection of tools available to a turn.
type Registry struct {
	tools map[string]Tool
}

func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{tools: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		r.tools[t.ToolName()] = t
	}
	return r
}

func (r *Registry) Register(t Tool) {
	r.tools[t.ToolName()] = t
}

func (r *Registry) Get(name string) (Tool, error) {
	t, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("unknown tool %q", name)
	}
	return t, nil
}

func (r *Registry) Has(name string) bool {
	_, ok := r.tools[name]
	return ok
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
