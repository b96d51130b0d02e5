// Package workflow implements the routing graph for one conversation
// turn: decide → (direct answer | search | tool) → synthesize, executed
// by flyt over a shared per-turn store.
package workflow

import (
	"github.com/mark3labs/flyt"
)

// Route is the chosen high-level strategy for a turn.
type Route string

const (
	RouteDirect Route = "direct"
	RouteSearch Route = "search"
	RouteTool   Route = "tool"
)

// Shared-store keys. Scalar fields are overwritten per stage; the
// message history lives in llm.Session, not the store.
const (
	keyQuery          = "query"
	keyRoute          = "route"
	keyTool           = "tool"
	keySearchQuery    = "search_query"
	keyBranchOutput   = "branch_output"
	keyFinalAnswer    = "final_answer"
	keyStage          = "stage"
	keyDecisionSource = "decision_source"
)

// Stage labels are diagnostic only; the synthesize node reads keyStage
// to detect the direct-answer passthrough.
const (
	stageDecided          = "decided_action"
	stageAnsweredDirectly = "answered_directly"
	stageSearched         = "searched"
	stageSearchFailed     = "search_failed"
	stageToolsExecuted    = "tools_executed"
	stageCompleted        = "completed"
)

// getString reads a string value from the shared store, tolerating both
// missing keys and non-string values.
func getString(shared *flyt.SharedStore, key string) string {
	v, ok := shared.Get(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

func getStringOr(shared *flyt.SharedStore, key, fallback string) string {
	if s := getString(shared, key); s != "" {
		return s
	}
	return fallback
}
