package workflow

import "github.com/mark3labs/flyt"

// Flow actions keyed into node transitions.
const (
	actionDirectAnswer flyt.Action = "direct_answer"
	actionSearch       flyt.Action = "search"
	actionTools        flyt.Action = "tools"
	actionSynthesize   flyt.Action = "synthesize"
	actionDone         flyt.Action = "done"
)

// routeAction is the router: a pure mapping from the decided route to
// the successor stage. Unknown routes fall through to direct answer.
func routeAction(r Route) flyt.Action {
	switch r {
	case RouteSearch:
		return actionSearch
	case RouteTool:
		return actionTools
	default:
		return actionDirectAnswer
	}
}
