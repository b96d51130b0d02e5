package workflow

import (
	"context"

	"github.com/mark3labs/flyt"
)

// Outcome is what one turn hands back to the caller.
type Outcome struct {
	Answer       string
	Route        Route
	Tool         string
	Source       DecisionSource
	BranchOutput string
}

// Build wires the turn graph: decide fans out to exactly one branch, and
// all branches converge on synthesize.
func Build(env *Env) *flyt.Flow {
	decide := NewDecideNode(env)
	direct := NewDirectAnswerNode(env)
	searchNode := NewSearchNode(env)
	toolNode := NewToolNode(env)
	synthesize := NewSynthesizeNode(env)

	flow := flyt.NewFlow(decide)
	flow.Connect(decide, actionDirectAnswer, direct)
	flow.Connect(decide, actionSearch, searchNode)
	flow.Connect(decide, actionTools, toolNode)
	flow.Connect(direct, actionSynthesize, synthesize)
	flow.Connect(searchNode, actionSynthesize, synthesize)
	flow.Connect(toolNode, actionSynthesize, synthesize)
	return flow
}

// Run executes one turn for the given query. The final answer is always
// non-empty on a nil error.
func Run(ctx context.Context, env *Env, query string) (*Outcome, error) {
	shared := flyt.NewSharedStore()
	shared.Set(keyQuery, query)

	if err := Build(env).Run(ctx, shared); err != nil {
		return nil, err
	}

	outcome := &Outcome{
		Answer:       getStringOr(shared, keyFinalAnswer, FallbackAnswer),
		Route:        Route(getString(shared, keyRoute)),
		Tool:         getString(shared, keyTool),
		Source:       DecisionSource(getString(shared, keyDecisionSource)),
		BranchOutput: getString(shared, keyBranchOutput),
	}
	return outcome, nil
}
