package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/mark3labs/flyt"

	"scout/llm"
	"scout/search"
	"scout/tools"
)

// Output caps applied before branch results are stored, bounding the
// prompt size the synthesis stage sees.
const (
	searchOutputLimit = 1000
	toolOutputLimit   = 800
)

// FallbackAnswer is the terminal default: the turn always ends with a
// non-empty final answer.
const FallbackAnswer = "Sorry, I can't answer that right now."

// Env carries the collaborators every node shares. One Env serves one
// session; nodes are rebuilt per turn.
type Env struct {
	Provider    llm.Provider
	Model       string
	Temperature float64
	Session     *llm.Session
	Tools       *tools.Registry
	Searcher    search.Searcher
	Logger      hclog.Logger
	Events      EventSink
	Now         func() time.Time
}

// chat issues a single system-prompt completion, the only call shape the
// pipeline uses.
func (e *Env) chat(ctx context.Context, prompt string) (string, error) {
	resp, err := e.Provider.Chat(ctx, &llm.ChatRequest{
		Model:       e.Model,
		Temperature: e.Temperature,
		Messages:    []llm.Message{llm.NewTextMessage(llm.RoleSystem, prompt)},
	})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

func (e *Env) log() hclog.Logger {
	if e.Logger == nil {
		return hclog.NewNullLogger()
	}
	return e.Logger
}

func (e *Env) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

type decidePrep struct {
	query      string
	transcript string
}

// NewDecideNode classifies the turn into one of the three routes. A
// backend failure degrades to a direct answer rather than failing the
// turn.
func NewDecideNode(env *Env) flyt.Node {
	return flyt.NewNode(
		flyt.WithPrepFuncAny(func(ctx context.Context, shared *flyt.SharedStore) (any, error) {
			return decidePrep{
				query:      getString(shared, keyQuery),
				transcript: env.Session.RenderTranscript(),
			}, nil
		}),
		flyt.WithExecFuncAny(func(ctx context.Context, prepResult any) (any, error) {
			prep := prepResult.(decidePrep)

			raw, err := env.chat(ctx, decisionPrompt(prep.query, prep.transcript))
			if err != nil {
				env.log().Warn("decision backend call failed, defaulting to direct answer", "error", err)
				return DefaultDecision(prep.query), nil
			}

			return ParseDecision(raw, prep.query), nil
		}),
		flyt.WithPostFuncAny(func(ctx context.Context, shared *flyt.SharedStore, prepResult, execResult any) (flyt.Action, error) {
			decision := execResult.(Decision)
			route := decision.Route()

			shared.Set(keyRoute, string(route))
			shared.Set(keyTool, decision.ToolNeeded)
			shared.Set(keySearchQuery, decision.SearchQuery)
			shared.Set(keyDecisionSource, string(decision.Source))
			shared.Set(keyStage, stageDecided)

			if decision.Analysis != "" {
				env.Session.Append(llm.RoleAssistant, "Decision: "+decision.Analysis)
			}

			env.log().Debug("route decided",
				"route", route,
				"tool", decision.ToolNeeded,
				"source", decision.Source,
				"reason", decision.Reason,
			)
			env.events().Decided(route, decision.ToolNeeded)

			return routeAction(route), nil
		}),
	)
}

// NewDirectAnswerNode answers from background knowledge only. A backend
// failure here is not caught; it surfaces at the per-turn boundary.
func NewDirectAnswerNode(env *Env) flyt.Node {
	return flyt.NewNode(
		flyt.WithPrepFuncAny(func(ctx context.Context, shared *flyt.SharedStore) (any, error) {
			return decidePrep{
				query:      getString(shared, keyQuery),
				transcript: env.Session.RenderTranscript(),
			}, nil
		}),
		flyt.WithExecFuncAny(func(ctx context.Context, prepResult any) (any, error) {
			prep := prepResult.(decidePrep)
			return env.chat(ctx, directAnswerPrompt(prep.query, prep.transcript))
		}),
		flyt.WithPostFuncAny(func(ctx context.Context, shared *flyt.SharedStore, prepResult, execResult any) (flyt.Action, error) {
			shared.Set(keyFinalAnswer, execResult.(string))
			shared.Set(keyStage, stageAnsweredDirectly)
			return actionSynthesize, nil
		}),
	)
}

type searchPrep struct {
	query string
}

type searchExec struct {
	output string
	failed bool
}

// NewSearchNode runs the web search branch. Every failure mode becomes a
// textual branch output; the turn always proceeds to synthesis.
func NewSearchNode(env *Env) flyt.Node {
	return flyt.NewNode(
		flyt.WithPrepFuncAny(func(ctx context.Context, shared *flyt.SharedStore) (any, error) {
			return searchPrep{
				query: getStringOr(shared, keySearchQuery, getString(shared, keyQuery)),
			}, nil
		}),
		flyt.WithExecFuncAny(func(ctx context.Context, prepResult any) (any, error) {
			prep := prepResult.(searchPrep)

			if env.Searcher == nil {
				return searchExec{output: tools.UnavailableMessage}, nil
			}

			// The date suffix biases the backend toward recent results.
			enhanced := fmt.Sprintf("%s (current date: %s)", prep.query, env.now().Format("January 2, 2006"))
			env.log().Debug("searching", "query", enhanced)
			env.events().Searching(prep.query)

			resp, err := env.Searcher.Search(ctx, enhanced)
			if err != nil {
				return searchExec{
					output: fmt.Sprintf("Search failed: %v. Check the network connection or API key.", err),
					failed: true,
				}, nil
			}

			return searchExec{output: search.FormatDigest(resp)}, nil
		}),
		flyt.WithPostFuncAny(func(ctx context.Context, shared *flyt.SharedStore, prepResult, execResult any) (flyt.Action, error) {
			result := execResult.(searchExec)

			shared.Set(keyBranchOutput, tools.Truncate(result.output, searchOutputLimit))
			if result.failed {
				shared.Set(keyStage, stageSearchFailed)
				env.Session.Append(llm.RoleAssistant, "Search hit a problem; answering from existing knowledge.")
			} else {
				shared.Set(keyStage, stageSearched)
				env.Session.Append(llm.RoleAssistant, "Search complete; retrieved current information.")
			}

			return actionSynthesize, nil
		}),
	)
}

type toolPrep struct {
	selector string
	query    string
}

type toolExec struct {
	output   string
	toolUsed string
}

// NewToolNode dispatches to the selected tool. An unrecognized selector
// falls back to web search on the raw query.
func NewToolNode(env *Env) flyt.Node {
	return flyt.NewNode(
		flyt.WithPrepFuncAny(func(ctx context.Context, shared *flyt.SharedStore) (any, error) {
			return toolPrep{
				selector: getString(shared, keyTool),
				query:    getString(shared, keyQuery),
			}, nil
		}),
		flyt.WithExecFuncAny(func(ctx context.Context, prepResult any) (any, error) {
			prep := prepResult.(toolPrep)

			selector := prep.selector
			if selector == "" || selector == tools.NameNone || !env.Tools.Has(selector) {
				selector = tools.NameWebSearch
			}

			env.log().Debug("invoking tool", "tool", selector)
			env.events().CallingTool(selector)

			tool, err := env.Tools.Get(selector)
			if err != nil {
				return toolExec{output: fmt.Sprintf("Tool execution failed: %v", err), toolUsed: selector}, nil
			}

			output, err := tool.Call(ctx, prep.query)
			if err != nil {
				output = fmt.Sprintf("Tool execution failed: %v", err)
			}

			return toolExec{output: output, toolUsed: selector}, nil
		}),
		flyt.WithPostFuncAny(func(ctx context.Context, shared *flyt.SharedStore, prepResult, execResult any) (flyt.Action, error) {
			result := execResult.(toolExec)

			shared.Set(keyBranchOutput, tools.Truncate(result.output, toolOutputLimit))
			shared.Set(keyTool, result.toolUsed)
			shared.Set(keyStage, stageToolsExecuted)
			env.Session.Append(llm.RoleAssistant, "Tool execution complete.")

			return actionSynthesize, nil
		}),
	)
}

type synthesisPrep struct {
	query        string
	transcript   string
	stage        string
	branchOutput string
	candidate    string
	route        Route
	tool         string
}

// NewSynthesizeNode produces the final answer. This is the last stage:
// every failure is converted to an apology string, never an error.
func NewSynthesizeNode(env *Env) flyt.Node {
	return flyt.NewNode(
		flyt.WithPrepFuncAny(func(ctx context.Context, shared *flyt.SharedStore) (any, error) {
			return synthesisPrep{
				query:        getString(shared, keyQuery),
				transcript:   env.Session.RenderTranscript(),
				stage:        getString(shared, keyStage),
				branchOutput: getString(shared, keyBranchOutput),
				candidate:    getString(shared, keyFinalAnswer),
				route:        Route(getString(shared, keyRoute)),
				tool:         getString(shared, keyTool),
			}, nil
		}),
		flyt.WithExecFuncAny(func(ctx context.Context, prepResult any) (any, error) {
			prep := prepResult.(synthesisPrep)

			// Direct answers pass through unchanged, no second call.
			if prep.stage == stageAnsweredDirectly {
				if prep.candidate == "" {
					return FallbackAnswer, nil
				}
				return prep.candidate, nil
			}

			answer, err := env.chat(ctx, synthesisPrompt(prep.query, prep.transcript, prep.branchOutput))
			if err != nil {
				env.log().Warn("synthesis backend call failed", "error", err)
				return fmt.Sprintf("Sorry, something went wrong while generating the answer. Error: %v", err), nil
			}

			return answer + provenanceFooter(prep.route, prep.tool), nil
		}),
		flyt.WithPostFuncAny(func(ctx context.Context, shared *flyt.SharedStore, prepResult, execResult any) (flyt.Action, error) {
			shared.Set(keyFinalAnswer, execResult.(string))
			shared.Set(keyStage, stageCompleted)
			return actionDone, nil
		}),
	)
}

// provenanceFooter names the capability that contributed to the answer.
// Direct answers carry no footer.
func provenanceFooter(route Route, tool string) string {
	var capability string
	switch route {
	case RouteSearch:
		capability = tools.NameWebSearch
	case RouteTool:
		capability = tool
	default:
		return ""
	}
	if capability == "" || capability == tools.NameNone {
		return ""
	}
	return fmt.Sprintf("\n\n---\nThis answer used the %s capability.", capability)
}
