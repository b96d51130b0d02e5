package workflow

import (
	"encoding/json"
	"strings"

	"scout/tools"
)

// Decision action values the reasoning backend is instructed to return.
const (
	ActionAnswerDirectly = "answer_directly"
	ActionSearchFirst    = "search_first"
	ActionUseTools       = "use_tools"
)

// DecisionSource records which path produced the decision.
type DecisionSource string

const (
	// SourceModel: the backend returned a well-formed JSON decision.
	SourceModel DecisionSource = "model"
	// SourceKeywordFallback: the backend output was not valid JSON and
	// the keyword classifier decided instead.
	SourceKeywordFallback DecisionSource = "keyword_fallback"
	// SourceErrorDefault: the backend call itself failed; the turn
	// degrades to a plain-knowledge answer.
	SourceErrorDefault DecisionSource = "error_default"
)

// Decision is the fixed-schema payload of the decision stage.
type Decision struct {
	Analysis    string `json:"analysis"`
	NextAction  string `json:"next_action"`
	SearchQuery string `json:"search_query"`
	Reason      string `json:"reason"`
	ToolNeeded  string `json:"tool_needed"`

	Source DecisionSource `json:"-"`
}

// Route maps the decision's next action onto a route; unknown or missing
// values default to a direct answer.
func (d *Decision) Route() Route {
	switch d.NextAction {
	case ActionSearchFirst:
		return RouteSearch
	case ActionUseTools:
		return RouteTool
	default:
		return RouteDirect
	}
}

// normalize fills defaults: the search query falls back to the user
// query and the tool selector to "none".
func (d *Decision) normalize(query string) {
	if d.SearchQuery == "" {
		d.SearchQuery = query
	}
	if d.ToolNeeded == "" {
		d.ToolNeeded = tools.NameNone
	}
	if d.NextAction == "" {
		d.NextAction = ActionAnswerDirectly
	}
}

// ParseDecision attempts a strict JSON decode of the backend's raw text.
// On decode failure it falls back to the keyword classifier.
func ParseDecision(raw, query string) Decision {
	var d Decision
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		d = classifyByKeywords(query)
	} else {
		d.Source = SourceModel
	}
	d.normalize(query)
	return d
}

// DefaultDecision is the degraded outcome when the backend call fails:
// never block the conversation, answer from background knowledge.
func DefaultDecision(query string) Decision {
	d := Decision{
		Analysis:   "automatic fallback",
		NextAction: ActionAnswerDirectly,
		Reason:     "decision backend unavailable",
		ToolNeeded: tools.NameNone,
		Source:     SourceErrorDefault,
	}
	d.normalize(query)
	return d
}

// Keyword sets for the fallback classifier, evaluated in priority order:
// search first, then arithmetic, then time. Chinese and English keywords
// are both matched.
var (
	searchKeywords = []string{
		"最新", "新闻", "实时", "搜索", "查一下", "股价", "天气", "行情", "如何", "怎样", "2025",
		"latest", "news", "breaking", "search", "stock", "weather", "price",
	}
	arithmeticKeywords = []string{
		"计算", "等于", "加", "减", "乘", "除", "+", "-", "*", "/",
		"calculate", "equals", "plus", "minus", "times", "divided",
	}
	timeKeywords = []string{
		"时间", "日期", "星期", "几号", "年月日", "今天", "现在",
		"time", "date", "week", "weekday", "today", "now",
	}
)

func classifyByKeywords(query string) Decision {
	lowered := strings.ToLower(query)

	d := Decision{
		Analysis: "keyword analysis",
		Reason:   "decision payload was not valid JSON",
		Source:   SourceKeywordFallback,
	}

	switch {
	case containsAny(lowered, searchKeywords):
		d.NextAction = ActionSearchFirst
		d.SearchQuery = query
		d.ToolNeeded = tools.NameWebSearch
	case containsAny(lowered, arithmeticKeywords):
		d.NextAction = ActionUseTools
		d.ToolNeeded = tools.NameCalculator
	case containsAny(lowered, timeKeywords):
		d.NextAction = ActionUseTools
		d.ToolNeeded = tools.NameDateTime
	default:
		d.NextAction = ActionAnswerDirectly
		d.ToolNeeded = tools.NameNone
	}

	return d
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
