package workflow

import "fmt"

func decisionPrompt(query, transcript string) string {
	return fmt.Sprintf(`Analyze the user's intent from the query and conversation history, then decide the next action.

User query: %q
Conversation history:
%s

Tasks:
1. Analyze the user's intent: summarize briefly what they want to know.
2. Decide the next action:
   - search_first: news, real-time data, latest technology, stock prices, weather forecasts, anything that needs verification against current information
   - use_tools: arithmetic, date/time lookups, unit conversions
   - answer_directly: general knowledge, definitions, historical facts, anything that needs no real-time information

Hints:
- Queries containing "calculate", "equals", "+", "-", "*", "/" want the calculator.
- Queries containing "time", "date", "today", "weekday" want the date/time tool.
- Queries containing "latest", "news", "stock", "weather" want a search.

Return ONLY a JSON object in exactly this shape:
{
    "analysis": "the user's intent",
    "next_action": "answer_directly|search_first|use_tools",
    "search_query": "search keywords, if a search is needed",
    "reason": "why this action was chosen",
    "tool_needed": "calculator|date_time|web_search|none"
}`, query, transcript)
}

func directAnswerPrompt(query, transcript string) string {
	return fmt.Sprintf(`Answer the user's question directly from your background knowledge, without searching external sources.

User question: %s
Conversation history:
%s

Requirements:
1. Answer accurately from what you know.
2. If you lack information or are uncertain, say so honestly.
3. Keep the answer clear and easy to follow.
4. For open-ended questions, offer more than one angle.

Answer:`, query, transcript)
}

func synthesisPrompt(query, transcript, branchOutput string) string {
	info := "No additional information."
	if branchOutput != "" {
		info = "Search/tool output:\n" + branchOutput
	}

	return fmt.Sprintf(`Produce the final answer from the information below.

User question: %s
Conversation history:
%s

%s

Requirements:
1. Answer the user's core question accurately.
2. If a tool ran, report its computed or looked-up result directly.
3. If search results are present, integrate the key facts and cite the sources.
4. Be complete, accurate, and useful, in a friendly professional tone.

Final answer:`, query, transcript, info)
}
