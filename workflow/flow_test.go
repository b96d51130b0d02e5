package workflow_test

import (
	"context"
	"errors"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"scout/llm"
	"scout/search"
	"scout/tools"
	"scout/workflow"
)

func newEnv(provider llm.Provider, searcher search.Searcher) *workflow.Env {
	return &workflow.Env{
		Provider: provider,
		Model:    "test-model",
		Session:  llm.NewSession(),
		Tools: tools.NewRegistry(
			tools.NewCalculator(),
			tools.NewClockAt(func() time.Time {
				return time.Date(2024, time.February, 29, 12, 0, 0, 0, time.UTC)
			}),
			tools.NewWebSearch(searcher),
		),
		Searcher: searcher,
		Now: func() time.Time {
			return time.Date(2024, time.February, 29, 12, 0, 0, 0, time.UTC)
		},
	}
}

var _ = Describe("Run", func() {
	Context("direct answer route", func() {
		It("passes the direct answer through without a footer", func() {
			provider := &scriptedProvider{
				decision:   `{"analysis":"general knowledge","next_action":"answer_directly","tool_needed":"none"}`,
				completion: "Paris is the capital of France.",
			}
			env := newEnv(provider, nil)

			outcome, err := workflow.Run(context.Background(), env, "What is the capital of France?")
			Expect(err).NotTo(HaveOccurred())

			Expect(outcome.Route).To(Equal(workflow.RouteDirect))
			Expect(outcome.Answer).To(Equal("Paris is the capital of France."))
			Expect(outcome.Answer).NotTo(ContainSubstring("capability"))
			Expect(outcome.BranchOutput).To(BeEmpty())
			Expect(outcome.Source).To(Equal(workflow.SourceModel))
		})

		It("degrades to a direct answer when the decision call fails", func() {
			provider := &scriptedProvider{
				decisionErr: errors.New("backend down"),
				completion:  "Answered from background knowledge.",
			}
			env := newEnv(provider, nil)

			outcome, err := workflow.Run(context.Background(), env, "anything")
			Expect(err).NotTo(HaveOccurred())

			Expect(outcome.Route).To(Equal(workflow.RouteDirect))
			Expect(outcome.Source).To(Equal(workflow.SourceErrorDefault))
			Expect(outcome.Answer).To(Equal("Answered from background knowledge."))
		})
	})

	Context("search route", func() {
		It("feeds the digest into synthesis and appends the footer", func() {
			provider := &scriptedProvider{
				decision:   `{"next_action":"search_first","search_query":"go 1.25 release","tool_needed":"web_search"}`,
				completion: "Go 1.25 was released in August.",
			}
			searcher := &fakeSearcher{resp: &search.Response{
				Answer: "Go 1.25 is out.",
				Results: []search.Result{
					{Title: "Release notes", Content: "Go 1.25 release notes", URL: "https://go.dev"},
				},
			}}
			env := newEnv(provider, searcher)

			outcome, err := workflow.Run(context.Background(), env, "latest go release?")
			Expect(err).NotTo(HaveOccurred())

			Expect(outcome.Route).To(Equal(workflow.RouteSearch))
			Expect(searcher.lastQuery).To(Equal("go 1.25 release (current date: February 29, 2024)"))
			Expect(outcome.BranchOutput).To(ContainSubstring("[Synthesized answer]"))
			Expect(outcome.BranchOutput).To(ContainSubstring("https://go.dev"))
			Expect(outcome.Answer).To(Equal("Go 1.25 was released in August.\n\n---\nThis answer used the web_search capability."))
		})

		It("turns a search failure into branch text instead of an error", func() {
			provider := &scriptedProvider{
				decision:   `{"next_action":"search_first","tool_needed":"web_search"}`,
				completion: "Here is what I know without a search.",
			}
			searcher := &fakeSearcher{err: errors.New("connection refused")}
			env := newEnv(provider, searcher)

			outcome, err := workflow.Run(context.Background(), env, "latest news")
			Expect(err).NotTo(HaveOccurred())

			Expect(outcome.BranchOutput).To(ContainSubstring("Search failed"))
			Expect(outcome.BranchOutput).To(ContainSubstring("connection refused"))
			Expect(outcome.Answer).To(HavePrefix("Here is what I know without a search."))
		})

		It("reports unavailability when no searcher is configured", func() {
			provider := &scriptedProvider{
				decision:   `{"next_action":"search_first","tool_needed":"web_search"}`,
				completion: "Answering without search.",
			}
			env := newEnv(provider, nil)

			outcome, err := workflow.Run(context.Background(), env, "latest news")
			Expect(err).NotTo(HaveOccurred())
			Expect(outcome.BranchOutput).To(Equal(tools.UnavailableMessage))
		})

		It("truncates oversized search output before synthesis", func() {
			provider := &scriptedProvider{
				decision:   `{"next_action":"search_first","tool_needed":"web_search"}`,
				completion: "done",
			}
			searcher := &fakeSearcher{resp: &search.Response{Answer: strings.Repeat("x", 3000)}}
			env := newEnv(provider, searcher)

			outcome, err := workflow.Run(context.Background(), env, "latest news")
			Expect(err).NotTo(HaveOccurred())
			Expect(outcome.BranchOutput).To(HaveSuffix(tools.TruncationMarker))
			Expect(outcome.BranchOutput).To(HaveLen(1000 + len(tools.TruncationMarker)))
		})
	})

	Context("tool route", func() {
		It("runs the calculator and reports it in the footer", func() {
			provider := &scriptedProvider{
				decision:   `{"next_action":"use_tools","tool_needed":"calculator"}`,
				completion: "The result is 200.",
			}
			env := newEnv(provider, nil)

			outcome, err := workflow.Run(context.Background(), env, "25 * 4 + 100")
			Expect(err).NotTo(HaveOccurred())

			Expect(outcome.Route).To(Equal(workflow.RouteTool))
			Expect(outcome.Tool).To(Equal(tools.NameCalculator))
			Expect(outcome.BranchOutput).To(Equal("25 * 4 + 100 = 200"))
			Expect(outcome.Answer).To(HaveSuffix("This answer used the calculator capability."))
		})

		It("runs the date tool", func() {
			provider := &scriptedProvider{
				decision:   `{"next_action":"use_tools","tool_needed":"date_time"}`,
				completion: "It is February 29th, a leap day.",
			}
			env := newEnv(provider, nil)

			outcome, err := workflow.Run(context.Background(), env, "今天几号")
			Expect(err).NotTo(HaveOccurred())

			Expect(outcome.Tool).To(Equal(tools.NameDateTime))
			Expect(outcome.BranchOutput).To(ContainSubstring("date: 2024-02-29"))
			Expect(outcome.BranchOutput).To(ContainSubstring("leap year: yes"))
		})

		It("falls back to web search for an unknown selector", func() {
			provider := &scriptedProvider{
				decision:   `{"next_action":"use_tools","tool_needed":"shell"}`,
				completion: "done",
			}
			env := newEnv(provider, nil)

			outcome, err := workflow.Run(context.Background(), env, "run ls for me")
			Expect(err).NotTo(HaveOccurred())

			Expect(outcome.Tool).To(Equal(tools.NameWebSearch))
			Expect(outcome.BranchOutput).To(Equal(tools.UnavailableMessage))
		})
	})

	Context("synthesis failures", func() {
		It("answers with an apology instead of an error", func() {
			provider := &scriptedProvider{
				decision:     `{"next_action":"use_tools","tool_needed":"calculator"}`,
				synthesisErr: errors.New("rate limited"),
			}
			env := newEnv(provider, nil)

			outcome, err := workflow.Run(context.Background(), env, "1 + 1")
			Expect(err).NotTo(HaveOccurred())
			Expect(outcome.Answer).To(Equal("Sorry, something went wrong while generating the answer. Error: rate limited"))
		})
	})

	Context("session notes", func() {
		It("records the stage summary in the conversation history", func() {
			provider := &scriptedProvider{
				decision:   `{"analysis":"wants current info","next_action":"search_first","tool_needed":"web_search"}`,
				completion: "done",
			}
			searcher := &fakeSearcher{resp: &search.Response{Answer: "fresh"}}
			env := newEnv(provider, searcher)

			_, err := workflow.Run(context.Background(), env, "latest news")
			Expect(err).NotTo(HaveOccurred())

			transcript := env.Session.RenderTranscript()
			Expect(transcript).To(ContainSubstring("Decision: wants current info"))
			Expect(transcript).To(ContainSubstring("Search complete; retrieved current information."))
		})
	})
})
