package agent_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"scout/agent"
	"scout/streamers"
	"scout/workflow"
)

var _ = Describe("Agent", func() {
	It("runs a turn and persists the transcript", func() {
		provider := &cannedProvider{
			decision:   `{"next_action":"answer_directly","tool_needed":"none"}`,
			completion: "Go is a programming language.",
		}

		a, err := agent.New(context.Background(), agent.Options{
			Config:   testConfig(),
			Provider: provider,
		})
		Expect(err).NotTo(HaveOccurred())
		defer a.Close()

		outcome, err := a.Ask(context.Background(), "What is Go?", streamers.Noop{})
		Expect(err).NotTo(HaveOccurred())
		Expect(outcome.Answer).To(Equal("Go is a programming language."))
		Expect(outcome.Route).To(Equal(workflow.RouteDirect))

		msgs, err := a.Transcripts().GetMessages(a.SessionID())
		Expect(err).NotTo(HaveOccurred())
		Expect(msgs[0].Role).To(Equal("user"))
		Expect(msgs[0].Content).To(Equal("What is Go?"))
		last := msgs[len(msgs)-1]
		Expect(last.Role).To(Equal("assistant"))
		Expect(last.Content).To(Equal("Go is a programming language."))

		turns, err := a.Transcripts().GetTurns(a.SessionID())
		Expect(err).NotTo(HaveOccurred())
		Expect(turns).To(HaveLen(1))
		Expect(turns[0].Query).To(Equal("What is Go?"))
		Expect(turns[0].Route).To(Equal("direct"))
	})

	It("keeps history across turns", func() {
		provider := &cannedProvider{
			decision:   `{"next_action":"answer_directly","tool_needed":"none"}`,
			completion: "answer",
		}

		a, err := agent.New(context.Background(), agent.Options{
			Config:   testConfig(),
			Provider: provider,
		})
		Expect(err).NotTo(HaveOccurred())
		defer a.Close()

		_, err = a.Ask(context.Background(), "first question", streamers.Noop{})
		Expect(err).NotTo(HaveOccurred())
		_, err = a.Ask(context.Background(), "second question", streamers.Noop{})
		Expect(err).NotTo(HaveOccurred())

		turns, err := a.Transcripts().GetTurns(a.SessionID())
		Expect(err).NotTo(HaveOccurred())
		Expect(turns).To(HaveLen(2))
	})

	It("routes tool turns without touching the network", func() {
		provider := &cannedProvider{
			decision:   `{"next_action":"use_tools","tool_needed":"calculator"}`,
			completion: "The result is 4.",
		}

		a, err := agent.New(context.Background(), agent.Options{
			Config:   testConfig(),
			Provider: provider,
		})
		Expect(err).NotTo(HaveOccurred())
		defer a.Close()

		outcome, err := a.Ask(context.Background(), "2 + 2", streamers.Noop{})
		Expect(err).NotTo(HaveOccurred())
		Expect(outcome.Tool).To(Equal("calculator"))
		Expect(outcome.BranchOutput).To(Equal("2 + 2 = 4"))

		turns, err := a.Transcripts().GetTurns(a.SessionID())
		Expect(err).NotTo(HaveOccurred())
		Expect(turns[0].Route).To(Equal("tool"))
		Expect(turns[0].Tool).To(Equal("calculator"))
	})
})
