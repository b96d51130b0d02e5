package tools_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"scout/tools"
)

var _ = Describe("Calculator", func() {
	var calc *tools.Calculator

	BeforeEach(func() {
		calc = tools.NewCalculator()
	})

	Describe("Call", func() {
		It("evaluates an expression embedded in a question", func() {
			out, err := calc.Call(context.Background(), "What is 25 * 4 + 100?")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("25 * 4 + 100 = 200"))
		})

		It("evaluates an expression embedded in Chinese text", func() {
			out, err := calc.Call(context.Background(), "帮我计算 (3+5)*2")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("(3+5)*2 = 16"))
		})

		It("respects operator precedence", func() {
			out, err := calc.Call(context.Background(), "2 + 3 * 4")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("2 + 3 * 4 = 14"))
		})

		It("handles decimals", func() {
			out, err := calc.Call(context.Background(), "3.14 * 2")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("3.14 * 2 = 6.28"))
		})

		It("handles unary minus", func() {
			out, err := calc.Call(context.Background(), "-5 + 3")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("-5 + 3 = -2"))
		})

		It("handles nested parentheses", func() {
			out, err := calc.Call(context.Background(), "((1+2)*(3+4))")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("((1+2)*(3+4)) = 21"))
		})

		It("reports division by zero as an evaluation failure", func() {
			out, err := calc.Call(context.Background(), "1/0")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("error: could not evaluate the expression"))
		})

		It("reports unbalanced parentheses as an evaluation failure", func() {
			out, err := calc.Call(context.Background(), "(1+2")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("error: could not evaluate the expression"))
		})

		It("reports text without any expression", func() {
			out, err := calc.Call(context.Background(), "hello world")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("error: no valid arithmetic expression found"))
		})

		It("never returns a Go error for malformed input", func() {
			for _, input := range []string{"", "+++", ")(", "1++", "..", "1/0/0"} {
				_, err := calc.Call(context.Background(), input)
				Expect(err).NotTo(HaveOccurred())
			}
		})
	})

	Describe("ExtractExpression", func() {
		It("picks the longest digit-bearing run", func() {
			Expect(tools.ExtractExpression("a 1+1 b 22*33+44 c")).To(Equal(" 22*33+44 "))
		})

		It("returns empty when no run contains a digit", func() {
			Expect(tools.ExtractExpression("just words + more words")).To(Equal(""))
		})
	})
})
