package tools_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"scout/tools"
)

var _ = Describe("Clock", func() {
	Describe("Call", func() {
		It("reports the pinned instant field by field", func() {
			fixed := time.Date(2024, time.February, 29, 12, 30, 45, 0, time.UTC)
			clock := tools.NewClockAt(func() time.Time { return fixed })

			out, err := clock.Call(context.Background(), "what time is it")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("Date and time information:\n" +
				"  date: 2024-02-29\n" +
				"  time: 12:30:45\n" +
				"  weekday: Thursday\n" +
				"  month: February\n" +
				"  year: 2024\n" +
				"  leap year: yes"))
		})

		It("ignores the input text", func() {
			fixed := time.Date(2023, time.July, 1, 0, 0, 0, 0, time.UTC)
			clock := tools.NewClockAt(func() time.Time { return fixed })

			a, err := clock.Call(context.Background(), "今天几号")
			Expect(err).NotTo(HaveOccurred())
			b, err := clock.Call(context.Background(), "")
			Expect(err).NotTo(HaveOccurred())
			Expect(a).To(Equal(b))
			Expect(a).To(ContainSubstring("leap year: no"))
		})
	})

	Describe("IsLeapYear", func() {
		It("follows the Gregorian rule", func() {
			Expect(tools.IsLeapYear(2000)).To(BeTrue())
			Expect(tools.IsLeapYear(2024)).To(BeTrue())
			Expect(tools.IsLeapYear(1900)).To(BeFalse())
			Expect(tools.IsLeapYear(2023)).To(BeFalse())
		})
	})
})
