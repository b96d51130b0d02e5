package tools_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"scout/tools"
)

var _ = Describe("Registry", func() {
	It("holds exactly the registered tools", func() {
		reg := tools.NewRegistry(
			tools.NewCalculator(),
			tools.NewClock(),
			tools.NewWebSearch(nil),
		)

		Expect(reg.Names()).To(Equal([]string{
			tools.NameCalculator,
			tools.NameDateTime,
			tools.NameWebSearch,
		}))
		Expect(reg.Has(tools.NameCalculator)).To(BeTrue())
		Expect(reg.Has("file_io")).To(BeFalse())
	})

	It("errors on an unknown tool name", func() {
		reg := tools.NewRegistry(tools.NewCalculator())
		_, err := reg.Get("shell")
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("shell"))
	})

	It("returns registered tools by name", func() {
		reg := tools.NewRegistry(tools.NewClock())
		tool, err := reg.Get(tools.NameDateTime)
		Expect(err).NotTo(HaveOccurred())
		Expect(tool.ToolName()).To(Equal(tools.NameDateTime))
	})
})

var _ = Describe("Truncate", func() {
	It("leaves short output untouched", func() {
		Expect(tools.Truncate("short", 1000)).To(Equal("short"))
	})

	It("leaves output exactly at the limit untouched", func() {
		s := strings.Repeat("x", 800)
		Expect(tools.Truncate(s, 800)).To(Equal(s))
	})

	It("cuts at the limit and appends the marker", func() {
		s := strings.Repeat("x", 1001)
		out := tools.Truncate(s, 1000)
		Expect(out).To(Equal(strings.Repeat("x", 1000) + tools.TruncationMarker))
	})

	It("counts runes, not bytes", func() {
		s := strings.Repeat("搜", 1001)
		out := tools.Truncate(s, 1000)
		Expect(out).To(Equal(strings.Repeat("搜", 1000) + tools.TruncationMarker))
	})
})
