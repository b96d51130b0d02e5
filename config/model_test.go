package config_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"scout/config"
)

var _ = Describe("Model", func() {
	It("fills defaults for model id and temperature", func() {
		_, f := writeFixture("scout.hcl", minimalModelHCL())
		cfg, err := config.Load(f)
		Expect(err).NotTo(HaveOccurred())

		m := cfg.ActiveModel()
		Expect(m.ModelID).To(Equal(config.DefaultModelID))
		Expect(m.Temperature).To(Equal(config.DefaultTemperature))
		Expect(m.BaseURL).To(Equal(config.DefaultBaseURL))
	})

	It("does not default base_url for non-openai providers", func() {
		_, f := writeFixture("scout.hcl", `
model "claude" {
  provider = "anthropic"
  api_key  = "sk-ant"
}
`)
		cfg, err := config.Load(f)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.ActiveModel().BaseURL).To(BeEmpty())
	})

	It("rejects an unsupported provider", func() {
		_, f := writeFixture("scout.hcl", `
model "bad" {
  provider = "cohere"
  api_key  = "k"
}
`)
		cfg, err := config.Load(f)
		Expect(err).NotTo(HaveOccurred())
		err = cfg.Validate()
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("cohere"))
	})

	It("rejects an empty api key with an environment hint", func() {
		_, f := writeFixture("scout.hcl", `
model "default" {
  provider = "openai"
  api_key  = ""
}
`)
		cfg, err := config.Load(f)
		Expect(err).NotTo(HaveOccurred())
		err = cfg.Validate()
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("LLM_API_KEY"))
	})

	It("picks the first model as active when several are declared", func() {
		_, f := writeFixture("scout.hcl", minimalModelHCL()+`
model "backup" {
  provider = "anthropic"
  api_key  = "sk-ant"
}
`)
		cfg, err := config.Load(f)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Models).To(HaveLen(2))
		Expect(cfg.ActiveModel().Name).To(Equal("default"))
	})
})
