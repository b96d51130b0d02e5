// Package config loads scout's HCL configuration. The CLI also runs with
// no config file at all, assembling an equivalent config from the
// LLM_API_KEY / LLM_BASE_URL / LLM_MODEL_ID / TAVILY_API_KEY environment
// variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// Config holds all configuration.
type Config struct {
	Variables []Variable
	Models    []Model
	Search    *SearchConfig
	Storage   *StorageConfig
	Server    *ServerConfig
	Limits    *LimitsConfig

	// ResolvedVars holds the resolved variable values for runtime use.
	ResolvedVars map[string]cty.Value
}

// Load reads config from a file or from every .hcl file in a directory.
func Load(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return LoadDir(path)
	}
	return LoadFile(path)
}

// LoadAndValidate loads the config and validates all components.
func LoadAndValidate(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrEnv loads from path when it exists, otherwise falls back to the
// environment-only config.
func LoadOrEnv(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return LoadAndValidate(path)
		}
	}
	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv assembles a config from environment variables only.
func FromEnv() *Config {
	model := Model{
		Name:     "default",
		Provider: ProviderOpenAI,
		ModelID:  envOr("LLM_MODEL_ID", DefaultModelID),
		APIKey:   os.Getenv("LLM_API_KEY"),
		BaseURL:  envOr("LLM_BASE_URL", DefaultBaseURL),
	}

	cfg := &Config{Models: []Model{model}}
	if key := os.Getenv("TAVILY_API_KEY"); key != "" {
		cfg.Search = &SearchConfig{APIKey: key}
	}
	cfg.applyDefaults()
	return cfg
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func LoadFile(filename string) (*Config, error) {
	return loadFromFiles([]string{filename})
}

func LoadDir(dir string) (*Config, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.hcl"))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl files found in %s", dir)
	}
	return loadFromFiles(files)
}

// parsedBlocks holds all blocks extracted from a file in one pass.
type parsedBlocks struct {
	Variables []*hcl.Block
	Models    []*hcl.Block
	Search    []*hcl.Block
	Storage   []*hcl.Block
	Server    []*hcl.Block
	Limits    []*hcl.Block
}

// loadFromFiles implements staged loading: variables first, then every
// other block with the vars context in scope.
func loadFromFiles(files []string) (*Config, error) {
	parser := hclparse.NewParser()
	var allParsedBlocks []parsedBlocks

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("parse %s: %w", file, diags)
		}

		content, _, diags := hclFile.Body.PartialContent(&hcl.BodySchema{
			Blocks: []hcl.BlockHeaderSchema{
				{Type: "variable", LabelNames: []string{"name"}},
				{Type: "model", LabelNames: []string{"name"}},
				{Type: "search"},
				{Type: "storage"},
				{Type: "server"},
				{Type: "limits"},
			},
		})
		if diags.HasErrors() {
			return nil, fmt.Errorf("read blocks in %s: %w", file, diags)
		}

		var pb parsedBlocks
		for _, block := range content.Blocks {
			switch block.Type {
			case "variable":
				pb.Variables = append(pb.Variables, block)
			case "model":
				pb.Models = append(pb.Models, block)
			case "search":
				pb.Search = append(pb.Search, block)
			case "storage":
				pb.Storage = append(pb.Storage, block)
			case "server":
				pb.Server = append(pb.Server, block)
			case "limits":
				pb.Limits = append(pb.Limits, block)
			}
		}
		allParsedBlocks = append(allParsedBlocks, pb)
	}

	// Stage 1: variables (no context needed).
	var allVars []Variable
	for _, pb := range allParsedBlocks {
		for _, block := range pb.Variables {
			var v Variable
			v.Name = block.Labels[0]
			diags := gohcl.DecodeBody(block.Body, nil, &v)
			if diags.HasErrors() {
				return nil, fmt.Errorf("decode variable %s: %w", v.Name, diags)
			}
			allVars = append(allVars, v)
		}
	}

	varsCtx, resolvedVars := buildVarsContext(allVars)

	// Stage 2: everything else with vars in scope.
	cfg := &Config{Variables: allVars, ResolvedVars: resolvedVars}

	for _, pb := range allParsedBlocks {
		for _, block := range pb.Models {
			var m Model
			m.Name = block.Labels[0]
			diags := gohcl.DecodeBody(block.Body, varsCtx, &m)
			if diags.HasErrors() {
				return nil, fmt.Errorf("decode model %s: %w", m.Name, diags)
			}
			cfg.Models = append(cfg.Models, m)
		}
		if err := decodeSingle(pb.Search, varsCtx, "search", &cfg.Search); err != nil {
			return nil, err
		}
		if err := decodeSingle(pb.Storage, varsCtx, "storage", &cfg.Storage); err != nil {
			return nil, err
		}
		if err := decodeSingle(pb.Server, varsCtx, "server", &cfg.Server); err != nil {
			return nil, err
		}
		if err := decodeSingle(pb.Limits, varsCtx, "limits", &cfg.Limits); err != nil {
			return nil, err
		}
	}

	cfg.applyDefaults()
	return cfg, nil
}

// decodeSingle decodes an optional singleton block into *out.
func decodeSingle[T any](blocks []*hcl.Block, ctx *hcl.EvalContext, name string, out **T) error {
	for _, block := range blocks {
		if *out != nil {
			return fmt.Errorf("duplicate %s block", name)
		}
		v := new(T)
		diags := gohcl.DecodeBody(block.Body, ctx, v)
		if diags.HasErrors() {
			return fmt.Errorf("decode %s block: %w", name, diags)
		}
		*out = v
	}
	return nil
}

// buildVarsContext resolves variable values: an environment variable
// named after the uppercased variable name wins over the declared
// default.
func buildVarsContext(vars []Variable) (*hcl.EvalContext, map[string]cty.Value) {
	varsMap := make(map[string]cty.Value)
	for _, v := range vars {
		varsMap[v.Name] = cty.StringVal(v.Resolve())
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"vars": cty.ObjectVal(varsMap),
		},
	}, varsMap
}

func (c *Config) applyDefaults() {
	for i := range c.Models {
		c.Models[i].Defaults()
	}
	if c.Storage == nil {
		c.Storage = &StorageConfig{}
	}
	c.Storage.Defaults()
	if c.Limits == nil {
		c.Limits = &LimitsConfig{}
	}
	c.Limits.Defaults()
	if c.Server == nil {
		c.Server = &ServerConfig{}
	}
	c.Server.Defaults()
}

// Validate checks that all config components are valid.
func (c *Config) Validate() error {
	if len(c.Models) == 0 {
		return fmt.Errorf("no model configured: add a model block or set LLM_API_KEY")
	}
	for _, m := range c.Models {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("model '%s': %w", m.Name, err)
		}
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	return nil
}

// ActiveModel returns the model the agent should use; with several model
// blocks the first one wins.
func (c *Config) ActiveModel() *Model {
	if len(c.Models) == 0 {
		return nil
	}
	return &c.Models[0]
}

// SearchAPIKey returns the search credential, or "" when search is not
// configured. An absent key disables search without aborting anything.
func (c *Config) SearchAPIKey() string {
	if c.Search == nil {
		return ""
	}
	return c.Search.APIKey
}
