package agent

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"scout/config"
	"scout/llm"
	"scout/search"
	"scout/store"
	"scout/streamers"
	"scout/tools"
	"scout/workflow"
)

// Agent ties the routing workflow to one conversation: a provider, a
// session history, a tool registry, and a transcript store session.
type Agent struct {
	ModelName string

	cfg          *config.Config
	provider     llm.Provider
	ownsProvider bool // true if we created the provider and should close it
	session      *llm.Session
	registry     *tools.Registry
	searcher     search.Searcher
	transcripts  store.TranscriptStore
	sessionID    string
	logger       hclog.Logger
	eventLogger  EventLogger
}

// Options for creating an agent
type Options struct {
	// ConfigPath is the path to the config file or directory (optional;
	// falls back to environment variables when absent)
	ConfigPath string
	// Config is the pre-loaded configuration (optional, avoids reloading)
	Config *config.Config
	// DebugFile enables session debug logging to the specified file (optional)
	DebugFile string
	// Logger receives structured runtime logs (optional)
	Logger hclog.Logger
	// EventLogger receives structured turn events (optional)
	EventLogger EventLogger
	// Provider overrides the config-derived reasoning backend (optional,
	// used in tests)
	Provider llm.Provider
}

// New creates a new agent from config
func New(ctx context.Context, opts Options) (*Agent, error) {
	cfg := opts.Config
	if cfg == nil {
		var err error
		cfg, err = config.LoadOrEnv(opts.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	model := cfg.ActiveModel()
	if model == nil {
		return nil, fmt.Errorf("no model configured")
	}

	provider := opts.Provider
	ownsProvider := false
	if provider == nil {
		var err error
		provider, ownsProvider, err = createProvider(ctx, model)
		if err != nil {
			return nil, fmt.Errorf("creating provider: %w", err)
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	session := llm.NewSession(llm.WithHistoryLimit(cfg.Limits.HistoryLimit))
	if opts.DebugFile != "" {
		if err := session.EnableDebug(opts.DebugFile); err != nil {
			logger.Warn("could not enable debug logging", "error", err)
		}
	}

	var searcher search.Searcher
	if key := cfg.SearchAPIKey(); key != "" {
		searcher = search.NewClient(key)
	} else {
		logger.Info("no search API key configured, web search disabled")
	}

	transcripts, err := store.New(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("opening transcript store: %w", err)
	}

	sessionID, err := transcripts.CreateSession(model.ModelID)
	if err != nil {
		transcripts.Close()
		return nil, fmt.Errorf("creating store session: %w", err)
	}

	registry := tools.NewRegistry(
		tools.NewCalculator(),
		tools.NewClock(),
		tools.NewWebSearch(searcher),
	)

	return &Agent{
		ModelName:    model.ModelID,
		cfg:          cfg,
		provider:     provider,
		ownsProvider: ownsProvider,
		session:      session,
		registry:     registry,
		searcher:     searcher,
		transcripts:  transcripts,
		sessionID:    sessionID,
		logger:       logger,
		eventLogger:  opts.EventLogger,
	}, nil
}

// Close releases resources held by the agent
func (a *Agent) Close() {
	if a.transcripts != nil {
		if err := a.transcripts.CompleteSession(a.sessionID); err != nil {
			a.logger.Warn("could not complete store session", "error", err)
		}
		a.transcripts.Close()
	}
	if a.session != nil {
		a.session.Close()
	}
	if a.ownsProvider {
		if closer, ok := a.provider.(interface{ Close() error }); ok {
			closer.Close()
		}
	}
}

// SessionID identifies this conversation in the transcript store.
func (a *Agent) SessionID() string {
	return a.sessionID
}

// Transcripts exposes the durable store for read access.
func (a *Agent) Transcripts() store.TranscriptStore {
	return a.transcripts
}

// Ask processes a single query and returns the turn outcome. The handler
// receives progress events while the turn runs. Each turn is bounded by
// the configured timeout.
func (a *Agent) Ask(ctx context.Context, input string, handler streamers.ChatHandler) (*workflow.Outcome, error) {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Limits.TurnTimeout())
	defer cancel()

	a.session.Append(llm.RoleUser, input)
	if err := a.transcripts.AppendMessage(a.sessionID, string(llm.RoleUser), input); err != nil {
		a.logger.Warn("could not persist user message", "error", err)
	}

	handler.Thinking()

	model := a.cfg.ActiveModel()
	env := &workflow.Env{
		Provider:    a.provider,
		Model:       model.ModelID,
		Temperature: model.Temperature,
		Session:     a.session,
		Tools:       a.registry,
		Searcher:    a.searcher,
		Logger:      a.logger,
		Events:      &handlerSink{handler: handler},
	}

	outcome, err := workflow.Run(ctx, env, input)
	if err != nil {
		return nil, err
	}

	a.session.Append(llm.RoleAssistant, outcome.Answer)
	if err := a.transcripts.AppendMessage(a.sessionID, string(llm.RoleAssistant), outcome.Answer); err != nil {
		a.logger.Warn("could not persist assistant message", "error", err)
	}
	if err := a.transcripts.RecordTurn(a.sessionID, input, string(outcome.Route), outcome.Tool); err != nil {
		a.logger.Warn("could not persist turn record", "error", err)
	}

	a.logEvent("turn_completed", map[string]any{
		"route":  string(outcome.Route),
		"tool":   outcome.Tool,
		"source": string(outcome.Source),
	})

	return outcome, nil
}

func (a *Agent) logEvent(eventType string, data map[string]any) {
	if a.eventLogger == nil {
		return
	}
	a.eventLogger.LogEvent(eventType, data)
}

// handlerSink forwards workflow progress to the chat handler.
type handlerSink struct {
	handler streamers.ChatHandler
}

func (s *handlerSink) Decided(route workflow.Route, tool string) {
	s.handler.Routing(string(route), tool)
}

func (s *handlerSink) Searching(query string) {
	s.handler.Searching(query)
}

func (s *handlerSink) CallingTool(name string) {
	s.handler.CallingTool(name)
}

// createProvider creates the appropriate LLM provider based on config
func createProvider(ctx context.Context, model *config.Model) (llm.Provider, bool, error) {
	switch model.Provider {
	case config.ProviderOpenAI:
		return llm.NewOpenAIProvider(model.APIKey, model.BaseURL), false, nil
	case config.ProviderAnthropic:
		return llm.NewAnthropicProvider(model.APIKey), false, nil
	case config.ProviderGemini:
		provider, err := llm.NewGeminiProvider(ctx, model.APIKey)
		if err != nil {
			return nil, false, err
		}
		return provider, true, nil // Gemini provider needs to be closed
	default:
		return nil, false, fmt.Errorf("unknown provider: %s", model.Provider)
	}
}
