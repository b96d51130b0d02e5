package wsbridge

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-hclog"

	"scout/agent"
	"scout/config"
	"scout/streamers"
)

const writeWait = 10 * time.Second

// Server exposes the agent over a WebSocket endpoint at /ws. Each
// connection gets its own agent and conversation history.
type Server struct {
	cfg      *config.Config
	logger   hclog.Logger
	upgrader websocket.Upgrader
	httpSrv  *http.Server
}

func NewServer(cfg *config.Config, logger hclog.Logger) *Server {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	s := &Server{
		cfg:    cfg,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	s.httpSrv = &http.Server{Addr: cfg.Server.Addr, Handler: mux}
	return s
}

// Handler exposes the HTTP handler for embedding in another server.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpSrv.ListenAndServe()
	}()

	s.logger.Info("listening", "addr", s.cfg.Server.Addr)

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpSrv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	defer ws.Close()

	ag, err := agent.New(r.Context(), agent.Options{
		Config:      s.cfg,
		Logger:      s.logger,
		EventLogger: agent.NewHclogEventLogger(s.logger),
	})
	if err != nil {
		s.logger.Error("agent init failed", "error", err)
		writeEnvelope(ws, &Envelope{Type: TypeError, Content: err.Error()})
		return
	}
	defer ag.Close()

	s.logger.Info("client connected", "remote", r.RemoteAddr, "session", ag.SessionID())

	handler := &wsHandler{ws: ws, logger: s.logger}
	handler.send(&Envelope{Type: TypeWelcome, Model: ag.ModelName, Session: ag.SessionID()})

	// One turn at a time per connection; reads and writes stay on this
	// goroutine, which is what gorilla/websocket requires.
	for {
		var env Envelope
		if err := ws.ReadJSON(&env); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("read failed", "error", err)
			}
			return
		}

		if env.Type != TypeAsk || env.Content == "" {
			handler.send(&Envelope{Type: TypeError, Content: "expected an 'ask' message with content"})
			continue
		}

		outcome, err := ag.Ask(r.Context(), env.Content, handler)
		if err != nil {
			handler.send(&Envelope{Type: TypeError, Content: err.Error()})
			continue
		}

		handler.send(&Envelope{
			Type:    TypeAnswer,
			Content: outcome.Answer,
			Route:   string(outcome.Route),
			Tool:    outcome.Tool,
		})
	}
}

func writeEnvelope(ws *websocket.Conn, env *Envelope) error {
	ws.SetWriteDeadline(time.Now().Add(writeWait))
	return ws.WriteJSON(env)
}

// wsHandler adapts the chat handler interface to stage envelopes on the
// socket. The answer itself is sent by the connection loop, which also
// has the route metadata.
type wsHandler struct {
	ws     *websocket.Conn
	logger hclog.Logger
}

var _ streamers.ChatHandler = (*wsHandler)(nil)

func (h *wsHandler) send(env *Envelope) {
	if err := writeEnvelope(h.ws, env); err != nil {
		h.logger.Warn("write failed", "error", err)
	}
}

func (h *wsHandler) Welcome(string) {}

func (h *wsHandler) AwaitClientAnswer() (string, error) { return "", nil }

func (h *wsHandler) Goodbye() {}

func (h *wsHandler) Error(err error) {
	h.send(&Envelope{Type: TypeError, Content: err.Error()})
}

func (h *wsHandler) Thinking() {
	h.send(&Envelope{Type: TypeStage, Stage: StageThinking})
}

func (h *wsHandler) Routing(route string, tool string) {
	h.send(&Envelope{Type: TypeStage, Stage: StageRouting, Route: route, Tool: tool})
}

func (h *wsHandler) Searching(query string) {
	h.send(&Envelope{Type: TypeStage, Stage: StageSearching, Content: query})
}

func (h *wsHandler) CallingTool(name string) {
	h.send(&Envelope{Type: TypeStage, Stage: StageCallingTool, Content: name})
}

func (h *wsHandler) Answer(string) {}
