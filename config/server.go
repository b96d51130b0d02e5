package config

// ServerConfig configures the websocket chat surface.
type ServerConfig struct {
	Addr string `hcl:"addr,optional"`
}

func (s *ServerConfig) Defaults() {
	if s.Addr == "" {
		s.Addr = ":8765"
	}
}
