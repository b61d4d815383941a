package hostlink

import (
	"context"
	"errors"
	"log"
	nethttp "net/http"
	"time"

	"github.com/1000nettles/heywait/common"
	"github.com/1000nettles/heywait/game"
)

type Config struct {
	Logger *log.Logger
	// TickInterval defaults to one engine tick at common.TPS.
	TickInterval time.Duration
}

// Server steps the engine on a fixed tick and broadcasts its events.
type Server struct {
	engine  *game.Engine
	hub     *Hub
	handler *Handler
	logger  *log.Logger
	tick    time.Duration
}

func NewServer(engine *game.Engine, cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	tick := cfg.TickInterval
	if tick <= 0 {
		tick = time.Second / common.TPS
	}

	hub := NewHub()
	return &Server{
		engine:  engine,
		hub:     hub,
		handler: NewHandler(engine, hub, HandlerConfig{Logger: logger}),
		logger:  logger,
		tick:    tick,
	}
}

func (s *Server) Hub() *Hub { return s.hub }

func (s *Server) Handler() *Handler { return s.handler }

// Mux routes /ws to the websocket handler.
func (s *Server) Mux() *nethttp.ServeMux {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/ws", s.handler.Handle)
	return mux
}

// Run ticks the engine until ctx is done.
func (s *Server) Run(ctx context.Context) {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Step()
		}
	}
}

// Step advances the engine once and broadcasts what happened.
func (s *Server) Step() {
	for _, evt := range s.engine.Step() {
		s.hub.broadcast(newEventMessage(evt))
	}
}

// ListenAndServe serves the websocket endpoint on addr and ticks the engine
// until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &nethttp.Server{Addr: addr, Handler: s.Mux()}

	go s.Run(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), writeWait)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Printf("hostlink: shutdown: %v", err)
		}
	}()

	s.logger.Printf("hostlink: listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		return err
	}
	return nil
}
