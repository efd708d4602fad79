// ABOUTME: MCP server setup for the fitleast workout store.
// ABOUTME: Wraps the MCP server around a WorkoutStore and dismisses streak banners on a timer.
package mcp

import (
	"context"
	"time"

	"github.com/harperreed/fitleast/internal/store"
	"github.com/harperreed/fitleast/internal/timer"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// StreakBannerDelay is how long the streak-gained flag stays up after a completion.
const StreakBannerDelay = 3 * time.Second

// Server wraps the MCP server with store access.
type Server struct {
	mcpServer   *mcp.Server
	store       *store.WorkoutStore
	dismiss     *timer.Debouncer
	unsubscribe func()
}

// NewServer creates a new MCP server over an initialized store.
func NewServer(ws *store.WorkoutStore) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "fitleast",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		store:     ws,
		dismiss:   timer.NewDebouncer(StreakBannerDelay),
	}
	s.unsubscribe = ws.Subscribe(s.onEvent)

	s.registerTools()
	s.registerResources()

	return s, nil
}

func (s *Server) onEvent(ev store.Event) {
	if ev.Type == store.EventWorkoutCompleted {
		s.dismiss.Trigger(s.store.DismissStreakGained)
	}
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	defer s.Close()
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// Close detaches from the store and cancels any pending banner dismissal.
func (s *Server) Close() {
	s.dismiss.Stop()
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}
