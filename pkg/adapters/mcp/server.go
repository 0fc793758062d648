package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/vista"
	"github.com/aretw0/vista/internal/logging"
	"github.com/aretw0/vista/pkg/domain"
	"github.com/aretw0/vista/pkg/session"
)

const tourURI = "vista://tour"

// SessionResult aligns with the OpenAPI session schema and provides a unified structure across adapters.
type SessionResult struct {
	State *domain.State `json:"state" jsonschema_description:"The session state, including history and overlay"`
	View  domain.View   `json:"view" jsonschema_description:"What a renderer should show for the current scene"`
}

// SessionArgs identifies a session.
type SessionArgs struct {
	SessionID string `json:"session_id"`
}

// GoToArgs are the arguments of go_to_scene.
type GoToArgs struct {
	SessionID string `json:"session_id"`
	SceneID   int    `json:"scene_id"`
}

// SelectArgs are the arguments of select_interaction.
type SelectArgs struct {
	SessionID string `json:"session_id"`
	Index     int    `json:"index"`
}

// Viewer is the host facade the MCP tools drive.
type Viewer interface {
	Start(ctx context.Context, sessionID string) (*domain.State, error)
	Back(ctx context.Context, state *domain.State) (*domain.State, error)
	GoTo(ctx context.Context, state *domain.State, id domain.SceneID) (*domain.State, error)
	SelectInteraction(ctx context.Context, state *domain.State, index int) (*domain.State, error)
	HideTextDialog(ctx context.Context, state *domain.State) *domain.State
	HideInteractionDialog(ctx context.Context, state *domain.State) *domain.State
	Render(ctx context.Context, state *domain.State) (domain.View, error)
	Inspect(ctx context.Context) (*domain.Tour, error)
}

var _ Viewer = (*vista.Viewer)(nil)

// Server wraps the Viewer and exposes it as an MCP Server.
type Server struct {
	viewer    Viewer
	sessions  *session.Manager
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(viewer Viewer, sessions *session.Manager, opts ...Option) *Server {
	s := &Server{
		viewer:    viewer,
		sessions:  sessions,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("vista-mcp", strings.TrimSpace(vista.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves MCP over SSE on addr until ctx is done.
// baseURL is the public address clients use to reach the message endpoint.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	if baseURL == "" {
		baseURL = "http://localhost" + addr
	}
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr, "base_url", baseURL)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func sessionParam() mcp.ToolOption {
	return mcp.WithString("session_id", mcp.Required(), mcp.Description("Session returned by start_tour"))
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("start_tour",
		mcp.WithDescription("Start a viewer session on the entry scene of the tour."),
		mcp.WithString("session_id", mcp.Description("Session ID to use (optional, generated when omitted)")),
		mcp.WithOutputSchema[SessionResult](),
	), mcp.NewStructuredToolHandler(s.handleStart))

	s.mcpServer.AddTool(mcp.NewTool("render_view",
		mcp.WithDescription("Render the current view of a session without changing it."),
		sessionParam(),
		mcp.WithOutputSchema[SessionResult](),
	), mcp.NewStructuredToolHandler(s.handleRender))

	s.mcpServer.AddTool(mcp.NewTool("go_back",
		mcp.WithDescription("Return to the previously visited scene. Does nothing when the history is empty."),
		sessionParam(),
		mcp.WithOutputSchema[SessionResult](),
	), mcp.NewStructuredToolHandler(s.handleBack))

	s.mcpServer.AddTool(mcp.NewTool("go_to_scene",
		mcp.WithDescription("Move to a scene of the tour. Unknown scenes are ignored."),
		sessionParam(),
		mcp.WithNumber("scene_id", mcp.Required(), mcp.Description("Target scene ID")),
		mcp.WithOutputSchema[SessionResult](),
	), mcp.NewStructuredToolHandler(s.handleGoTo))

	s.mcpServer.AddTool(mcp.NewTool("select_interaction",
		mcp.WithDescription("Activate a hotspot of the current scene: go-to-scene hotspots navigate, content hotspots open a dialog."),
		sessionParam(),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("Zero-based hotspot index, as listed in view.interactions")),
		mcp.WithOutputSchema[SessionResult](),
	), mcp.NewStructuredToolHandler(s.handleSelect))

	s.mcpServer.AddTool(mcp.NewTool("close_dialog",
		mcp.WithDescription("Close the open text or interaction dialog."),
		sessionParam(),
		mcp.WithOutputSchema[SessionResult](),
	), mcp.NewStructuredToolHandler(s.handleCloseDialog))
}

func (s *Server) handleStart(ctx context.Context, request mcp.CallToolRequest, args SessionArgs) (SessionResult, error) {
	id := args.SessionID
	if id == "" {
		id = uuid.NewString()
	}

	state, err := s.viewer.Start(ctx, id)
	if err != nil {
		return SessionResult{}, fmt.Errorf("start failed: %w", err)
	}
	if err := s.sessions.Save(ctx, id, state); err != nil {
		return SessionResult{}, fmt.Errorf("failed to save session: %w", err)
	}
	logging.WithSession(s.logger, id).Info("session started", "scene", state.CurrentScene)
	return s.result(ctx, state)
}

func (s *Server) handleRender(ctx context.Context, request mcp.CallToolRequest, args SessionArgs) (SessionResult, error) {
	if args.SessionID == "" {
		return SessionResult{}, errors.New("session_id is required")
	}
	state, err := s.sessions.Load(ctx, args.SessionID)
	if err != nil {
		return SessionResult{}, fmt.Errorf("render failed: %w", err)
	}
	return s.result(ctx, state)
}

func (s *Server) handleBack(ctx context.Context, request mcp.CallToolRequest, args SessionArgs) (SessionResult, error) {
	return s.update(ctx, args.SessionID, func(state *domain.State) (*domain.State, error) {
		return s.viewer.Back(ctx, state)
	})
}

func (s *Server) handleGoTo(ctx context.Context, request mcp.CallToolRequest, args GoToArgs) (SessionResult, error) {
	return s.update(ctx, args.SessionID, func(state *domain.State) (*domain.State, error) {
		return s.viewer.GoTo(ctx, state, domain.SceneID(args.SceneID))
	})
}

func (s *Server) handleSelect(ctx context.Context, request mcp.CallToolRequest, args SelectArgs) (SessionResult, error) {
	return s.update(ctx, args.SessionID, func(state *domain.State) (*domain.State, error) {
		return s.viewer.SelectInteraction(ctx, state, args.Index)
	})
}

func (s *Server) handleCloseDialog(ctx context.Context, request mcp.CallToolRequest, args SessionArgs) (SessionResult, error) {
	return s.update(ctx, args.SessionID, func(state *domain.State) (*domain.State, error) {
		switch state.Overlay.Kind {
		case domain.OverlayTextDialog:
			return s.viewer.HideTextDialog(ctx, state), nil
		case domain.OverlayInteractionDialog:
			return s.viewer.HideInteractionDialog(ctx, state), nil
		}
		return state, nil
	})
}

// update applies fn to a started session and persists the result.
func (s *Server) update(ctx context.Context, sessionID string, fn func(*domain.State) (*domain.State, error)) (SessionResult, error) {
	if sessionID == "" {
		return SessionResult{}, errors.New("session_id is required")
	}
	next, err := s.sessions.Update(ctx, sessionID, func(state *domain.State) (*domain.State, error) {
		if !state.Viewing() {
			return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
		}
		return fn(state)
	})
	if err != nil {
		return SessionResult{}, err
	}
	return s.result(ctx, next)
}

func (s *Server) result(ctx context.Context, state *domain.State) (SessionResult, error) {
	view, err := s.viewer.Render(ctx, state)
	if err != nil {
		return SessionResult{}, fmt.Errorf("render failed: %w", err)
	}
	return SessionResult{State: state, View: view}, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(tourURI, "Tour Definition",
		mcp.WithResourceDescription("The scene registry with every scene and its hotspots"),
		mcp.WithMIMEType("application/json"),
	), s.readTour)
}

func (s *Server) readTour(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	tour, err := s.viewer.Inspect(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect tour: %w", err)
	}
	jsonBytes, err := json.Marshal(tour)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      tourURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
