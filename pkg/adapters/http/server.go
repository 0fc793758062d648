package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/aretw0/vista"
	"github.com/aretw0/vista/internal/logging"
	"github.com/aretw0/vista/pkg/domain"
	"github.com/aretw0/vista/pkg/session"
)

// Viewer is the host facade the API drives.
type Viewer interface {
	Start(ctx context.Context, sessionID string) (*domain.State, error)
	Back(ctx context.Context, state *domain.State) (*domain.State, error)
	GoTo(ctx context.Context, state *domain.State, id domain.SceneID) (*domain.State, error)
	SelectInteraction(ctx context.Context, state *domain.State, index int) (*domain.State, error)
	ShowDescription(ctx context.Context, state *domain.State) *domain.State
	HideDescription(ctx context.Context, state *domain.State) *domain.State
	ShowTextDialog(ctx context.Context, state *domain.State, text string) *domain.State
	HideTextDialog(ctx context.Context, state *domain.State) *domain.State
	HideInteractionDialog(ctx context.Context, state *domain.State) *domain.State
	Render(ctx context.Context, state *domain.State) (domain.View, error)
	Inspect(ctx context.Context) (*domain.Tour, error)
	Watch(ctx context.Context) (<-chan string, error)
}

var _ Viewer = (*vista.Viewer)(nil)

// SessionResponse is returned by every session endpoint.
type SessionResponse struct {
	State *domain.State `json:"state"`
	View  domain.View   `json:"view"`
}

// TextDialogRequest is the body of POST /sessions/{id}/dialogs/text.
type TextDialogRequest struct {
	Text string `json:"text"`
}

// DescriptionRequest is the body of POST /sessions/{id}/description.
type DescriptionRequest struct {
	Visible bool `json:"visible"`
}

// errNotStarted marks a session that exists but never entered a scene.
var errNotStarted = errors.New("session not started")

// Server implements ServerInterface on top of a Viewer and a session manager.
type Server struct {
	Viewer   Viewer
	Sessions *session.Manager
	Streams  *StreamManager
	Logger   *slog.Logger
}

// Ensure Server implements ServerInterface
var _ ServerInterface = (*Server)(nil)

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.Logger = logger
		}
	}
}

// NewServer creates the API server.
func NewServer(viewer Viewer, sessions *session.Manager, opts ...Option) *Server {
	s := &Server{
		Viewer:   viewer,
		Sessions: sessions,
		Logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(s.Logger)
	return s
}

// NewHandler creates a new HTTP handler for the viewer.
func NewHandler(viewer Viewer, sessions *session.Manager, opts ...Option) http.Handler {
	server := NewServer(viewer, sessions, opts...)
	r := chi.NewRouter()

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})

	handler := HandlerFromMux(server, r)
	return enableCORS(handler)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Vista API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Logger, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if doc, err := GetSwagger(); err == nil && doc.Info != nil {
		apiVersion = doc.Info.Version
	}
	writeJSON(w, s.Logger, http.StatusOK, map[string]string{
		"app":         "vista-http",
		"version":     strings.TrimSpace(vista.Version),
		"api_version": apiVersion,
	})
}

// GetTour handles the GET /tour request.
func (s *Server) GetTour(w http.ResponseWriter, r *http.Request) {
	tour, err := s.Viewer.Inspect(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Inspect error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("Inspect failed", "err", err)
		return
	}
	writeJSON(w, s.Logger, http.StatusOK, tour)
}

// ListSessions handles the GET /sessions request.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("List error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("List sessions failed", "err", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, s.Logger, http.StatusOK, ids)
}

// StartSession handles the POST /sessions request.
func (s *Server) StartSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := uuid.NewString()

	state, err := s.Viewer.Start(ctx, id)
	if err != nil {
		s.fail(w, id, "Start", err)
		return
	}
	if err := s.Sessions.Save(ctx, id, state); err != nil {
		s.fail(w, id, "Start", err)
		return
	}
	logging.WithSession(s.Logger, id).Info("session started", "scene", state.CurrentScene)
	s.respond(w, ctx, http.StatusCreated, state)
}

// GetSession handles the GET /sessions/{sessionId} request.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request, sessionID string) {
	state, err := s.Sessions.Load(r.Context(), sessionID)
	if err != nil {
		s.fail(w, sessionID, "Load", err)
		return
	}
	s.respond(w, r.Context(), http.StatusOK, state)
}

// DeleteSession handles the DELETE /sessions/{sessionId} request.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request, sessionID string) {
	if err := s.Sessions.Delete(r.Context(), sessionID); err != nil {
		s.fail(w, sessionID, "Delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GoBack handles the POST /sessions/{sessionId}/back request.
func (s *Server) GoBack(w http.ResponseWriter, r *http.Request, sessionID string) {
	s.update(w, r, sessionID, "Back", func(ctx context.Context, state *domain.State) (*domain.State, error) {
		return s.Viewer.Back(ctx, state)
	})
}

// GoToScene handles the POST /sessions/{sessionId}/goto/{sceneId} request.
func (s *Server) GoToScene(w http.ResponseWriter, r *http.Request, sessionID string, sceneID int) {
	s.update(w, r, sessionID, "GoTo", func(ctx context.Context, state *domain.State) (*domain.State, error) {
		return s.Viewer.GoTo(ctx, state, domain.SceneID(sceneID))
	})
}

// SelectInteraction handles the POST /sessions/{sessionId}/interactions/{index} request.
func (s *Server) SelectInteraction(w http.ResponseWriter, r *http.Request, sessionID string, index int) {
	s.update(w, r, sessionID, "SelectInteraction", func(ctx context.Context, state *domain.State) (*domain.State, error) {
		return s.Viewer.SelectInteraction(ctx, state, index)
	})
}

// ShowTextDialog handles the POST /sessions/{sessionId}/dialogs/text request.
func (s *Server) ShowTextDialog(w http.ResponseWriter, r *http.Request, sessionID string) {
	var body TextDialogRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("ShowTextDialog: Invalid request body", "err", err)
		return
	}
	s.update(w, r, sessionID, "ShowTextDialog", func(ctx context.Context, state *domain.State) (*domain.State, error) {
		return s.Viewer.ShowTextDialog(ctx, state, body.Text), nil
	})
}

// HideTextDialog handles the DELETE /sessions/{sessionId}/dialogs/text request.
func (s *Server) HideTextDialog(w http.ResponseWriter, r *http.Request, sessionID string) {
	s.update(w, r, sessionID, "HideTextDialog", func(ctx context.Context, state *domain.State) (*domain.State, error) {
		return s.Viewer.HideTextDialog(ctx, state), nil
	})
}

// HideInteractionDialog handles the DELETE /sessions/{sessionId}/dialogs/interaction request.
func (s *Server) HideInteractionDialog(w http.ResponseWriter, r *http.Request, sessionID string) {
	s.update(w, r, sessionID, "HideInteractionDialog", func(ctx context.Context, state *domain.State) (*domain.State, error) {
		return s.Viewer.HideInteractionDialog(ctx, state), nil
	})
}

// SetDescription handles the POST /sessions/{sessionId}/description request.
func (s *Server) SetDescription(w http.ResponseWriter, r *http.Request, sessionID string) {
	var body DescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("SetDescription: Invalid request body", "err", err)
		return
	}
	s.update(w, r, sessionID, "SetDescription", func(ctx context.Context, state *domain.State) (*domain.State, error) {
		if body.Visible {
			return s.Viewer.ShowDescription(ctx, state), nil
		}
		return s.Viewer.HideDescription(ctx, state), nil
	})
}

// update runs op on a started session under its lock, persists the result
// and broadcasts it to the session's subscribers.
func (s *Server) update(w http.ResponseWriter, r *http.Request, sessionID, op string, fn func(context.Context, *domain.State) (*domain.State, error)) {
	ctx := r.Context()
	next, err := s.Sessions.Update(ctx, sessionID, func(state *domain.State) (*domain.State, error) {
		if !state.Viewing() {
			return nil, errNotStarted
		}
		return fn(ctx, state)
	})
	if err != nil {
		s.fail(w, sessionID, op, err)
		return
	}

	if payload, err := json.Marshal(next); err == nil {
		s.Streams.Broadcast(sessionID, string(payload))
	}
	s.respond(w, ctx, http.StatusOK, next)
}

func (s *Server) respond(w http.ResponseWriter, ctx context.Context, status int, state *domain.State) {
	view, err := s.Viewer.Render(ctx, state)
	if err != nil {
		s.fail(w, state.SessionID, "Render", err)
		return
	}
	writeJSON(w, s.Logger, status, SessionResponse{State: state, View: view})
}

func (s *Server) fail(w http.ResponseWriter, sessionID, op string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, errNotStarted):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrEmptyTour):
		status = http.StatusConflict
	}

	log := logging.WithSession(s.Logger, sessionID)
	if status == http.StatusInternalServerError {
		log.Error(op+" failed", "err", err)
	} else {
		log.Debug(op+" rejected", "err", err)
	}
	http.Error(w, fmt.Sprintf("%s error: %v", op, err), status)
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "err", err)
	}
}
