package http

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

//go:embed openapi.yaml
var rawSpec []byte

var (
	swaggerOnce sync.Once
	swagger     *openapi3.T
	swaggerErr  error
)

// GetSwagger loads and validates the embedded OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	swaggerOnce.Do(func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromData(rawSpec)
		if err != nil {
			swaggerErr = fmt.Errorf("error loading openapi document: %w", err)
			return
		}
		if err := doc.Validate(context.Background()); err != nil {
			swaggerErr = fmt.Errorf("invalid openapi document: %w", err)
			return
		}
		swagger = doc
	})
	return swagger, swaggerErr
}

// SubscribeEventsParams defines parameters for SubscribeEvents.
type SubscribeEventsParams struct {
	SessionID *string `form:"session_id,omitempty" json:"session_id,omitempty"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /health)
	GetHealth(w http.ResponseWriter, r *http.Request)
	// (GET /info)
	GetInfo(w http.ResponseWriter, r *http.Request)
	// (GET /tour)
	GetTour(w http.ResponseWriter, r *http.Request)
	// (GET /events)
	SubscribeEvents(w http.ResponseWriter, r *http.Request, params SubscribeEventsParams)
	// (GET /sessions)
	ListSessions(w http.ResponseWriter, r *http.Request)
	// (POST /sessions)
	StartSession(w http.ResponseWriter, r *http.Request)
	// (GET /sessions/{sessionId})
	GetSession(w http.ResponseWriter, r *http.Request, sessionID string)
	// (DELETE /sessions/{sessionId})
	DeleteSession(w http.ResponseWriter, r *http.Request, sessionID string)
	// (POST /sessions/{sessionId}/back)
	GoBack(w http.ResponseWriter, r *http.Request, sessionID string)
	// (POST /sessions/{sessionId}/goto/{sceneId})
	GoToScene(w http.ResponseWriter, r *http.Request, sessionID string, sceneID int)
	// (POST /sessions/{sessionId}/interactions/{index})
	SelectInteraction(w http.ResponseWriter, r *http.Request, sessionID string, index int)
	// (POST /sessions/{sessionId}/dialogs/text)
	ShowTextDialog(w http.ResponseWriter, r *http.Request, sessionID string)
	// (DELETE /sessions/{sessionId}/dialogs/text)
	HideTextDialog(w http.ResponseWriter, r *http.Request, sessionID string)
	// (DELETE /sessions/{sessionId}/dialogs/interaction)
	HideInteractionDialog(w http.ResponseWriter, r *http.Request, sessionID string)
	// (POST /sessions/{sessionId}/description)
	SetDescription(w http.ResponseWriter, r *http.Request, sessionID string)
}

// serverWrapper binds path and query parameters before calling the handlers.
type serverWrapper struct {
	handler ServerInterface
}

func pathParam(r *http.Request, name string, dest any) error {
	return runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
}

func badParam(w http.ResponseWriter, name string, err error) {
	http.Error(w, fmt.Sprintf("Invalid format for parameter %s: %v", name, err), http.StatusBadRequest)
}

func (sw *serverWrapper) withSession(fn func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var sessionID string
		if err := pathParam(r, "sessionId", &sessionID); err != nil {
			badParam(w, "sessionId", err)
			return
		}
		fn(w, r, sessionID)
	}
}

func (sw *serverWrapper) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	var params SubscribeEventsParams
	if err := runtime.BindQueryParameter("form", true, false, "session_id", r.URL.Query(), &params.SessionID); err != nil {
		badParam(w, "session_id", err)
		return
	}
	sw.handler.SubscribeEvents(w, r, params)
}

func (sw *serverWrapper) GoToScene(w http.ResponseWriter, r *http.Request) {
	var sessionID string
	if err := pathParam(r, "sessionId", &sessionID); err != nil {
		badParam(w, "sessionId", err)
		return
	}
	var sceneID int
	if err := pathParam(r, "sceneId", &sceneID); err != nil {
		badParam(w, "sceneId", err)
		return
	}
	sw.handler.GoToScene(w, r, sessionID, sceneID)
}

func (sw *serverWrapper) SelectInteraction(w http.ResponseWriter, r *http.Request) {
	var sessionID string
	if err := pathParam(r, "sessionId", &sessionID); err != nil {
		badParam(w, "sessionId", err)
		return
	}
	var index int
	if err := pathParam(r, "index", &index); err != nil {
		badParam(w, "index", err)
		return
	}
	sw.handler.SelectInteraction(w, r, sessionID, index)
}

// HandlerFromMux registers the API routes of si on r.
func HandlerFromMux(si ServerInterface, r chi.Router) http.Handler {
	sw := &serverWrapper{handler: si}

	r.Get("/health", si.GetHealth)
	r.Get("/info", si.GetInfo)
	r.Get("/tour", si.GetTour)
	r.Get("/events", sw.SubscribeEvents)

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", si.ListSessions)
		r.Post("/", si.StartSession)

		r.Route("/{sessionId}", func(r chi.Router) {
			r.Get("/", sw.withSession(si.GetSession))
			r.Delete("/", sw.withSession(si.DeleteSession))
			r.Post("/back", sw.withSession(si.GoBack))
			r.Post("/goto/{sceneId}", sw.GoToScene)
			r.Post("/interactions/{index}", sw.SelectInteraction)
			r.Post("/dialogs/text", sw.withSession(si.ShowTextDialog))
			r.Delete("/dialogs/text", sw.withSession(si.HideTextDialog))
			r.Delete("/dialogs/interaction", sw.withSession(si.HideInteractionDialog))
			r.Post("/description", sw.withSession(si.SetDescription))
		})
	})
	return r
}
