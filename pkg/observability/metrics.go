package observability

import (
	"context"
	"net/http"
	"strconv"

	"github.com/aretw0/vista/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the viewer counters.
type Metrics struct {
	registry *prometheus.Registry

	SceneVisits     *prometheus.CounterVec
	BackNavigations prometheus.Counter
	HistoryPruned   prometheus.Counter
	OverlayChanges  *prometheus.CounterVec
	Interactions    *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		SceneVisits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vista_scene_visits_total",
				Help: "Total number of scene entries",
			},
			[]string{"scene_id"},
		),
		BackNavigations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vista_back_navigations_total",
			Help: "Scene entries caused by going back",
		}),
		HistoryPruned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vista_history_pruned_total",
			Help: "History entries dropped because their scene left the tour",
		}),
		OverlayChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vista_overlay_changes_total",
				Help: "Dialog slot changes by resulting overlay",
			},
			[]string{"overlay"},
		),
		Interactions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vista_interactions_total",
				Help: "Routed interactions by kind and decision",
			},
			[]string{"kind", "decision"},
		),
	}
	m.registry.MustRegister(m.SceneVisits, m.BackNavigations, m.HistoryPruned, m.OverlayChanges, m.Interactions)
	return m
}

// Registry exposes the registry, e.g. to add Go runtime collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSceneEnter: func(ctx context.Context, e *domain.SceneEvent) {
			m.SceneVisits.WithLabelValues(strconv.Itoa(int(e.SceneID))).Inc()
			if e.Back {
				m.BackNavigations.Inc()
			}
		},
		OnHistoryPruned: func(ctx context.Context, e *domain.HistoryEvent) {
			m.HistoryPruned.Add(float64(e.Removed))
		},
		OnOverlayChange: func(ctx context.Context, e *domain.OverlayEvent) {
			m.OverlayChanges.WithLabelValues(string(e.Kind)).Inc()
		},
		OnInteraction: func(ctx context.Context, e *domain.InteractionEvent) {
			m.Interactions.WithLabelValues(string(e.Kind), e.Decision).Inc()
		},
	}
}
