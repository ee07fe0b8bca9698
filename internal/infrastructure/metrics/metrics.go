// Package metrics expone contadores Prometheus del blog: likes, visitas, imágenes
// y peticiones HTTP.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/eva-blog/blog-api/internal/application/ports"
)

var _ ports.Metrics = (*Metrics)(nil)

// Metrics colectores registrados en un registry propio.
type Metrics struct {
	registry *prometheus.Registry

	likes           prometheus.Counter
	visitas         prometheus.Counter
	photosStored    *prometheus.CounterVec
	photosDiscarded *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// New crea un registry con los colectores de la aplicación y los del runtime de Go.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		likes: f.NewCounter(prometheus.CounterOpts{
			Name: "blog_comercio_likes_total",
			Help: "Likes sumados a comercios.",
		}),
		visitas: f.NewCounter(prometheus.CounterOpts{
			Name: "blog_comercio_visitas_total",
			Help: "Visitas sumadas a comercios.",
		}),
		photosStored: f.NewCounterVec(prometheus.CounterOpts{
			Name: "blog_photos_stored_total",
			Help: "Imágenes subidas por directorio.",
		}, []string{"store"}),
		photosDiscarded: f.NewCounterVec(prometheus.CounterOpts{
			Name: "blog_photos_discarded_total",
			Help: "Imágenes anteriores borradas al reemplazarlas, por directorio.",
		}, []string{"store"}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "blog_http_requests_total",
			Help: "Peticiones HTTP por método, ruta y estado.",
		}, []string{"method", "route", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "blog_http_request_duration_seconds",
			Help:    "Duración de las peticiones HTTP.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// LikeAdded suma un like al contador de comercios.
func (m *Metrics) LikeAdded() { m.likes.Inc() }

// VisitaAdded suma una visita al contador de comercios.
func (m *Metrics) VisitaAdded() { m.visitas.Inc() }

// PhotoStored cuenta una imagen escrita en store.
func (m *Metrics) PhotoStored(store string) { m.photosStored.WithLabelValues(store).Inc() }

// PhotoDiscarded cuenta una imagen anterior borrada de store.
func (m *Metrics) PhotoDiscarded(store string) { m.photosDiscarded.WithLabelValues(store).Inc() }

// Handler sirve el registry en formato de texto Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry devuelve el registry (tests).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Middleware cuenta cada petición usando el patrón de ruta de fiber como etiqueta.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		m.httpRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}
