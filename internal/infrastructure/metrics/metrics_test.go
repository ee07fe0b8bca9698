package metrics_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eva-blog/blog-api/internal/infrastructure/metrics"
)

func TestMetrics_Contadores(t *testing.T) {
	m := metrics.New()
	m.LikeAdded()
	m.LikeAdded()
	m.VisitaAdded()
	m.PhotoStored("comercios")
	m.PhotoDiscarded("admin")

	n, err := testutil.GatherAndCount(m.Registry(),
		"blog_comercio_likes_total", "blog_comercio_visitas_total",
		"blog_photos_stored_total", "blog_photos_discarded_total")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestMetrics_MiddlewareCuentaPeticiones(t *testing.T) {
	m := metrics.New()
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/api/comercios/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNotFound) })

	resp, err := app.Test(httptest.NewRequest("GET", "/api/comercios/7", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	n, err := testutil.GatherAndCount(m.Registry(), "blog_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
