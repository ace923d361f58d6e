package monitor

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := InitBusinessMetrics()
	require.Same(t, m, InitBusinessMetrics())

	before := testutil.ToFloat64(m.SubmissionsCreatedTotal.WithLabelValues("wire"))
	SubmissionCreated("wire")
	assert.Equal(t, before+1, testutil.ToFloat64(m.SubmissionsCreatedTotal.WithLabelValues("wire")))

	failures := testutil.ToFloat64(m.AdminLoginsTotal.WithLabelValues("failure"))
	AdminLogin(false)
	assert.Equal(t, failures+1, testutil.ToFloat64(m.AdminLoginsTotal.WithLabelValues("failure")))

	imported := testutil.ToFloat64(m.LegacyImportedTotal)
	LegacyImported(0)
	LegacyImported(3)
	assert.Equal(t, imported+3, testutil.ToFloat64(m.LegacyImportedTotal))
}

func TestMiddlewareLabelsByRoute(t *testing.T) {
	m := InitBusinessMetrics()

	app := fiber.New()
	app.Use(Middleware())
	app.Put("/submissions/:id/status", func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusNotFound)
	})

	counter := m.HTTPRequestsTotal.WithLabelValues("PUT", "/submissions/:id/status", "404")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"a", "b"} {
		resp, err := app.Test(httptest.NewRequest("PUT", "/submissions/"+id+"/status", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	}
	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}
