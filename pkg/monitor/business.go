package monitor

import (
	"strconv"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics groups the claim pipeline counters.
type BusinessMetrics struct {
	SubmissionsCreatedTotal   *prometheus.CounterVec
	SubmissionsConfirmedTotal prometheus.Counter
	AdminLoginsTotal          *prometheus.CounterVec
	LegacyImportedTotal       prometheus.Counter
	HTTPRequestsTotal         *prometheus.CounterVec
}

var (
	Business *BusinessMetrics
	initOnce sync.Once
)

// InitBusinessMetrics registers the collectors once per process.
func InitBusinessMetrics() *BusinessMetrics {
	initOnce.Do(func() {
		Business = &BusinessMetrics{
			SubmissionsCreatedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "claim_submissions_created_total",
				Help: "The total number of accepted payment claims",
			}, []string{"method"}),
			SubmissionsConfirmedTotal: promauto.NewCounter(prometheus.CounterOpts{
				Name: "claim_submissions_confirmed_total",
				Help: "The total number of claims moved to confirmed",
			}),
			AdminLoginsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "claim_admin_logins_total",
				Help: "Admin login attempts by result",
			}, []string{"result"}),
			LegacyImportedTotal: promauto.NewCounter(prometheus.CounterOpts{
				Name: "claim_legacy_imported_total",
				Help: "Submissions imported from the legacy document store",
			}),
			HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "claim_http_requests_total",
				Help: "HTTP requests by method, route and status",
			}, []string{"method", "route", "status"}),
		}
	})
	return Business
}

func SubmissionCreated(method string) {
	if Business != nil {
		Business.SubmissionsCreatedTotal.WithLabelValues(method).Inc()
	}
}

func SubmissionConfirmed() {
	if Business != nil {
		Business.SubmissionsConfirmedTotal.Inc()
	}
}

func AdminLogin(ok bool) {
	if Business == nil {
		return
	}
	result := "failure"
	if ok {
		result = "success"
	}
	Business.AdminLoginsTotal.WithLabelValues(result).Inc()
}

func LegacyImported(n int) {
	if Business != nil && n > 0 {
		Business.LegacyImportedTotal.Add(float64(n))
	}
}

// Middleware counts requests by matched route pattern, not raw path, so
// submission ids don't blow up label cardinality.
func Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if Business == nil {
			return err
		}
		status := ctx.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		Business.HTTPRequestsTotal.WithLabelValues(
			ctx.Method(),
			ctx.Route().Path,
			strconv.Itoa(status),
		).Inc()
		return err
	}
}
