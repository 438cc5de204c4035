package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/DanielPopoola/devmarket-ledger/internal/api"
	"github.com/DanielPopoola/devmarket-ledger/internal/interfaces/rest/middleware"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

const webhookPath = "/api/v1/webhooks/gateway"

type RouterConfig struct {
	Doc            *openapi3.T
	RequestTimeout time.Duration
	RateLimiter    *middleware.RateLimiter
	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	TrustProxy bool
}

// NewRouter registers every route and the middleware stack.
func NewRouter(h *Handlers, cfg RouterConfig, logger *slog.Logger) (http.Handler, error) {
	if err := api.RegisterDocs(cfg.Doc); err != nil {
		return nil, err
	}
	validate, err := middleware.OpenAPIValidator(cfg.Doc, logger, webhookPath)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	if cfg.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS)

	r.Get("/healthz", h.Healthz)
	r.Get("/readyz", h.Readyz)
	r.Get("/docs/openapi.json", api.DocsHandler)

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.Middleware)
		}
		if cfg.RequestTimeout > 0 {
			r.Use(middleware.Timeout(cfg.RequestTimeout))
		}
		r.Use(validate)

		r.Post("/payments/verify", h.VerifyPayment)
		r.Post("/webhooks/gateway", h.GatewayWebhook)
		r.Post("/refunds", h.InitiateRefund)
		r.Post("/reviews", h.SubmitReview)
		r.Post("/reviews/notify", h.NotifyReview)

		r.Get("/purchases/{purchaseId}", h.GetPurchase)
		r.Get("/customers/{customerId}/purchases", h.ListCustomerPurchases)
		r.Get("/customers/{customerId}/refunds", h.ListCustomerRefunds)
		r.Get("/developers/{developerId}/complaints", h.ListDeveloperComplaints)
	})

	return r, nil
}
