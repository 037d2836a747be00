package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"sale-ops-pipeline/internal/app"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc    app.ApplicationService
	router chi.Router
	log    *zap.Logger
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins string, log *zap.Logger) http.Handler {
	h := &Handler{svc: svc, log: log}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(log))
	r.Use(Recoverer(log))
	r.Use(Metrics)
	r.Use(CORS(allowedOrigins))

	// ── Operational endpoints ────────────────────────────────────────────────
	r.Get("/api/health", h.health)
	r.Get("/metrics", metricsHandler().ServeHTTP)

	// All mutating endpoints carry JSON bodies; cap them at 1 MB.
	r.Group(func(r chi.Router) {
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB

		// ── Sales orders ─────────────────────────────────────────────────────
		r.Get("/api/orders", h.apiListOrders)
		r.Post("/api/orders", h.apiCreateOrder)
		r.Get("/api/orders/{ref}", h.apiGetOrder)
		r.Put("/api/orders/{id}", h.apiUpdateOrder)
		r.Put("/api/orders/{id}/lines", h.apiReplaceOrderLines)
		r.Post("/api/orders/{ref}/confirm", h.apiConfirmOrder)
		r.Post("/api/orders/{ref}/cancel", h.apiCancelOrder)
		r.Post("/api/orders/{id}/stage", h.apiMoveOrderToStage)
		r.Post("/api/orders/{ref}/shipping-po", h.apiCreateShippingPO)
		r.Get("/api/orders/{ref}/purchase-orders/manufacturing", h.apiListManufacturingPOs)
		r.Get("/api/orders/{ref}/purchase-orders/shipping", h.apiListShippingPOs)
		r.Post("/api/orders/refresh-delivery-states", h.apiRefreshDeliveryStates)

		// ── Master data ──────────────────────────────────────────────────────
		r.Get("/api/vendors", h.apiListVendors)
		r.Post("/api/vendors", h.apiCreateVendor)

		r.Get("/api/categories", h.apiListCategories)
		r.Post("/api/categories", h.apiCreateCategory)

		r.Get("/api/products", h.apiListProducts)
		r.Post("/api/products", h.apiCreateProduct)
		r.Put("/api/products/{id}", h.apiUpdateProduct)

		r.Get("/api/carriers", h.apiListCarriers)
		r.Post("/api/carriers", h.apiCreateCarrier)
		r.Put("/api/carriers/{id}", h.apiUpdateCarrier)
		r.Delete("/api/carriers/{id}", h.apiDeactivateCarrier)

		r.Get("/api/lead-times", h.apiListLeadTimeRules)
		r.Post("/api/lead-times", h.apiCreateLeadTimeRule)
		r.Put("/api/lead-times/{id}", h.apiUpdateLeadTimeRule)
		r.Delete("/api/lead-times/{id}", h.apiDeleteLeadTimeRule)

		r.Get("/api/stages", h.apiListStages)
		r.Post("/api/stages", h.apiCreateStage)
		r.Put("/api/stages/{id}", h.apiUpdateStage)
		r.Delete("/api/stages/{id}", h.apiDeleteStage)

		r.Get("/api/settings/{key}", h.apiGetSetting)
		r.Put("/api/settings/{key}", h.apiSetSetting)
	})

	h.router = r
	return r
}

// health returns service status.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status string `json:"status"`
	}
	writeJSON(w, response{Status: "ok"})
}

// decodeJSON decodes the request body into v and returns false + writes an appropriate
// error response on failure. Returns HTTP 413 when the body exceeds the size limit set
// by RequestBodyLimit middleware; HTTP 400 for all other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}
