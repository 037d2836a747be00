package web

import (
	"net/http"
	"strconv"
	"strings"

	"sale-ops-pipeline/internal/app"

	"github.com/go-chi/chi/v5"
)

// pathInt extracts an integer URL parameter, writing a 400 on failure.
func pathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, r, "invalid "+name+": "+raw, "BAD_REQUEST", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// apiListOrders handles GET /api/orders?status=&stage_id=.
func (h *Handler) apiListOrders(w http.ResponseWriter, r *http.Request) {
	var statusPtr *string
	if s := r.URL.Query().Get("status"); s != "" {
		statusPtr = &s
	}
	var stagePtr *int
	if s := r.URL.Query().Get("stage_id"); s != "" {
		id, err := strconv.Atoi(s)
		if err != nil {
			writeError(w, r, "invalid stage_id: "+s, "BAD_REQUEST", http.StatusBadRequest)
			return
		}
		stagePtr = &id
	}

	result, err := h.svc.ListOrders(r.Context(), statusPtr, stagePtr)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// apiGetOrder handles GET /api/orders/{ref}. ref is a numeric id or an order number.
func (h *Handler) apiGetOrder(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")
	result, err := h.svc.GetOrder(r.Context(), ref)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeError(w, r, err.Error(), "NOT_FOUND", http.StatusNotFound)
			return
		}
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// apiCreateOrder handles POST /api/orders.
func (h *Handler) apiCreateOrder(w http.ResponseWriter, r *http.Request) {
	var body app.CreateOrderRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.CustomerName == "" {
		writeError(w, r, "customer_name is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	result, err := h.svc.CreateOrder(r.Context(), body)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, result)
}

// apiUpdateOrder handles PUT /api/orders/{id}.
func (h *Handler) apiUpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	var body app.UpdateOrderRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	result, err := h.svc.UpdateOrder(r.Context(), id, body)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// apiReplaceOrderLines handles PUT /api/orders/{id}/lines.
func (h *Handler) apiReplaceOrderLines(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	var body struct {
		Lines []app.OrderLineRequest `json:"lines"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	result, err := h.svc.ReplaceOrderLines(r.Context(), id, body.Lines)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// apiConfirmOrder handles POST /api/orders/{ref}/confirm.
func (h *Handler) apiConfirmOrder(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")
	result, err := h.svc.ConfirmOrder(r.Context(), ref)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// apiCancelOrder handles POST /api/orders/{ref}/cancel.
func (h *Handler) apiCancelOrder(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")
	result, err := h.svc.CancelOrder(r.Context(), ref)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// apiMoveOrderToStage handles POST /api/orders/{id}/stage.
// Body: { stage_id }
func (h *Handler) apiMoveOrderToStage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	var body struct {
		StageID int `json:"stage_id"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	if err := h.svc.MoveOrderToStage(r.Context(), id, body.StageID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}

// apiCreateShippingPO handles POST /api/orders/{ref}/shipping-po — the manual
// issuance path. Unlike confirmation, validation failures surface to the caller.
func (h *Handler) apiCreateShippingPO(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")
	result, err := h.svc.CreateShippingPO(r.Context(), ref)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if result.Skipped {
		writeJSON(w, result)
		return
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, result)
}

// apiListManufacturingPOs handles GET /api/orders/{ref}/purchase-orders/manufacturing.
func (h *Handler) apiListManufacturingPOs(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")
	result, err := h.svc.ListManufacturingPOs(r.Context(), ref)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// apiListShippingPOs handles GET /api/orders/{ref}/purchase-orders/shipping.
func (h *Handler) apiListShippingPOs(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")
	result, err := h.svc.ListShippingPOs(r.Context(), ref)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// apiRefreshDeliveryStates handles POST /api/orders/refresh-delivery-states.
func (h *Handler) apiRefreshDeliveryStates(w http.ResponseWriter, r *http.Request) {
	updated, err := h.svc.RefreshDeliveryStates(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, map[string]int{"updated": updated})
}
