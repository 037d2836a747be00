package web

import (
	"net/http"
	"strings"

	"sale-ops-pipeline/internal/app"

	"github.com/go-chi/chi/v5"
)

// ── Vendors ──────────────────────────────────────────────────────────────────

// apiListVendors handles GET /api/vendors.
func (h *Handler) apiListVendors(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListVendors(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// apiCreateVendor handles POST /api/vendors.
func (h *Handler) apiCreateVendor(w http.ResponseWriter, r *http.Request) {
	var body app.CreateVendorRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.Code == "" || body.Name == "" {
		writeError(w, r, "code and name are required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	result, err := h.svc.CreateVendor(r.Context(), body)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, result)
}

// ── Product categories ───────────────────────────────────────────────────────

// apiListCategories handles GET /api/categories.
func (h *Handler) apiListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.ListCategories(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, categories)
}

// apiCreateCategory handles POST /api/categories.
func (h *Handler) apiCreateCategory(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.Name == "" {
		writeError(w, r, "name is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	category, err := h.svc.CreateCategory(r.Context(), body.Name)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, category)
}

// ── Products ─────────────────────────────────────────────────────────────────

// apiListProducts handles GET /api/products.
func (h *Handler) apiListProducts(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListProducts(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// apiCreateProduct handles POST /api/products.
func (h *Handler) apiCreateProduct(w http.ResponseWriter, r *http.Request) {
	var body app.ProductRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.Code == "" || body.Name == "" {
		writeError(w, r, "code and name are required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	result, err := h.svc.CreateProduct(r.Context(), body)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, result)
}

// apiUpdateProduct handles PUT /api/products/{id}.
func (h *Handler) apiUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	var body app.ProductRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	result, err := h.svc.UpdateProduct(r.Context(), id, body)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// ── Shipping carriers ────────────────────────────────────────────────────────

// apiListCarriers handles GET /api/carriers.
func (h *Handler) apiListCarriers(w http.ResponseWriter, r *http.Request) {
	carriers, err := h.svc.ListCarriers(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, carriers)
}

// apiCreateCarrier handles POST /api/carriers.
func (h *Handler) apiCreateCarrier(w http.ResponseWriter, r *http.Request) {
	var body app.CarrierRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.Name == "" {
		writeError(w, r, "name is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	carrier, err := h.svc.CreateCarrier(r.Context(), body)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, carrier)
}

// apiUpdateCarrier handles PUT /api/carriers/{id}.
func (h *Handler) apiUpdateCarrier(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	var body app.CarrierRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	carrier, err := h.svc.UpdateCarrier(r.Context(), id, body)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, carrier)
}

// apiDeactivateCarrier handles DELETE /api/carriers/{id}.
func (h *Handler) apiDeactivateCarrier(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.DeactivateCarrier(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}

// ── Manufacturing lead-time rules ────────────────────────────────────────────

// apiListLeadTimeRules handles GET /api/lead-times.
func (h *Handler) apiListLeadTimeRules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.svc.ListLeadTimeRules(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, rules)
}

// apiCreateLeadTimeRule handles POST /api/lead-times.
func (h *Handler) apiCreateLeadTimeRule(w http.ResponseWriter, r *http.Request) {
	var body app.LeadTimeRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	rule, err := h.svc.CreateLeadTimeRule(r.Context(), body)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, rule)
}

// apiUpdateLeadTimeRule handles PUT /api/lead-times/{id}.
func (h *Handler) apiUpdateLeadTimeRule(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	var body app.LeadTimeRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	rule, err := h.svc.UpdateLeadTimeRule(r.Context(), id, body)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, rule)
}

// apiDeleteLeadTimeRule handles DELETE /api/lead-times/{id}.
func (h *Handler) apiDeleteLeadTimeRule(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteLeadTimeRule(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}

// ── Pipeline stages ──────────────────────────────────────────────────────────

// apiListStages handles GET /api/stages.
func (h *Handler) apiListStages(w http.ResponseWriter, r *http.Request) {
	stages, err := h.svc.ListStages(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, stages)
}

// apiCreateStage handles POST /api/stages.
func (h *Handler) apiCreateStage(w http.ResponseWriter, r *http.Request) {
	var body app.StageRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.Name == "" {
		writeError(w, r, "name is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	stage, err := h.svc.CreateStage(r.Context(), body)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, stage)
}

// apiUpdateStage handles PUT /api/stages/{id}.
func (h *Handler) apiUpdateStage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	var body app.StageRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	stage, err := h.svc.UpdateStage(r.Context(), id, body)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, stage)
}

// apiDeleteStage handles DELETE /api/stages/{id}.
func (h *Handler) apiDeleteStage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteStage(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}

// ── Settings ─────────────────────────────────────────────────────────────────

// apiGetSetting handles GET /api/settings/{key}.
func (h *Handler) apiGetSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	value, err := h.svc.GetSetting(r.Context(), key)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeError(w, r, err.Error(), "NOT_FOUND", http.StatusNotFound)
			return
		}
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, map[string]string{"key": key, "value": value})
}

// apiSetSetting handles PUT /api/settings/{key}.
func (h *Handler) apiSetSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	var body struct {
		Value string `json:"value"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	if err := h.svc.SetSetting(r.Context(), key, body.Value); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, map[string]string{"key": key, "value": body.Value})
}
