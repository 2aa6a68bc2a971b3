package http

import (
	"context"
	"net/http"
	"time"

	commonhttp "github.com/realtyhub/backend/internal/common/http"
	"github.com/realtyhub/backend/internal/common/jwtverify"
	"github.com/realtyhub/backend/internal/common/logger"
	"github.com/realtyhub/backend/internal/property/domain"
	"github.com/realtyhub/backend/internal/property/service"
)

type propertyRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Address     string  `json:"address"`
	Price       float64 `json:"price"`
}

type updatePropertyRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Address     *string  `json:"address"`
	Price       *float64 `json:"price"`
}

type Handler struct {
	properties *service.Service
	log        *logger.Logger
	timeout    time.Duration
}

func NewHandler(properties *service.Service, log *logger.Logger, timeout time.Duration) *Handler {
	return &Handler{properties: properties, log: log, timeout: timeout}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/v1/property/createProperty", h.createProperty)
	mux.HandleFunc("/v1/property/createProperties", h.createProperties)
	mux.HandleFunc("/v1/property/getProperties", h.getProperties)
	mux.HandleFunc("/v1/property/getProperty/", h.getProperty)
	mux.HandleFunc("/v1/property/updateProperty/", h.updateProperty)
	mux.HandleFunc("/v1/property/deleteProperty/", h.deleteProperty)
}

func (h *Handler) createProperty(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		commonhttp.WriteError(w, http.StatusUnauthorized, "missing or invalid authorization")
		return
	}

	var req propertyRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("create property failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	created, err := h.properties.CreateProperty(ctx, claims.UserID, service.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		Price:       req.Price,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, map[string]any{
		"message":  "Property created successfully",
		"property": created,
	})
}

func (h *Handler) createProperties(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		commonhttp.WriteError(w, http.StatusUnauthorized, "missing or invalid authorization")
		return
	}

	var reqs []propertyRequest
	if err := commonhttp.DecodeJSON(r, &reqs); err != nil {
		h.log.Warnf("create properties failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "Invalid input: properties must be a non-empty array")
		return
	}

	inputs := make([]service.CreateInput, len(reqs))
	for i, req := range reqs {
		inputs[i] = service.CreateInput{
			Title:       req.Title,
			Description: req.Description,
			Address:     req.Address,
			Price:       req.Price,
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	created, err := h.properties.CreateProperties(ctx, claims.UserID, inputs)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, map[string]any{
		"message":    "Properties created successfully",
		"count":      len(created),
		"properties": created,
	})
}

func (h *Handler) getProperties(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	props, err := h.properties.ListProperties(ctx)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, map[string]any{"properties": props})
}

func (h *Handler) getProperty(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id, ok := commonhttp.PathID(r.URL.Path, "/v1/property/getProperty/")
	if !ok {
		commonhttp.WriteError(w, http.StatusBadRequest, "property id is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	p, err := h.properties.GetProperty(ctx, domain.ID(id))
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, map[string]any{"property": p})
}

func (h *Handler) updateProperty(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id, ok := commonhttp.PathID(r.URL.Path, "/v1/property/updateProperty/")
	if !ok {
		commonhttp.WriteError(w, http.StatusBadRequest, "property id is required")
		return
	}

	var req updatePropertyRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("update property failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	p, err := h.properties.UpdateProperty(ctx, domain.ID(id), domain.Update{
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		Price:       req.Price,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, map[string]any{
		"message":  "Property updated successfully",
		"property": p,
	})
}

func (h *Handler) deleteProperty(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id, ok := commonhttp.PathID(r.URL.Path, "/v1/property/deleteProperty/")
	if !ok {
		commonhttp.WriteError(w, http.StatusBadRequest, "property id is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.properties.DeleteProperty(ctx, domain.ID(id)); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, map[string]any{"message": "Property deleted successfully"})
}
