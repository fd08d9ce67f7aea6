// internal/fridge/handler.go
package fridge

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"fridgenet/internal/api"
	"fridgenet/internal/fault"
	"fridgenet/internal/geo"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// HandleLoad serves POST /load: fridges within range of the reported
// position, nearest first, with their in-stock items. Coordinates are
// pointers so latitude or longitude 0 still counts as present.
func (h *Handler) HandleLoad(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, fault.Validationf("invalid request body"))
		return
	}
	if req.Latitude == nil || req.Longitude == nil {
		api.Error(w, fault.Validationf("missing latitude or longitude"))
		return
	}

	nearby, err := h.service.Nearby(r.Context(), geo.Point{
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
	})
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, nearby)
}

// HandleUnlock serves POST /unlock. The caller may report its position;
// the unlock policy decides whether that position is required.
func (h *Handler) HandleUnlock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FridgeID  string   `json:"fridgeId"`
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}

	id, ok := decodeFridgeID(w, r, &req, &req.FridgeID)
	if !ok {
		return
	}

	var origin *geo.Point
	if req.Latitude != nil && req.Longitude != nil {
		origin = &geo.Point{Latitude: *req.Latitude, Longitude: *req.Longitude}
	}

	if err := h.service.Unlock(r.Context(), id, origin); err != nil {
		if errors.Is(err, ErrTooFar) {
			api.JSON(w, http.StatusForbidden, map[string]string{"error": "too far from fridge"})
			return
		}
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

// HandleLock serves POST /lock.
func (h *Handler) HandleLock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FridgeID string `json:"fridgeId"`
	}

	id, ok := decodeFridgeID(w, r, &req, &req.FridgeID)
	if !ok {
		return
	}

	if err := h.service.Lock(r.Context(), id); err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

// decodeFridgeID decodes the body into req and parses the fridge id field,
// writing the validation response itself on failure.
func decodeFridgeID(w http.ResponseWriter, r *http.Request, req interface{}, idField *string) (uuid.UUID, bool) {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		api.Error(w, fault.Validationf("invalid request body"))
		return uuid.Nil, false
	}
	if *idField == "" {
		api.Error(w, fault.Validationf("missing fridgeId"))
		return uuid.Nil, false
	}
	id, err := uuid.Parse(*idField)
	if err != nil {
		api.Error(w, fault.Validationf("malformed fridgeId"))
		return uuid.Nil, false
	}
	return id, true
}
