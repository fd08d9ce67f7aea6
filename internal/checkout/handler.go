// internal/checkout/handler.go
package checkout

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"fridgenet/internal/api"
	"fridgenet/internal/fault"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// HandleCheckout serves POST /checkout.
func (h *Handler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID   string `json:"userId"`
		ItemID   string `json:"itemId"`
		FridgeID string `json:"fridgeId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Failure(w, fault.Validationf("invalid request body"))
		return
	}

	if identity, ok := api.IdentityFrom(r.Context()); ok && req.UserID == "" {
		req.UserID = identity.UserID
	}
	if req.UserID == "" || req.ItemID == "" || req.FridgeID == "" {
		api.Failure(w, fault.Validationf("missing required fields"))
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		api.Failure(w, fault.Validationf("malformed userId"))
		return
	}
	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		api.Failure(w, fault.Validationf("malformed itemId"))
		return
	}
	fridgeID, err := uuid.Parse(req.FridgeID)
	if err != nil {
		api.Failure(w, fault.Validationf("malformed fridgeId"))
		return
	}

	result, err := h.service.Checkout(r.Context(), userID, itemID, fridgeID)
	if err != nil {
		api.Failure(w, err)
		return
	}

	api.Success(w, http.StatusOK, result)
}
