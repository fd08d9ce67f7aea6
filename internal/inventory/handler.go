// internal/inventory/handler.go
package inventory

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

// HandleAddItem serves POST /add-item. When a session identity was
// resolved it supplies the contributor id, otherwise the body is trusted.
func (h *Handler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		FridgeID    string `json:"fridgeId"`
		Quantity    int    `json:"quantity"`
		UserID      string `json:"userId"`
		Photo       string `json:"photo"`
		Description string `json:"description"`
		Category    string `json:"category"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Failure(w, fault.Validationf("invalid request body"))
		return
	}

	if identity, ok := api.IdentityFrom(r.Context()); ok && req.UserID == "" {
		req.UserID = identity.UserID
	}

	params := AddItemParams{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		PhotoURL:    req.Photo,
	}

	if req.FridgeID != "" {
		id, err := uuid.Parse(req.FridgeID)
		if err != nil {
			api.Failure(w, fault.Validationf("malformed fridgeId"))
			return
		}
		params.FridgeID = id
	}
	if req.UserID != "" {
		id, err := uuid.Parse(req.UserID)
		if err != nil {
			api.Failure(w, fault.Validationf("malformed userId"))
			return
		}
		params.UserID = id
	}
	params.Quantity = req.Quantity

	item, err := h.service.AddItem(r.Context(), params)
	if err != nil {
		api.Failure(w, err)
		return
	}

	api.Success(w, http.StatusCreated, item)
}
