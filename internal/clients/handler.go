// internal/clients/handler.go
package clients

import (
	"encoding/json"
	"log"
	"net/http"

	"fridgenet/internal/api"
	"fridgenet/internal/fault"
)

// Handler proxies the upload and classification collaborators so the web
// client never holds collaborator credentials.
type Handler struct {
	uploader   *UploaderClient
	classifier *ClassifierClient
}

func NewHandler(uploader *UploaderClient, classifier *ClassifierClient) *Handler {
	return &Handler{uploader: uploader, classifier: classifier}
}

// HandleUploadImage serves POST /upload-image.
func (h *Handler) HandleUploadImage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Image string `json:"image"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Failure(w, fault.Validationf("invalid request body"))
		return
	}
	if req.Image == "" {
		api.Failure(w, fault.Validationf("no image provided"))
		return
	}

	photoURL, err := h.uploader.Upload(r.Context(), req.Image)
	if err != nil {
		log.Printf("image upload failed: %v", err)
		api.Failure(w, fault.Internalf("upload failed"))
		return
	}

	api.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"url":     photoURL,
	})
}

// HandleClassifyItem serves POST /classify-item. The response is advisory
// prefill data for the add-item form.
func (h *Handler) HandleClassifyItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Photo string `json:"photo"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Failure(w, fault.Validationf("invalid request body"))
		return
	}
	if req.Photo == "" {
		api.Failure(w, fault.Validationf("no photo provided"))
		return
	}

	suggestion, err := h.classifier.Classify(r.Context(), req.Photo)
	if err != nil {
		log.Printf("classification failed: %v", err)
		api.Failure(w, fault.Internalf("classification failed"))
		return
	}

	api.Success(w, http.StatusOK, suggestion)
}
