package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/plantnet/server/internal/adapter/storage/s3"
	"github.com/plantnet/server/internal/domain/entity"
	"github.com/plantnet/server/internal/platform/logger"
	"github.com/plantnet/server/internal/port/http/middleware"
	"github.com/plantnet/server/internal/service"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// maxImageSize caps plant image uploads at 5 MiB.
const maxImageSize = 5 << 20

type PlantHandler struct {
	catalog  *service.CatalogService
	uploader s3.Uploader // nil when object storage is not configured
	log      logger.Logger
}

func NewPlantHandler(catalog *service.CatalogService, uploader s3.Uploader, log logger.Logger) *PlantHandler {
	return &PlantHandler{catalog: catalog, uploader: uploader, log: log.With("handler", "plants")}
}

func plantIDParam(r *http.Request) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
}

// Create handles POST /plants (seller only).
func (h *PlantHandler) Create(w http.ResponseWriter, r *http.Request) {
	email, _ := middleware.ClaimEmail(r.Context())

	var plant entity.Plant
	if err := json.NewDecoder(r.Body).Decode(&plant); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.catalog.Create(r.Context(), &plant, email)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"insertedId": id.Hex()})
}

// ListAll handles GET /plants (public).
func (h *PlantHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	plants, err := h.catalog.FindAll(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if plants == nil {
		plants = []entity.Plant{}
	}
	writeJSON(w, http.StatusOK, plants)
}

// GetByID handles GET /plants/{id} (public).
func (h *PlantHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := plantIDParam(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid plant id")
		return
	}

	plant, err := h.catalog.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, plant)
}

// Inventory handles GET /plants/seller. The seller email comes from the
// token claim, not from the request.
func (h *PlantHandler) Inventory(w http.ResponseWriter, r *http.Request) {
	email, _ := middleware.ClaimEmail(r.Context())

	plants, err := h.catalog.Inventory(r.Context(), email)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if plants == nil {
		plants = []entity.Plant{}
	}
	writeJSON(w, http.StatusOK, plants)
}

// Update handles PUT /plants/{id} (owning seller only).
func (h *PlantHandler) Update(w http.ResponseWriter, r *http.Request) {
	email, _ := middleware.ClaimEmail(r.Context())

	id, err := plantIDParam(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid plant id")
		return
	}

	var plant entity.Plant
	if err := json.NewDecoder(r.Body).Decode(&plant); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.catalog.Update(r.Context(), id, &plant, email); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Delete handles DELETE /plants/{id} (owning seller only).
func (h *PlantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	email, _ := middleware.ClaimEmail(r.Context())

	id, err := plantIDParam(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid plant id")
		return
	}

	if err := h.catalog.Delete(r.Context(), id, email); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// AdjustQuantity handles PATCH /plants/quantity. The body carries the plant
// id, an absolute quantity, and a status flag: "increase" restocks, anything
// else is a sale. The handler converts that into a signed delta once, here,
// so no other call site ever computes the inverse.
func (h *PlantHandler) AdjustQuantity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID       string `json:"id"`
		Quantity int    `json:"quantity"`
		Status   string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid plant id")
		return
	}
	if req.Quantity <= 0 {
		writeMessage(w, http.StatusBadRequest, "quantity must be positive")
		return
	}

	delta := -req.Quantity
	if req.Status == "increase" {
		delta = req.Quantity
	}

	if err := h.catalog.AdjustQuantity(r.Context(), id, delta); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// UploadImage handles POST /plants/image (seller only, multipart form with
// an "image" field). Returns the public URL of the stored object.
func (h *PlantHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if h.uploader == nil {
		writeMessage(w, http.StatusServiceUnavailable, "image uploads are not configured")
		return
	}

	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "image field is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageSize+1))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if len(data) > maxImageSize {
		writeMessage(w, http.StatusBadRequest, "image too large")
		return
	}
	if len(data) == 0 {
		writeMessage(w, http.StatusBadRequest, "image is empty")
		return
	}

	url, err := h.uploader.Upload(r.Context(), header.Filename, data)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}
