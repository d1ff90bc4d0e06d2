package services

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"bizbook/models"
	"bizbook/rdx"
	"bizbook/stores"
	"bizbook/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Handler serves the /biz-services resource.
type Handler struct {
	Store stores.ServiceStore
	Cache *rdx.Cache
}

func NewHandler(store stores.ServiceStore, cache *rdx.Cache) *Handler {
	return &Handler{Store: store, Cache: cache}
}

func reqCtx(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), 5*time.Second)
}

// GetServices handles GET /api/v1/biz-services
func (h *Handler) GetServices(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	skip, limit, err := utils.ParseSkipLimit(r)
	if err != nil {
		utils.RespondWithError(w, r, http.StatusBadRequest, "Validation error: Invalid request data")
		return
	}

	ctx, cancel := reqCtx(r)
	defer cancel()

	services, total, err := h.Store.List(ctx, skip, limit)
	if err != nil {
		log.Println("Service list error:", err)
		utils.RespondWithError(w, r, http.StatusInternalServerError, "Database error")
		return
	}

	utils.RespondWithEnvelope(w, r, "200", utils.NewPagination(services, total, skip, limit))
}

// GetService handles GET /api/v1/biz-services/:id
func (h *Handler) GetService(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, r, http.StatusBadRequest, "Validation error: Invalid request data")
		return
	}

	ctx, cancel := reqCtx(r)
	defer cancel()

	if svc, ok := h.Cache.GetService(ctx, id.Hex()); ok {
		utils.RespondWithEnvelope(w, r, "200", svc)
		return
	}

	svc, err := h.Store.Get(ctx, id)
	if err == stores.ErrNotFound {
		utils.RespondWithError(w, r, http.StatusNotFound, "Service not found")
		return
	}
	if err != nil {
		log.Println("Service get error:", err)
		utils.RespondWithError(w, r, http.StatusInternalServerError, "Database error")
		return
	}

	h.Cache.SetService(ctx, svc)
	utils.RespondWithEnvelope(w, r, "200", svc)
}

// CreateService handles POST /api/v1/biz-services/new
func (h *Handler) CreateService(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var payload CreatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, r, http.StatusBadRequest, "Validation error: Invalid request data")
		return
	}
	if err := payload.Validate(); err != nil {
		utils.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now()
	svc := models.Service{
		Name:        payload.Name,
		Description: payload.Description,
		Duration:    payload.Duration,
		Price:       payload.Price,
		Photos:      payload.Photos,
		Videos:      payload.Videos,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if svc.Photos == nil {
		svc.Photos = []string{}
	}
	if svc.Videos == nil {
		svc.Videos = []string{}
	}

	ctx, cancel := reqCtx(r)
	defer cancel()

	if err := h.Store.Create(ctx, &svc); err != nil {
		log.Println("Service insert error:", err)
		utils.RespondWithError(w, r, http.StatusInternalServerError, "Failed to save service")
		return
	}

	utils.RespondWithEnvelope(w, r, "201", svc)
}

// UpdateService handles PUT /api/v1/biz-services/:id
func (h *Handler) UpdateService(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, r, http.StatusBadRequest, "Validation error: Invalid request data")
		return
	}

	var payload UpdatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, r, http.StatusBadRequest, "Validation error: Invalid request data")
		return
	}
	if err := payload.Validate(); err != nil {
		utils.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := reqCtx(r)
	defer cancel()

	svc, err := h.Store.Get(ctx, id)
	if err == stores.ErrNotFound {
		utils.RespondWithError(w, r, http.StatusNotFound, "Service not found")
		return
	}
	if err != nil {
		log.Println("Service get error:", err)
		utils.RespondWithError(w, r, http.StatusInternalServerError, "Database error")
		return
	}

	payload.Merge(svc)

	if err := h.Store.Update(ctx, svc); err != nil {
		log.Println("Service update error:", err)
		utils.RespondWithError(w, r, http.StatusInternalServerError, "Failed to update service")
		return
	}

	h.Cache.DelService(ctx, id.Hex())
	utils.RespondWithEnvelope(w, r, "200", svc)
}

// DeleteService handles DELETE /api/v1/biz-services/:id
// Services are hard-deleted; referencing appointments are not cascaded.
func (h *Handler) DeleteService(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, r, http.StatusBadRequest, "Validation error: Invalid request data")
		return
	}

	ctx, cancel := reqCtx(r)
	defer cancel()

	err = h.Store.Delete(ctx, id)
	if err == stores.ErrNotFound {
		utils.RespondWithError(w, r, http.StatusNotFound, "Service not found")
		return
	}
	if err != nil {
		log.Println("Service delete error:", err)
		utils.RespondWithError(w, r, http.StatusInternalServerError, "Failed to delete service")
		return
	}

	h.Cache.DelService(ctx, id.Hex())
	utils.RespondWithEnvelope(w, r, "204", nil)
}

// UploadServiceMedia handles POST /api/v1/biz-services/upload/:id
// Acknowledges received photo/video files for an existing service.
func (h *Handler) UploadServiceMedia(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, r, http.StatusBadRequest, "Validation error: Invalid request data")
		return
	}

	ctx, cancel := reqCtx(r)
	defer cancel()

	if _, err := h.Store.Get(ctx, id); err != nil {
		if err == stores.ErrNotFound {
			utils.RespondWithError(w, r, http.StatusNotFound, "Service not found")
			return
		}
		log.Println("Service get error:", err)
		utils.RespondWithError(w, r, http.StatusInternalServerError, "Database error")
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		utils.RespondWithError(w, r, http.StatusBadRequest, "Validation error: Invalid request data")
		return
	}

	photos := []string{}
	videos := []string{}
	if r.MultipartForm != nil {
		for _, fh := range r.MultipartForm.File["photos"] {
			photos = append(photos, fh.Filename)
		}
		for _, fh := range r.MultipartForm.File["videos"] {
			videos = append(videos, fh.Filename)
		}
	}

	utils.RespondWithEnvelope(w, r, "200", utils.M{
		"message": "Files uploaded successfully",
		"photos":  photos,
		"videos":  videos,
	})
}
