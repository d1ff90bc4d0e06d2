package bookings

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"bizbook/models"
	"bizbook/mq"
	"bizbook/stores"
	"bizbook/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Handler serves the /bookings resource. ServiceStore is needed to check
// that a referenced service exists at creation and when the reference
// changes on update.
type Handler struct {
	Store    stores.AppointmentStore
	Services stores.ServiceStore
	Events   *mq.Emitter
}

func NewHandler(store stores.AppointmentStore, services stores.ServiceStore, events *mq.Emitter) *Handler {
	return &Handler{Store: store, Services: services, Events: events}
}

func reqCtx(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), 5*time.Second)
}

// GetAppointments handles GET /api/v1/bookings
func (h *Handler) GetAppointments(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	skip, limit, err := utils.ParseSkipLimit(r)
	if err != nil {
		utils.RespondWithError(w, r, http.StatusBadRequest, "Validation error: Invalid request data")
		return
	}
	filter := stores.AppointmentFilter{TenantID: r.URL.Query().Get("tenant_id")}

	ctx, cancel := reqCtx(r)
	defer cancel()

	appointments, total, err := h.Store.List(ctx, filter, skip, limit)
	if err != nil {
		log.Println("Appointment list error:", err)
		utils.RespondWithError(w, r, http.StatusInternalServerError, "Database error")
		return
	}

	utils.RespondWithEnvelope(w, r, "200", utils.NewPagination(appointments, total, skip, limit))
}

// GetAppointment handles GET /api/v1/bookings/:id
func (h *Handler) GetAppointment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, r, http.StatusBadRequest, "Validation error: Invalid request data")
		return
	}

	ctx, cancel := reqCtx(r)
	defer cancel()

	appt, err := h.Store.Get(ctx, id)
	if err == stores.ErrNotFound {
		utils.RespondWithError(w, r, http.StatusNotFound, "Appointment not found")
		return
	}
	if err != nil {
		log.Println("Appointment get error:", err)
		utils.RespondWithError(w, r, http.StatusInternalServerError, "Database error")
		return
	}

	utils.RespondWithEnvelope(w, r, "200", appt)
}

// CreateAppointment handles POST /api/v1/bookings/new
func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var payload CreatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || !payload.Valid() {
		utils.RespondWithError(w, r, http.StatusBadRequest, "Validation error: Invalid request data")
		return
	}

	serviceID, err := primitive.ObjectIDFromHex(payload.ServiceID)
	if err != nil {
		utils.RespondWithError(w, r, http.StatusBadRequest, "Validation error: Invalid request data")
		return
	}

	ctx, cancel := reqCtx(r)
	defer cancel()

	svc, err := h.Services.Get(ctx, serviceID)
	if err == stores.ErrNotFound {
		utils.RespondWithError(w, r, http.StatusNotFound, "Service not found")
		return
	}
	if err != nil {
		log.Println("Service lookup error:", err)
		utils.RespondWithError(w, r, http.StatusInternalServerError, "Database error")
		return
	}

	// Optional sanity check: a supplied service name must match the
	// referenced service, case-insensitively and whitespace-trimmed.
	if payload.ServiceName != "" {
		requested := strings.ToLower(strings.TrimSpace(payload.ServiceName))
		actual := strings.ToLower(strings.TrimSpace(svc.Name))
		if requested != actual {
			utils.RespondWithError(w, r, http.StatusBadRequest,
				fmt.Sprintf("Service name '%s' does not match the service with ID %s", payload.ServiceName, payload.ServiceID))
			return
		}
	}

	if !futureTime(payload.AppointmentTime) {
		utils.RespondWithError(w, r, http.StatusBadRequest, "Appointment time must be in the future")
		return
	}

	now := time.Now()
	appt := models.Appointment{
		CustomerName:    payload.CustomerName,
		PhoneNo:         payload.PhoneNo,
		ServiceID:       serviceID,
		AppointmentTime: payload.AppointmentTime,
		Status:          models.StatusPending,
		BookingNumber:   models.NewBookingNumber(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if payload.Notes != nil {
		appt.Notes = *payload.Notes
	}
	if payload.TenantID != nil {
		appt.TenantID = *payload.TenantID
	}

	if err := h.Store.Create(ctx, &appt); err != nil {
		log.Println("Appointment insert error:", err)
		utils.RespondWithError(w, r, http.StatusInternalServerError, "Failed to save appointment")
		return
	}

	h.Events.Emit(ctx, "created", appt.ID.Hex(), appt.BookingNumber, appt.TenantID)
	utils.RespondWithEnvelope(w, r, "201", appt)
}

// UpdateAppointment handles PUT /api/v1/bookings/:id
// The tenant authorization check runs before any field is merged, and the
// future-date check before the merge as well.
func (h *Handler) UpdateAppointment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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

	ctx, cancel := reqCtx(r)
	defer cancel()

	appt, err := h.Store.Get(ctx, id)
	if err == stores.ErrNotFound {
		utils.RespondWithError(w, r, http.StatusNotFound, "Appointment not found")
		return
	}
	if err != nil {
		log.Println("Appointment get error:", err)
		utils.RespondWithError(w, r, http.StatusInternalServerError, "Database error")
		return
	}

	// Authorization is opt-in: a caller omitting tenant_id is never
	// challenged.
	if tenantID := r.URL.Query().Get("tenant_id"); tenantID != "" && appt.TenantID != tenantID {
		utils.RespondWithError(w, r, http.StatusForbidden, "Not allowed to update appointments from other tenants")
		return
	}

	if payload.AppointmentTime != nil && !futureTime(*payload.AppointmentTime) {
		utils.RespondWithError(w, r, http.StatusBadRequest, "Appointment time must be in the future")
		return
	}

	if payload.ServiceID != nil {
		serviceID, err := primitive.ObjectIDFromHex(*payload.ServiceID)
		if err != nil {
			utils.RespondWithError(w, r, http.StatusBadRequest, "Validation error: Invalid request data")
			return
		}
		if _, err := h.Services.Get(ctx, serviceID); err != nil {
			if err == stores.ErrNotFound {
				utils.RespondWithError(w, r, http.StatusNotFound, "Service not found")
				return
			}
			log.Println("Service lookup error:", err)
			utils.RespondWithError(w, r, http.StatusInternalServerError, "Database error")
			return
		}
		appt.ServiceID = serviceID
	}

	payload.Merge(appt)

	if err := h.Store.Update(ctx, appt); err != nil {
		log.Println("Appointment update error:", err)
		utils.RespondWithError(w, r, http.StatusInternalServerError, "Failed to update appointment")
		return
	}

	utils.RespondWithEnvelope(w, r, "200", appt)
}

// DeleteAppointment handles DELETE /api/v1/bookings/:id
// Appointments are never removed; the document is marked canceled so the
// booking history survives.
func (h *Handler) DeleteAppointment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, r, http.StatusBadRequest, "Validation error: Invalid request data")
		return
	}

	ctx, cancel := reqCtx(r)
	defer cancel()

	appt, err := h.Store.Get(ctx, id)
	if err == stores.ErrNotFound {
		utils.RespondWithError(w, r, http.StatusNotFound, "Appointment not found")
		return
	}
	if err != nil {
		log.Println("Appointment get error:", err)
		utils.RespondWithError(w, r, http.StatusInternalServerError, "Database error")
		return
	}

	if tenantID := r.URL.Query().Get("tenant_id"); tenantID != "" && appt.TenantID != tenantID {
		utils.RespondWithError(w, r, http.StatusForbidden, "Not allowed to delete appointments from other tenants")
		return
	}

	appt.Status = models.StatusCanceled

	if err := h.Store.Update(ctx, appt); err != nil {
		log.Println("Appointment cancel error:", err)
		utils.RespondWithError(w, r, http.StatusInternalServerError, "Failed to cancel appointment")
		return
	}

	h.Events.Emit(ctx, "canceled", appt.ID.Hex(), appt.BookingNumber, appt.TenantID)
	utils.RespondWithEnvelope(w, r, "204", nil)
}
