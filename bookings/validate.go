package bookings

import (
	"time"

	"bizbook/models"
)

// CreatePayload is the request body for booking an appointment. Any
// caller-supplied id, status or booking number is ignored.
type CreatePayload struct {
	CustomerName    string    `json:"customer_name"`
	PhoneNo         string    `json:"phone_no"`
	ServiceID       string    `json:"service_id"`
	AppointmentTime time.Time `json:"appointment_time"`
	Notes           *string   `json:"notes"`
	TenantID        *string   `json:"tenant_id"`
	ServiceName     string    `json:"service_name"`
}

func (p *CreatePayload) Valid() bool {
	return p.CustomerName != "" && p.PhoneNo != "" && p.ServiceID != "" && !p.AppointmentTime.IsZero()
}

// UpdatePayload is the request body for partially updating an appointment.
// Pointer fields distinguish absent from zero; absent fields never touch
// the stored document.
type UpdatePayload struct {
	CustomerName    *string    `json:"customer_name"`
	PhoneNo         *string    `json:"phone_no"`
	ServiceID       *string    `json:"service_id"`
	AppointmentTime *time.Time `json:"appointment_time"`
	Status          *string    `json:"status"`
	Notes           *string    `json:"notes"`
	TenantID        *string    `json:"tenant_id"`
}

// Merge overwrites exactly the fields present in the payload. ServiceID is
// merged by the handler after re-validating existence; booking_number and
// the timestamps are immutable here.
func (p *UpdatePayload) Merge(appt *models.Appointment) {
	if p.CustomerName != nil {
		appt.CustomerName = *p.CustomerName
	}
	if p.PhoneNo != nil {
		appt.PhoneNo = *p.PhoneNo
	}
	if p.AppointmentTime != nil {
		appt.AppointmentTime = *p.AppointmentTime
	}
	if p.Status != nil {
		appt.Status = *p.Status
	}
	if p.Notes != nil {
		appt.Notes = *p.Notes
	}
	if p.TenantID != nil {
		appt.TenantID = *p.TenantID
	}
}

// futureTime reports whether t is strictly later than the current instant.
// Comparison is done on the wall clock in UTC, so offsets in the incoming
// payload are handled correctly.
func futureTime(t time.Time) bool {
	return t.UTC().After(time.Now().UTC())
}
