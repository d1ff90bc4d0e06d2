package mq

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const bookingChannel = "booking-events"

// BookingEvent describes an appointment lifecycle change published for
// downstream consumers (reminders, analytics).
type BookingEvent struct {
	EventID       string    `json:"event_id"`
	Type          string    `json:"type"` // created, canceled
	AppointmentID string    `json:"appointment_id"`
	BookingNumber string    `json:"booking_number"`
	TenantID      string    `json:"tenant_id,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Emitter publishes booking events to a redis channel. A nil Emitter is
// valid and drops every event; publishing is fire-and-forget and never
// fails the request that triggered it.
type Emitter struct {
	Conn *redis.Client
}

func NewEmitter(conn *redis.Client) *Emitter {
	if conn == nil {
		return nil
	}
	return &Emitter{Conn: conn}
}

func (e *Emitter) Emit(ctx context.Context, eventType, appointmentID, bookingNumber, tenantID string) {
	if e == nil {
		return
	}
	event := BookingEvent{
		EventID:       uuid.NewString(),
		Type:          eventType,
		AppointmentID: appointmentID,
		BookingNumber: bookingNumber,
		TenantID:      tenantID,
		OccurredAt:    time.Now(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event: %v", err)
		return
	}
	if err := e.Conn.Publish(ctx, bookingChannel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish event to Redis: %v", err)
	}
}
