package models

import (
	rndm "math/rand"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Appointment status values. Status is stored as an open string, so any
// value may be written via update; these are the ones the service itself
// assigns or cares about.
const (
	StatusPending   = "Pending"
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCanceled  = "canceled"
)

type Service struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	Duration    int                `json:"duration" bson:"duration"`
	Price       float64            `json:"price" bson:"price"`
	Photos      []string           `json:"photos" bson:"photos"`
	Videos      []string           `json:"videos" bson:"videos"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

type Appointment struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	CustomerName    string             `json:"customer_name" bson:"customer_name"`
	PhoneNo         string             `json:"phone_no" bson:"phone_no"`
	ServiceID       primitive.ObjectID `json:"service_id" bson:"service_id"`
	AppointmentTime time.Time          `json:"appointment_time" bson:"appointment_time"`
	Status          string             `json:"status" bson:"status"`
	Notes           string             `json:"notes,omitempty" bson:"notes,omitempty"`
	TenantID        string             `json:"tenant_id,omitempty" bson:"tenant_id,omitempty"`
	BookingNumber   string             `json:"booking_number" bson:"booking_number"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" bson:"updated_at"`
}

var bookingNumberRunes = []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

// NewBookingNumber generates a human-readable booking code in the form
// BK-<timestamp>-<6 random uppercase alphanumeric chars>. Generated once
// per appointment at creation and never regenerated.
func NewBookingNumber() string {
	suffix := make([]rune, 6)
	for i := range suffix {
		suffix[i] = bookingNumberRunes[rndm.Intn(len(bookingNumberRunes))]
	}
	return "BK-" + time.Now().Format("20060102150405") + "-" + string(suffix)
}
