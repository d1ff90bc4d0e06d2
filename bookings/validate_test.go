package bookings

import (
	"testing"
	"time"

	"bizbook/models"
)

func strPtr(s string) *string { return &s }

func TestFutureTime(t *testing.T) {
	if futureTime(time.Now().Add(-time.Minute)) {
		t.Error("past instant accepted")
	}
	if !futureTime(time.Now().Add(time.Hour)) {
		t.Error("future instant rejected")
	}
	// offset-aware: a future instant expressed in a non-UTC zone
	loc := time.FixedZone("UTC+9", 9*3600)
	if !futureTime(time.Now().In(loc).Add(time.Hour)) {
		t.Error("future instant in non-UTC zone rejected")
	}
}

func TestUpdateMergeSelective(t *testing.T) {
	when := time.Now().Add(24 * time.Hour)
	appt := models.Appointment{
		CustomerName:    "Ada",
		PhoneNo:         "555-0101",
		AppointmentTime: when,
		Status:          models.StatusPending,
		Notes:           "first visit",
		BookingNumber:   "BK-20260101120000-ABC123",
	}

	p := UpdatePayload{Status: strPtr("scheduled")}
	p.Merge(&appt)

	if appt.Status != "scheduled" {
		t.Errorf("status not merged: %q", appt.Status)
	}
	if appt.CustomerName != "Ada" || appt.Notes != "first visit" ||
		!appt.AppointmentTime.Equal(when) || appt.BookingNumber != "BK-20260101120000-ABC123" {
		t.Error("merge touched fields absent from the payload")
	}
}

func TestUpdateMergeExplicitEmptyNotes(t *testing.T) {
	appt := models.Appointment{Notes: "old"}
	p := UpdatePayload{Notes: strPtr("")}
	p.Merge(&appt)
	if appt.Notes != "" {
		t.Errorf("explicit empty notes not applied: %q", appt.Notes)
	}
}

func TestCreatePayloadValid(t *testing.T) {
	p := CreatePayload{CustomerName: "Ada", PhoneNo: "555-0101", ServiceID: "abc", AppointmentTime: time.Now()}
	if !p.Valid() {
		t.Error("complete payload rejected")
	}
	p.PhoneNo = ""
	if p.Valid() {
		t.Error("payload without phone accepted")
	}
}
