package stores

import (
	"context"
	"errors"

	"bizbook/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when the requested document does not exist.
var ErrNotFound = errors.New("not found")

// AppointmentFilter narrows appointment listings. TenantID, when set, is an
// equality match on the stored tenant_id.
type AppointmentFilter struct {
	TenantID string
}

// ServiceStore is the storage contract for service documents.
type ServiceStore interface {
	Get(ctx context.Context, id primitive.ObjectID) (*models.Service, error)
	List(ctx context.Context, skip, limit int64) ([]models.Service, int64, error)
	Create(ctx context.Context, svc *models.Service) error
	Update(ctx context.Context, svc *models.Service) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// AppointmentStore is the storage contract for appointment documents.
// There is deliberately no Delete: appointments are only ever canceled
// in place via Update.
type AppointmentStore interface {
	Get(ctx context.Context, id primitive.ObjectID) (*models.Appointment, error)
	List(ctx context.Context, filter AppointmentFilter, skip, limit int64) ([]models.Appointment, int64, error)
	Create(ctx context.Context, appt *models.Appointment) error
	Update(ctx context.Context, appt *models.Appointment) error
}
