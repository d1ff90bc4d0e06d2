package stores

import (
	"context"

	"bizbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// findWindow returns find options for a stable offset/limit window.
// Sorting on _id keeps pagination deterministic across calls.
func findWindow(skip, limit int64) *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)
}

// MongoServiceStore backs ServiceStore with a MongoDB collection.
type MongoServiceStore struct {
	Coll *mongo.Collection
}

func NewMongoServiceStore(coll *mongo.Collection) *MongoServiceStore {
	return &MongoServiceStore{Coll: coll}
}

func (s *MongoServiceStore) Get(ctx context.Context, id primitive.ObjectID) (*models.Service, error) {
	var svc models.Service
	err := s.Coll.FindOne(ctx, bson.M{"_id": id}).Decode(&svc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (s *MongoServiceStore) List(ctx context.Context, skip, limit int64) ([]models.Service, int64, error) {
	total, err := s.Coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	cursor, err := s.Coll.Find(ctx, bson.M{}, findWindow(skip, limit))
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, 0, err
	}
	if len(services) == 0 {
		services = []models.Service{}
	}
	return services, total, nil
}

func (s *MongoServiceStore) Create(ctx context.Context, svc *models.Service) error {
	res, err := s.Coll.InsertOne(ctx, svc)
	if err != nil {
		return err
	}
	svc.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *MongoServiceStore) Update(ctx context.Context, svc *models.Service) error {
	res, err := s.Coll.ReplaceOne(ctx, bson.M{"_id": svc.ID}, svc)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoServiceStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.Coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MongoAppointmentStore backs AppointmentStore with a MongoDB collection.
type MongoAppointmentStore struct {
	Coll *mongo.Collection
}

func NewMongoAppointmentStore(coll *mongo.Collection) *MongoAppointmentStore {
	return &MongoAppointmentStore{Coll: coll}
}

func (s *MongoAppointmentStore) Get(ctx context.Context, id primitive.ObjectID) (*models.Appointment, error) {
	var appt models.Appointment
	err := s.Coll.FindOne(ctx, bson.M{"_id": id}).Decode(&appt)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

func (s *MongoAppointmentStore) List(ctx context.Context, filter AppointmentFilter, skip, limit int64) ([]models.Appointment, int64, error) {
	query := bson.M{}
	if filter.TenantID != "" {
		query["tenant_id"] = filter.TenantID
	}

	total, err := s.Coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	cursor, err := s.Coll.Find(ctx, query, findWindow(skip, limit))
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var appointments []models.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, 0, err
	}
	if len(appointments) == 0 {
		appointments = []models.Appointment{}
	}
	return appointments, total, nil
}

func (s *MongoAppointmentStore) Create(ctx context.Context, appt *models.Appointment) error {
	res, err := s.Coll.InsertOne(ctx, appt)
	if err != nil {
		return err
	}
	appt.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *MongoAppointmentStore) Update(ctx context.Context, appt *models.Appointment) error {
	res, err := s.Coll.ReplaceOne(ctx, bson.M{"_id": appt.ID}, appt)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
