package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bizbook/models"
	"bizbook/stores"
	"bizbook/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// in-memory ServiceStore for handler tests
type fakeServiceStore struct {
	items map[primitive.ObjectID]models.Service
	order []primitive.ObjectID
}

func newFakeServiceStore() *fakeServiceStore {
	return &fakeServiceStore{items: make(map[primitive.ObjectID]models.Service)}
}

func (s *fakeServiceStore) Get(_ context.Context, id primitive.ObjectID) (*models.Service, error) {
	svc, ok := s.items[id]
	if !ok {
		return nil, stores.ErrNotFound
	}
	cp := svc
	return &cp, nil
}

func (s *fakeServiceStore) List(_ context.Context, skip, limit int64) ([]models.Service, int64, error) {
	total := int64(len(s.order))
	out := []models.Service{}
	for i := skip; i < total && int64(len(out)) < limit; i++ {
		out = append(out, s.items[s.order[i]])
	}
	return out, total, nil
}

func (s *fakeServiceStore) Create(_ context.Context, svc *models.Service) error {
	svc.ID = primitive.NewObjectID()
	s.items[svc.ID] = *svc
	s.order = append(s.order, svc.ID)
	return nil
}

func (s *fakeServiceStore) Update(_ context.Context, svc *models.Service) error {
	if _, ok := s.items[svc.ID]; !ok {
		return stores.ErrNotFound
	}
	s.items[svc.ID] = *svc
	return nil
}

func (s *fakeServiceStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := s.items[id]; !ok {
		return stores.ErrNotFound
	}
	delete(s.items, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

type envelope struct {
	Status struct {
		Code string `json:"code"`
	} `json:"status"`
	Payload json.RawMessage `json:"payload"`
	Meta    struct {
		RequestID string `json:"requestId"`
	} `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func idParam(id string) httprouter.Params {
	return httprouter.Params{{Key: "id", Value: id}}
}

func TestCreateServiceAssignsID(t *testing.T) {
	h := NewHandler(newFakeServiceStore(), nil)

	body := `{"name":"Haircut","duration":30,"price":25.0,"photos":[],"videos":[]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/biz-services/new", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.CreateService(rec, req, nil)

	env := decodeEnvelope(t, rec)
	if env.Status.Code != "201" {
		t.Fatalf("got code %q, want 201", env.Status.Code)
	}

	var svc models.Service
	if err := json.Unmarshal(env.Payload, &svc); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if svc.ID.IsZero() {
		t.Error("created service has no id")
	}
	if svc.Photos == nil || len(svc.Photos) != 0 {
		t.Errorf("photos is %v, want []", svc.Photos)
	}
	if svc.CreatedAt.IsZero() || svc.UpdatedAt.IsZero() {
		t.Error("timestamps not set at creation")
	}
}

func TestCreateServiceRejectsBadURL(t *testing.T) {
	h := NewHandler(newFakeServiceStore(), nil)

	body := `{"name":"Haircut","duration":30,"price":25.0,"photos":["nope"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/biz-services/new", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.CreateService(rec, req, nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "nope") {
		t.Error("error does not cite the offending URL")
	}
}

func TestCreateServiceUnknownFieldsDropped(t *testing.T) {
	store := newFakeServiceStore()
	h := NewHandler(store, nil)

	body := `{"name":"Haircut","duration":30,"price":25.0,"owner":"mallory"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/biz-services/new", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.CreateService(rec, req, nil)

	env := decodeEnvelope(t, rec)
	if env.Status.Code != "201" {
		t.Fatalf("got code %q, want 201", env.Status.Code)
	}
	if strings.Contains(string(env.Payload), "mallory") {
		t.Error("unknown field reached the stored entity")
	}
}

func TestGetServiceNotFound(t *testing.T) {
	h := NewHandler(newFakeServiceStore(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/biz-services/x", nil)
	rec := httptest.NewRecorder()
	h.GetService(rec, req, idParam(primitive.NewObjectID().Hex()))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want 404", rec.Code)
	}
}

func TestListServicesPagination(t *testing.T) {
	store := newFakeServiceStore()
	for i := 0; i < 25; i++ {
		store.Create(context.Background(), &models.Service{Name: fmt.Sprintf("Service %d", i), Duration: 30, Price: 10})
	}
	h := NewHandler(store, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/biz-services?skip=0&limit=10", nil)
	rec := httptest.NewRecorder()
	h.GetServices(rec, req, nil)

	env := decodeEnvelope(t, rec)
	var page utils.Pagination
	if err := json.Unmarshal(env.Payload, &page); err != nil {
		t.Fatalf("decode pagination: %v", err)
	}
	if page.TotalElements != 25 || page.TotalPages != 3 {
		t.Errorf("got totalElements=%d totalPages=%d, want 25/3", page.TotalElements, page.TotalPages)
	}
	var content []models.Service
	if err := json.Unmarshal(env.Payload, &struct {
		Content *[]models.Service `json:"content"`
	}{&content}); err != nil {
		t.Fatalf("decode content: %v", err)
	}
	if len(content) != 10 {
		t.Errorf("got %d items, want 10", len(content))
	}
}

func TestListServicesRejectsBadWindow(t *testing.T) {
	h := NewHandler(newFakeServiceStore(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/biz-services?limit=2000", nil)
	rec := httptest.NewRecorder()
	h.GetServices(rec, req, nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", rec.Code)
	}
}

func TestUpdateServicePartialMerge(t *testing.T) {
	store := newFakeServiceStore()
	svc := models.Service{Name: "Haircut", Description: "Basic", Duration: 30, Price: 25, Photos: []string{}, Videos: []string{}}
	store.Create(context.Background(), &svc)
	h := NewHandler(store, nil)

	body := `{"price":30.0}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/biz-services/x", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.UpdateService(rec, req, idParam(svc.ID.Hex()))

	env := decodeEnvelope(t, rec)
	if env.Status.Code != "200" {
		t.Fatalf("got code %q, want 200", env.Status.Code)
	}

	stored, _ := store.Get(context.Background(), svc.ID)
	if stored.Price != 30 {
		t.Errorf("price not updated: %v", stored.Price)
	}
	if stored.Name != "Haircut" || stored.Description != "Basic" || stored.Duration != 30 {
		t.Error("fields omitted from the payload were changed")
	}
}

func TestUpdateServiceNotFound(t *testing.T) {
	h := NewHandler(newFakeServiceStore(), nil)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/biz-services/x", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.UpdateService(rec, req, idParam(primitive.NewObjectID().Hex()))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want 404", rec.Code)
	}
}

func TestDeleteServiceHardDeletes(t *testing.T) {
	store := newFakeServiceStore()
	svc := models.Service{Name: "Haircut", Duration: 30, Price: 25}
	store.Create(context.Background(), &svc)
	h := NewHandler(store, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/biz-services/x", nil)
	rec := httptest.NewRecorder()
	h.DeleteService(rec, req, idParam(svc.ID.Hex()))

	env := decodeEnvelope(t, rec)
	if env.Status.Code != "204" {
		t.Fatalf("got code %q, want 204", env.Status.Code)
	}
	if _, err := store.Get(context.Background(), svc.ID); err != stores.ErrNotFound {
		t.Error("service still present after delete")
	}
}
