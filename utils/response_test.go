package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bizbook/globals"
)

func TestNewPaginationMath(t *testing.T) {
	cases := []struct {
		total, size, wantPages int64
	}{
		{25, 10, 3},
		{30, 10, 3},
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
	}
	for _, c := range cases {
		p := NewPagination([]string{}, c.total, 0, c.size)
		if p.TotalPages != c.wantPages {
			t.Errorf("total=%d size=%d: got totalPages=%d, want %d", c.total, c.size, p.TotalPages, c.wantPages)
		}
		if p.TotalElements != c.total {
			t.Errorf("totalElements mismatch: got %d, want %d", p.TotalElements, c.total)
		}
	}
}

func TestPaginationEchoesWindow(t *testing.T) {
	p := NewPagination(nil, 25, 5, 10)
	if p.Page != 5 || p.Size != 10 {
		t.Errorf("window not echoed: page=%d size=%d", p.Page, p.Size)
	}
}

func TestRespondWithEnvelope(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), globals.RequestIDKey, "req-123"))
	rec := httptest.NewRecorder()

	RespondWithEnvelope(rec, req, "201", map[string]string{"name": "Haircut"})

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}

	var resp APIResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status.Code != "201" {
		t.Errorf("got code %q, want 201", resp.Status.Code)
	}
	if resp.Meta.RequestID != "req-123" {
		t.Errorf("got requestId %q, want req-123", resp.Meta.RequestID)
	}
}

func TestRespondWithErrorCarriesDetail(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), globals.RequestIDKey, "req-456"))
	rec := httptest.NewRecorder()

	RespondWithError(rec, req, http.StatusNotFound, "Service not found")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want 404", rec.Code)
	}

	var resp struct {
		Status  ResponseStatus    `json:"status"`
		Payload map[string]string `json:"payload"`
		Meta    ResponseMeta      `json:"meta"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status.Code != "404" {
		t.Errorf("got code %q, want 404", resp.Status.Code)
	}
	if resp.Payload["detail"] != "Service not found" {
		t.Errorf("got detail %q", resp.Payload["detail"])
	}
	if resp.Meta.RequestID != "req-456" {
		t.Errorf("got requestId %q, want req-456", resp.Meta.RequestID)
	}
}
