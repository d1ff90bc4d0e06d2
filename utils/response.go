package utils

import (
	"encoding/json"
	"net/http"
	"strconv"

	"bizbook/globals"
)

// APIResponse is the uniform envelope applied to every JSON response body.
type APIResponse struct {
	Status  ResponseStatus `json:"status"`
	Payload any            `json:"payload"`
	Meta    ResponseMeta   `json:"meta"`
}

type ResponseStatus struct {
	Code string `json:"code"`
}

type ResponseMeta struct {
	RequestID string `json:"requestId"`
}

// Pagination is the payload shape for list endpoints.
type Pagination struct {
	Content       any   `json:"content"`
	TotalPages    int64 `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
	Page          int64 `json:"page"`
	Size          int64 `json:"size"`
}

// NewPagination builds the pagination payload. page and size echo the
// requested skip/limit window; totalPages is ceil(totalElements/size).
func NewPagination(content any, totalElements, page, size int64) Pagination {
	totalPages := (totalElements + size - 1) / size
	return Pagination{
		Content:       content,
		TotalPages:    totalPages,
		TotalElements: totalElements,
		Page:          page,
		Size:          size,
	}
}

// RequestIDFromContext returns the correlation id stored by the request-id
// middleware, or "" when the middleware never ran.
func RequestIDFromContext(r *http.Request) string {
	id, _ := r.Context().Value(globals.RequestIDKey).(string)
	return id
}

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// RespondWithEnvelope writes a success envelope. The HTTP status line stays
// 200; code carries the operation's status ("200", "201", "204").
func RespondWithEnvelope(w http.ResponseWriter, r *http.Request, code string, payload any) {
	RespondWithJSON(w, http.StatusOK, APIResponse{
		Status:  ResponseStatus{Code: code},
		Payload: payload,
		Meta:    ResponseMeta{RequestID: RequestIDFromContext(r)},
	})
}

// RespondWithError writes an error envelope with a human-readable detail
// string. The envelope code mirrors the HTTP status.
func RespondWithError(w http.ResponseWriter, r *http.Request, statusCode int, detail string) {
	RespondWithJSON(w, statusCode, APIResponse{
		Status:  ResponseStatus{Code: strconv.Itoa(statusCode)},
		Payload: map[string]string{"detail": detail},
		Meta:    ResponseMeta{RequestID: RequestIDFromContext(r)},
	})
}

type M map[string]interface{}
