package middleware

import (
	"context"
	"net/http"

	"bizbook/globals"
	"bizbook/utils"

	"github.com/julienschmidt/httprouter"
)

// RequestID enforces the mandatory x-request-id correlation header. A
// request without it is rejected with 400 before any handler logic runs;
// otherwise the value is stored in the context and echoed in the response
// header so every success and error body can carry it.
func RequestID(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		requestID := r.Header.Get("x-request-id")
		if requestID == "" {
			utils.RespondWithError(w, r, http.StatusBadRequest, "x-request-id header is required")
			return
		}

		w.Header().Set("x-request-id", requestID)
		ctx := context.WithValue(r.Context(), globals.RequestIDKey, requestID)
		next(w, r.WithContext(ctx), ps)
	}
}
