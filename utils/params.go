package utils

import (
	"fmt"
	"net/http"
	"strconv"
)

// ParseSkipLimit reads the skip/limit query parameters for list endpoints.
// skip must be >= 0 and limit within [1, 1000]; limit defaults to 100.
func ParseSkipLimit(r *http.Request) (int64, int64, error) {
	q := r.URL.Query()

	skip := int64(0)
	if raw := q.Get("skip"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v < 0 {
			return 0, 0, fmt.Errorf("invalid skip parameter: %s", raw)
		}
		skip = v
	}

	limit := int64(100)
	if raw := q.Get("limit"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v < 1 || v > 1000 {
			return 0, 0, fmt.Errorf("invalid limit parameter: %s", raw)
		}
		limit = v
	}

	return skip, limit, nil
}
