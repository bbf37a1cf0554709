package handler

import (
	"net/http"
	"strconv"
)

const (
	defaultListLimit = 100
	maxUploadBytes   = 32 << 20
)

// parseOffsetLimit reads the offset/limit query parameters, falling
// back to 0/100 like the rest of the listing endpoints.
func parseOffsetLimit(r *http.Request) (int, int) {
	offset := 0
	limit := defaultListLimit

	if v := r.URL.Query().Get("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	return offset, limit
}
