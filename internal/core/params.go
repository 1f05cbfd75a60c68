// AngelaMos | 2026
// params.go

package core

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// PathID parses a positive integer URL parameter. On failure it writes a
// 400 and returns false.
func PathID(w http.ResponseWriter, r *http.Request, key string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, key), 10, 64)
	if err != nil || id <= 0 {
		JSONError(w, ValidationError(key, key+" must be a positive integer"))
		return 0, false
	}
	return id, true
}

// LookupFailed renders ErrNotFound as a 404 for resource and anything else
// as a 500.
func LookupFailed(w http.ResponseWriter, err error, resource string) {
	if errors.Is(err, ErrNotFound) {
		NotFound(w, resource)
		return
	}
	JSONError(w, err)
}
