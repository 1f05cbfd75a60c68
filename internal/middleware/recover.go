// AngelaMos | 2026
// recover.go

package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/carterperez-dev/petshop-backend/internal/core"
)

// Recoverer logs a handler panic and answers 500 with the JSON envelope.
// When the handler already sent a status line the response is left as is.
func Recoverer(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				//nolint:errorlint // sentinel comparison on recovered value
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.Error("panic recovered",
					"panic", rec,
					"request_id", GetRequestID(r.Context()),
					"headers_sent", ww.Status() != 0,
					"stack", string(debug.Stack()),
				)

				if ww.Status() != 0 {
					return
				}
				core.InternalServerError(ww, errors.New("panic"))
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
