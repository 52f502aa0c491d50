package middleware

import (
	"net/http"
	"runtime/debug"

	"pet-walks/internal/platform/httpresp"
	"pet-walks/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Recover reemplaza a chimw.Recoverer para que el panic quede en el logger
// estructurado con el request id.
func Recover(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Error("panic recovered", logger.Fields{
					"request_id": chimw.GetReqID(r.Context()),
					"method":     r.Method,
					"path":       r.URL.Path,
					"panic":      rec,
					"stack":      string(debug.Stack()),
				})
				httpresp.WriteJSON(w, http.StatusInternalServerError, httpresp.ErrorBody{Error: "internal error"})
			}()
			next.ServeHTTP(w, r)
		})
	}
}
