package httpapi

import (
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"strings"
	"sync/atomic"
	"time"

	apperrors "github.com/louisbranch/sheetkeeper/internal/platform/errors"
)

// Middleware wraps an HTTP handler.
type Middleware func(http.Handler) http.Handler

var requestIDCounter atomic.Uint64

// Chain applies middleware in declaration order.
func Chain(handler http.Handler, middleware ...Middleware) http.Handler {
	if handler == nil {
		handler = http.NotFoundHandler()
	}
	for i := len(middleware) - 1; i >= 0; i-- {
		if middleware[i] != nil {
			handler = middleware[i](handler)
		}
	}
	return handler
}

// RequestID echoes X-Request-ID, minting one when the caller sent none.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get("X-Request-ID"))
			if id == "" {
				id = fmt.Sprintf("sheet-%d-%d", time.Now().UnixNano(), requestIDCounter.Add(1))
				r.Header.Set("X-Request-ID", id)
			}
			w.Header().Set("X-Request-ID", id)
			next.ServeHTTP(w, r)
		})
	}
}

// RecoverPanic logs a panic and answers 500 instead of dropping the
// connection. A response already under way is left as is.
func RecoverPanic() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tracked := &headerTracker{ResponseWriter: w}
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				if recovered == http.ErrAbortHandler {
					panic(recovered)
				}
				log.Printf("panic recovered method=%s path=%s request_id=%s panic=%v stack=%s",
					r.Method, r.URL.Path, r.Header.Get("X-Request-ID"), recovered,
					strings.TrimSpace(string(debug.Stack())))
				if tracked.wroteHeader {
					return
				}
				writeJSON(w, http.StatusInternalServerError, errorResponse{
					Code:    apperrors.CodeUnknown,
					Message: "internal error",
				})
			}()
			next.ServeHTTP(tracked, r)
		})
	}
}

// headerTracker records whether the status line has been sent.
type headerTracker struct {
	http.ResponseWriter
	wroteHeader bool
}

func (w *headerTracker) WriteHeader(status int) {
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *headerTracker) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}

func (w *headerTracker) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
