package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	domuser "example.com/storefront/internal/domain/user"
)

type ctxKey int

const (
	ctxSessionKey ctxKey = iota
	ctxRequestLogKey
)

var errUnauthenticated = errors.New("unauthenticated")

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusRecorder) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// requestLog is filled in by inner middleware (auth sets the user id) and
// read back once the request completes.
type requestLog struct {
	userID string
}

// loggerMiddleware ghi log mỗi request sau khi hoàn tất.
func loggerMiddleware(logger zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w}
			info := &requestLog{userID: "anonymous"}
			ctx := context.WithValue(r.Context(), ctxRequestLogKey, info)

			next.ServeHTTP(rec, r.WithContext(ctx))

			status := rec.Status()
			evt := logger.Info()
			if status >= http.StatusInternalServerError {
				evt = logger.Error()
			}
			evt.Str("request_id", chimw.GetReqID(r.Context())).
				Str("user_id", info.userID).
				Str("method", r.Method).
				Str("url", r.URL.String()).
				Int("status", status).
				Dur("latency", time.Since(start)).
				Msg("request completed")
		})
	}
}

func (a *API) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			respondError(w, http.StatusUnauthorized, errUnauthenticated)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		sess, err := a.sessions.ParseSession(token)
		if err != nil {
			respondError(w, http.StatusUnauthorized, errUnauthenticated)
			return
		}

		if info, ok := r.Context().Value(ctxRequestLogKey).(*requestLog); ok {
			info.userID = sess.UserID
		}
		ctx := context.WithValue(r.Context(), ctxSessionKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func getSession(ctx context.Context) (domuser.Session, bool) {
	sess, ok := ctx.Value(ctxSessionKey).(domuser.Session)
	return sess, ok && sess.Authenticated()
}
