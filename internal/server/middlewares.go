package server

import (
	"context"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"

	"bazario/internal/identity"
)

type claimsContextKey struct{}

type traceContextKey struct{}
type traceContext struct {
	traceID string
}

func setClaimsContext(ctx context.Context, c identity.Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey{}, c)
}

func getClaimsContext(ctx context.Context) (identity.Claims, bool) {
	c, ok := ctx.Value(claimsContextKey{}).(identity.Claims)
	return c, ok
}

func setTraceContext(ctx context.Context, tc traceContext) context.Context {
	return context.WithValue(ctx, traceContextKey{}, tc)
}
func getTraceContext(ctx context.Context) traceContext {
	tc, _ := ctx.Value(traceContextKey{}).(traceContext)
	return tc
}

func (s Server) maxBytesMw(next http.Handler) http.Handler {
	return http.MaxBytesHandler(next, 65536)
}

func (s Server) loggingMw(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		traceID := uuid.NewString()
		s.Logger.Debugf("loggingMw: New incoming request %s %s from %s, UA: %s, Host: %#v, TraceID: %s",
			r.Method, r.URL.Path, r.RemoteAddr, r.UserAgent(), r.Host, traceID)

		defer func() {
			if re := recover(); re != nil {
				s.Logger.Errorf("loggingMw: Handler crashed, err: %v, TraceID: %s, stack trace:\n%s", re, traceID, debug.Stack())
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r.WithContext(setTraceContext(r.Context(), traceContext{traceID: traceID})))

		s.Logger.Tracef("loggingMw: Incoming request %s %s took %dms, TraceID: %s",
			r.Method, r.URL.Path, time.Since(start).Milliseconds(), traceID)
	})
}

// authGate wraps selected routes. A request without a well-formed
// "Bearer <token>" header is rejected before the verifier is called; every
// verifier failure collapses to the same 401 so callers learn nothing about
// why a token was refused. Verified claims ride the request context.
func (s Server) authGate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tid := getTraceContext(r.Context()).traceID

		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			s.Logger.Debugf("authGate: Missing or malformed Authorization header, TraceID: %s", tid)
			s.writeMessage(w, "unauthorized access", http.StatusUnauthorized)
			return
		}

		claims, err := s.Verifier.Verify(r.Context(), strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			s.Logger.Debugf("authGate: Failed to verify bearer token, err: %v, TraceID: %s", err, tid)
			s.writeMessage(w, "unauthorized access", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(setClaimsContext(r.Context(), claims)))
	}
}
