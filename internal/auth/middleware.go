package auth

import (
	"context"
	"log"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type ctxKey string

const principalKey ctxKey = "auth_principal"

var tracer = otel.Tracer("github.com/asysyifa-husada/clinic-service/auth")

// TokenVerifier validates a bearer token and returns its Principal.
type TokenVerifier interface {
	Verify(tokenString string) (*Principal, error)
}

// SessionStore reports the currently persisted session, if any. A token is
// only honored while the session record it was issued for still exists, so
// logout invalidates outstanding tokens immediately.
type SessionStore interface {
	CurrentUserID(ctx context.Context) (string, bool, error)
}

// MetricsRecorder interface for recording auth metrics
type MetricsRecorder interface {
	RecordAuthFailure(ctx context.Context, reason string)
}

// Middleware validates the bearer token, requires a matching persisted
// session, and injects the Principal into the request context.
func Middleware(ver TokenVerifier, sessions SessionStore) func(http.Handler) http.Handler {
	return MiddlewareWithMetrics(ver, sessions, nil)
}

// MiddlewareWithMetrics validates the token with metrics recording
func MiddlewareWithMetrics(ver TokenVerifier, sessions SessionStore, metrics MetricsRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ctx, span := tracer.Start(ctx, "auth.Middleware",
				trace.WithSpanKind(trace.SpanKindInternal),
			)
			defer span.End()

			fail := func(reason, message string) {
				span.SetStatus(codes.Error, message)
				span.SetAttributes(attribute.String("error.type", reason))
				if metrics != nil {
					metrics.RecordAuthFailure(ctx, reason)
				}
				http.Error(w, message, http.StatusUnauthorized)
			}

			authz := r.Header.Get("Authorization")
			if authz == "" {
				fail("missing_authorization", "missing authorization")
				return
			}

			parts := strings.SplitN(authz, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				fail("invalid_header_format", "invalid authorization header")
				return
			}

			pr, err := ver.Verify(parts[1])
			if err != nil {
				log.Printf("[ERROR] Token validation failed: %v", err)
				fail("invalid_token", "invalid token")
				return
			}

			sessionUserID, ok, err := sessions.CurrentUserID(ctx)
			if err != nil {
				log.Printf("[ERROR] Session lookup failed: %v", err)
				fail("session_lookup_failed", "session unavailable")
				return
			}
			if !ok || sessionUserID != pr.UserID {
				fail("no_active_session", "session expired")
				return
			}

			span.SetAttributes(
				attribute.String("user.id", pr.UserID),
				attribute.String("user.username", pr.Username),
				attribute.String("user.role", pr.Role),
			)
			span.SetStatus(codes.Ok, "authentication successful")

			ctx = context.WithValue(ctx, principalKey, pr)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromContext extracts Principal from context.
func FromContext(ctx context.Context) (*Principal, bool) {
	pr, ok := ctx.Value(principalKey).(*Principal)
	return pr, ok
}

// WithPrincipal returns a context carrying the given Principal, for tests
// and internal calls.
func WithPrincipal(ctx context.Context, pr *Principal) context.Context {
	return context.WithValue(ctx, principalKey, pr)
}
