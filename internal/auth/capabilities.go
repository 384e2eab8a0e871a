package auth

import (
	"net/http"
	"os"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/yaml.v3"
)

// Role names as stored on user records.
const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
	RoleUser       = "user"
)

// Capabilities maps role -> []capability
type Capabilities map[string][]string

type capabilitiesFile struct {
	Roles map[string][]string `yaml:"roles"`
}

// LoadCapabilities loads a capabilities.yml file and returns a
// role->capabilities map. A missing file falls back to the built-in defaults
// so the service runs standalone.
func LoadCapabilities(path string) (Capabilities, error) {
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultCapabilities(), nil
	}
	if err != nil {
		return nil, err
	}
	var cf capabilitiesFile
	if err := yaml.Unmarshal(b, &cf); err != nil {
		return nil, err
	}
	return Capabilities(cf.Roles), nil
}

// DefaultCapabilities mirrors the role-gated screens of the clinic: regular
// users run the front desk, admins additionally manage the clinic profile,
// and superadmin manages accounts.
func DefaultCapabilities() Capabilities {
	frontDesk := []string{
		"dashboard:view",
		"patient:create", "patient:view", "patient:update", "patient:search",
		"medicalrecord:create", "medicalrecord:view",
		"schedule:create", "schedule:view", "schedule:update", "schedule:delete",
		"queue:create", "queue:view", "queue:update",
		"examination:create", "examination:view",
	}
	admin := append([]string{
		"patient:delete",
		"settings:view", "settings:update",
	}, frontDesk...)
	superadmin := append([]string{
		"user:create", "user:view", "user:delete",
	}, admin...)
	return Capabilities{
		RoleSuperAdmin: superadmin,
		RoleAdmin:      admin,
		RoleUser:       frontDesk,
	}
}

// CapabilitiesFor returns the capability set for a role.
func CapabilitiesFor(role string, caps Capabilities) []string {
	return caps[role]
}

// HasCapability reports whether the principal's role grants the capability.
func HasCapability(pr *Principal, capability string, caps Capabilities) bool {
	for _, c := range caps[pr.Role] {
		if c == capability {
			return true
		}
	}
	return false
}

// RequireCapability returns middleware that ensures the principal's role
// grants the capability.
func RequireCapability(capability string, caps Capabilities) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			start := time.Now()
			ctx, span := tracer.Start(ctx, "auth.RequireCapability",
				trace.WithSpanKind(trace.SpanKindInternal),
				trace.WithAttributes(attribute.String("capability.required", capability)),
			)
			defer span.End()

			pr, ok := FromContext(ctx)
			if !ok {
				span.SetStatus(codes.Error, "unauthenticated")
				http.Error(w, "unauthenticated", http.StatusUnauthorized)
				return
			}

			allowed := HasCapability(pr, capability, caps)
			span.SetAttributes(
				attribute.Bool("capability.allowed", allowed),
				attribute.String("user.id", pr.UserID),
				attribute.String("user.role", pr.Role),
				attribute.Float64("capability.check_ms", float64(time.Since(start).Milliseconds())),
			)

			if !allowed {
				span.SetStatus(codes.Error, "forbidden")
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			span.SetStatus(codes.Ok, "capability granted")
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
