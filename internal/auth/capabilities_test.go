package auth

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

// TestDefaultCapabilities_RoleLayering tests the built-in role hierarchy
func TestDefaultCapabilities_RoleLayering(t *testing.T) {
	caps := DefaultCapabilities()

	cases := []struct {
		role       string
		capability string
		want       bool
	}{
		{RoleUser, "patient:create", true},
		{RoleUser, "patient:search", true},
		{RoleUser, "patient:delete", false},
		{RoleUser, "user:create", false},
		{RoleAdmin, "patient:delete", true},
		{RoleAdmin, "settings:update", true},
		{RoleAdmin, "user:delete", false},
		{RoleSuperAdmin, "user:delete", true},
		{RoleSuperAdmin, "queue:update", true},
	}
	for _, tc := range cases {
		pr := &Principal{UserID: "u", Role: tc.role}
		if got := HasCapability(pr, tc.capability, caps); got != tc.want {
			t.Errorf("HasCapability(%s, %s) = %v, want %v", tc.role, tc.capability, got, tc.want)
		}
	}
}

// TestLoadCapabilities_File tests loading a roles file
func TestLoadCapabilities_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capabilities.yml")
	content := []byte("roles:\n  admin:\n    - patient:view\n  user:\n    - dashboard:view\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	caps, err := LoadCapabilities(path)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !HasCapability(&Principal{Role: "admin"}, "patient:view", caps) {
		t.Error("Expected admin to have patient:view")
	}
	if HasCapability(&Principal{Role: "user"}, "patient:view", caps) {
		t.Error("Expected user not to have patient:view")
	}
}

// TestLoadCapabilities_MissingFile tests the built-in fallback
func TestLoadCapabilities_MissingFile(t *testing.T) {
	caps, err := LoadCapabilities(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(caps[RoleSuperAdmin]) == 0 {
		t.Error("Expected default capabilities for superadmin")
	}
}

// TestRequireCapability_Forbidden tests the middleware denies a missing capability
func TestRequireCapability_Forbidden(t *testing.T) {
	caps := DefaultCapabilities()
	handler := RequireCapability("user:delete", caps)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Expected next handler not to be called")
	}))

	req := httptest.NewRequest(http.MethodDelete, "/users/1", nil)
	req = req.WithContext(WithPrincipal(req.Context(), &Principal{UserID: "u", Role: RoleUser}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", rec.Code)
	}
}

// TestRequireCapability_Allowed tests the middleware passes a granted capability
func TestRequireCapability_Allowed(t *testing.T) {
	caps := DefaultCapabilities()
	called := false
	handler := RequireCapability("patient:view", caps)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/patients", nil)
	req = req.WithContext(WithPrincipal(req.Context(), &Principal{UserID: "u", Role: RoleUser}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || !called {
		t.Errorf("Expected handler called with 200, got %d called=%v", rec.Code, called)
	}
}

// TestRequireCapability_Unauthenticated tests the middleware without a principal
func TestRequireCapability_Unauthenticated(t *testing.T) {
	handler := RequireCapability("patient:view", DefaultCapabilities())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Expected next handler not to be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/patients", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}
