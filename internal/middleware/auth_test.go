package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(JWTSecret)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"user_id":   int64(42),
		"role":      "student",
		"school_id": int64(7),
		"exp":       time.Now().Add(time.Hour).Unix(),
	})

	var gotID int64
	var gotRole string
	var gotSchool *int64
	handler := AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = UserID(r)
		gotRole, _ = UserRole(r)
		gotSchool = SchoolID(r)
	}))

	req := httptest.NewRequest("GET", "/api/v1/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotID != 42 {
		t.Errorf("user id = %d, want 42", gotID)
	}
	if gotRole != "student" {
		t.Errorf("role = %q, want student", gotRole)
	}
	if gotSchool == nil || *gotSchool != 7 {
		t.Errorf("school id = %v, want 7", gotSchool)
	}
}

func TestAuthMiddlewareNoSchoolClaim(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"user_id": int64(1),
		"role":    "platform_admin",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	var gotSchool *int64
	handler := AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSchool = SchoolID(r)
	}))

	req := httptest.NewRequest("GET", "/api/v1/admin/schools", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if gotSchool != nil {
		t.Errorf("school id = %v, want nil for platform accounts", gotSchool)
	}
}

func TestAuthMiddlewareRejects(t *testing.T) {
	expired := signToken(t, jwt.MapClaims{
		"user_id": int64(1),
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not a bearer token", "Basic abc123"},
		{"garbage token", "Bearer not-a-jwt"},
		{"expired token", "Bearer " + expired},
	}
	for _, tt := range tests {
		called := false
		handler := AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))

		req := httptest.NewRequest("GET", "/api/v1/profile", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", tt.name, rec.Code)
		}
		if called {
			t.Errorf("%s: inner handler was called", tt.name)
		}
	}
}

func TestRequireRole(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"user_id": int64(9),
		"role":    "teacher",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	allowed := AuthMiddleware(RequireRole("teacher", "school_admin")(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {})))
	denied := AuthMiddleware(RequireRole("platform_admin")(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {})))

	req := httptest.NewRequest("GET", "/api/v1/dashboard/school", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	allowed.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("allowed role: status = %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	denied.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("denied role: status = %d, want 403", rec.Code)
	}
}
