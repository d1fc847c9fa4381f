package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/play2learn/backend/internal/middleware"
	"github.com/play2learn/backend/internal/models"
)

func TestIssuedTokenAcceptedByMiddleware(t *testing.T) {
	schoolID := int64(7)
	user := models.User{
		ID:       42,
		SchoolID: &schoolID,
		Role:     models.RoleStudent,
	}

	token, err := generateToken(user)
	if err != nil {
		t.Fatalf("generateToken returned error: %v", err)
	}

	var gotID int64
	var gotRole string
	var gotSchool *int64
	handler := middleware.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = middleware.UserID(r)
		gotRole, _ = middleware.UserRole(r)
		gotSchool = middleware.SchoolID(r)
	}))

	req := httptest.NewRequest("GET", "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("issued token rejected: status = %d, want 200", rec.Code)
	}
	if gotID != user.ID {
		t.Errorf("user id = %d, want %d", gotID, user.ID)
	}
	if gotRole != string(models.RoleStudent) {
		t.Errorf("role = %q, want %q", gotRole, models.RoleStudent)
	}
	if gotSchool == nil || *gotSchool != schoolID {
		t.Errorf("school id = %v, want %d", gotSchool, schoolID)
	}
}

func TestIssuedTokenWithoutSchool(t *testing.T) {
	token, err := generateToken(models.User{ID: 1, Role: models.RoleParent})
	if err != nil {
		t.Fatalf("generateToken returned error: %v", err)
	}

	var gotSchool *int64
	handler := middleware.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSchool = middleware.SchoolID(r)
	}))

	req := httptest.NewRequest("GET", "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("issued token rejected: status = %d, want 200", rec.Code)
	}
	if gotSchool != nil {
		t.Errorf("school id = %v, want nil when the user has no school", gotSchool)
	}
}
