package api

import (
	"net/http"
	"testing"

	"shop_system/internal/domain"
)

func TestSignUpAndDuplicateEmail(t *testing.T) {
	body := map[string]string{
		"name":     "First User",
		"email":    "dup@example.com",
		"password": "SecurePass123",
	}

	// First registration succeeds and returns a token
	w, env := doJSON(t, http.MethodPost, "/api/v1/auth/sign-up", body, "")
	expectStatus(t, w, http.StatusCreated)
	if !env.Success {
		t.Fatalf("expected success envelope, got %+v", env)
	}
	var resp AuthResponse
	decodeData(t, env, &resp)
	if resp.Token == "" {
		t.Error("expected a token on registration")
	}

	// Same email again is rejected
	w, env = doJSON(t, http.MethodPost, "/api/v1/auth/sign-up", body, "")
	expectStatus(t, w, http.StatusBadRequest)
	if env.Message != "User already exists" {
		t.Errorf("expected %q, got %q", "User already exists", env.Message)
	}

	// New accounts get the regular user role
	var user domain.User
	if err := testDB.Where("email = ?", "dup@example.com").First(&user).Error; err != nil {
		t.Fatalf("registered user not found: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Errorf("expected role %q, got %q", domain.RoleUser, user.Role)
	}
}

func TestSignUpValidation(t *testing.T) {
	// Bad email and short password produce the field-level envelope
	body := map[string]string{"name": "Bad", "email": "not-an-email", "password": "123"}
	w, env := doJSON(t, http.MethodPost, "/api/v1/auth/sign-up", body, "")
	expectStatus(t, w, http.StatusBadRequest)
	if env.Message != "Validation errors" {
		t.Errorf("expected validation envelope, got %q", env.Message)
	}
	if len(env.Errors) != 2 {
		t.Errorf("expected 2 field errors, got %d: %+v", len(env.Errors), env.Errors)
	}
}

func TestSignInInvalidCredentialsIsUniform(t *testing.T) {
	createTestUser(t, "signin@example.com", domain.RoleUser)

	// Wrong password
	w, envWrongPass := doJSON(t, http.MethodPost, "/api/v1/auth/sign-in",
		map[string]string{"email": "signin@example.com", "password": "WrongPass999"}, "")
	expectStatus(t, w, http.StatusUnauthorized)

	// Unknown email
	w, envUnknown := doJSON(t, http.MethodPost, "/api/v1/auth/sign-in",
		map[string]string{"email": "nobody@example.com", "password": "SecurePass123"}, "")
	expectStatus(t, w, http.StatusUnauthorized)

	// Both failure modes must be indistinguishable
	if envWrongPass.Message != "Invalid credentials" || envUnknown.Message != envWrongPass.Message {
		t.Errorf("credential failures leak which part failed: %q vs %q",
			envWrongPass.Message, envUnknown.Message)
	}
}

func TestSignInSuccess(t *testing.T) {
	createTestUser(t, "login-ok@example.com", domain.RoleUser)

	w, env := doJSON(t, http.MethodPost, "/api/v1/auth/sign-in",
		map[string]string{"email": "login-ok@example.com", "password": "SecurePass123"}, "")
	expectStatus(t, w, http.StatusOK)
	if env.Message != "Login successful" {
		t.Errorf("expected %q, got %q", "Login successful", env.Message)
	}
	var resp AuthResponse
	decodeData(t, env, &resp)
	if resp.Token == "" {
		t.Error("expected a token on login")
	}

	// The issued token must be accepted by a protected route
	w, _ = doJSON(t, http.MethodGet, "/api/v1/cart", nil, resp.Token)
	expectStatus(t, w, http.StatusOK)
}

func TestProtectedRoutesRejectBadTokens(t *testing.T) {
	// Missing header
	w, env := doJSON(t, http.MethodGet, "/api/v1/cart", nil, "")
	expectStatus(t, w, http.StatusUnauthorized)
	if env.Message != "Unauthorized request" {
		t.Errorf("expected %q, got %q", "Unauthorized request", env.Message)
	}

	// Garbage token
	w, env = doJSON(t, http.MethodGet, "/api/v1/cart", nil, "not-a-jwt")
	expectStatus(t, w, http.StatusUnauthorized)
	if env.Message != "Invalid token" {
		t.Errorf("expected %q, got %q", "Invalid token", env.Message)
	}
}

func TestAdminRoutesRejectRegularUsers(t *testing.T) {
	_, userToken := createTestUser(t, "not-admin@example.com", domain.RoleUser)

	w, env := doJSON(t, http.MethodPost, "/api/v1/categories",
		map[string]string{"name": "Forbidden Category"}, userToken)
	expectStatus(t, w, http.StatusForbidden)
	if env.Message != "Access denied: Insufficient permissions" {
		t.Errorf("expected permission denial, got %q", env.Message)
	}
}
