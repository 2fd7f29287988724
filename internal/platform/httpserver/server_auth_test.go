package httpserver

import (
	"net/http"
	"testing"
	"time"
)

func TestRegisterReturnsPublicFieldsOnly(t *testing.T) {
	server, _ := newTestServer(t)

	rr := doJSON(t, server, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":           "a@x.com",
		"username":        "alice",
		"password":        "password1",
		"confirmPassword": "password1",
		"fullName":        "Alice",
		"userType":        "individual",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	var body map[string]any
	decodeBody(t, rr, &body)
	if body["email"] != "a@x.com" || body["userType"] != "individual" {
		t.Fatalf("unexpected body: %v", body)
	}
	for _, secret := range []string{"password", "passwordHash"} {
		if _, present := body[secret]; present {
			t.Fatalf("response must not carry %q", secret)
		}
	}
}

func TestRegisterAcceptsSingleCharacterUsername(t *testing.T) {
	server, _ := newTestServer(t)

	rr := doJSON(t, server, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":           "a@x.com",
		"username":        "a",
		"password":        "password1",
		"confirmPassword": "password1",
		"fullName":        "A",
		"userType":        "individual",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, server, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "a@x.com",
		"password": "password1",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("login failed: %d body=%s", rr.Code, rr.Body.String())
	}
	var cookie string
	for _, c := range rr.Result().Cookies() {
		if c.Name == sessionCookieName {
			cookie = c.Value
		}
	}
	if cookie == "" {
		t.Fatal("login response did not set a session cookie")
	}

	videos := doJSON(t, server, http.MethodGet, "/api/videos", cookie, nil)
	if videos.Code != http.StatusOK {
		t.Fatalf("expected 200 listing videos, got %d", videos.Code)
	}
	var list []map[string]any
	decodeBody(t, videos, &list)
	if len(list) != 0 {
		t.Fatalf("expected empty video list, got %d entries", len(list))
	}
}

func TestRegisterDuplicateEmailIs400(t *testing.T) {
	server, _ := newTestServer(t)
	registerAndLogin(t, server, "a@x.com", "alice", "individual")

	rr := doJSON(t, server, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":           "A@X.COM",
		"username":        "other",
		"password":        "password1",
		"confirmPassword": "password1",
		"fullName":        "Other",
		"userType":        "company",
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate email, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestLoginFailuresDoNotEnumerate(t *testing.T) {
	server, _ := newTestServer(t)
	registerAndLogin(t, server, "a@x.com", "alice", "individual")

	wrongPassword := doJSON(t, server, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "a@x.com",
		"password": "wrong-password",
	})
	unknownEmail := doJSON(t, server, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "nobody@x.com",
		"password": "password1",
	})

	if wrongPassword.Code != http.StatusUnauthorized || unknownEmail.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", wrongPassword.Code, unknownEmail.Code)
	}
	if wrongPassword.Body.String() != unknownEmail.Body.String() {
		t.Fatalf("login failure bodies differ: %s vs %s", wrongPassword.Body.String(), unknownEmail.Body.String())
	}
}

func TestMeRequiresSession(t *testing.T) {
	server, _ := newTestServer(t)

	if rr := doJSON(t, server, http.MethodGet, "/api/auth/me", "", nil); rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without cookie, got %d", rr.Code)
	}
	if rr := doJSON(t, server, http.MethodGet, "/api/auth/me", "bogus-token", nil); rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with unknown token, got %d", rr.Code)
	}

	cookie := registerAndLogin(t, server, "a@x.com", "alice", "individual")
	rr := doJSON(t, server, http.MethodGet, "/api/auth/me", cookie, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestAuthStatusReflectsSession(t *testing.T) {
	server, _ := newTestServer(t)

	rr := doJSON(t, server, http.MethodGet, "/api/auth/status", "", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", rr.Code)
	}

	cookie := registerAndLogin(t, server, "c@x.com", "corp", "company")
	rr = doJSON(t, server, http.MethodGet, "/api/auth/status", cookie, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var body struct {
		IsAuthenticated bool   `json:"isAuthenticated"`
		UserType        string `json:"userType"`
	}
	decodeBody(t, rr, &body)
	if !body.IsAuthenticated || body.UserType != "company" {
		t.Fatalf("unexpected status body: %+v", body)
	}
}

func TestSessionExpiresAfterTTL(t *testing.T) {
	server, clock := newTestServer(t)
	cookie := registerAndLogin(t, server, "a@x.com", "alice", "individual")

	clock.Advance(25 * time.Hour)
	rr := doJSON(t, server, http.MethodGet, "/api/auth/me", cookie, nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after session expiry, got %d", rr.Code)
	}
}

func TestLogoutDestroysSession(t *testing.T) {
	server, _ := newTestServer(t)
	cookie := registerAndLogin(t, server, "a@x.com", "alice", "individual")

	rr := doJSON(t, server, http.MethodPost, "/api/auth/logout", cookie, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("logout failed: %d", rr.Code)
	}

	rr = doJSON(t, server, http.MethodGet, "/api/auth/me", cookie, nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", rr.Code)
	}
}
