package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"

	sharedauth "healthrisk-backend/internal/shared/auth"
	"healthrisk-backend/internal/users"
)

func newTestGoogle(t *testing.T, provider *httptest.Server) (*GoogleService, *users.Service, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("ENV", "dev")

	userSvc := users.NewService(users.NewMemoryRepo())
	userSvc.HashCost = bcrypt.MinCost
	svc := NewGoogleService("client-id", "client-secret", "http://localhost:8000/api/v1/auth/google/callback", "http://localhost:5173/auth", userSvc)
	if provider != nil {
		svc.oauthConfig.Endpoint = oauth2.Endpoint{
			AuthURL:  provider.URL + "/auth",
			TokenURL: provider.URL + "/token",
		}
		svc.userInfoURL = provider.URL + "/userinfo"
	}

	router := gin.New()
	svc.RegisterRoutes(router.Group("/api/v1"))
	return svc, userSvc, router
}

func fakeProvider(t *testing.T, verified bool) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "provider-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer provider-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":             "g-123",
			"email":          "Ada@Example.com",
			"verified_email": verified,
			"name":           "Ada",
			"picture":        "https://example.com/ada.png",
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestStartRedirectsWithState(t *testing.T) {
	svc, _, router := newTestGoogle(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/start", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", resp.Code)
	}
	loc, err := url.Parse(resp.Header().Get("Location"))
	if err != nil {
		t.Fatalf("parse location: %v", err)
	}
	state := loc.Query().Get("state")
	if state == "" {
		t.Fatalf("expected state in redirect")
	}
	if !svc.stateStore.consume(state) {
		t.Fatalf("expected state to be stored")
	}
}

func TestStartNotConfigured(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := NewGoogleService("", "", "", "", nil)
	router := gin.New()
	svc.RegisterRoutes(router.Group("/api/v1"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/start", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
}

func TestCallbackUpsertsUserAndRedirectsWithToken(t *testing.T) {
	provider := fakeProvider(t, true)
	svc, userSvc, router := newTestGoogle(t, provider)
	svc.stateStore.put("state-1", time.Now().Add(time.Minute))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/callback?state=state-1&code=abc", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d: %s", resp.Code, resp.Body.String())
	}
	loc, err := url.Parse(resp.Header().Get("Location"))
	if err != nil {
		t.Fatalf("parse location: %v", err)
	}
	if !strings.HasPrefix(loc.String(), "http://localhost:5173/auth") {
		t.Fatalf("unexpected redirect %s", loc)
	}
	claims, err := sharedauth.VerifyJWT(loc.Query().Get("token"))
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	user, err := userSvc.GetByID(req.Context(), claims.Sub)
	if err != nil {
		t.Fatalf("expected stored user: %v", err)
	}
	if user.Email != "ada@example.com" || user.Provider != users.ProviderGoogle {
		t.Fatalf("unexpected user %+v", user)
	}
}

func TestCallbackRejectsUnverifiedEmail(t *testing.T) {
	provider := fakeProvider(t, false)
	svc, userSvc, router := newTestGoogle(t, provider)

	victim, err := userSvc.Signup(context.Background(), "Ada Lovelace", "ada@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	svc.stateStore.put("state-2", time.Now().Add(time.Minute))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/callback?state=state-2&code=abc", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", resp.Code, resp.Body.String())
	}
	if resp.Header().Get("Location") != "" {
		t.Fatalf("expected no redirect, got %s", resp.Header().Get("Location"))
	}
	stored, err := userSvc.GetByID(context.Background(), victim.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if stored.Name != "Ada Lovelace" || stored.Provider != users.ProviderPassword {
		t.Fatalf("expected account untouched, got %+v", stored)
	}
}

func TestCallbackRejectsUnknownState(t *testing.T) {
	_, _, router := newTestGoogle(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/callback?state=nope&code=abc", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestStateStoreExpires(t *testing.T) {
	store := newStateStore()
	store.put("old", time.Now().Add(-time.Second))
	if store.consume("old") {
		t.Fatalf("expected expired state to be rejected")
	}
	store.put("fresh", time.Now().Add(time.Minute))
	if !store.consume("fresh") {
		t.Fatalf("expected fresh state to be accepted")
	}
	if store.consume("fresh") {
		t.Fatalf("expected state to be single-use")
	}
}

func TestAppendToken(t *testing.T) {
	got, err := appendToken("http://localhost:5173/auth?next=%2Fhistory", "tok")
	if err != nil {
		t.Fatalf("appendToken: %v", err)
	}
	u, _ := url.Parse(got)
	if u.Query().Get("token") != "tok" || u.Query().Get("next") != "/history" {
		t.Fatalf("unexpected url %s", got)
	}
	if _, err := appendToken("", "tok"); err == nil {
		t.Fatalf("expected error for empty redirect")
	}
}
