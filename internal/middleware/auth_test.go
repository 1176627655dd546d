package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/blogman/internal/model"
	"github.com/hitoshi/blogman/internal/session"
	"github.com/hitoshi/blogman/internal/token"
)

// --- モック定義 ---

type mockTokenVerifier struct {
	verifyFn func(tokenString string) (*token.Claims, error)
}

func (m *mockTokenVerifier) Verify(tokenString string) (*token.Claims, error) {
	if m.verifyFn != nil {
		return m.verifyFn(tokenString)
	}
	return nil, errors.New("not configured")
}

type mockRejectionRecorder struct {
	reasons []string
}

func (m *mockRejectionRecorder) RecordTokenRejected(reason string) {
	m.reasons = append(m.reasons, reason)
}

func decodeErrorBody(t *testing.T, w *httptest.ResponseRecorder) ErrorResponseBody {
	t.Helper()
	var body ErrorResponseBody
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	return body
}

// --- 認証ミドルウェア ---

func TestAuthMiddleware_ValidToken_InjectsClaims(t *testing.T) {
	verifier := &mockTokenVerifier{
		verifyFn: func(tokenString string) (*token.Claims, error) {
			if tokenString == "valid-token" {
				return &token.Claims{Email: "user@example.com"}, nil
			}
			return nil, token.ErrInvalidToken
		},
	}

	mw := NewAuthMiddleware(verifier, nil)

	var capturedEmail string
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := ClaimsFromContext(r.Context())
		if err != nil {
			t.Errorf("expected claims in context, got error: %v", err)
		}
		capturedEmail = claims.Email
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/blog/abc", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "valid-token"})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if capturedEmail != "user@example.com" {
		t.Errorf("email = %q, want %q", capturedEmail, "user@example.com")
	}
}

func TestAuthMiddleware_NoCookie_Returns401WithoutCallingHandler(t *testing.T) {
	verifier := &mockTokenVerifier{
		verifyFn: func(tokenString string) (*token.Claims, error) {
			t.Fatal("verifier should not be called without a cookie")
			return nil, nil
		},
	}
	recorder := &mockRejectionRecorder{}
	mw := NewAuthMiddleware(verifier, recorder)

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/blog/abc", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	body := decodeErrorBody(t, w)
	if body.Code != model.ErrCodeUnauthorized {
		t.Errorf("error code = %q, want %q", body.Code, model.ErrCodeUnauthorized)
	}
	if len(recorder.reasons) != 1 || recorder.reasons[0] != "missing_credential" {
		t.Errorf("recorded reasons = %v, want [missing_credential]", recorder.reasons)
	}
}

func TestAuthMiddleware_EmptyCookie_Returns401(t *testing.T) {
	mw := NewAuthMiddleware(&mockTokenVerifier{}, nil)

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/blog/abc", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: ""})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddleware_InvalidToken_Returns401(t *testing.T) {
	verifier := &mockTokenVerifier{
		verifyFn: func(tokenString string) (*token.Claims, error) {
			return nil, token.ErrInvalidToken
		},
	}
	recorder := &mockRejectionRecorder{}
	mw := NewAuthMiddleware(verifier, recorder)

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/blog/abc", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "bad-token"})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	if len(recorder.reasons) != 1 || recorder.reasons[0] != "verify_failed" {
		t.Errorf("recorded reasons = %v, want [verify_failed]", recorder.reasons)
	}
}

func TestAuthMiddleware_ExpiredToken_Returns401(t *testing.T) {
	// HTTP境界では期限切れも401に集約されること
	verifier := &mockTokenVerifier{
		verifyFn: func(tokenString string) (*token.Claims, error) {
			return nil, token.ErrExpiredToken
		},
	}
	mw := NewAuthMiddleware(verifier, nil)

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/blog/abc", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "expired-token"})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

// --- クレームコンテキスト ---

func TestClaimsFromContext_Missing_ReturnsError(t *testing.T) {
	_, err := ClaimsFromContext(context.Background())
	if err == nil {
		t.Error("expected error for context without claims")
	}
}

func TestContextWithClaims_RoundTrip(t *testing.T) {
	claims := &token.Claims{Email: "user@example.com"}
	ctx := ContextWithClaims(context.Background(), claims)

	got, err := ClaimsFromContext(ctx)
	if err != nil {
		t.Fatalf("ClaimsFromContext failed: %v", err)
	}
	if got.Email != "user@example.com" {
		t.Errorf("Email = %q, want %q", got.Email, "user@example.com")
	}
}

// --- 所有者認可 ---

func TestAuthorizeOwner_ExactMatchOnly(t *testing.T) {
	tests := []struct {
		name      string
		identity  string
		requested string
		want      bool
	}{
		{"完全一致は許可", "user@example.com", "user@example.com", true},
		{"別ユーザーは拒否", "user@example.com", "other@example.com", false},
		{"大文字小文字の違いは拒否", "user@example.com", "User@example.com", false},
		{"前後の空白は拒否", "user@example.com", " user@example.com", false},
		{"空の要求は拒否", "user@example.com", "", false},
		{"両方空でも一致は一致", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AuthorizeOwner(tt.identity, tt.requested); got != tt.want {
				t.Errorf("AuthorizeOwner(%q, %q) = %v, want %v", tt.identity, tt.requested, got, tt.want)
			}
		})
	}
}

func TestOwnerMiddleware_MatchingOwner_CallsHandler(t *testing.T) {
	mw := NewOwnerMiddleware(QueryOwner("email"))

	called := false
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/blog/abc?email=user@example.com", nil)
	ctx := ContextWithClaims(req.Context(), &token.Claims{Email: "user@example.com"})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req.WithContext(ctx))

	if !called {
		t.Error("handler should be called for matching owner")
	}
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestOwnerMiddleware_OwnerMismatch_Returns403WithoutCallingHandler(t *testing.T) {
	mw := NewOwnerMiddleware(QueryOwner("email"))

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called for owner mismatch")
	}))

	req := httptest.NewRequest(http.MethodGet, "/blog/abc?email=other@example.com", nil)
	ctx := ContextWithClaims(req.Context(), &token.Claims{Email: "user@example.com"})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req.WithContext(ctx))

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
	body := decodeErrorBody(t, w)
	if body.Code != model.ErrCodeForbiddenOwner {
		t.Errorf("error code = %q, want %q", body.Code, model.ErrCodeForbiddenOwner)
	}
}

func TestOwnerMiddleware_NoClaims_Returns401(t *testing.T) {
	// 認証ミドルウェアを経由していないリクエストは403ではなく401
	mw := NewOwnerMiddleware(QueryOwner("email"))

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called without claims")
	}))

	req := httptest.NewRequest(http.MethodGet, "/blog/abc?email=user@example.com", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

// --- 所有者抽出 ---

func TestPathOwner_ExtractsURLParam(t *testing.T) {
	extract := PathOwner("email")

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("email", "user@example.com")

	req := httptest.NewRequest(http.MethodGet, "/userWishlist/user@example.com", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	if got := extract(req); got != "user@example.com" {
		t.Errorf("extracted owner = %q, want %q", got, "user@example.com")
	}
}

func TestQueryOwner_ExtractsQueryParam(t *testing.T) {
	extract := QueryOwner("email")

	req := httptest.NewRequest(http.MethodGet, "/blog/abc?email=user@example.com", nil)

	if got := extract(req); got != "user@example.com" {
		t.Errorf("extracted owner = %q, want %q", got, "user@example.com")
	}
}

func TestQueryOwner_MissingParam_ReturnsEmpty(t *testing.T) {
	extract := QueryOwner("email")

	req := httptest.NewRequest(http.MethodGet, "/blog/abc", nil)

	if got := extract(req); got != "" {
		t.Errorf("extracted owner = %q, want empty", got)
	}
}
