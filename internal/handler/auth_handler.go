// Package handler はHTTPハンドラーを提供する。
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/hitoshi/blogman/internal/middleware"
	"github.com/hitoshi/blogman/internal/model"
	"github.com/hitoshi/blogman/internal/session"
)

// TokenIssuer は認証ハンドラーが必要とするトークン発行インターフェース。
// token.Serviceの部分集合として定義する。
type TokenIssuer interface {
	Issue(email string) (string, time.Time, error)
}

// TokenIssueRecorder はトークン発行のメトリクス記録インターフェース。
// nilを渡した場合は記録をスキップする。
type TokenIssueRecorder interface {
	RecordTokenIssued()
}

// AuthHandlerConfig は認証ハンドラーの設定。
type AuthHandlerConfig struct {
	CookieDomain string
}

// AuthHandler はトークン発行・セッション破棄のHTTPハンドラー。
type AuthHandler struct {
	issuer   TokenIssuer
	recorder TokenIssueRecorder
	config   AuthHandlerConfig
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(issuer TokenIssuer, recorder TokenIssueRecorder, config AuthHandlerConfig) *AuthHandler {
	return &AuthHandler{
		issuer:   issuer,
		recorder: recorder,
		config:   config,
	}
}

// loginRequest はトークン発行リクエストのボディ。
// 主体識別子のemailを必須とする。
type loginRequest struct {
	Email string `json:"email"`
}

// successResponse は発行・破棄の成功レスポンス。
type successResponse struct {
	Success bool `json:"success"`
}

// Login はログイン主体に対するトークンを発行し、Cookieとして設定する。
// POST /jwt
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidRequestError("リクエストボディの解析に失敗しました"))
		return
	}
	if req.Email == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidRequestError("emailは必須です"))
		return
	}

	tokenString, expiresAt, err := h.issuer.Issue(req.Email)
	if err != nil {
		slog.Error("failed to issue token", slog.String("error", err.Error()))
		middleware.WriteInternalServerError(w)
		return
	}

	if h.recorder != nil {
		h.recorder.RecordTokenIssued()
	}
	slog.Info("token issued", slog.String("email", req.Email))

	session.Attach(w, tokenString, expiresAt, session.CookieOptions{
		Domain: h.config.CookieDomain,
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(successResponse{Success: true})
}

// Logout はトークンCookieを破棄する。
// サーバー側に失効リストは持たないため、Cookieのクリアのみ行う。
// Cookieが存在しないクライアントに対しても冪等に成功を返す。
// POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session.Clear(w, session.CookieOptions{
		Domain: h.config.CookieDomain,
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(successResponse{Success: true})
}
