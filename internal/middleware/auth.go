// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/blogman/internal/model"
	"github.com/hitoshi/blogman/internal/session"
	"github.com/hitoshi/blogman/internal/token"
)

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// claimsContextKey はリクエストコンテキストに検証済みクレームを格納するためのキー。
var claimsContextKey = contextKey("claims")

// TokenVerifier はトークン検証に必要なインターフェース。
// token.Serviceの部分集合として定義する。
type TokenVerifier interface {
	Verify(tokenString string) (*token.Claims, error)
}

// AuthRejectionRecorder は認証拒否のメトリクス記録インターフェース。
// nilを渡した場合は記録をスキップする。
type AuthRejectionRecorder interface {
	RecordTokenRejected(reason string)
}

// NewAuthMiddleware はトークンCookieを検証するミドルウェアを返す。
// Cookieが存在しない、または検証に失敗したリクエストには401を返し、
// 後続のハンドラーおよびデータストアには一切到達させない。
// 検証に成功した場合はクレームをリクエストコンテキストに注入する。
func NewAuthMiddleware(verifier TokenVerifier, recorder AuthRejectionRecorder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Cookieからトークンを取得
			cookie, err := r.Cookie(session.CookieName)
			if err != nil || cookie.Value == "" {
				if recorder != nil {
					recorder.RecordTokenRejected("missing_credential")
				}
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
				return
			}

			// 2. トークンの署名と有効期限を検証
			claims, err := verifier.Verify(cookie.Value)
			if err != nil {
				if recorder != nil {
					recorder.RecordTokenRejected("verify_failed")
				}
				slog.Warn("token verification failed",
					slog.String("error", err.Error()),
				)
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
				return
			}

			// 3. 検証済みクレームをコンテキストに注入
			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext はリクエストコンテキストから検証済みクレームを取得する。
// 認証ミドルウェアを通過したリクエストでのみ有効。
func ClaimsFromContext(ctx context.Context) (*token.Claims, error) {
	claims, ok := ctx.Value(claimsContextKey).(*token.Claims)
	if !ok || claims == nil {
		return nil, fmt.Errorf("claims not found in context")
	}
	return claims, nil
}

// ContextWithClaims はコンテキストにクレームを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithClaims(ctx context.Context, claims *token.Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// OwnerExtractor はリクエストから要求対象リソースの所有者識別子を取り出す関数。
// 所有者スコープのルートはルーティング登録時に抽出方法を明示的に宣言する。
type OwnerExtractor func(r *http.Request) string

// PathOwner はパスパラメータから所有者識別子を抽出するOwnerExtractorを返す。
func PathOwner(param string) OwnerExtractor {
	return func(r *http.Request) string {
		return chi.URLParam(r, param)
	}
}

// QueryOwner はクエリパラメータから所有者識別子を抽出するOwnerExtractorを返す。
func QueryOwner(key string) OwnerExtractor {
	return func(r *http.Request) string {
		return r.URL.Query().Get(key)
	}
}

// AuthorizeOwner は検証済みアイデンティティと要求された所有者の一致を判定する。
// 厳密な文字列一致のみを許可とする。大文字小文字の同一視や正規化は
// 行わない（意図的な厳格ポリシー）。
func AuthorizeOwner(identityEmail, requestedOwner string) bool {
	return identityEmail == requestedOwner
}

// NewOwnerMiddleware は所有者スコープのルートに適用する認可ミドルウェアを返す。
// 認証ミドルウェアの後段に配置すること。
// 検証済みアイデンティティと抽出した所有者が一致しない場合は403を返し、
// ハンドラーおよびデータストアには到達させない（401とは明確に区別する）。
func NewOwnerMiddleware(extract OwnerExtractor) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := ClaimsFromContext(r.Context())
			if err != nil {
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
				return
			}

			requestedOwner := extract(r)
			if !AuthorizeOwner(claims.Email, requestedOwner) {
				slog.Warn("owner mismatch",
					slog.String("identity", claims.Email),
					slog.String("requested_owner", requestedOwner),
					slog.String("path", r.URL.Path),
				)
				WriteErrorResponse(w, http.StatusForbidden, model.NewForbiddenOwnerError())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
