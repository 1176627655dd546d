// Package session はトークンCookieのライフサイクル（付与・破棄）を提供する。
//
// トークンはHTTP Only Cookieとしてクライアントに渡す。
// SameSite=Noneでクロスサイト送信を許可するため、Secure属性は常に付与する。
package session

import (
	"net/http"
	"time"
)

// CookieName はトークンを運ぶCookieの名前。
const CookieName = "token"

// CookieOptions はCookie発行時の環境依存の属性。
type CookieOptions struct {
	Domain string
}

// Attach は発行済みトークンをレスポンスCookieとして設定する。
// MaxAgeはトークンの有効期限に合わせる。
func Attach(w http.ResponseWriter, tokenString string, expiresAt time.Time, opts CookieOptions) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge < 0 {
		maxAge = 0
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    tokenString,
		Path:     "/",
		Domain:   opts.Domain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

// Clear はトークンCookieを即時失効させる。
// Cookieが存在しないクライアントに対しても冪等に動作する。
func Clear(w http.ResponseWriter, opts CookieOptions) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Domain:   opts.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}
