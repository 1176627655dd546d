package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, blog, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeForbiddenOwner   = "FORBIDDEN_OWNER"
	ErrCodeBlogNotFound     = "BLOG_NOT_FOUND"
	ErrCodeWishlistNotFound = "WISHLIST_NOT_FOUND"
	ErrCodeInvalidRequest   = "INVALID_REQUEST"
	ErrCodeInvalidID        = "INVALID_ID"
	ErrCodeInvalidImageURL  = "INVALID_IMAGE_URL"
	ErrCodeInternal         = "INTERNAL_ERROR"
)

// NewUnauthorizedError は認証エラーを生成する。
// クレデンシャル欠如・署名不正・期限切れのいずれも境界では同一コードに集約する。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "認証が必要です。",
		Category: "auth",
		Action:   "ログインし直してください。",
	}
}

// NewForbiddenOwnerError は所有者不一致エラーを生成する。
// 認証済みだがリソース所有者と一致しない場合に使用する（401とは区別する）。
func NewForbiddenOwnerError() *APIError {
	return &APIError{
		Code:     ErrCodeForbiddenOwner,
		Message:  "このリソースへのアクセス権限がありません。",
		Category: "auth",
		Action:   "自分のアカウントのリソースのみアクセスできます。",
	}
}

// NewBlogNotFoundError はブログ未検出エラーを生成する。
func NewBlogNotFoundError(blogID string) *APIError {
	return &APIError{
		Code:     ErrCodeBlogNotFound,
		Message:  fmt.Sprintf("指定されたブログが見つかりません: %s", blogID),
		Category: "blog",
		Action:   "ブログIDを確認してください。",
	}
}

// NewWishlistNotFoundError はウィッシュリストエントリ未検出エラーを生成する。
func NewWishlistNotFoundError(entryID string) *APIError {
	return &APIError{
		Code:     ErrCodeWishlistNotFound,
		Message:  fmt.Sprintf("指定されたウィッシュリストエントリが見つかりません: %s", entryID),
		Category: "blog",
		Action:   "エントリIDを確認してください。",
	}
}

// NewInvalidRequestError はリクエスト形式エラーを生成する。
func NewInvalidRequestError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRequest,
		Message:  fmt.Sprintf("無効なリクエストです: %s", reason),
		Category: "validation",
		Action:   "リクエスト内容を確認してください。",
	}
}

// NewInvalidIDError はドキュメントIDの形式エラーを生成する。
func NewInvalidIDError(id string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidID,
		Message:  fmt.Sprintf("無効なIDです: %s", id),
		Category: "validation",
		Action:   "24桁の16進数形式のIDを指定してください。",
	}
}

// NewInvalidImageURLError は画像URLの検証エラーを生成する。
func NewInvalidImageURLError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidImageURL,
		Message:  fmt.Sprintf("無効な画像URLです: %s", reason),
		Category: "validation",
		Action:   "https:// で始まる公開URLを指定してください。",
	}
}
