package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/blogman/internal/middleware"
	"github.com/hitoshi/blogman/internal/model"
	"github.com/hitoshi/blogman/internal/repository"
)

// WishlistServiceInterface はウィッシュリストハンドラーが必要とするサービスインターフェース。
type WishlistServiceInterface interface {
	ListByOwner(ctx context.Context, email string) ([]model.WishlistEntry, error)
	Add(ctx context.Context, entry *model.WishlistEntry) (*repository.InsertResult, error)
	// Remove は検証済みアイデンティティとエントリ所有者の一致を確認してから削除する。
	Remove(ctx context.Context, identityEmail, id string) (int64, error)
}

// WishlistHandler はウィッシュリストのHTTPハンドラー。
type WishlistHandler struct {
	service WishlistServiceInterface
}

// NewWishlistHandler はWishlistHandlerを生成する。
func NewWishlistHandler(service WishlistServiceInterface) *WishlistHandler {
	return &WishlistHandler{service: service}
}

// deleteResponse は削除操作の結果レスポンス。
type deleteResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}

// ListUserWishlist は所有者のウィッシュリスト一覧を取得する。
// 認可ゲート（トークン検証＋パスemailの所有者一致）の後段で呼ばれるため、
// ここに到達した時点でアクセスは許可済み。
// GET /userWishlist/{email}
func (h *WishlistHandler) ListUserWishlist(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	entries, err := h.service.ListByOwner(r.Context(), email)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

// AddWishlist はウィッシュリストエントリを作成する。
// POST /wishlist
func (h *WishlistHandler) AddWishlist(w http.ResponseWriter, r *http.Request) {
	var entry model.WishlistEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidRequestError("リクエストボディの解析に失敗しました"))
		return
	}

	result, err := h.service.Add(r.Context(), &entry)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(result)
}

// RemoveWishlist は指定IDのエントリを削除する。
// 所有者はパスに現れないため、トークン検証ゲートの後段で
// サービス層がエントリの所有者と検証済みアイデンティティの一致を確認する。
// DELETE /wishlist/{id}
func (h *WishlistHandler) RemoveWishlist(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ClaimsFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	id := chi.URLParam(r, "id")

	deleted, err := h.service.Remove(r.Context(), claims.Email, id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(deleteResponse{DeletedCount: deleted})
}
