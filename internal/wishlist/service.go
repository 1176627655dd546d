// Package wishlist はユーザーごとのウィッシュリストに関するビジネスロジックを提供する。
package wishlist

import (
	"context"
	"log/slog"

	"github.com/hitoshi/blogman/internal/model"
	"github.com/hitoshi/blogman/internal/repository"
)

// Service はウィッシュリストの操作を提供する。
type Service struct {
	repo repository.WishlistRepository
}

// NewService はServiceを生成する。
func NewService(repo repository.WishlistRepository) *Service {
	return &Service{repo: repo}
}

// ListByOwner は指定所有者のエントリ一覧を取得する。
// 呼び出し側で認可ゲートを通過済みであることを前提とする。
func (s *Service) ListByOwner(ctx context.Context, email string) ([]model.WishlistEntry, error) {
	return s.repo.ListByEmail(ctx, email)
}

// Add はエントリを作成する。所有者識別子（email）は必須。
func (s *Service) Add(ctx context.Context, entry *model.WishlistEntry) (*repository.InsertResult, error) {
	if entry.Email == "" {
		return nil, model.NewInvalidRequestError("emailは必須です")
	}
	if entry.Title == "" {
		return nil, model.NewInvalidRequestError("titleは必須です")
	}

	result, err := s.repo.Insert(ctx, entry)
	if err != nil {
		return nil, err
	}

	slog.Info("wishlist entry added",
		slog.String("entry_id", result.InsertedID),
		slog.String("email", entry.Email),
	)
	return result, nil
}

// Remove は指定IDのエントリを削除する。
// 所有者がパスに現れないため、エントリをロードして検証済みアイデンティティと
// 所有者の厳密一致を確認してから削除する。不一致は403として扱われる
// （元システムはこの削除に所有者チェックを持たなかったが、意図された
// ポリシーではなく欠落とみなし、ここでは常に確認する）。
func (s *Service) Remove(ctx context.Context, identityEmail, id string) (int64, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if entry == nil {
		return 0, model.NewWishlistNotFoundError(id)
	}

	if entry.Email != identityEmail {
		slog.Warn("wishlist delete denied: owner mismatch",
			slog.String("identity", identityEmail),
			slog.String("entry_id", id),
		)
		return 0, model.NewForbiddenOwnerError()
	}

	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return 0, err
	}

	slog.Info("wishlist entry removed",
		slog.String("entry_id", id),
		slog.String("email", identityEmail),
	)
	return deleted, nil
}
