// Package blog はブログ記事に関するビジネスロジックを提供する。
package blog

import (
	"context"
	"log/slog"

	"github.com/hitoshi/blogman/internal/model"
	"github.com/hitoshi/blogman/internal/repository"
	"github.com/hitoshi/blogman/internal/security"
)

// Service はブログ記事のCRUDを提供する。
// 本文のサニタイズと画像URLの検証を保存前に行う。
type Service struct {
	repo       repository.BlogRepository
	sanitizer  security.ContentSanitizerService
	imageGuard security.ImageURLValidator
}

// NewService はServiceを生成する。
func NewService(
	repo repository.BlogRepository,
	sanitizer security.ContentSanitizerService,
	imageGuard security.ImageURLValidator,
) *Service {
	return &Service{
		repo:       repo,
		sanitizer:  sanitizer,
		imageGuard: imageGuard,
	}
}

// List は全ブログを取得する。categoryが空でない場合はカテゴリで絞り込む。
func (s *Service) List(ctx context.Context, category string) ([]model.Blog, error) {
	return s.repo.List(ctx, category)
}

// Create はブログを作成する。
// 本文（long）はサニタイズし、画像URLは検証してから保存する。
func (s *Service) Create(ctx context.Context, blog *model.Blog) (*repository.InsertResult, error) {
	if blog.Title == "" {
		return nil, model.NewInvalidRequestError("titleは必須です")
	}
	if err := s.imageGuard.ValidateImageURL(blog.Image); err != nil {
		return nil, model.NewInvalidImageURLError(err.Error())
	}

	blog.Long = s.sanitizer.Sanitize(blog.Long)

	result, err := s.repo.Insert(ctx, blog)
	if err != nil {
		return nil, err
	}

	slog.Info("blog created",
		slog.String("blog_id", result.InsertedID),
		slog.String("category", blog.Category),
	)
	return result, nil
}

// Update は指定IDのブログをupsertオプション付きで更新する。
// Createと同じサニタイズ・検証を適用する。
func (s *Service) Update(ctx context.Context, id string, update *model.BlogUpdate) (*repository.UpdateResult, error) {
	if update.Title == "" {
		return nil, model.NewInvalidRequestError("titleは必須です")
	}
	if err := s.imageGuard.ValidateImageURL(update.Image); err != nil {
		return nil, model.NewInvalidImageURLError(err.Error())
	}

	update.Long = s.sanitizer.Sanitize(update.Long)

	result, err := s.repo.Upsert(ctx, id, update)
	if err != nil {
		return nil, err
	}

	slog.Info("blog updated",
		slog.String("blog_id", id),
		slog.Int64("matched", result.MatchedCount),
	)
	return result, nil
}

// Detail は指定IDのブログを詳細表示用の射影付きで取得する。
// 元システムの応答形式に合わせて0件または1件の配列を返す。
func (s *Service) Detail(ctx context.Context, id string) ([]model.Blog, error) {
	return s.repo.FindDetailByID(ctx, id)
}
