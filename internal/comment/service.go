// Package comment はブログ記事へのコメントに関するビジネスロジックを提供する。
package comment

import (
	"context"
	"log/slog"
	"time"

	"github.com/hitoshi/blogman/internal/model"
	"github.com/hitoshi/blogman/internal/repository"
	"github.com/hitoshi/blogman/internal/security"
)

// Service はコメントの投稿と一覧取得を提供する。
type Service struct {
	repo      repository.CommentRepository
	sanitizer security.ContentSanitizerService
}

// NewService はServiceを生成する。
func NewService(repo repository.CommentRepository, sanitizer security.ContentSanitizerService) *Service {
	return &Service{
		repo:      repo,
		sanitizer: sanitizer,
	}
}

// ListByBlog は指定ブログのコメント一覧を作成日時の昇順で取得する。
func (s *Service) ListByBlog(ctx context.Context, blogID string) ([]model.Comment, error) {
	return s.repo.ListByBlogID(ctx, blogID)
}

// Add はコメントを投稿する。本文はサニタイズしてから保存する。
func (s *Service) Add(ctx context.Context, comment *model.Comment) (*repository.InsertResult, error) {
	if comment.BlogID == "" {
		return nil, model.NewInvalidRequestError("blogIdは必須です")
	}
	if comment.Text == "" {
		return nil, model.NewInvalidRequestError("textは必須です")
	}

	comment.Text = s.sanitizer.Sanitize(comment.Text)
	comment.CreatedAt = time.Now()

	result, err := s.repo.Insert(ctx, comment)
	if err != nil {
		return nil, err
	}

	slog.Info("comment added",
		slog.String("comment_id", result.InsertedID),
		slog.String("blog_id", comment.BlogID),
	)
	return result, nil
}
