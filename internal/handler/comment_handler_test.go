package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hitoshi/blogman/internal/model"
	"github.com/hitoshi/blogman/internal/repository"
)

// --- モック定義 ---

type mockCommentService struct {
	listByBlogFn func(ctx context.Context, blogID string) ([]model.Comment, error)
	addFn        func(ctx context.Context, comment *model.Comment) (*repository.InsertResult, error)
}

func (m *mockCommentService) ListByBlog(ctx context.Context, blogID string) ([]model.Comment, error) {
	if m.listByBlogFn != nil {
		return m.listByBlogFn(ctx, blogID)
	}
	return []model.Comment{}, nil
}

func (m *mockCommentService) Add(ctx context.Context, comment *model.Comment) (*repository.InsertResult, error) {
	if m.addFn != nil {
		return m.addFn(ctx, comment)
	}
	return &repository.InsertResult{InsertedID: "generated-id"}, nil
}

// --- テスト ---

func TestListComments_ReturnsCommentsForBlog(t *testing.T) {
	svc := &mockCommentService{
		listByBlogFn: func(ctx context.Context, blogID string) ([]model.Comment, error) {
			if blogID != "blog-1" {
				t.Errorf("blogID = %q, want blog-1", blogID)
			}
			return []model.Comment{{Text: "first"}, {Text: "second"}}, nil
		},
	}
	h := NewCommentHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/comments/blog-1", nil)
	req = withURLParam(req, "blogId", "blog-1")
	w := httptest.NewRecorder()

	h.ListComments(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var comments []model.Comment
	if err := json.NewDecoder(w.Body).Decode(&comments); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(comments) != 2 {
		t.Errorf("len(comments) = %d, want 2", len(comments))
	}
}

func TestAddComment_Returns201(t *testing.T) {
	svc := &mockCommentService{
		addFn: func(ctx context.Context, comment *model.Comment) (*repository.InsertResult, error) {
			if comment.BlogID != "blog-1" {
				t.Errorf("BlogID = %q, want blog-1", comment.BlogID)
			}
			return &repository.InsertResult{InsertedID: "comment-1"}, nil
		},
	}
	h := NewCommentHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/comments",
		strings.NewReader(`{"blogId":"blog-1","email":"user@example.com","text":"nice"}`))
	w := httptest.NewRecorder()

	h.AddComment(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusCreated)
	}
	var result repository.InsertResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if result.InsertedID != "comment-1" {
		t.Errorf("InsertedID = %q, want comment-1", result.InsertedID)
	}
}

func TestAddComment_InvalidBody_Returns400(t *testing.T) {
	h := NewCommentHandler(&mockCommentService{})

	req := httptest.NewRequest(http.MethodPost, "/comments", strings.NewReader("not json"))
	w := httptest.NewRecorder()

	h.AddComment(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestAddComment_ValidationError_Returns400(t *testing.T) {
	svc := &mockCommentService{
		addFn: func(ctx context.Context, comment *model.Comment) (*repository.InsertResult, error) {
			return nil, model.NewInvalidRequestError("textは必須です")
		},
	}
	h := NewCommentHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/comments", strings.NewReader(`{"blogId":"blog-1"}`))
	w := httptest.NewRecorder()

	h.AddComment(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
