// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/blogman/internal/model"
)

// UpdateResult はupdate-with-upsert操作の結果を表す。
// ドキュメントストアの生の結果をハンドラーがそのまま返すために使用する。
type UpdateResult struct {
	MatchedCount  int64  `json:"matchedCount"`
	ModifiedCount int64  `json:"modifiedCount"`
	UpsertedID    string `json:"upsertedId,omitempty"`
}

// InsertResult はinsert操作の結果を表す。
type InsertResult struct {
	InsertedID string `json:"insertedId"`
}

// StoreRecorder はドキュメントストア操作のメトリクス記録インターフェース。
// nilを渡した場合は記録をスキップする。
type StoreRecorder interface {
	RecordStoreOperation(collection, operation string)
	RecordStoreFailure(collection string)
}

// BlogRepository はブログ記事の永続化インターフェース。
type BlogRepository interface {
	// List は全ブログを取得する。categoryが空でない場合はカテゴリで絞り込む。
	List(ctx context.Context, category string) ([]model.Blog, error)

	// Insert はブログを作成し、生成されたIDを返す。
	Insert(ctx context.Context, blog *model.Blog) (*InsertResult, error)

	// Upsert は指定IDのブログをupsertオプション付きで更新する。
	Upsert(ctx context.Context, id string, update *model.BlogUpdate) (*UpdateResult, error)

	// FindDetailByID は指定IDのブログを詳細表示用の射影付きで取得する。
	// 元システムの応答形式に合わせて0件または1件の配列を返す。
	FindDetailByID(ctx context.Context, id string) ([]model.Blog, error)
}

// WishlistRepository はウィッシュリストエントリの永続化インターフェース。
type WishlistRepository interface {
	// ListByEmail は指定所有者のエントリ一覧を一覧表示用の射影付きで取得する。
	ListByEmail(ctx context.Context, email string) ([]model.WishlistEntry, error)

	// Insert はエントリを作成し、生成されたIDを返す。
	Insert(ctx context.Context, entry *model.WishlistEntry) (*InsertResult, error)

	// FindByID は指定IDのエントリを取得する。見つからない場合はnilを返す。
	// 削除前の所有者確認に使用する。
	FindByID(ctx context.Context, id string) (*model.WishlistEntry, error)

	// DeleteByID は指定IDのエントリを1件削除し、削除件数を返す。
	DeleteByID(ctx context.Context, id string) (int64, error)
}

// CommentRepository はコメントの永続化インターフェース。
type CommentRepository interface {
	// ListByBlogID は指定ブログのコメント一覧を作成日時の昇順で取得する。
	ListByBlogID(ctx context.Context, blogID string) ([]model.Comment, error)

	// Insert はコメントを作成し、生成されたIDを返す。
	Insert(ctx context.Context, comment *model.Comment) (*InsertResult, error)
}
