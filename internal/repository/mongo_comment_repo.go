package repository

import (
	"context"
	"fmt"

	"github.com/hitoshi/blogman/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// commentCollection はコメントを格納するコレクション名。
const commentCollection = "comments"

// MongoCommentRepo はMongoDBを使用したコメントリポジトリ。
type MongoCommentRepo struct {
	collection *mongo.Collection
	recorder   StoreRecorder
}

// NewMongoCommentRepo はMongoCommentRepoを生成する。recorderはnil可。
func NewMongoCommentRepo(db *mongo.Database, recorder StoreRecorder) *MongoCommentRepo {
	return &MongoCommentRepo{
		collection: db.Collection(commentCollection),
		recorder:   recorder,
	}
}

// ListByBlogID は指定ブログのコメント一覧を作成日時の昇順で取得する。
func (r *MongoCommentRepo) ListByBlogID(ctx context.Context, blogID string) ([]model.Comment, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": 1})

	cursor, err := r.collection.Find(ctx, bson.M{"blogId": blogID}, opts)
	if err != nil {
		r.recordFailure()
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer cursor.Close(ctx)

	comments := []model.Comment{}
	if err := cursor.All(ctx, &comments); err != nil {
		r.recordFailure()
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}

	r.record("find")
	return comments, nil
}

// Insert はコメントを作成し、生成されたIDを返す。
func (r *MongoCommentRepo) Insert(ctx context.Context, comment *model.Comment) (*InsertResult, error) {
	res, err := r.collection.InsertOne(ctx, comment)
	if err != nil {
		r.recordFailure()
		return nil, fmt.Errorf("failed to insert comment: %w", err)
	}

	r.record("insert")
	return &InsertResult{InsertedID: objectIDHex(res.InsertedID)}, nil
}

func (r *MongoCommentRepo) record(op string) {
	if r.recorder != nil {
		r.recorder.RecordStoreOperation(commentCollection, op)
	}
}

func (r *MongoCommentRepo) recordFailure() {
	if r.recorder != nil {
		r.recorder.RecordStoreFailure(commentCollection)
	}
}

// compile-time interface check
var _ CommentRepository = (*MongoCommentRepo)(nil)
