package repository

import (
	"context"
	"fmt"

	"github.com/hitoshi/blogman/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// blogCollection はブログ記事を格納するコレクション名。
const blogCollection = "blogs"

// MongoBlogRepo はMongoDBを使用したブログリポジトリ。
type MongoBlogRepo struct {
	collection *mongo.Collection
	recorder   StoreRecorder
}

// NewMongoBlogRepo はMongoBlogRepoを生成する。recorderはnil可。
func NewMongoBlogRepo(db *mongo.Database, recorder StoreRecorder) *MongoBlogRepo {
	return &MongoBlogRepo{
		collection: db.Collection(blogCollection),
		recorder:   recorder,
	}
}

// List は全ブログを取得する。categoryが空でない場合はカテゴリで絞り込む。
func (r *MongoBlogRepo) List(ctx context.Context, category string) ([]model.Blog, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		r.recordFailure()
		return nil, fmt.Errorf("failed to list blogs: %w", err)
	}
	defer cursor.Close(ctx)

	blogs := []model.Blog{}
	if err := cursor.All(ctx, &blogs); err != nil {
		r.recordFailure()
		return nil, fmt.Errorf("failed to decode blogs: %w", err)
	}

	r.record("find")
	return blogs, nil
}

// Insert はブログを作成し、生成されたIDを返す。
func (r *MongoBlogRepo) Insert(ctx context.Context, blog *model.Blog) (*InsertResult, error) {
	res, err := r.collection.InsertOne(ctx, blog)
	if err != nil {
		r.recordFailure()
		return nil, fmt.Errorf("failed to insert blog: %w", err)
	}

	r.record("insert")
	return &InsertResult{InsertedID: objectIDHex(res.InsertedID)}, nil
}

// Upsert は指定IDのブログをupsertオプション付きで更新する。
// $setの対象は更新可能な6フィールドのみ。
func (r *MongoBlogRepo) Upsert(ctx context.Context, id string, update *model.BlogUpdate) (*UpdateResult, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, model.NewInvalidIDError(id)
	}

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": update},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		r.recordFailure()
		return nil, fmt.Errorf("failed to upsert blog: %w", err)
	}

	r.record("update")
	return &UpdateResult{
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedID:    objectIDHex(res.UpsertedID),
	}, nil
}

// FindDetailByID は指定IDのブログを詳細表示用の射影付きで取得する。
// 射影: title, category, short, long, image
func (r *MongoBlogRepo) FindDetailByID(ctx context.Context, id string) ([]model.Blog, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, model.NewInvalidIDError(id)
	}

	opts := options.Find().SetProjection(bson.M{
		"title":    1,
		"category": 1,
		"short":    1,
		"long":     1,
		"image":    1,
	})

	cursor, err := r.collection.Find(ctx, bson.M{"_id": objectID}, opts)
	if err != nil {
		r.recordFailure()
		return nil, fmt.Errorf("failed to find blog: %w", err)
	}
	defer cursor.Close(ctx)

	blogs := []model.Blog{}
	if err := cursor.All(ctx, &blogs); err != nil {
		r.recordFailure()
		return nil, fmt.Errorf("failed to decode blog: %w", err)
	}

	r.record("find")
	return blogs, nil
}

func (r *MongoBlogRepo) record(op string) {
	if r.recorder != nil {
		r.recorder.RecordStoreOperation(blogCollection, op)
	}
}

func (r *MongoBlogRepo) recordFailure() {
	if r.recorder != nil {
		r.recorder.RecordStoreFailure(blogCollection)
	}
}

// objectIDHex はInsertedID/UpsertedIDを16進文字列に変換する。
// ObjectID以外（nil含む）の場合は空文字列を返す。
func objectIDHex(id any) string {
	if oid, ok := id.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return ""
}

// compile-time interface check
var _ BlogRepository = (*MongoBlogRepo)(nil)
