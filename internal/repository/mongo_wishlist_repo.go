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

// wishlistCollection はウィッシュリストエントリを格納するコレクション名。
const wishlistCollection = "wishlist"

// MongoWishlistRepo はMongoDBを使用したウィッシュリストリポジトリ。
type MongoWishlistRepo struct {
	collection *mongo.Collection
	recorder   StoreRecorder
}

// NewMongoWishlistRepo はMongoWishlistRepoを生成する。recorderはnil可。
func NewMongoWishlistRepo(db *mongo.Database, recorder StoreRecorder) *MongoWishlistRepo {
	return &MongoWishlistRepo{
		collection: db.Collection(wishlistCollection),
		recorder:   recorder,
	}
}

// ListByEmail は指定所有者のエントリ一覧を一覧表示用の射影付きで取得する。
// 射影: title, category, short, image
// 所有者の認可チェックは呼び出し側（認可ゲート）の責務であり、
// ここでは絞り込みクエリのみを発行する。
func (r *MongoWishlistRepo) ListByEmail(ctx context.Context, email string) ([]model.WishlistEntry, error) {
	opts := options.Find().SetProjection(bson.M{
		"title":    1,
		"category": 1,
		"short":    1,
		"image":    1,
	})

	cursor, err := r.collection.Find(ctx, bson.M{"email": email}, opts)
	if err != nil {
		r.recordFailure()
		return nil, fmt.Errorf("failed to list wishlist entries: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []model.WishlistEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		r.recordFailure()
		return nil, fmt.Errorf("failed to decode wishlist entries: %w", err)
	}

	r.record("find")
	return entries, nil
}

// Insert はエントリを作成し、生成されたIDを返す。
func (r *MongoWishlistRepo) Insert(ctx context.Context, entry *model.WishlistEntry) (*InsertResult, error) {
	res, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		r.recordFailure()
		return nil, fmt.Errorf("failed to insert wishlist entry: %w", err)
	}

	r.record("insert")
	return &InsertResult{InsertedID: objectIDHex(res.InsertedID)}, nil
}

// FindByID は指定IDのエントリを取得する。見つからない場合はnilを返す。
func (r *MongoWishlistRepo) FindByID(ctx context.Context, id string) (*model.WishlistEntry, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, model.NewInvalidIDError(id)
	}

	entry := &model.WishlistEntry{}
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(entry)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		r.recordFailure()
		return nil, fmt.Errorf("failed to find wishlist entry: %w", err)
	}

	r.record("find")
	return entry, nil
}

// DeleteByID は指定IDのエントリを1件削除し、削除件数を返す。
func (r *MongoWishlistRepo) DeleteByID(ctx context.Context, id string) (int64, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, model.NewInvalidIDError(id)
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		r.recordFailure()
		return 0, fmt.Errorf("failed to delete wishlist entry: %w", err)
	}

	r.record("delete")
	return res.DeletedCount, nil
}

func (r *MongoWishlistRepo) record(op string) {
	if r.recorder != nil {
		r.recorder.RecordStoreOperation(wishlistCollection, op)
	}
}

func (r *MongoWishlistRepo) recordFailure() {
	if r.recorder != nil {
		r.recorder.RecordStoreFailure(wishlistCollection)
	}
}

// compile-time interface check
var _ WishlistRepository = (*MongoWishlistRepo)(nil)
