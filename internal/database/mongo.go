// Package database はMongoDB接続のライフサイクルを管理する。
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// connectTimeout は接続確立とpingのタイムアウト。
const connectTimeout = 10 * time.Second

// Client はMongoDBクライアントとデータベースハンドルを保持する。
// プロセス全体で1つ生成し、依存として各リポジトリに注入する
// （モジュールレベルのシングルトンは作らない）。
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect はMongoDBに接続し、pingで疎通を確認する。
func Connect(ctx context.Context, uri, dbName string) (*Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &Client{
		client: client,
		db:     client.Database(dbName),
	}, nil
}

// Database はデータベースハンドルを返す。
func (c *Client) Database() *mongo.Database {
	return c.db
}

// Ping はデータベースとの疎通を確認する。ヘルスチェックで使用する。
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

// Close はMongoDB接続を切断する。
func (c *Client) Close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return c.client.Disconnect(ctx)
}
