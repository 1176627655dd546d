// Package model はドメインモデルを定義する。
package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Blog はブログ記事を表す。
// bsonフィールド名はMongoDBに保存済みのドキュメントに合わせている。
type Blog struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Title    string             `bson:"title" json:"title"`
	Category string             `bson:"category" json:"category"`
	Short    string             `bson:"short" json:"short"`
	Long     string             `bson:"long,omitempty" json:"long,omitempty"`
	Image    string             `bson:"image" json:"image"`
	DateTime string             `bson:"dateTime,omitempty" json:"dateTime,omitempty"`
}

// BlogUpdate はブログ更新時に$setされるフィールドの集合。
// 更新対象外のフィールド（_id等）は含まない。
type BlogUpdate struct {
	Title    string `bson:"title" json:"title"`
	Category string `bson:"category" json:"category"`
	Short    string `bson:"short" json:"short"`
	Long     string `bson:"long" json:"long"`
	Image    string `bson:"image" json:"image"`
	DateTime string `bson:"dateTime" json:"dateTime"`
}
