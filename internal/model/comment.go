package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment はブログ記事へのコメントを表す。
// Textは保存前にサニタイズ済みであることを前提とする。
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	BlogID    string             `bson:"blogId" json:"blogId"`
	Email     string             `bson:"email" json:"email"`
	Name      string             `bson:"name" json:"name"`
	Text      string             `bson:"text" json:"text"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
