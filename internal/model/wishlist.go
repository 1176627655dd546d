package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// WishlistEntry はユーザーごとのウィッシュリストのエントリを表す。
// Emailが所有者識別子であり、所有者スコープのアクセス制御の基準となる。
type WishlistEntry struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email    string             `bson:"email" json:"email"`
	BlogID   string             `bson:"blogId,omitempty" json:"blogId,omitempty"`
	Title    string             `bson:"title" json:"title"`
	Category string             `bson:"category" json:"category"`
	Short    string             `bson:"short" json:"short"`
	Image    string             `bson:"image" json:"image"`
}
