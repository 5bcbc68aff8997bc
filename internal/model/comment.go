package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment 内嵌在电影文档里的评论子文档
type Comment struct {
	ID    primitive.ObjectID `json:"_id" bson:"_id"`
	Name  string             `json:"name" bson:"name"`
	Email string             `json:"email" bson:"email"`
	Text  string             `json:"text" bson:"text"`
	Date  time.Time          `json:"date" bson:"date"`
}

// CommentInput 新增评论请求体，三个字段都必填
type CommentInput struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
	Text  string `json:"text" binding:"required"`
}

// CommentUpdate 更新评论请求体，至少提供一个字段
// 空字符串视为未提供（与缺省等价），不会把必填字段改空
type CommentUpdate struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Text  string `json:"text"`
}

// Empty 是否一个字段都没提供
func (u *CommentUpdate) Empty() bool {
	return u.Name == "" && u.Email == "" && u.Text == ""
}
