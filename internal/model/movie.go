package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Movie 电影文档（mflix 集合结构）
type Movie struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Title     *string            `json:"title,omitempty" bson:"title,omitempty" validate:"required"`
	Year      *int               `json:"year,omitempty" bson:"year,omitempty" validate:"omitempty,gte=1870,lte=2100"`
	Runtime   *int               `json:"runtime,omitempty" bson:"runtime,omitempty" validate:"omitempty,gt=0"`
	Poster    *string            `json:"poster,omitempty" bson:"poster,omitempty" validate:"omitempty,url"`
	Plot      *string            `json:"plot,omitempty" bson:"plot,omitempty"`
	FullPlot  *string            `json:"fullplot,omitempty" bson:"fullplot,omitempty"`
	Rated     *string            `json:"rated,omitempty" bson:"rated,omitempty"`
	Released  *time.Time         `json:"released,omitempty" bson:"released,omitempty"`
	Genres    []string           `json:"genres,omitempty" bson:"genres,omitempty"`
	Directors []string           `json:"directors,omitempty" bson:"directors,omitempty"`
	Cast      []string           `json:"cast,omitempty" bson:"cast,omitempty"`
	Countries []string           `json:"countries,omitempty" bson:"countries,omitempty"`
	Type      *string            `json:"type,omitempty" bson:"type,omitempty"`
	Comments  []Comment          `json:"comments" bson:"comments"`
}

// MovieSummary 列表页投影（只保留卡片需要的字段，评论等大字段不下发）
type MovieSummary struct {
	ID     primitive.ObjectID `json:"_id" bson:"_id"`
	Title  *string            `json:"title,omitempty" bson:"title,omitempty"`
	Year   *int               `json:"year,omitempty" bson:"year,omitempty"`
	Poster *string            `json:"poster,omitempty" bson:"poster,omitempty"`
	Genres []string           `json:"genres,omitempty" bson:"genres,omitempty"`
}

// MoviePage 分页结果
type MoviePage struct {
	Movies      []MovieSummary `json:"movies"`
	TotalPages  int            `json:"totalPages"`
	CurrentPage int            `json:"currentPage"`
}

// CommentByID 按 ID 查找内嵌评论，返回下标（未找到返回 -1）
func (m *Movie) CommentByID(id primitive.ObjectID) int {
	for i := range m.Comments {
		if m.Comments[i].ID == id {
			return i
		}
	}
	return -1
}
