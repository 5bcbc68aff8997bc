package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/user/letimovie/internal/model"
	"github.com/user/letimovie/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrInvalidID 标识符格式不合法
	ErrInvalidID = errors.New("标识符格式不合法")
	// ErrMovieNotFound 电影不存在
	ErrMovieNotFound = errors.New("电影不存在")
	// ErrCommentNotFound 评论不存在
	ErrCommentNotFound = errors.New("评论不存在")
)

// MovieStore 电影目录的读写契约，handler 只依赖这个接口
type MovieStore interface {
	List(ctx context.Context, page, limit int) (*model.MoviePage, error)
	FindByID(ctx context.Context, id string) (*model.Movie, error)
	AddComment(ctx context.Context, movieID string, input model.CommentInput) (*model.Comment, error)
	UpdateComment(ctx context.Context, movieID, commentID string, upd model.CommentUpdate) (*model.Comment, error)
	DeleteComment(ctx context.Context, movieID, commentID string) error
}

type MovieRepository struct {
	collection *mongo.Collection
}

func NewMovieRepository(db *MongoDB) *MovieRepository {
	return &MovieRepository{collection: db.Collection("movies")}
}

// List 分页查询电影卡片投影，按 _id 升序（ObjectID 即插入顺序），保证翻页结果稳定
func (r *MovieRepository) List(ctx context.Context, page, limit int) (*model.MoviePage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}

	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("统计电影数量失败: %w", err)
	}

	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetProjection(bson.M{"title": 1, "year": 1, "poster": 1, "genres": 1})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("查询电影列表失败: %w", err)
	}
	defer cursor.Close(ctx)

	movies := make([]model.MovieSummary, 0, limit)
	if err := cursor.All(ctx, &movies); err != nil {
		return nil, fmt.Errorf("解析电影列表失败: %w", err)
	}

	return &model.MoviePage{
		Movies:      movies,
		TotalPages:  utils.TotalPages(total, limit),
		CurrentPage: page,
	}, nil
}

// FindByID 按标识符取完整电影文档（含全部评论）
func (r *MovieRepository) FindByID(ctx context.Context, id string) (*model.Movie, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	return r.findMovie(ctx, oid)
}

// AddComment 追加一条评论：读出整个文档，内存中追加后整体重写
func (r *MovieRepository) AddComment(ctx context.Context, movieID string, input model.CommentInput) (*model.Comment, error) {
	oid, err := primitive.ObjectIDFromHex(movieID)
	if err != nil {
		return nil, ErrInvalidID
	}

	movie, err := r.findMovie(ctx, oid)
	if err != nil {
		return nil, err
	}

	comment := model.Comment{
		ID:    primitive.NewObjectID(),
		Name:  input.Name,
		Email: input.Email,
		Text:  input.Text,
		Date:  time.Now().UTC(),
	}
	// 在父文档内保证评论 ID 唯一，不只依赖生成器
	for movie.CommentByID(comment.ID) >= 0 {
		comment.ID = primitive.NewObjectID()
	}

	movie.Comments = append(movie.Comments, comment)
	if err := r.replace(ctx, movie); err != nil {
		return nil, err
	}
	return &comment, nil
}

// UpdateComment 只覆盖提供的字段，时间戳不变
func (r *MovieRepository) UpdateComment(ctx context.Context, movieID, commentID string, upd model.CommentUpdate) (*model.Comment, error) {
	oid, err := primitive.ObjectIDFromHex(movieID)
	if err != nil {
		return nil, ErrInvalidID
	}
	cid, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return nil, ErrInvalidID
	}

	movie, err := r.findMovie(ctx, oid)
	if err != nil {
		return nil, err
	}

	i := movie.CommentByID(cid)
	if i < 0 {
		return nil, ErrCommentNotFound
	}

	if upd.Name != "" {
		movie.Comments[i].Name = upd.Name
	}
	if upd.Email != "" {
		movie.Comments[i].Email = upd.Email
	}
	if upd.Text != "" {
		movie.Comments[i].Text = upd.Text
	}

	if err := r.replace(ctx, movie); err != nil {
		return nil, err
	}
	comment := movie.Comments[i]
	return &comment, nil
}

// DeleteComment 从父文档的评论序列中移除一条后整体重写
func (r *MovieRepository) DeleteComment(ctx context.Context, movieID, commentID string) error {
	oid, err := primitive.ObjectIDFromHex(movieID)
	if err != nil {
		return ErrInvalidID
	}
	cid, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return ErrInvalidID
	}

	movie, err := r.findMovie(ctx, oid)
	if err != nil {
		return err
	}

	i := movie.CommentByID(cid)
	if i < 0 {
		return ErrCommentNotFound
	}

	movie.Comments = append(movie.Comments[:i], movie.Comments[i+1:]...)
	return r.replace(ctx, movie)
}

// InsertMany 批量写入（loader 专用）
func (r *MovieRepository) InsertMany(ctx context.Context, movies []model.Movie) (int, error) {
	docs := make([]interface{}, 0, len(movies))
	for i := range movies {
		docs = append(docs, movies[i])
	}
	res, err := r.collection.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("批量写入失败: %w", err)
	}
	return len(res.InsertedIDs), nil
}

// Drop 清空集合（loader 的 -drop 模式）
func (r *MovieRepository) Drop(ctx context.Context) error {
	return r.collection.Drop(ctx)
}

func (r *MovieRepository) findMovie(ctx context.Context, oid primitive.ObjectID) (*model.Movie, error) {
	var movie model.Movie
	err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&movie)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrMovieNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("查询电影失败: %w", err)
	}
	// 老数据可能没有 comments 字段，对外统一成空数组
	if movie.Comments == nil {
		movie.Comments = make([]model.Comment, 0)
	}
	return &movie, nil
}

// replace 整文档重写。并发修改同一部电影时后写覆盖先写，上层不做版本检查
func (r *MovieRepository) replace(ctx context.Context, movie *model.Movie) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": movie.ID}, movie)
	if err != nil {
		return fmt.Errorf("重写电影文档失败: %w", err)
	}
	return nil
}
