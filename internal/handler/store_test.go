package handler_test

import (
	"context"
	"errors"
	"time"

	"github.com/user/letimovie/internal/model"
	"github.com/user/letimovie/internal/repository"
	"github.com/user/letimovie/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memStore 内存版 MovieStore，测试里代替 Mongo，语义与仓库实现保持一致
type memStore struct {
	movies []*model.Movie
}

func newMemStore() *memStore {
	return &memStore{}
}

func (s *memStore) seed(title string) *model.Movie {
	m := &model.Movie{
		ID:       primitive.NewObjectID(),
		Title:    &title,
		Comments: []model.Comment{},
	}
	s.movies = append(s.movies, m)
	return m
}

func (s *memStore) List(ctx context.Context, page, limit int) (*model.MoviePage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}

	start := (page - 1) * limit
	end := start + limit
	if start > len(s.movies) {
		start = len(s.movies)
	}
	if end > len(s.movies) {
		end = len(s.movies)
	}

	summaries := make([]model.MovieSummary, 0, limit)
	for _, m := range s.movies[start:end] {
		summaries = append(summaries, model.MovieSummary{
			ID:     m.ID,
			Title:  m.Title,
			Year:   m.Year,
			Poster: m.Poster,
			Genres: m.Genres,
		})
	}

	return &model.MoviePage{
		Movies:      summaries,
		TotalPages:  utils.TotalPages(int64(len(s.movies)), limit),
		CurrentPage: page,
	}, nil
}

func (s *memStore) FindByID(ctx context.Context, id string) (*model.Movie, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	m := s.find(oid)
	if m == nil {
		return nil, repository.ErrMovieNotFound
	}

	// 返回副本，避免调用方改到存储
	cp := *m
	cp.Comments = append([]model.Comment{}, m.Comments...)
	return &cp, nil
}

func (s *memStore) AddComment(ctx context.Context, movieID string, input model.CommentInput) (*model.Comment, error) {
	oid, err := primitive.ObjectIDFromHex(movieID)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	m := s.find(oid)
	if m == nil {
		return nil, repository.ErrMovieNotFound
	}

	comment := model.Comment{
		ID:    primitive.NewObjectID(),
		Name:  input.Name,
		Email: input.Email,
		Text:  input.Text,
		Date:  time.Now().UTC(),
	}
	m.Comments = append(m.Comments, comment)
	return &comment, nil
}

func (s *memStore) UpdateComment(ctx context.Context, movieID, commentID string, upd model.CommentUpdate) (*model.Comment, error) {
	oid, err := primitive.ObjectIDFromHex(movieID)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	cid, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	m := s.find(oid)
	if m == nil {
		return nil, repository.ErrMovieNotFound
	}
	i := m.CommentByID(cid)
	if i < 0 {
		return nil, repository.ErrCommentNotFound
	}

	if upd.Name != "" {
		m.Comments[i].Name = upd.Name
	}
	if upd.Email != "" {
		m.Comments[i].Email = upd.Email
	}
	if upd.Text != "" {
		m.Comments[i].Text = upd.Text
	}

	cp := m.Comments[i]
	return &cp, nil
}

func (s *memStore) DeleteComment(ctx context.Context, movieID, commentID string) error {
	oid, err := primitive.ObjectIDFromHex(movieID)
	if err != nil {
		return repository.ErrInvalidID
	}
	cid, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return repository.ErrInvalidID
	}
	m := s.find(oid)
	if m == nil {
		return repository.ErrMovieNotFound
	}
	i := m.CommentByID(cid)
	if i < 0 {
		return repository.ErrCommentNotFound
	}

	m.Comments = append(m.Comments[:i], m.Comments[i+1:]...)
	return nil
}

func (s *memStore) find(oid primitive.ObjectID) *model.Movie {
	for _, m := range s.movies {
		if m.ID == oid {
			return m
		}
	}
	return nil
}

// failStore 所有操作都报底层错误，用来验证 500 路径
type failStore struct{}

var errStoreDown = errors.New("connection reset")

func (failStore) List(ctx context.Context, page, limit int) (*model.MoviePage, error) {
	return nil, errStoreDown
}

func (failStore) FindByID(ctx context.Context, id string) (*model.Movie, error) {
	return nil, errStoreDown
}

func (failStore) AddComment(ctx context.Context, movieID string, input model.CommentInput) (*model.Comment, error) {
	return nil, errStoreDown
}

func (failStore) UpdateComment(ctx context.Context, movieID, commentID string, upd model.CommentUpdate) (*model.Comment, error) {
	return nil, errStoreDown
}

func (failStore) DeleteComment(ctx context.Context, movieID, commentID string) error {
	return errStoreDown
}
