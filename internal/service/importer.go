package service

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"sync/atomic"

	"github.com/go-playground/validator/v10"
	"github.com/user/letimovie/internal/model"
	"github.com/user/letimovie/internal/repository"
	"golang.org/x/sync/errgroup"
)

// Importer 电影数据批量导入服务。
// 电影不走 API 创建，统一用这里离线灌入 mflix 风格的 JSON 数据
type Importer struct {
	repo      *repository.MovieRepository
	validate  *validator.Validate
	batchSize int
	workers   int
}

// ImportResult 导入结果汇总
type ImportResult struct {
	Inserted int
	Skipped  int
}

// NewImporter 创建导入服务
func NewImporter(repo *repository.MovieRepository, batchSize, workers int) *Importer {
	if batchSize < 1 {
		batchSize = 500
	}
	if workers < 1 {
		workers = 4
	}
	return &Importer{
		repo:      repo,
		validate:  validator.New(),
		batchSize: batchSize,
		workers:   workers,
	}
}

// ParseMovies 解析 JSON 数组或 JSON Lines 两种 dump 格式，
// 校验不通过的行跳过并计数，不中断整个导入
func (s *Importer) ParseMovies(r io.Reader) ([]model.Movie, int, error) {
	br := bufio.NewReader(r)

	// 跳过前导空白，看第一个字符判断格式
	first, err := peekFirstByte(br)
	if err != nil {
		return nil, 0, fmt.Errorf("读取导入文件失败: %w", err)
	}

	var raw []model.Movie
	dec := json.NewDecoder(br)
	if first == '[' {
		if err := dec.Decode(&raw); err != nil {
			return nil, 0, fmt.Errorf("解析 JSON 数组失败: %w", err)
		}
	} else {
		for {
			var m model.Movie
			if err := dec.Decode(&m); err != nil {
				if errors.Is(err, io.EOF) {
					break
				}
				return nil, 0, fmt.Errorf("解析 JSON Lines 失败: %w", err)
			}
			raw = append(raw, m)
		}
	}

	movies := make([]model.Movie, 0, len(raw))
	skipped := 0
	for i := range raw {
		if err := s.validate.Struct(&raw[i]); err != nil {
			skipped++
			log.Printf("跳过不合法的电影记录（第 %d 条）: %v", i+1, err)
			continue
		}
		if raw[i].Comments == nil {
			raw[i].Comments = make([]model.Comment, 0)
		}
		movies = append(movies, raw[i])
	}

	return movies, skipped, nil
}

// Import 解析后按批并发写入
func (s *Importer) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	movies, skipped, err := s.ParseMovies(r)
	if err != nil {
		return nil, err
	}

	var inserted atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for start := 0; start < len(movies); start += s.batchSize {
		end := start + s.batchSize
		if end > len(movies) {
			end = len(movies)
		}
		batch := movies[start:end]

		g.Go(func() error {
			n, err := s.repo.InsertMany(ctx, batch)
			if err != nil {
				return err
			}
			inserted.Add(int64(n))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &ImportResult{
		Inserted: int(inserted.Load()),
		Skipped:  skipped,
	}, nil
}

func peekFirstByte(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		default:
			if err := br.UnreadByte(); err != nil {
				return 0, err
			}
			return b, nil
		}
	}
}
