package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDB 数据库连接封装，显式持有客户端和库句柄，便于注入和关闭
type MongoDB struct {
	client *mongo.Client
	db     *mongo.Database
}

// InitDB 初始化数据库连接
func InitDB(mongoURI, dbName string) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, fmt.Errorf("无法连接数据库: %w", err)
	}

	// 测试连接
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("数据库 ping 失败: %w", err)
	}

	return &MongoDB{
		client: client,
		db:     client.Database(dbName),
	}, nil
}

// Collection 按名称获取集合
func (m *MongoDB) Collection(name string) *mongo.Collection {
	return m.db.Collection(name)
}

// Ping 健康检查
func (m *MongoDB) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

// Close 断开连接
func (m *MongoDB) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// Repositories 仓库集合
type Repositories struct {
	Mongo *MongoDB
	Movie *MovieRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(db *MongoDB) *Repositories {
	return &Repositories{
		Mongo: db,
		Movie: NewMovieRepository(db),
	}
}
