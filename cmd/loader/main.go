package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/user/letimovie/internal/config"
	"github.com/user/letimovie/internal/repository"
	"github.com/user/letimovie/internal/service"
)

// 离线导入电影数据：
//
//	go run ./cmd/loader -file movies.json [-batch 500] [-workers 4] [-drop]
func main() {
	var (
		file    = flag.String("file", "", "电影 JSON 文件（数组或 JSON Lines）")
		batch   = flag.Int("batch", 500, "每批写入条数")
		workers = flag.Int("workers", 4, "并发写入批数")
		drop    = flag.Bool("drop", false, "导入前清空 movies 集合")
	)
	flag.Parse()

	if *file == "" {
		log.Fatal("必须用 -file 指定导入文件")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("未找到 .env 文件，使用系统环境变量")
	}
	cfg := config.Load()

	db, err := repository.InitDB(cfg.MongoURI, cfg.DBName)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}
	ctx := context.Background()
	defer db.Close(ctx)

	repos := repository.NewRepositories(db)

	if *drop {
		if err := repos.Movie.Drop(ctx); err != nil {
			log.Fatalf("清空集合失败: %v", err)
		}
		log.Println("已清空 movies 集合")
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatalf("打开导入文件失败: %v", err)
	}
	defer f.Close()

	importer := service.NewImporter(repos.Movie, *batch, *workers)
	result, err := importer.Import(ctx, f)
	if err != nil {
		log.Fatalf("导入失败: %v", err)
	}

	log.Printf("导入完成：写入 %d 条，跳过 %d 条", result.Inserted, result.Skipped)
}
