package config

import (
	"fmt"
	"os"
)

// Config 应用配置
type Config struct {
	Env       string
	AppSecret string
	MongoURI  string
	DBName    string
	Port      string
	SiteName  string
	SiteUrl   string
}

// Load 加载配置
func Load() *Config {
	// 优先使用完整连接串，否则从分项拼装
	mongoURI := getEnv("MONGO_URI", "")
	if mongoURI == "" {
		dbUser := getEnv("MONGO_USER", "")
		dbPass := getEnv("MONGO_PASSWORD", "")
		dbHost := getEnv("MONGO_HOST", "localhost")
		dbPort := getEnv("MONGO_PORT", "27017")

		if dbUser != "" {
			mongoURI = fmt.Sprintf("mongodb://%s:%s@%s:%s", dbUser, dbPass, dbHost, dbPort)
		} else {
			mongoURI = fmt.Sprintf("mongodb://%s:%s", dbHost, dbPort)
		}
	}

	appSecret := getEnv("APP_SECRET", "your-secret-key-change-in-production")

	if getEnv("APP_ENV", "development") == "production" && appSecret == "your-secret-key-change-in-production" {
		fmt.Println("【严重警告】生产环境正在使用默认密钥！请立即设置 APP_SECRET 环境变量。")
	}

	return &Config{
		Env:       getEnv("APP_ENV", "development"),
		AppSecret: appSecret,
		MongoURI:  mongoURI,
		DBName:    getEnv("DB_NAME", "sample_mflix"),
		Port:      getEnv("PORT", "5006"),
		SiteName:  getEnv("SITE_NAME", "Leti Movie"),
		SiteUrl:   getEnv("SITE_URL", "http://localhost:5006"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
