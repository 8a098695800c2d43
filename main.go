// @title 批判性思维测评 API
// @version 1.0
// @description 批判性思维测评服务，负责 AI 出题、作答评估与评分模型管理。

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"critical_thinking_backend/internal/app"
	"critical_thinking_backend/internal/config"
	"critical_thinking_backend/pkg/logger"
	"log"

	"github.com/joho/godotenv"
)

func main() {
	// .env 不存在时忽略，生产环境用真实环境变量
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	application.Run()
}
