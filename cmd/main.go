package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/jakubCF/Boutique/internal/controller"
	"github.com/jakubCF/Boutique/internal/model"
	"github.com/jakubCF/Boutique/internal/repository"
	"github.com/jakubCF/Boutique/internal/router"
	"github.com/jakubCF/Boutique/internal/service"
	"github.com/jakubCF/Boutique/internal/task"
	"github.com/jakubCF/Boutique/pkg/database"
	"github.com/jakubCF/Boutique/pkg/poshmark"
)

// @title Boutique API
// @version 1.0
// @description 库存管理 + Poshmark 闭橱抓取同步

func main() {
	// 1. 加载 .env（不存在不算错）
	_ = godotenv.Load()

	// 2. 初始化数据库
	db := initDatabase()

	// 3. 初始化依赖
	deps := initDependencies(db)

	// 4. 播种默认配置（幂等，每次启动都跑）
	seedSettings(deps)

	// 5. 启动抓取调度任务
	deps.ScrapeTask.Start()

	// 6. 初始化路由并启动服务
	r := router.SetupRouter(deps.Controllers)
	startServer(r, deps)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	ScrapeTask  *task.ScrapeTask
	Controllers *router.Controllers
}

// Repositories 仓库集合
type Repositories struct {
	Item    repository.ItemRepository
	Bin     repository.BinRepository
	Setting repository.SettingRepository
}

// Services 服务集合
type Services struct {
	Item    *service.ItemService
	Bin     *service.BinService
	Setting *service.SettingService
	Scraper *service.ScraperService
}

// ==================== 初始化 ====================

// initDatabase 初始化数据库并自动迁移
func initDatabase() *gorm.DB {
	dsn := getEnv("DATABASE_URL",
		"host=localhost user=boutique password=boutique dbname=boutique port=5432 sslmode=disable")

	return database.InitDB(dsn,
		&model.Bin{},
		&model.Item{},
		&model.Setting{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB) *Dependencies {
	// -------- Repo 层 --------
	repos := &Repositories{
		Item:    repository.NewItemRepository(db),
		Bin:     repository.NewBinRepository(db),
		Setting: repository.NewSettingRepository(db),
	}

	// -------- Service 层 --------
	services := &Services{
		Item:    service.NewItemService(repos.Item),
		Bin:     service.NewBinService(repos.Bin, repos.Item),
		Setting: service.NewSettingService(repos.Setting),
		Scraper: service.NewScraperService(repos.Item, repos.Setting, poshmark.NewClient()),
	}

	// -------- 定时任务 --------
	scrapeTask := task.NewScrapeTask(services.Scraper, repos.Setting)

	// -------- Controller 层 --------
	controllers := &router.Controllers{
		Item:    controller.NewItemController(services.Item),
		Bin:     controller.NewBinController(services.Bin),
		Setting: controller.NewSettingController(services.Setting),
		Posh:    controller.NewPoshController(scrapeTask),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		ScrapeTask:  scrapeTask,
		Controllers: controllers,
	}
}

// seedSettings 播种默认配置，已有的 key 绝不覆盖
func seedSettings(deps *Dependencies) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := deps.Repos.Setting.SeedDefaults(ctx, service.DefaultSettings()); err != nil {
		log.Fatalf("默认配置播种失败: %v", err)
	}
}

// ==================== 服务启动 ====================

// startServer 启动服务并等待退出信号
func startServer(r *gin.Engine, deps *Dependencies) {
	port := getEnv("SERVER_PORT", "3000")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")
	deps.ScrapeTask.Stop()

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}

// ==================== 工具函数 ====================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
