package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/calculisto/crm_server/config"
	"github.com/calculisto/crm_server/middleware"
	"github.com/calculisto/crm_server/repository"
	"github.com/calculisto/crm_server/routes"
	"github.com/calculisto/crm_server/service"
	"github.com/calculisto/crm_server/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	// 初始化日志
	utils.InitLogger()

	// 加载配置
	cfg := config.LoadConfig()

	// 设置Gin模式
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化内存存储(用户名录/线索集合/会话/阶段配置)
	utils.Logger.Info().Msg("开始系统初始化...")
	repository.InitStores()
	utils.Logger.Info().Msg("系统初始化完成")

	// 创建Gin实例
	router := gin.New()

	// 应用中间件
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler())

	// 注册路由
	routes.RegisterRoutes(router)

	// 每天早上9点检查订阅续费提醒
	service.ScheduleDailyTaskAt(9, 0, 0, func() {
		service.ProcessRenewalNotifications(cfg.RenewalNoticeDay)
	})

	// 设置HTTP服务器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 启动服务器
	go func() {
		utils.Logger.Info().Msgf("服务器启动，监听端口: %d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Logger.Fatal().Err(err).Msg("启动服务器失败")
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	utils.Logger.Info().Msg("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.Logger.Fatal().Err(err).Msg("服务器关闭异常")
	}

	utils.Logger.Info().Msg("服务器已优雅关闭")
}
