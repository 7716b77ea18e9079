package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"share_party_server/internal/config"
	"share_party_server/internal/dao/database"
	myredis "share_party_server/internal/dao/redis"
	"share_party_server/internal/handler"
	"share_party_server/internal/https_server"
	"share_party_server/internal/infrastructure/logger"
	"share_party_server/internal/infrastructure/mq"
	"share_party_server/internal/infrastructure/sms"
	"share_party_server/internal/infrastructure/storage"
	"share_party_server/internal/service"
	"share_party_server/pkg/util/jwt"
	"share_party_server/pkg/util/snowflake"

	"go.uber.org/zap"
)

func main() {
	// 1. 加载配置
	conf := config.GetConfig()

	// 2. 初始化日志
	if err := logger.Init(&conf.LogConfig, conf.MainConfig.Mode); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	defer zap.L().Sync()
	zap.L().Info("日志初始化成功")

	if err := handler.InitTrans("zh"); err != nil {
		zap.L().Fatal("初始化参数校验翻译器失败", zap.Error(err))
	}

	// 3. JWT 与雪花 ID
	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry, conf.JWTConfig.RefreshTokenExpiry)
	snowflake.Init(conf.SnowflakeConfig.MachineID)

	// 4. 数据库
	repos, err := database.Init(&conf.DatabaseConfig, conf.LogConfig.Level)
	if err != nil {
		zap.L().Fatal("数据库初始化失败", zap.Error(err))
	}
	zap.L().Info("数据库初始化成功")

	// 5. Redis
	cache, err := myredis.Init(&conf.RedisConfig)
	if err != nil {
		zap.L().Fatal("Redis 初始化失败", zap.Error(err))
	}
	zap.L().Info("Redis 初始化成功")

	// 6. 短信验证码
	smsSvc, err := sms.Init(conf.AuthCodeConfig, cache)
	if err != nil {
		zap.L().Fatal("SMS Service 初始化失败", zap.Error(err))
	}

	// 7. 拼单事件投递
	publisher := mq.Init(&conf.KafkaConfig)
	defer publisher.Close()

	// 8. 上传文件存储
	files, err := storage.NewLocalStorage(&conf.StaticSrcConfig)
	if err != nil {
		zap.L().Fatal("初始化文件存储失败", zap.Error(err))
	}

	// 9. Service、Handler 与路由
	services := service.NewServices(repos, cache, publisher, smsSvc, files)
	handlers := handler.NewHandlers(services)
	engine := https_server.Init(conf, handlers, services.User)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", conf.MainConfig.Host, conf.MainConfig.Port),
		Handler: engine,
	}
	go func() {
		zap.L().Info("服务启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("server running fault", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("关闭服务器...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zap.L().Error("服务器关闭异常", zap.Error(err))
	}
	zap.L().Info("服务器已关闭")
}
