// Package https_server 创建 Gin 引擎并配置中间件、静态资源和路由
package https_server

import (
	"share_party_server/internal/config"
	"share_party_server/internal/handler"
	"share_party_server/internal/infrastructure/logger"
	"share_party_server/internal/infrastructure/middleware"
	"share_party_server/internal/infrastructure/storage"
	"share_party_server/internal/router"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Init 返回配置完成的 Gin 引擎
// 中间件顺序：日志、panic 恢复、安全响应头、CORS，之后是静态资源和业务路由
func Init(conf *config.Config, handlers *handler.Handlers, finder middleware.ActorFinder) *gin.Engine {
	isDev := conf.MainConfig.Mode == "dev"
	if !isDev {
		gin.SetMode(gin.ReleaseMode)
	}

	// 不使用 gin.Default() 以便完全控制中间件
	engine := gin.New()
	engine.Use(logger.GinLogger())
	engine.Use(logger.GinRecovery(true))
	engine.Use(middleware.SecureHeaders(&conf.SecurityConfig, isDev))

	corsConfig := cors.DefaultConfig()
	if len(conf.SecurityConfig.AllowedOrigins) == 0 || conf.SecurityConfig.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = conf.SecurityConfig.AllowedOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	engine.Use(cors.New(corsConfig))

	// 上传的图片：/static/avatars、/static/posts、/static/chat、/static/reports
	for prefix, dir := range storage.Dirs(&conf.StaticSrcConfig) {
		engine.Static(prefix, dir)
	}

	limiter := middleware.NewRateLimiter(conf.SecurityConfig.ChatRatePerMinute)
	rt := router.NewRouter(handlers, finder, limiter)
	rt.RegisterRoutes(engine)

	return engine
}
