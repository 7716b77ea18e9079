// Package router 提供 HTTP 路由注册
// 本文件是路由注册的入口，聚合所有子模块的路由
package router

import (
	"share_party_server/internal/handler"
	"share_party_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// Router 路由管理器，持有 Handler 聚合和鉴权依赖
type Router struct {
	handlers *handler.Handlers
	finder   middleware.ActorFinder
	limiter  *middleware.RateLimiter
}

// NewRouter finder 用于加载当前用户，limiter 用于聊天发送和入团申请限流
func NewRouter(handlers *handler.Handlers, finder middleware.ActorFinder, limiter *middleware.RateLimiter) *Router {
	return &Router{handlers: handlers, finder: finder, limiter: limiter}
}

// public 游客可访问，携带合法 Token 时识别当前用户
func (rt *Router) public() []gin.HandlerFunc {
	return []gin.HandlerFunc{middleware.OptionalJWTAuth(), middleware.LoadActor(rt.finder, false)}
}

// private 必须登录且账号未被封禁
func (rt *Router) private() []gin.HandlerFunc {
	return []gin.HandlerFunc{middleware.JWTAuth(), middleware.LoadActor(rt.finder, true)}
}

// RegisterRoutes 注册所有路由
func (rt *Router) RegisterRoutes(r *gin.Engine) {
	rt.RegisterAuthRoutes(r)
	rt.RegisterUserRoutes(r)
	rt.RegisterPartyRoutes(r)
	rt.RegisterChatRoutes(r)
	rt.RegisterNotificationRoutes(r)
	rt.RegisterReportRoutes(r)
	rt.RegisterPaymentRoutes(r)
	rt.RegisterAdminRoutes(r)
}
