package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterPartyRoutes 拼单、入团申请和成员管理
func (rt *Router) RegisterPartyRoutes(r *gin.Engine) {
	// ===== 公开 =====
	r.GET("/", append(rt.public(), rt.handlers.Party.List)...)
	r.GET("/post", append(rt.public(), rt.handlers.Party.List)...)
	r.GET("/post/:id", append(rt.public(), rt.handlers.Party.Detail)...)

	// ===== 需要登录 =====
	private := r.Group("", rt.private()...)
	{
		private.POST("/post", rt.handlers.Party.Create)
		private.POST("/post/:id/update", rt.handlers.Party.Update)
		private.POST("/post/:id/delete", rt.handlers.Party.Delete)
		private.POST("/post/:id/join", rt.limiter.Middleware(), rt.handlers.Party.Join)
		private.POST("/post/:id/leave", rt.handlers.Party.Leave)
		private.POST("/post/:id/kick/:userId", rt.handlers.Party.Kick)
		private.POST("/request/:requestId/:action", rt.handlers.Party.ManageRequest)
	}
}
