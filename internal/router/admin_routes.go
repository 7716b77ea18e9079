package router

import (
	"share_party_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterAdminRoutes 管理后台，需要 is_staff 或 is_superuser
func (rt *Router) RegisterAdminRoutes(r *gin.Engine) {
	adminGroup := r.Group("/system", append(rt.private(), middleware.RequireStaff())...)
	{
		// ===== 用户管理 =====
		adminGroup.GET("/users", rt.handlers.Admin.ListUsers)
		adminGroup.POST("/users/:id/ban", rt.handlers.Admin.BanUser)
		adminGroup.POST("/users/:id/unban", rt.handlers.Admin.UnbanUser)

		// ===== 举报处理 =====
		adminGroup.GET("/reports", rt.handlers.Admin.ListReports)
		adminGroup.POST("/reports/:id/status", rt.handlers.Admin.UpdateReportStatus)
		adminGroup.POST("/reports/:id/resolve", rt.handlers.Admin.ResolveReport)
	}
}
