package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterReportRoutes 用户举报
func (rt *Router) RegisterReportRoutes(r *gin.Engine) {
	private := r.Group("", rt.private()...)
	{
		private.POST("/report", rt.handlers.Report.Create)
		private.GET("/report/:id", rt.handlers.Report.Detail)
		private.GET("/my-reports", rt.handlers.Report.ListMine)
	}
}
