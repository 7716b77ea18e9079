package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterNotificationRoutes 站内通知
func (rt *Router) RegisterNotificationRoutes(r *gin.Engine) {
	notificationGroup := r.Group("/notifications", rt.private()...)
	{
		notificationGroup.GET("", rt.handlers.Notification.List)
		notificationGroup.GET("/unread", rt.handlers.Notification.Unread)
		notificationGroup.POST("/read-all", rt.handlers.Notification.MarkAllRead)
	}
	r.POST("/notification/:id/read", append(rt.private(), rt.handlers.Notification.MarkRead)...)
}
