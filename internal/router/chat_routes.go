package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterChatRoutes 拼单内聊天，客户端轮询 get 接口
func (rt *Router) RegisterChatRoutes(r *gin.Engine) {
	chatGroup := r.Group("/post/:id/chat/api", rt.private()...)
	{
		chatGroup.GET("/get", rt.handlers.Chat.GetMessages)
		chatGroup.POST("/send", rt.limiter.Middleware(), rt.handlers.Chat.SendMessage)
	}
}
