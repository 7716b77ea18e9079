package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes 个人主页与资料
func (rt *Router) RegisterUserRoutes(r *gin.Engine) {
	r.GET("/profile/:id", append(rt.public(), rt.handlers.User.Profile)...)
	r.POST("/profile/:id/comment", append(rt.private(), rt.handlers.User.AddComment)...)

	meGroup := r.Group("/me", rt.private()...)
	{
		meGroup.GET("/profile", rt.handlers.User.MyProfile)
		meGroup.POST("/profile", rt.handlers.User.UpdateProfile)
		meGroup.POST("/avatar", rt.handlers.User.UpdateAvatar)
		meGroup.POST("/phone/code", rt.handlers.User.SendPhoneCode)
		meGroup.POST("/phone/verify", rt.handlers.User.VerifyPhone)
	}
}
