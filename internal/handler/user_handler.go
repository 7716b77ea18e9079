// Package handler 提供 HTTP 请求处理器
// 本文件处理账号与个人主页相关的请求
package handler

import (
	"share_party_server/internal/dto/request"
	"share_party_server/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler 用户请求处理器
type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// Register 用户注册
// POST /register
func (h *UserHandler) Register(c *gin.Context) {
	var req request.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.userSvc.Register(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Login 用户名密码登录
// POST /login
func (h *UserHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.userSvc.Login(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Profile 个人主页，游客可访问
// GET /profile/:id
func (h *UserHandler) Profile(c *gin.Context) {
	data, err := h.userSvc.GetProfile(actorOf(c), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// MyProfile 当前用户的主页
// GET /me/profile
func (h *UserHandler) MyProfile(c *gin.Context) {
	actor := actorOf(c)
	data, err := h.userSvc.GetProfile(actor, actor.UserId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// UpdateProfile 修改邮箱和简介
// POST /me/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req request.UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.userSvc.UpdateProfile(actorOf(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// UpdateAvatar 上传头像，multipart 字段 avatar
// POST /me/avatar
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	file, err := optionalFile(c, "avatar")
	if err != nil {
		HandleError(c, err)
		return
	}
	data, err := h.userSvc.UpdateAvatar(actorOf(c), file)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// AddComment 在主页留言
// POST /profile/:id/comment
func (h *UserHandler) AddComment(c *gin.Context) {
	var req request.ProfileCommentRequest
	if err := c.ShouldBind(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.userSvc.AddProfileComment(actorOf(c), c.Param("id"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// SendPhoneCode 发送手机验证码
// POST /me/phone/code
func (h *UserHandler) SendPhoneCode(c *gin.Context) {
	var req request.SendPhoneCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.userSvc.SendPhoneCode(req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// VerifyPhone 校验验证码并绑定手机号
// POST /me/phone/verify
func (h *UserHandler) VerifyPhone(c *gin.Context) {
	var req request.VerifyPhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.userSvc.VerifyPhone(actorOf(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
