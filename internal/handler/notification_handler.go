package handler

import (
	"share_party_server/internal/dto/request"
	"share_party_server/internal/dto/respond"
	"share_party_server/internal/service"

	"github.com/gin-gonic/gin"
)

// NotificationHandler 站内通知
type NotificationHandler struct {
	notificationSvc service.NotificationService
}

func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

// List 通知列表，按时间倒序
// GET /notifications
func (h *NotificationHandler) List(c *gin.Context) {
	var req request.PageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.notificationSvc.List(actorOf(c), req.Page, req.PageSize)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Unread 未读数量，导航栏轮询使用
// GET /notifications/unread
func (h *NotificationHandler) Unread(c *gin.Context) {
	count, err := h.notificationSvc.UnreadCount(actorOf(c).UserId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, respond.UnreadCountRespond{Unread: count})
}

// MarkRead 标记单条已读，返回跳转链接
// POST /notification/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		HandleError(c, err)
		return
	}
	data, err := h.notificationSvc.MarkRead(actorOf(c), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// MarkAllRead 全部已读
// POST /notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	data, err := h.notificationSvc.MarkAllRead(actorOf(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
