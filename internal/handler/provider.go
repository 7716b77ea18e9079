// Package handler 提供 HTTP 请求处理器
// 本文件定义 Handler 聚合结构和构造函数
package handler

import (
	"share_party_server/internal/service"
)

// Handlers 聚合所有 Handler 实例，Router 层通过此结构访问各个 Handler
type Handlers struct {
	User         *UserHandler
	Auth         *AuthHandler
	Party        *PartyHandler
	Chat         *ChatHandler
	Notification *NotificationHandler
	Report       *ReportHandler
	Admin        *AdminHandler
	Payment      *PaymentHandler
}

// NewHandlers 创建并注入所有 Handler 实例
func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		User:         NewUserHandler(svc.User),
		Auth:         NewAuthHandler(svc.Auth),
		Party:        NewPartyHandler(svc.Party),
		Chat:         NewChatHandler(svc.Chat),
		Notification: NewNotificationHandler(svc.Notification),
		Report:       NewReportHandler(svc.Report),
		Admin:        NewAdminHandler(svc.User, svc.Report),
		Payment:      NewPaymentHandler(svc.Payment),
	}
}
