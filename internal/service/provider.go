// Package service 提供业务逻辑层
// 本文件实现 Service 层的依赖注入和聚合
package service

import (
	"share_party_server/internal/dao/database/repository"
	myredis "share_party_server/internal/dao/redis"
	"share_party_server/internal/infrastructure/mq"
	"share_party_server/internal/infrastructure/sms"
	"share_party_server/internal/infrastructure/storage"
	"share_party_server/internal/service/auth"
	"share_party_server/internal/service/chat"
	"share_party_server/internal/service/notification"
	"share_party_server/internal/service/party"
	"share_party_server/internal/service/payment"
	"share_party_server/internal/service/report"
	"share_party_server/internal/service/user"
)

// Services 聚合所有 Service 实例，Handler 层通过此结构访问各个 Service
type Services struct {
	User         UserService
	Auth         AuthService
	Party        PartyService
	Chat         ChatService
	Notification NotificationService
	Report       ReportService
	Payment      PaymentService
}

// NewServices 创建并注入所有 Service 实例
func NewServices(repos *repository.Repositories, cache myredis.AsyncCacheService,
	publisher mq.EventPublisher, smsSvc sms.SmsService, files storage.FileStorage) *Services {
	return &Services{
		User:         user.NewUserService(repos, cache, smsSvc, files),
		Auth:         auth.NewAuthService(cache),
		Party:        party.NewPartyService(repos, cache, publisher, files),
		Chat:         chat.NewChatService(repos, files),
		Notification: notification.NewNotificationService(repos, cache),
		Report:       report.NewReportService(repos, files),
		Payment:      payment.NewPaymentService(),
	}
}
