// Package service 定义业务层接口
// 本文件定义所有 Service 接口，供 Handler 层调用
package service

import (
	"mime/multipart"

	"share_party_server/internal/dto/request"
	"share_party_server/internal/dto/respond"
	"share_party_server/internal/service/lifecycle"
)

// UserService 账号、个人主页与封禁
type UserService interface {
	Register(req request.RegisterRequest) (*respond.LoginRespond, error)
	Login(req request.LoginRequest) (*respond.LoginRespond, error)
	// FindActor 返回当前用户及账号是否可用，供鉴权中间件使用
	FindActor(uuid string) (*lifecycle.Actor, bool, error)
	GetProfile(actor lifecycle.Actor, uuid string) (*respond.ProfileRespond, error)
	UpdateProfile(actor lifecycle.Actor, req request.UpdateProfileRequest) (*respond.UserInfoRespond, error)
	UpdateAvatar(actor lifecycle.Actor, file *multipart.FileHeader) (*respond.UserInfoRespond, error)
	AddProfileComment(actor lifecycle.Actor, uuid string, req request.ProfileCommentRequest) (*respond.ProfileCommentRespond, error)
	SendPhoneCode(req request.SendPhoneCodeRequest) error
	VerifyPhone(actor lifecycle.Actor, req request.VerifyPhoneRequest) (*respond.UserInfoRespond, error)
	// ListUsers Ban Unban 仅管理员
	ListUsers(req request.PageRequest) (*respond.UserListRespond, error)
	Ban(actor lifecycle.Actor, uuid string) error
	Unban(actor lifecycle.Actor, uuid string) error
}

// AuthService Token 刷新
type AuthService interface {
	RefreshToken(req request.RefreshTokenRequest) (*respond.TokenRespond, error)
}

// PartyService 拼单与成员生命周期
type PartyService interface {
	Create(actor lifecycle.Actor, req request.PartyFormRequest, image *multipart.FileHeader) (*respond.PartySummaryRespond, error)
	Update(actor lifecycle.Actor, partyId uint, req request.PartyFormRequest, image *multipart.FileHeader) (*respond.PartySummaryRespond, error)
	Delete(actor lifecycle.Actor, partyId uint) error
	List(req request.ListPartyRequest) (*respond.PartyListRespond, error)
	Detail(actor lifecycle.Actor, partyId uint) (*respond.PartyDetailRespond, error)

	RequestJoin(actor lifecycle.Actor, partyId uint) (*respond.JoinStatusRespond, error)
	ManageJoinRequest(actor lifecycle.Actor, requestId uint, action string) error
	KickMember(actor lifecycle.Actor, partyId uint, targetId string) error
	LeaveParty(actor lifecycle.Actor, partyId uint) error
}

// ChatService 拼单内轮询聊天
type ChatService interface {
	GetMessages(actor lifecycle.Actor, partyId uint) ([]respond.ChatMessageRespond, error)
	SendMessage(actor lifecycle.Actor, partyId uint, req request.SendChatRequest, image *multipart.FileHeader) (*respond.ChatMessageRespond, error)
}

// NotificationService 站内通知
type NotificationService interface {
	List(actor lifecycle.Actor, page, pageSize int) (*respond.NotificationListRespond, error)
	UnreadCount(userId string) (int64, error)
	MarkRead(actor lifecycle.Actor, id uint) (*respond.MarkReadRespond, error)
	MarkAllRead(actor lifecycle.Actor) (*respond.MarkAllReadRespond, error)
}

// ReportService 举报
type ReportService interface {
	Create(actor lifecycle.Actor, req request.CreateReportRequest, evidence *multipart.FileHeader) (*respond.ReportRespond, error)
	ListMine(actor lifecycle.Actor) ([]respond.ReportRespond, error)
	Detail(actor lifecycle.Actor, id uint) (*respond.ReportRespond, error)
	AdminList(req request.ListReportRequest) (*respond.ReportListRespond, error)
	UpdateStatus(id uint, status string) (*respond.ReportRespond, error)
	Resolve(id uint, note string) (*respond.ReportRespond, error)
}

// PaymentService PromptPay 收款码
type PaymentService interface {
	GenerateQR(req request.GenerateQRRequest) ([]byte, error)
}
