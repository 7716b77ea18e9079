// Package repository 定义数据访问层接口和聚合结构
// 采用 Repository 模式将数据访问逻辑与业务逻辑分离
// 所有 Repository 接口在此文件定义，具体实现在各自的文件中
package repository

import (
	"time"

	"share_party_server/internal/model"

	"gorm.io/gorm"
)

// ==================== 复合结构 ====================

// PartyWithCount 拼单及其实时成员数
type PartyWithCount struct {
	model.Party
	MemberCount int64 `gorm:"column:member_count"`
}

// PartyFilter 拼单列表筛选条件
type PartyFilter struct {
	Keyword  string // 标题或描述模糊匹配
	Category string
	Status   string // "available" 未满员，"full" 已满员，空表示不限
}

// UserBrief 用户简要信息，用于成员列表、申请列表、聊天、留言
type UserBrief struct {
	UserId   string `gorm:"column:user_id"`
	Username string `gorm:"column:username"`
	Avatar   string `gorm:"column:avatar"`
}

// JoinRequestWithUserInfo 入团申请（含申请人资料）
type JoinRequestWithUserInfo struct {
	Id          uint      `gorm:"column:id"`
	Status      string    `gorm:"column:status"`
	RequestedAt time.Time `gorm:"column:requested_at"`
	UserBrief
}

// ChatMessageWithUserInfo 聊天消息（含发送者资料）
type ChatMessageWithUserInfo struct {
	model.ChatMessage
	Username string `gorm:"column:username"`
	Avatar   string `gorm:"column:avatar"`
}

// ProfileCommentWithAuthor 主页留言（含留言人资料）
type ProfileCommentWithAuthor struct {
	model.ProfileComment
	Username string `gorm:"column:username"`
	Avatar   string `gorm:"column:avatar"`
}

// ==================== Repository 接口定义 ====================

// UserRepository 用户数据访问接口
type UserRepository interface {
	FindByUuid(uuid string) (*model.UserInfo, error)
	FindByUsername(username string) (*model.UserInfo, error)
	ExistsByUsername(username string) (bool, error)
	Create(user *model.UserInfo) error
	// UpdateFields 按 uuid 更新指定字段
	UpdateFields(uuid string, updates map[string]interface{}) error
	// SetActive 启用或封禁账号
	SetActive(uuid string, active bool) error
	// List 分页获取用户列表，按注册时间倒序
	List(offset, limit int) ([]model.UserInfo, int64, error)
}

// PartyRepository 拼单数据访问接口
type PartyRepository interface {
	FindById(id uint) (*model.Party, error)
	// FindByIdForUpdate 在事务中对拼单行加排他锁（SELECT ... FOR UPDATE）
	FindByIdForUpdate(id uint) (*model.Party, error)
	FindWithCount(id uint) (*PartyWithCount, error)
	Create(party *model.Party) error
	Update(id uint, updates map[string]interface{}) error
	Delete(id uint) error
	// List 按条件分页查询，按创建时间倒序
	List(filter PartyFilter, offset, limit int) ([]PartyWithCount, int64, error)
	// FindByOwnerId 查询用户创建的拼单
	FindByOwnerId(ownerId string) ([]PartyWithCount, error)
	// FindJoinedBy 查询用户作为成员加入（非自己创建）的拼单
	FindJoinedBy(userId string) ([]PartyWithCount, error)
}

// PartyMemberRepository 拼单成员数据访问接口
type PartyMemberRepository interface {
	// Create 添加成员，已存在时忽略
	Create(member *model.PartyMember) error
	Delete(partyId uint, userId string) error
	DeleteByPartyId(partyId uint) error
	Exists(partyId uint, userId string) (bool, error)
	// CountByPartyId 实时统计成员数量
	CountByPartyId(partyId uint) (int64, error)
	FindMembersWithUserInfo(partyId uint) ([]UserBrief, error)
}

// JoinRequestRepository 入团申请数据访问接口
type JoinRequestRepository interface {
	FindById(id uint) (*model.JoinRequest, error)
	FindByPartyAndUser(partyId uint, userId string) (*model.JoinRequest, error)
	// CreateIfAbsent 不存在时插入，返回是否新建
	CreateIfAbsent(req *model.JoinRequest) (bool, error)
	UpdateStatus(id uint, status string) error
	DeleteByPartyAndUser(partyId uint, userId string) error
	DeleteByPartyId(partyId uint) error
	FindByPartyAndStatus(partyId uint, status string) ([]JoinRequestWithUserInfo, error)
}

// ChatMessageRepository 聊天消息数据访问接口
type ChatMessageRepository interface {
	Create(msg *model.ChatMessage) error
	// FindByPartyId 按时间升序返回拼单的全部消息
	FindByPartyId(partyId uint) ([]ChatMessageWithUserInfo, error)
	DeleteByPartyId(partyId uint) error
}

// ProfileCommentRepository 主页留言数据访问接口
type ProfileCommentRepository interface {
	Create(comment *model.ProfileComment) error
	// FindByProfileOwner 按时间倒序返回主页留言
	FindByProfileOwner(ownerId string) ([]ProfileCommentWithAuthor, error)
}

// ReportRepository 举报数据访问接口
type ReportRepository interface {
	Create(report *model.Report) error
	FindById(id uint) (*model.Report, error)
	FindByReporter(reporterId string) ([]model.Report, error)
	// List 按状态分页查询，status 为空表示全部
	List(status string, offset, limit int) ([]model.Report, int64, error)
	// CountByStatus 各状态的举报数量
	CountByStatus() (map[string]int64, error)
	UpdateFields(id uint, updates map[string]interface{}) error
}

// NotificationRepository 通知数据访问接口
type NotificationRepository interface {
	Create(n *model.Notification) error
	FindById(id uint) (*model.Notification, error)
	FindByRecipient(recipientId string, offset, limit int) ([]model.Notification, int64, error)
	CountUnread(recipientId string) (int64, error)
	MarkRead(id uint) error
	// MarkAllRead 只标记该用户自己的通知，返回受影响行数
	MarkAllRead(recipientId string) (int64, error)
	DeleteByPartyId(partyId uint) error
}

// ==================== Repository 聚合 ====================

// Repositories 聚合所有 Repository 实例
// 作为依赖注入的入口，Service 层通过此结构访问数据层
type Repositories struct {
	db             *gorm.DB
	User           UserRepository
	Party          PartyRepository
	PartyMember    PartyMemberRepository
	JoinRequest    JoinRequestRepository
	ChatMessage    ChatMessageRepository
	ProfileComment ProfileCommentRepository
	Report         ReportRepository
	Notification   NotificationRepository
}

// NewRepositories 创建所有 Repository 实例
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:             db,
		User:           NewUserRepository(db),
		Party:          NewPartyRepository(db),
		PartyMember:    NewPartyMemberRepository(db),
		JoinRequest:    NewJoinRequestRepository(db),
		ChatMessage:    NewChatMessageRepository(db),
		ProfileComment: NewProfileCommentRepository(db),
		Report:         NewReportRepository(db),
		Notification:   NewNotificationRepository(db),
	}
}

// Transaction 在数据库事务中执行函数
// 事务内的所有操作要么全部成功，要么全部回滚
func (r *Repositories) Transaction(fn func(txRepos *Repositories) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
