package model

import "time"

// Notification 站内通知
// 只会作为入团申请、审核、踢人、退出等操作的副作用被创建
type Notification struct {
	Id          uint      `gorm:"column:id;primaryKey;autoIncrement"`
	RecipientId string    `gorm:"column:recipient_id;type:char(20);index:idx_notification_recipient_read;not null"`
	SenderId    string    `gorm:"column:sender_id;type:char(20);not null"`
	PartyId     uint      `gorm:"column:party_id;index;not null"`
	Message     string    `gorm:"column:message;type:varchar(255);not null"`
	Link        string    `gorm:"column:link;type:varchar(255)"`
	IsRead      bool      `gorm:"column:is_read;index:idx_notification_recipient_read;not null;default:false"`
	CreatedAt   time.Time `gorm:"column:created_at;index"`
}

func (Notification) TableName() string {
	return "notification"
}
