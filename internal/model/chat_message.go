package model

import "time"

// ChatMessage 拼单内的聊天消息，只追加不修改
type ChatMessage struct {
	Id        uint      `gorm:"column:id;primaryKey;autoIncrement"`
	MsgId     int64     `gorm:"column:msg_id;uniqueIndex;not null;comment:雪花id"`
	PartyId   uint      `gorm:"column:party_id;index:idx_chat_party_time;not null;comment:拼单id"`
	UserId    string    `gorm:"column:user_id;type:char(20);not null;comment:发送者id"`
	Message   string    `gorm:"column:message;type:text;comment:文本内容"`
	Image     string    `gorm:"column:image;type:varchar(255);comment:图片"`
	Timestamp time.Time `gorm:"column:timestamp;index:idx_chat_party_time;not null"`
}

func (ChatMessage) TableName() string {
	return "chat_message"
}
