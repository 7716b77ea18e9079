package model

import "time"

// PartyMember 拼单成员关联表
// 团长在创建拼单的同一事务中写入第一条记录
type PartyMember struct {
	Id        uint      `gorm:"column:id;primaryKey;autoIncrement"`
	PartyId   uint      `gorm:"column:party_id;not null;uniqueIndex:idx_party_member_party_user;comment:拼单id"`
	UserId    string    `gorm:"column:user_id;type:char(20);not null;uniqueIndex:idx_party_member_party_user;index;comment:用户id"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (PartyMember) TableName() string {
	return "party_member"
}
