package model

import "time"

// JoinRequest 入团申请
// (party_id, user_id) 唯一，重复申请复用同一行；被踢或退出时物理删除
type JoinRequest struct {
	Id          uint      `gorm:"column:id;primaryKey;autoIncrement"`
	PartyId     uint      `gorm:"column:party_id;not null;uniqueIndex:idx_join_request_party_user;comment:拼单id"`
	UserId      string    `gorm:"column:user_id;type:char(20);not null;uniqueIndex:idx_join_request_party_user;comment:申请人id"`
	Status      string    `gorm:"column:status;type:varchar(10);index;not null;default:PENDING;comment:PENDING/APPROVED/REJECTED"`
	RequestedAt time.Time `gorm:"column:requested_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (JoinRequest) TableName() string {
	return "join_request"
}
