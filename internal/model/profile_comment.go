package model

import "time"

// ProfileComment 个人主页留言
type ProfileComment struct {
	Id             uint      `gorm:"column:id;primaryKey;autoIncrement"`
	ProfileOwnerId string    `gorm:"column:profile_owner_id;type:char(20);index;not null;comment:主页所属用户"`
	AuthorId       string    `gorm:"column:author_id;type:char(20);not null;comment:留言人"`
	Comment        string    `gorm:"column:comment;type:text;not null"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (ProfileComment) TableName() string {
	return "profile_comment"
}
