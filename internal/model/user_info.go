// Package model 定义数据库实体模型
// 本文件定义用户信息模型，包含用户基本资料和认证信息
package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserInfo 用户信息模型
// 对应数据库 user_info 表
type UserInfo struct {
	Id uint `gorm:"column:id;primaryKey;autoIncrement"`

	// Uuid 用户唯一标识
	// 格式：U + 6位日期 + 11位随机字符，如 "U241230AbCdE123456"
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:用户唯一id"`

	Username string `gorm:"column:username;uniqueIndex;type:varchar(30);not null;comment:用户名"`
	Email    string `gorm:"column:email;type:varchar(100);comment:邮箱"`

	// Password 存储 bcrypt 哈希后的密码，不存储明文
	Password string `gorm:"column:password;type:varchar(100);not null;comment:密码"`

	Bio string `gorm:"column:bio;type:varchar(500);comment:个人简介"`

	// PhoneNumber 同时作为 PromptPay 收款账号
	PhoneNumber   string `gorm:"column:phone_number;type:varchar(15);comment:手机号"`
	PhoneVerified bool   `gorm:"column:phone_verified;not null;default:false;comment:手机号是否已验证"`

	Avatar string `gorm:"column:avatar;type:varchar(255);comment:头像"`

	// IsActive 为 false 表示账号被封禁
	IsActive    bool `gorm:"column:is_active;index;not null;default:true;comment:是否启用"`
	IsStaff     bool `gorm:"column:is_staff;not null;default:false;comment:是否管理员"`
	IsSuperuser bool `gorm:"column:is_superuser;not null;default:false;comment:是否超级管理员"`

	CreatedAt time.Time `gorm:"column:created_at;index"`
	UpdatedAt time.Time `gorm:"column:updated_at"`

	// RawPassword 明文密码（不存入数据库），在 BeforeSave 中加密
	RawPassword string `gorm:"-" json:"-"`
}

func (UserInfo) TableName() string {
	return "user_info"
}

// BeforeSave GORM Hook：在创建和更新前将 RawPassword 加密后存入 Password
func (u *UserInfo) BeforeSave(tx *gorm.DB) (err error) {
	if u.RawPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.RawPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u.Password = string(hash)
		u.RawPassword = ""
	}
	return nil
}

// CheckPassword 校验密码是否正确
func (u *UserInfo) CheckPassword(plaintext string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plaintext))
	return err == nil
}
