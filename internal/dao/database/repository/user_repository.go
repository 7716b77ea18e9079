package repository

import (
	"share_party_server/internal/model"

	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByUuid(uuid string) (*model.UserInfo, error) {
	var user model.UserInfo
	if err := r.db.Where("uuid = ?", uuid).First(&user).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户 uuid=%s", uuid)
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(username string) (*model.UserInfo, error) {
	var user model.UserInfo
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户 username=%s", username)
	}
	return &user, nil
}

func (r *userRepository) ExistsByUsername(username string) (bool, error) {
	var count int64
	if err := r.db.Model(&model.UserInfo{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, wrapDBErrorf(err, "统计用户 username=%s", username)
	}
	return count > 0, nil
}

func (r *userRepository) Create(user *model.UserInfo) error {
	if err := r.db.Create(user).Error; err != nil {
		return wrapDBError(err, "创建用户")
	}
	return nil
}

func (r *userRepository) UpdateFields(uuid string, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	if err := r.db.Model(&model.UserInfo{}).Where("uuid = ?", uuid).Updates(updates).Error; err != nil {
		return wrapDBErrorf(err, "更新用户 uuid=%s", uuid)
	}
	return nil
}

// SetActive 使用 Update 而不是 Updates，保证 false 也会被写入
func (r *userRepository) SetActive(uuid string, active bool) error {
	if err := r.db.Model(&model.UserInfo{}).Where("uuid = ?", uuid).Update("is_active", active).Error; err != nil {
		return wrapDBErrorf(err, "更新用户状态 uuid=%s", uuid)
	}
	return nil
}

func (r *userRepository) List(offset, limit int) ([]model.UserInfo, int64, error) {
	var (
		users []model.UserInfo
		total int64
	)
	if err := r.db.Model(&model.UserInfo{}).Count(&total).Error; err != nil {
		return nil, 0, wrapDBError(err, "统计用户数量")
	}
	if err := r.db.Order("created_at DESC").Order("id DESC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, wrapDBError(err, "分页查询用户")
	}
	return users, total, nil
}
