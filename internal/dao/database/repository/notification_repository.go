package repository

import (
	"share_party_server/internal/model"

	"gorm.io/gorm"
)

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(n *model.Notification) error {
	if err := r.db.Create(n).Error; err != nil {
		return wrapDBErrorf(err, "创建通知 recipient_id=%s", n.RecipientId)
	}
	return nil
}

func (r *notificationRepository) FindById(id uint) (*model.Notification, error) {
	var n model.Notification
	if err := r.db.First(&n, id).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询通知 id=%d", id)
	}
	return &n, nil
}

func (r *notificationRepository) FindByRecipient(recipientId string, offset, limit int) ([]model.Notification, int64, error) {
	query := r.db.Model(&model.Notification{}).Where("recipient_id = ?", recipientId)
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, wrapDBErrorf(err, "统计通知 recipient_id=%s", recipientId)
	}
	var list []model.Notification
	if err := query.Order("created_at DESC").Order("id DESC").Offset(offset).Limit(limit).Find(&list).Error; err != nil {
		return nil, 0, wrapDBErrorf(err, "查询通知 recipient_id=%s", recipientId)
	}
	return list, total, nil
}

func (r *notificationRepository) CountUnread(recipientId string) (int64, error) {
	var count int64
	if err := r.db.Model(&model.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientId, false).
		Count(&count).Error; err != nil {
		return 0, wrapDBErrorf(err, "统计未读通知 recipient_id=%s", recipientId)
	}
	return count, nil
}

func (r *notificationRepository) MarkRead(id uint) error {
	if err := r.db.Model(&model.Notification{}).Where("id = ?", id).Update("is_read", true).Error; err != nil {
		return wrapDBErrorf(err, "标记通知已读 id=%d", id)
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(recipientId string) (int64, error) {
	result := r.db.Model(&model.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientId, false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, wrapDBErrorf(result.Error, "全部标记已读 recipient_id=%s", recipientId)
	}
	return result.RowsAffected, nil
}

func (r *notificationRepository) DeleteByPartyId(partyId uint) error {
	if err := r.db.Where("party_id = ?", partyId).Delete(&model.Notification{}).Error; err != nil {
		return wrapDBErrorf(err, "删除拼单相关通知 party_id=%d", partyId)
	}
	return nil
}
