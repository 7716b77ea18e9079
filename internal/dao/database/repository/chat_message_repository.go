package repository

import (
	"share_party_server/internal/model"

	"gorm.io/gorm"
)

type chatMessageRepository struct {
	db *gorm.DB
}

func NewChatMessageRepository(db *gorm.DB) ChatMessageRepository {
	return &chatMessageRepository{db: db}
}

func (r *chatMessageRepository) Create(msg *model.ChatMessage) error {
	if err := r.db.Create(msg).Error; err != nil {
		return wrapDBErrorf(err, "保存聊天消息 party_id=%d", msg.PartyId)
	}
	return nil
}

// FindByPartyId 同一时间戳按雪花 id 排序，保证顺序稳定
func (r *chatMessageRepository) FindByPartyId(partyId uint) ([]ChatMessageWithUserInfo, error) {
	var msgs []ChatMessageWithUserInfo
	if err := r.db.Table("chat_message").
		Select("chat_message.*, user_info.username, user_info.avatar").
		Joins("LEFT JOIN user_info ON chat_message.user_id = user_info.uuid").
		Where("chat_message.party_id = ?", partyId).
		Order("chat_message.timestamp ASC").Order("chat_message.msg_id ASC").
		Scan(&msgs).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询聊天记录 party_id=%d", partyId)
	}
	return msgs, nil
}

func (r *chatMessageRepository) DeleteByPartyId(partyId uint) error {
	if err := r.db.Where("party_id = ?", partyId).Delete(&model.ChatMessage{}).Error; err != nil {
		return wrapDBErrorf(err, "删除拼单聊天记录 party_id=%d", partyId)
	}
	return nil
}
