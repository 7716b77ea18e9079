package repository

import (
	"share_party_server/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type partyMemberRepository struct {
	db *gorm.DB
}

func NewPartyMemberRepository(db *gorm.DB) PartyMemberRepository {
	return &partyMemberRepository{db: db}
}

func (r *partyMemberRepository) Create(member *model.PartyMember) error {
	if err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(member).Error; err != nil {
		return wrapDBErrorf(err, "添加拼单成员 party_id=%d user_id=%s", member.PartyId, member.UserId)
	}
	return nil
}

func (r *partyMemberRepository) Delete(partyId uint, userId string) error {
	if err := r.db.Where("party_id = ? AND user_id = ?", partyId, userId).Delete(&model.PartyMember{}).Error; err != nil {
		return wrapDBErrorf(err, "移除拼单成员 party_id=%d user_id=%s", partyId, userId)
	}
	return nil
}

func (r *partyMemberRepository) DeleteByPartyId(partyId uint) error {
	if err := r.db.Where("party_id = ?", partyId).Delete(&model.PartyMember{}).Error; err != nil {
		return wrapDBErrorf(err, "删除拼单全部成员 party_id=%d", partyId)
	}
	return nil
}

func (r *partyMemberRepository) Exists(partyId uint, userId string) (bool, error) {
	var count int64
	if err := r.db.Model(&model.PartyMember{}).Where("party_id = ? AND user_id = ?", partyId, userId).Count(&count).Error; err != nil {
		return false, wrapDBErrorf(err, "查询拼单成员 party_id=%d user_id=%s", partyId, userId)
	}
	return count > 0, nil
}

func (r *partyMemberRepository) CountByPartyId(partyId uint) (int64, error) {
	var count int64
	if err := r.db.Model(&model.PartyMember{}).Where("party_id = ?", partyId).Count(&count).Error; err != nil {
		return 0, wrapDBErrorf(err, "统计拼单成员 party_id=%d", partyId)
	}
	return count, nil
}

// FindMembersWithUserInfo 通过 JOIN 用户表获取成员昵称和头像，按加入顺序排列
func (r *partyMemberRepository) FindMembersWithUserInfo(partyId uint) ([]UserBrief, error) {
	var members []UserBrief
	if err := r.db.Table("party_member").
		Select("user_info.uuid AS user_id, user_info.username, user_info.avatar").
		Joins("JOIN user_info ON party_member.user_id = user_info.uuid").
		Where("party_member.party_id = ?", partyId).
		Order("party_member.id ASC").
		Scan(&members).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询拼单成员详情 party_id=%d", partyId)
	}
	return members, nil
}
