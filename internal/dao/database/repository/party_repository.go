package repository

import (
	"strings"

	"share_party_server/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// memberCountExpr 实时成员数子查询，不在拼单表上冗余存储
const memberCountExpr = "(SELECT COUNT(*) FROM party_member WHERE party_member.party_id = party.id)"

type partyRepository struct {
	db *gorm.DB
}

func NewPartyRepository(db *gorm.DB) PartyRepository {
	return &partyRepository{db: db}
}

func (r *partyRepository) withCount() *gorm.DB {
	return r.db.Model(&model.Party{}).Select("party.*, " + memberCountExpr + " AS member_count")
}

func (r *partyRepository) FindById(id uint) (*model.Party, error) {
	var party model.Party
	if err := r.db.First(&party, id).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询拼单 id=%d", id)
	}
	return &party, nil
}

func (r *partyRepository) FindByIdForUpdate(id uint) (*model.Party, error) {
	var party model.Party
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&party, id).Error; err != nil {
		return nil, wrapDBErrorf(err, "锁定拼单 id=%d", id)
	}
	return &party, nil
}

func (r *partyRepository) FindWithCount(id uint) (*PartyWithCount, error) {
	var party PartyWithCount
	if err := r.withCount().Where("party.id = ?", id).Take(&party).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询拼单 id=%d", id)
	}
	return &party, nil
}

func (r *partyRepository) Create(party *model.Party) error {
	if err := r.db.Create(party).Error; err != nil {
		return wrapDBError(err, "创建拼单")
	}
	return nil
}

func (r *partyRepository) Update(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	if err := r.db.Model(&model.Party{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return wrapDBErrorf(err, "更新拼单 id=%d", id)
	}
	return nil
}

func (r *partyRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Party{}, id).Error; err != nil {
		return wrapDBErrorf(err, "删除拼单 id=%d", id)
	}
	return nil
}

func (r *partyRepository) List(filter PartyFilter, offset, limit int) ([]PartyWithCount, int64, error) {
	query := r.db.Model(&model.Party{})
	if kw := strings.ToLower(strings.TrimSpace(filter.Keyword)); kw != "" {
		like := "%" + kw + "%"
		query = query.Where("(LOWER(party.title) LIKE ? OR LOWER(party.description) LIKE ?)", like, like)
	}
	if filter.Category != "" {
		query = query.Where("party.category = ?", filter.Category)
	}
	switch filter.Status {
	case "available":
		query = query.Where(memberCountExpr + " < party.member_limit")
	case "full":
		query = query.Where(memberCountExpr + " >= party.member_limit")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, wrapDBError(err, "统计拼单数量")
	}

	var parties []PartyWithCount
	if err := query.Select("party.*, " + memberCountExpr + " AS member_count").
		Order("party.created_at DESC").Order("party.id DESC").
		Offset(offset).Limit(limit).
		Find(&parties).Error; err != nil {
		return nil, 0, wrapDBError(err, "分页查询拼单")
	}
	return parties, total, nil
}

func (r *partyRepository) FindByOwnerId(ownerId string) ([]PartyWithCount, error) {
	var parties []PartyWithCount
	if err := r.withCount().Where("party.owner_id = ?", ownerId).
		Order("party.created_at DESC").Find(&parties).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户创建的拼单 owner_id=%s", ownerId)
	}
	return parties, nil
}

func (r *partyRepository) FindJoinedBy(userId string) ([]PartyWithCount, error) {
	var parties []PartyWithCount
	if err := r.withCount().
		Joins("JOIN party_member pm ON pm.party_id = party.id").
		Where("pm.user_id = ? AND party.owner_id <> ?", userId, userId).
		Order("party.created_at DESC").Find(&parties).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户加入的拼单 user_id=%s", userId)
	}
	return parties, nil
}
