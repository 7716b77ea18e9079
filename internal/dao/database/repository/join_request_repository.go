package repository

import (
	"share_party_server/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type joinRequestRepository struct {
	db *gorm.DB
}

func NewJoinRequestRepository(db *gorm.DB) JoinRequestRepository {
	return &joinRequestRepository{db: db}
}

func (r *joinRequestRepository) FindById(id uint) (*model.JoinRequest, error) {
	var req model.JoinRequest
	if err := r.db.First(&req, id).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询入团申请 id=%d", id)
	}
	return &req, nil
}

func (r *joinRequestRepository) FindByPartyAndUser(partyId uint, userId string) (*model.JoinRequest, error) {
	var req model.JoinRequest
	if err := r.db.Where("party_id = ? AND user_id = ?", partyId, userId).First(&req).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询入团申请 party_id=%d user_id=%s", partyId, userId)
	}
	return &req, nil
}

// CreateIfAbsent 依赖 (party_id, user_id) 唯一索引
// 并发重复申请时只有一个请求能插入成功，其余 RowsAffected 为 0
func (r *joinRequestRepository) CreateIfAbsent(req *model.JoinRequest) (bool, error) {
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(req)
	if result.Error != nil {
		return false, wrapDBErrorf(result.Error, "创建入团申请 party_id=%d user_id=%s", req.PartyId, req.UserId)
	}
	return result.RowsAffected > 0, nil
}

func (r *joinRequestRepository) UpdateStatus(id uint, status string) error {
	if err := r.db.Model(&model.JoinRequest{}).Where("id = ?", id).Update("status", status).Error; err != nil {
		return wrapDBErrorf(err, "更新入团申请状态 id=%d", id)
	}
	return nil
}

func (r *joinRequestRepository) DeleteByPartyAndUser(partyId uint, userId string) error {
	if err := r.db.Where("party_id = ? AND user_id = ?", partyId, userId).Delete(&model.JoinRequest{}).Error; err != nil {
		return wrapDBErrorf(err, "删除入团申请 party_id=%d user_id=%s", partyId, userId)
	}
	return nil
}

func (r *joinRequestRepository) DeleteByPartyId(partyId uint) error {
	if err := r.db.Where("party_id = ?", partyId).Delete(&model.JoinRequest{}).Error; err != nil {
		return wrapDBErrorf(err, "删除拼单全部入团申请 party_id=%d", partyId)
	}
	return nil
}

func (r *joinRequestRepository) FindByPartyAndStatus(partyId uint, status string) ([]JoinRequestWithUserInfo, error) {
	var reqs []JoinRequestWithUserInfo
	if err := r.db.Table("join_request").
		Select("join_request.id, join_request.status, join_request.requested_at, user_info.uuid AS user_id, user_info.username, user_info.avatar").
		Joins("JOIN user_info ON join_request.user_id = user_info.uuid").
		Where("join_request.party_id = ? AND join_request.status = ?", partyId, status).
		Order("join_request.requested_at ASC").
		Scan(&reqs).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询入团申请列表 party_id=%d", partyId)
	}
	return reqs, nil
}
