package repository

import (
	"share_party_server/internal/model"

	"gorm.io/gorm"
)

type profileCommentRepository struct {
	db *gorm.DB
}

func NewProfileCommentRepository(db *gorm.DB) ProfileCommentRepository {
	return &profileCommentRepository{db: db}
}

func (r *profileCommentRepository) Create(comment *model.ProfileComment) error {
	if err := r.db.Create(comment).Error; err != nil {
		return wrapDBError(err, "保存主页留言")
	}
	return nil
}

func (r *profileCommentRepository) FindByProfileOwner(ownerId string) ([]ProfileCommentWithAuthor, error) {
	var comments []ProfileCommentWithAuthor
	if err := r.db.Table("profile_comment").
		Select("profile_comment.*, user_info.username, user_info.avatar").
		Joins("LEFT JOIN user_info ON profile_comment.author_id = user_info.uuid").
		Where("profile_comment.profile_owner_id = ?", ownerId).
		Order("profile_comment.created_at DESC").Order("profile_comment.id DESC").
		Scan(&comments).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询主页留言 owner_id=%s", ownerId)
	}
	return comments, nil
}
