package repository

import (
	"share_party_server/internal/model"

	"gorm.io/gorm"
)

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(report *model.Report) error {
	if err := r.db.Create(report).Error; err != nil {
		return wrapDBError(err, "创建举报")
	}
	return nil
}

func (r *reportRepository) FindById(id uint) (*model.Report, error) {
	var report model.Report
	if err := r.db.First(&report, id).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询举报 id=%d", id)
	}
	return &report, nil
}

func (r *reportRepository) FindByReporter(reporterId string) ([]model.Report, error) {
	var reports []model.Report
	if err := r.db.Where("reporter_id = ?", reporterId).Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户举报 reporter_id=%s", reporterId)
	}
	return reports, nil
}

func (r *reportRepository) List(status string, offset, limit int) ([]model.Report, int64, error) {
	query := r.db.Model(&model.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, wrapDBError(err, "统计举报数量")
	}
	var reports []model.Report
	if err := query.Order("created_at DESC").Order("id DESC").Offset(offset).Limit(limit).Find(&reports).Error; err != nil {
		return nil, 0, wrapDBError(err, "分页查询举报")
	}
	return reports, total, nil
}

func (r *reportRepository) CountByStatus() (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	if err := r.db.Model(&model.Report{}).Select("status, COUNT(*) AS count").Group("status").Scan(&rows).Error; err != nil {
		return nil, wrapDBError(err, "按状态统计举报")
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *reportRepository) UpdateFields(id uint, updates map[string]interface{}) error {
	if err := r.db.Model(&model.Report{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return wrapDBErrorf(err, "更新举报 id=%d", id)
	}
	return nil
}
