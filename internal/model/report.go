package model

import "time"

// Report 用户举报 / 问题反馈
type Report struct {
	Id             uint      `gorm:"column:id;primaryKey;autoIncrement"`
	ReporterId     string    `gorm:"column:reporter_id;type:char(20);index;not null;comment:举报人"`
	Category       string    `gorm:"column:category;type:varchar(10);not null;comment:BUG/USER/SCAM/OTHER"`
	Title          string    `gorm:"column:title;type:varchar(200);not null"`
	Description    string    `gorm:"column:description;type:text"`
	EvidenceImage  string    `gorm:"column:evidence_image;type:varchar(255);comment:证据截图"`
	Status         string    `gorm:"column:status;type:varchar(15);index;not null;default:PENDING"`
	ResolutionNote string    `gorm:"column:resolution_note;type:text;comment:处理说明"`
	CreatedAt      time.Time `gorm:"column:created_at;index"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (Report) TableName() string {
	return "report"
}
