package request

// CreateReportRequest 提交举报，证据截图通过 multipart 的 evidence_image 字段上传
type CreateReportRequest struct {
	Category    string `json:"category" form:"category" binding:"required,oneof=BUG USER SCAM OTHER"`
	Title       string `json:"title" form:"title" binding:"required,max=200"`
	Description string `json:"description" form:"description" binding:"max=5000"`
}

// ListReportRequest 管理后台举报列表
type ListReportRequest struct {
	Status   string `form:"status"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// UpdateReportStatusRequest 管理员修改举报状态
type UpdateReportStatusRequest struct {
	Status string `json:"status" form:"status" binding:"required"`
}

// ResolveReportRequest 管理员处理完成并填写说明
type ResolveReportRequest struct {
	Note string `json:"note" form:"note" binding:"max=5000"`
}
