package respond

// ReportRespond 举报详情
type ReportRespond struct {
	Id             uint   `json:"id"`
	ReporterId     string `json:"reporter_id"`
	Category       string `json:"category"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	EvidenceImage  string `json:"evidence_image"`
	Status         string `json:"status"`
	ResolutionNote string `json:"resolution_note"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

// ReportListRespond 管理后台举报列表，附带各状态数量
type ReportListRespond struct {
	Reports      []ReportRespond  `json:"reports"`
	Total        int64            `json:"total"`
	Page         int              `json:"page"`
	PageSize     int              `json:"page_size"`
	StatusCounts map[string]int64 `json:"status_counts"`
}
