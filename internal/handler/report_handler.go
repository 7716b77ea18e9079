package handler

import (
	"share_party_server/internal/dto/request"
	"share_party_server/internal/service"

	"github.com/gin-gonic/gin"
)

// ReportHandler 用户提交和查看自己的举报
type ReportHandler struct {
	reportSvc service.ReportService
}

func NewReportHandler(reportSvc service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// Create 提交举报，multipart 字段 evidence_image 为可选截图
// POST /report
func (h *ReportHandler) Create(c *gin.Context) {
	var req request.CreateReportRequest
	if err := c.ShouldBind(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	evidence, err := optionalFile(c, "evidence_image")
	if err != nil {
		HandleError(c, err)
		return
	}
	data, err := h.reportSvc.Create(actorOf(c), req, evidence)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ListMine 我提交的举报
// GET /my-reports
func (h *ReportHandler) ListMine(c *gin.Context) {
	data, err := h.reportSvc.ListMine(actorOf(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{"reports": data})
}

// Detail 举报详情，举报人或管理员可见
// GET /report/:id
func (h *ReportHandler) Detail(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		HandleError(c, err)
		return
	}
	data, err := h.reportSvc.Detail(actorOf(c), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
