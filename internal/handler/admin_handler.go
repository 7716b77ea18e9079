package handler

import (
	"share_party_server/internal/dto/request"
	"share_party_server/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler 管理后台，路由层已用 RequireStaff 校验权限
type AdminHandler struct {
	userSvc   service.UserService
	reportSvc service.ReportService
}

func NewAdminHandler(userSvc service.UserService, reportSvc service.ReportService) *AdminHandler {
	return &AdminHandler{userSvc: userSvc, reportSvc: reportSvc}
}

// ListUsers GET /system/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var req request.PageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.userSvc.ListUsers(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// BanUser POST /system/users/:id/ban
func (h *AdminHandler) BanUser(c *gin.Context) {
	if err := h.userSvc.Ban(actorOf(c), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// UnbanUser POST /system/users/:id/unban
func (h *AdminHandler) UnbanUser(c *gin.Context) {
	if err := h.userSvc.Unban(actorOf(c), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// ListReports GET /system/reports?status=
func (h *AdminHandler) ListReports(c *gin.Context) {
	var req request.ListReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.reportSvc.AdminList(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// UpdateReportStatus POST /system/reports/:id/status
func (h *AdminHandler) UpdateReportStatus(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		HandleError(c, err)
		return
	}
	var req request.UpdateReportStatusRequest
	if err := c.ShouldBind(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.reportSvc.UpdateStatus(id, req.Status)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ResolveReport POST /system/reports/:id/resolve
func (h *AdminHandler) ResolveReport(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		HandleError(c, err)
		return
	}
	var req request.ResolveReportRequest
	if err := c.ShouldBind(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.reportSvc.Resolve(id, req.Note)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
