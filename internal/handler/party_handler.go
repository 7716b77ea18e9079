package handler

import (
	"share_party_server/internal/dto/request"
	"share_party_server/internal/service"

	"github.com/gin-gonic/gin"
)

// PartyHandler 拼单与入团申请
type PartyHandler struct {
	partySvc service.PartyService
}

func NewPartyHandler(partySvc service.PartyService) *PartyHandler {
	return &PartyHandler{partySvc: partySvc}
}

// List 拼单列表，支持 q、category、status 筛选
// GET / 和 GET /post
func (h *PartyHandler) List(c *gin.Context) {
	var req request.ListPartyRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.partySvc.List(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Detail 拼单详情
// GET /post/:id
func (h *PartyHandler) Detail(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		HandleError(c, err)
		return
	}
	data, err := h.partySvc.Detail(actorOf(c), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Create 发布拼单，multipart 字段 image 为可选封面
// POST /post
func (h *PartyHandler) Create(c *gin.Context) {
	var req request.PartyFormRequest
	if err := c.ShouldBind(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	image, err := optionalFile(c, "image")
	if err != nil {
		HandleError(c, err)
		return
	}
	data, err := h.partySvc.Create(actorOf(c), req, image)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Update 修改拼单
// POST /post/:id/update
func (h *PartyHandler) Update(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		HandleError(c, err)
		return
	}
	var req request.PartyFormRequest
	if err := c.ShouldBind(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	image, err := optionalFile(c, "image")
	if err != nil {
		HandleError(c, err)
		return
	}
	data, err := h.partySvc.Update(actorOf(c), id, req, image)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Delete 删除拼单
// POST /post/:id/delete
func (h *PartyHandler) Delete(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		HandleError(c, err)
		return
	}
	if err := h.partySvc.Delete(actorOf(c), id); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// Join 申请加入，重复申请返回已有状态
// POST /post/:id/join
func (h *PartyHandler) Join(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		HandleError(c, err)
		return
	}
	data, err := h.partySvc.RequestJoin(actorOf(c), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ManageRequest 团长通过或拒绝申请，action 为 approve 或 reject
// POST /request/:requestId/:action
func (h *PartyHandler) ManageRequest(c *gin.Context) {
	id, err := uintParam(c, "requestId")
	if err != nil {
		HandleError(c, err)
		return
	}
	if err := h.partySvc.ManageJoinRequest(actorOf(c), id, c.Param("action")); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// Kick 团长移出成员
// POST /post/:id/kick/:userId
func (h *PartyHandler) Kick(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		HandleError(c, err)
		return
	}
	if err := h.partySvc.KickMember(actorOf(c), id, c.Param("userId")); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// Leave 成员退出
// POST /post/:id/leave
func (h *PartyHandler) Leave(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		HandleError(c, err)
		return
	}
	if err := h.partySvc.LeaveParty(actorOf(c), id); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
