package handler

import (
	"share_party_server/internal/dto/request"
	"share_party_server/internal/service"

	"github.com/gin-gonic/gin"
)

// ChatHandler 拼单聊天，客户端定时轮询
type ChatHandler struct {
	chatSvc service.ChatService
}

func NewChatHandler(chatSvc service.ChatService) *ChatHandler {
	return &ChatHandler{chatSvc: chatSvc}
}

// GetMessages 全部消息，按时间升序
// GET /post/:id/chat/api/get
func (h *ChatHandler) GetMessages(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		HandleError(c, err)
		return
	}
	data, err := h.chatSvc.GetMessages(actorOf(c), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{"messages": data})
}

// SendMessage 发送文字或图片
// POST /post/:id/chat/api/send
func (h *ChatHandler) SendMessage(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		HandleError(c, err)
		return
	}
	var req request.SendChatRequest
	if err := c.ShouldBind(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	image, err := optionalFile(c, "image")
	if err != nil {
		HandleError(c, err)
		return
	}
	data, err := h.chatSvc.SendMessage(actorOf(c), id, req, image)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
