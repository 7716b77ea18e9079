package handler

import (
	"net/http"

	"share_party_server/internal/dto/request"
	"share_party_server/internal/service"

	"github.com/gin-gonic/gin"
)

// PaymentHandler PromptPay 收款码
type PaymentHandler struct {
	paymentSvc service.PaymentService
}

func NewPaymentHandler(paymentSvc service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentSvc: paymentSvc}
}

// GenerateQR 直接返回 PNG 图片
// GET /api/generate-qr?id=0812345678&amount=125.50
func (h *PaymentHandler) GenerateQR(c *gin.Context) {
	var req request.GenerateQRRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	png, err := h.paymentSvc.GenerateQR(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", png)
}
