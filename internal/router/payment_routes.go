package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterPaymentRoutes PromptPay 收款码，游客也可生成
func (rt *Router) RegisterPaymentRoutes(r *gin.Engine) {
	r.GET("/api/generate-qr", rt.handlers.Payment.GenerateQR)
}
