// Package payment 生成 PromptPay 收款二维码，不处理实际支付
package payment

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"share_party_server/internal/dto/request"
	"share_party_server/pkg/errorx"
	"share_party_server/pkg/promptpay"
)

// qrSize 二维码图片边长（像素）
const qrSize = 320

type paymentService struct{}

func NewPaymentService() *paymentService {
	return &paymentService{}
}

// GenerateQR 返回 PNG 图片
// amount 为空或 0 时生成不带金额的静态码
func (s *paymentService) GenerateQR(req request.GenerateQRRequest) ([]byte, error) {
	id := strings.TrimSpace(req.Id)
	if id == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "请提供 PromptPay 账号")
	}

	amount := decimal.Zero
	if a := strings.TrimSpace(req.Amount); a != "" {
		var err error
		if amount, err = decimal.NewFromString(a); err != nil {
			return nil, errorx.New(errorx.CodeInvalidParam, "金额格式错误")
		}
	}

	payload, err := promptpay.Payload(id, amount.Round(2))
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeInvalidParam, "PromptPay 账号或金额不正确")
	}

	png, err := qrcode.Encode(payload, qrcode.Medium, qrSize)
	if err != nil {
		zap.L().Error("生成二维码失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return png, nil
}
