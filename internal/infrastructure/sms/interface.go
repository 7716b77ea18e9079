// Package sms 提供手机号验证码服务
package sms

// SmsService 短信服务接口
// 抽象短信发送操作，支持多种实现（阿里云、本地 mock 等）
type SmsService interface {
	// SendVerificationCode 生成并发送 6 位验证码，60 秒内不能重复发送
	SendVerificationCode(telephone string) error
	// VerifyCode 校验验证码，成功后验证码立即失效
	VerifyCode(telephone, code string) error
}

var (
	_ SmsService = (*aliyunSmsService)(nil)
	_ SmsService = (*localSmsService)(nil)
)
