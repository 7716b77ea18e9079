package sms

import (
	"context"
	"os"
	"strings"
	"time"

	openapi "github.com/alibabacloud-go/darabonba-openapi/v2/client"
	dysmsapi20170525 "github.com/alibabacloud-go/dysmsapi-20170525/v4/client"
	util "github.com/alibabacloud-go/tea-utils/v2/service"
	"github.com/alibabacloud-go/tea/tea"
	"go.uber.org/zap"

	"share_party_server/internal/config"
	myredis "share_party_server/internal/dao/redis"
	"share_party_server/pkg/constants"
	"share_party_server/pkg/errorx"
	"share_party_server/pkg/util/random"
)

// codeStore 验证码的缓存读写，两种实现共用
type codeStore struct {
	cache myredis.CacheService
}

// reserve 占用发送频率锁并生成验证码写入缓存
func (s codeStore) reserve(telephone string) (string, error) {
	ctx := context.Background()
	ok, err := s.cache.SetNX(ctx, constants.AUTH_CODE_LOCK_PREFIX+telephone, "1", constants.AUTH_CODE_RESEND_SECONDS*time.Second)
	if err != nil {
		zap.L().Error("缓存频率检查异常", zap.Error(err), zap.String("phone", telephone))
		return "", errorx.ErrServerBusy
	}
	if !ok {
		return "", errorx.New(errorx.CodeTooManyRequests, "目前还不能发送验证码，请稍后重试或输入已发送的验证码")
	}

	code := random.VerifyCode(6)
	if err := s.cache.Set(ctx, constants.AUTH_CODE_KEY_PREFIX+telephone, code, constants.AUTH_CODE_EXPIRY_MINUTES*time.Minute); err != nil {
		zap.L().Error("缓存写入验证码失败", zap.Error(err))
		_ = s.cache.Delete(ctx, constants.AUTH_CODE_LOCK_PREFIX+telephone)
		return "", errorx.ErrServerBusy
	}
	return code, nil
}

// release 发送失败时回滚，允许用户立即重试
func (s codeStore) release(telephone string) {
	ctx := context.Background()
	_ = s.cache.Delete(ctx, constants.AUTH_CODE_KEY_PREFIX+telephone)
	_ = s.cache.Delete(ctx, constants.AUTH_CODE_LOCK_PREFIX+telephone)
}

func (s codeStore) VerifyCode(telephone, code string) error {
	ctx := context.Background()
	key := constants.AUTH_CODE_KEY_PREFIX + telephone
	stored, err := s.cache.Get(ctx, key)
	if err != nil {
		zap.L().Error("读取验证码失败", zap.Error(err))
		return errorx.ErrServerBusy
	}
	if stored == "" || stored != strings.TrimSpace(code) {
		return errorx.New(errorx.CodeInvalidParam, "验证码错误或已过期")
	}
	if err := s.cache.Delete(ctx, key); err != nil {
		zap.L().Warn("删除验证码失败", zap.Error(err))
	}
	return nil
}

type localSmsService struct {
	codeStore
}

// SendVerificationCode 本地模式只把验证码写进日志
func (s *localSmsService) SendVerificationCode(telephone string) error {
	code, err := s.reserve(telephone)
	if err != nil {
		return err
	}
	zap.L().Info("【MockSMS】验证码已生成", zap.String("phone", telephone), zap.String("code", code))
	return nil
}

func shouldUseMock(auth config.AuthCodeConfig) bool {
	mode := strings.ToLower(strings.TrimSpace(os.Getenv("SHAREPARTY_SMS_MODE")))
	if mode == "mock" || mode == "local" || mode == "test" {
		return true
	}
	// 没配真实 AK 时默认走 mock
	ak := strings.ToLower(strings.TrimSpace(auth.AccessKeyID))
	ask := strings.ToLower(strings.TrimSpace(auth.AccessKeySecret))
	if ak == "" || ask == "" {
		return true
	}
	return strings.Contains(ak, "your accesskey") || strings.Contains(ask, "your accesskey")
}

// aliyunSmsService 阿里云短信服务实现
type aliyunSmsService struct {
	codeStore
	client *dysmsapi20170525.Client
	auth   config.AuthCodeConfig
}

// Init 根据配置创建短信服务
func Init(authCfg config.AuthCodeConfig, cacheService myredis.CacheService) (SmsService, error) {
	if shouldUseMock(authCfg) {
		zap.L().Warn("SMS Service 使用本地 Mock 模式（验证码只写日志）")
		return NewLocalSmsService(cacheService), nil
	}

	conf := &openapi.Config{
		AccessKeyId:     tea.String(authCfg.AccessKeyID),
		AccessKeySecret: tea.String(authCfg.AccessKeySecret),
	}
	conf.Endpoint = tea.String("dysmsapi.aliyuncs.com")
	client, err := dysmsapi20170525.NewClient(conf)
	if err != nil {
		zap.L().Error("Aliyun SMS Client Init Failed", zap.Error(err))
		return nil, err
	}
	return &aliyunSmsService{codeStore: codeStore{cache: cacheService}, client: client, auth: authCfg}, nil
}

// NewLocalSmsService 测试和本地开发使用
func NewLocalSmsService(cacheService myredis.CacheService) SmsService {
	return &localSmsService{codeStore{cache: cacheService}}
}

// SendVerificationCode 先占位后发送，发送失败回滚缓存
func (s *aliyunSmsService) SendVerificationCode(telephone string) error {
	if s.client == nil {
		zap.L().Error("短信服务调用失败：smsClient 未初始化")
		return errorx.New(errorx.CodeServerBusy, "短信服务未初始化")
	}

	code, err := s.reserve(telephone)
	if err != nil {
		return err
	}

	signName := s.auth.SignName
	if signName == "" {
		signName = "阿里云短信测试"
	}
	templateCode := s.auth.TemplateCode
	if templateCode == "" {
		templateCode = "SMS_154950909"
	}

	sendSmsRequest := &dysmsapi20170525.SendSmsRequest{
		SignName:      tea.String(signName),
		TemplateCode:  tea.String(templateCode),
		PhoneNumbers:  tea.String(telephone),
		TemplateParam: tea.String("{\"code\":\"" + code + "\"}"),
	}

	rsp, err := s.client.SendSmsWithOptions(sendSmsRequest, &util.RuntimeOptions{})
	if err != nil {
		zap.L().Error("调用阿里云短信接口发生系统级错误", zap.Error(err))
		s.release(telephone)
		return errorx.ErrServerBusy
	}

	// err 为 nil 时也要看 Body.Code 是否为 "OK"
	if rsp.Body != nil && tea.StringValue(rsp.Body.Code) != "OK" {
		zap.L().Error("短信发送失败", zap.String("response", *util.ToJSONString(rsp)))
		s.release(telephone)
		return errorx.ErrServerBusy
	}
	zap.L().Info("短信发送接口响应", zap.String("response", *util.ToJSONString(rsp)))
	return nil
}
