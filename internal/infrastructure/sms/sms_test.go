package sms

import (
	"context"
	"testing"

	"share_party_server/internal/config"
	myredis "share_party_server/internal/dao/redis"
	"share_party_server/pkg/constants"
	"share_party_server/pkg/errorx"
)

func TestLocalSendAndVerify(t *testing.T) {
	cache := myredis.NewMemoryCache()
	svc := NewLocalSmsService(cache)

	if err := svc.SendVerificationCode("0812345678"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if err := svc.SendVerificationCode("0812345678"); errorx.GetCode(err) != errorx.CodeTooManyRequests {
		t.Fatalf("resend within cooldown err = %v", err)
	}

	code, _ := cache.Get(context.Background(), constants.AUTH_CODE_KEY_PREFIX+"0812345678")
	if len(code) != 6 {
		t.Fatalf("code = %q", code)
	}
	if err := svc.VerifyCode("0812345678", "000000x"); err == nil {
		t.Fatal("wrong code accepted")
	}
	if err := svc.VerifyCode("0812345678", code); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if err := svc.VerifyCode("0812345678", code); err == nil {
		t.Fatal("code must be single use")
	}
}

func TestShouldUseMock(t *testing.T) {
	t.Setenv("SHAREPARTY_SMS_MODE", "")
	if !shouldUseMock(authConfig("", "")) {
		t.Fatal("empty keys should use mock")
	}
	if !shouldUseMock(authConfig("your accessKeyID in alibaba cloud", "x")) {
		t.Fatal("placeholder keys should use mock")
	}
	if shouldUseMock(authConfig("LTAIabc", "secret")) {
		t.Fatal("real keys should not use mock")
	}
	t.Setenv("SHAREPARTY_SMS_MODE", "mock")
	if !shouldUseMock(authConfig("LTAIabc", "secret")) {
		t.Fatal("env override should force mock")
	}
}

func authConfig(ak, secret string) config.AuthCodeConfig {
	return config.AuthCodeConfig{AccessKeyID: ak, AccessKeySecret: secret}
}
