// Package auth 提供认证相关的业务逻辑
// 处理 Token 验证、刷新等功能
package auth

import (
	"context"
	"errors"

	"go.uber.org/zap"

	myredis "share_party_server/internal/dao/redis"
	"share_party_server/internal/dto/request"
	"share_party_server/internal/dto/respond"
	"share_party_server/pkg/constants"
	"share_party_server/pkg/errorx"
	"share_party_server/pkg/util/jwt"
)

// Service 认证服务实现
type Service struct {
	cache myredis.CacheService
}

func NewAuthService(cache myredis.CacheService) *Service {
	return &Service{cache: cache}
}

// ValidateTokenID 验证用户的 Token ID 是否为最近一次登录签发的
// 用户在其他设备登录或被封禁后，旧的 Token ID 失效
func (s *Service) ValidateTokenID(userID, tokenID string) (bool, error) {
	validTokenID, err := s.cache.Get(context.Background(), constants.USER_TOKEN_KEY_PREFIX+userID)
	if err != nil {
		return false, err
	}
	if validTokenID == "" {
		return false, nil
	}
	return tokenID == validTokenID, nil
}

// RefreshToken 用 Refresh Token 换取新的 Access Token
func (s *Service) RefreshToken(req request.RefreshTokenRequest) (*respond.TokenRespond, error) {
	claims, err := jwt.ParseRefreshToken(req.RefreshToken)
	if errors.Is(err, jwt.ErrWrongTokenType) {
		return nil, errorx.New(errorx.CodeUnauthorized, "请使用 Refresh Token")
	}
	if err != nil {
		return nil, errorx.New(errorx.CodeUnauthorized, "Refresh Token 已过期或无效，请重新登录")
	}

	ok, err := s.ValidateTokenID(claims.UserID, claims.TokenID)
	if err != nil {
		zap.L().Error("读取 Token ID 失败", zap.Error(err))
		return nil, errorx.New(errorx.CodeUnauthorized, "登录状态已失效，请重新登录")
	}
	if !ok {
		return nil, errorx.New(errorx.CodeUnauthorized, "您的账号已在其他设备登录或登录已失效，请重新登录")
	}

	accessToken, err := jwt.GenerateAccessToken(claims.UserID)
	if err != nil {
		zap.L().Error("生成 Access Token 失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return &respond.TokenRespond{AccessToken: accessToken}, nil
}
