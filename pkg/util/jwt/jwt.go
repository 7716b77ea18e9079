// Package jwt 签发和校验登录令牌
// Access Token 用于接口认证，Refresh Token 只用于换取新的 Access Token，
// 其 TokenID 同时记录在缓存中，再次登录会使旧的 Refresh Token 失效
package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	issuer = "share_party"

	SubjectAccess  = "access_token"
	SubjectRefresh = "refresh_token"
)

var ErrWrongTokenType = errors.New("jwt: wrong token type")

type settings struct {
	secret        []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

var current settings

// Init 启动时调用一次
func Init(secret string, accessExpiryMinutes, refreshExpiryHours int) {
	current = settings{
		secret:        []byte(secret),
		accessExpiry:  time.Duration(accessExpiryMinutes) * time.Minute,
		refreshExpiry: time.Duration(refreshExpiryHours) * time.Hour,
	}
}

// Claims 令牌载荷，UserID 是用户 uuid
type Claims struct {
	UserID  string `json:"user_id"`
	TokenID string `json:"token_id,omitempty"`
	jwt.RegisteredClaims
}

func sign(userID, tokenID, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:  userID,
		TokenID: tokenID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   subject,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(current.secret)
}

func GenerateAccessToken(userID string) (string, error) {
	return sign(userID, "", SubjectAccess, current.accessExpiry)
}

// GenerateRefreshToken 返回令牌和需要写入缓存的 tokenID
func GenerateRefreshToken(userID string) (token string, tokenID string, err error) {
	tokenID = uuid.NewString()
	token, err = sign(userID, tokenID, SubjectRefresh, current.refreshExpiry)
	return
}

// ParseToken 校验签名、签发方和有效期，不区分令牌类型
func ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return current.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
	)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func parseAs(tokenString, subject string) (*Claims, error) {
	claims, err := ParseToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Subject != subject {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}

func ParseAccessToken(tokenString string) (*Claims, error) {
	return parseAs(tokenString, SubjectAccess)
}

func ParseRefreshToken(tokenString string) (*Claims, error) {
	return parseAs(tokenString, SubjectRefresh)
}
