package middleware

import (
	"errors"
	"net/http"
	"strings"

	"share_party_server/pkg/errorx"
	"share_party_server/pkg/util/jwt"

	"github.com/gin-gonic/gin"
)

// parseBearer 从 Authorization 头解析 Access Token，返回用户 uuid
func parseBearer(c *gin.Context) (string, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", "请先登录"
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", "Token 格式错误，请使用 Bearer Token"
	}

	claims, err := jwt.ParseAccessToken(parts[1])
	if errors.Is(err, jwt.ErrWrongTokenType) {
		return "", "请使用 Access Token 访问此接口"
	}
	if err != nil {
		return "", "Token 已过期或无效，请重新登录"
	}
	return claims.UserID, ""
}

// JWTAuth JWT 认证中间件
// 验证 Access Token 并将用户 uuid 存入上下文
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, msg := parseBearer(c)
		if userId == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": errorx.CodeUnauthorized,
				"msg":  msg,
			})
			return
		}
		c.Set("user_id", userId)
		c.Next()
	}
}

// OptionalJWTAuth 游客也可访问的接口使用，有合法 Token 时才写入用户信息
func OptionalJWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userId, _ := parseBearer(c); userId != "" {
			c.Set("user_id", userId)
		}
		c.Next()
	}
}
