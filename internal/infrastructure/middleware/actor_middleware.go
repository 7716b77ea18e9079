package middleware

import (
	"errors"

	"share_party_server/internal/service/lifecycle"
	"share_party_server/pkg/errorx"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ActorKey 上下文中当前操作者的键
const ActorKey = "actor"

// ActorFinder 根据 uuid 加载操作者及账号是否启用
// 用户不存在时返回 CodeUserNotExist
type ActorFinder interface {
	FindActor(uuid string) (*lifecycle.Actor, bool, error)
}

func abortWith(c *gin.Context, err error) {
	code := errorx.GetCode(err)
	msg := "服务繁忙"
	var codeErr *errorx.CodeError
	if errors.As(err, &codeErr) {
		msg = codeErr.Msg
	}
	c.AbortWithStatusJSON(errorx.HTTPStatus(code), gin.H{"code": code, "msg": msg})
}

// LoadActor 在 JWTAuth 之后加载当前用户，被封禁的账号一律拒绝
// required 为 false 时游客请求直接放行
func LoadActor(finder ActorFinder, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetString("user_id")
		if userId == "" {
			if required {
				abortWith(c, errorx.ErrUnauthorized)
				return
			}
			c.Next()
			return
		}

		actor, active, err := finder.FindActor(userId)
		if err != nil {
			if errorx.GetCode(err) == errorx.CodeServerBusy || errorx.GetCode(err) == errorx.CodeDBError {
				zap.L().Error("load actor failed", zap.String("user_id", userId), zap.Error(err))
				abortWith(c, err)
				return
			}
			// Token 对应的用户已不存在
			abortWith(c, errorx.ErrUnauthorized)
			return
		}
		if !active {
			abortWith(c, errorx.ErrUserBanned)
			return
		}

		c.Set(ActorKey, *actor)
		c.Next()
	}
}

// RequireStaff 管理后台接口，需要 is_staff 或 is_superuser
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get(ActorKey)
		if !ok {
			abortWith(c, errorx.ErrUnauthorized)
			return
		}
		actor, _ := v.(lifecycle.Actor)
		if err := lifecycle.IsStaff(actor).Err(); err != nil {
			abortWith(c, err)
			return
		}
		c.Next()
	}
}

// CurrentActor 取出 LoadActor 写入的操作者，游客返回零值
func CurrentActor(c *gin.Context) (lifecycle.Actor, bool) {
	v, ok := c.Get(ActorKey)
	if !ok {
		return lifecycle.Actor{}, false
	}
	actor, ok := v.(lifecycle.Actor)
	return actor, ok
}
