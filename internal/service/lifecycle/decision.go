// Package lifecycle 描述拼单的入团申请与成员变更规则
// 本包只做判断和规划，不访问数据库：每个操作返回一个 Plan，
// 由 party 服务在同一个事务中依次执行其中的 Effect
package lifecycle

import (
	"share_party_server/pkg/errorx"
)

// Actor 当前操作者
type Actor struct {
	UserId      string
	Username    string
	IsStaff     bool
	IsSuperuser bool
}

// PartyView 规则判断所需的拼单信息
type PartyView struct {
	Id          uint
	OwnerId     string
	Title       string
	MemberLimit int
}

// Decision 权限判断结果
type Decision struct {
	Allowed bool
	Code    int    // 不允许时的业务错误码
	Reason  string // 不允许时给用户看的原因
}

func allow() Decision {
	return Decision{Allowed: true, Code: errorx.CodeSuccess}
}

func deny(code int, reason string) Decision {
	return Decision{Code: code, Reason: reason}
}

// Err 允许时返回 nil，否则转换为 CodeError
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return errorx.New(d.Code, d.Reason)
}

// CanManage 只有团长可以审核申请、踢人
func CanManage(actor Actor, party PartyView) Decision {
	if actor.UserId != "" && actor.UserId == party.OwnerId {
		return allow()
	}
	return deny(errorx.CodeForbidden, "只有团长可以执行此操作")
}

// CanEdit 团长或管理员可以修改、删除拼单
func CanEdit(actor Actor, party PartyView) Decision {
	if actor.UserId != "" && (actor.UserId == party.OwnerId || actor.IsStaff) {
		return allow()
	}
	return deny(errorx.CodeForbidden, "只有团长或管理员可以修改拼单")
}

// CanChat 团长或成员可以查看、发送聊天
func CanChat(actor Actor, party PartyView, isMember bool) Decision {
	if actor.UserId != "" && (actor.UserId == party.OwnerId || isMember) {
		return allow()
	}
	return deny(errorx.CodeForbidden, "只有拼单成员可以使用聊天")
}

// CanLeave 成员可以退出，团长不能退出自己的拼单
// 不满足时返回参数错误而不是权限错误
func CanLeave(actor Actor, party PartyView, isMember bool) Decision {
	if actor.UserId != "" && isMember && actor.UserId != party.OwnerId {
		return allow()
	}
	return deny(errorx.CodeInvalidParam, "你不能退出这个拼单")
}

// IsStaff 管理后台权限
func IsStaff(actor Actor) Decision {
	if actor.IsStaff || actor.IsSuperuser {
		return allow()
	}
	return deny(errorx.CodeForbidden, "需要管理员权限")
}
