package lifecycle

import (
	"fmt"

	"share_party_server/pkg/enum/join_request/join_action_enum"
	"share_party_server/pkg/enum/join_request/join_status_enum"
	"share_party_server/pkg/errorx"
)

// EffectKind 副作用类型
type EffectKind int

const (
	CreateJoinRequest EffectKind = iota + 1 // 不存在时创建申请
	SetJoinStatus                           // 修改申请状态
	AddMember                               // 加入成员
	RemoveMember                            // 移除成员
	DeleteJoinRequest                       // 删除申请记录
	Notify                                  // 发送站内通知
)

func (k EffectKind) String() string {
	switch k {
	case CreateJoinRequest:
		return "create_join_request"
	case SetJoinStatus:
		return "set_join_status"
	case AddMember:
		return "add_member"
	case RemoveMember:
		return "remove_member"
	case DeleteJoinRequest:
		return "delete_join_request"
	case Notify:
		return "notify"
	}
	return "unknown"
}

// 生命周期事件名，也作为 Kafka 事件类型
const (
	EventJoinRequested = "join_requested"
	EventJoinApproved  = "join_approved"
	EventJoinRejected  = "join_rejected"
	EventMemberKicked  = "member_kicked"
	EventMemberLeft    = "member_left"
)

// NotificationDraft 待创建的通知
type NotificationDraft struct {
	RecipientId string
	SenderId    string
	PartyId     uint
	Message     string
	Link        string
}

// Effect 单个副作用
type Effect struct {
	Kind      EffectKind
	PartyId   uint
	UserId    string
	RequestId uint
	Status    string
	Note      *NotificationDraft

	// OnlyIfCreated 只有同一计划里的 CreateJoinRequest 真正插入新行时才执行
	OnlyIfCreated bool
}

// Plan 一次状态变更需要执行的全部副作用，按顺序在同一事务内执行
type Plan struct {
	Event   string
	Effects []Effect
}

// IsEmpty 空计划表示无需任何操作
func (p Plan) IsEmpty() bool {
	return len(p.Effects) == 0
}

// JoinState 已存在的入团申请
type JoinState struct {
	Id      uint
	PartyId uint
	UserId  string
	Status  string
}

// HomeLink 首页
const HomeLink = "/"

// PartyLink 拼单详情页
func PartyLink(partyId uint) string {
	return fmt.Sprintf("/post/%d", partyId)
}

// CanTransition 允许的申请状态迁移
// PENDING 可以通过或拒绝；被拒绝的申请团长可以改为通过；已通过的申请只能通过踢人或退出删除
func CanTransition(from, to string) bool {
	switch from {
	case join_status_enum.PENDING:
		return to == join_status_enum.APPROVED || to == join_status_enum.REJECTED
	case join_status_enum.REJECTED:
		return to == join_status_enum.APPROVED
	}
	return false
}

// PlanRequestJoin 申请加入拼单
// 团长申请自己的拼单返回空计划；重复申请复用已有记录，只有新建时才通知团长
func PlanRequestJoin(actor Actor, party PartyView) Plan {
	if actor.UserId == "" || actor.UserId == party.OwnerId {
		return Plan{}
	}
	return Plan{
		Event: EventJoinRequested,
		Effects: []Effect{
			{
				Kind:    CreateJoinRequest,
				PartyId: party.Id,
				UserId:  actor.UserId,
				Status:  join_status_enum.PENDING,
			},
			{
				Kind:          Notify,
				OnlyIfCreated: true,
				Note: &NotificationDraft{
					RecipientId: party.OwnerId,
					SenderId:    actor.UserId,
					PartyId:     party.Id,
					Message:     fmt.Sprintf("%s 申请加入拼单「%s」", actor.Username, party.Title),
					Link:        PartyLink(party.Id),
				},
			},
		},
	}
}

// PlanManageJoinRequest 团长审核申请
// memberCount 必须是在锁定拼单行之后统计的实时成员数
func PlanManageJoinRequest(actor Actor, party PartyView, req JoinState, action string, memberCount int64) (Plan, error) {
	if err := CanManage(actor, party).Err(); err != nil {
		return Plan{}, err
	}
	if req.PartyId != party.Id {
		return Plan{}, errorx.New(errorx.CodeNotFound, "申请不属于该拼单")
	}

	var target, event, message string
	switch action {
	case join_action_enum.APPROVE:
		target, event = join_status_enum.APPROVED, EventJoinApproved
		message = fmt.Sprintf("你加入拼单「%s」的申请已通过", party.Title)
	case join_action_enum.REJECT:
		target, event = join_status_enum.REJECTED, EventJoinRejected
		message = fmt.Sprintf("你加入拼单「%s」的申请被拒绝", party.Title)
	default:
		return Plan{}, errorx.Newf(errorx.CodeInvalidParam, "不支持的操作: %s", action)
	}

	if !CanTransition(req.Status, target) {
		return Plan{}, errorx.ErrInvalidTransition
	}
	if target == join_status_enum.APPROVED && memberCount >= int64(party.MemberLimit) {
		return Plan{}, errorx.ErrPartyFull
	}

	effects := []Effect{
		{Kind: SetJoinStatus, PartyId: party.Id, UserId: req.UserId, RequestId: req.Id, Status: target},
	}
	if target == join_status_enum.APPROVED {
		effects = append(effects, Effect{Kind: AddMember, PartyId: party.Id, UserId: req.UserId})
	}
	effects = append(effects, Effect{
		Kind: Notify,
		Note: &NotificationDraft{
			RecipientId: req.UserId,
			SenderId:    actor.UserId,
			PartyId:     party.Id,
			Message:     message,
			Link:        PartyLink(party.Id),
		},
	})
	return Plan{Event: event, Effects: effects}, nil
}

// PlanKickMember 团长踢出成员
// 同时删除该成员的申请记录，被踢用户之后可以重新申请
func PlanKickMember(actor Actor, party PartyView, targetId string, isMember bool) (Plan, error) {
	if err := CanManage(actor, party).Err(); err != nil {
		return Plan{}, err
	}
	if targetId == party.OwnerId {
		return Plan{}, errorx.New(errorx.CodeInvalidParam, "不能移出团长")
	}
	if !isMember {
		return Plan{}, errorx.New(errorx.CodeInvalidParam, "该用户不是拼单成员")
	}
	return Plan{
		Event: EventMemberKicked,
		Effects: []Effect{
			{Kind: RemoveMember, PartyId: party.Id, UserId: targetId},
			{Kind: DeleteJoinRequest, PartyId: party.Id, UserId: targetId},
			{
				Kind: Notify,
				Note: &NotificationDraft{
					RecipientId: targetId,
					SenderId:    actor.UserId,
					PartyId:     party.Id,
					Message:     fmt.Sprintf("你已被移出拼单「%s」", party.Title),
					Link:        HomeLink,
				},
			},
		},
	}, nil
}

// PlanLeaveParty 成员主动退出
func PlanLeaveParty(actor Actor, party PartyView, isMember bool) (Plan, error) {
	if err := CanLeave(actor, party, isMember).Err(); err != nil {
		return Plan{}, err
	}
	return Plan{
		Event: EventMemberLeft,
		Effects: []Effect{
			{Kind: RemoveMember, PartyId: party.Id, UserId: actor.UserId},
			{Kind: DeleteJoinRequest, PartyId: party.Id, UserId: actor.UserId},
			{
				Kind: Notify,
				Note: &NotificationDraft{
					RecipientId: party.OwnerId,
					SenderId:    actor.UserId,
					PartyId:     party.Id,
					Message:     fmt.Sprintf("%s 退出了拼单「%s」", actor.Username, party.Title),
					Link:        PartyLink(party.Id),
				},
			},
		},
	}, nil
}
