package party

import (
	"go.uber.org/zap"

	"share_party_server/internal/dao/database/repository"
	"share_party_server/internal/dto/respond"
	"share_party_server/internal/model"
	"share_party_server/internal/service/lifecycle"
	"share_party_server/pkg/errorx"
)

func viewOf(p *model.Party) lifecycle.PartyView {
	return lifecycle.PartyView{
		Id:          p.Id,
		OwnerId:     p.OwnerId,
		Title:       p.Title,
		MemberLimit: p.MemberLimit,
	}
}

// loadLocked 在事务中锁定拼单行，后续的成员统计和写入都在锁内完成
func loadLocked(tx *repository.Repositories, partyId uint) (*model.Party, error) {
	party, err := tx.Party.FindByIdForUpdate(partyId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeNotFound, "拼单不存在")
		}
		return nil, err
	}
	return party, nil
}

// serviceError 业务错误原样返回，数据库等系统错误记录日志后统一为服务繁忙
func serviceError(err error, msg string) error {
	switch errorx.GetCode(err) {
	case errorx.CodeDBError, errorx.CodeServerBusy, errorx.CodeCacheError:
		zap.L().Error(msg, zap.Error(err))
		return errorx.ErrServerBusy
	}
	return err
}

// RequestJoin 申请加入拼单
// 团长申请自己的拼单直接成功且不产生任何记录；重复申请返回已有申请的状态
func (s *partyService) RequestJoin(actor lifecycle.Actor, partyId uint) (*respond.JoinStatusRespond, error) {
	var (
		plan   lifecycle.Plan
		res    applied
		status string
	)
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		party, err := loadLocked(tx, partyId)
		if err != nil {
			return err
		}
		plan = lifecycle.PlanRequestJoin(actor, viewOf(party))
		if plan.IsEmpty() {
			return nil
		}
		if res, err = applyPlan(tx, plan); err != nil {
			return err
		}
		req, err := tx.JoinRequest.FindByPartyAndUser(partyId, actor.UserId)
		if err != nil {
			return err
		}
		status = req.Status
		return nil
	})
	if err != nil {
		return nil, serviceError(err, "申请加入拼单失败")
	}
	if plan.IsEmpty() {
		return &respond.JoinStatusRespond{Status: "", Created: false}, nil
	}
	if res.created {
		s.afterCommit(plan, res, partyId, actor.UserId, "")
	}
	return &respond.JoinStatusRespond{Status: status, Created: res.created}, nil
}

// ManageJoinRequest 团长通过或拒绝申请
// 通过时在拼单行锁内统计实时成员数，满员返回 CodePartyFull 且不做任何修改
func (s *partyService) ManageJoinRequest(actor lifecycle.Actor, requestId uint, action string) error {
	req, err := s.repos.JoinRequest.FindById(requestId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return errorx.New(errorx.CodeNotFound, "申请不存在")
		}
		return serviceError(err, "查询入团申请失败")
	}

	var (
		plan lifecycle.Plan
		res  applied
	)
	err = s.repos.Transaction(func(tx *repository.Repositories) error {
		party, err := loadLocked(tx, req.PartyId)
		if err != nil {
			return err
		}
		// 锁内重新读取，避免两个审核请求基于同一旧状态
		current, err := tx.JoinRequest.FindById(requestId)
		if err != nil {
			if errorx.GetCode(err) == errorx.CodeNotFound {
				return errorx.New(errorx.CodeNotFound, "申请不存在")
			}
			return err
		}
		count, err := tx.PartyMember.CountByPartyId(party.Id)
		if err != nil {
			return err
		}

		state := lifecycle.JoinState{Id: current.Id, PartyId: current.PartyId, UserId: current.UserId, Status: current.Status}
		plan, err = lifecycle.PlanManageJoinRequest(actor, viewOf(party), state, action, count)
		if err != nil {
			return err
		}
		res, err = applyPlan(tx, plan)
		return err
	})
	if err != nil {
		return serviceError(err, "审核入团申请失败")
	}

	s.afterCommit(plan, res, req.PartyId, actor.UserId, req.UserId)
	return nil
}

// KickMember 团长移出成员，同时删除其申请记录
func (s *partyService) KickMember(actor lifecycle.Actor, partyId uint, targetId string) error {
	var (
		plan lifecycle.Plan
		res  applied
	)
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		party, err := loadLocked(tx, partyId)
		if err != nil {
			return err
		}
		if _, err := tx.User.FindByUuid(targetId); err != nil {
			if errorx.GetCode(err) == errorx.CodeNotFound {
				return errorx.New(errorx.CodeNotFound, "用户不存在")
			}
			return err
		}
		isMember, err := tx.PartyMember.Exists(partyId, targetId)
		if err != nil {
			return err
		}
		plan, err = lifecycle.PlanKickMember(actor, viewOf(party), targetId, isMember)
		if err != nil {
			return err
		}
		res, err = applyPlan(tx, plan)
		return err
	})
	if err != nil {
		return serviceError(err, "移出成员失败")
	}

	s.afterCommit(plan, res, partyId, actor.UserId, targetId)
	return nil
}

// LeaveParty 成员主动退出
func (s *partyService) LeaveParty(actor lifecycle.Actor, partyId uint) error {
	var (
		plan lifecycle.Plan
		res  applied
	)
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		party, err := loadLocked(tx, partyId)
		if err != nil {
			return err
		}
		isMember, err := tx.PartyMember.Exists(partyId, actor.UserId)
		if err != nil {
			return err
		}
		plan, err = lifecycle.PlanLeaveParty(actor, viewOf(party), isMember)
		if err != nil {
			return err
		}
		res, err = applyPlan(tx, plan)
		return err
	})
	if err != nil {
		return serviceError(err, "退出拼单失败")
	}

	s.afterCommit(plan, res, partyId, actor.UserId, actor.UserId)
	return nil
}
