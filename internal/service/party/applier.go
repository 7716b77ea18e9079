package party

import (
	"context"
	"time"

	"go.uber.org/zap"

	"share_party_server/internal/dao/database/repository"
	"share_party_server/internal/infrastructure/mq"
	"share_party_server/internal/model"
	"share_party_server/internal/service/lifecycle"
	"share_party_server/internal/service/notification"
)

// applied 计划执行结果，事务提交后使用
type applied struct {
	created    bool     // CreateJoinRequest 是否真正插入了新行
	recipients []string // 收到新通知的用户
}

// applyPlan 在事务内按顺序执行计划中的全部副作用
// 任意一步失败都会返回错误，由调用方的事务整体回滚
func applyPlan(tx *repository.Repositories, plan lifecycle.Plan) (applied, error) {
	var res applied
	for _, eff := range plan.Effects {
		var err error
		switch eff.Kind {
		case lifecycle.CreateJoinRequest:
			res.created, err = tx.JoinRequest.CreateIfAbsent(&model.JoinRequest{
				PartyId: eff.PartyId,
				UserId:  eff.UserId,
				Status:  eff.Status,
			})
		case lifecycle.SetJoinStatus:
			err = tx.JoinRequest.UpdateStatus(eff.RequestId, eff.Status)
		case lifecycle.AddMember:
			err = tx.PartyMember.Create(&model.PartyMember{PartyId: eff.PartyId, UserId: eff.UserId})
		case lifecycle.RemoveMember:
			err = tx.PartyMember.Delete(eff.PartyId, eff.UserId)
		case lifecycle.DeleteJoinRequest:
			err = tx.JoinRequest.DeleteByPartyAndUser(eff.PartyId, eff.UserId)
		case lifecycle.Notify:
			if eff.OnlyIfCreated && !res.created {
				continue
			}
			note := eff.Note
			err = tx.Notification.Create(&model.Notification{
				RecipientId: note.RecipientId,
				SenderId:    note.SenderId,
				PartyId:     note.PartyId,
				Message:     note.Message,
				Link:        note.Link,
			})
			if err == nil {
				res.recipients = append(res.recipients, note.RecipientId)
			}
		}
		if err != nil {
			zap.L().Error("执行拼单副作用失败",
				zap.String("event", plan.Event),
				zap.Stringer("effect", eff.Kind),
				zap.Error(err))
			return res, err
		}
	}
	return res, nil
}

// afterCommit 事务提交后刷新未读数缓存并投递事件
func (s *partyService) afterCommit(plan lifecycle.Plan, res applied, partyId uint, actorId, targetId string) {
	notification.InvalidateUnread(s.cache, res.recipients...)

	event := mq.PartyEvent{
		Type:       plan.Event,
		PartyId:    partyId,
		ActorId:    actorId,
		TargetId:   targetId,
		OccurredAt: time.Now(),
	}
	s.cache.SubmitTask(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.publisher.Publish(ctx, event); err != nil {
			zap.L().Warn("投递拼单事件失败", zap.String("type", event.Type), zap.Uint("party_id", partyId), zap.Error(err))
		}
	})
}
