// Package chat 拼单内的轮询聊天
// 只有团长和成员可以读写；客户端定时拉取全部消息，不做实时推送
package chat

import (
	"mime/multipart"
	"strconv"
	"time"

	"go.uber.org/zap"

	"share_party_server/internal/dao/database/repository"
	"share_party_server/internal/dto/request"
	"share_party_server/internal/dto/respond"
	"share_party_server/internal/infrastructure/storage"
	"share_party_server/internal/model"
	"share_party_server/internal/service/lifecycle"
	"share_party_server/pkg/constants"
	"share_party_server/pkg/errorx"
	"share_party_server/pkg/util/sanitize"
	"share_party_server/pkg/util/snowflake"
)

type chatService struct {
	repos *repository.Repositories
	files storage.FileStorage
}

func NewChatService(repos *repository.Repositories, files storage.FileStorage) *chatService {
	return &chatService{repos: repos, files: files}
}

// guard 校验拼单存在且操作者是团长或成员
func (s *chatService) guard(actor lifecycle.Actor, partyId uint) error {
	party, err := s.repos.Party.FindById(partyId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return errorx.New(errorx.CodeNotFound, "拼单不存在")
		}
		zap.L().Error("查询拼单失败", zap.Error(err))
		return errorx.ErrServerBusy
	}
	isMember, err := s.repos.PartyMember.Exists(partyId, actor.UserId)
	if err != nil {
		zap.L().Error("查询拼单成员失败", zap.Error(err))
		return errorx.ErrServerBusy
	}
	view := lifecycle.PartyView{Id: party.Id, OwnerId: party.OwnerId, Title: party.Title, MemberLimit: party.MemberLimit}
	return lifecycle.CanChat(actor, view, isMember).Err()
}

// GetMessages 返回全部消息，按时间升序
func (s *chatService) GetMessages(actor lifecycle.Actor, partyId uint) ([]respond.ChatMessageRespond, error) {
	if err := s.guard(actor, partyId); err != nil {
		return nil, err
	}
	msgs, err := s.repos.ChatMessage.FindByPartyId(partyId)
	if err != nil {
		zap.L().Error("查询聊天记录失败", zap.Uint("party_id", partyId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	rsp := make([]respond.ChatMessageRespond, 0, len(msgs))
	for _, m := range msgs {
		rsp = append(rsp, respond.ChatMessageRespond{
			Id:        strconv.FormatInt(m.MsgId, 10),
			UserId:    m.UserId,
			Username:  m.Username,
			Avatar:    m.Avatar,
			Message:   m.Message,
			Image:     m.Image,
			Timestamp: m.Timestamp.Format(constants.TIME_LAYOUT),
			IsMe:      m.UserId == actor.UserId,
		})
	}
	return rsp, nil
}

// SendMessage 文本和图片至少有一项
func (s *chatService) SendMessage(actor lifecycle.Actor, partyId uint, req request.SendChatRequest, image *multipart.FileHeader) (*respond.ChatMessageRespond, error) {
	if err := s.guard(actor, partyId); err != nil {
		return nil, err
	}

	text := sanitize.Text(req.Message)
	if text == "" && image == nil {
		return nil, errorx.New(errorx.CodeInvalidParam, "消息内容不能为空")
	}

	var imagePath string
	if image != nil {
		var err error
		if imagePath, err = s.files.SaveImage(image, storage.KindChat); err != nil {
			if errorx.GetCode(err) == errorx.CodeInvalidParam {
				return nil, err
			}
			zap.L().Error("保存聊天图片失败", zap.Error(err))
			return nil, errorx.ErrServerBusy
		}
	}

	msg := &model.ChatMessage{
		MsgId:     snowflake.GenerateID(),
		PartyId:   partyId,
		UserId:    actor.UserId,
		Message:   text,
		Image:     imagePath,
		Timestamp: time.Now(),
	}
	if err := s.repos.ChatMessage.Create(msg); err != nil {
		_ = s.files.Remove(imagePath)
		zap.L().Error("保存聊天消息失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	return &respond.ChatMessageRespond{
		Id:        strconv.FormatInt(msg.MsgId, 10),
		UserId:    actor.UserId,
		Username:  actor.Username,
		Message:   msg.Message,
		Image:     msg.Image,
		Timestamp: msg.Timestamp.Format(constants.TIME_LAYOUT),
		IsMe:      true,
	}, nil
}
