// Package party 拼单的发布、查询与成员生命周期
package party

import (
	"mime/multipart"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"share_party_server/internal/dao/database/repository"
	myredis "share_party_server/internal/dao/redis"
	"share_party_server/internal/dto/request"
	"share_party_server/internal/dto/respond"
	"share_party_server/internal/infrastructure/mq"
	"share_party_server/internal/infrastructure/storage"
	"share_party_server/internal/model"
	"share_party_server/internal/service/lifecycle"
	"share_party_server/internal/service/notification"
	"share_party_server/pkg/constants"
	"share_party_server/pkg/enum/join_request/join_status_enum"
	"share_party_server/pkg/enum/party/party_category_enum"
	"share_party_server/pkg/errorx"
	"share_party_server/pkg/util/sanitize"
)

// maxFullPrice decimal(10,2) 能存储的上限
var maxFullPrice = decimal.RequireFromString("99999999.99")

type partyService struct {
	repos     *repository.Repositories
	cache     myredis.AsyncCacheService
	publisher mq.EventPublisher
	files     storage.FileStorage
}

func NewPartyService(repos *repository.Repositories, cache myredis.AsyncCacheService,
	publisher mq.EventPublisher, files storage.FileStorage) *partyService {
	return &partyService{repos: repos, cache: cache, publisher: publisher, files: files}
}

// Summary 拼单卡片，个人主页也使用
func Summary(p repository.PartyWithCount) respond.PartySummaryRespond {
	return respond.PartySummaryRespond{
		Id:           p.Id,
		Title:        p.Title,
		Description:  p.Description,
		Category:     p.Category,
		MemberLimit:  p.MemberLimit,
		MemberCount:  p.MemberCount,
		IsFull:       p.MemberCount >= int64(p.MemberLimit),
		FullPrice:    p.FullPrice.StringFixed(2),
		DividedPrice: p.DividedPrice().StringFixed(2),
		Image:        p.Image,
		OwnerId:      p.OwnerId,
		CreatedAt:    p.CreatedAt.Format(constants.TIME_LAYOUT),
	}
}

// Summaries 批量转换
func Summaries(list []repository.PartyWithCount) []respond.PartySummaryRespond {
	out := make([]respond.PartySummaryRespond, 0, len(list))
	for _, p := range list {
		out = append(out, Summary(p))
	}
	return out
}

// parseForm 校验并清理表单，返回可直接写库的字段
func parseForm(req request.PartyFormRequest) (title, desc string, price decimal.Decimal, err error) {
	title = sanitize.Text(req.Title)
	if title == "" {
		return "", "", price, errorx.New(errorx.CodeInvalidParam, "标题不能为空")
	}
	if !party_category_enum.IsValid(req.Category) {
		return "", "", price, errorx.Newf(errorx.CodeInvalidParam, "不支持的分类: %s", req.Category)
	}
	if req.MemberLimit < 1 {
		return "", "", price, errorx.New(errorx.CodeInvalidParam, "人数上限至少为 1")
	}
	price, err = decimal.NewFromString(strings.TrimSpace(req.FullPrice))
	if err != nil {
		return "", "", price, errorx.New(errorx.CodeInvalidParam, "价格格式错误")
	}
	if price.IsNegative() || price.GreaterThan(maxFullPrice) {
		return "", "", price, errorx.New(errorx.CodeInvalidParam, "价格超出范围")
	}
	return title, sanitize.RichText(req.Description), price.Round(2), nil
}

// Create 发布拼单，团长在同一事务中成为第一个成员
func (s *partyService) Create(actor lifecycle.Actor, req request.PartyFormRequest, image *multipart.FileHeader) (*respond.PartySummaryRespond, error) {
	title, desc, price, err := parseForm(req)
	if err != nil {
		return nil, err
	}

	var imagePath string
	if image != nil {
		if imagePath, err = s.files.SaveImage(image, storage.KindPost); err != nil {
			return nil, serviceError(err, "保存拼单图片失败")
		}
	}

	party := &model.Party{
		Title:       title,
		Description: desc,
		Category:    req.Category,
		MemberLimit: req.MemberLimit,
		FullPrice:   price,
		Image:       imagePath,
		OwnerId:     actor.UserId,
	}
	err = s.repos.Transaction(func(tx *repository.Repositories) error {
		if err := tx.Party.Create(party); err != nil {
			return err
		}
		return tx.PartyMember.Create(&model.PartyMember{PartyId: party.Id, UserId: actor.UserId})
	})
	if err != nil {
		_ = s.files.Remove(imagePath)
		return nil, serviceError(err, "创建拼单失败")
	}

	zap.L().Info("拼单已创建", zap.Uint("party_id", party.Id), zap.String("owner_id", actor.UserId))
	summary := Summary(repository.PartyWithCount{Party: *party, MemberCount: 1})
	return &summary, nil
}

// Update 团长或管理员修改拼单
// 人数上限不能低于当前成员数
func (s *partyService) Update(actor lifecycle.Actor, partyId uint, req request.PartyFormRequest, image *multipart.FileHeader) (*respond.PartySummaryRespond, error) {
	title, desc, price, err := parseForm(req)
	if err != nil {
		return nil, err
	}

	var imagePath, oldImage string
	if image != nil {
		if imagePath, err = s.files.SaveImage(image, storage.KindPost); err != nil {
			return nil, serviceError(err, "保存拼单图片失败")
		}
	}

	err = s.repos.Transaction(func(tx *repository.Repositories) error {
		party, err := loadLocked(tx, partyId)
		if err != nil {
			return err
		}
		if err := lifecycle.CanEdit(actor, viewOf(party)).Err(); err != nil {
			return err
		}
		count, err := tx.PartyMember.CountByPartyId(partyId)
		if err != nil {
			return err
		}
		if int64(req.MemberLimit) < count {
			return errorx.Newf(errorx.CodeInvalidParam, "人数上限不能少于当前成员数 %d", count)
		}

		updates := map[string]interface{}{
			"title":        title,
			"description":  desc,
			"category":     req.Category,
			"member_limit": req.MemberLimit,
			"full_price":   price,
		}
		if imagePath != "" {
			updates["image"] = imagePath
			oldImage = party.Image
		}
		return tx.Party.Update(partyId, updates)
	})
	if err != nil {
		_ = s.files.Remove(imagePath)
		return nil, serviceError(err, "修改拼单失败")
	}
	if oldImage != "" {
		if err := s.files.Remove(oldImage); err != nil {
			zap.L().Warn("删除旧拼单图片失败", zap.String("path", oldImage), zap.Error(err))
		}
	}

	p, err := s.repos.Party.FindWithCount(partyId)
	if err != nil {
		return nil, serviceError(err, "查询拼单失败")
	}
	summary := Summary(*p)
	return &summary, nil
}

// Delete 团长或管理员删除拼单，成员、申请、聊天记录和通知一并删除
func (s *partyService) Delete(actor lifecycle.Actor, partyId uint) error {
	var image string
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		party, err := loadLocked(tx, partyId)
		if err != nil {
			return err
		}
		if err := lifecycle.CanEdit(actor, viewOf(party)).Err(); err != nil {
			return err
		}
		image = party.Image

		if err := tx.PartyMember.DeleteByPartyId(partyId); err != nil {
			return err
		}
		if err := tx.JoinRequest.DeleteByPartyId(partyId); err != nil {
			return err
		}
		if err := tx.ChatMessage.DeleteByPartyId(partyId); err != nil {
			return err
		}
		if err := tx.Notification.DeleteByPartyId(partyId); err != nil {
			return err
		}
		return tx.Party.Delete(partyId)
	})
	if err != nil {
		return serviceError(err, "删除拼单失败")
	}

	if err := s.files.Remove(image); err != nil {
		zap.L().Warn("删除拼单图片失败", zap.String("path", image), zap.Error(err))
	}
	notification.InvalidateAllUnread(s.cache)
	zap.L().Info("拼单已删除", zap.Uint("party_id", partyId), zap.String("actor_id", actor.UserId))
	return nil
}

// List 按关键字、分类、满员状态筛选，按发布时间倒序分页
func (s *partyService) List(req request.ListPartyRequest) (*respond.PartyListRespond, error) {
	if req.Category != "" && !party_category_enum.IsValid(req.Category) {
		return nil, errorx.Newf(errorx.CodeInvalidParam, "不支持的分类: %s", req.Category)
	}
	page, pageSize, offset := constants.NormalizePage(req.Page, req.PageSize)
	list, total, err := s.repos.Party.List(repository.PartyFilter{
		Keyword:  req.Q,
		Category: req.Category,
		Status:   req.Status,
	}, offset, pageSize)
	if err != nil {
		return nil, serviceError(err, "查询拼单列表失败")
	}
	return &respond.PartyListRespond{
		Parties:  Summaries(list),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Detail 拼单详情，游客也可以查看
// 待审核申请只返回给团长；团长手机号只对团长和成员可见，用于 PromptPay 付款
func (s *partyService) Detail(actor lifecycle.Actor, partyId uint) (*respond.PartyDetailRespond, error) {
	p, err := s.repos.Party.FindWithCount(partyId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeNotFound, "拼单不存在")
		}
		return nil, serviceError(err, "查询拼单失败")
	}
	view := viewOf(&p.Party)

	rsp := &respond.PartyDetailRespond{
		Party:           Summary(*p),
		Members:         []respond.MemberRespond{},
		PendingRequests: []respond.JoinRequestRespond{},
	}

	owner, err := s.repos.User.FindByUuid(p.OwnerId)
	if err != nil {
		if errorx.GetCode(err) != errorx.CodeNotFound {
			return nil, serviceError(err, "查询团长失败")
		}
		owner = nil
	} else {
		rsp.OwnerName = owner.Username
		rsp.OwnerAvatar = owner.Avatar
	}

	members, err := s.repos.PartyMember.FindMembersWithUserInfo(partyId)
	if err != nil {
		return nil, serviceError(err, "查询拼单成员失败")
	}
	for _, m := range members {
		rsp.Members = append(rsp.Members, respond.MemberRespond{UserId: m.UserId, Username: m.Username, Avatar: m.Avatar})
		if m.UserId == actor.UserId && actor.UserId != "" {
			rsp.IsMember = true
		}
	}

	if actor.UserId == "" {
		return rsp, nil
	}
	rsp.IsOwner = lifecycle.CanManage(actor, view).Allowed
	rsp.CanEdit = lifecycle.CanEdit(actor, view).Allowed
	if rsp.IsOwner {
		rsp.IsMember = true
	}
	if owner != nil && rsp.IsMember && owner.PhoneVerified {
		rsp.OwnerPhone = owner.PhoneNumber
	}

	if req, err := s.repos.JoinRequest.FindByPartyAndUser(partyId, actor.UserId); err == nil {
		rsp.MyRequestStatus = req.Status
	} else if errorx.GetCode(err) != errorx.CodeNotFound {
		return nil, serviceError(err, "查询入团申请失败")
	}

	if rsp.IsOwner {
		pending, err := s.repos.JoinRequest.FindByPartyAndStatus(partyId, join_status_enum.PENDING)
		if err != nil {
			return nil, serviceError(err, "查询待审核申请失败")
		}
		for _, r := range pending {
			rsp.PendingRequests = append(rsp.PendingRequests, respond.JoinRequestRespond{
				Id:          r.Id,
				UserId:      r.UserId,
				Username:    r.Username,
				Avatar:      r.Avatar,
				Status:      r.Status,
				RequestedAt: r.RequestedAt.Format(constants.TIME_LAYOUT),
			})
		}
	}
	return rsp, nil
}
