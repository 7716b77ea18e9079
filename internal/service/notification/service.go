// Package notification 站内通知的查询与已读管理
// 通知只由拼单生命周期操作创建，本包不提供创建接口
package notification

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"share_party_server/internal/dao/database/repository"
	myredis "share_party_server/internal/dao/redis"
	"share_party_server/internal/dto/respond"
	"share_party_server/internal/model"
	"share_party_server/internal/service/lifecycle"
	"share_party_server/pkg/constants"
	"share_party_server/pkg/errorx"
)

type notificationService struct {
	repos *repository.Repositories
	cache myredis.AsyncCacheService
}

func NewNotificationService(repos *repository.Repositories, cache myredis.AsyncCacheService) *notificationService {
	return &notificationService{repos: repos, cache: cache}
}

func unreadKey(userId string) string {
	return constants.UNREAD_COUNT_KEY_PREFIX + userId
}

// InvalidateUnread 在写库提交后同步删除未读数缓存，下次查询时回源数据库
func InvalidateUnread(cache myredis.CacheService, userIds ...string) {
	ctx := context.Background()
	for _, id := range userIds {
		if err := cache.Delete(ctx, unreadKey(id)); err != nil {
			zap.L().Warn("删除未读数缓存失败", zap.String("user_id", id), zap.Error(err))
		}
	}
}

// InvalidateAllUnread 拼单删除时无法得知全部接收人，清空所有未读数缓存
func InvalidateAllUnread(cache myredis.AsyncCacheService) {
	cache.SubmitTask(func() {
		if err := cache.DeleteByPattern(context.Background(), constants.UNREAD_COUNT_KEY_PREFIX+"*"); err != nil {
			zap.L().Warn("清空未读数缓存失败", zap.Error(err))
		}
	})
}

func toRespond(n model.Notification) respond.NotificationRespond {
	return respond.NotificationRespond{
		Id:        n.Id,
		SenderId:  n.SenderId,
		PartyId:   n.PartyId,
		Message:   n.Message,
		Link:      n.Link,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.Format(constants.TIME_LAYOUT),
	}
}

// List 当前用户的通知，按时间倒序分页
func (s *notificationService) List(actor lifecycle.Actor, page, pageSize int) (*respond.NotificationListRespond, error) {
	page, pageSize, offset := constants.NormalizePage(page, pageSize)
	list, total, err := s.repos.Notification.FindByRecipient(actor.UserId, offset, pageSize)
	if err != nil {
		zap.L().Error("查询通知失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	unread, err := s.UnreadCount(actor.UserId)
	if err != nil {
		return nil, err
	}

	rsp := &respond.NotificationListRespond{
		Notifications: make([]respond.NotificationRespond, 0, len(list)),
		Total:         total,
		Unread:        unread,
		Page:          page,
		PageSize:      pageSize,
	}
	for _, n := range list {
		rsp.Notifications = append(rsp.Notifications, toRespond(n))
	}
	return rsp, nil
}

// UnreadCount 优先读缓存，缓存异常时直接查库
func (s *notificationService) UnreadCount(userId string) (int64, error) {
	ctx := context.Background()
	if cached, err := s.cache.Get(ctx, unreadKey(userId)); err != nil {
		zap.L().Warn("读取未读数缓存失败", zap.Error(err))
	} else if cached != "" {
		if n, err := strconv.ParseInt(cached, 10, 64); err == nil {
			return n, nil
		}
	}

	count, err := s.repos.Notification.CountUnread(userId)
	if err != nil {
		zap.L().Error("统计未读通知失败", zap.Error(err))
		return 0, errorx.ErrServerBusy
	}
	if err := s.cache.Set(ctx, unreadKey(userId), strconv.FormatInt(count, 10), constants.UNREAD_CACHE_SECONDS*time.Second); err != nil {
		zap.L().Warn("写入未读数缓存失败", zap.Error(err))
	}
	return count, nil
}

// MarkRead 只有接收人可以标记，返回通知的跳转链接
func (s *notificationService) MarkRead(actor lifecycle.Actor, id uint) (*respond.MarkReadRespond, error) {
	n, err := s.repos.Notification.FindById(id)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeNotFound, "通知不存在")
		}
		zap.L().Error("查询通知失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if n.RecipientId != actor.UserId {
		return nil, errorx.New(errorx.CodeForbidden, "不能操作他人的通知")
	}

	if !n.IsRead {
		if err := s.repos.Notification.MarkRead(id); err != nil {
			zap.L().Error("标记通知已读失败", zap.Error(err))
			return nil, errorx.ErrServerBusy
		}
		InvalidateUnread(s.cache, actor.UserId)
	}

	link := n.Link
	if link == "" {
		link = "/notifications"
	}
	return &respond.MarkReadRespond{Link: link}, nil
}

// MarkAllRead 只影响当前用户自己的通知
func (s *notificationService) MarkAllRead(actor lifecycle.Actor) (*respond.MarkAllReadRespond, error) {
	updated, err := s.repos.Notification.MarkAllRead(actor.UserId)
	if err != nil {
		zap.L().Error("全部标记已读失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	InvalidateUnread(s.cache, actor.UserId)
	return &respond.MarkAllReadRespond{Updated: updated}, nil
}
