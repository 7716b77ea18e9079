// Package user 账号、个人主页与管理员封禁
package user

import (
	"context"
	"mime/multipart"
	"strings"
	"time"

	"go.uber.org/zap"

	"share_party_server/internal/dao/database/repository"
	myredis "share_party_server/internal/dao/redis"
	"share_party_server/internal/dto/request"
	"share_party_server/internal/dto/respond"
	"share_party_server/internal/infrastructure/sms"
	"share_party_server/internal/infrastructure/storage"
	"share_party_server/internal/model"
	"share_party_server/internal/service/lifecycle"
	"share_party_server/internal/service/party"
	"share_party_server/pkg/constants"
	"share_party_server/pkg/errorx"
	"share_party_server/pkg/util/jwt"
	"share_party_server/pkg/util/random"
	"share_party_server/pkg/util/sanitize"
)

// userInfoService 用户业务逻辑实现
type userInfoService struct {
	repos *repository.Repositories
	cache myredis.AsyncCacheService
	sms   sms.SmsService
	files storage.FileStorage
}

func NewUserService(repos *repository.Repositories, cache myredis.AsyncCacheService,
	smsSvc sms.SmsService, files storage.FileStorage) *userInfoService {
	return &userInfoService{repos: repos, cache: cache, sms: smsSvc, files: files}
}

func tokenKey(uuid string) string {
	return constants.USER_TOKEN_KEY_PREFIX + uuid
}

func toUserInfo(u *model.UserInfo) respond.UserInfoRespond {
	return respond.UserInfoRespond{
		Uuid:          u.Uuid,
		Username:      u.Username,
		Email:         u.Email,
		Bio:           u.Bio,
		PhoneNumber:   u.PhoneNumber,
		PhoneVerified: u.PhoneVerified,
		Avatar:        u.Avatar,
		IsActive:      u.IsActive,
		IsStaff:       u.IsStaff || u.IsSuperuser,
		CreatedAt:     u.CreatedAt.Format(constants.TIME_LAYOUT),
	}
}

// findUser 统一把 NotFound 转换为 UserNotExist
func (u *userInfoService) findUser(uuid string) (*model.UserInfo, error) {
	user, err := u.repos.User.FindByUuid(uuid)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		zap.L().Error("查询用户失败", zap.String("uuid", uuid), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return user, nil
}

// issueTokens 生成双 Token，并记录 Refresh Token ID 实现单点互踢
func (u *userInfoService) issueTokens(user *model.UserInfo) (*respond.LoginRespond, error) {
	accessToken, err := jwt.GenerateAccessToken(user.Uuid)
	if err != nil {
		zap.L().Error("生成 Access Token 失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	refreshToken, tokenID, err := jwt.GenerateRefreshToken(user.Uuid)
	if err != nil {
		zap.L().Error("生成 Refresh Token 失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	ttl := time.Duration(constants.REFRESH_TOKEN_EXPIRY_HOURS) * time.Hour
	if err := u.cache.Set(context.Background(), tokenKey(user.Uuid), tokenID, ttl); err != nil {
		// 不阻塞登录，只是之后无法刷新
		zap.L().Error("存储 Token ID 失败", zap.Error(err))
	}

	return &respond.LoginRespond{
		Uuid:         user.Uuid,
		Username:     user.Username,
		Email:        user.Email,
		Avatar:       user.Avatar,
		IsStaff:      user.IsStaff || user.IsSuperuser,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Register 注册并直接登录
func (u *userInfoService) Register(req request.RegisterRequest) (*respond.LoginRespond, error) {
	exists, err := u.repos.User.ExistsByUsername(req.Username)
	if err != nil {
		zap.L().Error("检查用户名失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if exists {
		return nil, errorx.New(errorx.CodeUserExist, "用户名已被注册")
	}

	newUser := model.UserInfo{
		Uuid:        random.UserUuid(),
		Username:    req.Username,
		Email:       strings.TrimSpace(req.Email),
		RawPassword: req.Password,
		IsActive:    true,
	}
	if err := u.repos.User.Create(&newUser); err != nil {
		zap.L().Error("创建用户失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	zap.L().Info("新用户注册", zap.String("uuid", newUser.Uuid), zap.String("username", newUser.Username))
	return u.issueTokens(&newUser)
}

// Login 用户名密码登录，被封禁的账号不能登录
func (u *userInfoService) Login(req request.LoginRequest) (*respond.LoginRespond, error) {
	user, err := u.repos.User.FindByUsername(req.Username)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在，请注册")
		}
		zap.L().Error("查询用户失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if !user.CheckPassword(req.Password) {
		return nil, errorx.New(errorx.CodeInvalidPassword, "密码不正确，请重试")
	}
	if !user.IsActive {
		return nil, errorx.ErrUserBanned
	}
	return u.issueTokens(user)
}

// FindActor 供鉴权中间件加载当前用户
func (u *userInfoService) FindActor(uuid string) (*lifecycle.Actor, bool, error) {
	user, err := u.findUser(uuid)
	if err != nil {
		return nil, false, err
	}
	return &lifecycle.Actor{
		UserId:      user.Uuid,
		Username:    user.Username,
		IsStaff:     user.IsStaff,
		IsSuperuser: user.IsSuperuser,
	}, user.IsActive, nil
}

// GetProfile 个人主页：资料、留言、创建和加入的拼单
// 手机号只在本人查看时返回
func (u *userInfoService) GetProfile(actor lifecycle.Actor, uuid string) (*respond.ProfileRespond, error) {
	user, err := u.findUser(uuid)
	if err != nil {
		return nil, err
	}

	comments, err := u.repos.ProfileComment.FindByProfileOwner(uuid)
	if err != nil {
		zap.L().Error("查询主页留言失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	owned, err := u.repos.Party.FindByOwnerId(uuid)
	if err != nil {
		zap.L().Error("查询创建的拼单失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	joined, err := u.repos.Party.FindJoinedBy(uuid)
	if err != nil {
		zap.L().Error("查询加入的拼单失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	isMe := actor.UserId != "" && actor.UserId == uuid
	info := toUserInfo(user)
	if !isMe {
		info.PhoneNumber = ""
	}

	rsp := &respond.ProfileRespond{
		User:          info,
		IsMe:          isMe,
		Comments:      make([]respond.ProfileCommentRespond, 0, len(comments)),
		OwnedParties:  party.Summaries(owned),
		JoinedParties: party.Summaries(joined),
	}
	for _, c := range comments {
		rsp.Comments = append(rsp.Comments, respond.ProfileCommentRespond{
			Id:           c.Id,
			AuthorId:     c.AuthorId,
			AuthorName:   c.Username,
			AuthorAvatar: c.Avatar,
			Comment:      c.Comment,
			CreatedAt:    c.CreatedAt.Format(constants.TIME_LAYOUT),
		})
	}
	return rsp, nil
}

// UpdateProfile 修改邮箱和简介
func (u *userInfoService) UpdateProfile(actor lifecycle.Actor, req request.UpdateProfileRequest) (*respond.UserInfoRespond, error) {
	updates := map[string]interface{}{
		"email": strings.TrimSpace(req.Email),
		"bio":   sanitize.Text(req.Bio),
	}
	if err := u.repos.User.UpdateFields(actor.UserId, updates); err != nil {
		zap.L().Error("修改资料失败", zap.String("uuid", actor.UserId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	user, err := u.findUser(actor.UserId)
	if err != nil {
		return nil, err
	}
	rsp := toUserInfo(user)
	return &rsp, nil
}

// UpdateAvatar 上传新头像并删除旧文件
func (u *userInfoService) UpdateAvatar(actor lifecycle.Actor, file *multipart.FileHeader) (*respond.UserInfoRespond, error) {
	if file == nil {
		return nil, errorx.New(errorx.CodeInvalidParam, "请选择头像图片")
	}
	user, err := u.findUser(actor.UserId)
	if err != nil {
		return nil, err
	}

	path, err := u.files.SaveImage(file, storage.KindAvatar)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeInvalidParam {
			return nil, err
		}
		zap.L().Error("保存头像失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if err := u.repos.User.UpdateFields(user.Uuid, map[string]interface{}{"avatar": path}); err != nil {
		_ = u.files.Remove(path)
		zap.L().Error("更新头像失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if err := u.files.Remove(user.Avatar); err != nil {
		zap.L().Warn("删除旧头像失败", zap.String("path", user.Avatar), zap.Error(err))
	}

	user.Avatar = path
	rsp := toUserInfo(user)
	return &rsp, nil
}

// AddProfileComment 在他人（或自己）主页留言
func (u *userInfoService) AddProfileComment(actor lifecycle.Actor, uuid string, req request.ProfileCommentRequest) (*respond.ProfileCommentRespond, error) {
	if _, err := u.findUser(uuid); err != nil {
		return nil, err
	}
	text := sanitize.Text(req.Comment)
	if text == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "留言内容不能为空")
	}

	comment := model.ProfileComment{
		ProfileOwnerId: uuid,
		AuthorId:       actor.UserId,
		Comment:        text,
	}
	if err := u.repos.ProfileComment.Create(&comment); err != nil {
		zap.L().Error("创建留言失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	author, err := u.findUser(actor.UserId)
	if err != nil {
		return nil, err
	}
	return &respond.ProfileCommentRespond{
		Id:           comment.Id,
		AuthorId:     author.Uuid,
		AuthorName:   author.Username,
		AuthorAvatar: author.Avatar,
		Comment:      comment.Comment,
		CreatedAt:    comment.CreatedAt.Format(constants.TIME_LAYOUT),
	}, nil
}

// SendPhoneCode 发送手机验证码
func (u *userInfoService) SendPhoneCode(req request.SendPhoneCodeRequest) error {
	return u.sms.SendVerificationCode(req.PhoneNumber)
}

// VerifyPhone 校验验证码后绑定手机号，该号码同时作为 PromptPay 收款账号
func (u *userInfoService) VerifyPhone(actor lifecycle.Actor, req request.VerifyPhoneRequest) (*respond.UserInfoRespond, error) {
	if err := u.sms.VerifyCode(req.PhoneNumber, req.Code); err != nil {
		return nil, err
	}
	updates := map[string]interface{}{
		"phone_number":   req.PhoneNumber,
		"phone_verified": true,
	}
	if err := u.repos.User.UpdateFields(actor.UserId, updates); err != nil {
		zap.L().Error("绑定手机号失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	user, err := u.findUser(actor.UserId)
	if err != nil {
		return nil, err
	}
	rsp := toUserInfo(user)
	return &rsp, nil
}

// ListUsers 管理后台用户列表
func (u *userInfoService) ListUsers(req request.PageRequest) (*respond.UserListRespond, error) {
	page, pageSize, offset := constants.NormalizePage(req.Page, req.PageSize)
	users, total, err := u.repos.User.List(offset, pageSize)
	if err != nil {
		zap.L().Error("查询用户列表失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	rsp := &respond.UserListRespond{
		Users:    make([]respond.UserInfoRespond, 0, len(users)),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	for i := range users {
		rsp.Users = append(rsp.Users, toUserInfo(&users[i]))
	}
	return rsp, nil
}

// Ban 封禁账号，同时作废 Refresh Token
// 超级管理员不能被封禁，管理员也不能封禁自己
func (u *userInfoService) Ban(actor lifecycle.Actor, uuid string) error {
	user, err := u.findUser(uuid)
	if err != nil {
		return err
	}
	if user.IsSuperuser {
		return errorx.New(errorx.CodeForbidden, "不能封禁超级管理员")
	}
	if user.Uuid == actor.UserId {
		return errorx.New(errorx.CodeInvalidParam, "不能封禁自己")
	}
	if err := u.repos.User.SetActive(uuid, false); err != nil {
		zap.L().Error("封禁用户失败", zap.String("uuid", uuid), zap.Error(err))
		return errorx.ErrServerBusy
	}

	u.cache.SubmitTask(func() {
		if err := u.cache.Delete(context.Background(), tokenKey(uuid)); err != nil {
			zap.L().Error("清除 Token 失败", zap.String("uuid", uuid), zap.Error(err))
		}
	})
	zap.L().Info("用户已封禁", zap.String("uuid", uuid), zap.String("by", actor.UserId))
	return nil
}

// Unban 解除封禁
func (u *userInfoService) Unban(actor lifecycle.Actor, uuid string) error {
	if _, err := u.findUser(uuid); err != nil {
		return err
	}
	if err := u.repos.User.SetActive(uuid, true); err != nil {
		zap.L().Error("解封用户失败", zap.String("uuid", uuid), zap.Error(err))
		return errorx.ErrServerBusy
	}
	zap.L().Info("用户已解封", zap.String("uuid", uuid), zap.String("by", actor.UserId))
	return nil
}
