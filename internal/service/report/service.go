// Package report 用户举报与管理员处理
package report

import (
	"mime/multipart"

	"go.uber.org/zap"

	"share_party_server/internal/dao/database/repository"
	"share_party_server/internal/dto/request"
	"share_party_server/internal/dto/respond"
	"share_party_server/internal/infrastructure/storage"
	"share_party_server/internal/model"
	"share_party_server/internal/service/lifecycle"
	"share_party_server/pkg/constants"
	"share_party_server/pkg/enum/report/report_category_enum"
	"share_party_server/pkg/enum/report/report_status_enum"
	"share_party_server/pkg/errorx"
	"share_party_server/pkg/util/sanitize"
)

type reportService struct {
	repos *repository.Repositories
	files storage.FileStorage
}

func NewReportService(repos *repository.Repositories, files storage.FileStorage) *reportService {
	return &reportService{repos: repos, files: files}
}

func toRespond(r *model.Report) respond.ReportRespond {
	return respond.ReportRespond{
		Id:             r.Id,
		ReporterId:     r.ReporterId,
		Category:       r.Category,
		Title:          r.Title,
		Description:    r.Description,
		EvidenceImage:  r.EvidenceImage,
		Status:         r.Status,
		ResolutionNote: r.ResolutionNote,
		CreatedAt:      r.CreatedAt.Format(constants.TIME_LAYOUT),
		UpdatedAt:      r.UpdatedAt.Format(constants.TIME_LAYOUT),
	}
}

func (s *reportService) find(id uint) (*model.Report, error) {
	r, err := s.repos.Report.FindById(id)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeNotFound, "举报不存在")
		}
		zap.L().Error("查询举报失败", zap.Uint("report_id", id), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return r, nil
}

// Create 任何登录用户都可以提交举报，初始状态为 PENDING
func (s *reportService) Create(actor lifecycle.Actor, req request.CreateReportRequest, evidence *multipart.FileHeader) (*respond.ReportRespond, error) {
	if !report_category_enum.IsValid(req.Category) {
		return nil, errorx.Newf(errorx.CodeInvalidParam, "不支持的举报类型: %s", req.Category)
	}
	title := sanitize.Text(req.Title)
	if title == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "标题不能为空")
	}

	var imagePath string
	if evidence != nil {
		var err error
		if imagePath, err = s.files.SaveImage(evidence, storage.KindReport); err != nil {
			if errorx.GetCode(err) == errorx.CodeInvalidParam {
				return nil, err
			}
			zap.L().Error("保存举报截图失败", zap.Error(err))
			return nil, errorx.ErrServerBusy
		}
	}

	r := &model.Report{
		ReporterId:    actor.UserId,
		Category:      req.Category,
		Title:         title,
		Description:   sanitize.RichText(req.Description),
		EvidenceImage: imagePath,
		Status:        report_status_enum.PENDING,
	}
	if err := s.repos.Report.Create(r); err != nil {
		_ = s.files.Remove(imagePath)
		zap.L().Error("创建举报失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	zap.L().Info("收到新举报", zap.Uint("report_id", r.Id), zap.String("category", r.Category))
	rsp := toRespond(r)
	return &rsp, nil
}

// ListMine 当前用户提交的举报
func (s *reportService) ListMine(actor lifecycle.Actor) ([]respond.ReportRespond, error) {
	list, err := s.repos.Report.FindByReporter(actor.UserId)
	if err != nil {
		zap.L().Error("查询我的举报失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	rsp := make([]respond.ReportRespond, 0, len(list))
	for i := range list {
		rsp = append(rsp, toRespond(&list[i]))
	}
	return rsp, nil
}

// Detail 举报人或管理员可见
func (s *reportService) Detail(actor lifecycle.Actor, id uint) (*respond.ReportRespond, error) {
	r, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if r.ReporterId != actor.UserId && !lifecycle.IsStaff(actor).Allowed {
		return nil, errorx.New(errorx.CodeForbidden, "无权查看该举报")
	}
	rsp := toRespond(r)
	return &rsp, nil
}

// AdminList 管理后台列表，附带各状态数量
func (s *reportService) AdminList(req request.ListReportRequest) (*respond.ReportListRespond, error) {
	if req.Status != "" && !report_status_enum.IsValid(req.Status) {
		return nil, errorx.Newf(errorx.CodeInvalidParam, "不支持的状态: %s", req.Status)
	}
	page, pageSize, offset := constants.NormalizePage(req.Page, req.PageSize)
	list, total, err := s.repos.Report.List(req.Status, offset, pageSize)
	if err != nil {
		zap.L().Error("查询举报列表失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	counts, err := s.repos.Report.CountByStatus()
	if err != nil {
		zap.L().Error("统计举报状态失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	for _, st := range report_status_enum.All {
		if _, ok := counts[st]; !ok {
			counts[st] = 0
		}
	}

	rsp := &respond.ReportListRespond{
		Reports:      make([]respond.ReportRespond, 0, len(list)),
		Total:        total,
		Page:         page,
		PageSize:     pageSize,
		StatusCounts: counts,
	}
	for i := range list {
		rsp.Reports = append(rsp.Reports, toRespond(&list[i]))
	}
	return rsp, nil
}

// UpdateStatus 状态不合法时不做任何修改
func (s *reportService) UpdateStatus(id uint, status string) (*respond.ReportRespond, error) {
	if !report_status_enum.IsValid(status) {
		return nil, errorx.Newf(errorx.CodeInvalidParam, "不支持的状态: %s", status)
	}
	return s.update(id, map[string]interface{}{"status": status})
}

// Resolve 标记为已解决并写入处理说明
func (s *reportService) Resolve(id uint, note string) (*respond.ReportRespond, error) {
	return s.update(id, map[string]interface{}{
		"status":          report_status_enum.RESOLVED,
		"resolution_note": sanitize.RichText(note),
	})
}

func (s *reportService) update(id uint, updates map[string]interface{}) (*respond.ReportRespond, error) {
	if _, err := s.find(id); err != nil {
		return nil, err
	}
	if err := s.repos.Report.UpdateFields(id, updates); err != nil {
		zap.L().Error("更新举报失败", zap.Uint("report_id", id), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	r, err := s.find(id)
	if err != nil {
		return nil, err
	}
	rsp := toRespond(r)
	return &rsp, nil
}
