// Package storage 保存用户上传的图片到本地静态目录
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"

	"share_party_server/internal/config"
	"share_party_server/pkg/errorx"
	"share_party_server/pkg/util/snowflake"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

// 上传文件的用途，决定保存目录和访问路径
const (
	KindAvatar = "avatars"
	KindPost   = "posts"
	KindChat   = "chat"
	KindReport = "reports"
)

var allowedImageMimes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// FileStorage 文件存储接口
type FileStorage interface {
	// SaveImage 校验图片类型后保存，返回可直接访问的路径，如 /static/avatars/xxx.png
	SaveImage(fileHeader *multipart.FileHeader, kind string) (string, error)
	// Remove 删除 SaveImage 返回的文件，文件不存在时忽略
	Remove(publicPath string) error
}

type localStorage struct {
	dirs    map[string]string
	maxSize int64
}

// NewLocalStorage 按配置创建各用途的目录
func NewLocalStorage(conf *config.StaticSrcConfig) (FileStorage, error) {
	dirs := map[string]string{
		KindAvatar: conf.StaticAvatarPath,
		KindPost:   conf.StaticPostPath,
		KindChat:   conf.StaticChatPath,
		KindReport: conf.StaticReportPath,
	}
	for kind, dir := range dirs {
		if dir == "" {
			dir = filepath.Join("static", kind)
			dirs[kind] = dir
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create %s dir: %w", kind, err)
		}
	}
	return &localStorage{dirs: dirs, maxSize: conf.MaxUploadSize}, nil
}

// PublicPrefix 静态路由前缀
func PublicPrefix(kind string) string {
	return "/static/" + kind
}

func (s *localStorage) SaveImage(fileHeader *multipart.FileHeader, kind string) (string, error) {
	dir, ok := s.dirs[kind]
	if !ok {
		return "", fmt.Errorf("unknown upload kind %q", kind)
	}
	if s.maxSize > 0 && fileHeader.Size > s.maxSize {
		return "", errorx.Newf(errorx.CodeInvalidParam, "文件不能超过 %d MB", s.maxSize>>20)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	// 按文件头识别真实类型，不信任扩展名
	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return "", err
	}
	if !mimetype.EqualsAny(mtype.String(), allowedImageMimes...) {
		return "", errorx.Newf(errorx.CodeInvalidParam, "不支持的文件类型: %s", mtype.String())
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	name := strconv.FormatInt(snowflake.GenerateID(), 10) + mtype.Extension()
	out, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		_ = os.Remove(out.Name())
		return "", err
	}
	zap.L().Info("upload image success", zap.String("kind", kind), zap.String("filename", name), zap.Int64("size", fileHeader.Size))
	return PublicPrefix(kind) + "/" + name, nil
}

func (s *localStorage) Remove(publicPath string) error {
	if publicPath == "" {
		return nil
	}
	for kind, dir := range s.dirs {
		prefix := PublicPrefix(kind) + "/"
		if len(publicPath) > len(prefix) && publicPath[:len(prefix)] == prefix {
			err := os.Remove(filepath.Join(dir, filepath.Base(publicPath)))
			if err != nil && !os.IsNotExist(err) {
				return err
			}
			return nil
		}
	}
	return nil
}

// Dirs 静态目录，用于注册 gin 静态路由
func Dirs(conf *config.StaticSrcConfig) map[string]string {
	return map[string]string{
		PublicPrefix(KindAvatar): conf.StaticAvatarPath,
		PublicPrefix(KindPost):   conf.StaticPostPath,
		PublicPrefix(KindChat):   conf.StaticChatPath,
		PublicPrefix(KindReport): conf.StaticReportPath,
	}
}
