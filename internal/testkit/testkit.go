// Package testkit 服务层测试使用的内存数据库和临时文件存储
package testkit

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"share_party_server/internal/config"
	"share_party_server/internal/dao/database"
	"share_party_server/internal/dao/database/repository"
	"share_party_server/internal/infrastructure/storage"
	"share_party_server/internal/model"
)

var dbSeq atomic.Int64

// NewRepositories 每个测试一个独立的 sqlite 内存库，测试结束时关闭
func NewRepositories(t testing.TB) *repository.Repositories {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, dbSeq.Add(1))

	db, err := database.Open(&config.DatabaseConfig{Driver: "sqlite", SqlitePath: dsn}, "error")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(database.Models...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { sqlDB.Close() })
	return repository.NewRepositories(db)
}

// SeedUser 创建一个可登录的用户，密码为 "secret123"
func SeedUser(t testing.TB, repos *repository.Repositories, uuid, username string) *model.UserInfo {
	t.Helper()
	u := &model.UserInfo{
		Uuid:        uuid,
		Username:    username,
		RawPassword: "secret123",
		IsActive:    true,
	}
	if err := repos.User.Create(u); err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u
}

// NewStorage 临时目录下的本地文件存储
func NewStorage(t testing.TB) storage.FileStorage {
	t.Helper()
	dir := t.TempDir()
	s, err := storage.NewLocalStorage(&config.StaticSrcConfig{
		StaticAvatarPath: filepath.Join(dir, "avatars"),
		StaticPostPath:   filepath.Join(dir, "posts"),
		StaticChatPath:   filepath.Join(dir, "chat"),
		StaticReportPath: filepath.Join(dir, "reports"),
		MaxUploadSize:    1 << 20,
	})
	if err != nil {
		t.Fatalf("new storage: %v", err)
	}
	return s
}

// PNG 最小的 PNG 文件头，足够通过 mimetype 检测
var PNG = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

// FileHeader 构造一个 multipart 上传文件
func FileHeader(t testing.TB, field, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile(field, name)
	if err != nil {
		t.Fatal(err)
	}
	part.Write(content)
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatal(err)
	}
	return req.MultipartForm.File[field][0]
}
