package storage

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"share_party_server/internal/config"
	"share_party_server/pkg/errorx"
)

// 最小的合法 PNG 文件头
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("image", name)
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
	return req.MultipartForm.File["image"][0]
}

func newStorage(t *testing.T, maxSize int64) (FileStorage, string) {
	dir := t.TempDir()
	s, err := NewLocalStorage(&config.StaticSrcConfig{
		StaticAvatarPath: filepath.Join(dir, "avatars"),
		StaticPostPath:   filepath.Join(dir, "posts"),
		StaticChatPath:   filepath.Join(dir, "chat"),
		StaticReportPath: filepath.Join(dir, "reports"),
		MaxUploadSize:    maxSize,
	})
	if err != nil {
		t.Fatal(err)
	}
	return s, dir
}

func TestSaveImage(t *testing.T) {
	s, dir := newStorage(t, 1<<20)

	path, err := s.SaveImage(fileHeader(t, "a.txt", pngHeader), KindAvatar)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasPrefix(path, "/static/avatars/") || !strings.HasSuffix(path, ".png") {
		t.Fatalf("path = %s", path)
	}
	if _, err := os.Stat(filepath.Join(dir, "avatars", filepath.Base(path))); err != nil {
		t.Fatalf("file not written: %v", err)
	}

	if err := s.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "avatars", filepath.Base(path))); !os.IsNotExist(err) {
		t.Fatal("file should be removed")
	}
}

func TestSaveImageRejectsNonImage(t *testing.T) {
	s, _ := newStorage(t, 1<<20)
	_, err := s.SaveImage(fileHeader(t, "evil.png", []byte("<?php echo 1; ?>")), KindPost)
	if errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Fatalf("err = %v, want invalid param", err)
	}
}

func TestSaveImageRejectsLargeFile(t *testing.T) {
	s, _ := newStorage(t, 8)
	_, err := s.SaveImage(fileHeader(t, "a.png", pngHeader), KindChat)
	if errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Fatalf("err = %v, want invalid param", err)
	}
}
