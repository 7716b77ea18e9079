package https_server_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"share_party_server/internal/config"
	"share_party_server/internal/dao/database/repository"
	myredis "share_party_server/internal/dao/redis"
	"share_party_server/internal/handler"
	"share_party_server/internal/https_server"
	"share_party_server/internal/infrastructure/mq"
	"share_party_server/internal/infrastructure/sms"
	"share_party_server/internal/infrastructure/storage"
	"share_party_server/internal/service"
	"share_party_server/internal/testkit"
	"share_party_server/pkg/errorx"
	"share_party_server/pkg/util/jwt"

	"github.com/gin-gonic/gin"
)

var transOnce sync.Once

type envelope struct {
	Code int             `json:"code"`
	Msg  json.RawMessage `json:"msg"`
	Data json.RawMessage `json:"data"`
}

type server struct {
	t      *testing.T
	engine *gin.Engine
	repos  *repository.Repositories
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	transOnce.Do(func() {
		if err := handler.InitTrans("zh"); err != nil {
			t.Fatal(err)
		}
	})
	jwt.Init("test-secret", 15, 24)

	dir := t.TempDir()
	conf := &config.Config{}
	conf.MainConfig.Mode = "dev"
	conf.SecurityConfig.AllowedOrigins = []string{"*"}
	conf.SecurityConfig.ChatRatePerMinute = 60
	conf.StaticSrcConfig = config.StaticSrcConfig{
		StaticAvatarPath: filepath.Join(dir, "avatars"),
		StaticPostPath:   filepath.Join(dir, "posts"),
		StaticChatPath:   filepath.Join(dir, "chat"),
		StaticReportPath: filepath.Join(dir, "reports"),
		MaxUploadSize:    1 << 20,
	}
	files, err := storage.NewLocalStorage(&conf.StaticSrcConfig)
	if err != nil {
		t.Fatal(err)
	}

	cache := myredis.NewMemoryCache()
	repos := testkit.NewRepositories(t)
	svc := service.NewServices(repos, cache, mq.NewLogPublisher(), sms.NewLocalSmsService(cache), files)
	engine := https_server.Init(conf, handler.NewHandlers(svc), svc.User)
	return &server{t: t, engine: engine, repos: repos}
}

// do 发送 JSON 请求，返回 HTTP 状态码和解析后的响应
func (s *server) do(method, path, token string, body any) (int, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			s.t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") != "image/png" && w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			s.t.Fatalf("%s %s: decode %q: %v", method, path, w.Body.String(), err)
		}
	}
	return w.Code, env
}

func (s *server) mustOK(method, path, token string, body any, out any) {
	s.t.Helper()
	status, env := s.do(method, path, token, body)
	if status != http.StatusOK || env.Code != errorx.CodeSuccess {
		s.t.Fatalf("%s %s = %d %d %s", method, path, status, env.Code, env.Msg)
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			s.t.Fatalf("%s %s: decode data: %v", method, path, err)
		}
	}
}

type session struct {
	Uuid        string `json:"uuid"`
	AccessToken string `json:"access_token"`
}

func (s *server) register(name string) session {
	s.t.Helper()
	var sess session
	s.mustOK(http.MethodPost, "/register", "", gin.H{"username": name, "password": "secret123"}, &sess)
	return sess
}

func TestRoutesRegistered(t *testing.T) {
	s := newServer(t)
	want := []string{
		"POST /register", "POST /login", "POST /auth/refresh",
		"GET /profile/:id", "POST /profile/:id/comment",
		"GET /me/profile", "POST /me/profile", "POST /me/avatar", "POST /me/phone/code", "POST /me/phone/verify",
		"GET /", "GET /post", "GET /post/:id", "POST /post",
		"POST /post/:id/update", "POST /post/:id/delete", "POST /post/:id/join", "POST /post/:id/leave",
		"POST /post/:id/kick/:userId", "POST /request/:requestId/:action",
		"GET /post/:id/chat/api/get", "POST /post/:id/chat/api/send",
		"GET /notifications", "GET /notifications/unread", "POST /notifications/read-all", "POST /notification/:id/read",
		"POST /report", "GET /report/:id", "GET /my-reports",
		"GET /api/generate-qr",
		"GET /system/users", "POST /system/users/:id/ban", "POST /system/users/:id/unban",
		"GET /system/reports", "POST /system/reports/:id/status", "POST /system/reports/:id/resolve",
	}
	got := make(map[string]bool)
	for _, r := range s.engine.Routes() {
		got[r.Method+" "+r.Path] = true
	}
	for _, route := range want {
		if !got[route] {
			t.Errorf("route %s is not registered", route)
		}
	}
}

func TestPartyLifecycleOverHTTP(t *testing.T) {
	s := newServer(t)
	owner := s.register("owner")
	alice := s.register("alice")

	var party struct {
		Id           uint   `json:"id"`
		DividedPrice string `json:"divided_price"`
	}
	s.mustOK(http.MethodPost, "/post", owner.AccessToken, gin.H{
		"title": "Netflix", "category": "MOVIE", "member_limit": 2, "full_price": "419.00",
	}, &party)
	if party.DividedPrice != "209.50" {
		t.Fatalf("divided price = %s", party.DividedPrice)
	}
	postPath := fmt.Sprintf("/post/%d", party.Id)

	var joined struct {
		Status  string `json:"status"`
		Created bool   `json:"created"`
	}
	s.mustOK(http.MethodPost, postPath+"/join", alice.AccessToken, nil, &joined)
	if joined.Status != "PENDING" || !joined.Created {
		t.Fatalf("join = %+v", joined)
	}

	// 申请通过前不能聊天
	if status, _ := s.do(http.MethodGet, postPath+"/chat/api/get", alice.AccessToken, nil); status != http.StatusForbidden {
		t.Fatalf("chat before approval = %d", status)
	}

	var detail struct {
		PendingRequests []struct {
			Id uint `json:"id"`
		} `json:"pending_requests"`
	}
	s.mustOK(http.MethodGet, postPath, owner.AccessToken, nil, &detail)
	if len(detail.PendingRequests) != 1 {
		t.Fatalf("pending = %+v", detail.PendingRequests)
	}
	reqPath := fmt.Sprintf("/request/%d", detail.PendingRequests[0].Id)

	if status, env := s.do(http.MethodPost, reqPath+"/approve", alice.AccessToken, nil); status != http.StatusForbidden || env.Code != errorx.CodeForbidden {
		t.Fatalf("self approve = %d %d", status, env.Code)
	}
	s.mustOK(http.MethodPost, reqPath+"/approve", owner.AccessToken, nil, nil)
	if status, env := s.do(http.MethodPost, reqPath+"/approve", owner.AccessToken, nil); status != http.StatusConflict || env.Code != errorx.CodeInvalidTransition {
		t.Fatalf("approve twice = %d %d", status, env.Code)
	}

	var unread struct {
		Unread int64 `json:"unread"`
	}
	s.mustOK(http.MethodGet, "/notifications/unread", alice.AccessToken, nil, &unread)
	if unread.Unread != 1 {
		t.Fatalf("alice unread = %d", unread.Unread)
	}

	s.mustOK(http.MethodPost, postPath+"/chat/api/send", alice.AccessToken, gin.H{"message": "paid!"}, nil)
	var chat struct {
		Messages []struct {
			Message string `json:"message"`
			IsMe    bool   `json:"is_me"`
		} `json:"messages"`
	}
	s.mustOK(http.MethodGet, postPath+"/chat/api/get", owner.AccessToken, nil, &chat)
	if len(chat.Messages) != 1 || chat.Messages[0].Message != "paid!" || chat.Messages[0].IsMe {
		t.Fatalf("chat = %+v", chat.Messages)
	}

	// 满员后第三个人的申请不能通过
	bob := s.register("bob")
	s.mustOK(http.MethodPost, postPath+"/join", bob.AccessToken, nil, nil)
	s.mustOK(http.MethodGet, postPath, owner.AccessToken, nil, &detail)
	status, env := s.do(http.MethodPost, fmt.Sprintf("/request/%d/approve", detail.PendingRequests[0].Id), owner.AccessToken, nil)
	if status != http.StatusConflict || env.Code != errorx.CodePartyFull {
		t.Fatalf("approve when full = %d %d", status, env.Code)
	}

	s.mustOK(http.MethodPost, postPath+"/leave", alice.AccessToken, nil, nil)
	s.mustOK(http.MethodPost, postPath+"/delete", owner.AccessToken, nil, nil)
	if status, _ := s.do(http.MethodGet, postPath, "", nil); status != http.StatusNotFound {
		t.Fatalf("deleted party = %d", status)
	}
}

func TestAuthAndValidation(t *testing.T) {
	s := newServer(t)

	if status, _ := s.do(http.MethodPost, "/post", "", gin.H{"title": "x"}); status != http.StatusUnauthorized {
		t.Fatalf("anonymous create = %d", status)
	}
	status, env := s.do(http.MethodPost, "/register", "", gin.H{"username": "al", "password": "123"})
	if status != http.StatusBadRequest || env.Code != errorx.CodeInvalidParam {
		t.Fatalf("invalid register = %d %d", status, env.Code)
	}
	var fields map[string]string
	if err := json.Unmarshal(env.Msg, &fields); err != nil || fields["username"] == "" || fields["password"] == "" {
		t.Fatalf("validation messages = %s", env.Msg)
	}

	// 游客可以浏览
	if status, _ := s.do(http.MethodGet, "/", "", nil); status != http.StatusOK {
		t.Fatalf("guest list = %d", status)
	}
	if status, _ := s.do(http.MethodGet, "/post/abc", "", nil); status != http.StatusBadRequest {
		t.Fatalf("bad id = %d", status)
	}
}

func TestPromptPayQR(t *testing.T) {
	s := newServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/generate-qr?id=0812345678&amount=104.75", nil)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != "image/png" {
		t.Fatalf("qr = %d %s", w.Code, w.Header().Get("Content-Type"))
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")) {
		t.Fatal("body is not a png")
	}

	if status, _ := s.do(http.MethodGet, "/api/generate-qr?amount=10", "", nil); status != http.StatusBadRequest {
		t.Fatalf("missing id = %d", status)
	}
}

func TestAdminBan(t *testing.T) {
	s := newServer(t)
	admin := s.register("admin")
	alice := s.register("alice")

	if status, _ := s.do(http.MethodGet, "/system/users", alice.AccessToken, nil); status != http.StatusForbidden {
		t.Fatalf("non staff admin = %d", status)
	}

	if err := s.repos.User.UpdateFields(admin.Uuid, map[string]interface{}{"is_staff": true}); err != nil {
		t.Fatal(err)
	}

	var users struct {
		Total int64 `json:"total"`
	}
	s.mustOK(http.MethodGet, "/system/users", admin.AccessToken, nil, &users)
	if users.Total != 2 {
		t.Fatalf("users = %d", users.Total)
	}

	s.mustOK(http.MethodPost, "/system/users/"+alice.Uuid+"/ban", admin.AccessToken, nil, nil)
	status, env := s.do(http.MethodGet, "/notifications", alice.AccessToken, nil)
	if status != http.StatusForbidden || env.Code != errorx.CodeUserBanned {
		t.Fatalf("banned user request = %d %d", status, env.Code)
	}
	status, env = s.do(http.MethodPost, "/login", "", gin.H{"username": "alice", "password": "secret123"})
	if status != http.StatusForbidden || env.Code != errorx.CodeUserBanned {
		t.Fatalf("banned login = %d %d", status, env.Code)
	}

	s.mustOK(http.MethodPost, "/system/users/"+alice.Uuid+"/unban", admin.AccessToken, nil, nil)
	s.mustOK(http.MethodGet, "/notifications", alice.AccessToken, nil, nil)
}
