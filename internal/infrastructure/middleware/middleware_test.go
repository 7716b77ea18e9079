package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"share_party_server/internal/service/lifecycle"
	"share_party_server/pkg/errorx"
	"share_party_server/pkg/util/jwt"

	"github.com/gin-gonic/gin"
)

type stubFinder struct {
	actor  *lifecycle.Actor
	active bool
	err    error
}

func (s stubFinder) FindActor(uuid string) (*lifecycle.Actor, bool, error) {
	return s.actor, s.active, s.err
}

func init() {
	gin.SetMode(gin.TestMode)
	jwt.Init("test-secret", 30, 24)
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/x", handlers...)
	return r
}

func do(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	r := newEngine(JWTAuth())
	if w := do(r, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("missing token status = %d", w.Code)
	}
	if w := do(r, "garbage"); w.Code != http.StatusUnauthorized {
		t.Fatalf("bad token status = %d", w.Code)
	}
	refresh, _, _ := jwt.GenerateRefreshToken("U1")
	if w := do(r, refresh); w.Code != http.StatusUnauthorized {
		t.Fatalf("refresh token must not authenticate, status = %d", w.Code)
	}
	access, _ := jwt.GenerateAccessToken("U1")
	if w := do(r, access); w.Code != http.StatusNoContent {
		t.Fatalf("valid token status = %d", w.Code)
	}
}

func TestLoadActorRejectsBannedUser(t *testing.T) {
	access, _ := jwt.GenerateAccessToken("U1")
	actor := &lifecycle.Actor{UserId: "U1", Username: "alice"}

	banned := newEngine(JWTAuth(), LoadActor(stubFinder{actor: actor, active: false}, true))
	if w := do(banned, access); w.Code != http.StatusForbidden {
		t.Fatalf("banned user status = %d", w.Code)
	}

	active := newEngine(JWTAuth(), LoadActor(stubFinder{actor: actor, active: true}, true))
	if w := do(active, access); w.Code != http.StatusNoContent {
		t.Fatalf("active user status = %d", w.Code)
	}

	missing := newEngine(JWTAuth(), LoadActor(stubFinder{err: errorx.New(errorx.CodeUserNotExist, "用户不存在")}, true))
	if w := do(missing, access); w.Code != http.StatusUnauthorized {
		t.Fatalf("deleted user status = %d", w.Code)
	}
}

func TestOptionalActorAllowsGuests(t *testing.T) {
	r := newEngine(OptionalJWTAuth(), LoadActor(stubFinder{}, false))
	if w := do(r, ""); w.Code != http.StatusNoContent {
		t.Fatalf("guest status = %d", w.Code)
	}
}

func TestRequireStaff(t *testing.T) {
	access, _ := jwt.GenerateAccessToken("U1")
	user := &lifecycle.Actor{UserId: "U1"}
	admin := &lifecycle.Actor{UserId: "U1", IsStaff: true}

	r := newEngine(JWTAuth(), LoadActor(stubFinder{actor: user, active: true}, true), RequireStaff())
	if w := do(r, access); w.Code != http.StatusForbidden {
		t.Fatalf("normal user status = %d", w.Code)
	}
	r = newEngine(JWTAuth(), LoadActor(stubFinder{actor: admin, active: true}, true), RequireStaff())
	if w := do(r, access); w.Code != http.StatusNoContent {
		t.Fatalf("staff status = %d", w.Code)
	}
}

func TestRateLimiter(t *testing.T) {
	l := NewRateLimiter(2)
	if !l.Allow("a") {
		t.Fatal("first request should pass")
	}
	if l.Allow("a") {
		t.Fatal("burst of one should be exhausted")
	}
	if !l.Allow("b") {
		t.Fatal("keys are limited independently")
	}
}
