package errorx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestWrapKeepsCode(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("approve: %w", Wrap(cause, CodePartyFull, "满员"))

	if GetCode(err) != CodePartyFull {
		t.Fatalf("code = %d", GetCode(err))
	}
	if !errors.Is(err, ErrPartyFull) {
		t.Fatal("wrapped error should match ErrPartyFull")
	}
	if !errors.Is(err, cause) {
		t.Fatal("cause should be reachable")
	}
	if errors.Is(err, ErrInvalidTransition) {
		t.Fatal("different codes must not match")
	}
}

func TestGetCodeDefaultsToServerBusy(t *testing.T) {
	if got := GetCode(errors.New("boom")); got != CodeServerBusy {
		t.Fatalf("code = %d", got)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := map[int]int{
		CodeSuccess:           http.StatusOK,
		CodeInvalidParam:      http.StatusBadRequest,
		CodeUnauthorized:      http.StatusUnauthorized,
		CodeUserBanned:        http.StatusForbidden,
		CodeUserNotExist:      http.StatusNotFound,
		CodePartyFull:         http.StatusConflict,
		CodeInvalidTransition: http.StatusConflict,
		CodeTooManyRequests:   http.StatusTooManyRequests,
		CodeDBError:           http.StatusInternalServerError,
		9999:                  http.StatusInternalServerError,
	}
	for code, want := range tests {
		if got := HTTPStatus(code); got != want {
			t.Errorf("HTTPStatus(%d) = %d, want %d", code, got, want)
		}
	}
}
