package random

import (
	"strings"
	"testing"
)

func TestVerifyCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code := VerifyCode(6)
		if len(code) != 6 {
			t.Fatalf("code %q has length %d", code, len(code))
		}
		if strings.Trim(code, "0123456789") != "" {
			t.Fatalf("code %q has non digit", code)
		}
	}
}

func TestUserUuid(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := UserUuid()
		if len(id) != UserUuidLength || id[0] != 'U' {
			t.Fatalf("uuid = %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate uuid %q", id)
		}
		seen[id] = true
	}
}
