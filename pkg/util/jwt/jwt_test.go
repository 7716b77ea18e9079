package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenTypes(t *testing.T) {
	Init("test-secret", 15, 24)

	access, err := GenerateAccessToken("U_ALICE")
	if err != nil {
		t.Fatal(err)
	}
	refresh, tokenID, err := GenerateRefreshToken("U_ALICE")
	if err != nil || tokenID == "" {
		t.Fatalf("refresh = %q, %q, %v", refresh, tokenID, err)
	}

	claims, err := ParseAccessToken(access)
	if err != nil || claims.UserID != "U_ALICE" || claims.TokenID != "" {
		t.Fatalf("access claims = %+v, %v", claims, err)
	}
	claims, err = ParseRefreshToken(refresh)
	if err != nil || claims.TokenID != tokenID {
		t.Fatalf("refresh claims = %+v, %v", claims, err)
	}

	if _, err := ParseRefreshToken(access); !errors.Is(err, ErrWrongTokenType) {
		t.Fatalf("access as refresh err = %v", err)
	}
	if _, err := ParseAccessToken(refresh); !errors.Is(err, ErrWrongTokenType) {
		t.Fatalf("refresh as access err = %v", err)
	}
}

func TestParseRejectsForeignTokens(t *testing.T) {
	Init("test-secret", 15, 24)

	other := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: "U_ALICE",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone_else",
			Subject:   SubjectAccess,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := other.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseToken(signed); err == nil {
		t.Fatal("token from another issuer should be rejected")
	}

	access, _ := GenerateAccessToken("U_ALICE")
	Init("rotated-secret", 15, 24)
	if _, err := ParseToken(access); err == nil {
		t.Fatal("token signed with old secret should be rejected")
	}

	Init("test-secret", 0, 24)
	expired, _ := GenerateAccessToken("U_ALICE")
	if _, err := ParseAccessToken(expired); err == nil {
		t.Fatal("expired token should be rejected")
	}
}
