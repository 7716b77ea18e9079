package model

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestDividePrice(t *testing.T) {
	tests := []struct {
		full  string
		limit int
		want  string
	}{
		{"419", 4, "104.75"},
		{"100", 3, "33.33"},
		{"0.05", 2, "0.03"},
		{"99.99", 1, "99.99"},
		{"50", 0, "50.00"},
	}
	for _, tt := range tests {
		got := DividePrice(decimal.RequireFromString(tt.full), tt.limit).StringFixed(2)
		if got != tt.want {
			t.Errorf("DividePrice(%s, %d) = %s, want %s", tt.full, tt.limit, got, tt.want)
		}
	}
}
