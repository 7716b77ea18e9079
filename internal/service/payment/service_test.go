package payment

import (
	"bytes"
	"testing"

	"share_party_server/internal/dto/request"
	"share_party_server/pkg/errorx"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestGenerateQR(t *testing.T) {
	svc := NewPaymentService()

	png, err := svc.GenerateQR(request.GenerateQRRequest{Id: "0812345678", Amount: "125.50"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Fatal("response is not a PNG")
	}

	if _, err := svc.GenerateQR(request.GenerateQRRequest{Id: "0812345678"}); err != nil {
		t.Fatalf("static code without amount: %v", err)
	}
}

func TestGenerateQRValidation(t *testing.T) {
	svc := NewPaymentService()
	tests := []struct {
		name string
		req  request.GenerateQRRequest
	}{
		{"missing id", request.GenerateQRRequest{Amount: "10"}},
		{"bad amount", request.GenerateQRRequest{Id: "0812345678", Amount: "ten"}},
		{"bad id", request.GenerateQRRequest{Id: "12"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.GenerateQR(tt.req)
			if errorx.GetCode(err) != errorx.CodeInvalidParam {
				t.Fatalf("err = %v, want invalid param", err)
			}
		})
	}
}
