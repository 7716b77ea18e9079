// Package random 生成短信验证码和用户 uuid
package random

import (
	"crypto/rand"
	"math/big"
	"strings"
	"time"
)

const uuidCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// UserUuidLength 用户 uuid 总长度：前缀 U + 6 位日期 + 11 位随机字符
const UserUuidLength = 1 + 6 + 11

func digit(n int64) (int64, bool) {
	v, err := rand.Int(rand.Reader, big.NewInt(n))
	if err != nil {
		return 0, false
	}
	return v.Int64(), true
}

// VerifyCode 生成 digits 位数字验证码，允许以 0 开头
func VerifyCode(digits int) string {
	var b strings.Builder
	b.Grow(digits)
	for i := 0; i < digits; i++ {
		d, ok := digit(10)
		if !ok {
			d = int64(time.Now().UnixNano() % 10)
		}
		b.WriteByte(byte('0' + d))
	}
	return b.String()
}

// UserUuid 用户主键，形如 U241230AbCdE123456
// 日期前缀让同一天注册的用户按字典序聚在一起
func UserUuid() string {
	var b strings.Builder
	b.Grow(UserUuidLength)
	b.WriteByte('U')
	b.WriteString(time.Now().Format("060102"))
	for b.Len() < UserUuidLength {
		i, ok := digit(int64(len(uuidCharset)))
		if !ok {
			b.WriteByte('x')
			continue
		}
		b.WriteByte(uuidCharset[i])
	}
	return b.String()
}
