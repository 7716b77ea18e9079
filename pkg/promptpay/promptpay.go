// Package promptpay 生成泰国 PromptPay 收款二维码的 EMVCo 载荷
package promptpay

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	idPayloadFormat       = "00"
	idPOIMethod           = "01"
	idMerchantInfoBot     = "29"
	idTransactionCurrency = "53"
	idTransactionAmount   = "54"
	idCountryCode         = "58"
	idCRC                 = "63"
	payloadFormatEMVQRCPS = "01"
	poiMethodStatic       = "11"
	poiMethodDynamic      = "12"
	merchantAID           = "A000000677010111"
	botIDPhone            = "01"
	botIDTaxID            = "02"
	botIDEWallet          = "03"
	currencyTHB           = "764"
	countryTH             = "TH"
)

var nonDigit = regexp.MustCompile(`[^0-9]`)

func field(id, value string) string {
	return fmt.Sprintf("%s%02d%s", id, len(value), value)
}

// formatTarget 手机号转换为 0066 开头的 13 位，身份证号 13 位，电子钱包 15 位
func formatTarget(id string) (string, string, error) {
	digits := nonDigit.ReplaceAllString(id, "")
	switch {
	case len(digits) >= 15:
		return botIDEWallet, digits, nil
	case len(digits) >= 13:
		return botIDTaxID, digits, nil
	case len(digits) >= 9:
		target := digits
		if strings.HasPrefix(target, "0") {
			target = "66" + target[1:]
		}
		if len(target) < 13 {
			target = strings.Repeat("0", 13-len(target)) + target
		}
		return botIDPhone, target, nil
	default:
		return "", "", fmt.Errorf("promptpay: invalid id %q", id)
	}
}

// Payload 生成载荷
// amount 为零时生成可重复使用的静态码，否则生成带金额的动态码
func Payload(id string, amount decimal.Decimal) (string, error) {
	kind, target, err := formatTarget(id)
	if err != nil {
		return "", err
	}
	if amount.IsNegative() {
		return "", fmt.Errorf("promptpay: negative amount %s", amount)
	}

	poi := poiMethodStatic
	if amount.IsPositive() {
		poi = poiMethodDynamic
	}

	var b strings.Builder
	b.WriteString(field(idPayloadFormat, payloadFormatEMVQRCPS))
	b.WriteString(field(idPOIMethod, poi))
	b.WriteString(field(idMerchantInfoBot, field("00", merchantAID)+field(kind, target)))
	b.WriteString(field(idCountryCode, countryTH))
	b.WriteString(field(idTransactionCurrency, currencyTHB))
	if amount.IsPositive() {
		b.WriteString(field(idTransactionAmount, amount.StringFixed(2)))
	}
	b.WriteString(idCRC + "04")
	b.WriteString(fmt.Sprintf("%04X", CRC16(b.String())))
	return b.String(), nil
}

// CRC16 CRC-16/CCITT-FALSE，多项式 0x1021，初始值 0xFFFF
func CRC16(data string) uint16 {
	crc := uint16(0xFFFF)
	for i := 0; i < len(data); i++ {
		crc ^= uint16(data[i]) << 8
		for j := 0; j < 8; j++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
