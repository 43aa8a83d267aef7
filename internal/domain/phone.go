package domain

import (
	"errors"
	"strings"
)

// PhoneDigits 归一化电话号码的固定长度
const PhoneDigits = 10

// ErrInvalidPhone 去除非数字字符后长度不等于10位
var ErrInvalidPhone = errors.New("phone number must normalize to exactly 10 digits")

// NormalizePhone 电话号码归一化：剥离所有非数字字符，要求恰好10位
// 存储值可带格式字符，查询一律使用归一化形式
func NormalizePhone(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	normalized := b.String()
	if len(normalized) != PhoneDigits {
		return "", ErrInvalidPhone
	}
	return normalized, nil
}
