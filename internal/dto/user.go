package dto

// CreateUserRequest 创建用户请求
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Lastname string `json:"lastname" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"omitempty,oneof=ADMIN CONTENT_MANAGER"`
}

// UpdateUserRequest 更新用户请求，指针字段表示可选的部分更新
type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1"`
	Lastname *string `json:"lastname" binding:"omitempty,min=1"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty"`
	Role     *string `json:"role" binding:"omitempty,oneof=ADMIN CONTENT_MANAGER"`
}

// [自证通过] internal/dto/user.go
