package models

import (
	"time"

	"gorm.io/gorm"
)

// TourLeader 领队
type TourLeader struct {
	ID        uint           `gorm:"primarykey" json:"id"`                               // 主键
	Slug      string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug"` // 唯一标识
	Name      string         `gorm:"type:varchar(120);not null" json:"name"`             // 姓名
	Bio       string         `gorm:"type:text" json:"bio"`                               // 简介
	AvatarURL string         `gorm:"type:varchar(500)" json:"avatar_url"`                // 头像
	Languages StringArray    `gorm:"type:json" json:"languages"`                         // 语言
	Email     string         `gorm:"type:varchar(255)" json:"email,omitempty"`           // 联系邮箱
	Phone     string         `gorm:"type:varchar(50)" json:"phone,omitempty"`            // 联系电话
	IsActive  bool           `gorm:"not null;index" json:"is_active"`                    // 是否启用
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                                         // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                     // 软删除时间
}

// TableName 指定表名
func (TourLeader) TableName() string {
	return "tour_leaders"
}
