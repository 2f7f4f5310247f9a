package models

import (
	"time"

	"gorm.io/gorm"
)

// Expert 旅行顾问专家
type Expert struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                         // 主键
	Slug            string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug"`           // 唯一标识
	Name            string         `gorm:"type:varchar(120);not null" json:"name"`                       // 姓名
	Title           string         `gorm:"type:varchar(160)" json:"title"`                               // 头衔
	Bio             string         `gorm:"type:text" json:"bio"`                                         // 简介
	Specialties     StringArray    `gorm:"type:json" json:"specialties"`                                 // 擅长领域
	Regions         StringArray    `gorm:"type:json" json:"regions"`                                     // 覆盖地区
	AvatarURL       string         `gorm:"type:varchar(500)" json:"avatar_url"`                          // 头像
	ConsultationFee Money          `gorm:"type:decimal(20,2);not null;default:0" json:"consultation_fee"` // 咨询费用
	Currency        string         `gorm:"type:varchar(16);not null;default:'USD'" json:"currency"`      // 币种
	IsActive        bool           `gorm:"not null;index" json:"is_active"`                              // 是否可预约
	SortOrder       int            `gorm:"default:0;index" json:"sort_order"`                            // 排序权重
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt       time.Time      `json:"updated_at"`                                                   // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                               // 软删除时间
}

// TableName 指定表名
func (Expert) TableName() string {
	return "experts"
}
