package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConsultationCode 咨询码，持有者可凭码预约专家咨询
type ConsultationCode struct {
	ID          string     `gorm:"type:varchar(36);primarykey" json:"id"`                          // 主键（UUID）
	Code        string     `gorm:"type:varchar(32);uniqueIndex;not null" json:"code"`              // 咨询码（大写）
	Status      string     `gorm:"type:varchar(16);index;not null;default:'active'" json:"status"` // 状态 active/inactive/expired
	Description *string    `gorm:"type:varchar(255)" json:"description"`                           // 备注
	MaxUses     *int       `json:"max_uses"`                                                       // 最大使用次数（空表示不限）
	UsedCount   int        `gorm:"not null;default:0" json:"used_count"`                           // 已使用次数
	ExpiresAt   *time.Time `gorm:"index" json:"expires_at"`                                        // 过期时间（空表示不过期）
	CreatedBy   *string    `gorm:"type:varchar(120)" json:"created_by"`                            // 创建人
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`                                        // 创建时间
	UpdatedAt   time.Time  `json:"updated_at"`                                                     // 更新时间
}

// TableName 指定表名
func (ConsultationCode) TableName() string {
	return "consultation_codes"
}

// BeforeCreate 创建前分配 UUID
func (c *ConsultationCode) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// BeforeSave 码值统一存储为大写
func (c *ConsultationCode) BeforeSave(tx *gorm.DB) error {
	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
	return nil
}

// RemainingUses 剩余可用次数，nil 表示不限
func (c *ConsultationCode) RemainingUses() *int {
	if c == nil || c.MaxUses == nil {
		return nil
	}
	remaining := *c.MaxUses - c.UsedCount
	if remaining < 0 {
		remaining = 0
	}
	return &remaining
}
