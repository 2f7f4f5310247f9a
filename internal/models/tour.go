package models

import (
	"time"

	"gorm.io/gorm"
)

// Tour 旅游线路
type Tour struct {
	ID           uint           `gorm:"primarykey" json:"id"`                                         // 主键
	Slug         string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug"`           // 唯一标识
	Title        string         `gorm:"type:varchar(200);not null" json:"title"`                      // 标题
	Summary      string         `gorm:"type:varchar(500)" json:"summary"`                             // 摘要
	Description  string         `gorm:"type:text" json:"description"`                                 // 详情（Markdown）
	Destination  string         `gorm:"type:varchar(120);index" json:"destination"`                   // 目的地
	DurationDays int            `gorm:"not null;default:1" json:"duration_days"`                      // 行程天数
	PriceAmount  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_amount"`    // 每人价格
	Currency     string         `gorm:"type:varchar(16);not null;default:'USD'" json:"currency"`      // 币种
	MaxTravelers int            `gorm:"not null;default:0" json:"max_travelers"`                      // 单次预订人数上限（0 表示不限）
	Images       StringArray    `gorm:"type:json" json:"images"`                                      // 图片数组
	Tags         StringArray    `gorm:"type:json" json:"tags"`                                        // 标签数组
	CategoryID   *uint          `gorm:"index" json:"category_id"`                                     // 分类ID
	TourLeaderID *uint          `gorm:"index" json:"tour_leader_id"`                                  // 领队ID
	Status       string         `gorm:"type:varchar(16);index;not null;default:'draft'" json:"status"` // 状态 draft/published
	IsFeatured   bool           `gorm:"default:false;index" json:"is_featured"`                       // 是否推荐
	SortOrder    int            `gorm:"default:0;index" json:"sort_order"`                            // 排序权重
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt    time.Time      `json:"updated_at"`                                                   // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                               // 软删除时间

	// 关联
	Category   *Category   `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	TourLeader *TourLeader `gorm:"foreignKey:TourLeaderID" json:"tour_leader,omitempty"`
}

// TableName 指定表名
func (Tour) TableName() string {
	return "tours"
}
