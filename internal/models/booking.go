package models

import (
	"time"
)

// Booking 预订记录（线路预订或专家咨询预约）
type Booking struct {
	ID                 uint       `gorm:"primarykey" json:"id"`                                           // 主键
	BookingNo          string     `gorm:"type:varchar(40);uniqueIndex;not null" json:"booking_no"`        // 预订编号
	Type               string     `gorm:"type:varchar(20);index;not null" json:"type"`                    // 类型 tour/consultation
	TourID             *uint      `gorm:"index" json:"tour_id,omitempty"`                                 // 线路ID
	ExpertID           *uint      `gorm:"index" json:"expert_id,omitempty"`                               // 专家ID
	ConsultationCodeID *string    `gorm:"type:varchar(36);index" json:"consultation_code_id,omitempty"`   // 咨询码ID
	ConsultationCode   string     `gorm:"type:varchar(32)" json:"consultation_code,omitempty"`            // 咨询码快照
	CustomerName       string     `gorm:"type:varchar(120);not null" json:"customer_name"`                // 联系人
	CustomerEmail      string     `gorm:"type:varchar(255);index;not null" json:"customer_email"`         // 联系邮箱
	CustomerPhone      string     `gorm:"type:varchar(50)" json:"customer_phone"`                         // 联系电话
	Travelers          int        `gorm:"not null;default:1" json:"travelers"`                            // 出行人数
	TravelDate         *time.Time `gorm:"index" json:"travel_date"`                                       // 出行日期
	PreferredTime      string     `gorm:"type:varchar(120)" json:"preferred_time"`                        // 咨询期望时间
	Notes              string     `gorm:"type:text" json:"notes"`                                         // 备注
	TotalAmount        Money      `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`      // 总金额
	Currency           string     `gorm:"type:varchar(16);not null;default:'USD'" json:"currency"`        // 币种
	Status             string     `gorm:"type:varchar(20);index;not null;default:'pending'" json:"status"` // 状态
	Locale             string     `gorm:"type:varchar(16)" json:"locale"`                                 // 下单语言
	ConfirmedAt        *time.Time `json:"confirmed_at"`                                                   // 确认时间
	CanceledAt         *time.Time `json:"canceled_at"`                                                    // 取消时间
	CompletedAt        *time.Time `json:"completed_at"`                                                   // 完成时间
	CreatedAt          time.Time  `gorm:"index" json:"created_at"`                                        // 创建时间
	UpdatedAt          time.Time  `json:"updated_at"`                                                     // 更新时间

	// 关联
	Tour   *Tour   `gorm:"foreignKey:TourID" json:"tour,omitempty"`
	Expert *Expert `gorm:"foreignKey:ExpertID" json:"expert,omitempty"`
}

// TableName 指定表名
func (Booking) TableName() string {
	return "bookings"
}
