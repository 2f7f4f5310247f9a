package models

import "time"

// Inquiry 客户咨询留言
type Inquiry struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                         // 主键
	Name      string    `gorm:"type:varchar(120);not null" json:"name"`                       // 姓名
	Email     string    `gorm:"type:varchar(255);index;not null" json:"email"`                // 邮箱
	Phone     string    `gorm:"type:varchar(50)" json:"phone"`                                // 电话
	Subject   string    `gorm:"type:varchar(200)" json:"subject"`                             // 主题
	Message   string    `gorm:"type:text;not null" json:"message"`                            // 内容
	TourID    *uint     `gorm:"index" json:"tour_id,omitempty"`                               // 关联线路
	ExpertID  *uint     `gorm:"index" json:"expert_id,omitempty"`                             // 关联专家
	Status    string    `gorm:"type:varchar(16);index;not null;default:'new'" json:"status"`  // 状态 new/replied/closed
	Locale    string    `gorm:"type:varchar(16)" json:"locale"`                               // 提交语言
	ClientIP  string    `gorm:"type:varchar(64)" json:"client_ip"`                            // 提交 IP
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                                   // 更新时间
}

// TableName 指定表名
func (Inquiry) TableName() string {
	return "inquiries"
}
