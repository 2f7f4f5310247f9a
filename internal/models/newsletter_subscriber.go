package models

import "time"

// NewsletterSubscriber 邮件订阅者
type NewsletterSubscriber struct {
	ID               uint       `gorm:"primarykey" json:"id"`                                                // 主键
	Email            string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`                 // 邮箱（小写）
	Status           string     `gorm:"type:varchar(16);index;not null;default:'subscribed'" json:"status"`  // 状态
	UnsubscribeToken string     `gorm:"type:varchar(64);uniqueIndex;not null" json:"-"`                      // 退订令牌
	Locale           string     `gorm:"type:varchar(16)" json:"locale"`                                      // 订阅语言
	Source           string     `gorm:"type:varchar(60)" json:"source"`                                      // 来源
	SubscribedAt     time.Time  `json:"subscribed_at"`                                                       // 订阅时间
	UnsubscribedAt   *time.Time `json:"unsubscribed_at"`                                                     // 退订时间
	CreatedAt        time.Time  `gorm:"index" json:"created_at"`                                             // 创建时间
	UpdatedAt        time.Time  `json:"updated_at"`                                                          // 更新时间
}

// TableName 指定表名
func (NewsletterSubscriber) TableName() string {
	return "newsletter_subscribers"
}
