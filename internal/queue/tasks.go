package queue

import (
	"encoding/json"

	"github.com/tripnest/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskBookingConfirmationEmail 预订确认邮件任务
	TaskBookingConfirmationEmail = constants.TaskBookingConfirmationEmail
	// TaskNewsletterWelcomeEmail 订阅欢迎邮件任务
	TaskNewsletterWelcomeEmail = constants.TaskNewsletterWelcomeEmail
	// TaskInquiryNotification 留言通知任务
	TaskInquiryNotification = constants.TaskInquiryNotification
)

// BookingConfirmationEmailPayload 预订确认邮件任务载荷
type BookingConfirmationEmailPayload struct {
	BookingID uint   `json:"booking_id"`
	Status    string `json:"status"`
}

// NewsletterWelcomeEmailPayload 订阅欢迎邮件任务载荷
type NewsletterWelcomeEmailPayload struct {
	SubscriberID uint `json:"subscriber_id"`
}

// InquiryNotificationPayload 留言通知任务载荷
type InquiryNotificationPayload struct {
	InquiryID uint `json:"inquiry_id"`
}

// NewBookingConfirmationEmailTask 创建预订确认邮件任务
func NewBookingConfirmationEmailTask(payload BookingConfirmationEmailPayload) (*asynq.Task, error) {
	return newJSONTask(TaskBookingConfirmationEmail, payload)
}

// NewNewsletterWelcomeEmailTask 创建订阅欢迎邮件任务
func NewNewsletterWelcomeEmailTask(payload NewsletterWelcomeEmailPayload) (*asynq.Task, error) {
	return newJSONTask(TaskNewsletterWelcomeEmail, payload)
}

// NewInquiryNotificationTask 创建留言通知任务
func NewInquiryNotificationTask(payload InquiryNotificationPayload) (*asynq.Task, error) {
	return newJSONTask(TaskInquiryNotification, payload)
}

func newJSONTask(taskType string, payload interface{}) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(taskType, body), nil
}
