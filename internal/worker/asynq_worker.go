package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tripnest/internal/constants"
	"github.com/tripnest/internal/logger"
	"github.com/tripnest/internal/provider"
	"github.com/tripnest/internal/queue"
	"github.com/tripnest/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskBookingConfirmationEmail, c.handleBookingConfirmationEmail)
	mux.HandleFunc(queue.TaskNewsletterWelcomeEmail, c.handleNewsletterWelcomeEmail)
	mux.HandleFunc(queue.TaskInquiryNotification, c.handleInquiryNotification)
}

func (c *Consumer) handleBookingConfirmationEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_booking_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.BookingConfirmationEmailPayload
	if err := decodePayload(task, &payload); err != nil {
		logger.Warnw("worker_booking_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.BookingID == 0 {
		logger.Debugw("worker_booking_email_skip_invalid_payload", "booking_id", payload.BookingID)
		return nil
	}
	booking, err := c.BookingRepo.GetByID(payload.BookingID)
	if err != nil {
		logger.Warnw("worker_booking_email_fetch_failed", "booking_id", payload.BookingID, "error", err)
		return err
	}
	if booking == nil {
		logger.Debugw("worker_booking_email_skip_not_found", "booking_id", payload.BookingID)
		return nil
	}
	receiver := strings.TrimSpace(booking.CustomerEmail)
	if receiver == "" {
		logger.Debugw("worker_booking_email_skip_empty_receiver", "booking_id", booking.ID, "booking_no", booking.BookingNo)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_booking_email_skip_email_service_nil", "booking_id", booking.ID)
		return nil
	}
	status := strings.TrimSpace(payload.Status)
	if status == "" {
		status = booking.Status
	}
	input := service.BookingEmailInput{
		CustomerName: booking.CustomerName,
		BookingNo:    booking.BookingNo,
		Status:       status,
		Amount:       booking.TotalAmount,
		Currency:     booking.Currency,
		TravelDate:   booking.TravelDate,
	}
	err = c.EmailService.SendBookingConfirmation(receiver, input, booking.Locale)
	return c.finishSend("worker_booking_email", err,
		"booking_id", booking.ID,
		"booking_no", booking.BookingNo,
		"status", status,
	)
}

func (c *Consumer) handleNewsletterWelcomeEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_newsletter_welcome_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.NewsletterWelcomeEmailPayload
	if err := decodePayload(task, &payload); err != nil {
		logger.Warnw("worker_newsletter_welcome_unmarshal_failed", "error", err)
		return err
	}
	subscriber, err := c.NewsletterRepo.GetByID(payload.SubscriberID)
	if err != nil {
		logger.Warnw("worker_newsletter_welcome_fetch_failed", "subscriber_id", payload.SubscriberID, "error", err)
		return err
	}
	if subscriber == nil || subscriber.Status != constants.SubscriberStatusSubscribed {
		logger.Debugw("worker_newsletter_welcome_skip_inactive", "subscriber_id", payload.SubscriberID)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_newsletter_welcome_skip_email_service_nil", "subscriber_id", subscriber.ID)
		return nil
	}
	err = c.EmailService.SendNewsletterWelcome(subscriber.Email, subscriber.UnsubscribeToken, subscriber.Locale)
	return c.finishSend("worker_newsletter_welcome", err, "subscriber_id", subscriber.ID)
}

func (c *Consumer) handleInquiryNotification(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_inquiry_notification_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.InquiryNotificationPayload
	if err := decodePayload(task, &payload); err != nil {
		logger.Warnw("worker_inquiry_notification_unmarshal_failed", "error", err)
		return err
	}
	inquiry, err := c.InquiryRepo.GetByID(payload.InquiryID)
	if err != nil {
		logger.Warnw("worker_inquiry_notification_fetch_failed", "inquiry_id", payload.InquiryID, "error", err)
		return err
	}
	if inquiry == nil {
		logger.Debugw("worker_inquiry_notification_skip_not_found", "inquiry_id", payload.InquiryID)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_inquiry_notification_skip_email_service_nil", "inquiry_id", inquiry.ID)
		return nil
	}
	err = c.EmailService.SendInquiryNotification(service.InquiryNotificationInput{
		Name:    inquiry.Name,
		Email:   inquiry.Email,
		Phone:   inquiry.Phone,
		Subject: inquiry.Subject,
		Message: inquiry.Message,
	})
	return c.finishSend("worker_inquiry_notification", err, "inquiry_id", inquiry.ID)
}

// finishSend 邮件未启用或配置缺失时丢弃任务；收件人被拒不再重试
func (c *Consumer) finishSend(event string, err error, keysAndValues ...interface{}) error {
	if err == nil {
		return nil
	}
	fields := append(keysAndValues, "error", err)
	switch {
	case errors.Is(err, service.ErrEmailServiceDisabled),
		errors.Is(err, service.ErrEmailServiceNotConfigured):
		logger.Debugw(event+"_skip_email_unavailable", fields...)
		return nil
	case errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrEmailRecipientRejected):
		logger.Warnw(event+"_recipient_rejected", fields...)
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	default:
		logger.Warnw(event+"_send_failed", fields...)
		return err
	}
}

func decodePayload(task *asynq.Task, dest interface{}) error {
	if err := json.Unmarshal(task.Payload(), dest); err != nil {
		return fmt.Errorf("decode %s payload: %v: %w", task.Type(), err, asynq.SkipRetry)
	}
	return nil
}
