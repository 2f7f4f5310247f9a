package worker

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/tripnest/internal/config"
	"github.com/tripnest/internal/constants"
	"github.com/tripnest/internal/models"
	"github.com/tripnest/internal/provider"
	"github.com/tripnest/internal/queue"
	"github.com/tripnest/internal/repository"
	"github.com/tripnest/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

func setupConsumerTest(t *testing.T, emailCfg config.EmailConfig) (*Consumer, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:worker_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	container := &provider.Container{
		Config:         &config.Config{Email: emailCfg},
		BookingRepo:    repository.NewBookingRepository(db),
		NewsletterRepo: repository.NewNewsletterRepository(db),
		InquiryRepo:    repository.NewInquiryRepository(db),
	}
	container.EmailService = service.NewEmailService(&container.Config.Email)
	return NewConsumer(container), db
}

func mustTask(t *testing.T, build func() (*asynq.Task, error)) *asynq.Task {
	t.Helper()
	task, err := build()
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	return task
}

func TestConsumerSkipsMissingRecords(t *testing.T) {
	consumer, _ := setupConsumerTest(t, config.EmailConfig{Enabled: true, Host: "smtp.test", Port: 25, From: "a@b.test"})
	ctx := context.Background()

	booking := mustTask(t, func() (*asynq.Task, error) {
		return queue.NewBookingConfirmationEmailTask(queue.BookingConfirmationEmailPayload{BookingID: 404})
	})
	if err := consumer.handleBookingConfirmationEmail(ctx, booking); err != nil {
		t.Fatalf("missing booking should be skipped, got %v", err)
	}
	welcome := mustTask(t, func() (*asynq.Task, error) {
		return queue.NewNewsletterWelcomeEmailTask(queue.NewsletterWelcomeEmailPayload{SubscriberID: 404})
	})
	if err := consumer.handleNewsletterWelcomeEmail(ctx, welcome); err != nil {
		t.Fatalf("missing subscriber should be skipped, got %v", err)
	}
	inquiry := mustTask(t, func() (*asynq.Task, error) {
		return queue.NewInquiryNotificationTask(queue.InquiryNotificationPayload{InquiryID: 404})
	})
	if err := consumer.handleInquiryNotification(ctx, inquiry); err != nil {
		t.Fatalf("missing inquiry should be skipped, got %v", err)
	}
}

func TestConsumerDropsTasksWhenEmailDisabled(t *testing.T) {
	consumer, db := setupConsumerTest(t, config.EmailConfig{Enabled: false})
	row := &models.Booking{
		BookingNo:     "BK20260101000000123456",
		Type:          constants.BookingTypeTour,
		CustomerName:  "Ana",
		CustomerEmail: "ana@example.com",
		Travelers:     1,
		Status:        constants.BookingStatusPending,
	}
	if err := db.Create(row).Error; err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}
	task := mustTask(t, func() (*asynq.Task, error) {
		return queue.NewBookingConfirmationEmailTask(queue.BookingConfirmationEmailPayload{BookingID: row.ID})
	})
	if err := consumer.handleBookingConfirmationEmail(context.Background(), task); err != nil {
		t.Fatalf("disabled email should drop task, got %v", err)
	}
}

func TestConsumerSkipsUnsubscribedReader(t *testing.T) {
	consumer, db := setupConsumerTest(t, config.EmailConfig{Enabled: true, Host: "127.0.0.1", Port: 1, From: "a@b.test"})
	now := time.Now()
	row := &models.NewsletterSubscriber{
		Email:            "gone@example.com",
		Status:           constants.SubscriberStatusUnsubscribed,
		UnsubscribeToken: "tok",
		SubscribedAt:     now,
		UnsubscribedAt:   &now,
	}
	if err := db.Create(row).Error; err != nil {
		t.Fatalf("seed subscriber failed: %v", err)
	}
	task := mustTask(t, func() (*asynq.Task, error) {
		return queue.NewNewsletterWelcomeEmailTask(queue.NewsletterWelcomeEmailPayload{SubscriberID: row.ID})
	})
	if err := consumer.handleNewsletterWelcomeEmail(context.Background(), task); err != nil {
		t.Fatalf("unsubscribed reader should be skipped, got %v", err)
	}
}

func TestConsumerMalformedPayloadSkipsRetry(t *testing.T) {
	consumer, _ := setupConsumerTest(t, config.EmailConfig{})
	task := asynq.NewTask(queue.TaskInquiryNotification, []byte("{not-json"))
	err := consumer.handleInquiryNotification(context.Background(), task)
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("malformed payload want SkipRetry got %v", err)
	}
}

func TestFinishSendClassifiesErrors(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})
	if err := consumer.finishSend("test", service.ErrEmailServiceNotConfigured); err != nil {
		t.Fatalf("not configured should drop, got %v", err)
	}
	if err := consumer.finishSend("test", service.ErrEmailRecipientRejected); !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("rejected recipient want SkipRetry got %v", err)
	}
	raw := errors.New("dial tcp: timeout")
	if err := consumer.finishSend("test", raw); err != raw {
		t.Fatalf("transient error should be retried, got %v", err)
	}
}
