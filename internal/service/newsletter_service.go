package service

import (
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/tripnest/internal/constants"
	"github.com/tripnest/internal/i18n"
	"github.com/tripnest/internal/logger"
	"github.com/tripnest/internal/models"
	"github.com/tripnest/internal/queue"
	"github.com/tripnest/internal/repository"

	"github.com/google/uuid"
)

// NewsletterService 邮件订阅服务
type NewsletterService struct {
	repo        repository.NewsletterRepository
	queueClient *queue.Client
	now         func() time.Time
}

// NewNewsletterService 创建订阅服务
func NewNewsletterService(repo repository.NewsletterRepository, queueClient *queue.Client) *NewsletterService {
	return &NewsletterService{repo: repo, queueClient: queueClient, now: time.Now}
}

// SubscribeInput 订阅输入
type SubscribeInput struct {
	Email  string
	Locale string
	Source string
}

// Subscribe 订阅，已退订的邮箱会重新激活并更换退订令牌
// 返回值 created 表示本次产生了新的订阅状态
func (s *NewsletterService) Subscribe(input SubscribeInput) (*models.NewsletterSubscriber, bool, error) {
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, false, err
	}
	now := s.now()
	locale := i18n.NormalizeLocale(input.Locale)
	source := strings.TrimSpace(input.Source)

	existing, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		if existing.Status == constants.SubscriberStatusSubscribed {
			return existing, false, nil
		}
		existing.Status = constants.SubscriberStatusSubscribed
		existing.UnsubscribeToken = newUnsubscribeToken()
		existing.Locale = locale
		existing.SubscribedAt = now
		existing.UnsubscribedAt = nil
		if source != "" {
			existing.Source = source
		}
		if err := s.repo.Update(existing); err != nil {
			return nil, false, err
		}
		logger.Infow("newsletter_resubscribed", "subscriber_id", existing.ID)
		s.enqueueWelcome(existing)
		return existing, true, nil
	}

	subscriber := &models.NewsletterSubscriber{
		Email:            email,
		Status:           constants.SubscriberStatusSubscribed,
		UnsubscribeToken: newUnsubscribeToken(),
		Locale:           locale,
		Source:           source,
		SubscribedAt:     now,
	}
	if err := s.repo.Create(subscriber); err != nil {
		if repository.IsUniqueViolation(err) {
			// 并发订阅同一邮箱
			current, getErr := s.repo.GetByEmail(email)
			if getErr == nil && current != nil {
				return current, false, nil
			}
		}
		return nil, false, err
	}
	logger.Infow("newsletter_subscribed", "subscriber_id", subscriber.ID, "source", source)
	s.enqueueWelcome(subscriber)
	return subscriber, true, nil
}

// Unsubscribe 通过令牌退订，重复退订视为成功
func (s *NewsletterService) Unsubscribe(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrNewsletterTokenInvalid
	}
	subscriber, err := s.repo.GetByToken(token)
	if err != nil {
		return err
	}
	if subscriber == nil {
		return ErrNewsletterTokenInvalid
	}
	if subscriber.Status == constants.SubscriberStatusUnsubscribed {
		return nil
	}
	now := s.now()
	subscriber.Status = constants.SubscriberStatusUnsubscribed
	subscriber.UnsubscribedAt = &now
	if err := s.repo.Update(subscriber); err != nil {
		return err
	}
	logger.Infow("newsletter_unsubscribed", "subscriber_id", subscriber.ID)
	return nil
}

// List 后台订阅者列表
func (s *NewsletterService) List(filter repository.NewsletterListFilter) ([]models.NewsletterSubscriber, int64, error) {
	filter.Status = strings.ToLower(strings.TrimSpace(filter.Status))
	return s.repo.List(filter)
}

// ExportCSV 导出订阅者
func (s *NewsletterService) ExportCSV(filter repository.NewsletterListFilter) ([]byte, error) {
	filter.Page, filter.PageSize = 0, 0
	rows, _, err := s.List(filter)
	if err != nil {
		return nil, err
	}
	builder := &strings.Builder{}
	writer := csv.NewWriter(builder)
	_ = writer.Write([]string{"email", "status", "locale", "source", "subscribed_at", "unsubscribed_at"})
	for _, row := range rows {
		_ = writer.Write([]string{
			row.Email,
			row.Status,
			row.Locale,
			row.Source,
			row.SubscribedAt.Format(time.RFC3339),
			formatNullableTime(row.UnsubscribedAt),
		})
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("export newsletter subscribers: %w", err)
	}
	return []byte(builder.String()), nil
}

// GetByID 供异步任务读取订阅者
func (s *NewsletterService) GetByID(id uint) (*models.NewsletterSubscriber, error) {
	return s.repo.GetByID(id)
}

func (s *NewsletterService) enqueueWelcome(subscriber *models.NewsletterSubscriber) {
	if s.queueClient == nil || !s.queueClient.Enabled() {
		return
	}
	if err := s.queueClient.EnqueueNewsletterWelcomeEmail(queue.NewsletterWelcomeEmailPayload{
		SubscriberID: subscriber.ID,
	}); err != nil {
		logger.Warnw("newsletter_enqueue_welcome_failed", "subscriber_id", subscriber.ID, "error", err)
	}
}

func newUnsubscribeToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
