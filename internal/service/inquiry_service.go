package service

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tripnest/internal/constants"
	"github.com/tripnest/internal/i18n"
	"github.com/tripnest/internal/logger"
	"github.com/tripnest/internal/models"
	"github.com/tripnest/internal/queue"
	"github.com/tripnest/internal/repository"
)

const inquiryMessageMaxRunes = 5000

// InquiryService 客户留言服务
type InquiryService struct {
	repo        repository.InquiryRepository
	queueClient *queue.Client
	now         func() time.Time
}

// NewInquiryService 创建留言服务
func NewInquiryService(repo repository.InquiryRepository, queueClient *queue.Client) *InquiryService {
	return &InquiryService{repo: repo, queueClient: queueClient, now: time.Now}
}

// CreateInquiryInput 留言输入
type CreateInquiryInput struct {
	Name     string
	Email    string
	Phone    string
	Subject  string
	Message  string
	TourID   *uint
	ExpertID *uint
	Locale   string
	ClientIP string
}

// Create 提交留言并通知运营
func (s *InquiryService) Create(input CreateInquiryInput) (*models.Inquiry, error) {
	name := strings.TrimSpace(input.Name)
	message := strings.TrimSpace(input.Message)
	if name == "" || message == "" || utf8.RuneCountInString(message) > inquiryMessageMaxRunes {
		return nil, ErrInquiryInvalid
	}
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	inquiry := &models.Inquiry{
		Name:     name,
		Email:    email,
		Phone:    strings.TrimSpace(input.Phone),
		Subject:  strings.TrimSpace(input.Subject),
		Message:  message,
		TourID:   normalizeOptionalID(input.TourID),
		ExpertID: normalizeOptionalID(input.ExpertID),
		Status:   constants.InquiryStatusNew,
		Locale:   i18n.NormalizeLocale(input.Locale),
		ClientIP: strings.TrimSpace(input.ClientIP),
	}
	if err := s.repo.Create(inquiry); err != nil {
		return nil, err
	}
	logger.Infow("inquiry_created", "inquiry_id", inquiry.ID)

	if s.queueClient != nil && s.queueClient.Enabled() {
		if err := s.queueClient.EnqueueInquiryNotification(queue.InquiryNotificationPayload{InquiryID: inquiry.ID}); err != nil {
			logger.Warnw("inquiry_enqueue_notification_failed", "inquiry_id", inquiry.ID, "error", err)
		}
	}
	return inquiry, nil
}

// List 后台留言列表
func (s *InquiryService) List(filter repository.InquiryListFilter) ([]models.Inquiry, int64, error) {
	filter.Status = strings.ToLower(strings.TrimSpace(filter.Status))
	return s.repo.List(filter)
}

// Get 获取留言
func (s *InquiryService) Get(id uint) (*models.Inquiry, error) {
	inquiry, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inquiry == nil {
		return nil, ErrInquiryNotFound
	}
	return inquiry, nil
}

// UpdateStatus 更新留言处理状态
func (s *InquiryService) UpdateStatus(id uint, status string) (*models.Inquiry, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	switch status {
	case constants.InquiryStatusNew, constants.InquiryStatusReplied, constants.InquiryStatusClosed:
	default:
		return nil, ErrInquiryStatusInvalid
	}
	ok, err := s.repo.UpdateStatus(id, status, s.now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInquiryNotFound
	}
	return s.Get(id)
}

// Delete 删除留言
func (s *InquiryService) Delete(id uint) error {
	deleted, err := s.repo.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrInquiryNotFound
	}
	return nil
}

func normalizeOptionalID(id *uint) *uint {
	if id == nil || *id == 0 {
		return nil
	}
	value := *id
	return &value
}
