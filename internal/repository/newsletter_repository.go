package repository

import (
	"errors"
	"strings"

	"github.com/tripnest/internal/models"

	"gorm.io/gorm"
)

// NewsletterRepository 订阅者数据访问接口
type NewsletterRepository interface {
	GetByID(id uint) (*models.NewsletterSubscriber, error)
	GetByEmail(email string) (*models.NewsletterSubscriber, error)
	GetByToken(token string) (*models.NewsletterSubscriber, error)
	Create(subscriber *models.NewsletterSubscriber) error
	Update(subscriber *models.NewsletterSubscriber) error
	List(filter NewsletterListFilter) ([]models.NewsletterSubscriber, int64, error)
}

// GormNewsletterRepository GORM 实现
type GormNewsletterRepository struct {
	db *gorm.DB
}

// NewNewsletterRepository 创建订阅者仓库
func NewNewsletterRepository(db *gorm.DB) *GormNewsletterRepository {
	return &GormNewsletterRepository{db: db}
}

// GetByID 根据 ID 获取订阅者
func (r *GormNewsletterRepository) GetByID(id uint) (*models.NewsletterSubscriber, error) {
	if id == 0 {
		return nil, nil
	}
	var subscriber models.NewsletterSubscriber
	if err := r.db.First(&subscriber, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &subscriber, nil
}

// GetByEmail 根据邮箱获取订阅者
func (r *GormNewsletterRepository) GetByEmail(email string) (*models.NewsletterSubscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, nil
	}
	var subscriber models.NewsletterSubscriber
	if err := r.db.Where("email = ?", email).First(&subscriber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &subscriber, nil
}

// GetByToken 根据退订令牌获取订阅者
func (r *GormNewsletterRepository) GetByToken(token string) (*models.NewsletterSubscriber, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, nil
	}
	var subscriber models.NewsletterSubscriber
	if err := r.db.Where("unsubscribe_token = ?", token).First(&subscriber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &subscriber, nil
}

// Create 创建订阅者
func (r *GormNewsletterRepository) Create(subscriber *models.NewsletterSubscriber) error {
	return r.db.Create(subscriber).Error
}

// Update 更新订阅者
func (r *GormNewsletterRepository) Update(subscriber *models.NewsletterSubscriber) error {
	return r.db.Save(subscriber).Error
}

// List 订阅者列表
func (r *GormNewsletterRepository) List(filter NewsletterListFilter) ([]models.NewsletterSubscriber, int64, error) {
	query := r.db.Model(&models.NewsletterSubscriber{})
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	if search := strings.ToLower(strings.TrimSpace(filter.Search)); search != "" {
		query = query.Where("email LIKE ?", "%"+search+"%")
	}
	return findPage[models.NewsletterSubscriber](query, filter.Page, filter.PageSize, "id desc")
}
