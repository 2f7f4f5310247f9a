package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/tripnest/internal/models"

	"gorm.io/gorm"
)

// InquiryRepository 留言数据访问接口
type InquiryRepository interface {
	Create(inquiry *models.Inquiry) error
	GetByID(id uint) (*models.Inquiry, error)
	List(filter InquiryListFilter) ([]models.Inquiry, int64, error)
	UpdateStatus(id uint, status string, updatedAt time.Time) (bool, error)
	Delete(id uint) (bool, error)
}

// GormInquiryRepository GORM 实现
type GormInquiryRepository struct {
	db *gorm.DB
}

// NewInquiryRepository 创建留言仓库
func NewInquiryRepository(db *gorm.DB) *GormInquiryRepository {
	return &GormInquiryRepository{db: db}
}

// Create 创建留言
func (r *GormInquiryRepository) Create(inquiry *models.Inquiry) error {
	return r.db.Create(inquiry).Error
}

// GetByID 根据 ID 获取留言
func (r *GormInquiryRepository) GetByID(id uint) (*models.Inquiry, error) {
	if id == 0 {
		return nil, nil
	}
	var inquiry models.Inquiry
	if err := r.db.First(&inquiry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &inquiry, nil
}

// List 留言列表
func (r *GormInquiryRepository) List(filter InquiryListFilter) ([]models.Inquiry, int64, error) {
	query := r.db.Model(&models.Inquiry{})
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		condition, count := buildLikeCondition(r.db, "name", "email", "subject")
		query = query.Where(condition, repeatLikeArgs("%"+search+"%", count)...)
	}
	return findPage[models.Inquiry](query, filter.Page, filter.PageSize, "id desc")
}

// UpdateStatus 更新留言状态
func (r *GormInquiryRepository) UpdateStatus(id uint, status string, updatedAt time.Time) (bool, error) {
	result := r.db.Model(&models.Inquiry{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": updatedAt,
	})
	return result.RowsAffected > 0, result.Error
}

// Delete 删除留言
func (r *GormInquiryRepository) Delete(id uint) (bool, error) {
	result := r.db.Delete(&models.Inquiry{}, id)
	return result.RowsAffected > 0, result.Error
}
