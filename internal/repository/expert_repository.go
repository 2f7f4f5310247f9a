package repository

import (
	"errors"
	"strings"

	"github.com/tripnest/internal/models"

	"gorm.io/gorm"
)

// ExpertRepository 专家数据访问接口
type ExpertRepository interface {
	List(filter ExpertListFilter) ([]models.Expert, int64, error)
	GetByID(id uint) (*models.Expert, error)
	GetBySlug(slug string, onlyActive bool) (*models.Expert, error)
	Create(expert *models.Expert) error
	Update(expert *models.Expert) error
	Delete(id uint) error
	CountBySlug(slug string, excludeID uint) (int64, error)
	WithTx(tx *gorm.DB) *GormExpertRepository
}

// GormExpertRepository GORM 实现
type GormExpertRepository struct {
	db *gorm.DB
}

// NewExpertRepository 创建专家仓库
func NewExpertRepository(db *gorm.DB) *GormExpertRepository {
	return &GormExpertRepository{db: db}
}

// WithTx 绑定事务
func (r *GormExpertRepository) WithTx(tx *gorm.DB) *GormExpertRepository {
	if tx == nil {
		return r
	}
	return &GormExpertRepository{db: tx}
}

// List 专家列表
func (r *GormExpertRepository) List(filter ExpertListFilter) ([]models.Expert, int64, error) {
	query := r.db.Model(&models.Expert{})
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		condition, count := buildLikeCondition(r.db, "name", "title", "slug")
		query = query.Where(condition, repeatLikeArgs("%"+search+"%", count)...)
	}
	return findPage[models.Expert](query, filter.Page, filter.PageSize, "sort_order desc, id desc")
}

// GetByID 根据 ID 获取专家
func (r *GormExpertRepository) GetByID(id uint) (*models.Expert, error) {
	if id == 0 {
		return nil, nil
	}
	var expert models.Expert
	if err := r.db.First(&expert, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &expert, nil
}

// GetBySlug 根据 slug 获取专家
func (r *GormExpertRepository) GetBySlug(slug string, onlyActive bool) (*models.Expert, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, nil
	}
	query := r.db.Where("slug = ?", slug)
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	var expert models.Expert
	if err := query.First(&expert).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &expert, nil
}

// Create 创建专家
func (r *GormExpertRepository) Create(expert *models.Expert) error {
	return r.db.Create(expert).Error
}

// Update 更新专家
func (r *GormExpertRepository) Update(expert *models.Expert) error {
	return r.db.Save(expert).Error
}

// Delete 删除专家
func (r *GormExpertRepository) Delete(id uint) error {
	return r.db.Delete(&models.Expert{}, id).Error
}

// CountBySlug 统计 slug 数量
func (r *GormExpertRepository) CountBySlug(slug string, excludeID uint) (int64, error) {
	var count int64
	query := r.db.Unscoped().Model(&models.Expert{}).Where("slug = ?", slug)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
