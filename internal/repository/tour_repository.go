package repository

import (
	"errors"
	"strings"

	"github.com/tripnest/internal/constants"
	"github.com/tripnest/internal/models"

	"gorm.io/gorm"
)

// TourRepository 线路数据访问接口
type TourRepository interface {
	List(filter TourListFilter) ([]models.Tour, int64, error)
	GetByID(id uint) (*models.Tour, error)
	GetBySlug(slug string, onlyPublished bool) (*models.Tour, error)
	Create(tour *models.Tour) error
	Update(tour *models.Tour) error
	Delete(id uint) error
	CountBySlug(slug string, excludeID uint) (int64, error)
	WithTx(tx *gorm.DB) *GormTourRepository
}

// GormTourRepository GORM 实现
type GormTourRepository struct {
	db *gorm.DB
}

// NewTourRepository 创建线路仓库
func NewTourRepository(db *gorm.DB) *GormTourRepository {
	return &GormTourRepository{db: db}
}

// WithTx 绑定事务
func (r *GormTourRepository) WithTx(tx *gorm.DB) *GormTourRepository {
	if tx == nil {
		return r
	}
	return &GormTourRepository{db: tx}
}

// List 线路列表
func (r *GormTourRepository) List(filter TourListFilter) ([]models.Tour, int64, error) {
	query := r.db.Model(&models.Tour{})
	if filter.WithRelations {
		query = query.Preload("Category").Preload("TourLeader")
	}
	if filter.CategoryID > 0 {
		query = query.Where("tours.category_id = ?", filter.CategoryID)
	}
	if slug := strings.TrimSpace(filter.CategorySlug); slug != "" {
		query = query.Joins("JOIN categories ON categories.id = tours.category_id AND categories.deleted_at IS NULL").
			Where("categories.slug = ?", slug)
	}
	if filter.OnlyPublished {
		query = query.Where("tours.status = ?", constants.TourStatusPublished)
	} else if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("tours.status = ?", status)
	}
	if filter.OnlyFeatured {
		query = query.Where("tours.is_featured = ?", true)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		condition, count := buildLikeCondition(r.db, "tours.title", "tours.summary", "tours.destination", "tours.slug")
		query = query.Where(condition, repeatLikeArgs("%"+search+"%", count)...)
	}
	return findPage[models.Tour](query, filter.Page, filter.PageSize, "tours.sort_order desc, tours.id desc")
}

// GetByID 根据 ID 获取线路
func (r *GormTourRepository) GetByID(id uint) (*models.Tour, error) {
	if id == 0 {
		return nil, nil
	}
	var tour models.Tour
	if err := r.db.Preload("Category").Preload("TourLeader").First(&tour, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tour, nil
}

// GetBySlug 根据 slug 获取线路
func (r *GormTourRepository) GetBySlug(slug string, onlyPublished bool) (*models.Tour, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, nil
	}
	query := r.db.Preload("Category").Preload("TourLeader").Where("slug = ?", slug)
	if onlyPublished {
		query = query.Where("status = ?", constants.TourStatusPublished)
	}
	var tour models.Tour
	if err := query.First(&tour).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tour, nil
}

// Create 创建线路
func (r *GormTourRepository) Create(tour *models.Tour) error {
	return r.db.Omit("Category", "TourLeader").Create(tour).Error
}

// Update 更新线路
func (r *GormTourRepository) Update(tour *models.Tour) error {
	return r.db.Omit("Category", "TourLeader").Save(tour).Error
}

// Delete 删除线路
func (r *GormTourRepository) Delete(id uint) error {
	return r.db.Delete(&models.Tour{}, id).Error
}

// CountBySlug 统计 slug 数量
func (r *GormTourRepository) CountBySlug(slug string, excludeID uint) (int64, error) {
	var count int64
	query := r.db.Unscoped().Model(&models.Tour{}).Where("slug = ?", slug)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
