package repository

import (
	"errors"
	"strings"

	"github.com/tripnest/internal/models"

	"gorm.io/gorm"
)

// TourLeaderRepository 领队数据访问接口
type TourLeaderRepository interface {
	List(filter TourLeaderListFilter) ([]models.TourLeader, int64, error)
	GetByID(id uint) (*models.TourLeader, error)
	GetBySlug(slug string, onlyActive bool) (*models.TourLeader, error)
	Create(leader *models.TourLeader) error
	Update(leader *models.TourLeader) error
	Delete(id uint) error
	CountBySlug(slug string, excludeID uint) (int64, error)
}

// GormTourLeaderRepository GORM 实现
type GormTourLeaderRepository struct {
	db *gorm.DB
}

// NewTourLeaderRepository 创建领队仓库
func NewTourLeaderRepository(db *gorm.DB) *GormTourLeaderRepository {
	return &GormTourLeaderRepository{db: db}
}

// List 领队列表
func (r *GormTourLeaderRepository) List(filter TourLeaderListFilter) ([]models.TourLeader, int64, error) {
	query := r.db.Model(&models.TourLeader{})
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		condition, count := buildLikeCondition(r.db, "name", "slug")
		query = query.Where(condition, repeatLikeArgs("%"+search+"%", count)...)
	}
	return findPage[models.TourLeader](query, filter.Page, filter.PageSize, "id desc")
}

// GetByID 根据 ID 获取领队
func (r *GormTourLeaderRepository) GetByID(id uint) (*models.TourLeader, error) {
	if id == 0 {
		return nil, nil
	}
	var leader models.TourLeader
	if err := r.db.First(&leader, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &leader, nil
}

// GetBySlug 根据 slug 获取领队
func (r *GormTourLeaderRepository) GetBySlug(slug string, onlyActive bool) (*models.TourLeader, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, nil
	}
	query := r.db.Where("slug = ?", slug)
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	var leader models.TourLeader
	if err := query.First(&leader).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &leader, nil
}

// Create 创建领队
func (r *GormTourLeaderRepository) Create(leader *models.TourLeader) error {
	return r.db.Create(leader).Error
}

// Update 更新领队
func (r *GormTourLeaderRepository) Update(leader *models.TourLeader) error {
	return r.db.Save(leader).Error
}

// Delete 删除领队，并解除线路关联
func (r *GormTourLeaderRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Tour{}).Where("tour_leader_id = ?", id).Update("tour_leader_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.TourLeader{}, id).Error
	})
}

// CountBySlug 统计 slug 数量
func (r *GormTourLeaderRepository) CountBySlug(slug string, excludeID uint) (int64, error) {
	var count int64
	query := r.db.Unscoped().Model(&models.TourLeader{}).Where("slug = ?", slug)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
