package repository

import (
	"errors"
	"strings"

	"github.com/tripnest/internal/models"

	"gorm.io/gorm"
)

// BookingRepository 预订数据访问接口
type BookingRepository interface {
	Create(booking *models.Booking) error
	GetByID(id uint) (*models.Booking, error)
	GetByBookingNo(bookingNo string) (*models.Booking, error)
	List(filter BookingListFilter) ([]models.Booking, int64, error)
	UpdateStatus(id uint, fromStatus string, updates map[string]interface{}) (bool, error)
	CountByConsultationCode(codeID string) (int64, error)
	WithTx(tx *gorm.DB) *GormBookingRepository
}

// GormBookingRepository GORM 实现
type GormBookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository 创建预订仓库
func NewBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// WithTx 绑定事务
func (r *GormBookingRepository) WithTx(tx *gorm.DB) *GormBookingRepository {
	if tx == nil {
		return r
	}
	return &GormBookingRepository{db: tx}
}

// Create 创建预订
func (r *GormBookingRepository) Create(booking *models.Booking) error {
	if booking == nil {
		return errors.New("invalid booking")
	}
	return r.db.Omit("Tour", "Expert").Create(booking).Error
}

// GetByID 根据 ID 获取预订
func (r *GormBookingRepository) GetByID(id uint) (*models.Booking, error) {
	if id == 0 {
		return nil, nil
	}
	var booking models.Booking
	if err := r.db.Preload("Tour").Preload("Expert").First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

// GetByBookingNo 根据预订编号获取预订
func (r *GormBookingRepository) GetByBookingNo(bookingNo string) (*models.Booking, error) {
	bookingNo = strings.ToUpper(strings.TrimSpace(bookingNo))
	if bookingNo == "" {
		return nil, nil
	}
	var booking models.Booking
	if err := r.db.Preload("Tour").Preload("Expert").Where("booking_no = ?", bookingNo).First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

// List 预订列表
func (r *GormBookingRepository) List(filter BookingListFilter) ([]models.Booking, int64, error) {
	query := r.db.Model(&models.Booking{}).Preload("Tour").Preload("Expert")
	if bookingType := strings.TrimSpace(filter.Type); bookingType != "" {
		query = query.Where("type = ?", bookingType)
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	if bookingNo := strings.ToUpper(strings.TrimSpace(filter.BookingNo)); bookingNo != "" {
		query = query.Where("booking_no LIKE ?", "%"+bookingNo+"%")
	}
	if email := strings.ToLower(strings.TrimSpace(filter.CustomerEmail)); email != "" {
		query = query.Where("customer_email = ?", email)
	}
	if filter.TourID > 0 {
		query = query.Where("tour_id = ?", filter.TourID)
	}
	if filter.ExpertID > 0 {
		query = query.Where("expert_id = ?", filter.ExpertID)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}
	return findPage[models.Booking](query, filter.Page, filter.PageSize, "id desc")
}

// UpdateStatus 基于当前状态的条件更新，返回是否命中
func (r *GormBookingRepository) UpdateStatus(id uint, fromStatus string, updates map[string]interface{}) (bool, error) {
	if id == 0 || len(updates) == 0 {
		return false, nil
	}
	result := r.db.Model(&models.Booking{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Updates(updates)
	return result.RowsAffected > 0, result.Error
}

// CountByConsultationCode 统计使用某咨询码的预订数
func (r *GormBookingRepository) CountByConsultationCode(codeID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Booking{}).Where("consultation_code_id = ?", codeID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
