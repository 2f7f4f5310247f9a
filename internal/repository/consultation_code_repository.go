package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/tripnest/internal/constants"
	"github.com/tripnest/internal/models"

	"gorm.io/gorm"
)

// ConsultationCodeRepository 咨询码仓储接口
type ConsultationCodeRepository interface {
	Create(code *models.ConsultationCode) error
	GetByID(id string) (*models.ConsultationCode, error)
	GetByCode(code string) (*models.ConsultationCode, error)
	ExistsByCode(code string) (bool, error)
	List(filter ConsultationCodeListFilter) ([]models.ConsultationCode, int64, error)
	ListByIDs(ids []string) ([]models.ConsultationCode, error)
	Update(code *models.ConsultationCode) error
	Delete(id string) (bool, error)
	MarkExpired(id string, now time.Time) (bool, error)
	IncrementUsedCount(id string, now time.Time) (bool, error)
	RedeemWithinLimit(id string, now time.Time) (bool, error)
	CountByStatus() (map[string]int64, error)
	WithTx(tx *gorm.DB) *GormConsultationCodeRepository
}

// GormConsultationCodeRepository GORM 咨询码仓储实现
type GormConsultationCodeRepository struct {
	db *gorm.DB
}

// NewConsultationCodeRepository 创建咨询码仓储
func NewConsultationCodeRepository(db *gorm.DB) *GormConsultationCodeRepository {
	return &GormConsultationCodeRepository{db: db}
}

// WithTx 绑定事务
func (r *GormConsultationCodeRepository) WithTx(tx *gorm.DB) *GormConsultationCodeRepository {
	if tx == nil {
		return r
	}
	return &GormConsultationCodeRepository{db: tx}
}

// Create 创建咨询码，唯一索引冲突原样返回
func (r *GormConsultationCodeRepository) Create(code *models.ConsultationCode) error {
	if code == nil {
		return errors.New("invalid consultation code")
	}
	return r.db.Create(code).Error
}

// GetByID 根据 ID 查询咨询码
func (r *GormConsultationCodeRepository) GetByID(id string) (*models.ConsultationCode, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}
	var code models.ConsultationCode
	if err := r.db.Where("id = ?", id).First(&code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &code, nil
}

// GetByCode 根据码值查询（大小写不敏感）
func (r *GormConsultationCodeRepository) GetByCode(code string) (*models.ConsultationCode, error) {
	code = normalizeCode(code)
	if code == "" {
		return nil, nil
	}
	var row models.ConsultationCode
	if err := r.db.Where("code = ?", code).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// ExistsByCode 判断码值是否已存在
func (r *GormConsultationCodeRepository) ExistsByCode(code string) (bool, error) {
	code = normalizeCode(code)
	if code == "" {
		return false, nil
	}
	var count int64
	if err := r.db.Model(&models.ConsultationCode{}).Where("code = ?", code).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List 查询咨询码列表
func (r *GormConsultationCodeRepository) List(filter ConsultationCodeListFilter) ([]models.ConsultationCode, int64, error) {
	query := r.db.Model(&models.ConsultationCode{})
	if code := normalizeCode(filter.Code); code != "" {
		condition, count := buildLikeCondition(r.db, "code")
		query = query.Where(condition, repeatLikeArgs("%"+code+"%", count)...)
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}
	return findPage[models.ConsultationCode](query, filter.Page, filter.PageSize, "created_at desc, id desc")
}

// ListByIDs 按 ID 列表查询咨询码
func (r *GormConsultationCodeRepository) ListByIDs(ids []string) ([]models.ConsultationCode, error) {
	if len(ids) == 0 {
		return []models.ConsultationCode{}, nil
	}
	var rows []models.ConsultationCode
	if err := r.db.Where("id IN ?", ids).Order("created_at asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update 保存咨询码
func (r *GormConsultationCodeRepository) Update(code *models.ConsultationCode) error {
	if code == nil || code.ID == "" {
		return errors.New("invalid consultation code")
	}
	return r.db.Save(code).Error
}

// Delete 删除咨询码，返回是否实际删除
func (r *GormConsultationCodeRepository) Delete(id string) (bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return false, nil
	}
	result := r.db.Where("id = ?", id).Delete(&models.ConsultationCode{})
	return result.RowsAffected > 0, result.Error
}

// MarkExpired 将仍为 active 的咨询码置为 expired，返回是否发生状态变化
func (r *GormConsultationCodeRepository) MarkExpired(id string, now time.Time) (bool, error) {
	result := r.db.Model(&models.ConsultationCode{}).
		Where("id = ? AND status = ?", id, constants.ConsultationCodeStatusActive).
		Updates(map[string]interface{}{
			"status":     constants.ConsultationCodeStatusExpired,
			"updated_at": now,
		})
	return result.RowsAffected > 0, result.Error
}

// IncrementUsedCount 原子递增使用次数，不校验上限
func (r *GormConsultationCodeRepository) IncrementUsedCount(id string, now time.Time) (bool, error) {
	result := r.db.Model(&models.ConsultationCode{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"used_count": gorm.Expr("used_count + ?", 1),
			"updated_at": now,
		})
	return result.RowsAffected > 0, result.Error
}

// RedeemWithinLimit 条件递增：仅当咨询码可用且未达上限时才计数
func (r *GormConsultationCodeRepository) RedeemWithinLimit(id string, now time.Time) (bool, error) {
	result := r.db.Model(&models.ConsultationCode{}).
		Where("id = ? AND status = ?", id, constants.ConsultationCodeStatusActive).
		Where("max_uses IS NULL OR used_count < max_uses").
		Where("expires_at IS NULL OR expires_at >= ?", now.UTC()).
		Updates(map[string]interface{}{
			"used_count": gorm.Expr("used_count + ?", 1),
			"updated_at": now,
		})
	return result.RowsAffected > 0, result.Error
}

// CountByStatus 按状态统计数量
func (r *GormConsultationCodeRepository) CountByStatus() (map[string]int64, error) {
	type statusCount struct {
		Status string
		Total  int64
	}
	var rows []statusCount
	if err := r.db.Model(&models.ConsultationCode{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := map[string]int64{
		constants.ConsultationCodeStatusActive:   0,
		constants.ConsultationCodeStatusInactive: 0,
		constants.ConsultationCodeStatusExpired:  0,
	}
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
