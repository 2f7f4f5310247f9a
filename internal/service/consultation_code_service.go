package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tripnest/internal/config"
	"github.com/tripnest/internal/constants"
	"github.com/tripnest/internal/logger"
	"github.com/tripnest/internal/models"
	"github.com/tripnest/internal/repository"

	"gorm.io/gorm"
)

// 校验未通过原因
const (
	ConsultationReasonRequired   = "code is required"
	ConsultationReasonNotFound   = "code not found"
	ConsultationReasonExpired    = "code has expired"
	ConsultationReasonUsageLimit = "code has reached maximum usage limit"
)

// 校验原因代码，用于前端与多语言映射
const (
	ConsultationReasonCodeRequired   = "required"
	ConsultationReasonCodeNotFound   = "not_found"
	ConsultationReasonCodeExpired    = "expired"
	ConsultationReasonCodeUsageLimit = "usage_limit"
)

// ConsultationCodeValidation 咨询码校验结果
type ConsultationCodeValidation struct {
	Valid      bool                     `json:"valid"`
	Code       *models.ConsultationCode `json:"code,omitempty"`
	Reason     string                   `json:"reason,omitempty"`
	ReasonCode string                   `json:"reason_code,omitempty"`
}

func invalidConsultationCode(reason, reasonCode string) ConsultationCodeValidation {
	return ConsultationCodeValidation{Valid: false, Reason: reason, ReasonCode: reasonCode}
}

// ConsultationCodeService 咨询码服务
type ConsultationCodeService struct {
	repo     repository.ConsultationCodeRepository
	cfg      config.ConsultationConfig
	now      func() time.Time
	generate func(prefix string) string
}

// NewConsultationCodeService 创建咨询码服务
func NewConsultationCodeService(repo repository.ConsultationCodeRepository, cfg config.ConsultationConfig) *ConsultationCodeService {
	if cfg.GenerateMaxAttempts <= 0 {
		cfg.GenerateMaxAttempts = constants.ConsultationCodeGenerateMaxAttempt
	}
	if cfg.BulkMaxCount <= 0 {
		cfg.BulkMaxCount = constants.ConsultationCodeBulkMaxCount
	}
	return &ConsultationCodeService{
		repo:     repo,
		cfg:      cfg,
		now:      time.Now,
		generate: GenerateConsultationCode,
	}
}

// StrictRedeem 是否启用条件核销
func (s *ConsultationCodeService) StrictRedeem() bool {
	return s != nil && s.cfg.StrictRedeem
}

// BulkMaxCount 单次批量生成上限
func (s *ConsultationCodeService) BulkMaxCount() int {
	return s.cfg.BulkMaxCount
}

func (s *ConsultationCodeService) resolvePrefix(prefix string) string {
	if strings.TrimSpace(prefix) == "" {
		prefix = s.cfg.CodePrefix
	}
	return NormalizeConsultationCodePrefix(prefix)
}

// GenerateCode 生成当前存储中不存在的咨询码
func (s *ConsultationCodeService) GenerateCode(prefix string) (string, error) {
	prefix = s.resolvePrefix(prefix)
	for attempt := 0; attempt < s.cfg.GenerateMaxAttempts; attempt++ {
		candidate := s.generate(prefix)
		exists, err := s.repo.ExistsByCode(candidate)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrConsultationCodeFetchFailed, err)
		}
		if !exists {
			return candidate, nil
		}
		logger.Debugw("consultation_code_collision", "attempt", attempt+1)
	}
	return "", ErrConsultationCodeGenerateFailed
}

// Validate 校验咨询码是否可用于预约，不会增加使用次数
func (s *ConsultationCodeService) Validate(code string) (ConsultationCodeValidation, error) {
	normalized := NormalizeConsultationCode(code)
	if normalized == "" {
		return invalidConsultationCode(ConsultationReasonRequired, ConsultationReasonCodeRequired), nil
	}

	row, err := s.repo.GetByCode(normalized)
	if err != nil {
		logger.Errorw("consultation_code_fetch_failed", "error", err)
		return ConsultationCodeValidation{}, fmt.Errorf("%w: %v", ErrConsultationCodeFetchFailed, err)
	}
	if row == nil {
		return invalidConsultationCode(ConsultationReasonNotFound, ConsultationReasonCodeNotFound), nil
	}
	if row.Status != constants.ConsultationCodeStatusActive {
		return invalidConsultationCode("code is "+row.Status, row.Status), nil
	}

	now := s.now()
	if row.ExpiresAt != nil && row.ExpiresAt.Before(now) {
		s.markExpired(row, now, ConsultationReasonCodeExpired)
		return invalidConsultationCode(ConsultationReasonExpired, ConsultationReasonCodeExpired), nil
	}
	if row.MaxUses != nil && row.UsedCount >= *row.MaxUses {
		s.markExpired(row, now, ConsultationReasonCodeUsageLimit)
		return invalidConsultationCode(ConsultationReasonUsageLimit, ConsultationReasonCodeUsageLimit), nil
	}
	return ConsultationCodeValidation{Valid: true, Code: row}, nil
}

// markExpired 惰性持久化 active -> expired，失败只记录日志，下次校验会重试
func (s *ConsultationCodeService) markExpired(row *models.ConsultationCode, now time.Time, cause string) {
	changed, err := s.repo.MarkExpired(row.ID, now)
	if err != nil {
		logger.Warnw("consultation_code_mark_expired_failed",
			"consultation_code_id", row.ID,
			"cause", cause,
			"error", err,
		)
		return
	}
	if changed {
		logger.Infow("consultation_code_expired",
			"consultation_code_id", row.ID,
			"cause", cause,
		)
	}
}

// IncrementUsage 原子递增使用次数，ID 不存在时不做任何事
func (s *ConsultationCodeService) IncrementUsage(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	changed, err := s.repo.IncrementUsedCount(id, s.now())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConsultationCodeUpdateFailed, err)
	}
	if !changed {
		logger.Debugw("consultation_code_increment_missing", "consultation_code_id", id)
	}
	return nil
}

// Redeem 在事务内条件核销一次，咨询码不可用时返回 ErrConsultationCodeUnavailable
func (s *ConsultationCodeService) Redeem(tx *gorm.DB, id string) error {
	ok, err := s.repo.WithTx(tx).RedeemWithinLimit(id, s.now())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConsultationCodeUpdateFailed, err)
	}
	if !ok {
		return ErrConsultationCodeUnavailable
	}
	return nil
}

// CreateConsultationCodeInput 创建咨询码输入
type CreateConsultationCodeInput struct {
	Code        string
	Prefix      string
	Description *string
	MaxUses     *int
	ExpiresAt   *time.Time
	CreatedBy   *string
}

// Create 创建单个咨询码，未指定码值时自动生成
func (s *ConsultationCodeService) Create(input CreateConsultationCodeInput) (*models.ConsultationCode, error) {
	if err := validateMaxUses(input.MaxUses); err != nil {
		return nil, err
	}
	now := s.now()
	row := &models.ConsultationCode{
		Status:      constants.ConsultationCodeStatusActive,
		Description: normalizeOptionalString(input.Description),
		MaxUses:     input.MaxUses,
		ExpiresAt:   normalizeOptionalTime(input.ExpiresAt),
		CreatedBy:   normalizeOptionalString(input.CreatedBy),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	explicit := NormalizeConsultationCode(input.Code)
	if explicit != "" {
		if !MatchesConsultationCodeFormat(explicit) {
			return nil, ErrConsultationCodeFormatInvalid
		}
		row.Code = explicit
		if err := s.repo.Create(row); err != nil {
			if repository.IsUniqueViolation(err) {
				return nil, ErrConsultationCodeExists
			}
			return nil, fmt.Errorf("%w: %v", ErrConsultationCodeCreateFailed, err)
		}
		logger.Infow("consultation_code_created", "consultation_code_id", row.ID, "generated", false)
		return row, nil
	}

	if err := s.insertWithRetry(s.repo, row, s.resolvePrefix(input.Prefix), nil); err != nil {
		return nil, err
	}
	logger.Infow("consultation_code_created", "consultation_code_id", row.ID, "generated", true)
	return row, nil
}

// BulkGenerateInput 批量生成输入
type BulkGenerateInput struct {
	Count       int
	Prefix      string
	Description *string
	MaxUses     *int
	ExpiresAt   *time.Time
	CreatedBy   *string
}

// BulkGenerate 批量生成互不相同的咨询码，要么全部成功要么全部回滚
func (s *ConsultationCodeService) BulkGenerate(input BulkGenerateInput) ([]models.ConsultationCode, error) {
	if input.Count < 1 || input.Count > s.cfg.BulkMaxCount {
		return nil, ErrConsultationCodeBulkCount
	}
	if err := validateMaxUses(input.MaxUses); err != nil {
		return nil, err
	}
	prefix := s.resolvePrefix(input.Prefix)

	// 先在内存中去重，避免同批次内重复
	seen := make(map[string]struct{}, input.Count)
	candidates := make([]string, 0, input.Count)
	for len(candidates) < input.Count {
		candidate := s.generate(prefix)
		if _, ok := seen[candidate]; ok {
			continue
		}
		seen[candidate] = struct{}{}
		candidates = append(candidates, candidate)
	}

	now := s.now()
	description := normalizeOptionalString(input.Description)
	expiresAt := normalizeOptionalTime(input.ExpiresAt)
	createdBy := normalizeOptionalString(input.CreatedBy)
	rows := make([]models.ConsultationCode, len(candidates))

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		for idx, candidate := range candidates {
			rows[idx] = models.ConsultationCode{
				Code:        candidate,
				Status:      constants.ConsultationCodeStatusActive,
				Description: description,
				MaxUses:     copyIntPtr(input.MaxUses),
				ExpiresAt:   expiresAt,
				CreatedBy:   createdBy,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := s.insertWithRetry(repo, &rows[idx], prefix, &bulkRetryScope{tx: tx, seen: seen}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrConsultationCodeGenerateFailed) || errors.Is(err, ErrConsultationCodeCreateFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrConsultationCodeCreateFailed, err)
	}

	logger.Infow("consultation_code_bulk_generated", "count", len(rows), "prefix", prefix)
	return rows, nil
}

type bulkRetryScope struct {
	tx   *gorm.DB
	seen map[string]struct{}
}

// insertWithRetry 插入咨询码，唯一约束冲突时重新生成后重试
func (s *ConsultationCodeService) insertWithRetry(repo repository.ConsultationCodeRepository, row *models.ConsultationCode, prefix string, scope *bulkRetryScope) error {
	if row.Code == "" {
		row.Code = s.generate(prefix)
	}
	const savepoint = "consultation_code_insert"
	for attempt := 0; attempt < s.cfg.GenerateMaxAttempts; attempt++ {
		if scope != nil {
			if err := scope.tx.SavePoint(savepoint).Error; err != nil {
				return fmt.Errorf("%w: %v", ErrConsultationCodeCreateFailed, err)
			}
		}
		err := repo.Create(row)
		if err == nil {
			return nil
		}
		if !repository.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %v", ErrConsultationCodeCreateFailed, err)
		}
		if scope != nil {
			if rbErr := scope.tx.RollbackTo(savepoint).Error; rbErr != nil {
				return fmt.Errorf("%w: %v", ErrConsultationCodeCreateFailed, rbErr)
			}
		}
		logger.Debugw("consultation_code_collision", "attempt", attempt+1)
		row.Code = s.nextCandidate(prefix, scope)
	}
	return ErrConsultationCodeGenerateFailed
}

func (s *ConsultationCodeService) nextCandidate(prefix string, scope *bulkRetryScope) string {
	for {
		candidate := s.generate(prefix)
		if scope == nil {
			return candidate
		}
		if _, ok := scope.seen[candidate]; ok {
			continue
		}
		scope.seen[candidate] = struct{}{}
		return candidate
	}
}

// ConsultationCodeListInput 列表查询输入
type ConsultationCodeListInput struct {
	Code        string
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Page        int
	PageSize    int
}

// List 查询咨询码列表
func (s *ConsultationCodeService) List(input ConsultationCodeListInput) ([]models.ConsultationCode, int64, error) {
	rows, total, err := s.repo.List(repository.ConsultationCodeListFilter{
		Page:        input.Page,
		PageSize:    input.PageSize,
		Code:        input.Code,
		Status:      strings.ToLower(strings.TrimSpace(input.Status)),
		CreatedFrom: input.CreatedFrom,
		CreatedTo:   input.CreatedTo,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrConsultationCodeFetchFailed, err)
	}
	return rows, total, nil
}

// Get 获取咨询码详情
func (s *ConsultationCodeService) Get(id string) (*models.ConsultationCode, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConsultationCodeFetchFailed, err)
	}
	if row == nil {
		return nil, ErrConsultationCodeNotFound
	}
	return row, nil
}

// UpdateConsultationCodeInput 更新咨询码输入
type UpdateConsultationCodeInput struct {
	Description    *string
	MaxUses        *int
	ClearMaxUses   bool
	ExpiresAt      *time.Time
	ClearExpiresAt bool
	Status         *string
}

// Update 更新咨询码，状态仅允许 active 与 inactive 互转
func (s *ConsultationCodeService) Update(id string, input UpdateConsultationCodeInput) (*models.ConsultationCode, error) {
	row, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if input.Status != nil {
		status := strings.ToLower(strings.TrimSpace(*input.Status))
		if status != constants.ConsultationCodeStatusActive && status != constants.ConsultationCodeStatusInactive {
			return nil, ErrConsultationCodeStatusInvalid
		}
		if row.Status == constants.ConsultationCodeStatusExpired && status != row.Status {
			return nil, ErrConsultationCodeStatusInvalid
		}
		row.Status = status
	}
	if input.Description != nil {
		row.Description = normalizeOptionalString(input.Description)
	}
	if input.ClearMaxUses {
		row.MaxUses = nil
	} else if input.MaxUses != nil {
		if err := validateMaxUses(input.MaxUses); err != nil {
			return nil, err
		}
		row.MaxUses = copyIntPtr(input.MaxUses)
	}
	if input.ClearExpiresAt {
		row.ExpiresAt = nil
	} else if input.ExpiresAt != nil {
		row.ExpiresAt = normalizeOptionalTime(input.ExpiresAt)
	}
	row.UpdatedAt = s.now()

	if err := s.repo.Update(row); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConsultationCodeUpdateFailed, err)
	}
	return row, nil
}

// Delete 删除咨询码
func (s *ConsultationCodeService) Delete(id string) error {
	deleted, err := s.repo.Delete(id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConsultationCodeDeleteFailed, err)
	}
	if !deleted {
		return ErrConsultationCodeNotFound
	}
	return nil
}

// ConsultationCodeStats 咨询码状态统计
type ConsultationCodeStats struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
	Expired  int64 `json:"expired"`
}

// Stats 统计各状态数量
func (s *ConsultationCodeService) Stats() (*ConsultationCodeStats, error) {
	counts, err := s.repo.CountByStatus()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConsultationCodeFetchFailed, err)
	}
	stats := &ConsultationCodeStats{
		Active:   counts[constants.ConsultationCodeStatusActive],
		Inactive: counts[constants.ConsultationCodeStatusInactive],
		Expired:  counts[constants.ConsultationCodeStatusExpired],
	}
	for _, v := range counts {
		stats.Total += v
	}
	return stats, nil
}

// Export 导出咨询码，支持 csv / txt；指定 ids 时仅导出这些记录
func (s *ConsultationCodeService) Export(ids []string, input ConsultationCodeListInput, format string) ([]byte, string, error) {
	normalizedFormat := strings.ToLower(strings.TrimSpace(format))
	if normalizedFormat != "csv" && normalizedFormat != "txt" {
		return nil, "", ErrExportFormat
	}

	var (
		rows []models.ConsultationCode
		err  error
	)
	if len(ids) > 0 {
		rows, err = s.repo.ListByIDs(ids)
	} else {
		input.Page, input.PageSize = 0, 0
		rows, _, err = s.List(input)
	}
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrConsultationCodeFetchFailed, err)
	}

	if normalizedFormat == "txt" {
		lines := make([]string, 0, len(rows))
		for _, row := range rows {
			lines = append(lines, row.Code)
		}
		return []byte(strings.Join(lines, "\n")), "text/plain; charset=utf-8", nil
	}

	builder := &strings.Builder{}
	writer := csv.NewWriter(builder)
	_ = writer.Write([]string{
		"id",
		"code",
		"status",
		"description",
		"max_uses",
		"used_count",
		"expires_at",
		"created_by",
		"created_at",
	})
	for _, row := range rows {
		maxUses := ""
		if row.MaxUses != nil {
			maxUses = strconv.Itoa(*row.MaxUses)
		}
		_ = writer.Write([]string{
			row.ID,
			row.Code,
			row.Status,
			derefString(row.Description),
			maxUses,
			strconv.Itoa(row.UsedCount),
			formatNullableTime(row.ExpiresAt),
			derefString(row.CreatedBy),
			row.CreatedAt.Format(time.RFC3339),
		})
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrConsultationCodeFetchFailed, err)
	}
	return []byte(builder.String()), "text/csv; charset=utf-8", nil
}

func validateMaxUses(maxUses *int) error {
	if maxUses != nil && *maxUses <= 0 {
		return ErrConsultationCodeInvalid
	}
	return nil
}
