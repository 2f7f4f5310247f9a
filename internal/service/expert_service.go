package service

import (
	"strings"

	"github.com/tripnest/internal/models"
	"github.com/tripnest/internal/repository"

	"github.com/shopspring/decimal"
)

// ExpertService 专家业务服务
type ExpertService struct {
	repo            repository.ExpertRepository
	defaultCurrency string
}

// NewExpertService 创建专家服务
func NewExpertService(repo repository.ExpertRepository, defaultCurrency string) *ExpertService {
	return &ExpertService{repo: repo, defaultCurrency: normalizeCurrency(defaultCurrency)}
}

// ExpertInput 创建/更新专家输入
type ExpertInput struct {
	Slug            string
	Name            string
	Title           string
	Bio             string
	Specialties     []string
	Regions         []string
	AvatarURL       string
	ConsultationFee decimal.Decimal
	Currency        string
	IsActive        *bool
	SortOrder       int
}

// ListPublic 获取可预约专家列表
func (s *ExpertService) ListPublic(search string, page, pageSize int) ([]models.Expert, int64, error) {
	return s.repo.List(repository.ExpertListFilter{
		Page:       page,
		PageSize:   pageSize,
		Search:     search,
		OnlyActive: true,
	})
}

// GetPublicBySlug 获取可预约专家详情
func (s *ExpertService) GetPublicBySlug(slug string) (*models.Expert, error) {
	expert, err := s.repo.GetBySlug(slug, true)
	if err != nil {
		return nil, err
	}
	if expert == nil {
		return nil, ErrExpertNotFound
	}
	return expert, nil
}

// ListAdmin 获取后台专家列表
func (s *ExpertService) ListAdmin(filter repository.ExpertListFilter) ([]models.Expert, int64, error) {
	return s.repo.List(filter)
}

// Get 获取专家
func (s *ExpertService) Get(id uint) (*models.Expert, error) {
	expert, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if expert == nil {
		return nil, ErrExpertNotFound
	}
	return expert, nil
}

// Create 创建专家
func (s *ExpertService) Create(input ExpertInput) (*models.Expert, error) {
	expert := &models.Expert{IsActive: true}
	if err := s.apply(expert, input); err != nil {
		return nil, err
	}
	slug, err := resolveSlug(input.Slug, expert.Name, func(slug string) (int64, error) {
		return s.repo.CountBySlug(slug, 0)
	})
	if err != nil {
		return nil, err
	}
	expert.Slug = slug
	if err := s.repo.Create(expert); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrSlugExists
		}
		return nil, err
	}
	return expert, nil
}

// Update 更新专家
func (s *ExpertService) Update(id uint, input ExpertInput) (*models.Expert, error) {
	expert, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(expert, input); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Slug) != "" && Slugify(input.Slug) != expert.Slug {
		slug, err := resolveSlug(input.Slug, expert.Name, func(slug string) (int64, error) {
			return s.repo.CountBySlug(slug, id)
		})
		if err != nil {
			return nil, err
		}
		expert.Slug = slug
	}
	if err := s.repo.Update(expert); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrSlugExists
		}
		return nil, err
	}
	return expert, nil
}

// Delete 删除专家
func (s *ExpertService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

func (s *ExpertService) apply(expert *models.Expert, input ExpertInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return ErrExpertInvalid
	}
	fee := input.ConsultationFee.Round(2)
	if fee.IsNegative() {
		return ErrExpertInvalid
	}
	currency := s.defaultCurrency
	if strings.TrimSpace(input.Currency) != "" {
		currency = normalizeCurrency(input.Currency)
	}
	expert.Name = name
	expert.Title = strings.TrimSpace(input.Title)
	expert.Bio = strings.TrimSpace(input.Bio)
	expert.Specialties = models.StringArray(normalizeStringList(input.Specialties))
	expert.Regions = models.StringArray(normalizeStringList(input.Regions))
	expert.AvatarURL = strings.TrimSpace(input.AvatarURL)
	expert.ConsultationFee = models.NewMoneyFromDecimal(fee)
	expert.Currency = currency
	expert.SortOrder = input.SortOrder
	if input.IsActive != nil {
		expert.IsActive = *input.IsActive
	}
	return nil
}
