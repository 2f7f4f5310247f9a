package service

import (
	"strings"

	"github.com/tripnest/internal/constants"
	"github.com/tripnest/internal/models"
	"github.com/tripnest/internal/repository"

	"github.com/shopspring/decimal"
)

// TourService 线路业务服务
type TourService struct {
	repo            repository.TourRepository
	categoryRepo    repository.CategoryRepository
	leaderRepo      repository.TourLeaderRepository
	defaultCurrency string
}

// NewTourService 创建线路服务
func NewTourService(repo repository.TourRepository, categoryRepo repository.CategoryRepository, leaderRepo repository.TourLeaderRepository, defaultCurrency string) *TourService {
	return &TourService{
		repo:            repo,
		categoryRepo:    categoryRepo,
		leaderRepo:      leaderRepo,
		defaultCurrency: normalizeCurrency(defaultCurrency),
	}
}

// TourInput 创建/更新线路输入
type TourInput struct {
	Slug         string
	Title        string
	Summary      string
	Description  string
	Destination  string
	DurationDays int
	PriceAmount  decimal.Decimal
	Currency     string
	MaxTravelers int
	Images       []string
	Tags         []string
	CategoryID   *uint
	TourLeaderID *uint
	Status       string
	IsFeatured   bool
	SortOrder    int
}

// TourPublicQuery 公开线路查询条件
type TourPublicQuery struct {
	CategorySlug string
	Search       string
	OnlyFeatured bool
	Page         int
	PageSize     int
}

// ListPublic 获取已发布线路列表
func (s *TourService) ListPublic(query TourPublicQuery) ([]models.Tour, int64, error) {
	return s.repo.List(repository.TourListFilter{
		Page:          query.Page,
		PageSize:      query.PageSize,
		CategorySlug:  query.CategorySlug,
		Search:        query.Search,
		OnlyPublished: true,
		OnlyFeatured:  query.OnlyFeatured,
		WithRelations: true,
	})
}

// GetPublicBySlug 获取已发布线路详情
func (s *TourService) GetPublicBySlug(slug string) (*models.Tour, error) {
	tour, err := s.repo.GetBySlug(slug, true)
	if err != nil {
		return nil, err
	}
	if tour == nil {
		return nil, ErrTourNotFound
	}
	return tour, nil
}

// ListAdmin 获取后台线路列表
func (s *TourService) ListAdmin(filter repository.TourListFilter) ([]models.Tour, int64, error) {
	filter.OnlyPublished = false
	filter.WithRelations = true
	filter.Status = strings.ToLower(strings.TrimSpace(filter.Status))
	return s.repo.List(filter)
}

// Get 获取线路详情
func (s *TourService) Get(id uint) (*models.Tour, error) {
	tour, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tour == nil {
		return nil, ErrTourNotFound
	}
	return tour, nil
}

// Create 创建线路
func (s *TourService) Create(input TourInput) (*models.Tour, error) {
	tour := &models.Tour{}
	if err := s.apply(tour, input); err != nil {
		return nil, err
	}
	slug, err := resolveSlug(input.Slug, tour.Title, func(slug string) (int64, error) {
		return s.repo.CountBySlug(slug, 0)
	})
	if err != nil {
		return nil, err
	}
	tour.Slug = slug
	if err := s.repo.Create(tour); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrSlugExists
		}
		return nil, err
	}
	return s.Get(tour.ID)
}

// Update 更新线路
func (s *TourService) Update(id uint, input TourInput) (*models.Tour, error) {
	tour, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(tour, input); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Slug) != "" && Slugify(input.Slug) != tour.Slug {
		slug, err := resolveSlug(input.Slug, tour.Title, func(slug string) (int64, error) {
			return s.repo.CountBySlug(slug, id)
		})
		if err != nil {
			return nil, err
		}
		tour.Slug = slug
	}
	if err := s.repo.Update(tour); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrSlugExists
		}
		return nil, err
	}
	return s.Get(id)
}

// SetStatus 发布或下线线路
func (s *TourService) SetStatus(id uint, status string) (*models.Tour, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status != constants.TourStatusDraft && status != constants.TourStatusPublished {
		return nil, ErrTourInvalid
	}
	tour, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	tour.Status = status
	if err := s.repo.Update(tour); err != nil {
		return nil, err
	}
	return tour, nil
}

// Delete 删除线路
func (s *TourService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

func (s *TourService) apply(tour *models.Tour, input TourInput) error {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return ErrTourInvalid
	}
	if input.DurationDays < 1 || input.MaxTravelers < 0 {
		return ErrTourInvalid
	}
	price := input.PriceAmount.Round(2)
	if price.IsNegative() {
		return ErrTourInvalid
	}
	status := strings.ToLower(strings.TrimSpace(input.Status))
	if status == "" {
		status = constants.TourStatusDraft
	}
	if status != constants.TourStatusDraft && status != constants.TourStatusPublished {
		return ErrTourInvalid
	}
	categoryID, err := s.resolveCategory(input.CategoryID)
	if err != nil {
		return err
	}
	leaderID, err := s.resolveLeader(input.TourLeaderID)
	if err != nil {
		return err
	}

	currency := normalizeCurrency(input.Currency)
	if strings.TrimSpace(input.Currency) == "" {
		currency = s.defaultCurrency
	}

	tour.Title = title
	tour.Summary = strings.TrimSpace(input.Summary)
	tour.Description = strings.TrimSpace(input.Description)
	tour.Destination = strings.TrimSpace(input.Destination)
	tour.DurationDays = input.DurationDays
	tour.PriceAmount = models.NewMoneyFromDecimal(price)
	tour.Currency = currency
	tour.MaxTravelers = input.MaxTravelers
	tour.Images = models.StringArray(normalizeStringList(input.Images))
	tour.Tags = models.StringArray(normalizeStringList(input.Tags))
	tour.CategoryID = categoryID
	tour.TourLeaderID = leaderID
	tour.Status = status
	tour.IsFeatured = input.IsFeatured
	tour.SortOrder = input.SortOrder
	tour.Category = nil
	tour.TourLeader = nil
	return nil
}

func (s *TourService) resolveCategory(id *uint) (*uint, error) {
	if id == nil || *id == 0 {
		return nil, nil
	}
	category, err := s.categoryRepo.GetByID(*id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	value := category.ID
	return &value, nil
}

func (s *TourService) resolveLeader(id *uint) (*uint, error) {
	if id == nil || *id == 0 {
		return nil, nil
	}
	leader, err := s.leaderRepo.GetByID(*id)
	if err != nil {
		return nil, err
	}
	if leader == nil {
		return nil, ErrTourLeaderNotFound
	}
	value := leader.ID
	return &value, nil
}

func normalizeCurrency(raw string) string {
	currency := strings.ToUpper(strings.TrimSpace(raw))
	if currency == "" {
		return constants.SiteCurrencyDefault
	}
	return currency
}
