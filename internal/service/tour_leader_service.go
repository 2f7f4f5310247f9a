package service

import (
	"strings"

	"github.com/tripnest/internal/models"
	"github.com/tripnest/internal/repository"
)

// TourLeaderService 领队业务服务
type TourLeaderService struct {
	repo repository.TourLeaderRepository
}

// NewTourLeaderService 创建领队服务
func NewTourLeaderService(repo repository.TourLeaderRepository) *TourLeaderService {
	return &TourLeaderService{repo: repo}
}

// TourLeaderInput 创建/更新领队输入
type TourLeaderInput struct {
	Slug      string
	Name      string
	Bio       string
	AvatarURL string
	Languages []string
	Email     string
	Phone     string
	IsActive  *bool
}

// List 获取领队列表
func (s *TourLeaderService) List(filter repository.TourLeaderListFilter) ([]models.TourLeader, int64, error) {
	return s.repo.List(filter)
}

// GetPublicBySlug 获取启用中的领队
func (s *TourLeaderService) GetPublicBySlug(slug string) (*models.TourLeader, error) {
	leader, err := s.repo.GetBySlug(slug, true)
	if err != nil {
		return nil, err
	}
	if leader == nil {
		return nil, ErrTourLeaderNotFound
	}
	return leader, nil
}

// Get 获取领队
func (s *TourLeaderService) Get(id uint) (*models.TourLeader, error) {
	leader, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if leader == nil {
		return nil, ErrTourLeaderNotFound
	}
	return leader, nil
}

// Create 创建领队
func (s *TourLeaderService) Create(input TourLeaderInput) (*models.TourLeader, error) {
	leader := &models.TourLeader{IsActive: true}
	if err := applyTourLeaderInput(leader, input); err != nil {
		return nil, err
	}
	slug, err := resolveSlug(input.Slug, leader.Name, func(slug string) (int64, error) {
		return s.repo.CountBySlug(slug, 0)
	})
	if err != nil {
		return nil, err
	}
	leader.Slug = slug
	if err := s.repo.Create(leader); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrSlugExists
		}
		return nil, err
	}
	return leader, nil
}

// Update 更新领队
func (s *TourLeaderService) Update(id uint, input TourLeaderInput) (*models.TourLeader, error) {
	leader, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := applyTourLeaderInput(leader, input); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Slug) != "" && Slugify(input.Slug) != leader.Slug {
		slug, err := resolveSlug(input.Slug, leader.Name, func(slug string) (int64, error) {
			return s.repo.CountBySlug(slug, id)
		})
		if err != nil {
			return nil, err
		}
		leader.Slug = slug
	}
	if err := s.repo.Update(leader); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrSlugExists
		}
		return nil, err
	}
	return leader, nil
}

// Delete 删除领队，关联线路会解除绑定
func (s *TourLeaderService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

func applyTourLeaderInput(leader *models.TourLeader, input TourLeaderInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return ErrTourLeaderInvalid
	}
	email := ""
	if strings.TrimSpace(input.Email) != "" {
		normalized, err := normalizeEmail(input.Email)
		if err != nil {
			return ErrTourLeaderInvalid
		}
		email = normalized
	}
	leader.Name = name
	leader.Bio = strings.TrimSpace(input.Bio)
	leader.AvatarURL = strings.TrimSpace(input.AvatarURL)
	leader.Languages = models.StringArray(normalizeStringList(input.Languages))
	leader.Email = email
	leader.Phone = strings.TrimSpace(input.Phone)
	if input.IsActive != nil {
		leader.IsActive = *input.IsActive
	}
	return nil
}
