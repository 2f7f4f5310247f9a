package public

import (
	"strconv"
	"strings"

	"github.com/tripnest/internal/cache"
	"github.com/tripnest/internal/http/response"
	"github.com/tripnest/internal/models"
	"github.com/tripnest/internal/service"

	"github.com/gin-gonic/gin"
)

// cachedPage 可缓存的分页结果
type cachedPage[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
}

// GetCategories 获取分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := cache.Remember(c.Request.Context(), cache.PublicKey("categories"), h.publicTTL(), func() ([]models.Category, error) {
		return h.CategoryService.List()
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}
	response.Success(c, categories)
}

// GetTours 获取已发布线路列表
func (h *Handler) GetTours(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	query := service.TourPublicQuery{
		CategorySlug: strings.TrimSpace(c.Query("category")),
		Search:       strings.TrimSpace(c.Query("search")),
		OnlyFeatured: c.Query("featured") == "true" || c.Query("featured") == "1",
		Page:         page,
		PageSize:     pageSize,
	}
	key := cache.PublicKey("tours", query.CategorySlug, query.Search, strconv.FormatBool(query.OnlyFeatured), strconv.Itoa(page), strconv.Itoa(pageSize))
	result, err := cache.Remember(c.Request.Context(), key, h.publicTTL(), func() (cachedPage[models.Tour], error) {
		tours, total, err := h.TourService.ListPublic(query)
		return cachedPage[models.Tour]{Items: tours, Total: total}, err
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.tour_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, result.Items, response.NewPagination(page, pageSize, result.Total))
}

// GetTour 获取线路详情
func (h *Handler) GetTour(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	tour, err := cache.Remember(c.Request.Context(), cache.PublicKey("tour", slug), h.publicTTL(), func() (*models.Tour, error) {
		return h.TourService.GetPublicBySlug(slug)
	})
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.tour_fetch_failed")
		return
	}
	response.Success(c, tour)
}

// GetExperts 获取可预约专家列表
func (h *Handler) GetExperts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	search := strings.TrimSpace(c.Query("search"))

	key := cache.PublicKey("experts", search, strconv.Itoa(page), strconv.Itoa(pageSize))
	result, err := cache.Remember(c.Request.Context(), key, h.publicTTL(), func() (cachedPage[models.Expert], error) {
		experts, total, err := h.ExpertService.ListPublic(search, page, pageSize)
		return cachedPage[models.Expert]{Items: experts, Total: total}, err
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.expert_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, result.Items, response.NewPagination(page, pageSize, result.Total))
}

// GetExpert 获取专家详情
func (h *Handler) GetExpert(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	expert, err := cache.Remember(c.Request.Context(), cache.PublicKey("expert", slug), h.publicTTL(), func() (*models.Expert, error) {
		return h.ExpertService.GetPublicBySlug(slug)
	})
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.expert_fetch_failed")
		return
	}
	response.Success(c, expert)
}

// GetTourLeader 获取领队详情
func (h *Handler) GetTourLeader(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	leader, err := cache.Remember(c.Request.Context(), cache.PublicKey("tour-leader", slug), h.publicTTL(), func() (*models.TourLeader, error) {
		return h.TourLeaderService.GetPublicBySlug(slug)
	})
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.tour_leader_fetch_failed")
		return
	}
	response.Success(c, leader)
}
