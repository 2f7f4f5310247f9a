package admin

import (
	"strings"

	handlershared "github.com/tripnest/internal/http/handlers/shared"
	"github.com/tripnest/internal/http/response"
	"github.com/tripnest/internal/repository"
	"github.com/tripnest/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CategoryUpsertRequest 分类创建/更新请求
type CategoryUpsertRequest struct {
	Slug        string `json:"slug" binding:"max=120"`
	Name        string `json:"name" binding:"required,max=120"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
}

func (r CategoryUpsertRequest) toInput() service.CategoryInput {
	return service.CategoryInput{
		Slug:        r.Slug,
		Name:        r.Name,
		Description: r.Description,
		SortOrder:   r.SortOrder,
	}
}

// GetAdminCategories 获取分类列表
func (h *Handler) GetAdminCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}
	response.Success(c, categories)
}

// GetAdminCategory 获取分类详情
func (h *Handler) GetAdminCategory(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	category, err := h.CategoryService.Get(id)
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.category_fetch_failed")
		return
	}
	response.Success(c, category)
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	category, err := h.CategoryService.Create(req.toInput())
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.category_create_failed")
		return
	}
	invalidatePublicCache(c, "category_created")
	response.Success(c, category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	var req CategoryUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	category, err := h.CategoryService.Update(id, req.toInput())
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.category_update_failed")
		return
	}
	invalidatePublicCache(c, "category_updated")
	response.Success(c, category)
}

// DeleteCategory 删除分类，仍有线路引用时拒绝
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.CategoryService.Delete(id); err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.category_delete_failed")
		return
	}
	invalidatePublicCache(c, "category_deleted")
	response.Success(c, gin.H{"deleted": true})
}

// TourUpsertRequest 线路创建/更新请求
type TourUpsertRequest struct {
	Slug         string   `json:"slug" binding:"max=160"`
	Title        string   `json:"title" binding:"required,max=200"`
	Summary      string   `json:"summary"`
	Description  string   `json:"description"`
	Destination  string   `json:"destination"`
	DurationDays int      `json:"duration_days"`
	PriceAmount  string   `json:"price_amount" binding:"required"`
	Currency     string   `json:"currency"`
	MaxTravelers int      `json:"max_travelers"`
	Images       []string `json:"images"`
	Tags         []string `json:"tags"`
	CategoryID   *uint    `json:"category_id"`
	TourLeaderID *uint    `json:"tour_leader_id"`
	Status       string   `json:"status"`
	IsFeatured   bool     `json:"is_featured"`
	SortOrder    int      `json:"sort_order"`
}

func (r TourUpsertRequest) toInput() (service.TourInput, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(r.PriceAmount))
	if err != nil {
		return service.TourInput{}, err
	}
	return service.TourInput{
		Slug:         r.Slug,
		Title:        r.Title,
		Summary:      r.Summary,
		Description:  r.Description,
		Destination:  r.Destination,
		DurationDays: r.DurationDays,
		PriceAmount:  price,
		Currency:     r.Currency,
		MaxTravelers: r.MaxTravelers,
		Images:       r.Images,
		Tags:         r.Tags,
		CategoryID:   r.CategoryID,
		TourLeaderID: r.TourLeaderID,
		Status:       r.Status,
		IsFeatured:   r.IsFeatured,
		SortOrder:    r.SortOrder,
	}, nil
}

// TourStatusRequest 线路状态变更请求
type TourStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// GetAdminTours 获取后台线路列表
func (h *Handler) GetAdminTours(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
	categoryID, ok := handlershared.ParseOptionalUintQuery(c, "category_id")
	if !ok {
		return
	}
	tours, total, err := h.TourService.ListAdmin(repository.TourListFilter{
		Page:          page,
		PageSize:      pageSize,
		CategoryID:    categoryID,
		Search:        strings.TrimSpace(c.Query("search")),
		Status:        strings.TrimSpace(c.Query("status")),
		WithRelations: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.tour_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, tours, response.NewPagination(page, pageSize, total))
}

// GetAdminTour 获取线路详情
func (h *Handler) GetAdminTour(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	tour, err := h.TourService.Get(id)
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.tour_fetch_failed")
		return
	}
	response.Success(c, tour)
}

// CreateTour 创建线路
func (h *Handler) CreateTour(c *gin.Context) {
	var req TourUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.tour_invalid", err)
		return
	}
	tour, err := h.TourService.Create(input)
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.tour_create_failed")
		return
	}
	invalidatePublicCache(c, "tour_created")
	response.Success(c, tour)
}

// UpdateTour 更新线路
func (h *Handler) UpdateTour(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	var req TourUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.tour_invalid", err)
		return
	}
	tour, err := h.TourService.Update(id, input)
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.tour_update_failed")
		return
	}
	invalidatePublicCache(c, "tour_updated")
	response.Success(c, tour)
}

// UpdateTourStatus 发布或下架线路
func (h *Handler) UpdateTourStatus(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	var req TourStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	tour, err := h.TourService.SetStatus(id, req.Status)
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.tour_update_failed")
		return
	}
	invalidatePublicCache(c, "tour_status_updated")
	response.Success(c, tour)
}

// DeleteTour 删除线路
func (h *Handler) DeleteTour(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.TourService.Delete(id); err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.tour_delete_failed")
		return
	}
	invalidatePublicCache(c, "tour_deleted")
	response.Success(c, gin.H{"deleted": true})
}

// TourLeaderUpsertRequest 领队创建/更新请求
type TourLeaderUpsertRequest struct {
	Slug      string   `json:"slug" binding:"max=120"`
	Name      string   `json:"name" binding:"required,max=120"`
	Bio       string   `json:"bio"`
	AvatarURL string   `json:"avatar_url"`
	Languages []string `json:"languages"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	IsActive  *bool    `json:"is_active"`
}

func (r TourLeaderUpsertRequest) toInput() service.TourLeaderInput {
	return service.TourLeaderInput{
		Slug:      r.Slug,
		Name:      r.Name,
		Bio:       r.Bio,
		AvatarURL: r.AvatarURL,
		Languages: r.Languages,
		Email:     r.Email,
		Phone:     r.Phone,
		IsActive:  r.IsActive,
	}
}

// GetAdminTourLeaders 获取领队列表
func (h *Handler) GetAdminTourLeaders(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
	leaders, total, err := h.TourLeaderService.List(repository.TourLeaderListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.tour_leader_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, leaders, response.NewPagination(page, pageSize, total))
}

// GetAdminTourLeader 获取领队详情
func (h *Handler) GetAdminTourLeader(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	leader, err := h.TourLeaderService.Get(id)
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.tour_leader_fetch_failed")
		return
	}
	response.Success(c, leader)
}

// CreateTourLeader 创建领队
func (h *Handler) CreateTourLeader(c *gin.Context) {
	var req TourLeaderUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	leader, err := h.TourLeaderService.Create(req.toInput())
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.tour_leader_create_failed")
		return
	}
	invalidatePublicCache(c, "tour_leader_created")
	response.Success(c, leader)
}

// UpdateTourLeader 更新领队
func (h *Handler) UpdateTourLeader(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	var req TourLeaderUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	leader, err := h.TourLeaderService.Update(id, req.toInput())
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.tour_leader_update_failed")
		return
	}
	invalidatePublicCache(c, "tour_leader_updated")
	response.Success(c, leader)
}

// DeleteTourLeader 删除领队，关联线路的领队将被置空
func (h *Handler) DeleteTourLeader(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.TourLeaderService.Delete(id); err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.tour_leader_delete_failed")
		return
	}
	invalidatePublicCache(c, "tour_leader_deleted")
	response.Success(c, gin.H{"deleted": true})
}

// ExpertUpsertRequest 专家创建/更新请求
type ExpertUpsertRequest struct {
	Slug            string   `json:"slug" binding:"max=120"`
	Name            string   `json:"name" binding:"required,max=120"`
	Title           string   `json:"title"`
	Bio             string   `json:"bio"`
	Specialties     []string `json:"specialties"`
	Regions         []string `json:"regions"`
	AvatarURL       string   `json:"avatar_url"`
	ConsultationFee string   `json:"consultation_fee"`
	Currency        string   `json:"currency"`
	IsActive        *bool    `json:"is_active"`
	SortOrder       int      `json:"sort_order"`
}

func (r ExpertUpsertRequest) toInput() (service.ExpertInput, error) {
	fee := decimal.Zero
	if raw := strings.TrimSpace(r.ConsultationFee); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			return service.ExpertInput{}, err
		}
		fee = parsed
	}
	return service.ExpertInput{
		Slug:            r.Slug,
		Name:            r.Name,
		Title:           r.Title,
		Bio:             r.Bio,
		Specialties:     r.Specialties,
		Regions:         r.Regions,
		AvatarURL:       r.AvatarURL,
		ConsultationFee: fee,
		Currency:        r.Currency,
		IsActive:        r.IsActive,
		SortOrder:       r.SortOrder,
	}, nil
}

// GetAdminExperts 获取专家列表
func (h *Handler) GetAdminExperts(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
	experts, total, err := h.ExpertService.ListAdmin(repository.ExpertListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.expert_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, experts, response.NewPagination(page, pageSize, total))
}

// GetAdminExpert 获取专家详情
func (h *Handler) GetAdminExpert(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	expert, err := h.ExpertService.Get(id)
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.expert_fetch_failed")
		return
	}
	response.Success(c, expert)
}

// CreateExpert 创建专家
func (h *Handler) CreateExpert(c *gin.Context) {
	var req ExpertUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.expert_invalid", err)
		return
	}
	expert, err := h.ExpertService.Create(input)
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.expert_create_failed")
		return
	}
	invalidatePublicCache(c, "expert_created")
	response.Success(c, expert)
}

// UpdateExpert 更新专家
func (h *Handler) UpdateExpert(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	var req ExpertUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.expert_invalid", err)
		return
	}
	expert, err := h.ExpertService.Update(id, input)
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.expert_update_failed")
		return
	}
	invalidatePublicCache(c, "expert_updated")
	response.Success(c, expert)
}

// DeleteExpert 删除专家
func (h *Handler) DeleteExpert(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.ExpertService.Delete(id); err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.expert_delete_failed")
		return
	}
	invalidatePublicCache(c, "expert_deleted")
	response.Success(c, gin.H{"deleted": true})
}
