package repository

import "time"

// ConsultationCodeListFilter 咨询码列表筛选
type ConsultationCodeListFilter struct {
	Page        int
	PageSize    int
	Code        string
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// TourListFilter 查询线路列表的过滤条件
type TourListFilter struct {
	Page          int
	PageSize      int
	CategoryID    uint
	CategorySlug  string
	Search        string
	Status        string
	OnlyPublished bool
	OnlyFeatured  bool
	WithRelations bool
}

// ExpertListFilter 查询专家列表的过滤条件
type ExpertListFilter struct {
	Page       int
	PageSize   int
	Search     string
	OnlyActive bool
}

// TourLeaderListFilter 查询领队列表的过滤条件
type TourLeaderListFilter struct {
	Page       int
	PageSize   int
	Search     string
	OnlyActive bool
}

// BookingListFilter 查询预订列表的过滤条件
type BookingListFilter struct {
	Page          int
	PageSize      int
	Type          string
	Status        string
	BookingNo     string
	CustomerEmail string
	TourID        uint
	ExpertID      uint
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
}

// NewsletterListFilter 查询订阅者列表的过滤条件
type NewsletterListFilter struct {
	Page     int
	PageSize int
	Status   string
	Search   string
}

// InquiryListFilter 查询留言列表的过滤条件
type InquiryListFilter struct {
	Page     int
	PageSize int
	Status   string
	Search   string
}
