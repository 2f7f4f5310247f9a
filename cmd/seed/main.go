package main

import (
	"errors"
	"flag"
	"log"

	"github.com/tripnest/internal/config"
	"github.com/tripnest/internal/constants"
	"github.com/tripnest/internal/logger"
	"github.com/tripnest/internal/models"
	"github.com/tripnest/internal/provider"
	"github.com/tripnest/internal/service"

	"github.com/shopspring/decimal"
)

type seedTour struct {
	slug         string
	title        string
	summary      string
	destination  string
	categorySlug string
	durationDays int
	price        string
	maxTravelers int
	tags         []string
	featured     bool
}

func main() {
	var codeCount int
	flag.IntVar(&codeCount, "codes", 5, "生成的演示咨询码数量，0 表示不生成")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, cfg.Database.LogSQL); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 演示数据不触发邮件任务
	cfg.Queue.Enabled = false
	c := provider.NewContainer(cfg)
	defer c.Close()

	categoryIDs := seedCategories(c, stdLog)
	leaderID := seedTourLeader(c, stdLog)
	seedTours(c, stdLog, categoryIDs, leaderID)
	seedExperts(c, stdLog)
	seedConsultationCodes(c, stdLog, codeCount)

	stdLog.Printf("Seed completed")
}

func seedCategories(c *provider.Container, stdLog *log.Logger) map[string]uint {
	inputs := []service.CategoryInput{
		{Slug: "city-walks", Name: "City Walks", Description: "Half-day and full-day walks through old towns", SortOrder: 30},
		{Slug: "food-and-wine", Name: "Food & Wine", Description: "Markets, tastings and cooking classes", SortOrder: 20},
		{Slug: "multi-day", Name: "Multi-day Journeys", Description: "Guided trips of three days or more", SortOrder: 10},
	}
	ids := make(map[string]uint, len(inputs))
	for _, input := range inputs {
		category, err := c.CategoryService.Create(input)
		switch {
		case err == nil:
			stdLog.Printf("Created category: %s", category.Slug)
			ids[category.Slug] = category.ID
			continue
		case errors.Is(err, service.ErrSlugExists):
			stdLog.Printf("Category already exists: %s", input.Slug)
		default:
			stdLog.Printf("Failed to create category %s: %v", input.Slug, err)
			continue
		}
		existing, err := c.CategoryRepo.GetBySlug(input.Slug)
		if err != nil || existing == nil {
			stdLog.Printf("Failed to load category %s: %v", input.Slug, err)
			continue
		}
		ids[existing.Slug] = existing.ID
	}
	return ids
}

func seedTourLeader(c *provider.Container, stdLog *log.Logger) *uint {
	active := true
	leader, err := c.TourLeaderService.Create(service.TourLeaderInput{
		Slug:      "marta-silva",
		Name:      "Marta Silva",
		Bio:       "Licensed guide based in Lisbon, leading small groups since 2012.",
		Languages: []string{"en", "pt", "es"},
		Email:     "marta@tripnest.example",
		IsActive:  &active,
	})
	if err == nil {
		stdLog.Printf("Created tour leader: %s", leader.Slug)
		return &leader.ID
	}
	if !errors.Is(err, service.ErrSlugExists) {
		stdLog.Printf("Failed to create tour leader: %v", err)
		return nil
	}
	existing, err := c.TourLeaderRepo.GetBySlug("marta-silva", false)
	if err != nil || existing == nil {
		stdLog.Printf("Failed to load tour leader: %v", err)
		return nil
	}
	stdLog.Printf("Tour leader already exists: %s", existing.Slug)
	return &existing.ID
}

func seedTours(c *provider.Container, stdLog *log.Logger, categoryIDs map[string]uint, leaderID *uint) {
	tours := []seedTour{
		{
			slug:         "lisbon-old-town-walk",
			title:        "Lisbon Old Town Walk",
			summary:      "Alfama, Mouraria and the castle hill in one morning",
			destination:  "Lisbon, Portugal",
			categorySlug: "city-walks",
			durationDays: 1,
			price:        "45",
			maxTravelers: 12,
			tags:         []string{"walking", "history"},
			featured:     true,
		},
		{
			slug:         "porto-wine-cellars",
			title:        "Porto Wine Cellars",
			summary:      "Three cellars in Vila Nova de Gaia with a river crossing",
			destination:  "Porto, Portugal",
			categorySlug: "food-and-wine",
			durationDays: 1,
			price:        "79.90",
			maxTravelers: 10,
			tags:         []string{"wine", "tasting"},
		},
		{
			slug:         "douro-valley-three-days",
			title:        "Douro Valley in Three Days",
			summary:      "Quintas, terraces and a boat trip on the Douro",
			destination:  "Douro Valley, Portugal",
			categorySlug: "multi-day",
			durationDays: 3,
			price:        "540",
			maxTravelers: 8,
			tags:         []string{"wine", "nature"},
			featured:     true,
		},
	}
	for _, tour := range tours {
		input := service.TourInput{
			Slug:         tour.slug,
			Title:        tour.title,
			Summary:      tour.summary,
			Destination:  tour.destination,
			DurationDays: tour.durationDays,
			PriceAmount:  decimal.RequireFromString(tour.price),
			MaxTravelers: tour.maxTravelers,
			Tags:         tour.tags,
			TourLeaderID: leaderID,
			Status:       constants.TourStatusPublished,
			IsFeatured:   tour.featured,
		}
		if id, ok := categoryIDs[tour.categorySlug]; ok {
			categoryID := id
			input.CategoryID = &categoryID
		}
		created, err := c.TourService.Create(input)
		switch {
		case err == nil:
			stdLog.Printf("Created tour: %s", created.Slug)
		case errors.Is(err, service.ErrSlugExists):
			stdLog.Printf("Tour already exists: %s", tour.slug)
		default:
			stdLog.Printf("Failed to create tour %s: %v", tour.slug, err)
		}
	}
}

func seedExperts(c *provider.Container, stdLog *log.Logger) {
	active := true
	experts := []service.ExpertInput{
		{
			Slug:            "ines-costa",
			Name:            "Inês Costa",
			Title:           "Iberia travel planner",
			Bio:             "Designs slow-travel itineraries across Portugal and Spain.",
			Specialties:     []string{"itinerary", "rail travel"},
			Regions:         []string{"Portugal", "Spain"},
			ConsultationFee: decimal.RequireFromString("60"),
			IsActive:        &active,
			SortOrder:       20,
		},
		{
			Slug:            "kenji-mori",
			Name:            "Kenji Mori",
			Title:           "Japan specialist",
			Bio:             "Former ryokan manager helping travellers plan seasonal trips.",
			Specialties:     []string{"ryokan", "seasonal festivals"},
			Regions:         []string{"Japan"},
			ConsultationFee: decimal.RequireFromString("75"),
			IsActive:        &active,
			SortOrder:       10,
		},
	}
	for _, input := range experts {
		expert, err := c.ExpertService.Create(input)
		switch {
		case err == nil:
			stdLog.Printf("Created expert: %s", expert.Slug)
		case errors.Is(err, service.ErrSlugExists):
			stdLog.Printf("Expert already exists: %s", input.Slug)
		default:
			stdLog.Printf("Failed to create expert %s: %v", input.Slug, err)
		}
	}
}

func seedConsultationCodes(c *provider.Container, stdLog *log.Logger, count int) {
	if count <= 0 {
		return
	}
	maxUses := 1
	description := "demo seed"
	createdBy := "seed"
	rows, err := c.ConsultationCodeService.BulkGenerate(service.BulkGenerateInput{
		Count:       count,
		Description: &description,
		MaxUses:     &maxUses,
		CreatedBy:   &createdBy,
	})
	if err != nil {
		stdLog.Printf("Failed to generate consultation codes: %v", err)
		return
	}
	for _, row := range rows {
		stdLog.Printf("Created consultation code: %s", row.Code)
	}
}
