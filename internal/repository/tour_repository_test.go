package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/tripnest/internal/constants"
	"github.com/tripnest/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCatalogRepositoryTest(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:catalog_repo_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.TourLeader{}, &models.Tour{}, &models.Expert{}); err != nil {
		t.Fatalf("migrate catalog failed: %v", err)
	}
	return db
}

func TestTourListFilters(t *testing.T) {
	db := setupCatalogRepositoryTest(t)
	categoryRepo := NewCategoryRepository(db)
	tourRepo := NewTourRepository(db)

	asia := &models.Category{Slug: "asia", Name: "Asia"}
	europe := &models.Category{Slug: "europe", Name: "Europe"}
	for _, c := range []*models.Category{asia, europe} {
		if err := categoryRepo.Create(c); err != nil {
			t.Fatalf("create category failed: %v", err)
		}
	}

	tours := []*models.Tour{
		{Slug: "kyoto-temples", Title: "Kyoto Temples", Destination: "Japan", CategoryID: &asia.ID, Status: constants.TourStatusPublished, IsFeatured: true},
		{Slug: "hanoi-food", Title: "Hanoi Food Walk", Destination: "Vietnam", CategoryID: &asia.ID, Status: constants.TourStatusDraft},
		{Slug: "alps-hike", Title: "Alps Hike", Destination: "Switzerland", CategoryID: &europe.ID, Status: constants.TourStatusPublished},
	}
	for _, tour := range tours {
		tour.PriceAmount = models.NewMoneyFromDecimal(decimal.NewFromInt(100))
		if err := tourRepo.Create(tour); err != nil {
			t.Fatalf("create tour failed: %v", err)
		}
	}

	rows, total, err := tourRepo.List(TourListFilter{CategorySlug: "asia", OnlyPublished: true, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list tours failed: %v", err)
	}
	if total != 1 || rows[0].Slug != "kyoto-temples" {
		t.Fatalf("category+published filter want kyoto only, got total=%d rows=%+v", total, rows)
	}

	_, total, err = tourRepo.List(TourListFilter{Search: "switz", OnlyPublished: true})
	if err != nil {
		t.Fatalf("search tours failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("destination search want 1 got %d", total)
	}

	_, total, err = tourRepo.List(TourListFilter{OnlyFeatured: true})
	if err != nil || total != 1 {
		t.Fatalf("featured filter want 1 got %d err=%v", total, err)
	}

	got, err := tourRepo.GetBySlug("hanoi-food", true)
	if err != nil || got != nil {
		t.Fatalf("draft tour must be hidden from published lookup, got %+v err=%v", got, err)
	}

	count, err := categoryRepo.CountTours(asia.ID)
	if err != nil || count != 2 {
		t.Fatalf("count tours want 2 got %d err=%v", count, err)
	}
}

func TestCountBySlugIncludesSoftDeleted(t *testing.T) {
	db := setupCatalogRepositoryTest(t)
	repo := NewExpertRepository(db)
	expert := &models.Expert{Slug: "ana-lopez", Name: "Ana Lopez"}
	if err := repo.Create(expert); err != nil {
		t.Fatalf("create expert failed: %v", err)
	}
	if err := repo.Delete(expert.ID); err != nil {
		t.Fatalf("delete expert failed: %v", err)
	}
	count, err := repo.CountBySlug("ana-lopez", 0)
	if err != nil || count != 1 {
		t.Fatalf("soft deleted slug should still count, got %d err=%v", count, err)
	}
	count, err = repo.CountBySlug("ana-lopez", expert.ID)
	if err != nil || count != 0 {
		t.Fatalf("excluded id should not count, got %d err=%v", count, err)
	}
}

func TestDeleteTourLeaderDetachesTours(t *testing.T) {
	db := setupCatalogRepositoryTest(t)
	leaderRepo := NewTourLeaderRepository(db)
	tourRepo := NewTourRepository(db)

	leader := &models.TourLeader{Slug: "mika", Name: "Mika"}
	if err := leaderRepo.Create(leader); err != nil {
		t.Fatalf("create leader failed: %v", err)
	}
	tour := &models.Tour{Slug: "lapland", Title: "Lapland", TourLeaderID: &leader.ID, Status: constants.TourStatusPublished}
	if err := tourRepo.Create(tour); err != nil {
		t.Fatalf("create tour failed: %v", err)
	}
	if err := leaderRepo.Delete(leader.ID); err != nil {
		t.Fatalf("delete leader failed: %v", err)
	}
	got, err := tourRepo.GetByID(tour.ID)
	if err != nil {
		t.Fatalf("get tour failed: %v", err)
	}
	if got.TourLeaderID != nil {
		t.Fatalf("tour leader id should be cleared, got %v", *got.TourLeaderID)
	}
}
