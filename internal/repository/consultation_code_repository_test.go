package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/tripnest/internal/constants"
	"github.com/tripnest/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupConsultationCodeRepositoryTest(t *testing.T) (*GormConsultationCodeRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:consultation_code_repo_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.ConsultationCode{}, &models.Booking{}); err != nil {
		t.Fatalf("migrate consultation code failed: %v", err)
	}
	return NewConsultationCodeRepository(db), db
}

func createConsultationCodeRow(t *testing.T, repo *GormConsultationCodeRepository, code string, status string, maxUses *int, used int) *models.ConsultationCode {
	t.Helper()
	row := &models.ConsultationCode{
		Code:      code,
		Status:    status,
		MaxUses:   maxUses,
		UsedCount: used,
	}
	if err := repo.Create(row); err != nil {
		t.Fatalf("create consultation code failed: %v", err)
	}
	return row
}

func intPtr(v int) *int {
	return &v
}

func TestConsultationCodeCreateAssignsIDAndUppercases(t *testing.T) {
	repo, _ := setupConsultationCodeRepositoryTest(t)
	row := createConsultationCodeRow(t, repo, " tc-1234-abcd ", constants.ConsultationCodeStatusActive, nil, 0)
	if row.ID == "" {
		t.Fatalf("expected uuid to be assigned")
	}
	if row.Code != "TC-1234-ABCD" {
		t.Fatalf("code should be stored uppercase, got %s", row.Code)
	}

	got, err := repo.GetByCode("tc-1234-abcd")
	if err != nil {
		t.Fatalf("get by code failed: %v", err)
	}
	if got == nil || got.ID != row.ID {
		t.Fatalf("case-insensitive lookup should find row, got %+v", got)
	}

	missing, err := repo.GetByCode("TC-0000-ZZZZ")
	if err != nil || missing != nil {
		t.Fatalf("missing code should return nil,nil got %+v err=%v", missing, err)
	}
}

func TestConsultationCodeDuplicateIsUniqueViolation(t *testing.T) {
	repo, _ := setupConsultationCodeRepositoryTest(t)
	createConsultationCodeRow(t, repo, "TC-1111-AAAA", constants.ConsultationCodeStatusActive, nil, 0)

	err := repo.Create(&models.ConsultationCode{Code: "tc-1111-aaaa", Status: constants.ConsultationCodeStatusActive})
	if err == nil {
		t.Fatalf("duplicate code should fail")
	}
	if !IsUniqueViolation(err) {
		t.Fatalf("duplicate code error should be unique violation, got %v", err)
	}

	exists, err := repo.ExistsByCode("TC-1111-AAAA")
	if err != nil || !exists {
		t.Fatalf("exists want true got %v err=%v", exists, err)
	}
}

func TestConsultationCodeMarkExpiredOnlyFromActive(t *testing.T) {
	repo, _ := setupConsultationCodeRepositoryTest(t)
	active := createConsultationCodeRow(t, repo, "TC-2222-BBBB", constants.ConsultationCodeStatusActive, nil, 0)
	inactive := createConsultationCodeRow(t, repo, "TC-3333-CCCC", constants.ConsultationCodeStatusInactive, nil, 0)
	now := time.Now()

	changed, err := repo.MarkExpired(active.ID, now)
	if err != nil || !changed {
		t.Fatalf("first mark expired want changed got %v err=%v", changed, err)
	}
	changed, err = repo.MarkExpired(active.ID, now)
	if err != nil || changed {
		t.Fatalf("second mark expired should be no-op, got %v err=%v", changed, err)
	}
	changed, err = repo.MarkExpired(inactive.ID, now)
	if err != nil || changed {
		t.Fatalf("inactive code must not be expired, got %v err=%v", changed, err)
	}

	got, _ := repo.GetByID(inactive.ID)
	if got.Status != constants.ConsultationCodeStatusInactive {
		t.Fatalf("inactive status should be unchanged, got %s", got.Status)
	}
}

func TestConsultationCodeIncrementUsedCount(t *testing.T) {
	repo, _ := setupConsultationCodeRepositoryTest(t)
	row := createConsultationCodeRow(t, repo, "TC-4444-DDDD", constants.ConsultationCodeStatusActive, intPtr(1), 1)

	changed, err := repo.IncrementUsedCount(row.ID, time.Now())
	if err != nil || !changed {
		t.Fatalf("increment want changed got %v err=%v", changed, err)
	}
	got, _ := repo.GetByID(row.ID)
	if got.UsedCount != 2 {
		t.Fatalf("plain increment ignores max uses, want 2 got %d", got.UsedCount)
	}
	if got.Status != constants.ConsultationCodeStatusActive {
		t.Fatalf("increment must not change status, got %s", got.Status)
	}

	changed, err = repo.IncrementUsedCount("00000000-0000-0000-0000-000000000000", time.Now())
	if err != nil || changed {
		t.Fatalf("increment on missing id should be no-op, got %v err=%v", changed, err)
	}
}

func TestConsultationCodeRedeemWithinLimit(t *testing.T) {
	repo, _ := setupConsultationCodeRepositoryTest(t)
	now := time.Now()
	limited := createConsultationCodeRow(t, repo, "TC-5555-EEEE", constants.ConsultationCodeStatusActive, intPtr(2), 1)

	ok, err := repo.RedeemWithinLimit(limited.ID, now)
	if err != nil || !ok {
		t.Fatalf("redeem below limit want ok got %v err=%v", ok, err)
	}
	ok, err = repo.RedeemWithinLimit(limited.ID, now)
	if err != nil || ok {
		t.Fatalf("redeem at limit must fail, got %v err=%v", ok, err)
	}
	got, _ := repo.GetByID(limited.ID)
	if got.UsedCount != 2 {
		t.Fatalf("used count want 2 got %d", got.UsedCount)
	}

	past := now.UTC().Add(-time.Hour)
	expired := &models.ConsultationCode{Code: "TC-6666-FFFF", Status: constants.ConsultationCodeStatusActive, ExpiresAt: &past}
	if err := repo.Create(expired); err != nil {
		t.Fatalf("create expired code failed: %v", err)
	}
	ok, err = repo.RedeemWithinLimit(expired.ID, now)
	if err != nil || ok {
		t.Fatalf("redeem past expiry must fail, got %v err=%v", ok, err)
	}

	inactive := createConsultationCodeRow(t, repo, "TC-7777-GGGG", constants.ConsultationCodeStatusInactive, nil, 0)
	ok, err = repo.RedeemWithinLimit(inactive.ID, now)
	if err != nil || ok {
		t.Fatalf("redeem inactive must fail, got %v err=%v", ok, err)
	}
}

func TestConsultationCodeListAndStats(t *testing.T) {
	repo, _ := setupConsultationCodeRepositoryTest(t)
	createConsultationCodeRow(t, repo, "TC-1000-AAAA", constants.ConsultationCodeStatusActive, nil, 0)
	createConsultationCodeRow(t, repo, "TC-2000-BBBB", constants.ConsultationCodeStatusActive, nil, 0)
	createConsultationCodeRow(t, repo, "VX-3000-CCCC", constants.ConsultationCodeStatusInactive, nil, 0)

	rows, total, err := repo.List(ConsultationCodeListFilter{Code: "tc-", Page: 1, PageSize: 1})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 || len(rows) != 1 {
		t.Fatalf("list want total=2 len=1 got total=%d len=%d", total, len(rows))
	}

	rows, total, err = repo.List(ConsultationCodeListFilter{Status: constants.ConsultationCodeStatusInactive})
	if err != nil {
		t.Fatalf("list by status failed: %v", err)
	}
	if total != 1 || rows[0].Code != "VX-3000-CCCC" {
		t.Fatalf("unexpected status filter result total=%d rows=%+v", total, rows)
	}

	counts, err := repo.CountByStatus()
	if err != nil {
		t.Fatalf("count by status failed: %v", err)
	}
	if counts[constants.ConsultationCodeStatusActive] != 2 ||
		counts[constants.ConsultationCodeStatusInactive] != 1 ||
		counts[constants.ConsultationCodeStatusExpired] != 0 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
}

func TestConsultationCodeDelete(t *testing.T) {
	repo, _ := setupConsultationCodeRepositoryTest(t)
	row := createConsultationCodeRow(t, repo, "TC-8888-HHHH", constants.ConsultationCodeStatusActive, nil, 0)

	deleted, err := repo.Delete(row.ID)
	if err != nil || !deleted {
		t.Fatalf("delete want true got %v err=%v", deleted, err)
	}
	deleted, err = repo.Delete(row.ID)
	if err != nil || deleted {
		t.Fatalf("second delete should report false, got %v err=%v", deleted, err)
	}
	exists, _ := repo.ExistsByCode("TC-8888-HHHH")
	if exists {
		t.Fatalf("deleted code should not exist")
	}
}
