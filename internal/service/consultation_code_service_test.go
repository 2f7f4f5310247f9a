package service

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/tripnest/internal/config"
	"github.com/tripnest/internal/constants"
	"github.com/tripnest/internal/models"
	"github.com/tripnest/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	models.DB = db
	return db
}

func setupConsultationCodeServiceTest(t *testing.T) (*ConsultationCodeService, *repository.GormConsultationCodeRepository, *gorm.DB) {
	t.Helper()
	db := setupServiceTestDB(t)
	repo := repository.NewConsultationCodeRepository(db)
	svc := NewConsultationCodeService(repo, config.ConsultationConfig{
		CodePrefix:          "TC",
		GenerateMaxAttempts: 5,
		BulkMaxCount:        50,
	})
	return svc, repo, db
}

// sequenceGenerator 先按顺序返回给定码值，用尽后回退到随机生成
func sequenceGenerator(codes ...string) func(string) string {
	var mu sync.Mutex
	idx := 0
	return func(prefix string) string {
		mu.Lock()
		defer mu.Unlock()
		if idx < len(codes) {
			code := codes[idx]
			idx++
			return code
		}
		return GenerateConsultationCode(prefix)
	}
}

func seedConsultationCode(t *testing.T, repo *repository.GormConsultationCodeRepository, row models.ConsultationCode) *models.ConsultationCode {
	t.Helper()
	if row.Status == "" {
		row.Status = constants.ConsultationCodeStatusActive
	}
	if err := repo.Create(&row); err != nil {
		t.Fatalf("seed consultation code failed: %v", err)
	}
	return &row
}

func intRef(v int) *int {
	return &v
}

func TestGenerateConsultationCodeShape(t *testing.T) {
	for i := 0; i < 200; i++ {
		code := GenerateConsultationCode("TC")
		if !MatchesConsultationCodeFormat(code) {
			t.Fatalf("generated code %q does not match format", code)
		}
		if !strings.HasPrefix(code, "TC-") {
			t.Fatalf("generated code %q should keep prefix", code)
		}
	}
	if code := GenerateConsultationCode("vx"); !strings.HasPrefix(code, "VX-") {
		t.Fatalf("lowercase prefix should be uppercased, got %s", code)
	}
	for _, bad := range []string{"", "T", "TCX", "T1", "中文"} {
		if code := GenerateConsultationCode(bad); !strings.HasPrefix(code, constants.ConsultationCodeDefaultPrefix+"-") {
			t.Fatalf("invalid prefix %q should fall back to default, got %s", bad, code)
		}
	}
}

func TestGenerateConsultationCodeUsesWholeAlphabet(t *testing.T) {
	digits := map[byte]bool{}
	letters := map[byte]bool{}
	for i := 0; i < 2000; i++ {
		code := GenerateConsultationCode("TC")
		for j := 3; j < 7; j++ {
			digits[code[j]] = true
		}
		for j := 8; j < 12; j++ {
			letters[code[j]] = true
		}
	}
	if len(digits) != 10 {
		t.Fatalf("expected all 10 digits to appear, got %d", len(digits))
	}
	if len(letters) != 26 {
		t.Fatalf("expected all 26 letters to appear, got %d", len(letters))
	}
}

func TestMatchesConsultationCodeFormat(t *testing.T) {
	cases := map[string]bool{
		"TC-1234-ABCD":   true,
		"AB-0000-ZZZZ":   true,
		"tc-1234-abcd":   false,
		"TC-123-ABCD":    false,
		"TC-1234-ABC1":   false,
		"TC1234ABCD":     false,
		" TC-1234-ABCD":  false,
		"TC-1234-ABCD\n": false,
		"TCX-1234-ABCD":  false,
		"":               false,
	}
	for code, want := range cases {
		if got := MatchesConsultationCodeFormat(code); got != want {
			t.Fatalf("MatchesConsultationCodeFormat(%q) want %v got %v", code, want, got)
		}
	}
}

func TestValidateReasonsInOrder(t *testing.T) {
	svc, repo, _ := setupConsultationCodeServiceTest(t)
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	past := now.Add(-time.Minute)
	seedConsultationCode(t, repo, models.ConsultationCode{Code: "TC-1000-AAAA", Status: constants.ConsultationCodeStatusInactive, ExpiresAt: &past})
	seedConsultationCode(t, repo, models.ConsultationCode{Code: "TC-2000-BBBB", Status: constants.ConsultationCodeStatusExpired})
	seedConsultationCode(t, repo, models.ConsultationCode{Code: "TC-3000-CCCC", ExpiresAt: &past, MaxUses: intRef(1), UsedCount: 1})
	seedConsultationCode(t, repo, models.ConsultationCode{Code: "TC-4000-DDDD", MaxUses: intRef(3), UsedCount: 3})

	cases := []struct {
		input  string
		reason string
	}{
		{input: "", reason: ConsultationReasonRequired},
		{input: "   ", reason: ConsultationReasonRequired},
		{input: "TC-9999-ZZZZ", reason: ConsultationReasonNotFound},
		{input: "TC-1000-AAAA", reason: "code is inactive"},
		{input: "tc-2000-bbbb", reason: "code is expired"},
		{input: "TC-3000-CCCC", reason: ConsultationReasonExpired},
		{input: "TC-4000-DDDD", reason: ConsultationReasonUsageLimit},
	}
	for _, tc := range cases {
		result, err := svc.Validate(tc.input)
		if err != nil {
			t.Fatalf("validate %q unexpected error: %v", tc.input, err)
		}
		if result.Valid {
			t.Fatalf("validate %q should be invalid", tc.input)
		}
		if result.Reason != tc.reason {
			t.Fatalf("validate %q reason want %q got %q", tc.input, tc.reason, result.Reason)
		}
		if result.Code != nil {
			t.Fatalf("invalid result should not carry record for %q", tc.input)
		}
	}
}

func TestValidateLazilyPersistsExpiry(t *testing.T) {
	svc, repo, _ := setupConsultationCodeServiceTest(t)
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	past := now.Add(-time.Second)
	byDate := seedConsultationCode(t, repo, models.ConsultationCode{Code: "TC-1111-AAAA", ExpiresAt: &past})
	byUsage := seedConsultationCode(t, repo, models.ConsultationCode{Code: "TC-2222-BBBB", MaxUses: intRef(2), UsedCount: 2})

	first, err := svc.Validate("TC-1111-AAAA")
	if err != nil || first.Reason != ConsultationReasonExpired {
		t.Fatalf("first validate want expired reason got %+v err=%v", first, err)
	}
	stored, _ := repo.GetByID(byDate.ID)
	if stored.Status != constants.ConsultationCodeStatusExpired {
		t.Fatalf("expiry should be persisted, got status %s", stored.Status)
	}
	second, err := svc.Validate("TC-1111-AAAA")
	if err != nil || second.Reason != "code is expired" {
		t.Fatalf("second validate should report status, got %+v err=%v", second, err)
	}

	usage, err := svc.Validate("TC-2222-BBBB")
	if err != nil || usage.Reason != ConsultationReasonUsageLimit {
		t.Fatalf("usage validate want usage limit got %+v err=%v", usage, err)
	}
	stored, _ = repo.GetByID(byUsage.ID)
	if stored.Status != constants.ConsultationCodeStatusExpired {
		t.Fatalf("usage exhaustion should persist expired, got %s", stored.Status)
	}
	if stored.UsedCount != 2 {
		t.Fatalf("validation must not change used count, got %d", stored.UsedCount)
	}
}

func TestValidateBoundaries(t *testing.T) {
	svc, repo, _ := setupConsultationCodeServiceTest(t)
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	exact := now
	seedConsultationCode(t, repo, models.ConsultationCode{Code: "TC-1212-AAAA", ExpiresAt: &exact})
	seedConsultationCode(t, repo, models.ConsultationCode{Code: "TC-3434-BBBB", MaxUses: intRef(0)})
	seedConsultationCode(t, repo, models.ConsultationCode{Code: "TC-5656-CCCC", MaxUses: intRef(5), UsedCount: 4})

	atInstant, err := svc.Validate("TC-1212-AAAA")
	if err != nil || !atInstant.Valid {
		t.Fatalf("code expiring exactly now should still be valid, got %+v err=%v", atInstant, err)
	}
	zero, err := svc.Validate("TC-3434-BBBB")
	if err != nil || zero.Reason != ConsultationReasonUsageLimit {
		t.Fatalf("max_uses=0 should be exhausted, got %+v err=%v", zero, err)
	}
	lastUse, err := svc.Validate("  tc-5656-cccc ")
	if err != nil || !lastUse.Valid {
		t.Fatalf("code with one remaining use should be valid, got %+v err=%v", lastUse, err)
	}
	if lastUse.Code == nil || lastUse.Code.Code != "TC-5656-CCCC" {
		t.Fatalf("valid result should carry record, got %+v", lastUse.Code)
	}
	if remaining := lastUse.Code.RemainingUses(); remaining == nil || *remaining != 1 {
		t.Fatalf("remaining uses want 1 got %v", remaining)
	}
}

func TestValidateDoesNotIncrementUsage(t *testing.T) {
	svc, repo, _ := setupConsultationCodeServiceTest(t)
	row := seedConsultationCode(t, repo, models.ConsultationCode{Code: "TC-7777-GGGG", MaxUses: intRef(2)})
	for i := 0; i < 5; i++ {
		result, err := svc.Validate("TC-7777-GGGG")
		if err != nil || !result.Valid {
			t.Fatalf("validate #%d want valid got %+v err=%v", i, result, err)
		}
	}
	stored, _ := repo.GetByID(row.ID)
	if stored.UsedCount != 0 {
		t.Fatalf("used count want 0 got %d", stored.UsedCount)
	}
}

func TestValidateStoreFailureIsError(t *testing.T) {
	svc, _, db := setupConsultationCodeServiceTest(t)
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	_ = sqlDB.Close()

	result, err := svc.Validate("TC-1234-ABCD")
	if !errors.Is(err, ErrConsultationCodeFetchFailed) {
		t.Fatalf("store failure want ErrConsultationCodeFetchFailed got %v", err)
	}
	if result.Reason == ConsultationReasonNotFound {
		t.Fatalf("store failure must not be reported as not found")
	}
}

func TestIncrementUsage(t *testing.T) {
	svc, repo, _ := setupConsultationCodeServiceTest(t)
	row := seedConsultationCode(t, repo, models.ConsultationCode{Code: "TC-8888-HHHH", MaxUses: intRef(1)})

	if err := svc.IncrementUsage(row.ID); err != nil {
		t.Fatalf("increment failed: %v", err)
	}
	if err := svc.IncrementUsage(row.ID); err != nil {
		t.Fatalf("increment beyond max should not fail: %v", err)
	}
	stored, _ := repo.GetByID(row.ID)
	if stored.UsedCount != 2 {
		t.Fatalf("used count want 2 got %d", stored.UsedCount)
	}
	if stored.Status != constants.ConsultationCodeStatusActive {
		t.Fatalf("increment must not flip status, got %s", stored.Status)
	}

	if err := svc.IncrementUsage("missing-id"); err != nil {
		t.Fatalf("increment on missing id should be a no-op, got %v", err)
	}
	if err := svc.IncrementUsage(""); err != nil {
		t.Fatalf("increment on empty id should be a no-op, got %v", err)
	}
}

func TestRedeemStrict(t *testing.T) {
	svc, repo, db := setupConsultationCodeServiceTest(t)
	row := seedConsultationCode(t, repo, models.ConsultationCode{Code: "TC-9090-JJJJ", MaxUses: intRef(1)})

	if err := db.Transaction(func(tx *gorm.DB) error { return svc.Redeem(tx, row.ID) }); err != nil {
		t.Fatalf("first redeem failed: %v", err)
	}
	err := db.Transaction(func(tx *gorm.DB) error { return svc.Redeem(tx, row.ID) })
	if !errors.Is(err, ErrConsultationCodeUnavailable) {
		t.Fatalf("second redeem want ErrConsultationCodeUnavailable got %v", err)
	}
	stored, _ := repo.GetByID(row.ID)
	if stored.UsedCount != 1 {
		t.Fatalf("strict redeem must not exceed max uses, got %d", stored.UsedCount)
	}
}

func TestGenerateCodeRetriesOnCollision(t *testing.T) {
	svc, repo, _ := setupConsultationCodeServiceTest(t)
	seedConsultationCode(t, repo, models.ConsultationCode{Code: "TC-0001-AAAA"})
	seedConsultationCode(t, repo, models.ConsultationCode{Code: "TC-0002-AAAA"})
	svc.generate = sequenceGenerator("TC-0001-AAAA", "TC-0002-AAAA", "TC-0003-AAAA")

	code, err := svc.GenerateCode("")
	if err != nil {
		t.Fatalf("generate code failed: %v", err)
	}
	if code != "TC-0003-AAAA" {
		t.Fatalf("want first free candidate TC-0003-AAAA got %s", code)
	}
}

func TestGenerateCodeGivesUpAfterMaxAttempts(t *testing.T) {
	svc, repo, _ := setupConsultationCodeServiceTest(t)
	seedConsultationCode(t, repo, models.ConsultationCode{Code: "TC-0001-AAAA"})
	svc.generate = func(string) string { return "TC-0001-AAAA" }

	if _, err := svc.GenerateCode("TC"); !errors.Is(err, ErrConsultationCodeGenerateFailed) {
		t.Fatalf("want ErrConsultationCodeGenerateFailed got %v", err)
	}
}

func TestCreateExplicitAndGenerated(t *testing.T) {
	svc, repo, _ := setupConsultationCodeServiceTest(t)
	desc := "  spring campaign  "
	createdBy := "ops@tripnest.test"

	row, err := svc.Create(CreateConsultationCodeInput{Code: "vx-1234-abcd", Description: &desc, CreatedBy: &createdBy, MaxUses: intRef(3)})
	if err != nil {
		t.Fatalf("create explicit failed: %v", err)
	}
	if row.Code != "VX-1234-ABCD" || row.Status != constants.ConsultationCodeStatusActive || row.UsedCount != 0 {
		t.Fatalf("unexpected explicit row: %+v", row)
	}
	if row.Description == nil || *row.Description != "spring campaign" {
		t.Fatalf("description should be trimmed, got %v", row.Description)
	}

	if _, err := svc.Create(CreateConsultationCodeInput{Code: "VX-1234-ABCD"}); !errors.Is(err, ErrConsultationCodeExists) {
		t.Fatalf("duplicate explicit code want ErrConsultationCodeExists got %v", err)
	}
	if _, err := svc.Create(CreateConsultationCodeInput{Code: "VX-12-ABCD"}); !errors.Is(err, ErrConsultationCodeFormatInvalid) {
		t.Fatalf("malformed code want ErrConsultationCodeFormatInvalid got %v", err)
	}
	if _, err := svc.Create(CreateConsultationCodeInput{MaxUses: intRef(0)}); !errors.Is(err, ErrConsultationCodeInvalid) {
		t.Fatalf("non-positive max uses want ErrConsultationCodeInvalid got %v", err)
	}

	seedConsultationCode(t, repo, models.ConsultationCode{Code: "QA-5555-AAAA"})
	svc.generate = sequenceGenerator("QA-5555-AAAA", "QA-5555-BBBB")
	generated, err := svc.Create(CreateConsultationCodeInput{Prefix: "qa"})
	if err != nil {
		t.Fatalf("create generated failed: %v", err)
	}
	if generated.Code != "QA-5555-BBBB" {
		t.Fatalf("collision should be retried, got %s", generated.Code)
	}
}

func TestBulkGenerateDistinctAndRechecked(t *testing.T) {
	svc, repo, _ := setupConsultationCodeServiceTest(t)
	seedConsultationCode(t, repo, models.ConsultationCode{Code: "TC-0001-AAAA"})
	// 批内重复与库中已有的码都需要被替换
	svc.generate = sequenceGenerator(
		"TC-0001-AAAA",
		"TC-0002-AAAA",
		"TC-0002-AAAA",
		"TC-0003-AAAA",
		"TC-0004-AAAA",
	)

	rows, err := svc.BulkGenerate(BulkGenerateInput{Count: 3, MaxUses: intRef(2)})
	if err != nil {
		t.Fatalf("bulk generate failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("bulk generate want 3 rows got %d", len(rows))
	}
	seen := map[string]bool{}
	for _, row := range rows {
		if seen[row.Code] {
			t.Fatalf("duplicate code in batch: %s", row.Code)
		}
		seen[row.Code] = true
		if row.Code == "TC-0001-AAAA" {
			t.Fatalf("existing code must not be reused")
		}
		if !MatchesConsultationCodeFormat(row.Code) {
			t.Fatalf("bulk code %s does not match format", row.Code)
		}
		if row.MaxUses == nil || *row.MaxUses != 2 {
			t.Fatalf("bulk code should carry max uses")
		}
	}

	_, total, err := repo.List(repository.ConsultationCodeListFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 4 {
		t.Fatalf("store should hold seed + 3 generated codes, got %d", total)
	}
}

func TestBulkGenerateCountBounds(t *testing.T) {
	svc, _, _ := setupConsultationCodeServiceTest(t)
	for _, count := range []int{0, -1, 51} {
		if _, err := svc.BulkGenerate(BulkGenerateInput{Count: count}); !errors.Is(err, ErrConsultationCodeBulkCount) {
			t.Fatalf("count %d want ErrConsultationCodeBulkCount got %v", count, err)
		}
	}
	rows, err := svc.BulkGenerate(BulkGenerateInput{Count: 50, Prefix: "zz"})
	if err != nil {
		t.Fatalf("bulk generate at max failed: %v", err)
	}
	for _, row := range rows {
		if !strings.HasPrefix(row.Code, "ZZ-") {
			t.Fatalf("bulk prefix should be applied, got %s", row.Code)
		}
	}
}

func TestUpdateStatusRules(t *testing.T) {
	svc, repo, _ := setupConsultationCodeServiceTest(t)
	active := seedConsultationCode(t, repo, models.ConsultationCode{Code: "TC-1313-AAAA", MaxUses: intRef(2)})
	expired := seedConsultationCode(t, repo, models.ConsultationCode{Code: "TC-1414-BBBB", Status: constants.ConsultationCodeStatusExpired})

	inactive := constants.ConsultationCodeStatusInactive
	updated, err := svc.Update(active.ID, UpdateConsultationCodeInput{Status: &inactive, ClearMaxUses: true})
	if err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if updated.Status != inactive || updated.MaxUses != nil {
		t.Fatalf("unexpected updated row: %+v", updated)
	}

	expiredStatus := constants.ConsultationCodeStatusExpired
	if _, err := svc.Update(active.ID, UpdateConsultationCodeInput{Status: &expiredStatus}); !errors.Is(err, ErrConsultationCodeStatusInvalid) {
		t.Fatalf("setting expired manually want ErrConsultationCodeStatusInvalid got %v", err)
	}
	activeStatus := constants.ConsultationCodeStatusActive
	if _, err := svc.Update(expired.ID, UpdateConsultationCodeInput{Status: &activeStatus}); !errors.Is(err, ErrConsultationCodeStatusInvalid) {
		t.Fatalf("reviving expired want ErrConsultationCodeStatusInvalid got %v", err)
	}
	if _, err := svc.Update("missing", UpdateConsultationCodeInput{}); !errors.Is(err, ErrConsultationCodeNotFound) {
		t.Fatalf("missing id want ErrConsultationCodeNotFound got %v", err)
	}
}

func TestDeleteStatsAndExport(t *testing.T) {
	svc, repo, _ := setupConsultationCodeServiceTest(t)
	a := seedConsultationCode(t, repo, models.ConsultationCode{Code: "TC-1515-AAAA", MaxUses: intRef(4)})
	seedConsultationCode(t, repo, models.ConsultationCode{Code: "TC-1616-BBBB", Status: constants.ConsultationCodeStatusInactive})
	seedConsultationCode(t, repo, models.ConsultationCode{Code: "TC-1717-CCCC", Status: constants.ConsultationCodeStatusExpired})

	stats, err := svc.Stats()
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.Total != 3 || stats.Active != 1 || stats.Inactive != 1 || stats.Expired != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	content, contentType, err := svc.Export(nil, ConsultationCodeListInput{}, "csv")
	if err != nil {
		t.Fatalf("export csv failed: %v", err)
	}
	if !strings.HasPrefix(contentType, "text/csv") {
		t.Fatalf("unexpected content type: %s", contentType)
	}
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	if len(lines) != 4 || !strings.HasPrefix(lines[0], "id,code,status") {
		t.Fatalf("unexpected csv content: %s", string(content))
	}

	content, _, err = svc.Export([]string{a.ID}, ConsultationCodeListInput{}, "TXT")
	if err != nil {
		t.Fatalf("export txt failed: %v", err)
	}
	if string(content) != "TC-1515-AAAA" {
		t.Fatalf("unexpected txt content: %q", string(content))
	}
	if _, _, err := svc.Export(nil, ConsultationCodeListInput{}, "xlsx"); !errors.Is(err, ErrExportFormat) {
		t.Fatalf("unsupported format want ErrExportFormat got %v", err)
	}

	if err := svc.Delete(a.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(a.ID); !errors.Is(err, ErrConsultationCodeNotFound) {
		t.Fatalf("second delete want ErrConsultationCodeNotFound got %v", err)
	}
	result, err := svc.Validate("TC-1515-AAAA")
	if err != nil || result.Reason != ConsultationReasonNotFound {
		t.Fatalf("deleted code should be not found, got %+v err=%v", result, err)
	}
}
