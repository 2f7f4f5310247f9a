package public

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tripnest/internal/config"
	"github.com/tripnest/internal/constants"
	"github.com/tripnest/internal/http/response"
	"github.com/tripnest/internal/models"
	"github.com/tripnest/internal/provider"
	"github.com/tripnest/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type publicEnvelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func setupPublicHandlerTest(t *testing.T) (*Handler, *gin.Engine) {
	t.Helper()
	return setupPublicHandlerTestWithConfig(t, nil)
}

func setupPublicHandlerTestWithConfig(t *testing.T, adjust func(cfg *config.Config)) (*Handler, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:public_handler_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	models.DB = db

	cfg := &config.Config{
		Consultation: config.ConsultationConfig{CodePrefix: "TC", GenerateMaxAttempts: 5, BulkMaxCount: 100},
		Booking:      config.BookingConfig{Currency: "USD", MaxTravelers: 10},
	}
	if adjust != nil {
		adjust(cfg)
	}
	h := New(provider.NewContainer(cfg))

	r := gin.New()
	r.GET("/config", h.GetConfig)
	r.POST("/consultation-codes/validate", h.ValidateConsultationCode)
	r.POST("/bookings", h.CreateBooking)
	r.GET("/bookings/:booking_no", h.GetBooking)
	r.POST("/newsletter/subscribe", h.SubscribeNewsletter)
	r.POST("/newsletter/unsubscribe", h.UnsubscribeNewsletter)
	r.POST("/inquiries", h.CreateInquiry)
	r.GET("/tours/:slug", h.GetTour)
	return h, r
}

func doPublicRequest(t *testing.T, r *gin.Engine, method, path string, body interface{}) publicEnvelope {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body failed: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", "en-US")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("%s %s want http 200 got %d", method, path, w.Code)
	}
	var env publicEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response failed: %v body=%s", err, w.Body.String())
	}
	return env
}

func decodeData(t *testing.T, env publicEnvelope, target interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, target); err != nil {
		t.Fatalf("decode data failed: %v data=%s", err, string(env.Data))
	}
}

func TestValidateConsultationCodeEndpoint(t *testing.T) {
	h, r := setupPublicHandlerTest(t)

	cases := []struct {
		code   string
		reason string
	}{
		{code: "   ", reason: service.ConsultationReasonRequired},
		{code: "ZZ-0000-QQQQ", reason: service.ConsultationReasonNotFound},
	}
	for _, tc := range cases {
		env := doPublicRequest(t, r, http.MethodPost, "/consultation-codes/validate", gin.H{"code": tc.code})
		if env.StatusCode != response.CodeOK {
			t.Fatalf("invalid code is a normal result, got status %d", env.StatusCode)
		}
		var view struct {
			Valid   bool   `json:"valid"`
			Reason  string `json:"reason"`
			Message string `json:"message"`
		}
		decodeData(t, env, &view)
		if view.Valid || view.Reason != tc.reason || view.Message == "" {
			t.Fatalf("code %q want reason %q got %+v", tc.code, tc.reason, view)
		}
	}

	maxUses := 3
	row, err := h.ConsultationCodeService.Create(service.CreateConsultationCodeInput{MaxUses: &maxUses})
	if err != nil {
		t.Fatalf("create code failed: %v", err)
	}
	env := doPublicRequest(t, r, http.MethodPost, "/consultation-codes/validate", gin.H{"code": row.Code})
	var view struct {
		Valid         bool   `json:"valid"`
		Code          string `json:"code"`
		RemainingUses *int   `json:"remaining_uses"`
	}
	decodeData(t, env, &view)
	if !view.Valid || view.Code != row.Code || view.RemainingUses == nil || *view.RemainingUses != 3 {
		t.Fatalf("unexpected valid view: %+v", view)
	}

	for _, body := range []interface{}{gin.H{}, nil} {
		env = doPublicRequest(t, r, http.MethodPost, "/consultation-codes/validate", body)
		if env.StatusCode != response.CodeOK {
			t.Fatalf("body %v should still validate, got %d", body, env.StatusCode)
		}
		var missing struct {
			Valid  bool   `json:"valid"`
			Reason string `json:"reason"`
		}
		decodeData(t, env, &missing)
		if missing.Valid || missing.Reason != service.ConsultationReasonRequired {
			t.Fatalf("body %v want reason %q got %+v", body, service.ConsultationReasonRequired, missing)
		}
	}
}

func TestCreateConsultationBookingEndpoint(t *testing.T) {
	h, r := setupPublicHandlerTest(t)
	active := true
	expert, err := h.ExpertService.Create(service.ExpertInput{
		Name:            "Lena Park",
		ConsultationFee: decimal.RequireFromString("80"),
		IsActive:        &active,
	})
	if err != nil {
		t.Fatalf("create expert failed: %v", err)
	}

	env := doPublicRequest(t, r, http.MethodPost, "/bookings", gin.H{
		"type":           constants.BookingTypeConsultation,
		"expert_id":      expert.ID,
		"code":           "ZZ-0000-QQQQ",
		"customer_name":  "Ana",
		"customer_email": "ana@tripnest.test",
	})
	if env.StatusCode != response.CodeUnprocessable {
		t.Fatalf("unknown code want %d got %d", response.CodeUnprocessable, env.StatusCode)
	}
	var rejected struct {
		Reason     string `json:"reason"`
		ReasonCode string `json:"reason_code"`
	}
	decodeData(t, env, &rejected)
	if rejected.Reason != service.ConsultationReasonNotFound || rejected.ReasonCode != service.ConsultationReasonCodeNotFound {
		t.Fatalf("unexpected rejection data: %+v", rejected)
	}

	code, err := h.ConsultationCodeService.Create(service.CreateConsultationCodeInput{})
	if err != nil {
		t.Fatalf("create code failed: %v", err)
	}
	env = doPublicRequest(t, r, http.MethodPost, "/bookings", gin.H{
		"type":           constants.BookingTypeConsultation,
		"expert_id":      expert.ID,
		"code":           code.Code,
		"preferred_time": "weekday mornings",
		"customer_name":  "Ana",
		"customer_email": "ana@tripnest.test",
	})
	if env.StatusCode != response.CodeOK {
		t.Fatalf("valid code booking want ok got %d msg=%s", env.StatusCode, env.Msg)
	}
	var booking struct {
		Status           string `json:"status"`
		ConsultationCode string `json:"consultation_code"`
		TotalAmount      string `json:"total_amount"`
	}
	decodeData(t, env, &booking)
	if booking.Status != constants.BookingStatusConfirmed || booking.ConsultationCode != code.Code || booking.TotalAmount != "80.00" {
		t.Fatalf("unexpected consultation booking: %+v", booking)
	}
}

func TestStrictConsultationBookingLosesRace(t *testing.T) {
	h, r := setupPublicHandlerTestWithConfig(t, func(cfg *config.Config) {
		cfg.Consultation.StrictRedeem = true
	})
	active := true
	expert, err := h.ExpertService.Create(service.ExpertInput{
		Name:            "Noor Haddad",
		ConsultationFee: decimal.RequireFromString("50"),
		IsActive:        &active,
	})
	if err != nil {
		t.Fatalf("create expert failed: %v", err)
	}
	maxUses := 1
	code, err := h.ConsultationCodeService.Create(service.CreateConsultationCodeInput{MaxUses: &maxUses})
	if err != nil {
		t.Fatalf("create code failed: %v", err)
	}

	// 模拟另一笔预约在校验之后、核销之前用掉最后一次名额
	err = models.DB.Callback().Create().Before("gorm:create").Register("test:consume_last_use", func(tx *gorm.DB) {
		if tx.Statement.Schema == nil || tx.Statement.Schema.Table != "bookings" {
			return
		}
		tx.Session(&gorm.Session{NewDB: true}).
			Model(&models.ConsultationCode{}).
			Where("id = ?", code.ID).
			Update("used_count", maxUses)
	})
	if err != nil {
		t.Fatalf("register callback failed: %v", err)
	}

	env := doPublicRequest(t, r, http.MethodPost, "/bookings", gin.H{
		"type":           constants.BookingTypeConsultation,
		"expert_id":      expert.ID,
		"code":           code.Code,
		"customer_name":  "Ana",
		"customer_email": "ana@tripnest.test",
	})
	if env.StatusCode != response.CodeUnprocessable {
		t.Fatalf("lost redeem want %d got %d msg=%s", response.CodeUnprocessable, env.StatusCode, env.Msg)
	}
	var rejected struct {
		Reason     string `json:"reason"`
		ReasonCode string `json:"reason_code"`
	}
	decodeData(t, env, &rejected)
	if rejected.Reason != service.ConsultationReasonUsageLimit || rejected.ReasonCode != service.ConsultationReasonCodeUsageLimit {
		t.Fatalf("unexpected rejection data: %+v", rejected)
	}
	var bookings int64
	if err := models.DB.Model(&models.Booking{}).Count(&bookings).Error; err != nil {
		t.Fatalf("count bookings failed: %v", err)
	}
	if bookings != 0 {
		t.Fatalf("rejected booking should roll back, found %d rows", bookings)
	}
}

func TestCreateTourBookingAndLookupEndpoints(t *testing.T) {
	h, r := setupPublicHandlerTest(t)
	tour, err := h.TourService.Create(service.TourInput{
		Title:        "Lisbon Food Walk",
		DurationDays: 1,
		PriceAmount:  decimal.RequireFromString("45.5"),
		MaxTravelers: 6,
		Status:       constants.TourStatusPublished,
	})
	if err != nil {
		t.Fatalf("create tour failed: %v", err)
	}

	env := doPublicRequest(t, r, http.MethodPost, "/bookings", gin.H{
		"type":           constants.BookingTypeTour,
		"tour_id":        tour.ID,
		"travelers":      2,
		"travel_date":    "not-a-date",
		"customer_name":  "Ana",
		"customer_email": "ana@tripnest.test",
	})
	if env.StatusCode != response.CodeBadRequest {
		t.Fatalf("bad travel date want %d got %d", response.CodeBadRequest, env.StatusCode)
	}

	env = doPublicRequest(t, r, http.MethodPost, "/bookings", gin.H{
		"type":           constants.BookingTypeTour,
		"tour_id":        tour.ID,
		"travelers":      7,
		"customer_name":  "Ana",
		"customer_email": "ana@tripnest.test",
	})
	if env.StatusCode != response.CodeBadRequest {
		t.Fatalf("too many travelers want %d got %d", response.CodeBadRequest, env.StatusCode)
	}

	travelDate := time.Now().UTC().AddDate(0, 1, 0).Format("2006-01-02")
	env = doPublicRequest(t, r, http.MethodPost, "/bookings", gin.H{
		"type":           constants.BookingTypeTour,
		"tour_id":        tour.ID,
		"travelers":      2,
		"travel_date":    travelDate,
		"customer_name":  "Ana",
		"customer_email": "Ana@TripNest.test",
	})
	if env.StatusCode != response.CodeOK {
		t.Fatalf("tour booking want ok got %d msg=%s", env.StatusCode, env.Msg)
	}
	var booking struct {
		BookingNo   string `json:"booking_no"`
		Status      string `json:"status"`
		TotalAmount string `json:"total_amount"`
	}
	decodeData(t, env, &booking)
	if booking.Status != constants.BookingStatusPending || booking.TotalAmount != "91.00" {
		t.Fatalf("unexpected tour booking: %+v", booking)
	}

	env = doPublicRequest(t, r, http.MethodGet, "/bookings/"+booking.BookingNo+"?email=ana@tripnest.test", nil)
	if env.StatusCode != response.CodeOK {
		t.Fatalf("lookup with matching email want ok got %d", env.StatusCode)
	}
	env = doPublicRequest(t, r, http.MethodGet, "/bookings/"+booking.BookingNo+"?email=other@tripnest.test", nil)
	if env.StatusCode != response.CodeNotFound {
		t.Fatalf("lookup with other email want %d got %d", response.CodeNotFound, env.StatusCode)
	}
	env = doPublicRequest(t, r, http.MethodGet, "/bookings/"+booking.BookingNo, nil)
	if env.StatusCode != response.CodeBadRequest {
		t.Fatalf("lookup without email want %d got %d", response.CodeBadRequest, env.StatusCode)
	}
}

func TestNewsletterEndpoints(t *testing.T) {
	h, r := setupPublicHandlerTest(t)

	env := doPublicRequest(t, r, http.MethodPost, "/newsletter/subscribe", gin.H{"email": "reader@tripnest.test", "source": "footer"})
	if env.StatusCode != response.CodeOK {
		t.Fatalf("subscribe want ok got %d msg=%s", env.StatusCode, env.Msg)
	}
	var result struct {
		Status  string `json:"status"`
		Created bool   `json:"created"`
	}
	decodeData(t, env, &result)
	if !result.Created || result.Status != constants.SubscriberStatusSubscribed {
		t.Fatalf("unexpected subscribe result: %+v", result)
	}

	env = doPublicRequest(t, r, http.MethodPost, "/newsletter/subscribe", gin.H{"email": "not-an-email"})
	if env.StatusCode != response.CodeBadRequest {
		t.Fatalf("invalid email want %d got %d", response.CodeBadRequest, env.StatusCode)
	}

	sub, err := h.NewsletterRepo.GetByEmail("reader@tripnest.test")
	if err != nil || sub == nil {
		t.Fatalf("subscriber should exist, got %+v err=%v", sub, err)
	}
	env = doPublicRequest(t, r, http.MethodPost, "/newsletter/unsubscribe", gin.H{"token": sub.UnsubscribeToken})
	if env.StatusCode != response.CodeOK {
		t.Fatalf("unsubscribe want ok got %d", env.StatusCode)
	}
	env = doPublicRequest(t, r, http.MethodPost, "/newsletter/unsubscribe", gin.H{"token": "unknown"})
	if env.StatusCode != response.CodeBadRequest {
		t.Fatalf("unknown token want %d got %d", response.CodeBadRequest, env.StatusCode)
	}
}

func TestCreateInquiryEndpoint(t *testing.T) {
	_, r := setupPublicHandlerTest(t)

	env := doPublicRequest(t, r, http.MethodPost, "/inquiries", gin.H{
		"name":    "Ana",
		"email":   "ana@tripnest.test",
		"subject": "Private tour",
		"message": "Can we book a private guide for six people?",
	})
	if env.StatusCode != response.CodeOK {
		t.Fatalf("inquiry want ok got %d msg=%s", env.StatusCode, env.Msg)
	}
	var created struct {
		ID     uint   `json:"id"`
		Status string `json:"status"`
	}
	decodeData(t, env, &created)
	if created.ID == 0 || created.Status != constants.InquiryStatusNew {
		t.Fatalf("unexpected inquiry result: %+v", created)
	}

	env = doPublicRequest(t, r, http.MethodPost, "/inquiries", gin.H{"name": "Ana", "email": "ana@tripnest.test"})
	if env.StatusCode != response.CodeBadRequest {
		t.Fatalf("missing message want %d got %d", response.CodeBadRequest, env.StatusCode)
	}
}

func TestGetConfigAndMissingTour(t *testing.T) {
	_, r := setupPublicHandlerTest(t)

	env := doPublicRequest(t, r, http.MethodGet, "/config", nil)
	var cfg PublicConfigView
	decodeData(t, env, &cfg)
	if cfg.Currency != "USD" || cfg.MaxTravelers != 10 || cfg.Consultation.CodePattern != service.ConsultationCodePattern {
		t.Fatalf("unexpected public config: %+v", cfg)
	}

	env = doPublicRequest(t, r, http.MethodGet, "/tours/no-such-tour", nil)
	if env.StatusCode != response.CodeNotFound {
		t.Fatalf("missing tour want %d got %d", response.CodeNotFound, env.StatusCode)
	}
}
