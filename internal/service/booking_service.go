package service

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/tripnest/internal/config"
	"github.com/tripnest/internal/constants"
	"github.com/tripnest/internal/i18n"
	"github.com/tripnest/internal/logger"
	"github.com/tripnest/internal/models"
	"github.com/tripnest/internal/queue"
	"github.com/tripnest/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// bookingStatusTransitions 允许的预订状态流转
var bookingStatusTransitions = map[string][]string{
	constants.BookingStatusPending:   {constants.BookingStatusConfirmed, constants.BookingStatusCanceled},
	constants.BookingStatusConfirmed: {constants.BookingStatusCompleted, constants.BookingStatusCanceled},
}

// BookingService 预订服务
type BookingService struct {
	repo        repository.BookingRepository
	tourRepo    repository.TourRepository
	expertRepo  repository.ExpertRepository
	codeService *ConsultationCodeService
	queueClient *queue.Client
	cfg         config.BookingConfig
	now         func() time.Time
}

// NewBookingService 创建预订服务
func NewBookingService(
	repo repository.BookingRepository,
	tourRepo repository.TourRepository,
	expertRepo repository.ExpertRepository,
	codeService *ConsultationCodeService,
	queueClient *queue.Client,
	cfg config.BookingConfig,
) *BookingService {
	return &BookingService{
		repo:        repo,
		tourRepo:    tourRepo,
		expertRepo:  expertRepo,
		codeService: codeService,
		queueClient: queueClient,
		cfg:         cfg,
		now:         time.Now,
	}
}

// BookingCustomerInput 预订联系人信息
type BookingCustomerInput struct {
	Name   string
	Email  string
	Phone  string
	Notes  string
	Locale string
}

// CreateTourBookingInput 线路预订输入
type CreateTourBookingInput struct {
	TourID     uint
	Travelers  int
	TravelDate *time.Time
	Customer   BookingCustomerInput
}

// CreateConsultationBookingInput 专家咨询预约输入
type CreateConsultationBookingInput struct {
	ExpertID      uint
	Code          string
	PreferredTime string
	Customer      BookingCustomerInput
}

// CreateTourBooking 创建线路预订，初始状态为 pending
func (s *BookingService) CreateTourBooking(input CreateTourBookingInput) (*models.Booking, error) {
	booking, err := s.newBooking(constants.BookingTypeTour, input.Customer)
	if err != nil {
		return nil, err
	}
	tour, err := s.tourRepo.GetByID(input.TourID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBookingFetchFailed, err)
	}
	if tour == nil {
		return nil, ErrTourNotFound
	}
	if tour.Status != constants.TourStatusPublished {
		return nil, ErrTourUnavailable
	}
	if err := s.validateTravelers(input.Travelers, tour.MaxTravelers); err != nil {
		return nil, err
	}
	travelDate, err := s.normalizeTravelDate(input.TravelDate)
	if err != nil {
		return nil, err
	}

	tourID := tour.ID
	booking.TourID = &tourID
	booking.Travelers = input.Travelers
	booking.TravelDate = travelDate
	booking.TotalAmount = tour.PriceAmount.MulInt(input.Travelers)
	booking.Currency = s.resolveCurrency(tour.Currency)
	booking.Status = constants.BookingStatusPending

	if err := s.repo.Create(booking); err != nil {
		logger.Errorw("booking_create_failed", "type", booking.Type, "tour_id", tourID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrBookingCreateFailed, err)
	}
	logger.Infow("booking_created",
		"booking_id", booking.ID,
		"booking_no", booking.BookingNo,
		"type", booking.Type,
		"tour_id", tourID,
		"travelers", booking.Travelers,
	)
	s.enqueueConfirmationEmail(booking)
	return s.reload(booking), nil
}

// CreateConsultationBooking 使用咨询码创建专家咨询预约
// 校验通过后写入已确认预约，提交成功后才计入咨询码使用次数
func (s *BookingService) CreateConsultationBooking(input CreateConsultationBookingInput) (*models.Booking, error) {
	booking, err := s.newBooking(constants.BookingTypeConsultation, input.Customer)
	if err != nil {
		return nil, err
	}
	expert, err := s.expertRepo.GetByID(input.ExpertID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBookingFetchFailed, err)
	}
	if expert == nil {
		return nil, ErrExpertNotFound
	}
	if !expert.IsActive {
		return nil, ErrExpertUnavailable
	}

	validation, err := s.codeService.Validate(input.Code)
	if err != nil {
		return nil, err
	}
	if !validation.Valid {
		return nil, &ConsultationCodeRejectedError{Reason: validation.Reason, ReasonCode: validation.ReasonCode}
	}
	code := validation.Code

	now := s.now()
	expertID := expert.ID
	codeID := code.ID
	booking.ExpertID = &expertID
	booking.ConsultationCodeID = &codeID
	booking.ConsultationCode = code.Code
	booking.PreferredTime = strings.TrimSpace(input.PreferredTime)
	booking.Travelers = 1
	booking.Status = constants.BookingStatusConfirmed
	booking.ConfirmedAt = &now
	booking.Currency = s.resolveCurrency(expert.Currency)
	if s.cfg.ConsultationFree {
		booking.TotalAmount = models.NewMoneyFromDecimal(decimal.Zero)
	} else {
		booking.TotalAmount = expert.ConsultationFee
	}

	strict := s.codeService.StrictRedeem()
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(booking); err != nil {
			return fmt.Errorf("%w: %v", ErrBookingCreateFailed, err)
		}
		if strict {
			return s.codeService.Redeem(tx, codeID)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrConsultationCodeUnavailable) {
			logger.Warnw("booking_consultation_code_redeem_rejected", "consultation_code_id", codeID)
			return nil, s.redeemRejection(code.Code, err)
		}
		logger.Errorw("booking_create_failed", "type", booking.Type, "expert_id", expertID, "error", err)
		if errors.Is(err, ErrBookingCreateFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrBookingCreateFailed, err)
	}

	if !strict {
		if err := s.codeService.IncrementUsage(codeID); err != nil {
			logger.Errorw("booking_consultation_code_increment_failed",
				"booking_id", booking.ID,
				"consultation_code_id", codeID,
				"error", err,
			)
		}
	}
	logger.Infow("booking_created",
		"booking_id", booking.ID,
		"booking_no", booking.BookingNo,
		"type", booking.Type,
		"expert_id", expertID,
		"consultation_code_id", codeID,
		"strict_redeem", strict,
	)
	s.enqueueConfirmationEmail(booking)
	return s.reload(booking), nil
}

// redeemRejection 条件核销失败时重新校验以给出具体原因，仍显示可用则视为名额被并发占满
func (s *BookingService) redeemRejection(code string, cause error) error {
	validation, err := s.codeService.Validate(code)
	if err == nil && !validation.Valid {
		return &ConsultationCodeRejectedError{Reason: validation.Reason, ReasonCode: validation.ReasonCode, Err: cause}
	}
	return &ConsultationCodeRejectedError{
		Reason:     ConsultationReasonUsageLimit,
		ReasonCode: ConsultationReasonCodeUsageLimit,
		Err:        cause,
	}
}

// GetPublic 按预订编号与邮箱查询预订，邮箱不匹配视为不存在
func (s *BookingService) GetPublic(bookingNo, email string) (*models.Booking, error) {
	normalizedEmail, err := normalizeEmail(email)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	booking, err := s.repo.GetByBookingNo(bookingNo)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBookingFetchFailed, err)
	}
	if booking == nil || booking.CustomerEmail != normalizedEmail {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

// List 后台预订列表
func (s *BookingService) List(filter repository.BookingListFilter) ([]models.Booking, int64, error) {
	filter.Type = strings.ToLower(strings.TrimSpace(filter.Type))
	filter.Status = strings.ToLower(strings.TrimSpace(filter.Status))
	rows, total, err := s.repo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrBookingFetchFailed, err)
	}
	return rows, total, nil
}

// Get 获取预订详情
func (s *BookingService) Get(id uint) (*models.Booking, error) {
	booking, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBookingFetchFailed, err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

// UpdateStatus 后台变更预订状态
func (s *BookingService) UpdateStatus(id uint, status string) (*models.Booking, error) {
	target := strings.ToLower(strings.TrimSpace(status))
	booking, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !canTransitBooking(booking.Status, target) {
		return nil, ErrBookingStatusInvalid
	}

	now := s.now()
	updates := map[string]interface{}{
		"status":     target,
		"updated_at": now,
	}
	switch target {
	case constants.BookingStatusConfirmed:
		updates["confirmed_at"] = now
	case constants.BookingStatusCanceled:
		updates["canceled_at"] = now
	case constants.BookingStatusCompleted:
		updates["completed_at"] = now
	}
	ok, err := s.repo.UpdateStatus(booking.ID, booking.Status, updates)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBookingUpdateFailed, err)
	}
	if !ok {
		return nil, ErrBookingStatusInvalid
	}
	logger.Infow("booking_status_updated",
		"booking_id", booking.ID,
		"booking_no", booking.BookingNo,
		"from", booking.Status,
		"to", target,
	)

	updated, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if target == constants.BookingStatusConfirmed || target == constants.BookingStatusCanceled {
		s.enqueueConfirmationEmail(updated)
	}
	return updated, nil
}

func canTransitBooking(from, to string) bool {
	for _, allowed := range bookingStatusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (s *BookingService) newBooking(bookingType string, customer BookingCustomerInput) (*models.Booking, error) {
	name := strings.TrimSpace(customer.Name)
	if name == "" {
		return nil, ErrBookingInvalid
	}
	email, err := normalizeEmail(customer.Email)
	if err != nil {
		return nil, err
	}
	return &models.Booking{
		BookingNo:     generateBookingNo(s.now()),
		Type:          bookingType,
		CustomerName:  name,
		CustomerEmail: email,
		CustomerPhone: strings.TrimSpace(customer.Phone),
		Notes:         strings.TrimSpace(customer.Notes),
		Locale:        i18n.NormalizeLocale(customer.Locale),
	}, nil
}

func (s *BookingService) validateTravelers(travelers, tourLimit int) error {
	if travelers < 1 {
		return ErrBookingTravelersInvalid
	}
	if tourLimit > 0 && travelers > tourLimit {
		return ErrBookingTravelersInvalid
	}
	if s.cfg.MaxTravelers > 0 && travelers > s.cfg.MaxTravelers {
		return ErrBookingTravelersInvalid
	}
	return nil
}

// normalizeTravelDate 出行日期不得早于今天（UTC）
func (s *BookingService) normalizeTravelDate(raw *time.Time) (*time.Time, error) {
	date := normalizeOptionalTime(raw)
	if date == nil {
		return nil, nil
	}
	today := s.now().UTC().Truncate(24 * time.Hour)
	if date.Before(today) {
		return nil, ErrBookingInvalid
	}
	return date, nil
}

func (s *BookingService) resolveCurrency(currency string) string {
	if strings.TrimSpace(currency) != "" {
		return normalizeCurrency(currency)
	}
	return normalizeCurrency(s.cfg.Currency)
}

func (s *BookingService) reload(booking *models.Booking) *models.Booking {
	full, err := s.repo.GetByID(booking.ID)
	if err != nil || full == nil {
		return booking
	}
	return full
}

func (s *BookingService) enqueueConfirmationEmail(booking *models.Booking) {
	if s.queueClient == nil || !s.queueClient.Enabled() || booking == nil {
		return
	}
	if err := s.queueClient.EnqueueBookingConfirmationEmail(queue.BookingConfirmationEmailPayload{
		BookingID: booking.ID,
		Status:    booking.Status,
	}); err != nil {
		logger.Warnw("booking_enqueue_confirmation_email_failed",
			"booking_id", booking.ID,
			"booking_no", booking.BookingNo,
			"error", err,
		)
	}
}

func generateBookingNo(now time.Time) string {
	var b strings.Builder
	b.WriteString(constants.BookingNoPrefix)
	b.WriteString(now.UTC().Format("20060102150405"))
	limit := big.NewInt(10)
	for i := 0; i < 6; i++ {
		b.WriteByte(consultationCodeDigits[randomIndex(limit)])
	}
	return b.String()
}
