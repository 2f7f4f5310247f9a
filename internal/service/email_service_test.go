package service

import (
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/tripnest/internal/config"
	"github.com/tripnest/internal/models"

	"github.com/shopspring/decimal"
)

type capturedMail struct {
	addr string
	from string
	to   []string
	msg  string
}

func newCapturingEmailService(cfg *config.EmailConfig) (*EmailService, *[]capturedMail) {
	sent := make([]capturedMail, 0)
	svc := NewEmailService(cfg)
	svc.send = func(addr string, _ smtp.Auth, _ string, from string, to []string, msg []byte) error {
		sent = append(sent, capturedMail{addr: addr, from: from, to: to, msg: string(msg)})
		return nil
	}
	return svc, &sent
}

func enabledEmailConfig() *config.EmailConfig {
	return &config.EmailConfig{
		Enabled:       true,
		Host:          "smtp.tripnest.test",
		Port:          2525,
		From:          "noreply@tripnest.test",
		FromName:      "TripNest",
		OperatorEmail: "ops@tripnest.test",
	}
}

func TestBookingConfirmationContentLocalized(t *testing.T) {
	date := time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC)
	input := BookingEmailInput{
		CustomerName: "Ana",
		BookingNo:    "BK20260101ABCD",
		Status:       "confirmed",
		Amount:       models.NewMoneyFromDecimal(decimal.RequireFromString("199.5")),
		Currency:     "USD",
		TravelDate:   &date,
	}
	subject, body := buildBookingConfirmationContent(input, "en-US")
	if subject != "Booking BK20260101ABCD confirmation" {
		t.Fatalf("unexpected subject: %s", subject)
	}
	for _, want := range []string{"Hello Ana", "is now confirmed", "199.50 USD", "2026-07-14"} {
		if !strings.Contains(body, want) {
			t.Fatalf("body should contain %q, got %q", want, body)
		}
	}

	_, zhBody := buildBookingConfirmationContent(input, "")
	if !strings.Contains(zhBody, "已确认") {
		t.Fatalf("default locale body should use zh status label, got %q", zhBody)
	}

	input.Status = "mystery"
	input.TravelDate = nil
	_, body = buildBookingConfirmationContent(input, "en")
	if !strings.Contains(body, "is now mystery") || !strings.Contains(body, "Travel date: -") {
		t.Fatalf("unknown status should be kept raw, got %q", body)
	}
}

func TestEmailServiceDisabledAndMisconfigured(t *testing.T) {
	svc := NewEmailService(&config.EmailConfig{Enabled: false})
	if err := svc.SendNewsletterWelcome("a@b.test", "token", "en"); !errors.Is(err, ErrEmailServiceDisabled) {
		t.Fatalf("disabled service want ErrEmailServiceDisabled got %v", err)
	}
	svc = NewEmailService(&config.EmailConfig{Enabled: true})
	if err := svc.SendNewsletterWelcome("a@b.test", "token", "en"); !errors.Is(err, ErrEmailServiceNotConfigured) {
		t.Fatalf("missing host want ErrEmailServiceNotConfigured got %v", err)
	}
	cfg := enabledEmailConfig()
	cfg.OperatorEmail = ""
	svc = NewEmailService(cfg)
	if err := svc.SendInquiryNotification(InquiryNotificationInput{Name: "x"}); !errors.Is(err, ErrEmailServiceNotConfigured) {
		t.Fatalf("missing operator want ErrEmailServiceNotConfigured got %v", err)
	}
}

func TestEmailServiceSendsThroughSender(t *testing.T) {
	svc, sent := newCapturingEmailService(enabledEmailConfig())

	if err := svc.SendNewsletterWelcome("reader@tripnest.test", "tok-123", "en-US"); err != nil {
		t.Fatalf("send welcome failed: %v", err)
	}
	if err := svc.SendInquiryNotification(InquiryNotificationInput{Name: "Ana", Email: "ana@x.test", Message: "Need a guide"}); err != nil {
		t.Fatalf("send inquiry failed: %v", err)
	}
	if err := svc.SendNewsletterWelcome("not-an-email", "tok", "en"); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("invalid recipient want ErrInvalidEmail got %v", err)
	}

	if len(*sent) != 2 {
		t.Fatalf("want 2 sent mails got %d", len(*sent))
	}
	welcome := (*sent)[0]
	if welcome.addr != "smtp.tripnest.test:2525" || welcome.from != "noreply@tripnest.test" {
		t.Fatalf("unexpected envelope: %+v", welcome)
	}
	if !strings.Contains(welcome.msg, "tok-123") || !strings.Contains(welcome.msg, "To: reader@tripnest.test") {
		t.Fatalf("unexpected welcome message: %q", welcome.msg)
	}
	inquiry := (*sent)[1]
	if len(inquiry.to) != 1 || inquiry.to[0] != "ops@tripnest.test" {
		t.Fatalf("inquiry should go to operator, got %v", inquiry.to)
	}
	if !strings.Contains(inquiry.msg, "Need a guide") {
		t.Fatalf("inquiry body missing message: %q", inquiry.msg)
	}
}

func TestNormalizeEmailSendError(t *testing.T) {
	if err := normalizeEmailSendError(errors.New("550 5.1.1 Recipient address rejected")); !errors.Is(err, ErrEmailRecipientRejected) {
		t.Fatalf("want ErrEmailRecipientRejected got %v", err)
	}
	raw := errors.New("dial tcp: connection refused")
	if err := normalizeEmailSendError(raw); err != raw {
		t.Fatalf("unrelated error should pass through, got %v", err)
	}
	if err := normalizeEmailSendError(nil); err != nil {
		t.Fatalf("nil should stay nil")
	}
}
