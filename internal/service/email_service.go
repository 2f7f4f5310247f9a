package service

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"mime"
	"net/mail"
	"net/smtp"
	"strings"
	"time"

	"github.com/tripnest/internal/config"
	"github.com/tripnest/internal/i18n"
	"github.com/tripnest/internal/models"
)

type smtpSender func(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error

// EmailService 邮件发送服务
type EmailService struct {
	cfg  *config.EmailConfig
	send smtpSender
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// OperatorEmail 留言通知接收邮箱
func (s *EmailService) OperatorEmail() string {
	if s == nil || s.cfg == nil {
		return ""
	}
	return strings.TrimSpace(s.cfg.OperatorEmail)
}

// BookingEmailInput 预订邮件输入
type BookingEmailInput struct {
	CustomerName string
	BookingNo    string
	Status       string
	Amount       models.Money
	Currency     string
	TravelDate   *time.Time
}

// SendBookingConfirmation 发送预订状态邮件
func (s *EmailService) SendBookingConfirmation(toEmail string, input BookingEmailInput, locale string) error {
	subject, body := buildBookingConfirmationContent(input, locale)
	return s.sendTextEmail(toEmail, subject, body)
}

// SendNewsletterWelcome 发送订阅欢迎邮件
func (s *EmailService) SendNewsletterWelcome(toEmail, unsubscribeToken, locale string) error {
	normalized := i18n.NormalizeLocale(locale)
	subject := i18n.T(normalized, "email.newsletter_welcome.subject")
	body := i18n.Sprintf(normalized, "email.newsletter_welcome.body", unsubscribeToken)
	return s.sendTextEmail(toEmail, subject, body)
}

// InquiryNotificationInput 留言通知输入
type InquiryNotificationInput struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// SendInquiryNotification 向运营邮箱发送留言通知
func (s *EmailService) SendInquiryNotification(input InquiryNotificationInput) error {
	operator := s.OperatorEmail()
	if operator == "" {
		return ErrEmailServiceNotConfigured
	}
	subject, body := buildInquiryNotificationContent(input, i18n.DefaultLocale)
	return s.sendTextEmail(operator, subject, body)
}

func (s *EmailService) sendTextEmail(toEmail, subject, body string) error {
	if s.cfg == nil || !s.cfg.Enabled {
		return ErrEmailServiceDisabled
	}
	if s.cfg.Host == "" || s.cfg.Port == 0 || s.cfg.From == "" {
		return ErrEmailServiceNotConfigured
	}
	if _, err := mail.ParseAddress(toEmail); err != nil {
		return ErrInvalidEmail
	}

	from := buildFromAddress(s.cfg.From, s.cfg.FromName)
	msg := buildEmailMessage(from, toEmail, subject, body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" || s.cfg.Password != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	send := s.send
	if send == nil {
		switch {
		case s.cfg.UseSSL:
			send = sendMailWithSSL
		case s.cfg.UseTLS:
			send = sendMailWithStartTLS
		default:
			send = sendMailPlain
		}
	}
	return normalizeEmailSendError(send(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg)))
}

func buildBookingConfirmationContent(input BookingEmailInput, locale string) (string, string) {
	normalized := i18n.NormalizeLocale(locale)
	statusKey := "booking.status." + strings.ToLower(strings.TrimSpace(input.Status))
	statusLabel := i18n.T(normalized, statusKey)
	if statusLabel == statusKey {
		statusLabel = input.Status
	}
	travelDate := "-"
	if input.TravelDate != nil && !input.TravelDate.IsZero() {
		travelDate = input.TravelDate.Format("2006-01-02")
	}
	name := strings.TrimSpace(input.CustomerName)
	subject := i18n.Sprintf(normalized, "email.booking_confirmation.subject", input.BookingNo)
	body := i18n.Sprintf(normalized, "email.booking_confirmation.body",
		name,
		input.BookingNo,
		statusLabel,
		input.Amount.String(),
		strings.TrimSpace(input.Currency),
		travelDate,
	)
	return subject, body
}

func buildInquiryNotificationContent(input InquiryNotificationInput, locale string) (string, string) {
	topic := strings.TrimSpace(input.Subject)
	if topic == "" {
		topic = strings.TrimSpace(input.Name)
	}
	phone := strings.TrimSpace(input.Phone)
	if phone == "" {
		phone = "-"
	}
	subject := i18n.Sprintf(locale, "email.inquiry_notification.subject", topic)
	body := i18n.Sprintf(locale, "email.inquiry_notification.body",
		strings.TrimSpace(input.Name),
		strings.TrimSpace(input.Email),
		phone,
		strings.TrimSpace(input.Message),
	)
	return subject, body
}

func buildFromAddress(from, name string) string {
	if strings.TrimSpace(name) == "" {
		return from
	}
	encoded := mime.QEncoding.Encode("UTF-8", name)
	return (&mail.Address{Name: encoded, Address: from}).String()
}

func buildEmailMessage(from, to, subject, body string) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("From: %s\r\n", from))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", to))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject)))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.String()
}

func sendMailWithSSL(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := authenticate(client, auth); err != nil {
		return err
	}
	return sendSMTPData(client, from, to, msg)
}

func sendMailWithStartTLS(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
		return err
	}
	if err := authenticate(client, auth); err != nil {
		return err
	}
	return sendSMTPData(client, from, to, msg)
}

func sendMailPlain(addr string, auth smtp.Auth, _ string, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := authenticate(client, auth); err != nil {
		return err
	}
	return sendSMTPData(client, from, to, msg)
}

func authenticate(client *smtp.Client, auth smtp.Auth) error {
	if auth == nil {
		return nil
	}
	if ok, _ := client.Extension("AUTH"); ok {
		return client.Auth(auth)
	}
	return nil
}

func sendSMTPData(client *smtp.Client, from string, to []string, msg []byte) error {
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func normalizeEmailSendError(err error) error {
	if err == nil {
		return nil
	}
	if isEmailRecipientRejected(err) {
		return ErrEmailRecipientRejected
	}
	return err
}

func isEmailRecipientRejected(err error) bool {
	if err == nil {
		return false
	}
	message := strings.ToLower(strings.TrimSpace(err.Error()))
	if message == "" {
		return false
	}
	keywords := []string{
		"no such recipient",
		"no such user",
		"recipient address rejected",
		"user unknown",
		"unknown mailbox",
		"mailbox unavailable",
	}
	for _, keyword := range keywords {
		if strings.Contains(message, keyword) {
			return true
		}
	}
	return strings.Contains(message, "550") && strings.Contains(message, "recipient")
}
