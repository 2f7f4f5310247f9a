package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/tripnest/internal/constants"
	"github.com/tripnest/internal/repository"
)

func setupInquiryServiceTest(t *testing.T) *InquiryService {
	t.Helper()
	db := setupServiceTestDB(t)
	return NewInquiryService(repository.NewInquiryRepository(db), nil)
}

func TestInquiryCreateValidation(t *testing.T) {
	svc := setupInquiryServiceTest(t)
	zero := uint(0)

	inquiry, err := svc.Create(CreateInquiryInput{
		Name:     " Ana ",
		Email:    "ANA@example.com",
		Message:  "Is the Kyoto tour suitable for kids?",
		TourID:   &zero,
		Locale:   "en-us",
		ClientIP: "203.0.113.9",
	})
	if err != nil {
		t.Fatalf("create inquiry failed: %v", err)
	}
	if inquiry.Status != constants.InquiryStatusNew || inquiry.Name != "Ana" || inquiry.Email != "ana@example.com" {
		t.Fatalf("unexpected inquiry: %+v", inquiry)
	}
	if inquiry.TourID != nil {
		t.Fatalf("zero tour id should be dropped")
	}

	cases := []CreateInquiryInput{
		{Name: "", Email: "a@b.test", Message: "hi"},
		{Name: "x", Email: "a@b.test", Message: "   "},
		{Name: "x", Email: "a@b.test", Message: strings.Repeat("字", inquiryMessageMaxRunes+1)},
	}
	for i, input := range cases {
		if _, err := svc.Create(input); !errors.Is(err, ErrInquiryInvalid) {
			t.Fatalf("case %d want ErrInquiryInvalid got %v", i, err)
		}
	}
	if _, err := svc.Create(CreateInquiryInput{Name: "x", Email: "bad", Message: "hi"}); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("bad email want ErrInvalidEmail got %v", err)
	}
	if _, err := svc.Create(CreateInquiryInput{Name: "x", Email: "a@b.test", Message: strings.Repeat("字", inquiryMessageMaxRunes)}); err != nil {
		t.Fatalf("message at limit should pass, got %v", err)
	}
}

func TestInquiryStatusAndDelete(t *testing.T) {
	svc := setupInquiryServiceTest(t)
	inquiry, err := svc.Create(CreateInquiryInput{Name: "Ben", Email: "ben@example.com", Message: "Call me"})
	if err != nil {
		t.Fatalf("create inquiry failed: %v", err)
	}

	updated, err := svc.UpdateStatus(inquiry.ID, " Replied ")
	if err != nil || updated.Status != constants.InquiryStatusReplied {
		t.Fatalf("update status failed: %+v err=%v", updated, err)
	}
	if _, err := svc.UpdateStatus(inquiry.ID, "spam"); !errors.Is(err, ErrInquiryStatusInvalid) {
		t.Fatalf("unknown status want ErrInquiryStatusInvalid got %v", err)
	}
	if _, err := svc.UpdateStatus(999, constants.InquiryStatusClosed); !errors.Is(err, ErrInquiryNotFound) {
		t.Fatalf("missing inquiry want ErrInquiryNotFound got %v", err)
	}

	rows, total, err := svc.List(repository.InquiryListFilter{Status: "REPLIED"})
	if err != nil || total != 1 || rows[0].ID != inquiry.ID {
		t.Fatalf("status filter want 1 got total=%d err=%v", total, err)
	}

	if err := svc.Delete(inquiry.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(inquiry.ID); !errors.Is(err, ErrInquiryNotFound) {
		t.Fatalf("second delete want ErrInquiryNotFound got %v", err)
	}
	if _, err := svc.Get(inquiry.ID); !errors.Is(err, ErrInquiryNotFound) {
		t.Fatalf("deleted inquiry should be gone, got %v", err)
	}
}
