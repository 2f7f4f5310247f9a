package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/tripnest/internal/config"
	"github.com/tripnest/internal/constants"
)

func newImageCaptchaService() *CaptchaService {
	return NewCaptchaService(config.CaptchaConfig{
		Provider: "IMAGE",
		Scenes:   config.CaptchaSceneConfig{Inquiry: true},
	})
}

func TestCaptchaSceneSwitches(t *testing.T) {
	svc := newImageCaptchaService()
	if !svc.IsSceneEnabled(constants.CaptchaSceneInquiry) {
		t.Fatalf("inquiry scene should be enabled")
	}
	if svc.IsSceneEnabled(constants.CaptchaSceneNewsletter) {
		t.Fatalf("newsletter scene should be disabled")
	}
	if err := svc.Verify(constants.CaptchaSceneNewsletter, CaptchaVerifyPayload{}); err != nil {
		t.Fatalf("disabled scene should pass, got %v", err)
	}

	none := NewCaptchaService(config.CaptchaConfig{Provider: "turnstile", Scenes: config.CaptchaSceneConfig{Inquiry: true}})
	if none.IsSceneEnabled(constants.CaptchaSceneInquiry) {
		t.Fatalf("unknown provider should disable captcha")
	}
	if _, err := none.GenerateImageChallenge(); !errors.Is(err, ErrCaptchaConfigInvalid) {
		t.Fatalf("generate without image provider want ErrCaptchaConfigInvalid got %v", err)
	}
	setting := svc.PublicSetting()
	if setting.Provider != constants.CaptchaProviderImage || !setting.Scenes[constants.CaptchaSceneInquiry] {
		t.Fatalf("unexpected public setting: %+v", setting)
	}
}

func TestCaptchaImageChallengeVerify(t *testing.T) {
	svc := newImageCaptchaService()
	challenge, err := svc.GenerateImageChallenge()
	if err != nil {
		t.Fatalf("generate challenge failed: %v", err)
	}
	if challenge.CaptchaID == "" || !strings.HasPrefix(challenge.ImageBase64, "data:image/png;base64,") {
		t.Fatalf("unexpected challenge: %+v", challenge)
	}

	if err := svc.Verify(constants.CaptchaSceneInquiry, CaptchaVerifyPayload{CaptchaID: challenge.CaptchaID}); !errors.Is(err, ErrCaptchaRequired) {
		t.Fatalf("missing code want ErrCaptchaRequired got %v", err)
	}
	answer := svc.store.Get(challenge.CaptchaID, false)
	if len(answer) != 5 {
		t.Fatalf("unexpected answer length: %q", answer)
	}
	if err := svc.Verify(constants.CaptchaSceneInquiry, CaptchaVerifyPayload{CaptchaID: challenge.CaptchaID, CaptchaCode: strings.ToUpper(answer)}); err != nil {
		t.Fatalf("correct answer should pass case-insensitively, got %v", err)
	}
	if err := svc.Verify(constants.CaptchaSceneInquiry, CaptchaVerifyPayload{CaptchaID: challenge.CaptchaID, CaptchaCode: answer}); !errors.Is(err, ErrCaptchaInvalid) {
		t.Fatalf("answer must be single use, got %v", err)
	}
}
