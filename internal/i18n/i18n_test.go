package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newLocaleContext(headers map[string]string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	c.Request = req
	return c
}

func TestResolveLocale(t *testing.T) {
	cases := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{name: "default", headers: nil, want: LocaleZH},
		{name: "explicit header wins", headers: map[string]string{HeaderLocale: "en-US", "Accept-Language": "zh-TW"}, want: LocaleEN},
		{name: "accept language traditional", headers: map[string]string{"Accept-Language": "zh-TW,zh;q=0.9"}, want: LocaleTW},
		{name: "accept language english variant", headers: map[string]string{"Accept-Language": "en-GB,en;q=0.8"}, want: LocaleEN},
		{name: "unsupported falls back", headers: map[string]string{"Accept-Language": "xx"}, want: LocaleZH},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveLocale(newLocaleContext(tc.headers))
			if got != tc.want {
				t.Fatalf("want %s got %s", tc.want, got)
			}
		})
	}
}

func TestNormalizeLocale(t *testing.T) {
	if got := NormalizeLocale("en_us"); got != LocaleEN {
		t.Fatalf("want %s got %s", LocaleEN, got)
	}
	if got := NormalizeLocale(""); got != DefaultLocale {
		t.Fatalf("want default got %s", got)
	}
	if got := NormalizeLocale("%%%"); got != DefaultLocale {
		t.Fatalf("want default for garbage got %s", got)
	}
}

func TestTFallbacks(t *testing.T) {
	if got := T(LocaleEN, "error.consultation_code_not_found"); got != "Consultation code not found" {
		t.Fatalf("unexpected english text: %s", got)
	}
	if got := T(LocaleEN, "error.unknown_key_for_test"); got != "error.unknown_key_for_test" {
		t.Fatalf("missing key should echo key, got %s", got)
	}
	if got := Sprintf(LocaleEN, "error.rate_limited", 12); got != "Too many requests, please retry in 12 seconds" {
		t.Fatalf("unexpected sprintf text: %s", got)
	}
}

func TestCatalogKeysAligned(t *testing.T) {
	for key := range messagesZH {
		if _, ok := messagesTW[key]; !ok {
			t.Fatalf("zh-TW missing key %s", key)
		}
		if _, ok := messagesEN[key]; !ok {
			t.Fatalf("en-US missing key %s", key)
		}
	}
	if len(messagesZH) != len(messagesEN) || len(messagesZH) != len(messagesTW) {
		t.Fatalf("catalog sizes differ: zh=%d tw=%d en=%d", len(messagesZH), len(messagesTW), len(messagesEN))
	}
}
