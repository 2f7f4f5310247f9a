package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 20, 41)
	if p.TotalPage != 3 || p.Page != 2 || p.PageSize != 20 {
		t.Fatalf("unexpected pagination: %+v", p)
	}
	if NewPagination(1, 0, 5).TotalPage != 0 {
		t.Fatalf("zero page size should yield zero pages")
	}
}

func TestErrorAttachesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set("request_id", "req-1")

	Error(c, CodeNotFound, "missing")
	if w.Code != http.StatusOK {
		t.Fatalf("business errors keep http 200, got %d", w.Code)
	}
	var body struct {
		StatusCode int               `json:"status_code"`
		Msg        string            `json:"msg"`
		Data       map[string]string `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body failed: %v", err)
	}
	if body.StatusCode != CodeNotFound || body.Msg != "missing" || body.Data["request_id"] != "req-1" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestAppErrorLabelAndUnwrap(t *testing.T) {
	cause := errors.New("db down")
	keyed := WrapError(CodeInternal, "error.tour_fetch_failed", "", cause)
	if keyed.Error() != "error.tour_fetch_failed: db down" {
		t.Fatalf("keyed error should fall back to key, got %q", keyed.Error())
	}
	if !errors.Is(keyed, cause) {
		t.Fatalf("app error should unwrap to cause")
	}
	translated := WrapError(CodeNotFound, "error.tour_not_found", "tour not found", nil)
	if translated.Error() != "tour not found" {
		t.Fatalf("translated message should win, got %q", translated.Error())
	}
}
