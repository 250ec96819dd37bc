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
	cases := []struct {
		total int64
		size  int
		want  int64
	}{
		{total: 0, size: 20, want: 0},
		{total: 20, size: 20, want: 1},
		{total: 21, size: 20, want: 2},
		{total: 5, size: 0, want: 0},
	}
	for _, tc := range cases {
		if got := NewPagination(1, tc.size, tc.total).TotalPage; got != tc.want {
			t.Fatalf("total=%d size=%d want %d got %d", tc.total, tc.size, tc.want, got)
		}
	}
}

func TestErrorEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(requestIDKey, "req-1")

	Error(c, CodeNotFound, "not found")
	if w.Code != http.StatusOK {
		t.Fatalf("http status should stay 200, got %d", w.Code)
	}
	var body struct {
		StatusCode int               `json:"status_code"`
		Msg        string            `json:"msg"`
		Data       map[string]string `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.StatusCode != CodeNotFound || body.Data["request_id"] != "req-1" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestPageEnvelopeIsFlat(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	SuccessWithPage(c, []int{1, 2}, NewPagination(2, 2, 5))
	var body map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	for _, key := range []string{"status_code", "msg", "data", "pagination"} {
		if _, ok := body[key]; !ok {
			t.Fatalf("missing %s in %s", key, w.Body.String())
		}
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	base := errors.New("db down")
	err := WrapError(CodeInternal, "internal", base)
	if !errors.Is(err, base) || err.Error() != "internal: db down" {
		t.Fatalf("unexpected app error: %v", err)
	}
}
