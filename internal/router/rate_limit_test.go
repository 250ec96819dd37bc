package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestKeyByIPAndJSONField(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name string
		body string
		want string
	}{
		{name: "email", body: `{"email":" Reader@Example.com ","password":"x"}`, want: "reader@example.com|10.0.0.8"},
		{name: "missing field", body: `{"password":"x"}`, want: "10.0.0.8"},
		{name: "non string", body: `{"email":42}`, want: "10.0.0.8"},
		{name: "invalid json", body: `email=reader`, want: "10.0.0.8"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(tc.body))
			c.Request.RemoteAddr = "10.0.0.8:40000"

			if got := KeyByIPAndJSONField("email")(c); got != tc.want {
				t.Fatalf("key want %s got %s", tc.want, got)
			}
			// 处理器仍能读取完整请求体
			body, err := io.ReadAll(c.Request.Body)
			if err != nil || string(body) != tc.body {
				t.Fatalf("body not restored: %q err=%v", body, err)
			}
		})
	}
}

func TestRateLimitMiddlewarePassesWithoutRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	rule := RateLimitRule{Prefix: "rate:login", WindowSeconds: 60, MaxRequests: 1}
	r.POST("/login", RateLimitMiddleware(nil, rule, KeyByIP), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		if w.Code != http.StatusOK || w.Body.String() != "ok" {
			t.Fatalf("request %d should pass, got %d %s", i, w.Code, w.Body.String())
		}
	}
}

func TestRateLimitRuleHelpers(t *testing.T) {
	if (RateLimitRule{WindowSeconds: 60}).enabled() {
		t.Fatalf("rule without max requests should be disabled")
	}
	if got := (RateLimitRule{Prefix: "eb:rate:login"}).key("a|b"); got != "eb:rate:login:a|b" {
		t.Fatalf("unexpected key %s", got)
	}
	if got := retryAfterSeconds(42*time.Second, 300); got != 42 {
		t.Fatalf("retry after want 42 got %d", got)
	}
	if got := retryAfterSeconds(-1, 300); got != 300 {
		t.Fatalf("missing ttl should fall back to window, got %d", got)
	}
	if got := retryAfterSeconds(0, 0); got != 1 {
		t.Fatalf("retry after should be at least 1, got %d", got)
	}
}
