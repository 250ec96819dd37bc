package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestTaskMetricsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.ObserveTask("order:created", 120*time.Millisecond, nil)
	m.ObserveTask("order:created", 10*time.Millisecond, errors.New("boom"))

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	if got, err := fetchCounterValue(mfs, "ebookstore_task_success_total", "task", "order:created"); err != nil || got != 1 {
		t.Fatalf("expected success=1, got=%f err=%v", got, err)
	}
	if got, err := fetchCounterValue(mfs, "ebookstore_task_failure_total", "task", "order:created"); err != nil || got != 1 {
		t.Fatalf("expected failure=1, got=%f err=%v", got, err)
	}
	if got, err := fetchHistogramSum(mfs, "ebookstore_task_duration_seconds", "task", "order:created"); err != nil || got <= 0 {
		t.Fatalf("expected duration sum > 0, got=%f err=%v", got, err)
	}
}

func TestCheckoutOutcomeLabelFallback(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.IncCheckout(CheckoutSuccess)
	m.IncCheckout("")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	if got, err := fetchCounterValue(mfs, "ebookstore_checkout_results_total", "outcome", "success"); err != nil || got != 1 {
		t.Fatalf("expected success=1, got=%f err=%v", got, err)
	}
	if got, err := fetchCounterValue(mfs, "ebookstore_checkout_results_total", "outcome", "unknown"); err != nil || got != 1 {
		t.Fatalf("expected unknown=1, got=%f err=%v", got, err)
	}
}

func TestMiddlewareRecordsRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	m := New(reg)

	r := gin.New()
	r.Use(m.Middleware("api"))
	r.GET("/books/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/books/42", nil))

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	if got, err := fetchCounterValue(mfs, "ebookstore_http_requests_total", "route", "/books/:id"); err != nil || got != 1 {
		t.Fatalf("expected route counter=1, got=%f err=%v", got, err)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(w.Body.String(), "ebookstore_http_requests_total") {
		t.Fatalf("metrics endpoint missing counter, body=%s", w.Body.String())
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.IncCheckout(CheckoutStore)
	m.ObserveTask("x", time.Second, nil)
	m.ObserveHTTPRequest("api", "GET", "/", 200, time.Second)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 from nil metrics handler, got %d", w.Code)
	}
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
