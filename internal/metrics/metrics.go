package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ebookstore"

// 结账结果标签
const (
	CheckoutSuccess    = "success"
	CheckoutEmptyCart  = "empty_cart"
	CheckoutValidation = "validation_failed"
	CheckoutStore      = "store_failed"
)

// Metrics 进程级监控指标
// 所有方法对 nil 接收者安全，未启用监控时可直接传 nil
type Metrics struct {
	gatherer        prometheus.Gatherer
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	checkoutResults *prometheus.CounterVec
	taskDuration    *prometheus.HistogramVec
	taskSuccess     *prometheus.CounterVec
	taskFailure     *prometheus.CounterVec
}

// New 在指定 registry 上注册指标
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		return &Metrics{}
	}
	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests handled, by service, method, route and status.",
	}, []string{"service", "method", "route", "status"})
	httpDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"service", "route"})
	checkoutResults := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkout_results_total",
		Help:      "Storefront checkout submissions by outcome.",
	}, []string{"outcome"})
	taskDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "task_duration_seconds",
		Help:      "Duration of async tasks in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"task"})
	taskSuccess := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "task_success_total",
		Help:      "Successful async task executions.",
	}, []string{"task"})
	taskFailure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "task_failure_total",
		Help:      "Failed async task executions.",
	}, []string{"task"})
	reg.MustRegister(httpRequests, httpDuration, checkoutResults, taskDuration, taskSuccess, taskFailure)
	return &Metrics{
		gatherer:        reg,
		httpRequests:    httpRequests,
		httpDuration:    httpDuration,
		checkoutResults: checkoutResults,
		taskDuration:    taskDuration,
		taskSuccess:     taskSuccess,
		taskFailure:     taskFailure,
	}
}

// NewDefault 创建带 Go 运行时与进程指标的 registry
func NewDefault() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return New(reg)
}

// ObserveHTTPRequest 记录一次 HTTP 请求
func (m *Metrics) ObserveHTTPRequest(service, method, route string, status int, duration time.Duration) {
	if m == nil || m.httpRequests == nil {
		return
	}
	route = normalizeLabel(route)
	service = normalizeLabel(service)
	m.httpRequests.WithLabelValues(service, method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(service, route).Observe(duration.Seconds())
}

// IncCheckout 记录结账结果
func (m *Metrics) IncCheckout(outcome string) {
	if m == nil || m.checkoutResults == nil {
		return
	}
	m.checkoutResults.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// ObserveTask 记录异步任务执行结果
func (m *Metrics) ObserveTask(task string, duration time.Duration, err error) {
	if m == nil || m.taskDuration == nil {
		return
	}
	task = normalizeLabel(task)
	m.taskDuration.WithLabelValues(task).Observe(duration.Seconds())
	if err != nil {
		m.taskFailure.WithLabelValues(task).Inc()
		return
	}
	m.taskSuccess.WithLabelValues(task).Inc()
}

// Middleware gin 请求指标中间件，route 使用路由模板避免高基数
func (m *Metrics) Middleware(service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveHTTPRequest(service, c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}

// Handler 暴露 /metrics
func (m *Metrics) Handler() http.Handler {
	if m == nil || m.gatherer == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
