// Package metrics 提供基于Prometheus的指标收集
//
// 指标类型速记：
// - Counter：只增不减的累计值（如HTTP请求总数、借出总数）
// - Gauge：可增可减的瞬时值（如当前在借数量）
// - Histogram：观测值分布（如请求耗时，自动计算P50/P90/P99）
//
// 指标通过 /metrics 端点暴露，由Prometheus Server定期抓取。
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 指标集合
// 设计说明：使用独立Registry而非默认全局Registry，
// 避免测试中重复注册panic，也便于按需注入
type Metrics struct {
	registry *prometheus.Registry

	// HTTP请求指标
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// 借阅业务指标
	loansBorrowedTotal prometheus.Counter
	loansReturnedTotal prometheus.Counter
	loansOverdueTotal  prometheus.Counter
}

// New 创建并注册指标集合
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "library_http_requests_total",
				Help: "HTTP请求总数",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "library_http_request_duration_seconds",
				Help:    "HTTP请求耗时分布",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		loansBorrowedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "library_loans_borrowed_total",
			Help: "成功借出的总次数",
		}),
		loansReturnedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "library_loans_returned_total",
			Help: "成功归还的总次数",
		}),
		loansOverdueTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "library_loans_overdue_total",
			Help: "被标记为逾期的借阅总次数",
		}),
	}

	registry.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.loansBorrowedTotal,
		m.loansReturnedTotal,
		m.loansOverdueTotal,
	)

	return m
}

// GinMiddleware 请求指标中间件
// 说明：使用c.FullPath()而非c.Request.URL.Path作为path标签，
// 防止路径参数（如/books/123）导致标签基数爆炸
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		m.httpRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.httpRequestDuration.WithLabelValues(c.Request.Method, path).
			Observe(time.Since(start).Seconds())
	}
}

// Handler 返回/metrics端点的HTTP处理器
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// LoanBorrowed 记录一次成功借出
func (m *Metrics) LoanBorrowed() { m.loansBorrowedTotal.Inc() }

// LoanReturned 记录一次成功归还
func (m *Metrics) LoanReturned() { m.loansReturnedTotal.Inc() }

// LoanOverdue 记录一次逾期标记
func (m *Metrics) LoanOverdue() { m.loansOverdueTotal.Inc() }
