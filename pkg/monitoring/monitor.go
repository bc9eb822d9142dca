package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	SubmissionCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activity_submissions_total",
			Help: "Activity submissions by completion status",
		},
		[]string{"status"},
	)

	SimilarityScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "html_similarity_score",
			Help:    "Similarity between expected and submitted HTML",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	AuraBotQuestions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aurabot_questions_total",
			Help: "Assistant questions by result",
		},
		[]string{"result"},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(SubmissionCounter)
		prometheus.MustRegister(SimilarityScore)
		prometheus.MustRegister(AuraBotQuestions)
	})
}

func ObserveSubmission(status string, score int) {
	SubmissionCounter.WithLabelValues(status).Inc()
	SimilarityScore.Observe(float64(score))
}

func ObserveQuestion(result string) {
	AuraBotQuestions.WithLabelValues(result).Inc()
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
