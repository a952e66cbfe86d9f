package metrics

import (
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	Requests     *prometheus.CounterVec
	PostsCreated *prometheus.CounterVec
	PostsDeleted prometheus.Counter
}

var (
	defaultMetrics *Metrics
	initOnce       sync.Once
)

// Default enregistre les compteurs une seule fois sur le registre global
func Default() *Metrics {
	initOnce.Do(func() {
		defaultMetrics = New(prometheus.DefaultRegisterer)
	})
	return defaultMetrics
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by route and status code",
			},
			[]string{"route", "code"},
		),
		PostsCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "posts_created_total",
				Help: "Total number of posts created by platform",
			},
			[]string{"platform"},
		),
		PostsDeleted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "posts_deleted_total",
				Help: "Total number of posts deleted",
			},
		),
	}

	reg.MustRegister(m.Requests)
	reg.MustRegister(m.PostsCreated)
	reg.MustRegister(m.PostsDeleted)

	return m
}

// Middleware compte chaque requête une fois la réponse écrite
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.Requests.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
