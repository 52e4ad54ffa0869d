// Package api is a stub of the fin-aily REST backend. It serves generated
// fixtures over the same routes and error envelopes as the real service,
// for local runs and end-to-end tests.
package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Options configures the stub router
type Options struct {
	Fixtures *Fixtures
	// Latency is added to every /v1 request, to make debounce and
	// cancellation visible when running the client against the stub.
	Latency time.Duration
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(opts Options) *gin.Engine {
	if opts.Fixtures == nil {
		opts.Fixtures = NewFixtures()
	}

	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		abortWithError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "서버 오류가 발생했습니다.")
	}))

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "PATCH", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"}
	r.Use(cors.New(config))

	r.NoRoute(func(c *gin.Context) {
		abortWithError(c, http.StatusNotFound, "NOT_FOUND", "요청한 경로를 찾을 수 없습니다.")
	})

	h := &handlers{fixtures: opts.Fixtures}

	v1 := r.Group("/v1")
	if opts.Latency > 0 {
		v1.Use(latency(opts.Latency))
	}
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now()})
		})
		v1.GET("/tickers/search", h.searchTickers)
		v1.GET("/news/market-pulse", h.marketPulse)
		v1.GET("/news/:symbol", h.news)

		users := v1.Group("/users", h.requireBearer)
		users.GET("/me", h.me)
		users.PATCH("/me", h.updateMe)
	}
	return r
}

// latency holds the request unless the client gives up first
func latency(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		select {
		case <-time.After(d):
			c.Next()
		case <-c.Request.Context().Done():
			c.Abort()
		}
	}
}

// abortWithDetail writes the {"detail": {...}} envelope
func abortWithDetail(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": gin.H{"code": code, "message": message}})
}

// abortWithError writes the {"error": {...}} envelope used for unhandled failures
func abortWithError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": gin.H{"code": code, "message": message, "status": status}})
}
