package server

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"FitPlanner/internal/utility"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

func (s *Server) RegisterRoutes() http.Handler {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	e.Use(utility.LoggerMiddleware)

	e.GET("/health", s.healthHandler)

	// Plan generator routes
	e.GET("/plan/options", s.planOptionsHandler)
	e.POST("/plan", s.fullPlanHandler)
	e.POST("/plan/diet", s.dietPlanHandler)
	e.POST("/plan/workout", s.workoutPlanHandler)

	// Chat routes, rate limited per client IP since every message costs an upstream call
	chat := e.Group("/chat")
	chat.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(s.cfg.ChatRateLimit),
			Burst:     max(1, int(s.cfg.ChatRateLimit)),
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return utility.GetRealIP(c), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, map[string]string{"error": rateLimitMessage})
		},
	}))
	chat.POST("", s.chatHandler)
	chat.GET("/history", s.chatHistoryHandler)
	chat.DELETE("/history", s.resetChatHandler)
	chat.GET("/ws", s.chatSocketHandler)

	return e
}

// healthHandler reports process and host state plus chat relay counters.
// Host probes run concurrently; a probe that fails just leaves its section out.
func (s *Server) healthHandler(c echo.Context) error {
	runtime := map[string]interface{}{
		"uptime":     time.Since(s.startTime).Round(time.Second).String(),
		"start_time": s.startTime.Format(time.RFC3339),
	}
	response := map[string]interface{}{
		"status":  "online",
		"runtime": runtime,
		"chat": map[string]interface{}{
			"gemini_configured": s.cfg.GeminiAPIKey != "",
			"cached_replies":    s.gemini.CachedReplies(),
			"sessions":          s.sessions.Len(),
			"ws_clients":        utility.ClientCount(),
		},
	}

	g, grpCtx := errgroup.WithContext(c.Request().Context())
	var mu sync.Mutex

	g.Go(func() error {
		hInfo, err := host.InfoWithContext(grpCtx)
		if err != nil {
			return nil
		}
		mu.Lock()
		runtime["os"] = hInfo.OS
		runtime["platform"] = hInfo.Platform
		runtime["arch"] = hInfo.KernelArch
		runtime["hostname"] = hInfo.Hostname
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		cpuPercent, err := cpu.PercentWithContext(grpCtx, 0, false)
		if err != nil || len(cpuPercent) == 0 {
			return nil
		}
		mu.Lock()
		response["cpu"] = map[string]interface{}{
			"usage_percent": fmt.Sprintf("%.2f%%", cpuPercent[0]),
		}
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		v, err := mem.VirtualMemoryWithContext(grpCtx)
		if err != nil {
			return nil
		}
		mu.Lock()
		response["memory"] = map[string]interface{}{
			"total_gb":     fmt.Sprintf("%.2f GB", float64(v.Total)/1024/1024/1024),
			"used_gb":      fmt.Sprintf("%.2f GB", float64(v.Used)/1024/1024/1024),
			"used_percent": fmt.Sprintf("%.2f%%", v.UsedPercent),
		}
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		d, err := disk.UsageWithContext(grpCtx, "/")
		if err != nil {
			return nil
		}
		mu.Lock()
		response["disk"] = map[string]interface{}{
			"total_gb":     fmt.Sprintf("%.2f GB", float64(d.Total)/1024/1024/1024),
			"used_percent": fmt.Sprintf("%.2f%%", d.UsedPercent),
		}
		mu.Unlock()
		return nil
	})

	_ = g.Wait()
	return c.JSON(http.StatusOK, response)
}
