package main

import (
	"embed"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/brandboost-ai/brandboost/common"
	"github.com/brandboost-ai/brandboost/common/config"
	"github.com/brandboost-ai/brandboost/common/logger"
	"github.com/brandboost-ai/brandboost/gemini"
	"github.com/brandboost-ai/brandboost/middleware"
	"github.com/brandboost-ai/brandboost/router"
	"github.com/brandboost-ai/brandboost/service"
)

//go:embed web/*
var buildFS embed.FS

func monitorGoroutines() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		count := runtime.NumGoroutine()

		if count > 5000 {
			logger.SysError(fmt.Sprintf("high goroutine count detected: %d", count))
		} else if count > 2000 {
			logger.SysLog(fmt.Sprintf("goroutine count elevated: %d", count))
		} else if config.DebugEnabled {
			logger.SysLog(fmt.Sprintf("goroutine count: %d", count))
		}

		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		if config.DebugEnabled {
			logger.SysLog(fmt.Sprintf("memory: Alloc=%dMB, TotalAlloc=%dMB, Sys=%dMB, NumGC=%d",
				m.Alloc/1024/1024, m.TotalAlloc/1024/1024, m.Sys/1024/1024, m.NumGC))
		}
	}
}

func setupMonitoringEndpoints(server *gin.Engine) {
	server.GET("/api/monitor/health", func(c *gin.Context) {
		count := runtime.NumGoroutine()
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		c.JSON(200, gin.H{
			"status":     "ok",
			"goroutines": count,
			"inflight":   service.GenerationGuard.Len(),
			"memory": gin.H{
				"alloc_mb":       m.Alloc / 1024 / 1024,
				"total_alloc_mb": m.TotalAlloc / 1024 / 1024,
				"sys_mb":         m.Sys / 1024 / 1024,
				"num_gc":         m.NumGC,
			},
		})
	})

	logger.SysLog("monitoring endpoints enabled at /api/monitor/health")
}

func main() {
	common.Init()
	logger.SetupLogger()
	logger.SysLog(fmt.Sprintf("BrandBoost %s started", common.Version))
	if os.Getenv("GIN_MODE") != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	if config.DebugEnabled {
		logger.SysLog("running in debug mode")
	}

	if config.GeminiAPIKey == "" {
		logger.SysError("GEMINI_API_KEY is not set, generation requests will fail")
	}
	if !gemini.IsImageModel(config.GeminiModel) {
		logger.SysLog(fmt.Sprintf("model %s is not a known image generation model, generations may return text only", config.GeminiModel))
	}

	service.StartInflightSweeper()
	go monitorGoroutines()

	// Initialize HTTP server
	server := gin.New()
	server.Use(gin.Recovery())
	server.Use(middleware.RequestId())
	middleware.SetUpLogger(server)
	// Initialize session store
	store := cookie.NewStore([]byte(config.SessionSecret))
	server.Use(sessions.Sessions("session", store))

	router.SetRouter(server, buildFS)

	setupMonitoringEndpoints(server)
	var port = os.Getenv("PORT")
	if port == "" {
		port = strconv.Itoa(*common.Port)
	}
	err := server.Run(":" + port)
	if err != nil {
		logger.FatalLog("failed to start HTTP server: " + err.Error())
	}
}
