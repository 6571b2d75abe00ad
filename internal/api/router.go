// internal/api/router.go
package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Corphon/AIslandInferno/internal/config"
	"github.com/Corphon/AIslandInferno/internal/di"
	"github.com/Corphon/AIslandInferno/internal/services"
)

// SetupRouter 配置HTTP路由
func SetupRouter() (*gin.Engine, error) {
	cfg := config.GetCurrentConfig()

	// 只从容器获取服务，不再创建新实例
	container := di.GetContainer()

	gameService, ok := container.Get("game").(*services.GameService)
	if !ok {
		return nil, fmt.Errorf("ゲームサービスが初期化されていない")
	}

	exportService, ok := container.Get("export").(*services.ExportService)
	if !ok {
		return nil, fmt.Errorf("エクスポートサービスが初期化されていない")
	}

	llmService, ok := container.Get("llm").(*services.LLMService)
	if !ok {
		return nil, fmt.Errorf("LLMサービスが初期化されていない")
	}

	handler := NewHandler(gameService, exportService, llmService)

	if !cfg.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	// 启用CORS
	r.Use(corsMiddleware())

	r.GET("/health", handler.HealthCheck)

	// WebSocket 直播
	r.GET("/ws/game", handler.GameWebSocket)

	// ===============================
	// API路由组
	// ===============================
	api := r.Group("/api")
	{
		gameGroup := api.Group("/game")
		{
			gameGroup.GET("", handler.GetGameState)
			gameGroup.POST("/start", handler.StartGame)
			gameGroup.POST("/advance", handler.AdvanceGame)
			gameGroup.POST("/ceremony", handler.TriggerCeremony)
			gameGroup.POST("/restart", handler.RestartGame)
			gameGroup.GET("/events", handler.GetEvents)
			gameGroup.GET("/affinities", handler.GetAffinities)
			gameGroup.POST("/autoplay", handler.SetAutoPlay)
			gameGroup.PUT("/director", handler.SetDirector)

			// 导出相关路由
			exportGroup := gameGroup.Group("/export")
			{
				exportGroup.POST("", handler.ExportGame)
				exportGroup.GET("", handler.ListExports)
				exportGroup.GET("/transcript", handler.GetTranscript)
			}
		}

		llmGroup := api.Group("/llm")
		{
			llmGroup.GET("/status", handler.GetLLMStatus)
			llmGroup.PUT("/config", handler.UpdateLLMConfig)
		}
	}

	return r, nil
}

// corsMiddleware 实现跨域资源共享
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
