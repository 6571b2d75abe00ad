// internal/api/handlers.go
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Corphon/AIslandInferno/internal/config"
	apperrors "github.com/Corphon/AIslandInferno/internal/errors"
	"github.com/Corphon/AIslandInferno/internal/services"
)

// Handler 处理API请求
type Handler struct {
	GameService   *services.GameService   // 游戏状态机
	ExportService *services.ExportService // 导出服务
	LLMService    *services.LLMService    // LLM提供商管理
}

// NewHandler 创建API处理器
func NewHandler(gameService *services.GameService, exportService *services.ExportService, llmService *services.LLMService) *Handler {
	h := &Handler{
		GameService:   gameService,
		ExportService: exportService,
		LLMService:    llmService,
	}
	// 每次状态转移成功后推送给所有观众
	gameService.Subscribe(wsManager.BroadcastState)
	return h
}

// APIResponse 标准API响应格式
type APIResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *APIError   `json:"error,omitempty"`
	Message   string      `json:"message,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// APIError 标准错误格式
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondSuccess 成功响应
func respondSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, &APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
	})
}

// respondError 按错误类型映射HTTP状态码
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := "PROCESSING_ERROR"

	switch {
	case apperrors.IsValidationError(err):
		status = http.StatusBadRequest
		code = "VALIDATION_ERROR"
	case apperrors.IsNotFoundError(err):
		status = http.StatusNotFound
		code = "NOT_FOUND"
	case apperrors.IsConflictError(err):
		status = http.StatusConflict
		code = "CONFLICT"
	}

	c.JSON(status, &APIResponse{
		Success:   false,
		Error:     &APIError{Code: code, Message: err.Error()},
		Timestamp: time.Now(),
	})
}

// ------------------------------------------------
// 游戏操作
// ------------------------------------------------

// GetGameState 返回当前游戏快照
func (h *Handler) GetGameState(c *gin.Context) {
	respondSuccess(c, h.GameService.State())
}

// StartGame 开始游戏
func (h *Handler) StartGame(c *gin.Context) {
	state, err := h.GameService.Start()
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, state)
}

// AdvanceGame 生成下一条事件
func (h *Handler) AdvanceGame(c *gin.Context) {
	state, err := h.GameService.Advance(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, state)
}

// TriggerCeremony 触发最终仪式
func (h *Handler) TriggerCeremony(c *gin.Context) {
	state, err := h.GameService.TriggerCeremony(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, state)
}

// RestartGame 重新开局
func (h *Handler) RestartGame(c *gin.Context) {
	respondSuccess(c, h.GameService.Restart())
}

// GetEvents 返回完整事件日志
func (h *Handler) GetEvents(c *gin.Context) {
	state := h.GameService.State()
	respondSuccess(c, gin.H{
		"events": state.Events,
		"count":  len(state.Events),
	})
}

// GetAffinities 返回当前好感度表
func (h *Handler) GetAffinities(c *gin.Context) {
	state := h.GameService.State()
	respondSuccess(c, gin.H{
		"affinities": state.Affinities,
		"day":        state.Day,
		"timeOfDay":  state.TimeOfDay,
	})
}

// AutoPlayRequest 自动播放开关请求
type AutoPlayRequest struct {
	Enabled bool `json:"enabled"`
}

// SetAutoPlay 开启或关闭自动播放
func (h *Handler) SetAutoPlay(c *gin.Context) {
	var req AutoPlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.NewValidationError("リクエストの解析に失敗", err))
		return
	}

	if req.Enabled {
		h.GameService.StartAutoPlay()
	} else {
		h.GameService.StopAutoPlay()
	}
	respondSuccess(c, gin.H{"autoPlay": h.GameService.AutoPlaying()})
}

// DirectorRequest 生成器模式切换请求
type DirectorRequest struct {
	Mode string `json:"mode"` // rules 或 ai
}

// SetDirector 切换事件生成器模式
func (h *Handler) SetDirector(c *gin.Context) {
	var req DirectorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.NewValidationError("リクエストの解析に失敗", err))
		return
	}

	if err := h.GameService.SetDirectorMode(req.Mode); err != nil {
		respondError(c, err)
		return
	}
	if err := config.UpdateDirector(req.Mode); err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, gin.H{"director": req.Mode})
}

// ------------------------------------------------
// 导出
// ------------------------------------------------

// ExportGame 把当前快照导出为JSON文件
func (h *Handler) ExportGame(c *gin.Context) {
	record, err := h.ExportService.ExportJSON(h.GameService.State())
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, record)
}

// GetTranscript 返回台本文本
func (h *Handler) GetTranscript(c *gin.Context) {
	transcript := h.ExportService.BuildTranscript(h.GameService.State())
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(transcript))
}

// ListExports 历史导出文件列表
func (h *Handler) ListExports(c *gin.Context) {
	names, err := h.ExportService.ListExports()
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, gin.H{"exports": names})
}

// ------------------------------------------------
// LLM配置
// ------------------------------------------------

// GetLLMStatus 返回LLM提供商状态
func (h *Handler) GetLLMStatus(c *gin.Context) {
	ready, status := h.LLMService.GetProviderStatus()
	respondSuccess(c, gin.H{
		"ready":    ready,
		"status":   status,
		"provider": h.LLMService.GetProviderName(),
	})
}

// LLMConfigRequest LLM配置更新请求
type LLMConfigRequest struct {
	Provider string            `json:"provider"`
	Config   map[string]string `json:"config"`
}

// UpdateLLMConfig 更新LLM提供商配置
func (h *Handler) UpdateLLMConfig(c *gin.Context) {
	var req LLMConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.NewValidationError("リクエストの解析に失敗", err))
		return
	}
	if req.Provider == "" {
		respondError(c, apperrors.NewValidationError("providerは必須", nil))
		return
	}

	if err := h.LLMService.UpdateProvider(req.Provider, req.Config); err != nil {
		respondError(c, err)
		return
	}
	if err := config.UpdateLLMConfig(req.Provider, req.Config); err != nil {
		respondError(c, err)
		return
	}

	ready, status := h.LLMService.GetProviderStatus()
	respondSuccess(c, gin.H{"ready": ready, "status": status, "provider": req.Provider})
}

// ------------------------------------------------
// 健康检查
// ------------------------------------------------

// HealthCheck 服务健康状态
func (h *Handler) HealthCheck(c *gin.Context) {
	state := h.GameService.State()
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"phase":     state.Phase,
		"day":       state.Day,
		"viewers":   wsManager.ClientCount(),
		"director":  h.GameService.DirectorMode(),
		"llm_ready": h.LLMService.IsReady(),
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
