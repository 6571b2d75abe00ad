// internal/services/llm_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Corphon/AIslandInferno/internal/config"
	"github.com/Corphon/AIslandInferno/internal/llm"
	"github.com/Corphon/AIslandInferno/internal/utils"
)

var ErrLLMNotReady = errors.New("llm service not ready")

var providerDefaultModels = map[string]string{
	"anthropic": "claude-sonnet-4-5",
	"openai":    "gpt-4o",
}

// LLMService 提供统一的大语言模型调用接口
type LLMService struct {
	providerMutex sync.RWMutex
	provider      llm.Provider
	providerName  string
	isReady       bool
	readyState    string
}

// NewLLMService 根据当前配置创建LLM服务
// 没有可用的提供者配置时返回空服务而不是错误
func NewLLMService() *LLMService {
	cfg := config.GetCurrentConfig()

	if cfg.LLMProvider == "" || cfg.LLMConfig == nil || cfg.LLMConfig["api_key"] == "" {
		return NewEmptyLLMService()
	}

	service := &LLMService{}
	if err := service.UpdateProvider(cfg.LLMProvider, cfg.LLMConfig); err != nil {
		utils.GetLogger().Warnf("初始化LLM提供者失败: %v", err)
		return NewEmptyLLMService()
	}
	return service
}

// NewEmptyLLMService 创建未配置提供者的空服务
func NewEmptyLLMService() *LLMService {
	return &LLMService{
		isReady:    false,
		readyState: "未配置LLM提供者",
	}
}

// IsReady 判断服务是否可用
func (s *LLMService) IsReady() bool {
	s.providerMutex.RLock()
	defer s.providerMutex.RUnlock()
	return s.isReady
}

// GetProviderStatus 返回可用状态与描述
func (s *LLMService) GetProviderStatus() (bool, string) {
	s.providerMutex.RLock()
	defer s.providerMutex.RUnlock()
	return s.isReady, s.readyState
}

// GetProviderName 返回当前提供者名称
func (s *LLMService) GetProviderName() string {
	s.providerMutex.RLock()
	defer s.providerMutex.RUnlock()
	return s.providerName
}

// UpdateProvider 切换LLM提供者
func (s *LLMService) UpdateProvider(providerName string, providerConfig map[string]string) error {
	provider, err := llm.GetProvider(providerName, providerConfig)
	if err != nil {
		return fmt.Errorf("创建提供者失败: %w", err)
	}

	s.providerMutex.Lock()
	defer s.providerMutex.Unlock()

	s.provider = provider
	s.providerName = providerName
	s.isReady = true
	s.readyState = "就绪: " + provider.GetName()
	return nil
}

// CreateStructuredCompletion 请求LLM并把回复解析进outputSchema
// 回复会先剥离markdown围栏并截取第一个JSON对象
func (s *LLMService) CreateStructuredCompletion(ctx context.Context, prompt string, systemPrompt string, outputSchema interface{}) error {
	s.providerMutex.RLock()
	if !s.isReady || s.provider == nil {
		s.providerMutex.RUnlock()
		return fmt.Errorf("%w: %s", ErrLLMNotReady, s.readyState)
	}
	provider := s.provider
	providerName := s.providerName
	s.providerMutex.RUnlock()

	structuredSystemPrompt := systemPrompt
	if structuredSystemPrompt != "" {
		structuredSystemPrompt += "\n\n"
	}
	structuredSystemPrompt += "Return your response in valid JSON format, following the provided output schema, without adding explanations or preambles."

	req := llm.CompletionRequest{
		Prompt:       prompt,
		SystemPrompt: structuredSystemPrompt,
		Temperature:  0.7,
		Model:        providerDefaultModels[providerName],
	}

	resp, err := provider.CompleteText(ctx, req)
	if err != nil {
		return err
	}

	text := cleanJSONString(resp.Text)

	if err := json.Unmarshal([]byte(text), outputSchema); err != nil {
		return fmt.Errorf("failed to parse AI response into structured data: %w\nAI return: %s", err, text)
	}

	return nil
}

// cleanJSONString 去除围栏等噪音并截取第一个 '{' 到最后一个 '}' 之间的内容
func cleanJSONString(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return text
}
