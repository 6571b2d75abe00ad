// internal/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

// 当前配置的单例实例
var (
	currentConfig *AppConfig
	configMutex   sync.RWMutex
	configFile    string
)

// 事件生成器模式
const (
	DirectorRules = "rules" // 离线规则引擎
	DirectorAI    = "ai"    // LLM生成
)

// AppConfig 包含应用程序的所有配置
type AppConfig struct {
	// 基础配置
	Port      string `json:"port"`
	DataDir   string `json:"data_dir"`
	LogDir    string `json:"log_dir"`
	DebugMode bool   `json:"debug_mode"`

	// 游戏相关配置
	Director   string `json:"director"`     // rules 或 ai
	AutoPlayMS int    `json:"auto_play_ms"` // 自动推进间隔，0表示关闭

	// LLM相关配置
	LLMProvider string            `json:"llm_provider"`
	LLMConfig   map[string]string `json:"llm_config"`
}

// Config 存储从环境变量加载的基础配置
type Config struct {
	Port            string
	AnthropicAPIKey string
	OpenAIAPIKey    string
	DataDir         string
	LogDir          string
	DebugMode       bool
	Director        string
	AutoPlayMS      int
}

// Load 从环境变量加载配置
func Load() (*Config, error) {
	// 尝试加载.env文件（可选）
	godotenv.Load()

	config := &Config{
		Port:            getEnv("PORT", "8080"),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		DataDir:         getEnvPath("DATA_DIR", "data"),
		LogDir:          getEnvPath("LOG_DIR", "logs"),
		DebugMode:       getEnvBool("DEBUG_MODE", true),
		Director:        getEnv("GAME_DIRECTOR", DirectorRules),
		AutoPlayMS:      getEnvInt("AUTO_PLAY_MS", 0),
	}

	if config.Director == DirectorAI && config.AnthropicAPIKey == "" && config.OpenAIAPIKey == "" {
		// 只记录警告，不返回错误；GameService会回退到规则引擎
		log.Println("警告: GAME_DIRECTOR=ai 但未设置API密钥，将回退到规则引擎")
	}

	return config, nil
}

// getEnv 获取环境变量，如果不存在则返回默认值
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvPath 获取环境变量表示的路径，如果不存在则返回默认值
func getEnvPath(key, defaultValue string) string {
	path := getEnv(key, defaultValue)

	// 确保目录存在
	if _, err := os.Stat(path); os.IsNotExist(err) {
		err = os.MkdirAll(path, 0755)
		if err != nil {
			fmt.Printf("警告: 创建目录失败 %s: %v\n", path, err)
		}
	}

	return path
}

// getEnvBool 获取布尔类型环境变量
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt 获取整数类型环境变量
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// InitConfig 初始化配置管理器
func InitConfig(dataDir string) error {
	configFile = filepath.Join(dataDir, "config.json")

	baseConfig, err := Load()
	if err != nil {
		return err
	}

	configMutex.Lock()
	defer configMutex.Unlock()

	provider := "anthropic"
	apiKey := baseConfig.AnthropicAPIKey
	if apiKey == "" && baseConfig.OpenAIAPIKey != "" {
		provider = "openai"
		apiKey = baseConfig.OpenAIAPIKey
	}

	currentConfig = &AppConfig{
		Port:        baseConfig.Port,
		DataDir:     baseConfig.DataDir,
		LogDir:      baseConfig.LogDir,
		DebugMode:   baseConfig.DebugMode,
		Director:    baseConfig.Director,
		AutoPlayMS:  baseConfig.AutoPlayMS,
		LLMProvider: provider,
		LLMConfig: map[string]string{
			"api_key": apiKey,
		},
	}

	// 尝试从文件加载已保存的配置
	if _, err := os.Stat(configFile); !os.IsNotExist(err) {
		data, err := os.ReadFile(configFile)
		if err == nil {
			var savedConfig AppConfig
			if json.Unmarshal(data, &savedConfig) == nil {
				// 合并配置，保留文件中的LLM与游戏设置，但使用最新的基础配置
				savedConfig.Port = baseConfig.Port
				savedConfig.DataDir = baseConfig.DataDir
				savedConfig.LogDir = baseConfig.LogDir
				savedConfig.DebugMode = baseConfig.DebugMode

				// 如果文件中没有API密钥，使用环境变量的密钥
				if savedConfig.LLMConfig != nil && savedConfig.LLMConfig["api_key"] == "" {
					savedConfig.LLMConfig["api_key"] = apiKey
				}

				currentConfig = &savedConfig
			}
		}
	}

	// 保存初始配置到文件
	return SaveConfig()
}

// GetCurrentConfig 返回当前配置的副本
func GetCurrentConfig() *AppConfig {
	configMutex.RLock()
	defer configMutex.RUnlock()

	if currentConfig == nil {
		// 紧急情况，返回一个基本配置
		baseConfig, _ := Load()
		return &AppConfig{
			Port:        baseConfig.Port,
			DataDir:     baseConfig.DataDir,
			LogDir:      baseConfig.LogDir,
			DebugMode:   baseConfig.DebugMode,
			Director:    baseConfig.Director,
			AutoPlayMS:  baseConfig.AutoPlayMS,
			LLMProvider: "anthropic",
			LLMConfig: map[string]string{
				"api_key": baseConfig.AnthropicAPIKey,
			},
		}
	}

	configCopy := *currentConfig
	return &configCopy
}

// UpdateLLMConfig 更新LLM配置
func UpdateLLMConfig(provider string, config map[string]string) error {
	configMutex.Lock()
	defer configMutex.Unlock()

	if currentConfig == nil {
		return fmt.Errorf("配置系统未初始化")
	}

	currentConfig.LLMProvider = provider
	currentConfig.LLMConfig = config

	return saveConfigLocked()
}

// UpdateDirector 切换事件生成器模式
func UpdateDirector(director string) error {
	if director != DirectorRules && director != DirectorAI {
		return fmt.Errorf("未知的生成器模式: %s", director)
	}

	configMutex.Lock()
	defer configMutex.Unlock()

	if currentConfig == nil {
		return fmt.Errorf("配置系统未初始化")
	}

	currentConfig.Director = director
	return saveConfigLocked()
}

// SaveConfig 保存当前配置到文件
func SaveConfig() error {
	return saveConfigLocked()
}

func saveConfigLocked() error {
	if currentConfig == nil {
		return fmt.Errorf("没有配置可保存")
	}

	dir := filepath.Dir(configFile)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("创建配置目录失败: %w", err)
		}
	}

	data, err := json.MarshalIndent(currentConfig, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}

	return os.WriteFile(configFile, data, 0644)
}
