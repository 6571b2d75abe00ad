// internal/app/app.go
package app

import (
	"fmt"
	"path/filepath"

	"github.com/Corphon/AIslandInferno/internal/config"
	"github.com/Corphon/AIslandInferno/internal/di"
	"github.com/Corphon/AIslandInferno/internal/services"
	"github.com/Corphon/AIslandInferno/internal/storage"
)

// InitServices 按依赖顺序初始化所有服务并注册到容器
// 依赖顺序：storage/llm → director → game → export
func InitServices() error {
	container := di.GetContainer()
	cfg := config.GetCurrentConfig()
	if cfg == nil {
		return fmt.Errorf("配置系统未初始化")
	}

	// 基础服务
	fileStorage, err := storage.NewFileStorage(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("初始化文件存储失败: %w", err)
	}
	container.Register("storage", fileStorage)

	// LLM不可用不阻塞启动，空服务会让状态机回退到规则引擎
	llmService := services.NewLLMService()
	container.Register("llm", llmService)

	// 事件生成器
	rulesDirector := services.NewDirectorService()
	container.Register("director_rules", rulesDirector)

	aiDirector := services.NewAIDirectorService(llmService)
	container.Register("director_ai", aiDirector)

	// 状态机
	gameConfig := &config.Config{
		Director:   cfg.Director,
		AutoPlayMS: cfg.AutoPlayMS,
	}
	gameService := services.NewGameService(rulesDirector, aiDirector, gameConfig)
	container.Register("game", gameService)

	// 导出
	exportService := services.NewExportService(fileStorage)
	container.Register("export", exportService)

	return nil
}

// RequiredDirectories 应用需要预创建的目录
func RequiredDirectories(cfg *config.Config) []string {
	return []string{
		cfg.DataDir,
		filepath.Join(cfg.DataDir, "exports"),
		cfg.LogDir,
	}
}
