// internal/services/export_service.go
package services

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Corphon/AIslandInferno/internal/errors"
	"github.com/Corphon/AIslandInferno/internal/models"
	"github.com/Corphon/AIslandInferno/internal/storage"
)

// ExportService 节目记录的导出
// JSON导出完整快照，文本导出人类可读的台本
type ExportService struct {
	storage *storage.FileStorage
}

// NewExportService 创建导出服务
func NewExportService(fileStorage *storage.FileStorage) *ExportService {
	return &ExportService{storage: fileStorage}
}

// ExportRecord 一次导出的元信息
type ExportRecord struct {
	FileName   string    `json:"fileName"`
	Format     string    `json:"format"`
	EventCount int       `json:"eventCount"`
	ExportedAt time.Time `json:"exportedAt"`
}

// transcriptDocument JSON导出的完整结构
type transcriptDocument struct {
	ExportedAt   time.Time            `json:"exportedAt"`
	Phase        models.GamePhase     `json:"phase"`
	Day          int                  `json:"day"`
	Characters   []models.Character   `json:"characters"`
	Affinities   map[string]int       `json:"affinities"`
	Events       []models.GameEvent   `json:"events"`
	FinalCouples []models.FinalCouple `json:"finalCouples,omitempty"`
}

// ExportJSON 把当前快照存成JSON文件，返回导出记录
func (s *ExportService) ExportJSON(state *models.GameState) (*ExportRecord, error) {
	if len(state.Events) == 0 {
		return nil, errors.NewValidationError("エクスポートできるイベントがない", nil)
	}

	now := time.Now()
	fileName := fmt.Sprintf("transcript_%s.json", now.Format("20060102_150405"))
	doc := transcriptDocument{
		ExportedAt:   now,
		Phase:        state.Phase,
		Day:          state.Day,
		Characters:   state.Characters,
		Affinities:   state.Affinities,
		Events:       state.Events,
		FinalCouples: state.FinalCouples,
	}

	if err := s.storage.SaveJSON(filepath.Join("exports", fileName), doc); err != nil {
		return nil, errors.NewProcessingError("エクスポートの保存に失敗", err)
	}

	return &ExportRecord{
		FileName:   fileName,
		Format:     "json",
		EventCount: len(state.Events),
		ExportedAt: now,
	}, nil
}

// BuildTranscript 把事件日志渲染成台本文本
func (s *ExportService) BuildTranscript(state *models.GameState) string {
	var sb strings.Builder

	sb.WriteString("AI Island インフェルノ\n")
	sb.WriteString(strings.Repeat("=", 40) + "\n\n")

	nameOf := func(id string) string {
		if c := state.CharacterByID(id); c != nil {
			return c.Name
		}
		return id
	}

	lastDay := 0
	var lastTime models.TimeOfDay
	for _, e := range state.Events {
		if e.Day != lastDay || e.TimeOfDay != lastTime {
			fmt.Fprintf(&sb, "--- %s %s ---\n\n", models.DayLabel(e.Day), models.TimeLabel(e.TimeOfDay))
			lastDay, lastTime = e.Day, e.TimeOfDay
		}

		fmt.Fprintf(&sb, "%s【%s】%s\n", e.Location.Emoji(), e.Type.Label(), e.Title)
		sb.WriteString(e.Narrative + "\n")

		for _, line := range e.Dialogue {
			fmt.Fprintf(&sb, "  %s「%s」\n", nameOf(line.CharacterID), line.Text)
		}
		for _, thought := range e.InnerThoughts {
			fmt.Fprintf(&sb, "  （%s: %s）\n", nameOf(thought.CharacterID), thought.Thought)
		}
		for _, change := range e.AffinityChanges {
			fmt.Fprintf(&sb, "  %s → %s: %+d（%s）\n", nameOf(change.FromID), nameOf(change.ToID), change.Change, change.Reason)
		}
		sb.WriteString("\n")
	}

	if len(state.FinalCouples) > 0 {
		sb.WriteString(strings.Repeat("=", 40) + "\n")
		sb.WriteString("最終カップル\n")
		for _, couple := range state.FinalCouples {
			fmt.Fprintf(&sb, "  %s ❤ %s\n", nameOf(couple.Person1ID), nameOf(couple.Person2ID))
		}
	}

	return sb.String()
}

// ListExports 历史导出文件名列表
func (s *ExportService) ListExports() ([]string, error) {
	names, err := s.storage.List("exports", ".json")
	if err != nil {
		return nil, errors.NewProcessingError("エクスポート一覧の取得に失敗", err)
	}
	return names, nil
}
