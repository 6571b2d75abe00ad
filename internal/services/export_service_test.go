// internal/services/export_service_test.go
package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Corphon/AIslandInferno/internal/cast"
	"github.com/Corphon/AIslandInferno/internal/models"
	"github.com/Corphon/AIslandInferno/internal/storage"
)

func exportTestState() *models.GameState {
	return &models.GameState{
		Phase:      models.PhaseResults,
		Day:        4,
		TimeOfDay:  models.TimeMorning,
		Characters: cast.InitialCharacters(),
		Affinities: models.AffinityTable{"kenji|yuki": 80},
		Events: []models.GameEvent{
			{
				ID:        "evt1",
				Type:      models.EventConversation,
				Day:       1,
				TimeOfDay: models.TimeMorning,
				Location:  models.LocationInferno,
				Title:     "最初の会話",
				Narrative: "二人は初めて言葉を交わした。",
				Dialogue: []models.DialogueLine{
					{CharacterID: "kenji", Text: "よろしく。", Emotion: models.EmotionDefault},
				},
				AffinityChanges: []models.AffinityChange{
					{FromID: "kenji", ToID: "yuki", Change: 5, Reason: "会話で距離が縮まった"},
				},
				Timestamp: time.Now(),
			},
		},
		FinalCouples: []models.FinalCouple{{Person1ID: "kenji", Person2ID: "yuki"}},
	}
}

// TestBuildTranscript 测试台本渲染
func TestBuildTranscript(t *testing.T) {
	s := NewExportService(nil)
	transcript := s.BuildTranscript(exportTestState())

	for _, want := range []string{
		"DAY 1",
		"最初の会話",
		"よろしく。",
		"最終カップル",
		"Kenji",
	} {
		if !strings.Contains(transcript, want) {
			t.Errorf("台本应该包含 %q", want)
		}
	}
}

// TestExportJSON 测试JSON导出落盘
func TestExportJSON(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "export_test_*")
	if err != nil {
		t.Fatalf("创建临时目录失败: %v", err)
	}
	defer os.RemoveAll(tempDir)

	fileStorage, err := storage.NewFileStorage(tempDir)
	if err != nil {
		t.Fatalf("初始化文件存储失败: %v", err)
	}

	s := NewExportService(fileStorage)
	record, err := s.ExportJSON(exportTestState())
	if err != nil {
		t.Fatalf("导出失败: %v", err)
	}
	if record.EventCount != 1 {
		t.Errorf("导出记录的事件数不正确: %d", record.EventCount)
	}

	if _, err := os.Stat(filepath.Join(tempDir, "exports", record.FileName)); err != nil {
		t.Errorf("导出文件应该存在: %v", err)
	}

	names, err := s.ListExports()
	if err != nil {
		t.Fatalf("列出导出失败: %v", err)
	}
	if len(names) != 1 {
		t.Errorf("应该有1个导出文件，实际: %d", len(names))
	}
}

// TestExportJSONEmpty 测试空日志拒绝导出
func TestExportJSONEmpty(t *testing.T) {
	s := NewExportService(nil)

	state := exportTestState()
	state.Events = nil

	if _, err := s.ExportJSON(state); err == nil {
		t.Error("没有事件时导出应该失败")
	}
}
