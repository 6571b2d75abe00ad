// internal/services/ai_director_service_test.go
package services

import (
	"context"
	"strings"
	"testing"

	"github.com/Corphon/AIslandInferno/internal/cast"
	"github.com/Corphon/AIslandInferno/internal/errors"
	"github.com/Corphon/AIslandInferno/internal/models"
)

func validEventResult() *models.EventResult {
	return &models.EventResult{
		Title:        "砂浜の会話",
		EventType:    models.EventConversation,
		Location:     models.LocationInferno,
		Participants: []string{"kenji", "yuki"},
		Narrative:    "二人は夕暮れの砂浜で語り合った。",
		Dialogue: []models.DialogueLine{
			{CharacterID: "kenji", Text: "少し歩かないか。", Emotion: models.EmotionDefault},
		},
		AffinityChanges: []models.AffinityChange{
			{FromID: "kenji", ToID: "yuki", Change: 7, Reason: "会話で距離が縮まった"},
		},
	}
}

// TestValidateEventResult 测试LLM载荷的校验规则
func TestValidateEventResult(t *testing.T) {
	s := NewAIDirectorService(NewEmptyLLMService())
	roster := cast.InitialCharacters()

	if err := s.validateEventResult(validEventResult(), roster); err != nil {
		t.Fatalf("合法载荷不应被拒绝: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*models.EventResult)
	}{
		{
			name: "未知参与者",
			mutate: func(r *models.EventResult) {
				r.Participants = []string{"kenji", "ghost"}
			},
		},
		{
			name: "参与者过少",
			mutate: func(r *models.EventResult) {
				r.Participants = []string{"kenji"}
			},
		},
		{
			name: "参与者过多",
			mutate: func(r *models.EventResult) {
				r.Participants = []string{"kenji", "ryu", "takeshi", "yuki", "hana"}
			},
		},
		{
			name: "缺少标题",
			mutate: func(r *models.EventResult) {
				r.Title = ""
			},
		},
		{
			name: "台词引用未知角色",
			mutate: func(r *models.EventResult) {
				r.Dialogue[0].CharacterID = "ghost"
			},
		},
		{
			name: "好感度变化引用非参与者",
			mutate: func(r *models.EventResult) {
				r.AffinityChanges[0].ToID = "hana"
			},
		},
		{
			name: "变化量超出范围",
			mutate: func(r *models.EventResult) {
				r.AffinityChanges[0].Change = 50
			},
		},
		{
			name: "邀请引用未知角色",
			mutate: func(r *models.EventResult) {
				r.ParadiseInvite = &models.ParadiseInvite{InviterID: "ghost", InviteeID: "yuki"}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validEventResult()
			tt.mutate(result)

			err := s.validateEventResult(result, roster)
			if err == nil {
				t.Fatal("不合法的载荷应该被拒绝")
			}
			if !errors.IsValidationError(err) {
				t.Errorf("校验失败应该返回验证错误，实际: %v", err)
			}
		})
	}
}

// TestValidateCeremonyResult 测试仪式载荷的校验
func TestValidateCeremonyResult(t *testing.T) {
	s := NewAIDirectorService(NewEmptyLLMService())
	roster := cast.InitialCharacters()

	valid := &models.CeremonyResult{
		Couples:   []models.FinalCouple{{Person1ID: "kenji", Person2ID: "yuki"}},
		Uncoupled: []string{"ryu", "takeshi", "hana", "mia"},
	}
	if err := s.validateCeremonyResult(valid, roster); err != nil {
		t.Fatalf("合法仪式载荷不应被拒绝: %v", err)
	}

	duplicated := &models.CeremonyResult{
		Couples: []models.FinalCouple{
			{Person1ID: "kenji", Person2ID: "yuki"},
			{Person1ID: "kenji", Person2ID: "hana"},
		},
	}
	if err := s.validateCeremonyResult(duplicated, roster); !errors.IsValidationError(err) {
		t.Errorf("同一角色出现在两对中应该被拒绝，实际: %v", err)
	}

	unknown := &models.CeremonyResult{
		Couples: []models.FinalCouple{{Person1ID: "ghost", Person2ID: "yuki"}},
	}
	if err := s.validateCeremonyResult(unknown, roster); !errors.IsValidationError(err) {
		t.Errorf("未知角色的配对应该被拒绝，实际: %v", err)
	}
}

// TestGenerateEventNotReady 测试未就绪时直接失败
func TestGenerateEventNotReady(t *testing.T) {
	s := NewAIDirectorService(NewEmptyLLMService())

	_, _, err := s.GenerateEvent(context.Background(), testRequest())
	if err == nil {
		t.Fatal("LLM未就绪时应该返回错误")
	}
}

// TestBuildEventPrompt 测试事件提示词包含必要的上下文
func TestBuildEventPrompt(t *testing.T) {
	req := testRequest()
	req.Day = 2
	req.TimeOfDay = models.TimeAfternoon
	req.Affinities = models.AffinityTable{
		models.AffinityKey("kenji", "yuki"): 85,
	}
	req.ParadisePairs = [][]string{{"kenji", "yuki"}}

	prompt := buildEventPrompt(req)

	for _, want := range []string{
		"2日目の午後",
		"健二",              // 角色名
		"深く惹かれている",        // 85的档位描述
		"まだイベントなし",        // 空事件日志
		"paradise_invite", // JSON格式说明
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("提示词应该包含 %q", want)
		}
	}

	// 职业在Inferno阶段保密，只给提示
	if strings.Contains(prompt, "建築家") {
		t.Error("事件提示词不应泄露具体职业")
	}
}

// TestBuildParadiseDatePrompt 测试约会提示词公开职业
func TestBuildParadiseDatePrompt(t *testing.T) {
	roster := cast.InitialCharacters()
	var kenji, yuki models.Character
	for _, c := range roster {
		if c.ID == "kenji" {
			kenji = c
		}
		if c.ID == "yuki" {
			yuki = c
		}
	}

	prompt := buildParadiseDatePrompt(kenji, yuki, 70)

	if !strings.Contains(prompt, kenji.Occupation) {
		t.Error("约会提示词应该包含邀请方的职业")
	}
	if !strings.Contains(prompt, yuki.Occupation) {
		t.Error("约会提示词应该包含被邀请方的职业")
	}
	if !strings.Contains(prompt, "70/100") {
		t.Error("约会提示词应该包含当前好感度")
	}
}

// TestFormatRecentEvents 测试事件摘要的截断
func TestFormatRecentEvents(t *testing.T) {
	long := strings.Repeat("あ", 150)
	events := make([]models.GameEvent, 6)
	for i := range events {
		events[i] = models.GameEvent{Title: "イベント", Narrative: long}
	}

	formatted := formatRecentEvents(events)

	lines := strings.Split(formatted, "\n")
	if len(lines) != 4 {
		t.Errorf("应该只保留最近4条事件，实际: %d", len(lines))
	}
	for _, line := range lines {
		if len([]rune(line)) > 120 {
			t.Errorf("叙事应该被截断到100字符左右，实际行长: %d", len([]rune(line)))
		}
	}
}
