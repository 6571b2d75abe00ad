// internal/services/ai_director_service.go
package services

import (
	"context"
	"fmt"

	"github.com/Corphon/AIslandInferno/internal/errors"
	"github.com/Corphon/AIslandInferno/internal/models"
	"github.com/Corphon/AIslandInferno/internal/utils"
)

// 系统提示词，要求只输出JSON
const directorSystemPrompt = "あなたはリアリティ恋愛バラエティ番組のシナリオライターです。必ず指定されたJSONフォーマットのみで回答してください。"

// AIDirectorService LLM驱动的事件生成器
// 提示词携带完整游戏状态，返回的JSON经过校验后才会被状态机接受
type AIDirectorService struct {
	llmService *LLMService
	logger     *utils.Logger
}

// NewAIDirectorService 创建LLM引擎
func NewAIDirectorService(llmService *LLMService) *AIDirectorService {
	return &AIDirectorService{
		llmService: llmService,
		logger:     utils.GetLogger(),
	}
}

// IsReady LLM提供商是否就绪
func (s *AIDirectorService) IsReady() bool {
	return s.llmService != nil && s.llmService.IsReady()
}

// GenerateEvent 生成一条事件；paradise_invite被接受时追加生成约会事件
func (s *AIDirectorService) GenerateEvent(ctx context.Context, req *models.GenerateEventRequest) (*models.EventResult, *models.EventResult, error) {
	if !s.IsReady() {
		return nil, nil, errors.NewProcessingError("LLM提供商未就绪", nil)
	}

	prompt := buildEventPrompt(req)

	var result models.EventResult
	if err := s.llmService.CreateStructuredCompletion(ctx, prompt, directorSystemPrompt, &result); err != nil {
		return nil, nil, errors.NewProcessingError("LLM生成失败", err)
	}

	if err := s.validateEventResult(&result, req.Characters); err != nil {
		return nil, nil, err
	}

	// 被接受的邀请触发第二次生成；失败时降级为只保留邀请事件本身
	var paradiseEvent *models.EventResult
	if result.EventType == models.EventParadiseInvite && result.ParadiseInvite != nil && result.ParadiseInvite.Accepted {
		invite := result.ParadiseInvite
		inviter := findCharacter(req.Characters, invite.InviterID)
		invitee := findCharacter(req.Characters, invite.InviteeID)
		if inviter != nil && invitee != nil {
			affinityVal := req.Affinities.Get(inviter.ID, invitee.ID)
			dateEvent, err := s.generateParadiseDate(ctx, *inviter, *invitee, affinityVal, req.Characters)
			if err != nil {
				s.logger.Warnf("パラダイスデートの生成に失敗、招待のみ適用: %v", err)
			} else {
				paradiseEvent = dateEvent
			}
		}
	}

	return &result, paradiseEvent, nil
}

// generateParadiseDate Paradise约会的嵌套生成
func (s *AIDirectorService) generateParadiseDate(ctx context.Context, inviter, invitee models.Character, affinityVal int, characters []models.Character) (*models.EventResult, error) {
	prompt := buildParadiseDatePrompt(inviter, invitee, affinityVal)

	var result models.EventResult
	if err := s.llmService.CreateStructuredCompletion(ctx, prompt, directorSystemPrompt, &result); err != nil {
		return nil, errors.NewProcessingError("LLM生成失败", err)
	}

	result.EventType = models.EventParadiseDate
	result.Location = models.LocationParadise
	result.Participants = []string{inviter.ID, invitee.ID}

	if err := s.validateEventResult(&result, characters); err != nil {
		return nil, err
	}
	return &result, nil
}

// GenerateCeremony 生成最终仪式并校验配对
func (s *AIDirectorService) GenerateCeremony(ctx context.Context, req *models.GenerateCeremonyRequest) (*models.CeremonyResult, error) {
	if !s.IsReady() {
		return nil, errors.NewProcessingError("LLM提供商未就绪", nil)
	}

	prompt := buildCeremonyPrompt(req)

	var result models.CeremonyResult
	if err := s.llmService.CreateStructuredCompletion(ctx, prompt, directorSystemPrompt, &result); err != nil {
		return nil, errors.NewProcessingError("LLM生成失败", err)
	}

	if err := s.validateCeremonyResult(&result, req.Characters); err != nil {
		return nil, err
	}
	return &result, nil
}

// validateEventResult 拒绝引用不存在角色或结构不合法的载荷
func (s *AIDirectorService) validateEventResult(result *models.EventResult, characters []models.Character) error {
	known := make(map[string]bool, len(characters))
	for _, c := range characters {
		known[c.ID] = true
	}

	if len(result.Participants) < 2 || len(result.Participants) > 4 {
		return errors.NewValidationError(fmt.Sprintf("参与者数量不合法: %d", len(result.Participants)), nil)
	}
	participants := make(map[string]bool, len(result.Participants))
	for _, id := range result.Participants {
		if !known[id] {
			return errors.NewValidationError("未知のキャラクターID: "+id, nil)
		}
		participants[id] = true
	}

	if result.Title == "" || result.Narrative == "" {
		return errors.NewValidationError("タイトルまたは本文が欠落", nil)
	}

	for _, line := range result.Dialogue {
		if !known[line.CharacterID] {
			return errors.NewValidationError("未知のキャラクターID: "+line.CharacterID, nil)
		}
	}
	for _, thought := range result.InnerThoughts {
		if !known[thought.CharacterID] {
			return errors.NewValidationError("未知のキャラクターID: "+thought.CharacterID, nil)
		}
	}

	for _, change := range result.AffinityChanges {
		if !participants[change.FromID] || !participants[change.ToID] {
			return errors.NewValidationError("好感度変化が参加者以外を参照", nil)
		}
		if change.Change < -15 || change.Change > 25 {
			return errors.NewValidationError(fmt.Sprintf("変化量が範囲外: %d", change.Change), nil)
		}
	}

	if invite := result.ParadiseInvite; invite != nil {
		if !known[invite.InviterID] || !known[invite.InviteeID] {
			return errors.NewValidationError("招待が未知のキャラクターを参照", nil)
		}
	}

	return nil
}

// validateCeremonyResult 仪式配对的校验：角色存在且不被重复使用
func (s *AIDirectorService) validateCeremonyResult(result *models.CeremonyResult, characters []models.Character) error {
	known := make(map[string]bool, len(characters))
	for _, c := range characters {
		known[c.ID] = true
	}

	used := make(map[string]bool)
	for _, couple := range result.Couples {
		if !known[couple.Person1ID] || !known[couple.Person2ID] {
			return errors.NewValidationError("未知のキャラクターIDを含むカップル", nil)
		}
		if used[couple.Person1ID] || used[couple.Person2ID] {
			return errors.NewValidationError("同じキャラクターが複数のカップルに出現", nil)
		}
		used[couple.Person1ID] = true
		used[couple.Person2ID] = true
	}

	for _, id := range result.Uncoupled {
		if !known[id] {
			return errors.NewValidationError("未知のキャラクターID: "+id, nil)
		}
	}

	return nil
}

// findCharacter 按ID查找角色
func findCharacter(characters []models.Character, id string) *models.Character {
	for i := range characters {
		if characters[i].ID == id {
			return &characters[i]
		}
	}
	return nil
}
