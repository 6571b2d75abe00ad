// internal/services/game_service_test.go
package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/Corphon/AIslandInferno/internal/config"
	"github.com/Corphon/AIslandInferno/internal/errors"
	"github.com/Corphon/AIslandInferno/internal/models"
)

// stubDirector 返回固定载荷的测试用生成器
type stubDirector struct {
	event         *models.EventResult
	paradiseEvent *models.EventResult
	ceremony      *models.CeremonyResult
	err           error
	calls         int
	ready         bool
	started       chan struct{} // 非nil时每次生成先发信号
	release       chan struct{} // 非nil时阻塞到通道关闭
}

func (s *stubDirector) GenerateEvent(_ context.Context, _ *models.GenerateEventRequest) (*models.EventResult, *models.EventResult, error) {
	s.calls++
	if s.started != nil {
		s.started <- struct{}{}
	}
	if s.release != nil {
		<-s.release
	}
	if s.err != nil {
		return nil, nil, s.err
	}
	return s.event, s.paradiseEvent, nil
}

func (s *stubDirector) IsReady() bool {
	return s.ready
}

func (s *stubDirector) GenerateCeremony(_ context.Context, _ *models.GenerateCeremonyRequest) (*models.CeremonyResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.ceremony, nil
}

func stubEvent() *models.EventResult {
	return &models.EventResult{
		Title:        "テスト会話",
		EventType:    models.EventConversation,
		Location:     models.LocationInferno,
		Participants: []string{"kenji", "yuki"},
		Narrative:    "二人は砂浜で語り合った。",
		Dialogue: []models.DialogueLine{
			{CharacterID: "kenji", Text: "…いい眺めだな。", Emotion: models.EmotionDefault},
		},
		AffinityChanges: []models.AffinityChange{
			{FromID: "kenji", ToID: "yuki", Change: 5, Reason: "会話で距離が縮まった"},
		},
	}
}

func newTestGameService() *GameService {
	return NewGameService(NewDirectorServiceWithSeed(1), nil, &config.Config{Director: config.DirectorRules})
}

// TestGameStart 测试游戏开始的阶段转移
func TestGameStart(t *testing.T) {
	game := newTestGameService()

	if game.State().Phase != models.PhaseIntro {
		t.Fatalf("新游戏应该处于intro阶段，实际: %s", game.State().Phase)
	}

	state, err := game.Start()
	if err != nil {
		t.Fatalf("开始游戏失败: %v", err)
	}
	if state.Phase != models.PhasePlaying {
		t.Errorf("开始后应该进入playing阶段，实际: %s", state.Phase)
	}

	// 重复开始应该返回冲突错误
	if _, err := game.Start(); !errors.IsConflictError(err) {
		t.Errorf("重复开始应该返回冲突错误，实际: %v", err)
	}
}

// TestAdvanceBeforeStart 测试intro阶段不能推进
func TestAdvanceBeforeStart(t *testing.T) {
	game := newTestGameService()

	if _, err := game.Advance(context.Background()); !errors.IsConflictError(err) {
		t.Errorf("intro阶段的推进应该返回冲突错误，实际: %v", err)
	}
}

// TestAdvanceAppliesEvent 测试推进的状态变化
func TestAdvanceAppliesEvent(t *testing.T) {
	game := newTestGameService()
	if _, err := game.Start(); err != nil {
		t.Fatal(err)
	}

	before := game.State()
	baseAffinity := before.Affinities.Get("kenji", "yuki")

	state, err := game.Advance(context.Background())
	if err != nil {
		t.Fatalf("推进失败: %v", err)
	}

	if len(state.Events) != 1 {
		t.Fatalf("应该追加1条事件，实际: %d", len(state.Events))
	}
	if state.CurrentEvent == nil {
		t.Fatal("推进后应该设置当前事件")
	}
	if state.EventCount != 1 {
		t.Errorf("事件计数应该是1，实际: %d", state.EventCount)
	}

	// 旧快照保持不变
	if len(before.Events) != 0 {
		t.Error("推进不应修改之前取得的快照")
	}
	if before.Affinities.Get("kenji", "yuki") != baseAffinity {
		t.Error("推进不应修改旧快照的好感度")
	}
}

// TestAdvanceQuotaProgression 测试一天7个事件后进入第2天
func TestAdvanceQuotaProgression(t *testing.T) {
	game := newTestGameService()
	if _, err := game.Start(); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	var state *models.GameState
	var err error

	// 朝2 + 午後3 + 夜2 = 7（第1天没有Paradise邀请，约会也不占配额）
	for i := 0; i < 7; i++ {
		state, err = game.Advance(ctx)
		if err != nil {
			t.Fatalf("第%d次推进失败: %v", i+1, err)
		}
	}

	if state.Day != 2 || state.TimeOfDay != models.TimeMorning {
		t.Errorf("7个事件后应该正好进入第2天早上，实际: 第%d天 %s", state.Day, state.TimeOfDay)
	}
	if state.EventCount != 0 {
		t.Errorf("换天后事件计数应该归零，实际: %d", state.EventCount)
	}
}

// TestFullGameReachesCeremony 测试完整对局走到仪式并产出结果
func TestFullGameReachesCeremony(t *testing.T) {
	game := newTestGameService()
	if _, err := game.Start(); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	for i := 0; i < 100; i++ {
		state := game.State()
		if state.Phase != models.PhasePlaying {
			break
		}
		if _, err := game.Advance(ctx); err != nil {
			t.Fatalf("推进失败: %v", err)
		}
	}

	state := game.State()
	if state.Phase != models.PhaseCeremony {
		t.Fatalf("3天结束后应该进入仪式阶段，实际: %s（第%d天）", state.Phase, state.Day)
	}

	// 仪式阶段不能继续推进
	if _, err := game.Advance(ctx); !errors.IsConflictError(err) {
		t.Errorf("仪式阶段的推进应该返回冲突错误，实际: %v", err)
	}

	result, err := game.TriggerCeremony(ctx)
	if err != nil {
		t.Fatalf("触发仪式失败: %v", err)
	}
	if result.Phase != models.PhaseResults {
		t.Errorf("仪式后应该进入results阶段，实际: %s", result.Phase)
	}

	last := result.Events[len(result.Events)-1]
	if last.Type != models.EventCeremony {
		t.Errorf("最后一条事件应该是仪式，实际: %s", last.Type)
	}
	if last.Title != "最終カップリング" {
		t.Errorf("仪式事件的标题不正确: %s", last.Title)
	}

	// 重复触发应该返回冲突错误
	if _, err := game.TriggerCeremony(ctx); !errors.IsConflictError(err) {
		t.Errorf("重复触发仪式应该返回冲突错误，实际: %v", err)
	}
}

// TestCeremonyBeforePhase 测试playing阶段不能触发仪式
func TestCeremonyBeforePhase(t *testing.T) {
	game := newTestGameService()
	if _, err := game.Start(); err != nil {
		t.Fatal(err)
	}

	if _, err := game.TriggerCeremony(context.Background()); !errors.IsConflictError(err) {
		t.Errorf("playing阶段触发仪式应该返回冲突错误，实际: %v", err)
	}
}

// TestAdvanceAppliesStubPayload 测试生成器载荷的各项效果被准确应用
func TestAdvanceAppliesStubPayload(t *testing.T) {
	stub := &stubDirector{event: stubEvent()}
	game := NewGameService(stub, nil, &config.Config{Director: config.DirectorRules})
	if _, err := game.Start(); err != nil {
		t.Fatal(err)
	}

	before := game.State().Affinities.Get("kenji", "yuki")

	state, err := game.Advance(context.Background())
	if err != nil {
		t.Fatalf("推进失败: %v", err)
	}

	if got := state.Affinities.Get("kenji", "yuki"); got != before+5 {
		t.Errorf("好感度应该从%d涨到%d，实际: %d", before, before+5, got)
	}
	if state.CurrentEvent.Title != "テスト会話" {
		t.Errorf("当前事件不正确: %s", state.CurrentEvent.Title)
	}
	if state.CurrentEvent.ID == "" {
		t.Error("落入日志的事件应该有ID")
	}
	if stub.calls != 1 {
		t.Errorf("生成器应该被调用1次，实际: %d", stub.calls)
	}
}

// TestAdvanceErrorLeavesStateUntouched 测试生成失败时状态不变
func TestAdvanceErrorLeavesStateUntouched(t *testing.T) {
	stub := &stubDirector{err: fmt.Errorf("生成失败")}
	game := NewGameService(stub, nil, &config.Config{Director: config.DirectorRules})
	if _, err := game.Start(); err != nil {
		t.Fatal(err)
	}

	before := game.State()

	if _, err := game.Advance(context.Background()); err == nil {
		t.Fatal("生成失败时Advance应该返回错误")
	}

	// 状态未被修改
	after := game.State()
	if len(after.Events) != len(before.Events) || after.EventCount != before.EventCount {
		t.Error("生成失败后状态不应改变")
	}
	if after.Phase != models.PhasePlaying {
		t.Errorf("生成失败后阶段不应改变，实际: %s", after.Phase)
	}
}

// TestAdvanceAIErrorPropagates 测试ai模式下LLM生成失败时错误直接返回给调用方
func TestAdvanceAIErrorPropagates(t *testing.T) {
	failing := &stubDirector{ready: true, err: fmt.Errorf("LLM生成失敗")}
	game := NewGameService(NewDirectorServiceWithSeed(1), nil, &config.Config{Director: config.DirectorAI})
	game.ai = failing

	if _, err := game.Start(); err != nil {
		t.Fatal(err)
	}

	if _, err := game.Advance(context.Background()); err == nil {
		t.Fatal("ai生成失败时Advance应该把错误返回给调用方")
	}
	if failing.calls != 1 {
		t.Errorf("ai生成器应该被调用1次，实际: %d", failing.calls)
	}

	// 不做规则引擎的补救生成，状态保持不变
	state := game.State()
	if len(state.Events) != 0 || state.EventCount != 0 {
		t.Errorf("ai生成失败后不应追加任何事件，实际: %d条", len(state.Events))
	}
	if state.Phase != models.PhasePlaying {
		t.Errorf("ai生成失败后阶段不应改变，实际: %s", state.Phase)
	}

	// 下一次推进不被单飞标记卡死
	failing.err = nil
	failing.event = stubEvent()
	if _, err := game.Advance(context.Background()); err != nil {
		t.Errorf("失败后的下一次推进应该成功，实际: %v", err)
	}
}

// TestCeremonyAIErrorPropagates 测试ai模式下仪式生成失败时错误直接返回
func TestCeremonyAIErrorPropagates(t *testing.T) {
	failing := &stubDirector{ready: true, err: fmt.Errorf("LLM生成失敗")}
	game := newTestGameService()
	game.ai = failing
	if err := game.SetDirectorMode(config.DirectorAI); err != nil {
		t.Fatal(err)
	}

	game.mu.Lock()
	game.state.Phase = models.PhaseCeremony
	game.mu.Unlock()

	if _, err := game.TriggerCeremony(context.Background()); err == nil {
		t.Fatal("ai仪式生成失败时应该返回错误")
	}

	state := game.State()
	if state.Phase != models.PhaseCeremony {
		t.Errorf("仪式生成失败后应该停留在ceremony阶段，实际: %s", state.Phase)
	}
	if len(state.FinalCouples) != 0 {
		t.Error("仪式生成失败后不应产出最终配对")
	}
}

// TestRestartDuringAdvance 测试推进途中重开时过期的提交被丢弃
func TestRestartDuringAdvance(t *testing.T) {
	stub := &stubDirector{
		event:   stubEvent(),
		started: make(chan struct{}, 2),
		release: make(chan struct{}),
	}
	game := NewGameService(stub, nil, &config.Config{Director: config.DirectorRules})
	if _, err := game.Start(); err != nil {
		t.Fatal(err)
	}

	errCh := make(chan error, 1)
	go func() {
		_, err := game.Advance(context.Background())
		errCh <- err
	}()

	// 生成开始后重开，然后放行过期的推进
	<-stub.started
	game.Restart()
	close(stub.release)

	if err := <-errCh; !errors.IsConflictError(err) {
		t.Fatalf("重开后过期的推进应该返回冲突错误，实际: %v", err)
	}

	state := game.State()
	if state.Phase != models.PhaseIntro {
		t.Errorf("重开后的快照不应被过期的推进覆盖，实际阶段: %s", state.Phase)
	}
	if len(state.Events) != 0 {
		t.Errorf("重开后事件日志应该为空，实际: %d", len(state.Events))
	}

	// 新一局不受过期推进影响
	if _, err := game.Start(); err != nil {
		t.Fatal(err)
	}
	next, err := game.Advance(context.Background())
	if err != nil {
		t.Fatalf("重开后的推进失败: %v", err)
	}
	if len(next.Events) != 1 {
		t.Errorf("重开后的推进应该追加1条事件，实际: %d", len(next.Events))
	}
}

// TestRestart 测试重新开局
func TestRestart(t *testing.T) {
	game := newTestGameService()
	if _, err := game.Start(); err != nil {
		t.Fatal(err)
	}
	if _, err := game.Advance(context.Background()); err != nil {
		t.Fatal(err)
	}

	state := game.Restart()
	if state.Phase != models.PhaseIntro {
		t.Errorf("重开后应该回到intro阶段，实际: %s", state.Phase)
	}
	if len(state.Events) != 0 {
		t.Errorf("重开后事件日志应该为空，实际: %d", len(state.Events))
	}
	if state.Day != 1 || state.TimeOfDay != models.TimeMorning {
		t.Errorf("重开后应该回到第1天早上，实际: 第%d天 %s", state.Day, state.TimeOfDay)
	}
}

// TestParadiseFlagsCleared 测试Paradise约会后标志被清除而配对记录保留
func TestParadiseFlagsCleared(t *testing.T) {
	game := newTestGameService()
	if _, err := game.Start(); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	for i := 0; i < 100; i++ {
		state := game.State()
		if state.Phase != models.PhasePlaying {
			break
		}
		if _, err := game.Advance(ctx); err != nil {
			t.Fatalf("推进失败: %v", err)
		}

		after := game.State()
		// 最新事件是约会时，所有人都应该已经返回Inferno
		if after.CurrentEvent != nil && after.CurrentEvent.Type == models.EventParadiseDate {
			for _, c := range after.Characters {
				if c.IsInParadise {
					t.Errorf("约会结束后角色 %s 不应还在Paradise", c.ID)
				}
			}
			if len(after.ParadisePairs) == 0 {
				t.Error("约会发生后配对历史应该有记录")
			}
		}
	}
}

// TestSetDirectorMode 测试生成器模式切换
func TestSetDirectorMode(t *testing.T) {
	game := newTestGameService()

	if err := game.SetDirectorMode(config.DirectorAI); err != nil {
		t.Fatalf("切换到ai模式失败: %v", err)
	}
	if game.DirectorMode() != config.DirectorAI {
		t.Errorf("模式应该是ai，实际: %s", game.DirectorMode())
	}

	if err := game.SetDirectorMode("llm"); !errors.IsValidationError(err) {
		t.Errorf("未知模式应该返回验证错误，实际: %v", err)
	}

	// ai模式下LLM未就绪时回退到规则引擎
	if _, err := game.Start(); err != nil {
		t.Fatal(err)
	}
	if _, err := game.Advance(context.Background()); err != nil {
		t.Errorf("ai模式未就绪时应该回退规则引擎，实际错误: %v", err)
	}
}
