// internal/services/game_service.go
package services

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Corphon/AIslandInferno/internal/cast"
	"github.com/Corphon/AIslandInferno/internal/config"
	"github.com/Corphon/AIslandInferno/internal/errors"
	"github.com/Corphon/AIslandInferno/internal/models"
	"github.com/Corphon/AIslandInferno/internal/utils"
)

// StateListener 状态快照的订阅回调，Advance等操作成功后同步调用
type StateListener func(state *models.GameState)

// aiDirector AI生成器需要额外暴露就绪状态供模式选择
type aiDirector interface {
	EventDirector
	IsReady() bool
}

// GameService 游戏状态机
// 持有当前快照，串行化所有状态转移；生成器产出先校验后应用，
// 任何一步失败都不会留下部分修改的状态
type GameService struct {
	mu         sync.Mutex
	advancing  bool // 单飞标记，拒绝并发的Advance
	gen        int  // Restart每次递增，过期的Advance据此放弃提交
	state      *models.GameState
	rules      EventDirector
	ai         aiDirector
	director   string // config.DirectorRules / config.DirectorAI
	rng        *rand.Rand
	logger     *utils.Logger
	listeners  []StateListener
	autoCancel context.CancelFunc
	autoPlayMS int
}

// NewGameService 创建状态机并初始化一局新游戏
func NewGameService(rules EventDirector, ai *AIDirectorService, cfg *config.Config) *GameService {
	director := config.DirectorRules
	autoPlayMS := 8000
	if cfg != nil {
		if cfg.Director != "" {
			director = cfg.Director
		}
		if cfg.AutoPlayMS > 0 {
			autoPlayMS = cfg.AutoPlayMS
		}
	}

	s := &GameService{
		rules:      rules,
		director:   director,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:     utils.GetLogger(),
		autoPlayMS: autoPlayMS,
	}
	if ai != nil {
		s.ai = ai
	}
	s.state = s.newGameState()
	return s
}

// newGameState 初始快照：intro阶段、第1天早上、随机的初始好感度
func (s *GameService) newGameState() *models.GameState {
	return &models.GameState{
		Phase:         models.PhaseIntro,
		Day:           1,
		TimeOfDay:     models.TimeMorning,
		Characters:    cast.InitialCharacters(),
		Affinities:    cast.BuildInitialAffinities(s.rng),
		Events:        []models.GameEvent{},
		ParadisePairs: [][]string{},
		EventCount:    0,
	}
}

// activeDirector 当前生效的生成器；AI模式下提供商未就绪时回退到规则引擎
func (s *GameService) activeDirector() EventDirector {
	if s.director == config.DirectorAI && s.ai != nil && s.ai.IsReady() {
		return s.ai
	}
	return s.rules
}

// DirectorMode 当前配置的生成器模式
func (s *GameService) DirectorMode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.director
}

// SetDirectorMode 切换生成器模式
func (s *GameService) SetDirectorMode(mode string) error {
	if mode != config.DirectorRules && mode != config.DirectorAI {
		return errors.NewValidationError("未知の生成モード: "+mode, nil)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.director = mode
	return nil
}

// Subscribe 注册状态监听器
func (s *GameService) Subscribe(listener StateListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
}

// notifyLocked 推送最新快照，调用方必须持有锁
func (s *GameService) notifyLocked() {
	snapshot := s.state.Clone()
	for _, listener := range s.listeners {
		listener(snapshot)
	}
}

// State 返回当前快照的深拷贝
func (s *GameService) State() *models.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Start 开始游戏：intro → playing
func (s *GameService) Start() (*models.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Phase != models.PhaseIntro {
		return nil, errors.NewConflictError("ゲームはすでに開始されている", nil)
	}

	next := s.state.Clone()
	next.Phase = models.PhasePlaying
	s.state = next
	s.notifyLocked()
	return next.Clone(), nil
}

// Restart 丢弃当前快照并重新开局
func (s *GameService) Restart() *models.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopAutoPlayLocked()
	s.gen++
	s.advancing = false
	s.state = s.newGameState()
	s.notifyLocked()
	return s.state.Clone()
}

// Advance 推进一步：生成一条事件并应用其全部效果
// 事件先由生成器产出，应用阶段依次完成：追加事件、叠加好感度、
// 记录Paradise配对、追加约会事件、配额满时推进时间
func (s *GameService) Advance(ctx context.Context) (*models.GameState, error) {
	s.mu.Lock()
	if s.state.Phase != models.PhasePlaying {
		s.mu.Unlock()
		return nil, errors.NewConflictError("現在のフェーズではイベントを生成できない", nil)
	}
	if s.advancing {
		s.mu.Unlock()
		return nil, errors.NewConflictError("イベント生成がすでに進行中", nil)
	}
	s.advancing = true
	gen := s.gen
	base := s.state.Clone()
	director := s.activeDirector()
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		if s.gen == gen {
			s.advancing = false
		}
		s.mu.Unlock()
	}()

	recentStart := 0
	if len(base.Events) > 5 {
		recentStart = len(base.Events) - 5
	}
	req := &models.GenerateEventRequest{
		Day:           base.Day,
		TimeOfDay:     base.TimeOfDay,
		Characters:    base.Characters,
		Affinities:    base.Affinities,
		RecentEvents:  base.Events[recentStart:],
		ParadisePairs: base.ParadisePairs,
	}

	// 生成失败はこの1回のAdvanceの失敗として呼び出し側へそのまま返す
	result, paradiseResult, err := director.GenerateEvent(ctx, req)
	if err != nil {
		return nil, err
	}

	next := base
	event := s.buildGameEvent(next, result)
	next.Events = append(next.Events, *event)
	next.CurrentEvent = event
	next.EventCount++

	next.Affinities = next.Affinities.Apply(event.AffinityChanges)

	// 被接受的邀请：记录配对并标记双方进入Paradise
	if event.HasAcceptedInvite() {
		invite := event.ParadiseInvite
		next.ParadisePairs = append(next.ParadisePairs, []string{invite.InviterID, invite.InviteeID})
		for i := range next.Characters {
			if next.Characters[i].ID == invite.InviterID || next.Characters[i].ID == invite.InviteeID {
				next.Characters[i].IsInParadise = true
			}
		}
	}

	// 配套的约会事件：追加、叠加好感度、然后全员返回Inferno
	if paradiseResult != nil {
		dateEvent := s.buildGameEvent(next, paradiseResult)
		next.Events = append(next.Events, *dateEvent)
		next.CurrentEvent = dateEvent
		next.Affinities = next.Affinities.Apply(dateEvent.AffinityChanges)
		for i := range next.Characters {
			next.Characters[i].IsInParadise = false
		}
	}

	if next.ShouldAdvanceTime() {
		next = next.AdvanceTime()
	}

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return nil, errors.NewConflictError("生成中にゲームがリスタートされた", nil)
	}
	s.state = next
	s.notifyLocked()
	s.mu.Unlock()
	return next.Clone(), nil
}

// buildGameEvent 把生成器载荷落成带ID与时间戳的日志事件
func (s *GameService) buildGameEvent(state *models.GameState, result *models.EventResult) *models.GameEvent {
	return &models.GameEvent{
		ID:              uuid.NewString(),
		Type:            result.EventType,
		Day:             state.Day,
		TimeOfDay:       state.TimeOfDay,
		Participants:    result.Participants,
		Location:        result.Location,
		Title:           result.Title,
		Narrative:       result.Narrative,
		Dialogue:        result.Dialogue,
		InnerThoughts:   result.InnerThoughts,
		AffinityChanges: result.AffinityChanges,
		ParadiseInvite:  result.ParadiseInvite,
		Timestamp:       time.Now(),
	}
}

// TriggerCeremony 最终仪式：ceremony → results
func (s *GameService) TriggerCeremony(ctx context.Context) (*models.GameState, error) {
	s.mu.Lock()
	if s.state.Phase != models.PhaseCeremony {
		s.mu.Unlock()
		return nil, errors.NewConflictError("セレモニーフェーズではない", nil)
	}
	if s.advancing {
		s.mu.Unlock()
		return nil, errors.NewConflictError("イベント生成がすでに進行中", nil)
	}
	s.advancing = true
	gen := s.gen
	base := s.state.Clone()
	director := s.activeDirector()
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		if s.gen == gen {
			s.advancing = false
		}
		s.mu.Unlock()
	}()

	req := &models.GenerateCeremonyRequest{
		Characters:    base.Characters,
		Affinities:    base.Affinities,
		ParadisePairs: base.ParadisePairs,
		Events:        base.Events,
	}

	result, err := director.GenerateCeremony(ctx, req)
	if err != nil {
		return nil, err
	}

	activeIDs := make([]string, 0, len(base.Characters))
	for _, c := range base.ActiveCharacters() {
		activeIDs = append(activeIDs, c.ID)
	}

	ceremonyEvent := models.GameEvent{
		ID:           uuid.NewString(),
		Type:         models.EventCeremony,
		Day:          base.Day,
		TimeOfDay:    models.TimeEvening,
		Participants: activeIDs,
		Location:     models.LocationCeremony,
		Title:        "最終カップリング",
		Narrative:    result.Narrative,
		Dialogue:     result.Dialogue,
		Timestamp:    time.Now(),
	}

	next := base
	next.Events = append(next.Events, ceremonyEvent)
	next.CurrentEvent = &next.Events[len(next.Events)-1]
	next.FinalCouples = result.Couples
	next.Phase = models.PhaseResults

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return nil, errors.NewConflictError("生成中にゲームがリスタートされた", nil)
	}
	s.state = next
	s.notifyLocked()
	s.mu.Unlock()
	return next.Clone(), nil
}

// StartAutoPlay 开启自动播放：playing阶段定时Advance，ceremony阶段自动触发仪式
func (s *GameService) StartAutoPlay() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.autoCancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.autoCancel = cancel
	interval := time.Duration(s.autoPlayMS) * time.Millisecond

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				phase := s.State().Phase
				switch phase {
				case models.PhasePlaying:
					if _, err := s.Advance(ctx); err != nil && !errors.IsConflictError(err) {
						s.logger.Warnf("自動再生のイベント生成に失敗: %v", err)
					}
				case models.PhaseCeremony:
					if _, err := s.TriggerCeremony(ctx); err != nil && !errors.IsConflictError(err) {
						s.logger.Warnf("自動再生のセレモニー生成に失敗: %v", err)
					}
				case models.PhaseResults:
					s.StopAutoPlay()
					return
				}
			}
		}
	}()
}

// StopAutoPlay 关闭自动播放
func (s *GameService) StopAutoPlay() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopAutoPlayLocked()
}

// stopAutoPlayLocked 调用方必须持有锁
func (s *GameService) stopAutoPlayLocked() {
	if s.autoCancel != nil {
		s.autoCancel()
		s.autoCancel = nil
	}
}

// AutoPlaying 自动播放是否开启
func (s *GameService) AutoPlaying() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.autoCancel != nil
}
