// internal/models/game.go
package models

import "fmt"

// GamePhase 游戏阶段，线性推进：intro → playing → ceremony → results
type GamePhase string

const (
	PhaseIntro    GamePhase = "intro"
	PhasePlaying  GamePhase = "playing"
	PhaseCeremony GamePhase = "ceremony"
	PhaseResults  GamePhase = "results"
)

// TimeOfDay 一天内的时间段，morning → afternoon → evening 循环
type TimeOfDay string

const (
	TimeMorning   TimeOfDay = "morning"
	TimeAfternoon TimeOfDay = "afternoon"
	TimeEvening   TimeOfDay = "evening"
)

// 节目总共进行的天数，第3天夜晚结束后进入最终仪式
const FinalDay = 3

// GameState 一局游戏的完整快照
// 状态转移函数接收当前快照并返回新快照，旧引用保持有效
type GameState struct {
	Phase         GamePhase     `json:"phase"`
	Day           int           `json:"day"`
	TimeOfDay     TimeOfDay     `json:"timeOfDay"`
	Characters    []Character   `json:"characters"`
	Affinities    AffinityTable `json:"affinities"`
	Events        []GameEvent   `json:"events"`
	CurrentEvent  *GameEvent    `json:"currentEvent,omitempty"`
	ParadisePairs [][]string    `json:"paradisePairs"` // 历史记录，返回Inferno后也不移除
	FinalCouples  []FinalCouple `json:"finalCouples,omitempty"`
	EventCount    int           `json:"eventCount"` // 当前时间段内已生成的事件数
}

// Clone 深拷贝快照，后续修改不影响原快照
func (s *GameState) Clone() *GameState {
	cloned := *s

	cloned.Characters = make([]Character, len(s.Characters))
	copy(cloned.Characters, s.Characters)

	cloned.Affinities = s.Affinities.Clone()

	cloned.Events = make([]GameEvent, len(s.Events))
	copy(cloned.Events, s.Events)

	cloned.ParadisePairs = make([][]string, len(s.ParadisePairs))
	for i, pair := range s.ParadisePairs {
		cloned.ParadisePairs[i] = append([]string(nil), pair...)
	}

	if s.FinalCouples != nil {
		cloned.FinalCouples = make([]FinalCouple, len(s.FinalCouples))
		copy(cloned.FinalCouples, s.FinalCouples)
	}

	return &cloned
}

// CharacterByID 按ID查找角色，找不到时返回nil
func (s *GameState) CharacterByID(id string) *Character {
	for i := range s.Characters {
		if s.Characters[i].ID == id {
			return &s.Characters[i]
		}
	}
	return nil
}

// ActiveCharacters 返回未被淘汰的角色
func (s *GameState) ActiveCharacters() []Character {
	active := make([]Character, 0, len(s.Characters))
	for _, c := range s.Characters {
		if !c.IsEliminated {
			active = append(active, c)
		}
	}
	return active
}

// AvailableCharacters 返回可参与Inferno事件的角色（未淘汰且不在Paradise）
func (s *GameState) AvailableCharacters() []Character {
	available := make([]Character, 0, len(s.Characters))
	for _, c := range s.Characters {
		if !c.IsEliminated && !c.IsInParadise {
			available = append(available, c)
		}
	}
	return available
}

// FilterGender 按性别过滤角色列表
func FilterGender(characters []Character, gender Gender) []Character {
	filtered := make([]Character, 0, len(characters))
	for _, c := range characters {
		if c.Gender == gender {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// EventsPerSlot 每个时间段允许的事件配额
func EventsPerSlot(timeOfDay TimeOfDay) int {
	if timeOfDay == TimeAfternoon {
		return 3
	}
	return 2 // morning / evening
}

// ShouldAdvanceTime 判断当前时间段配额是否已用完
func (s *GameState) ShouldAdvanceTime() bool {
	return s.EventCount >= EventsPerSlot(s.TimeOfDay)
}

// AdvanceTime 推进时间，返回新快照
// evening结束后进入下一天的morning，第FinalDay天的evening结束后转入ceremony阶段
func (s *GameState) AdvanceTime() *GameState {
	next := s.Clone()
	next.EventCount = 0

	switch s.TimeOfDay {
	case TimeMorning:
		next.TimeOfDay = TimeAfternoon
		return next
	case TimeAfternoon:
		next.TimeOfDay = TimeEvening
		return next
	}

	next.Day = s.Day + 1
	next.TimeOfDay = TimeMorning
	if next.Day > FinalDay {
		next.Phase = PhaseCeremony
	}
	return next
}

// DayLabel 天数的显示标签
func DayLabel(day int) string {
	return fmt.Sprintf("DAY %d", day)
}

// TimeLabel 时间段的日文标签
func TimeLabel(timeOfDay TimeOfDay) string {
	switch timeOfDay {
	case TimeMorning:
		return "朝"
	case TimeAfternoon:
		return "午後"
	default:
		return "夜"
	}
}
