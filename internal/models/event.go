// internal/models/event.go
package models

import "time"

// EventType 事件类型枚举
type EventType string

const (
	EventIntroduction   EventType = "introduction"
	EventConversation   EventType = "conversation"
	EventGroupActivity  EventType = "group_activity"
	EventConfession     EventType = "confession"
	EventParadiseInvite EventType = "paradise_invite"
	EventParadiseDate   EventType = "paradise_date"
	EventJealousy       EventType = "jealousy"
	EventDrama          EventType = "drama"
	EventCeremony       EventType = "ceremony"
)

// Location 事件发生地点
type Location string

const (
	LocationInferno  Location = "inferno"
	LocationParadise Location = "paradise"
	LocationCeremony Location = "ceremony"
)

// GameEvent 一条已经落入事件日志的叙事事件
// 创建后不可变，只追加不修改
type GameEvent struct {
	ID              string           `json:"id"`
	Type            EventType        `json:"type"`
	Day             int              `json:"day"`
	TimeOfDay       TimeOfDay        `json:"timeOfDay"`
	Participants    []string         `json:"participants"` // 角色ID，2〜4人，不重复
	Location        Location         `json:"location"`
	Title           string           `json:"title"`
	Narrative       string           `json:"narrative"`
	Dialogue        []DialogueLine   `json:"dialogue"`
	InnerThoughts   []InnerThought   `json:"innerThoughts"`
	AffinityChanges []AffinityChange `json:"affinityChanges"`
	ParadiseInvite  *ParadiseInvite  `json:"paradiseInvite,omitempty"`
	Timestamp       time.Time        `json:"timestamp"`
}

// HasAcceptedInvite 判断事件是否携带被接受的Paradise邀请
func (e *GameEvent) HasAcceptedInvite() bool {
	return e.ParadiseInvite != nil && e.ParadiseInvite.Accepted
}

// 事件类型的日文显示名
var eventTypeLabels = map[EventType]string{
	EventIntroduction:   "初対面",
	EventConversation:   "会話",
	EventGroupActivity:  "グループ活動",
	EventConfession:     "告白",
	EventParadiseInvite: "パラダイス招待",
	EventParadiseDate:   "パラダイスデート",
	EventJealousy:       "嫉妬",
	EventDrama:          "ドラマ",
	EventCeremony:       "セレモニー",
}

// Label 获取事件类型的显示名
func (t EventType) Label() string {
	if label, ok := eventTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

// Emoji 获取地点的表情符号
func (l Location) Emoji() string {
	if l == LocationParadise {
		return "✨"
	}
	return "🔥"
}
