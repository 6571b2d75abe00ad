// internal/models/character.go
package models

// Gender 参加者性别
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Character 表示节目中的一位参加者
// 固定名单在开局时创建一次，之后只有状态标志会被状态机修改
type Character struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	NameJP         string   `json:"name_jp"`
	Age            int      `json:"age"`
	Occupation     string   `json:"occupation"`      // 在Inferno保密，只在Paradise公开
	OccupationHint string   `json:"occupation_hint"` // Inferno阶段的模糊提示
	Personality    string   `json:"personality"`
	Background     string   `json:"background"`
	Interests      []string `json:"interests"`
	DatingStyle    string   `json:"dating_style"`
	Avatar         string   `json:"avatar"`
	Gender         Gender   `json:"gender"`
	Color          string   `json:"color"`
	IsInParadise   bool     `json:"is_in_paradise"`
	IsEliminated   bool     `json:"is_eliminated"`
}

// Emotion 台词的情绪标记
type Emotion string

const (
	EmotionHappy   Emotion = "happy"
	EmotionSad     Emotion = "sad"
	EmotionNervous Emotion = "nervous"
	EmotionFlirty  Emotion = "flirty"
	EmotionAngry   Emotion = "angry"
	EmotionShocked Emotion = "shocked"
	EmotionDefault Emotion = "default"
)

// DialogueLine 事件中的一句台词
type DialogueLine struct {
	CharacterID string  `json:"characterId"`
	Text        string  `json:"text"`
	Emotion     Emotion `json:"emotion,omitempty"`
}

// InnerThought 只有观众能看到的内心独白
type InnerThought struct {
	CharacterID string `json:"characterId"`
	Thought     string `json:"thought"`
}

// AffinityChange 一次好感度变化，方向为 FromID → ToID
type AffinityChange struct {
	FromID string `json:"fromId"`
	ToID   string `json:"toId"`
	Change int    `json:"change"` // -15 〜 +25
	Reason string `json:"reason"`
}

// ParadiseInvite 附着在 paradise_invite 事件上的邀请记录
type ParadiseInvite struct {
	InviterID       string `json:"inviterId"`
	InviteeID       string `json:"inviteeId"`
	Accepted        bool   `json:"accepted"`
	InviterMessage  string `json:"inviterMessage"`
	InviteeResponse string `json:"inviteeResponse"`
}

// FinalCouple 最终仪式产生的配对
type FinalCouple struct {
	Person1ID string `json:"person1Id"`
	Person2ID string `json:"person2Id"`
}
