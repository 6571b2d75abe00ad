// internal/models/result.go
package models

// 规则引擎与LLM引擎共享的请求/结果契约
// 状态机的应用步骤不关心结果由哪个生成器产出

// GenerateEventRequest 生成一条事件所需的上下文
type GenerateEventRequest struct {
	Day           int           `json:"day"`
	TimeOfDay     TimeOfDay     `json:"timeOfDay"`
	Characters    []Character   `json:"characters"`
	Affinities    AffinityTable `json:"affinities"`
	RecentEvents  []GameEvent   `json:"recentEvents"`
	ParadisePairs [][]string    `json:"paradisePairs"`
}

// EventResult 生成器产出的事件载荷
type EventResult struct {
	Title           string           `json:"title"`
	EventType       EventType        `json:"eventType"`
	Location        Location         `json:"location"`
	Participants    []string         `json:"participants"`
	Narrative       string           `json:"narrative"`
	Dialogue        []DialogueLine   `json:"dialogue"`
	InnerThoughts   []InnerThought   `json:"innerThoughts"`
	AffinityChanges []AffinityChange `json:"affinityChanges"`
	ParadiseInvite  *ParadiseInvite  `json:"paradiseInvite,omitempty"`
}

// GenerateCeremonyRequest 最终仪式生成所需的上下文
type GenerateCeremonyRequest struct {
	Characters    []Character   `json:"characters"`
	Affinities    AffinityTable `json:"affinities"`
	ParadisePairs [][]string    `json:"paradisePairs"`
	Events        []GameEvent   `json:"events"`
}

// CeremonyResult 最终仪式的载荷
type CeremonyResult struct {
	Narrative string         `json:"narrative"`
	Dialogue  []DialogueLine `json:"dialogue"`
	Couples   []FinalCouple  `json:"couples"`
	Uncoupled []string       `json:"uncoupled"`
}
