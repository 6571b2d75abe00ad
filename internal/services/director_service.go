// internal/services/director_service.go
package services

import (
	"context"
	"math/rand"
	"sort"
	"time"

	"github.com/Corphon/AIslandInferno/internal/cast"
	"github.com/Corphon/AIslandInferno/internal/models"
)

// EventDirector 事件生成器的统一能力接口
// 规则引擎与LLM引擎都实现它，状态机不关心载荷来自哪一个
type EventDirector interface {
	// GenerateEvent 生成一条事件；若其中的Paradise邀请被接受，第二个返回值为配套的约会事件
	GenerateEvent(ctx context.Context, req *models.GenerateEventRequest) (*models.EventResult, *models.EventResult, error)

	// GenerateCeremony 生成最终仪式
	GenerateCeremony(ctx context.Context, req *models.GenerateCeremonyRequest) (*models.CeremonyResult, error)
}

// 仪式配对的好感度门槛，低于它的配对永远不会成立
const coupleThreshold = 45

// DirectorService 规则＋模板驱动的离线事件生成器
type DirectorService struct {
	rng *rand.Rand
}

// NewDirectorService 创建规则引擎，使用时间种子
func NewDirectorService() *DirectorService {
	return NewDirectorServiceWithSeed(time.Now().UnixNano())
}

// NewDirectorServiceWithSeed 创建使用固定种子的规则引擎
func NewDirectorServiceWithSeed(seed int64) *DirectorService {
	return &DirectorService{rng: rand.New(rand.NewSource(seed))}
}

// affinityPair 参与排序的男女配对
type affinityPair struct {
	male   models.Character
	female models.Character
	value  int
}

// sortedPairs 枚举所有男女配对并按好感度降序排序
func sortedPairs(males, females []models.Character, affinities models.AffinityTable) []affinityPair {
	pairs := make([]affinityPair, 0, len(males)*len(females))
	for _, m := range males {
		for _, f := range females {
			pairs = append(pairs, affinityPair{male: m, female: f, value: affinities.Get(m.ID, f.ID)})
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].value > pairs[j].value
	})
	return pairs
}

// GenerateEvent 生成一条事件
func (d *DirectorService) GenerateEvent(_ context.Context, req *models.GenerateEventRequest) (*models.EventResult, *models.EventResult, error) {
	available := availableOf(req.Characters)
	males := models.FilterGender(available, models.GenderMale)
	females := models.FilterGender(available, models.GenderFemale)

	// 当前最高好感度，用于事件类型选择
	maxAffinity := 0
	for _, m := range males {
		for _, f := range females {
			if v := req.Affinities.Get(m.ID, f.ID); v > maxAffinity {
				maxAffinity = v
			}
		}
	}

	eventType := d.selectEventType(req.Day, req.TimeOfDay, maxAffinity, len(req.ParadisePairs))
	return d.generateEventOfType(eventType, req, males, females, available)
}

// generateEventOfType 在事件类型已定的前提下完成剩余步骤
func (d *DirectorService) generateEventOfType(
	eventType models.EventType,
	req *models.GenerateEventRequest,
	males, females, available []models.Character,
) (*models.EventResult, *models.EventResult, error) {
	selection := d.selectParticipants(eventType, males, females, req.Affinities, available)

	currentAffinity := 0
	if selection.mainMaleID != "" && selection.mainFemaleID != "" {
		currentAffinity = req.Affinities.Get(selection.mainMaleID, selection.mainFemaleID)
	}

	// 叙事用主角显示名
	maleName, femaleName := "彼", "彼女"
	var mainMale, mainFemale *models.Character
	for i := range req.Characters {
		c := &req.Characters[i]
		if c.ID == selection.mainMaleID {
			mainMale = c
			maleName = c.Name
		}
		if c.ID == selection.mainFemaleID {
			mainFemale = c
			femaleName = c.Name
		}
	}

	event := &models.EventResult{
		Title:           cast.PickTitle(d.rng, eventType),
		EventType:       eventType,
		Location:        models.LocationInferno,
		Participants:    selection.ids,
		Narrative:       cast.PickNarrative(d.rng, eventType, maleName, femaleName, req.Day, models.TimeLabel(req.TimeOfDay)),
		Dialogue:        d.buildDialogue(eventType, selection.mainMaleID, selection.mainFemaleID, selection.ids),
		InnerThoughts:   d.buildInnerThoughts(eventType, selection.mainMaleID, selection.mainFemaleID, currentAffinity),
		AffinityChanges: d.calcAffinityChanges(eventType, selection.mainMaleID, selection.mainFemaleID, currentAffinity),
	}

	// Paradise邀请的附加逻辑
	var paradiseEvent *models.EventResult
	if eventType == models.EventParadiseInvite && selection.mainMaleID != "" && selection.mainFemaleID != "" {
		invite := d.buildParadiseInvite(selection.mainMaleID, selection.mainFemaleID, currentAffinity)
		event.ParadiseInvite = invite

		if invite.Accepted && mainMale != nil && mainFemale != nil {
			paradiseEvent = d.buildParadiseDate(*mainMale, *mainFemale)
		}
	}

	return event, paradiseEvent, nil
}

// selectEventType 事件类型的优先级规则级联，自上而下，第一条命中的规则生效
func (d *DirectorService) selectEventType(day int, timeOfDay models.TimeOfDay, maxAffinity, paradisePairCount int) models.EventType {
	// 第1天早上：只有会话或集体活动
	if day == 1 && timeOfDay == models.TimeMorning {
		if d.rng.Intn(2) == 0 {
			return models.EventConversation
		}
		return models.EventGroupActivity
	}

	// Paradise邀请：第2天起的午后/夜晚，高好感度，名额未满
	if day >= 2 && timeOfDay != models.TimeMorning &&
		maxAffinity >= 62 && paradisePairCount < 2 && d.rng.Float64() < 0.3 {
		return models.EventParadiseInvite
	}

	// 告白：第2天起，高好感度
	if day >= 2 && maxAffinity >= 70 && d.rng.Float64() < 0.2 {
		return models.EventConfession
	}

	// 后期剧情更多波澜
	if day >= 3 {
		roll := d.rng.Float64()
		switch {
		case roll < 0.25:
			return models.EventJealousy
		case roll < 0.4:
			return models.EventDrama
		case roll < 0.65:
			return models.EventConversation
		default:
			return models.EventGroupActivity
		}
	}

	if day == 2 {
		roll := d.rng.Float64()
		switch {
		case roll < 0.2:
			return models.EventJealousy
		case roll < 0.35:
			return models.EventDrama
		case roll < 0.65:
			return models.EventConversation
		default:
			return models.EventGroupActivity
		}
	}

	// 第1天其余时段
	if d.rng.Float64() < 0.6 {
		return models.EventConversation
	}
	return models.EventGroupActivity
}

// participantSelection 参与者选择结果
type participantSelection struct {
	ids          []string
	mainMaleID   string
	mainFemaleID string
}

// selectParticipants 按事件类型选择参与者与主角配对
func (d *DirectorService) selectParticipants(
	eventType models.EventType,
	males, females []models.Character,
	affinities models.AffinityTable,
	available []models.Character,
) participantSelection {
	pairs := sortedPairs(males, females, affinities)

	switch eventType {
	case models.EventConversation, models.EventConfession, models.EventParadiseInvite:
		// 好感度前3的配对里均匀选一对
		if len(pairs) == 0 {
			return fallbackParticipants(available)
		}
		topN := len(pairs)
		if topN > 3 {
			topN = 3
		}
		chosen := pairs[d.rng.Intn(topN)]
		return participantSelection{
			ids:          []string{chosen.male.ID, chosen.female.ID},
			mainMaleID:   chosen.male.ID,
			mainFemaleID: chosen.female.ID,
		}

	case models.EventJealousy:
		// 最高好感度配对＋一位旁观的第三者
		if len(pairs) == 0 {
			return fallbackParticipants(available)
		}
		top := pairs[0]
		third := d.pickThird(males, females, top)
		ids := []string{top.male.ID, top.female.ID}
		if third != "" {
			ids = append(ids, third)
		}
		return participantSelection{ids: ids, mainMaleID: top.male.ID, mainFemaleID: top.female.ID}

	case models.EventGroupActivity, models.EventDrama:
		// 3〜4人的混合小组
		if len(available) == 0 {
			return fallbackParticipants(available)
		}
		maxCount := len(available)
		if maxCount > 4 {
			maxCount = 4
		}
		count := 3
		if maxCount > 3 {
			count = 3 + d.rng.Intn(maxCount-2)
		} else {
			count = maxCount
		}
		chosen := d.sample(available, count)

		selection := participantSelection{ids: make([]string, 0, len(chosen))}
		for _, c := range chosen {
			selection.ids = append(selection.ids, c.ID)
			if c.Gender == models.GenderMale && selection.mainMaleID == "" {
				selection.mainMaleID = c.ID
			}
			if c.Gender == models.GenderFemale && selection.mainFemaleID == "" {
				selection.mainFemaleID = c.ID
			}
		}
		// 小组里缺某个性别时退回最高好感度配对的主角，并把主角补进参加者
		if len(pairs) > 0 {
			if selection.mainMaleID == "" {
				selection.mainMaleID = pairs[0].male.ID
				selection.ids = append(selection.ids, selection.mainMaleID)
			}
			if selection.mainFemaleID == "" {
				selection.mainFemaleID = pairs[0].female.ID
				selection.ids = append(selection.ids, selection.mainFemaleID)
			}
		}
		return selection
	}

	return fallbackParticipants(available)
}

// pickThird 为嫉妒事件挑第三位角色，先尝试男性再尝试女性
func (d *DirectorService) pickThird(males, females []models.Character, top affinityPair) string {
	candidates := make([]models.Character, 0, len(males))
	for _, m := range males {
		if m.ID != top.male.ID {
			candidates = append(candidates, m)
		}
	}
	if len(candidates) == 0 {
		for _, f := range females {
			if f.ID != top.female.ID {
				candidates = append(candidates, f)
			}
		}
	}
	if len(candidates) == 0 {
		return ""
	}
	return candidates[d.rng.Intn(len(candidates))].ID
}

// sample 随机取n个不重复角色
func (d *DirectorService) sample(characters []models.Character, n int) []models.Character {
	shuffled := make([]models.Character, len(characters))
	copy(shuffled, characters)
	d.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}

// fallbackParticipants 没有有效配对时取最先找到的男女各一位
func fallbackParticipants(available []models.Character) participantSelection {
	selection := participantSelection{}
	for _, c := range available {
		if c.Gender == models.GenderMale && selection.mainMaleID == "" {
			selection.mainMaleID = c.ID
		}
		if c.Gender == models.GenderFemale && selection.mainFemaleID == "" {
			selection.mainFemaleID = c.ID
		}
	}
	if selection.mainMaleID != "" {
		selection.ids = append(selection.ids, selection.mainMaleID)
	}
	if selection.mainFemaleID != "" {
		selection.ids = append(selection.ids, selection.mainFemaleID)
	}
	return selection
}

// lineContext 事件类型到男方台词情境键的映射
func lineContext(eventType models.EventType) string {
	switch eventType {
	case models.EventConfession:
		return cast.CtxConfession
	case models.EventParadiseInvite:
		return cast.CtxParadiseInvite
	case models.EventJealousy:
		return cast.CtxJealousy
	case models.EventParadiseDate:
		return cast.CtxParadiseDate
	default:
		return cast.CtxConversationOpen
	}
}

// responseContext 事件类型到女方台词情境键的映射
func responseContext(eventType models.EventType) string {
	switch eventType {
	case models.EventConfession:
		return cast.CtxConfession
	case models.EventParadiseInvite:
		return cast.CtxParadiseInvite
	case models.EventParadiseDate:
		return cast.CtxParadiseDate
	default:
		return cast.CtxConversationResponse
	}
}

// buildDialogue 按事件类型拼装台词
func (d *DirectorService) buildDialogue(eventType models.EventType, maleID, femaleID string, allIDs []string) []models.DialogueLine {
	lines := make([]models.DialogueLine, 0, 4)

	if maleID != "" {
		line := cast.PickLine(d.rng, maleID, lineContext(eventType))
		lines = append(lines, models.DialogueLine{CharacterID: maleID, Text: line.Text, Emotion: line.Emotion})
	}

	if femaleID != "" {
		line := cast.PickLine(d.rng, femaleID, responseContext(eventType))
		lines = append(lines, models.DialogueLine{CharacterID: femaleID, Text: line.Text, Emotion: line.Emotion})
	}

	// 集体活动与戏剧事件补一位第三者的台词
	if eventType == models.EventGroupActivity || eventType == models.EventDrama {
		for _, id := range allIDs {
			if id == maleID || id == femaleID {
				continue
			}
			line := cast.PickLine(d.rng, id, cast.CtxConversationOpen)
			lines = append(lines, models.DialogueLine{CharacterID: id, Text: line.Text, Emotion: line.Emotion})
			break
		}
	}

	// 嫉妒事件追加男方一句嫉妒台词
	if eventType == models.EventJealousy && maleID != "" {
		line := cast.PickLine(d.rng, maleID, cast.CtxJealousy)
		lines = append(lines, models.DialogueLine{CharacterID: maleID, Text: line.Text, Emotion: line.Emotion})
	}

	return lines
}

// buildInnerThoughts 主角各一条内心独白，好感度≥40或告白/约会事件时取正面库
func (d *DirectorService) buildInnerThoughts(eventType models.EventType, maleID, femaleID string, currentAffinity int) []models.InnerThought {
	positive := currentAffinity >= 40 ||
		eventType == models.EventConfession || eventType == models.EventParadiseDate

	thoughts := make([]models.InnerThought, 0, 2)
	if maleID != "" {
		thoughts = append(thoughts, models.InnerThought{CharacterID: maleID, Thought: cast.PickThought(d.rng, maleID, positive)})
	}
	if femaleID != "" {
		thoughts = append(thoughts, models.InnerThought{CharacterID: femaleID, Thought: cast.PickThought(d.rng, femaleID, positive)})
	}
	return thoughts
}

// randBetween 闭区间[min,max]的均匀整数
func (d *DirectorService) randBetween(min, max int) int {
	return min + d.rng.Intn(max-min+1)
}

// calcAffinityChanges 按事件类型计算主角男→女的好感度变化
func (d *DirectorService) calcAffinityChanges(eventType models.EventType, maleID, femaleID string, currentAffinity int) []models.AffinityChange {
	if maleID == "" || femaleID == "" {
		return nil
	}

	var change int
	var reason string

	switch eventType {
	case models.EventConversation:
		if currentAffinity >= 50 {
			change = d.randBetween(5, 12)
		} else {
			change = d.randBetween(3, 9)
		}
		reason = "会話で距離が縮まった"
	case models.EventGroupActivity:
		change = d.randBetween(2, 8)
		reason = "共同活動で絆が深まった"
	case models.EventConfession:
		if currentAffinity >= 60 {
			change = d.randBetween(10, 20)
		} else {
			change = d.randBetween(5, 12)
		}
		reason = "想いを打ち明けた"
	case models.EventParadiseInvite:
		change = d.randBetween(8, 15)
		reason = "パラダイスに誘った"
	case models.EventParadiseDate:
		change = d.randBetween(15, 25)
		reason = "パラダイスデートで急接近"
	case models.EventJealousy:
		if d.rng.Float64() < 0.5 {
			change = d.randBetween(3, 10)
			reason = "嫉妬が本気の証拠"
		} else {
			change = d.randBetween(-8, -2)
			reason = "嫉妬でぎこちなくなった"
		}
	case models.EventDrama:
		if d.rng.Float64() < 0.4 {
			change = d.randBetween(-10, -3)
			reason = "誤解が生じた"
		} else {
			change = d.randBetween(2, 8)
			reason = "本音でぶつかり合った"
		}
	default:
		change = d.randBetween(1, 5)
		reason = "交流した"
	}

	return []models.AffinityChange{{FromID: maleID, ToID: femaleID, Change: change, Reason: reason}}
}

// buildParadiseInvite 好感度≥55必定接受，否则还有70%的机会
func (d *DirectorService) buildParadiseInvite(maleID, femaleID string, currentAffinity int) *models.ParadiseInvite {
	accepted := currentAffinity >= 55 || d.rng.Float64() < 0.7

	inviterMessage := cast.PickLine(d.rng, maleID, cast.CtxParadiseInvite).Text
	var inviteeResponse string
	if accepted {
		inviteeResponse = cast.PickLine(d.rng, femaleID, cast.CtxParadiseInvite).Text
	} else {
		inviteeResponse = cast.PickRejection(d.rng)
	}

	return &models.ParadiseInvite{
		InviterID:       maleID,
		InviteeID:       femaleID,
		Accepted:        accepted,
		InviterMessage:  inviterMessage,
		InviteeResponse: inviteeResponse,
	}
}

// buildParadiseDate 被接受的邀请触发的Paradise约会事件，职业在这里公开
func (d *DirectorService) buildParadiseDate(male, female models.Character) *models.EventResult {
	maleLine := cast.PickLine(d.rng, male.ID, cast.CtxParadiseDate)
	femaleLine := cast.PickLine(d.rng, female.ID, cast.CtxParadiseDate)

	return &models.EventResult{
		Title:        cast.PickTitle(d.rng, models.EventParadiseDate),
		EventType:    models.EventParadiseDate,
		Location:     models.LocationParadise,
		Participants: []string{male.ID, female.ID},
		Narrative:    cast.PickNarrative(d.rng, models.EventParadiseDate, male.Name, female.Name, 0, ""),
		Dialogue: []models.DialogueLine{
			{CharacterID: male.ID, Text: maleLine.Text, Emotion: maleLine.Emotion},
			{CharacterID: female.ID, Text: femaleLine.Text, Emotion: femaleLine.Emotion},
		},
		InnerThoughts: []models.InnerThought{
			{CharacterID: male.ID, Thought: cast.PickThought(d.rng, male.ID, true)},
			{CharacterID: female.ID, Thought: cast.PickThought(d.rng, female.ID, true)},
		},
		AffinityChanges: []models.AffinityChange{
			{FromID: male.ID, ToID: female.ID, Change: d.randBetween(15, 25), Reason: "パラダイスデートで急接近した"},
		},
	}
}

// GenerateCeremony 最终仪式：贪心配对
// 按好感度降序遍历所有活跃男女配对，好感度≥门槛且双方都未配对时成立
func (d *DirectorService) GenerateCeremony(_ context.Context, req *models.GenerateCeremonyRequest) (*models.CeremonyResult, error) {
	active := activeOf(req.Characters)
	males := models.FilterGender(active, models.GenderMale)
	females := models.FilterGender(active, models.GenderFemale)

	pairs := sortedPairs(males, females, req.Affinities)

	used := make(map[string]bool)
	couples := make([]models.FinalCouple, 0, len(males))
	for _, pair := range pairs {
		if pair.value < coupleThreshold {
			break
		}
		if used[pair.male.ID] || used[pair.female.ID] {
			continue
		}
		couples = append(couples, models.FinalCouple{Person1ID: pair.male.ID, Person2ID: pair.female.ID})
		used[pair.male.ID] = true
		used[pair.female.ID] = true
	}

	uncoupled := make([]string, 0, len(active))
	for _, c := range active {
		if !used[c.ID] {
			uncoupled = append(uncoupled, c.ID)
		}
	}

	// 每位活跃角色一句感言，成对的标记happy，落单的标记sad
	dialogue := make([]models.DialogueLine, 0, len(active))
	for _, c := range active {
		text, ok := cast.PickCeremonyLine(d.rng, c.ID)
		if !ok {
			continue
		}
		emotion := models.EmotionSad
		if used[c.ID] {
			emotion = models.EmotionHappy
		}
		dialogue = append(dialogue, models.DialogueLine{CharacterID: c.ID, Text: text, Emotion: emotion})
	}

	return &models.CeremonyResult{
		Narrative: cast.PickCeremonyNarrative(d.rng),
		Dialogue:  dialogue,
		Couples:   couples,
		Uncoupled: uncoupled,
	}, nil
}

// availableOf 过滤出可参与Inferno事件的角色
func availableOf(characters []models.Character) []models.Character {
	available := make([]models.Character, 0, len(characters))
	for _, c := range characters {
		if !c.IsEliminated && !c.IsInParadise {
			available = append(available, c)
		}
	}
	return available
}

// activeOf 过滤出未淘汰的角色
func activeOf(characters []models.Character) []models.Character {
	active := make([]models.Character, 0, len(characters))
	for _, c := range characters {
		if !c.IsEliminated {
			active = append(active, c)
		}
	}
	return active
}
