// internal/services/director_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/Corphon/AIslandInferno/internal/cast"
	"github.com/Corphon/AIslandInferno/internal/models"
)

func testRequest() *models.GenerateEventRequest {
	return &models.GenerateEventRequest{
		Day:           1,
		TimeOfDay:     models.TimeMorning,
		Characters:    cast.InitialCharacters(),
		Affinities:    models.AffinityTable{},
		RecentEvents:  []models.GameEvent{},
		ParadisePairs: [][]string{},
	}
}

// TestSelectEventTypeDay1Morning 测试第1天早上的类型限制
func TestSelectEventTypeDay1Morning(t *testing.T) {
	d := NewDirectorServiceWithSeed(1)

	for i := 0; i < 50; i++ {
		eventType := d.selectEventType(1, models.TimeMorning, 90, 0)
		if eventType != models.EventConversation && eventType != models.EventGroupActivity {
			t.Fatalf("第1天早上只应出现会话或集体活动，实际: %s", eventType)
		}
	}
}

// TestSelectEventTypeParadiseGate 测试Paradise邀请的前置条件
func TestSelectEventTypeParadiseGate(t *testing.T) {
	d := NewDirectorServiceWithSeed(1)

	// 好感度不足时永远不会出现邀请
	for i := 0; i < 100; i++ {
		if eventType := d.selectEventType(2, models.TimeAfternoon, 61, 0); eventType == models.EventParadiseInvite {
			t.Fatal("好感度61不应触发Paradise邀请（门槛62）")
		}
	}

	// 早上永远不会出现邀请
	for i := 0; i < 100; i++ {
		if eventType := d.selectEventType(2, models.TimeMorning, 90, 0); eventType == models.EventParadiseInvite {
			t.Fatal("早上不应触发Paradise邀请")
		}
	}

	// 名额已满时永远不会出现邀请
	for i := 0; i < 100; i++ {
		if eventType := d.selectEventType(2, models.TimeAfternoon, 90, 2); eventType == models.EventParadiseInvite {
			t.Fatal("已有2对Paradise配对时不应再触发邀请")
		}
	}

	// 条件满足时应该能观察到邀请
	seen := false
	for i := 0; i < 200; i++ {
		if eventType := d.selectEventType(2, models.TimeAfternoon, 70, 0); eventType == models.EventParadiseInvite {
			seen = true
			break
		}
	}
	if !seen {
		t.Error("条件满足时200次尝试中应该至少出现一次Paradise邀请")
	}
}

// TestSelectEventTypeConfessionGate 测试告白的好感度门槛
func TestSelectEventTypeConfessionGate(t *testing.T) {
	d := NewDirectorServiceWithSeed(7)

	for i := 0; i < 100; i++ {
		if eventType := d.selectEventType(2, models.TimeMorning, 69, 0); eventType == models.EventConfession {
			t.Fatal("好感度69不应触发告白（门槛70）")
		}
	}

	seen := false
	for i := 0; i < 200; i++ {
		if eventType := d.selectEventType(2, models.TimeMorning, 75, 0); eventType == models.EventConfession {
			seen = true
			break
		}
	}
	if !seen {
		t.Error("好感度75时200次尝试中应该至少出现一次告白")
	}
}

// TestSelectParticipantsPair 测试双人事件的参与者选择
func TestSelectParticipantsPair(t *testing.T) {
	d := NewDirectorServiceWithSeed(1)
	roster := cast.InitialCharacters()
	males := models.FilterGender(roster, models.GenderMale)
	females := models.FilterGender(roster, models.GenderFemale)

	affinities := models.AffinityTable{
		models.AffinityKey("kenji", "yuki"):  80,
		models.AffinityKey("ryu", "hana"):    70,
		models.AffinityKey("takeshi", "mia"): 60,
	}

	topPairs := map[string]bool{
		models.AffinityKey("kenji", "yuki"):  true,
		models.AffinityKey("ryu", "hana"):    true,
		models.AffinityKey("takeshi", "mia"): true,
	}

	for i := 0; i < 50; i++ {
		selection := d.selectParticipants(models.EventConversation, males, females, affinities, roster)
		if len(selection.ids) != 2 {
			t.Fatalf("会话事件应该有2名参与者，实际: %d", len(selection.ids))
		}
		key := models.AffinityKey(selection.mainMaleID, selection.mainFemaleID)
		if !topPairs[key] {
			t.Fatalf("参与者应该来自好感度前3的配对，实际: %s", key)
		}
	}
}

// TestSelectParticipantsJealousy 测试嫉妒事件带第三者
func TestSelectParticipantsJealousy(t *testing.T) {
	d := NewDirectorServiceWithSeed(1)
	roster := cast.InitialCharacters()
	males := models.FilterGender(roster, models.GenderMale)
	females := models.FilterGender(roster, models.GenderFemale)

	affinities := models.AffinityTable{
		models.AffinityKey("kenji", "yuki"): 80,
	}

	selection := d.selectParticipants(models.EventJealousy, males, females, affinities, roster)
	if len(selection.ids) != 3 {
		t.Fatalf("嫉妒事件应该有3名参与者，实际: %d", len(selection.ids))
	}
	if selection.mainMaleID != "kenji" || selection.mainFemaleID != "yuki" {
		t.Errorf("主角应该是最高好感度配对，实际: %s/%s", selection.mainMaleID, selection.mainFemaleID)
	}
	third := selection.ids[2]
	if third == "kenji" || third == "yuki" {
		t.Errorf("第三者不应是主角: %s", third)
	}
}

// TestSelectParticipantsGroup 测试集体活动的人数范围
func TestSelectParticipantsGroup(t *testing.T) {
	d := NewDirectorServiceWithSeed(3)
	roster := cast.InitialCharacters()
	males := models.FilterGender(roster, models.GenderMale)
	females := models.FilterGender(roster, models.GenderFemale)

	for i := 0; i < 50; i++ {
		selection := d.selectParticipants(models.EventGroupActivity, males, females, models.AffinityTable{}, roster)
		if len(selection.ids) < 3 || len(selection.ids) > 4 {
			t.Fatalf("集体活动应该有3〜4名参与者，实际: %d", len(selection.ids))
		}
		seen := make(map[string]bool)
		for _, id := range selection.ids {
			if seen[id] {
				t.Fatalf("参与者重复: %s", id)
			}
			seen[id] = true
		}
	}
}

// TestSelectParticipantsGroupMainsIncluded 测试小组主角一定包含在参与者里
// 随机抽样可能出现单一性别的小组，此时退回的主角也要补进参与者
func TestSelectParticipantsGroupMainsIncluded(t *testing.T) {
	d := NewDirectorServiceWithSeed(7)
	roster := cast.InitialCharacters()
	males := models.FilterGender(roster, models.GenderMale)
	females := models.FilterGender(roster, models.GenderFemale)

	affinities := models.AffinityTable{
		models.AffinityKey("kenji", "yuki"): 80,
	}

	for _, eventType := range []models.EventType{models.EventGroupActivity, models.EventDrama} {
		for i := 0; i < 200; i++ {
			selection := d.selectParticipants(eventType, males, females, affinities, roster)
			in := make(map[string]bool)
			for _, id := range selection.ids {
				in[id] = true
			}
			if selection.mainMaleID != "" && !in[selection.mainMaleID] {
				t.Fatalf("%s: 主角 %s 不在参与者里: %v", eventType, selection.mainMaleID, selection.ids)
			}
			if selection.mainFemaleID != "" && !in[selection.mainFemaleID] {
				t.Fatalf("%s: 主角 %s 不在参与者里: %v", eventType, selection.mainFemaleID, selection.ids)
			}
			if len(selection.ids) < 3 || len(selection.ids) > 4 {
				t.Fatalf("%s: 补进主角后人数应该仍在3〜4，实际: %d", eventType, len(selection.ids))
			}
		}
	}
}

// TestGenerateEventBasics 测试生成事件的完整性
func TestGenerateEventBasics(t *testing.T) {
	d := NewDirectorServiceWithSeed(42)
	req := testRequest()

	event, paradiseEvent, err := d.GenerateEvent(context.Background(), req)
	if err != nil {
		t.Fatalf("生成事件失败: %v", err)
	}
	if paradiseEvent != nil {
		t.Error("第1天早上不应产生Paradise约会")
	}

	if event.Title == "" || event.Narrative == "" {
		t.Error("事件缺少标题或叙事")
	}
	if event.Location != models.LocationInferno {
		t.Errorf("普通事件的地点应该是inferno，实际: %s", event.Location)
	}
	if len(event.Dialogue) == 0 {
		t.Error("事件应该至少有一句台词")
	}
	if len(event.InnerThoughts) == 0 {
		t.Error("事件应该有内心独白")
	}

	participants := make(map[string]bool)
	for _, id := range event.Participants {
		participants[id] = true
	}
	for _, change := range event.AffinityChanges {
		if !participants[change.FromID] || !participants[change.ToID] {
			t.Errorf("好感度变化引用了参与者之外的角色: %s → %s", change.FromID, change.ToID)
		}
		if change.Reason == "" {
			t.Error("好感度变化应该有理由")
		}
	}
}

// TestParadiseInviteAcceptance 测试高好感度邀请必定被接受
func TestParadiseInviteAcceptance(t *testing.T) {
	d := NewDirectorServiceWithSeed(1)

	// 好感度≥55时必定接受，无关随机
	for i := 0; i < 50; i++ {
		invite := d.buildParadiseInvite("kenji", "yuki", 65)
		if !invite.Accepted {
			t.Fatal("好感度65的邀请应该必定被接受")
		}
		if invite.InviterID != "kenji" || invite.InviteeID != "yuki" {
			t.Fatalf("邀请双方不正确: %s → %s", invite.InviterID, invite.InviteeID)
		}
		if invite.InviterMessage == "" || invite.InviteeResponse == "" {
			t.Fatal("邀请应该带双方的台词")
		}
	}

	// 低好感度时两种结果都应该出现
	accepted, rejected := false, false
	for i := 0; i < 200; i++ {
		invite := d.buildParadiseInvite("kenji", "yuki", 10)
		if invite.Accepted {
			accepted = true
		} else {
			rejected = true
		}
	}
	if !accepted || !rejected {
		t.Error("低好感度的邀请应该既有接受也有拒绝")
	}
}

// TestParadiseInviteGeneratesDate 测试被接受的邀请触发约会事件
func TestParadiseInviteGeneratesDate(t *testing.T) {
	d := NewDirectorServiceWithSeed(42)
	req := testRequest()
	req.Day = 2
	req.TimeOfDay = models.TimeAfternoon
	req.Affinities = models.AffinityTable{
		models.AffinityKey("kenji", "yuki"): 65,
	}

	roster := req.Characters
	males := models.FilterGender(roster, models.GenderMale)
	females := models.FilterGender(roster, models.GenderFemale)

	event, paradiseEvent, err := d.generateEventOfType(models.EventParadiseInvite, req, males, females, roster)
	if err != nil {
		t.Fatalf("生成邀请事件失败: %v", err)
	}

	if event.ParadiseInvite == nil {
		t.Fatal("邀请事件应该携带邀请详情")
	}
	// kenji×yuki好感度65是唯一非零配对，必然成为主角且必定接受
	if !event.ParadiseInvite.Accepted {
		t.Fatal("好感度65的邀请应该被接受")
	}
	if paradiseEvent == nil {
		t.Fatal("被接受的邀请应该触发Paradise约会事件")
	}
	if paradiseEvent.EventType != models.EventParadiseDate {
		t.Errorf("约会事件类型不正确: %s", paradiseEvent.EventType)
	}
	if paradiseEvent.Location != models.LocationParadise {
		t.Errorf("约会地点应该是paradise，实际: %s", paradiseEvent.Location)
	}

	// 邀请[8,15] + 约会[15,25]，两个事件的总变化在[23,40]
	total := 0
	for _, change := range event.AffinityChanges {
		total += change.Change
	}
	for _, change := range paradiseEvent.AffinityChanges {
		total += change.Change
	}
	if total < 23 || total > 40 {
		t.Errorf("邀请+约会的好感度总变化应该在[23,40]，实际: %d", total)
	}
}

// TestAffinityDeltaRanges 测试各类型事件的变化范围
func TestAffinityDeltaRanges(t *testing.T) {
	d := NewDirectorServiceWithSeed(9)

	tests := []struct {
		eventType models.EventType
		affinity  int
		min, max  int
	}{
		{models.EventConversation, 60, 5, 12},
		{models.EventConversation, 30, 3, 9},
		{models.EventGroupActivity, 0, 2, 8},
		{models.EventConfession, 70, 10, 20},
		{models.EventConfession, 40, 5, 12},
		{models.EventParadiseInvite, 60, 8, 15},
		{models.EventParadiseDate, 60, 15, 25},
		{models.EventJealousy, 50, -8, 10},
		{models.EventDrama, 50, -10, 8},
	}

	for _, tt := range tests {
		for i := 0; i < 50; i++ {
			changes := d.calcAffinityChanges(tt.eventType, "kenji", "yuki", tt.affinity)
			if len(changes) != 1 {
				t.Fatalf("%s 应该产生1个变化，实际: %d", tt.eventType, len(changes))
			}
			if changes[0].Change < tt.min || changes[0].Change > tt.max {
				t.Fatalf("%s 好感度%d的变化应该在[%d,%d]，实际: %d",
					tt.eventType, tt.affinity, tt.min, tt.max, changes[0].Change)
			}
		}
	}
}

// TestGenerateCeremonyGreedy 测试仪式的贪心配对
func TestGenerateCeremonyGreedy(t *testing.T) {
	d := NewDirectorServiceWithSeed(1)

	req := &models.GenerateCeremonyRequest{
		Characters: cast.InitialCharacters(),
		Affinities: models.AffinityTable{
			models.AffinityKey("kenji", "yuki"):  80,
			models.AffinityKey("ryu", "hana"):    50,
			models.AffinityKey("takeshi", "mia"): 30, // 低于门槛45
			models.AffinityKey("kenji", "hana"):  75, // kenji已被更高配对占用
		},
	}

	result, err := d.GenerateCeremony(context.Background(), req)
	if err != nil {
		t.Fatalf("生成仪式失败: %v", err)
	}

	if len(result.Couples) != 2 {
		t.Fatalf("期望2对情侣，实际: %d", len(result.Couples))
	}
	if result.Couples[0].Person1ID != "kenji" || result.Couples[0].Person2ID != "yuki" {
		t.Errorf("最高好感度配对应该先成立，实际: %+v", result.Couples[0])
	}
	if result.Couples[1].Person1ID != "ryu" || result.Couples[1].Person2ID != "hana" {
		t.Errorf("第二对应该是ryu×hana，实际: %+v", result.Couples[1])
	}

	// takeshi与mia低于门槛，落单
	uncoupled := make(map[string]bool)
	for _, id := range result.Uncoupled {
		uncoupled[id] = true
	}
	if !uncoupled["takeshi"] || !uncoupled["mia"] {
		t.Errorf("低于门槛的配对应该落单，实际落单: %v", result.Uncoupled)
	}

	if result.Narrative == "" {
		t.Error("仪式应该有叙事")
	}
	if len(result.Dialogue) == 0 {
		t.Error("仪式应该有感言")
	}
}

// TestGenerateCeremonyNoCouples 测试全员低好感度时无人配对
func TestGenerateCeremonyNoCouples(t *testing.T) {
	d := NewDirectorServiceWithSeed(1)

	req := &models.GenerateCeremonyRequest{
		Characters: cast.InitialCharacters(),
		Affinities: models.AffinityTable{},
	}

	result, err := d.GenerateCeremony(context.Background(), req)
	if err != nil {
		t.Fatalf("生成仪式失败: %v", err)
	}
	if len(result.Couples) != 0 {
		t.Errorf("好感度全为0时不应有情侣，实际: %d", len(result.Couples))
	}
	if len(result.Uncoupled) != 6 {
		t.Errorf("全员应该落单，实际: %d", len(result.Uncoupled))
	}
}
