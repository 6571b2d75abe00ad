// internal/services/prompts.go
package services

import (
	"fmt"
	"strings"

	"github.com/Corphon/AIslandInferno/internal/models"
)

// affinityDesc 好感度数值的日文档位描述
func affinityDesc(val int) string {
	switch {
	case val >= 80:
		return "深く惹かれている"
	case val >= 60:
		return "気になっている"
	case val >= 40:
		return "意識している"
	case val >= 20:
		return "少し興味あり"
	default:
		return "ほぼ無関心"
	}
}

// formatAffinities 枚举所有未淘汰男女配对的好感度行
func formatAffinities(characters []models.Character, affinities models.AffinityTable) string {
	var sb strings.Builder
	males := models.FilterGender(activeOf(characters), models.GenderMale)
	females := models.FilterGender(activeOf(characters), models.GenderFemale)

	for _, m := range males {
		for _, f := range females {
			val := affinities.Get(m.ID, f.ID)
			fmt.Fprintf(&sb, "%s → %s: %d/100 (%s)\n", m.Name, f.Name, val, affinityDesc(val))
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// formatRecentEvents 最近4条事件的摘要，叙事截断到100字符
func formatRecentEvents(events []models.GameEvent) string {
	if len(events) == 0 {
		return "まだイベントなし"
	}
	start := 0
	if len(events) > 4 {
		start = len(events) - 4
	}
	lines := make([]string, 0, 4)
	for _, e := range events[start:] {
		narrative := []rune(e.Narrative)
		if len(narrative) > 100 {
			narrative = narrative[:100]
		}
		lines = append(lines, fmt.Sprintf("[%s] %s...", e.Title, string(narrative)))
	}
	return strings.Join(lines, "\n")
}

// formatParadisePairs Paradise经历的配对名单
func formatParadisePairs(pairs [][]string, characters []models.Character) string {
	if len(pairs) == 0 {
		return "なし"
	}
	nameOf := func(id string) string {
		for _, c := range characters {
			if c.ID == id {
				return c.Name
			}
		}
		return id
	}
	summaries := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		names := make([]string, 0, len(pair))
		for _, id := range pair {
			names = append(names, nameOf(id))
		}
		summaries = append(summaries, strings.Join(names, " & "))
	}
	return strings.Join(summaries, ", ")
}

// buildEventPrompt 组装普通事件的生成提示词
func buildEventPrompt(req *models.GenerateEventRequest) string {
	available := availableOf(req.Characters)
	timeLabel := models.TimeLabel(req.TimeOfDay)

	var profiles strings.Builder
	for i, c := range available {
		if i > 0 {
			profiles.WriteString("\n\n")
		}
		gender := "男性"
		if c.Gender == models.GenderFemale {
			gender = "女性"
		}
		fmt.Fprintf(&profiles, `【%s（%s）%d歳・%s】
  性格: %s
  仕事のヒント（インフェルノでは): %s
  恋愛スタイル: %s
  趣味: %s`,
			c.Name, c.NameJP, c.Age, gender,
			c.Personality, c.OccupationHint, c.DatingStyle,
			strings.Join(c.Interests, "、"))
	}

	return fmt.Sprintf(`あなたはリアリティ恋愛バラエティ番組「AI Island インフェルノ」のシナリオライターです。
Single Infernoのような緊迫感とドラマ性を演出してください。

=== 番組設定 ===
舞台: 無人島「インフェルノ」（過酷な環境）とリゾート「パラダイス」（豪華な環境）
日本語で会話します。職業は「パラダイス」に行くまで秘密です。
現在: %d日目の%s

=== 参加者プロフィール ===
%s

=== 現在の好感度（0-100）===
%s

=== これまでのパラダイス経験 ===
%s

=== 直近のイベント ===
%s

=== 指示 ===
%d日目%sにふさわしいドラマチックなイベントを1つ生成してください。

必ず以下のJSONフォーマットのみで回答してください（他のテキストは不要）:
{
  "title": "イベントタイトル（10文字以内）",
  "eventType": "conversation | group_activity | confession | paradise_invite | jealousy | drama",
  "location": "inferno",
  "participants": ["キャラクターIDの配列、2〜4人"],
  "narrative": "イベントの状況説明（100〜200文字）",
  "dialogue": [
    {"characterId": "ID", "text": "セリフ", "emotion": "happy|sad|nervous|flirty|angry|shocked|default"}
  ],
  "innerThoughts": [
    {"characterId": "ID", "thought": "本心（視聴者だけが知る内心）"}
  ],
  "affinityChanges": [
    {"fromId": "男性ID", "toId": "女性ID", "change": 数値(-15〜+25), "reason": "理由"}
  ],
  "paradiseInvite": null
}

eventTypeが "paradise_invite" の場合のみ paradiseInvite を設定:
{
  "inviterId": "誘う人のID",
  "inviteeId": "誘われる人のID",
  "accepted": true/false,
  "inviterMessage": "誘いの言葉",
  "inviteeResponse": "返答"
}

重要:
- participants には必ず実在するキャラクターIDを使用
- 好感度が高いペアは積極的に絡ませる
- 嫉妬、三角関係、予想外の展開を入れてドラマ性を高める
- セリフは自然で感情豊かに
- affinityChanges の fromId/toId は男性→女性 or 女性→男性のペアのみ`,
		req.Day, timeLabel,
		profiles.String(),
		formatAffinities(req.Characters, req.Affinities),
		formatParadisePairs(req.ParadisePairs, req.Characters),
		formatRecentEvents(req.RecentEvents),
		req.Day, timeLabel)
}

// buildParadiseDatePrompt 组装Paradise约会的生成提示词，这里允许公开职业
func buildParadiseDatePrompt(inviter, invitee models.Character, affinityVal int) string {
	return fmt.Sprintf(`あなたはリアリティ恋愛バラエティ番組のシナリオライターです。

「パラダイス」デートシーンを生成してください。
パラダイスでは職業を明かすことができ、二人だけの特別な時間を過ごします。

【%s】%d歳
職業: %s
性格: %s

【%s】%d歳
職業: %s
性格: %s

現在の好感度: %d/100

以下のJSONフォーマットのみで回答してください:
{
  "title": "パラダイスデート",
  "eventType": "paradise_date",
  "location": "paradise",
  "participants": ["%s", "%s"],
  "narrative": "パラダイスでの二人の様子（100〜200文字、職業を明かすシーン含む）",
  "dialogue": [
    {"characterId": "ID", "text": "セリフ（職業を明かすシーンを含む）", "emotion": "happy|flirty|nervous|default"}
  ],
  "innerThoughts": [
    {"characterId": "%s", "thought": "内心"},
    {"characterId": "%s", "thought": "内心"}
  ],
  "affinityChanges": [
    {"fromId": "男性ID", "toId": "女性ID", "change": 数値(10〜25), "reason": "パラダイスで距離が縮まった"}
  ]
}`,
		inviter.Name, inviter.Age, inviter.Occupation, inviter.Personality,
		invitee.Name, invitee.Age, invitee.Occupation, invitee.Personality,
		affinityVal,
		inviter.ID, invitee.ID,
		inviter.ID, invitee.ID)
}

// buildCeremonyPrompt 组装最终仪式的生成提示词
func buildCeremonyPrompt(req *models.GenerateCeremonyRequest) string {
	active := activeOf(req.Characters)

	names := make([]string, 0, len(active))
	for _, c := range active {
		gender := "男"
		if c.Gender == models.GenderFemale {
			gender = "女"
		}
		names = append(names, fmt.Sprintf("%s（%s）", c.Name, gender))
	}

	highlightStart := 0
	if len(req.Events) > 6 {
		highlightStart = len(req.Events) - 6
	}
	highlights := make([]string, 0, 6)
	for _, e := range req.Events[highlightStart:] {
		highlights = append(highlights, e.Title)
	}

	return fmt.Sprintf(`あなたはリアリティ恋愛バラエティ番組「AI Island インフェルノ」の最終カップリングセレモニーのシナリオライターです。

=== 参加者 ===
%s

=== 最終好感度 ===
%s

=== パラダイス経験 ===
%s

=== 番組ハイライト ===
%s

最終カップリングセレモニーのシーンを生成してください。
高い好感度のペアが結ばれるように設定してください。

以下のJSONフォーマットのみで回答してください:
{
  "narrative": "セレモニーの状況説明（150〜250文字）",
  "dialogue": [
    {"characterId": "ID", "text": "感動的なセリフ", "emotion": "happy|sad|nervous|default"}
  ],
  "couples": [
    {"person1Id": "男性ID", "person2Id": "女性ID"}
  ],
  "uncoupled": ["カップルになれなかったキャラクターIDの配列"]
}

カップルは好感度60以上のペアから選んでください。
カップルになれなかった人は uncoupled に入れてください。`,
		strings.Join(names, "、"),
		formatAffinities(req.Characters, req.Affinities),
		formatParadisePairs(req.ParadisePairs, req.Characters),
		strings.Join(highlights, "、"))
}
