// internal/cast/lines.go
package cast

import (
	"math/rand"

	"github.com/Corphon/AIslandInferno/internal/models"
)

// Line 预置台词（文本＋情绪）
type Line struct {
	Text    string
	Emotion models.Emotion
}

// 台词库的情境键，由事件类型映射而来
const (
	CtxConversationOpen     = "conversation_open"
	CtxConversationResponse = "conversation_response"
	CtxConfession           = "confession"
	CtxParadiseInvite       = "paradise_invite"
	CtxJealousy             = "jealousy"
	CtxParadiseDate         = "paradise_date"
)

// characterLines 按（角色ID，情境键）索引的台词库
// paradise_date 的台词会揭示角色的真实职业
var characterLines = map[string]map[string][]Line{
	"kenji": {
		CtxConversationOpen: {
			{Text: "…ここは想像以上に過酷な場所だな。", Emotion: models.EmotionDefault},
			{Text: "どんな仕事をしてるんだ？直接は聞けないけど。", Emotion: models.EmotionDefault},
			{Text: "君はここにいる他の人と、どこか違う気がする。", Emotion: models.EmotionFlirty},
			{Text: "正直に言うと、君のことが少し気になってた。", Emotion: models.EmotionNervous},
		},
		CtxConversationResponse: {
			{Text: "そうか…なかなか面白い考え方だな。", Emotion: models.EmotionHappy},
			{Text: "俺も同じようなことを考えてた。", Emotion: models.EmotionHappy},
			{Text: "…意外と、話が合うな。", Emotion: models.EmotionFlirty},
		},
		CtxConfession: {
			{Text: "計算外だった。こんなに誰かを意識するとは思ってなかった。", Emotion: models.EmotionNervous},
			{Text: "ここを離れた後も、君のことを考えてる自分がいる。", Emotion: models.EmotionFlirty},
		},
		CtxParadiseInvite: {
			{Text: "もし良ければ、二人で過ごす時間を作れないか。", Emotion: models.EmotionNervous},
			{Text: "一対一で、ゆっくり話したいと思ってる。", Emotion: models.EmotionFlirty},
		},
		CtxJealousy: {
			{Text: "…あいつと何を話してたんだ？", Emotion: models.EmotionAngry},
			{Text: "俺は、気にしてないつもりだったんだが。", Emotion: models.EmotionSad},
		},
		CtxParadiseDate: {
			{Text: "実は…建築の仕事をしてる。人々が暮らす空間をデザインするのが好きで。", Emotion: models.EmotionNervous},
			{Text: "君といると、こんなに素直になれる自分が不思議だ。", Emotion: models.EmotionHappy},
		},
	},
	"ryu": {
		CtxConversationOpen: {
			{Text: "ねえ、ちょっと聞いていい？正直、君のこと気になって仕方ないんだよ。", Emotion: models.EmotionFlirty},
			{Text: "音楽みたいに、君も俺の中で響いてくる気がするんだよね。", Emotion: models.EmotionFlirty},
			{Text: "なんか…ここにいる全員の中で、君だけ目に入るんだよね。", Emotion: models.EmotionNervous},
			{Text: "直接言うのが好きなんだ。君のこと、すごく気になってる。", Emotion: models.EmotionHappy},
		},
		CtxConversationResponse: {
			{Text: "え、マジで？俺もそう思ってた！", Emotion: models.EmotionHappy},
			{Text: "そういうとこ、かわいいと思う。", Emotion: models.EmotionFlirty},
			{Text: "正直すぎて引いてる？ごめん、でもこれが俺だから。", Emotion: models.EmotionNervous},
		},
		CtxConfession: {
			{Text: "好きになった。はっきり言う。付き合いたいかはまだわからないけど、それくらい気になってる。", Emotion: models.EmotionHappy},
			{Text: "嫉妬してるって自覚はある。でも止められない。", Emotion: models.EmotionAngry},
		},
		CtxParadiseInvite: {
			{Text: "二人きりになりたい。来てくれる？", Emotion: models.EmotionFlirty},
			{Text: "パラダイスに一緒に行こう。今すぐ決めたい。", Emotion: models.EmotionHappy},
		},
		CtxJealousy: {
			{Text: "あいつと仲良さそうにしてるの、全然見たくなかった。", Emotion: models.EmotionAngry},
			{Text: "嫉妬だよ、完全に。認める。", Emotion: models.EmotionSad},
		},
		CtxParadiseDate: {
			{Text: "俺、ミュージシャンやってるんだ。もうすぐメジャーデビューする予定で。", Emotion: models.EmotionHappy},
			{Text: "君のために曲を書いてみたいって思ってる。本気で。", Emotion: models.EmotionFlirty},
		},
	},
	"takeshi": {
		CtxConversationOpen: {
			{Text: "少し疲れてないか？顔色が気になった。", Emotion: models.EmotionDefault},
			{Text: "君が笑うと、周りが明るくなる気がする。", Emotion: models.EmotionHappy},
			{Text: "ゆっくり話せて良かった。急がなくていいと思ってるから。", Emotion: models.EmotionDefault},
			{Text: "大事なのは相手のペースを大切にすることだと思ってる。", Emotion: models.EmotionDefault},
		},
		CtxConversationResponse: {
			{Text: "そうだな。俺もそう思う。", Emotion: models.EmotionHappy},
			{Text: "君の言う通りだ。ありがとう。", Emotion: models.EmotionHappy},
			{Text: "…そんなふうに考えたことはなかった。教えてくれてよかった。", Emotion: models.EmotionNervous},
		},
		CtxConfession: {
			{Text: "言葉より行動で示したいと思ってきたけど、今は言わなきゃと思ってる。君が気になってる。", Emotion: models.EmotionNervous},
			{Text: "急がせるつもりはない。ただ、伝えたかった。", Emotion: models.EmotionDefault},
		},
		CtxParadiseInvite: {
			{Text: "良ければ、二人でゆっくり話せる場所に行かないか。", Emotion: models.EmotionNervous},
			{Text: "パラダイスに来てほしい。急がなくていい。", Emotion: models.EmotionDefault},
		},
		CtxJealousy: {
			{Text: "…何でもない。ただ、少し気になっただけだ。", Emotion: models.EmotionSad},
			{Text: "彼女には、彼女のペースがある。わかってる。", Emotion: models.EmotionSad},
		},
		CtxParadiseDate: {
			{Text: "外科医をしてる。命に関わる仕事だから、真剣にやってる。", Emotion: models.EmotionNervous},
			{Text: "君といると、仕事を忘れてしまう。これは…珍しいことだ。", Emotion: models.EmotionHappy},
		},
	},
	"yuki": {
		CtxConversationOpen: {
			{Text: "えっ、負けたくないんだけど！なんか悔しい！", Emotion: models.EmotionAngry},
			{Text: "なんかあなたのそういうとこ、ちょっとズルいですよ？", Emotion: models.EmotionFlirty},
			{Text: "普通に話せたね。ちょっと意外かも。", Emotion: models.EmotionHappy},
			{Text: "絶対諦めないから、これだけは言っておきますね！", Emotion: models.EmotionHappy},
		},
		CtxConversationResponse: {
			{Text: "え？本当に？うれしい…あ、でも顔に出てたかな。", Emotion: models.EmotionNervous},
			{Text: "そんなこと言う人、初めてかも。", Emotion: models.EmotionFlirty},
			{Text: "ちょっと待って、なんで心拍数上がってるの私。", Emotion: models.EmotionNervous},
		},
		CtxConfession: {
			{Text: "負けを認めるのは嫌いだけど…好きになってる。あなたのこと。", Emotion: models.EmotionNervous},
			{Text: "本命に対してはツンデレになるって言われるけど、今まさにそれかも。", Emotion: models.EmotionFlirty},
		},
		CtxParadiseInvite: {
			{Text: "行っていい？パラダイス。あなたと一緒に！", Emotion: models.EmotionHappy},
			{Text: "誘ってくれるなら絶対行く！待ってたんだから！", Emotion: models.EmotionHappy},
		},
		CtxJealousy: {
			{Text: "ちょっと！なんで他の子と仲良くしてるんですか！", Emotion: models.EmotionAngry},
			{Text: "別に気にしてないですけど……全然気にしてます。", Emotion: models.EmotionSad},
		},
		CtxParadiseDate: {
			{Text: "ファッションデザイナーやってます！自分のブランドを立ち上げたばかりで。", Emotion: models.EmotionHappy},
			{Text: "デザインって、見た目だけじゃなくて気持ちを形にすることだと思ってる。", Emotion: models.EmotionHappy},
		},
	},
	"hana": {
		CtxConversationOpen: {
			{Text: "…そう。あなたは意外と、観察眼があるのね。", Emotion: models.EmotionDefault},
			{Text: "私が心を開くまで待てる人？簡単じゃないわよ。", Emotion: models.EmotionDefault},
			{Text: "あなたには、何か惹かれるものを感じる。珍しいことよ。", Emotion: models.EmotionFlirty},
			{Text: "答えは、もう少し待って。", Emotion: models.EmotionDefault},
		},
		CtxConversationResponse: {
			{Text: "…ふふ。予想外の返しね。", Emotion: models.EmotionHappy},
			{Text: "そういう人、嫌いじゃないわ。", Emotion: models.EmotionFlirty},
			{Text: "少し、あなたに興味が出てきた。", Emotion: models.EmotionHappy},
		},
		CtxConfession: {
			{Text: "こんなに早く人を好きになるとは思ってなかった。少し怖いくらい。", Emotion: models.EmotionNervous},
			{Text: "普段は絶対言わないんだけど…気になってる。あなたのことが。", Emotion: models.EmotionNervous},
		},
		CtxParadiseInvite: {
			{Text: "…パラダイス、一緒に行ってもいいわよ。", Emotion: models.EmotionDefault},
			{Text: "行きましょう。あなたともっと話したいから。", Emotion: models.EmotionHappy},
		},
		CtxJealousy: {
			{Text: "…別に、構わないけれど。", Emotion: models.EmotionSad},
			{Text: "こんな感情、自分でも珍しい。少し、妬いてるかもしれない。", Emotion: models.EmotionAngry},
		},
		CtxParadiseDate: {
			{Text: "弁護士よ。人の権利を守る仕事。やりがいはあるけど、孤独なこともある。", Emotion: models.EmotionDefault},
			{Text: "あなたといると…ガードが下がる気がする。怖いような、嬉しいような。", Emotion: models.EmotionNervous},
		},
	},
	"mia": {
		CtxConversationOpen: {
			{Text: "あ〜もう！かわいいこと言わないでください！照れます！", Emotion: models.EmotionHappy},
			{Text: "料理の話してもいいですか？美味しいもので人って繋がれると思うんですよね。", Emotion: models.EmotionHappy},
			{Text: "なんかお腹空きました。一緒に何か食べられたらいいのに。", Emotion: models.EmotionHappy},
			{Text: "あなたって、見た目よりずっと面白い人ですよ。", Emotion: models.EmotionFlirty},
		},
		CtxConversationResponse: {
			{Text: "えっ、本当ですか！？うれしい〜！", Emotion: models.EmotionHappy},
			{Text: "私もそう思ってました。なんか嬉しいな。", Emotion: models.EmotionHappy},
			{Text: "ふふ、あなたってそういうとこありますよね。好きですよそういうの。", Emotion: models.EmotionFlirty},
		},
		CtxConfession: {
			{Text: "本当は…ずっと気になってたんです。でも言えなくて。", Emotion: models.EmotionNervous},
			{Text: "あなたのそばにいると自然に笑顔になれる。それって、大事なことだと思う。", Emotion: models.EmotionHappy},
		},
		CtxParadiseInvite: {
			{Text: "え、誘ってくれるんですか！？行きたいです、絶対！", Emotion: models.EmotionHappy},
			{Text: "パラダイスで一緒に過ごせるなんて…やった！", Emotion: models.EmotionHappy},
		},
		CtxJealousy: {
			{Text: "ん〜…別に全然気にしてないですよ？（気にしてます）", Emotion: models.EmotionSad},
			{Text: "あの二人、仲いいですね。…なんか複雑だな。", Emotion: models.EmotionSad},
		},
		CtxParadiseDate: {
			{Text: "シェフなんです！フレンチレストランで働いてて。料理で人を幸せにしたいと思ってる。", Emotion: models.EmotionHappy},
			{Text: "いつかあなたに、私の料理を食べてもらいたいな。絶対喜んでもらえる自信ある！", Emotion: models.EmotionFlirty},
		},
	},
}

// 内心独白库，按好感度走向分正负两组
var positiveThoughts = map[string][]string{
	"kenji": {
		"なぜこんなに気になるんだ…計算外だ。",
		"普段こんな気持ちにはならないのに。",
		"君のそばにいると、自然体でいられる。不思議だ。",
	},
	"ryu": {
		"やばい、こんなに好きになるとは思わなかった。",
		"彼女のそばにいると自然体でいられる。",
		"このまま気持ちを伝えたい。でも怖い。",
	},
	"takeshi": {
		"この人ともっと話したい。",
		"言葉にするより、そばにいることの方が大切なのかもしれない。",
		"彼女のことを、ゆっくり知っていきたい。",
	},
	"yuki": {
		"なんで緊張してるんだろ…全然こんなはずじゃなかった。",
		"勝ちたいのに、負けてもいいかなって思い始めてる自分がいる。",
		"あの人の前だと、なんか素直になれる。",
	},
	"hana": {
		"珍しい。こんなに話したいと思う人は久しぶりだ。",
		"ガードを下げたくない。でも…下げてもいいかもしれない。",
		"この人は信頼できる気がする。根拠はないけれど。",
	},
	"mia": {
		"ふふ、思ったより落ちてくれそう。作戦通り…ではなく、本当に好きかも。",
		"この人のそばにいると、自然と笑顔になれる。",
		"かわいいな〜。なんで隠してるんだろ、この人。",
	},
}

var negativeThoughts = map[string][]string{
	"kenji": {
		"焦るのは俺らしくない。もう少し様子を見よう。",
		"まだ相手のことを理解しきれていない。",
	},
	"ryu": {
		"落ち着けよ俺。焦りすぎだ。",
		"なんで俺ばかりこんなに消耗してるんだ。",
	},
	"takeshi": {
		"焦りは禁物だ。信頼関係が先だ。",
		"もう少し時間をかけよう。",
	},
	"yuki": {
		"プライド邪魔してる。わかってるけど止められない。",
		"競争は得意なのに、恋愛だと途端に弱くなる。",
	},
	"hana": {
		"プライドが邪魔をしてる。わかってる。",
		"ペースを乱されてる。これは想定外。",
	},
	"mia": {
		"あんまり素直に出しすぎたかな。少し引かれたかも。",
		"距離感、間違えたかも。でも後悔はしてない。",
	},
}

// ceremonyLines 最终仪式上每位角色的发言库
var ceremonyLines = map[string][]string{
	"kenji": {
		"3日間、正直自分でも驚いている。こんなに誰かを意識したのは初めてかもしれない。",
		"計算していなかったことが起きた。それが、答えだと思う。",
	},
	"ryu": {
		"音楽と同じだ。心が動いたら、それが全てだと思う。",
		"迷ってる暇はない。俺は正直に行く。",
	},
	"takeshi": {
		"ここで過ごした時間は、本物だったと思っている。",
		"言葉より行動。そう生きてきた。でも今日だけは言葉にする。",
	},
	"yuki": {
		"負けず嫌いな私が、初めて勝ちより大事なものを見つけた気がする。",
		"全力で来た。それだけは胸を張って言える。",
	},
	"hana": {
		"こんなに早く心を動かされるとは思っていなかった。",
		"ガードが下がった。それが答えだと思う。",
	},
	"mia": {
		"料理と同じ。素材が良ければ、自然と美味しくなる。あなたはそういう人だった。",
		"笑顔でいられる人がいる。それだけで十分だった。",
	},
}

// rejectionPhrases 拒绝Paradise邀请时的固定回复
var rejectionPhrases = []string{
	"今は、一緒には行けないかな。ごめんなさい。",
	"もう少し考えさせて。",
}

// PickLine 从台词库随机取一句，未知角色或情境返回占位台词
func PickLine(rng *rand.Rand, charID, ctx string) Line {
	entries := characterLines[charID][ctx]
	if len(entries) == 0 {
		return Line{Text: "…。", Emotion: models.EmotionDefault}
	}
	return entries[rng.Intn(len(entries))]
}

// PickThought 随机取一条内心独白
func PickThought(rng *rand.Rand, charID string, positive bool) string {
	bank := negativeThoughts
	fallback := "難しいな…。"
	if positive {
		bank = positiveThoughts
		fallback = "なんか、いい感じかも。"
	}

	entries := bank[charID]
	if len(entries) == 0 {
		return fallback
	}
	return entries[rng.Intn(len(entries))]
}

// PickCeremonyLine 随机取一句仪式发言，未知角色返回false
func PickCeremonyLine(rng *rand.Rand, charID string) (string, bool) {
	entries := ceremonyLines[charID]
	if len(entries) == 0 {
		return "", false
	}
	return entries[rng.Intn(len(entries))], true
}

// PickRejection 随机取一句拒绝邀请的回复
func PickRejection(rng *rand.Rand) string {
	return rejectionPhrases[rng.Intn(len(rejectionPhrases))]
}
