// internal/cast/templates.go
package cast

import (
	"math/rand"
	"strconv"
	"strings"

	"github.com/Corphon/AIslandInferno/internal/models"
)

// 叙事模板里的占位符：{male} {female} {day} {time}
var narrativeTemplates = map[models.EventType][]string{
	models.EventConversation: {
		"{male}と{female}は浜辺を歩きながら、互いのことを話し始めた。波の音が二人の会話を包み込む。",
		"日差しが和らいだ頃、{male}は{female}に声をかけた。意外にも話は弾み、気づけば長い時間が経っていた。",
		"{female}が一人でいるところに、{male}が近づいた。初めはぎこちなかったが、次第に打ち解けていった。",
		"{time}の静かな時間、{male}と{female}はキャンプファイアのそばで向かい合い、深い話をした。",
		"{male}が{female}の趣味を尋ねたことをきっかけに、二人の距離は少しずつ縮まっていった。",
	},
	models.EventGroupActivity: {
		"DAY{day}の活動として、全員でビーチバレーをすることになった。チーム戦は予想外の盛り上がりを見せた。",
		"DAY{day}、参加者たちは一緒に食事の準備をすることになった。得意分野が違う者同士の共同作業は、笑いと驚きに溢れた。",
		"海岸沿いの探索ツアーが急遽企画された。険しい道でも、誰かが誰かを助ける場面が自然と生まれた。",
		"DAY{day}の夜、全員でキャンプファイアを囲んだ。炎を囲む中、本音が少しずつ零れ出した。",
		"DAY{day}、サバイバルスキルを競うゲームが行われた。意外な一面が次々と露わになった。",
	},
	models.EventConfession: {
		"夕暮れ時、{male}は意を決して{female}に声をかけた。誰もいない場所で、{male}は正直な気持ちを伝え始めた。",
		"{male}は今まで堪えていた気持ちを、{female}に打ち明けることにした。島に来て初めて感じる、本物の緊張だった。",
		"二人きりになった瞬間、{male}は{female}に向き直った。「ちゃんと伝えなければ」と思っていたことを、ついに口にする時が来た。",
	},
	models.EventParadiseInvite: {
		"{male}は{female}に近づき、囁くように声をかけた。パラダイスへの招待——その言葉に、{female}の表情が変わった。",
		"誰かに見られないよう、{male}は{female}をそっと呼んだ。二人だけの時間を過ごしたい、という真剣な眼差しだった。",
		"{male}は{female}に歩み寄り、静かに手を差し伸べた。「一緒にパラダイスへ行かないか」——その言葉は、島中に響き渡った。",
	},
	models.EventParadiseDate: {
		"パラダイスに到着した{male}と{female}。豪華な施設と美しい景色の中、二人はここで初めて素の自分を見せ合った。",
		"星空の下、{male}と{female}は向かい合い、秘めていた職業をついに明かした。驚きと共に、距離が一気に縮まった。",
		"インフェルノの喧騒から離れ、{male}と{female}だけの特別な時間が始まった。ここでは仮面を外して話せる気がした。",
	},
	models.EventJealousy: {
		"{male}と{female}が楽しそうに話しているのを、遠くから見ていた人物がいた。胸に広がる感情に、自分でも戸惑っていた。",
		"{female}が{male}以外の誰かと話し込んでいるのを見て、{male}の表情が僅かに曇った。嫉妬、と呼んでいいのかもしれない。",
		"{male}の視線が{female}を追っているのを、周りは気づいていた。本人だけが、その気持ちに気づいていなかった。",
	},
	models.EventDrama: {
		"突然、{male}と{female}の間で言い争いが起きた。積み重なっていた感情が、ここで一気に噴き出した。",
		"島の中に緊張が走った。{male}と{female}の関係を巡り、参加者たちの間で見えない駆け引きが始まった。",
		"{male}の言葉が、{female}の心を予期せず傷つけた。誰もが息を呑む、緊張の瞬間が訪れた。",
	},
	models.EventIntroduction: {
		"{male}と{female}が初めて挨拶を交わした。互いの第一印象を確かめるような、緊張感ある一瞬だった。",
	},
	models.EventCeremony: {
		"3日間の熱いドラマが終わり、ついに最終カップリングセレモニーが始まった。参加者たちは固唾を飲んで見守った。",
		"夕暮れの浜辺に全員が集まった。誰と誰が結ばれるのか、固定された視線の中でセレモニーが幕を開けた。",
	},
}

var titleTemplates = map[models.EventType][]string{
	models.EventConversation:   {"二人の時間", "素顔の対話", "本音と建前", "浜辺の告白寸前", "距離が縮まる"},
	models.EventGroupActivity:  {"チーム戦勃発", "共同作業の夜", "サバイバル合戦", "星空の下で", "嵐の前夜"},
	models.EventConfession:     {"勇気の言葉", "本気の告白", "心の扉", "ついに動いた", "想いの決壊"},
	models.EventParadiseInvite: {"パラダイスへの誘い", "特別な招待状", "二人だけの約束", "扉が開く瞬間"},
	models.EventParadiseDate:   {"パラダイスの奇跡", "秘密の開示", "素顔の二人", "運命の出会い直し"},
	models.EventJealousy:       {"嫉妬の炎", "見てられない", "揺れる心", "見えない壁", "心の乱れ"},
	models.EventDrama:          {"波紋", "緊迫の瞬間", "感情の爆発", "誤解と真実", "嵐の前夜"},
	models.EventIntroduction:   {"はじめまして", "第一印象"},
	models.EventCeremony:       {"最終カップリング"},
}

// ceremonyNarratives 最终仪式的开场叙事
var ceremonyNarratives = []string{
	"3日間のドラマがついに幕を閉じる。星空の下、全員が浜辺に集まり、互いの目を見つめ合った。誰が誰を選ぶのか——固唾を飲む瞬間が来た。",
	"最終カップリングセレモニーが始まった。無人島での出来事が走馬灯のように蘇る中、参加者たちは運命の選択の時を迎えた。",
	"インフェルノの夜、炎に照らされながら全員が一堂に会した。恋愛ドラマの最終章——誰の心が誰に向いているのか、答え合わせの時間だ。",
}

// PickTitle 随机取一个事件标题
func PickTitle(rng *rand.Rand, eventType models.EventType) string {
	titles := titleTemplates[eventType]
	if len(titles) == 0 {
		return "イベント"
	}
	return titles[rng.Intn(len(titles))]
}

// PickNarrative 随机取一条叙事模板并完成插值
func PickNarrative(rng *rand.Rand, eventType models.EventType, maleName, femaleName string, day int, timeLabel string) string {
	templates := narrativeTemplates[eventType]
	if len(templates) == 0 {
		return maleName + "と" + femaleName + "の間で何かが起きた。"
	}

	replacer := strings.NewReplacer(
		"{male}", maleName,
		"{female}", femaleName,
		"{day}", strconv.Itoa(day),
		"{time}", timeLabel,
	)
	return replacer.Replace(templates[rng.Intn(len(templates))])
}

// PickCeremonyNarrative 随机取一条仪式叙事
func PickCeremonyNarrative(rng *rand.Rand) string {
	return ceremonyNarratives[rng.Intn(len(ceremonyNarratives))]
}
