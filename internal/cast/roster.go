// internal/cast/roster.go
package cast

import (
	"math/rand"

	"github.com/Corphon/AIslandInferno/internal/models"
)

// 固定出演名单，开局时拷贝进GameState
var initialCharacters = []models.Character{
	// --- 男性 ---
	{
		ID:             "kenji",
		Name:           "Kenji",
		NameJP:         "健二",
		Age:            28,
		Occupation:     "建築家",
		OccupationHint: "何かをデザインする仕事",
		Personality:    "冷静で自信満々だが、内側に深いロマンチストを隠している。計算高く見えるが、本当に好きな人の前では意外と不器用になる。",
		Background:     "都内の有名設計事務所で働くエリート。仕事一筋で恋愛を後回しにしてきたが、最近「このままでいいのか」と感じ始めた。",
		Interests:      []string{"建築", "ジャズ", "アート", "ランニング"},
		DatingStyle:    "慎重に相手を観察する。好意を持ったらじっくりアプローチ。軽い関係を好まない。",
		Avatar:         "🧑‍💼",
		Gender:         models.GenderMale,
		Color:          "#6366f1",
	},
	{
		ID:             "ryu",
		Name:           "Ryu",
		NameJP:         "龍",
		Age:            26,
		Occupation:     "ミュージシャン",
		OccupationHint: "クリエイティブな仕事",
		Personality:    "情熱的で感受性が高く、気持ちをストレートに表現する。衝動的で正直すぎるほど正直。好きになったら一直線だが、嫉妬深い面もある。",
		Background:     "インディーズバンドのギタリスト。最近メジャーデビューが決まりかけている。自由奔放に生きてきたが、誰かと深く繋がりたいと思い始めた。",
		Interests:      []string{"音楽", "ライブ", "映画", "自転車"},
		DatingStyle:    "一目惚れタイプ。感情を隠せず、好きな人にはすぐ行動に出る。",
		Avatar:         "🎸",
		Gender:         models.GenderMale,
		Color:          "#f59e0b",
	},
	{
		ID:             "takeshi",
		Name:           "Takeshi",
		NameJP:         "剛",
		Age:            31,
		Occupation:     "外科医",
		OccupationHint: "人を助ける専門的な仕事",
		Personality:    "穏やかで知的、言葉は少ないが行動で示す。周囲をよく観察し、誰よりも相手の気持ちを理解しようとする。安定した強さを持つ。",
		Background:     "大学病院の外科医。忙しい仕事の中でも自分の時間を大切にする。真剣な出会いを求めてここに来た。",
		Interests:      []string{"料理", "登山", "読書", "ヨガ"},
		DatingStyle:    "焦らず相手のペースに合わせる。信頼関係を築くことを最優先にする。",
		Avatar:         "🩺",
		Gender:         models.GenderMale,
		Color:          "#10b981",
	},
	// --- 女性 ---
	{
		ID:             "yuki",
		Name:           "Yuki",
		NameJP:         "雪",
		Age:            24,
		Occupation:     "ファッションデザイナー",
		OccupationHint: "見た目やスタイルに関わる仕事",
		Personality:    "明るくエネルギッシュ、負けず嫌い。表面はサバサバしているが、恋愛では意外と繊細でガラスのハートを持つ。競争心が強い。",
		Background:     "新進気鋭のデザイナー。自分ブランドを立ち上げたばかり。仕事も恋愛も全力投球がモットー。",
		Interests:      []string{"ファッション", "ショッピング", "ダンス", "SNS"},
		DatingStyle:    "気になった人には積極的。でも本命には逆にツンデレになってしまう。",
		Avatar:         "👗",
		Gender:         models.GenderFemale,
		Color:          "#ec4899",
	},
	{
		ID:             "hana",
		Name:           "Hana",
		NameJP:         "花",
		Age:            27,
		Occupation:     "弁護士",
		OccupationHint: "論理的で専門的な仕事",
		Personality:    "クールで知的、ミステリアスな雰囲気を持つ。感情を表に出さないが、内心では誰よりも熱く燃えている。プライドが高く、簡単には心を開かない。",
		Background:     "大手法律事務所のエリート弁護士。仕事では完璧主義者だが、恋愛では自分でもびっくりするくらい不器用になる。",
		Interests:      []string{"読書", "ワイン", "アート鑑賞", "ジム"},
		DatingStyle:    "受け身に見えるが実は相手を慎重に選んでいる。一度心を開いたら深く愛する。",
		Avatar:         "⚖️",
		Gender:         models.GenderFemale,
		Color:          "#8b5cf6",
	},
	{
		ID:             "mia",
		Name:           "Mia",
		NameJP:         "美亜",
		Age:            25,
		Occupation:     "シェフ",
		OccupationHint: "人を喜ばせることが好きな仕事",
		Personality:    "温かく親しみやすい雰囲気で誰とでも仲良くなれる。一見天然だが実は空気を読むのが上手く、巧みに場を操れる策士な面も持つ。",
		Background:     "フレンチレストランのシェフ。料理で人を幸せにすることが生きがい。外見とは裏腹に芯が強く、好きな人のためなら行動力を発揮する。",
		Interests:      []string{"料理", "カフェ巡り", "映画", "ガーデニング"},
		DatingStyle:    "料理でハートをつかむ。相手に安心感を与えるのが得意。競争より共感を大切にする。",
		Avatar:         "👩‍🍳",
		Gender:         models.GenderFemale,
		Color:          "#f97316",
	},
}

// InitialCharacters 返回出演名单的独立副本
func InitialCharacters() []models.Character {
	roster := make([]models.Character, len(initialCharacters))
	copy(roster, initialCharacters)
	return roster
}

// BuildInitialAffinities 为每个男女配对生成初始好感度（0〜19的小随机值）
func BuildInitialAffinities(rng *rand.Rand) models.AffinityTable {
	table := make(models.AffinityTable)
	males := models.FilterGender(initialCharacters, models.GenderMale)
	females := models.FilterGender(initialCharacters, models.GenderFemale)

	for _, m := range males {
		for _, f := range females {
			table[models.AffinityKey(m.ID, f.ID)] = rng.Intn(20)
		}
	}
	return table
}
