// cmd/demo/main.go
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Corphon/AIslandInferno/internal/config"
	"github.com/Corphon/AIslandInferno/internal/models"
	"github.com/Corphon/AIslandInferno/internal/services"
)

func main() {
	fmt.Println("🔥 AI Island インフェルノ Console")
	fmt.Println("=================================")

	baseConfig, err := config.Load()
	if err != nil {
		log.Printf("❌ 加载基础配置失败: %v", err)
		return
	}

	// 离线模式只需要规则引擎
	rules := services.NewDirectorService()
	game := services.NewGameService(rules, nil, baseConfig)

	if _, err := game.Start(); err != nil {
		log.Printf("❌ 开始游戏失败: %v", err)
		return
	}

	fmt.Println()
	printCast(game.State())
	fmt.Println()
	fmt.Println("Enterで次のイベント、q + Enterで終了")

	scanner := bufio.NewScanner(os.Stdin)
	ctx := context.Background()

	for {
		state := game.State()

		switch state.Phase {
		case models.PhasePlaying:
			if !waitForEnter(scanner) {
				return
			}
			next, err := game.Advance(ctx)
			if err != nil {
				log.Printf("❌ イベント生成に失敗: %v", err)
				continue
			}
			printEvent(next)

		case models.PhaseCeremony:
			fmt.Println()
			fmt.Println("💕 最終カップリングセレモニー")
			if !waitForEnter(scanner) {
				return
			}
			next, err := game.TriggerCeremony(ctx)
			if err != nil {
				log.Printf("❌ セレモニー生成に失敗: %v", err)
				continue
			}
			printEvent(next)

		case models.PhaseResults:
			printResults(game.State())
			return
		}
	}
}

// waitForEnter 等待回车，q退出时返回false
func waitForEnter(scanner *bufio.Scanner) bool {
	fmt.Print("> ")
	if !scanner.Scan() {
		return false
	}
	input := strings.TrimSpace(scanner.Text())
	return input != "q" && input != "quit"
}

// printCast 输出登场角色一览
func printCast(state *models.GameState) {
	fmt.Println("=== 出演者 ===")
	for _, c := range state.Characters {
		gender := "♂"
		if c.Gender == models.GenderFemale {
			gender = "♀"
		}
		fmt.Printf("  %s %s %s（%d歳）… %s\n", c.Avatar, gender, c.Name, c.Age, c.OccupationHint)
	}
}

// printEvent 输出最新事件
func printEvent(state *models.GameState) {
	event := state.CurrentEvent
	if event == nil {
		return
	}

	fmt.Println()
	fmt.Printf("%s %s %s【%s】%s\n",
		models.DayLabel(event.Day), models.TimeLabel(event.TimeOfDay),
		event.Location.Emoji(), event.Type.Label(), event.Title)
	fmt.Println(event.Narrative)

	for _, line := range event.Dialogue {
		fmt.Printf("  %s「%s」\n", nameOf(state, line.CharacterID), line.Text)
	}
	for _, thought := range event.InnerThoughts {
		fmt.Printf("  （%s: %s）\n", nameOf(state, thought.CharacterID), thought.Thought)
	}
	for _, change := range event.AffinityChanges {
		key := models.AffinityKey(change.FromID, change.ToID)
		fmt.Printf("  💘 %s → %s: %+d（%s）現在 %d %s\n",
			nameOf(state, change.FromID), nameOf(state, change.ToID),
			change.Change, change.Reason,
			state.Affinities[key], models.AffinityEmoji(state.Affinities[key]))
	}
}

// printResults 输出最终结果
func printResults(state *models.GameState) {
	fmt.Println()
	fmt.Println("=== 最終結果 ===")
	if len(state.FinalCouples) == 0 {
		fmt.Println("カップルは成立しなかった…")
	}
	for _, couple := range state.FinalCouples {
		fmt.Printf("  ❤ %s × %s\n", nameOf(state, couple.Person1ID), nameOf(state, couple.Person2ID))
	}

	fmt.Println()
	fmt.Println("=== 最終好感度 ===")
	males := models.FilterGender(state.ActiveCharacters(), models.GenderMale)
	females := models.FilterGender(state.ActiveCharacters(), models.GenderFemale)
	for _, m := range males {
		for _, f := range females {
			val := state.Affinities.Get(m.ID, f.ID)
			fmt.Printf("  %s × %s: %d %s（%s）\n", m.Name, f.Name, val, models.AffinityEmoji(val), models.AffinityLabel(val))
		}
	}

	fmt.Printf("\n全%dイベント、%d日間の記録でした。\n", len(state.Events), models.FinalDay)
}

// nameOf 按ID取显示名
func nameOf(state *models.GameState, id string) string {
	if c := state.CharacterByID(id); c != nil {
		return c.Name
	}
	return id
}
