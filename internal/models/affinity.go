// internal/models/affinity.go
package models

import (
	"sort"
	"strings"
)

// AffinityTable 记录每个男女配对的好感度（0〜100）
// 键为两个角色ID按字典序排序后用 "|" 连接，(A,B) 与 (B,A) 指向同一条目
type AffinityTable map[string]int

// AffinityKey 生成规范化的配对键
func AffinityKey(id1, id2 string) string {
	pair := []string{id1, id2}
	sort.Strings(pair)
	return strings.Join(pair, "|")
}

// Get 查询配对好感度，不存在时返回0
func (t AffinityTable) Get(id1, id2 string) int {
	return t[AffinityKey(id1, id2)]
}

// Apply 应用一组好感度变化，返回新表，原表不变
// 多个变化按顺序应用，每一个都基于前一个截断后的结果，最终值始终在 [0,100]
func (t AffinityTable) Apply(changes []AffinityChange) AffinityTable {
	updated := make(AffinityTable, len(t))
	for k, v := range t {
		updated[k] = v
	}

	for _, change := range changes {
		key := AffinityKey(change.FromID, change.ToID)
		next := updated[key] + change.Change
		if next < 0 {
			next = 0
		}
		if next > 100 {
			next = 100
		}
		updated[key] = next
	}
	return updated
}

// Clone 复制好感度表
func (t AffinityTable) Clone() AffinityTable {
	cloned := make(AffinityTable, len(t))
	for k, v := range t {
		cloned[k] = v
	}
	return cloned
}

// AffinityLabel 好感度的日文标签
func AffinityLabel(value int) string {
	switch {
	case value >= 80:
		return "深く惹かれている"
	case value >= 60:
		return "気になっている"
	case value >= 40:
		return "興味あり"
	case value >= 20:
		return "意識している"
	default:
		return "まだ様子見"
	}
}

// AffinityEmoji 好感度的表情符号
func AffinityEmoji(value int) string {
	switch {
	case value >= 80:
		return "💕"
	case value >= 60:
		return "😍"
	case value >= 40:
		return "🙂"
	case value >= 20:
		return "👀"
	default:
		return "😐"
	}
}
