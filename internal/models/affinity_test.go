// internal/models/affinity_test.go
package models

import "testing"

// TestAffinityKey 测试配对键的规范化
func TestAffinityKey(t *testing.T) {
	key1 := AffinityKey("kenji", "yuki")
	key2 := AffinityKey("yuki", "kenji")

	if key1 != key2 {
		t.Errorf("配对键应该与参数顺序无关: %s != %s", key1, key2)
	}
	if key1 != "kenji|yuki" {
		t.Errorf("配对键应该按字典序排序: %s", key1)
	}
}

// TestAffinityGet 测试好感度查询
func TestAffinityGet(t *testing.T) {
	table := AffinityTable{"kenji|yuki": 42}

	if got := table.Get("kenji", "yuki"); got != 42 {
		t.Errorf("期望好感度42，实际: %d", got)
	}
	if got := table.Get("yuki", "kenji"); got != 42 {
		t.Errorf("反向查询应该返回相同值，实际: %d", got)
	}
	if got := table.Get("kenji", "hana"); got != 0 {
		t.Errorf("不存在的配对应该返回0，实际: %d", got)
	}
}

// TestAffinityApply 测试好感度变化的应用
func TestAffinityApply(t *testing.T) {
	tests := []struct {
		name    string
		initial int
		changes []AffinityChange
		want    int
	}{
		{
			name:    "正常叠加",
			initial: 50,
			changes: []AffinityChange{{FromID: "kenji", ToID: "yuki", Change: 10}},
			want:    60,
		},
		{
			name:    "上限截断到100",
			initial: 95,
			changes: []AffinityChange{{FromID: "kenji", ToID: "yuki", Change: 20}},
			want:    100,
		},
		{
			name:    "下限截断到0",
			initial: 5,
			changes: []AffinityChange{{FromID: "kenji", ToID: "yuki", Change: -10}},
			want:    0,
		},
		{
			name:    "多个变化按顺序应用",
			initial: 95,
			changes: []AffinityChange{
				{FromID: "kenji", ToID: "yuki", Change: 20},  // 截断到100
				{FromID: "kenji", ToID: "yuki", Change: -30}, // 基于100计算
			},
			want: 70,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := AffinityTable{"kenji|yuki": tt.initial}
			updated := table.Apply(tt.changes)

			if got := updated.Get("kenji", "yuki"); got != tt.want {
				t.Errorf("期望好感度%d，实际: %d", tt.want, got)
			}
			// 原表不应被修改
			if got := table.Get("kenji", "yuki"); got != tt.initial {
				t.Errorf("Apply不应修改原表，原值%d变成了%d", tt.initial, got)
			}
		})
	}
}

// TestAffinityApplyReversedKey 测试反向ID的变化落到同一条目
func TestAffinityApplyReversedKey(t *testing.T) {
	table := AffinityTable{"kenji|yuki": 30}
	updated := table.Apply([]AffinityChange{{FromID: "yuki", ToID: "kenji", Change: 5}})

	if got := updated.Get("kenji", "yuki"); got != 35 {
		t.Errorf("反向ID的变化应该落到同一条目，期望35，实际: %d", got)
	}
}
