package domain

import "testing"

func TestRankRelationships_降序与截断(t *testing.T) {
	rels := []Relationship{
		{ID: "r1", Strength: 10, Trust: 10},
		{ID: "r2", Strength: 90, Trust: 50},
		{ID: "r3", Strength: 40, Trust: 40},
		{ID: "r4", Strength: 0, Trust: 95},
	}

	got := RankRelationships(rels, 3)
	if len(got) != 3 {
		t.Fatalf("期望截断到 3 条，got=%d", len(got))
	}
	for i := 1; i < len(got); i++ {
		a := got[i-1].Strength + got[i-1].Trust
		b := got[i].Strength + got[i].Trust
		if a < b {
			t.Fatalf("合成分应非递增：%v 在 %v 前", got[i-1].ID, got[i].ID)
		}
	}
	if got[0].ID != "r2" {
		t.Fatalf("最高分应为 r2，got=%s", got[0].ID)
	}
}

func TestRankRelationships_同分保持原序(t *testing.T) {
	rels := []Relationship{
		{ID: "a", Strength: 30, Trust: 30},
		{ID: "b", Strength: 60, Trust: 0},
		{ID: "c", Strength: 0, Trust: 60},
	}
	got := RankRelationships(rels, 10)
	if got[0].ID != "a" || got[1].ID != "b" || got[2].ID != "c" {
		t.Fatalf("同分应保持原有相对顺序，got=%v,%v,%v", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestRankRelationships_缺失信号按零计(t *testing.T) {
	rels := []Relationship{
		{ID: "zero"}, // 两个信号都缺失（解码为零值）
		{ID: "some", Strength: 1},
	}
	got := RankRelationships(rels, 10)
	if got[0].ID != "some" || got[1].ID != "zero" {
		t.Fatalf("缺失信号应按 0 排序，got=%v,%v", got[0].ID, got[1].ID)
	}
}

func TestRankRelationships_不改动入参(t *testing.T) {
	rels := []Relationship{
		{ID: "low", Strength: 1},
		{ID: "high", Strength: 99},
	}
	_ = RankRelationships(rels, 1)
	if rels[0].ID != "low" {
		t.Fatalf("排序不应改动调用方切片")
	}
}

func TestRankRelationships_空输入返回空列表(t *testing.T) {
	if got := RankRelationships(nil, 10); got == nil || len(got) != 0 {
		t.Fatalf("无输入应得到空列表而非 nil: %#v", got)
	}
	rels := []Relationship{{ID: "a", Strength: 1}}
	if got := RankRelationships(rels, 0); got == nil || len(got) != 0 {
		t.Fatalf("limit=0 应得到空列表而非 nil: %#v", got)
	}
}

func TestRelationship_Other(t *testing.T) {
	r := Relationship{CitizenA: "marco", CitizenB: "antonio"}
	if r.Other("marco") != "antonio" || r.Other("antonio") != "marco" {
		t.Fatalf("Other 解析错误")
	}
	if r.Other("giulia") != "" {
		t.Fatalf("局外人应得到空串")
	}
}
