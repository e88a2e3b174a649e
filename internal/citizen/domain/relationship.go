package domain

import "sort"

// Relationship 是两位公民间的无序关系，带两个独立信号：
// strength（合作强度）与 trust（信任度），均为 0–100。
type Relationship struct {
	ID       string  `json:"id"`
	CitizenA string  `json:"citizen_a" record:"citizen_a"`
	CitizenB string  `json:"citizen_b" record:"citizen_b"`
	Strength float64 `json:"strength" record:"strength"`
	Trust    float64 `json:"trust" record:"trust"`
	Title    string  `json:"title,omitempty" record:"title"`
}

// Other 返回相对 viewer 的对方；viewer 不在关系里时返回空串。
func (r Relationship) Other(viewer string) string {
	switch viewer {
	case r.CitizenA:
		return r.CitizenB
	case r.CitizenB:
		return r.CitizenA
	default:
		return ""
	}
}

// RankRelationships 按 strength+trust 降序取前 limit 条。
// 合成分只用于排序，不写进输出记录；同分保持原有相对顺序。
// 信号缺失在解码期已按 0 处理（弱类型解码）。
// 无输入也返回空列表而非 nil，序列化必须是 []。
func RankRelationships(rels []Relationship, limit int) []Relationship {
	if limit <= 0 || len(rels) == 0 {
		return []Relationship{}
	}
	ranked := make([]Relationship, len(rels))
	copy(ranked, rels)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Strength+ranked[i].Trust > ranked[j].Strength+ranked[j].Trust
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
