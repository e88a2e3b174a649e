package domain

import "time"

// Scheme 的生命周期状态。过期没有显式状态：
// 查询时以 expires_at 过滤，未执行且已过期的记录自然落在"历史"里。
const (
	SchemeActive   = "active"
	SchemeExecuted = "executed"
)

// Scheme 是公民对他人/建筑发起的单边或定向行动。
type Scheme struct {
	ID              string     `json:"id"`
	Type            string     `json:"type" record:"type"`
	ExecutedBy      string     `json:"executed_by" record:"executed_by"`
	TargetCitizen   string     `json:"target_citizen,omitempty" record:"target_citizen"`
	TargetStructure string     `json:"target_structure,omitempty" record:"target_structure"`
	TargetResource  string     `json:"target_resource,omitempty" record:"target_resource"`
	Status          string     `json:"status" record:"status"`
	CreatedAt       time.Time  `json:"created_at" record:"created_at"`
	ExecutedAt      *time.Time `json:"executed_at,omitempty" record:"executed_at"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty" record:"expires_at"`
}
