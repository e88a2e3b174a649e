package app

import (
	"context"

	"Rialto/internal/citizen/domain"
	"Rialto/internal/shared/recordstore"
)

// RecordStore 是字段式记录库的查询口。过滤条件用结构化表达式传入，
// 由后端编译为自己的查询语言（文本公式或 bson）。
type RecordStore interface {
	Select(ctx context.Context, table string, filter recordstore.Expr, opts ...recordstore.SelectOption) ([]recordstore.Record, error)
}

// GeometryLookup 查地块锚点几何。地块不存在返回 (nil, nil)，
// 传输失败返回 error；两者对快照都不致命。
type GeometryLookup interface {
	GetParcel(ctx context.Context, parcelID string) (*domain.ParcelGeometry, error)
}

// ResourceLookup 查单个建筑的资源/贸易明细。
type ResourceLookup interface {
	GetStructureResources(ctx context.Context, structureID string) (*domain.StructureResources, error)
}

// PositionScan 是"这个坐标上有谁/有什么"的查询结果。
type PositionScan struct {
	Structure *domain.Structure
	Citizens  []domain.Citizen
}

// PositionLookup 按坐标反查建筑与在场公民。
type PositionLookup interface {
	WhoAndWhatAt(ctx context.Context, pos domain.Position) (*PositionScan, error)
}

// MoodContext 是心境计算的输入：公民本体加若干已装配的处境摘要。
type MoodContext struct {
	Citizen       domain.Citizen
	AtStructure   *domain.Structure
	Weather       *domain.Weather
	ProblemCount  int
	ContractCount int
	LoanCount     int
}

// MoodService 是外部心境计算服务；失败时调用方兜底中性心境。
type MoodService interface {
	ComputeMood(ctx context.Context, mctx MoodContext) (*domain.Mood, error)
}

// ReportLookup 列出当前的海外贸易快报。
type ReportLookup interface {
	ListReports(ctx context.Context) ([]domain.Report, error)
}

// WeatherLookup 查当前天气。
type WeatherLookup interface {
	Current(ctx context.Context) (*domain.Weather, error)
}
