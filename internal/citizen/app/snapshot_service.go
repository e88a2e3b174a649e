package app

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"Rialto/internal/citizen/domain"
	"Rialto/internal/shared/recordstore"
	"Rialto/modules/kit/cachex"
	"Rialto/modules/kit/errx"
	"Rialto/modules/kit/logx"
)

// Shape 决定快照的输出形态：raw 返回结构化 JSON，formatted 渲染叙事文本。
// 两种形态分开缓存；空串按 raw 处理。
type Shape string

const (
	ShapeRaw       Shape = "raw"
	ShapeFormatted Shape = "formatted"
)

// ParseShape 解析形态参数；未知取值返回 ok=false，由接口层拒绝。
func ParseShape(raw string) (Shape, bool) {
	switch Shape(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ShapeRaw:
		return ShapeRaw, true
	case ShapeFormatted:
		return ShapeFormatted, true
	default:
		return "", false
	}
}

// SnapshotKey 是快照缓存键：公民 + 形态。
type SnapshotKey struct {
	CitizenID string
	Shape     Shape
}

// SnapshotServiceDeps 汇总装配所需的全部外部口。
type SnapshotServiceDeps struct {
	Store     RecordStore
	Geometry  GeometryLookup
	Resources ResourceLookup
	Positions PositionLookup
	Mood      MoodService
	Reports   ReportLookup
	Weather   WeatherLookup
	Log       logx.Logger
}

// SnapshotServiceConfig 是装配器的可调参数。
type SnapshotServiceConfig struct {
	ParcelTTL         time.Duration
	StructureTTL      time.Duration
	SnapshotTTL       time.Duration
	RelationshipLimit int
}

// SnapshotService 负责整条快照流水线：身份查询、位置与地产解析、
// 独立子查询扇出、心境兜底、商业建筑补全，以及三级缓存。
type SnapshotService struct {
	deps SnapshotServiceDeps

	relationshipLimit int

	parcelCache   *cachex.Cache[string, *domain.ParcelGeometry]
	resourceCache *cachex.Cache[string, *domain.StructureResources]
	snapshotCache *cachex.Cache[SnapshotKey, *domain.Snapshot]

	now func() time.Time
}

func NewSnapshotService(deps SnapshotServiceDeps, cfg SnapshotServiceConfig) *SnapshotService {
	return &SnapshotService{
		deps:              deps,
		relationshipLimit: cfg.RelationshipLimit,
		parcelCache:       cachex.New[string, *domain.ParcelGeometry](cfg.ParcelTTL),
		resourceCache:     cachex.New[string, *domain.StructureResources](cfg.StructureTTL),
		snapshotCache:     cachex.New[SnapshotKey, *domain.Snapshot](cfg.SnapshotTTL),
		now:               time.Now,
	}
}

// WithClock 替换时钟，仅测试用。
func (s *SnapshotService) WithClock(now func() time.Time) *SnapshotService {
	s.now = now
	s.parcelCache.WithClock(now)
	s.resourceCache.WithClock(now)
	s.snapshotCache.WithClock(now)
	return s
}

// GetSnapshot 返回公民当前的快照；缓存命中直接返回，
// forceRefresh 强制重建并写穿缓存。
func (s *SnapshotService) GetSnapshot(ctx context.Context, citizenID string, shape Shape, forceRefresh bool) (*domain.Snapshot, error) {
	citizenID = strings.TrimSpace(citizenID)
	if citizenID == "" {
		return nil, errx.ErrBadRequest.WithData("param", "citizen_id")
	}
	key := SnapshotKey{CitizenID: citizenID, Shape: shape}
	compute := func() (*domain.Snapshot, error) {
		return s.assemble(ctx, citizenID)
	}
	if forceRefresh {
		return s.snapshotCache.Refresh(key, compute)
	}
	return s.snapshotCache.GetOrCompute(key, compute)
}

// CachedAt 返回某份快照的入缓存时间，未缓存返回 ok=false。
func (s *SnapshotService) CachedAt(citizenID string, shape Shape) (time.Time, bool) {
	return s.snapshotCache.StoredAt(SnapshotKey{CitizenID: citizenID, Shape: shape})
}

// assemble 完整装配一份快照。唯一的硬失败是公民本体查不到/查不了；
// 其余子查询失败一律降级为空字段并打 WARN。
func (s *SnapshotService) assemble(ctx context.Context, citizenID string) (*domain.Snapshot, error) {
	citizen, err := s.fetchCitizen(ctx, citizenID)
	if err != nil {
		return nil, err
	}
	// 列表字段从空列表起步：降级后保持空列表，输出端不暴露失败痕迹。
	snap := domain.NewSnapshot(*citizen)

	// 位置链与地产链都依赖公民本体，按序执行；其间的失败全部可降级。
	s.resolveWhereabouts(ctx, snap)
	s.resolveHoldings(ctx, snap)

	s.fanOut(ctx, snap)

	if err := ctx.Err(); err != nil {
		// 被取消后的半成品不具代表性，禁止入缓存。
		return nil, ErrAssembleAborted.WithReason(ReasonAssembleCancelled).WithCause(err)
	}

	// 心境依赖扇出结果里的处境摘要，必须在扇出之后算。
	s.resolveMood(ctx, snap)
	s.enrichBusinesses(ctx, snap)

	snap.GeneratedAt = s.now()
	return snap, nil
}

func (s *SnapshotService) fetchCitizen(ctx context.Context, citizenID string) (*domain.Citizen, error) {
	recs, err := s.deps.Store.Select(ctx, tableCitizens,
		recordstore.Eq(fieldUsername, citizenID), recordstore.WithMaxRecords(1))
	if err != nil {
		return nil, errx.ErrUnavailable.WithReason(ReasonCitizenQueryFail).WithCause(err)
	}
	if len(recs) == 0 {
		return nil, ErrCitizenNotFound.WithData("citizen_id", citizenID)
	}
	var c domain.Citizen
	if err := recs[0].Decode(&c); err != nil {
		return nil, errx.ErrInternal.WithReason(ReasonCitizenQueryFail).WithCause(err)
	}
	c.ID = recs[0].ID
	return &c, nil
}

// resolveWhereabouts 解析工作地、住所、所在建筑与同位公民。
// 坐标先和已知建筑精确比对，失配再做一次坐标反查。
func (s *SnapshotService) resolveWhereabouts(ctx context.Context, snap *domain.Snapshot) {
	u := snap.Citizen.Username
	snap.Workplace = s.fetchOneStructure(ctx, "workplace", recordstore.And(
		recordstore.Eq(fieldOccupant, u),
		recordstore.Eq(fieldCategory, "business"),
	))
	snap.Home = s.fetchOneStructure(ctx, "home", recordstore.And(
		recordstore.Eq(fieldOccupant, u),
		recordstore.Eq(fieldCategory, "home"),
	))

	pos, ok := domain.ParsePosition(snap.Citizen.PositionRaw)
	if !ok {
		return
	}
	for _, candidate := range []*domain.Structure{snap.Workplace, snap.Home} {
		if candidate == nil {
			continue
		}
		if p, ok := candidate.Position(); ok && p.SamePlace(pos) {
			snap.AtStructure = candidate
			break
		}
	}
	scan, err := s.deps.Positions.WhoAndWhatAt(ctx, pos)
	if err != nil {
		logx.ReportDegraded(ctx, s.deps.Log, "citizens_nearby", err)
		return
	}
	if snap.AtStructure == nil {
		snap.AtStructure = scan.Structure
	}
	nearby := make([]domain.Citizen, 0, len(scan.Citizens))
	for _, c := range scan.Citizens {
		if c.Username == u {
			continue
		}
		nearby = append(nearby, c)
	}
	snap.CitizensNearby = nearby
}

// resolveHoldings 解析名下地块及每块的空余锚点。
// 地块上的建筑一次批量查回再按地块分组，几何按地块缓存。
func (s *SnapshotService) resolveHoldings(ctx context.Context, snap *domain.Snapshot) {
	u := snap.Citizen.Username
	recs, err := s.deps.Store.Select(ctx, tableParcels, recordstore.Eq(fieldOwner, u))
	if err != nil {
		logx.ReportDegraded(ctx, s.deps.Log, "owned_parcels", err)
		return
	}
	parcels := decodeRecords[domain.Parcel](recs, func(p *domain.Parcel, id string) { p.ID = id })
	if len(parcels) == 0 {
		return
	}

	filters := make([]recordstore.Expr, 0, len(parcels))
	for _, p := range parcels {
		filters = append(filters, recordstore.Eq(fieldParcelID, p.ID))
	}
	byParcel := map[string][]domain.Structure{}
	srecs, err := s.deps.Store.Select(ctx, tableStructures, recordstore.Or(filters...))
	if err != nil {
		logx.ReportDegraded(ctx, s.deps.Log, "parcel_structures", err)
	} else {
		for _, st := range decodeRecords[domain.Structure](srecs, setStructureID) {
			byParcel[st.ParcelID] = append(byParcel[st.ParcelID], st)
		}
	}

	holdings := make([]domain.ParcelHolding, 0, len(parcels))
	for _, p := range parcels {
		holdings = append(holdings, domain.ParcelHolding{
			Parcel:    p,
			Occupancy: domain.ResolveOccupancy(s.parcelGeometry(ctx, p.ID), byParcel[p.ID]),
		})
	}
	snap.OwnedParcels = holdings
}

// parcelGeometry 按地块缓存几何。查询失败也缓存 nil 占位，
// 避免每次快照重复打一个挂掉的几何服务。
func (s *SnapshotService) parcelGeometry(ctx context.Context, parcelID string) *domain.ParcelGeometry {
	geom, _ := s.parcelCache.GetOrCompute(parcelID, func() (*domain.ParcelGeometry, error) {
		g, err := s.deps.Geometry.GetParcel(ctx, parcelID)
		if err != nil {
			logx.ReportDegraded(ctx, s.deps.Log, "parcel_geometry", err,
				zap.String("reason", ReasonGeometryLookupFail.Code),
				zap.String("parcel_id", parcelID))
			return nil, nil
		}
		return g, nil
	})
	return geom
}

// fanOut 并发拉取互不依赖的子查询。每个任务只写快照里自己的字段，
// 失败吞掉并降级记录，绝不让单个子查询拖垮整份快照。
func (s *SnapshotService) fanOut(ctx context.Context, snap *domain.Snapshot) {
	g, gctx := errgroup.WithContext(ctx)
	u := snap.Citizen.Username

	s.spawn(g, gctx, "owned_structures", func(ctx context.Context) error {
		sts, err := selectInto[domain.Structure](ctx, s.deps.Store, tableStructures,
			recordstore.Eq(fieldOwner, u), setStructureID)
		if err != nil {
			return err
		}
		owned := make([]domain.OwnedStructure, 0, len(sts))
		for _, st := range sts {
			owned = append(owned, domain.OwnedStructure{Structure: st})
		}
		snap.OwnedStructures = owned
		return nil
	})

	s.spawn(g, gctx, "contracts", func(ctx context.Context) error {
		cs, err := selectInto[domain.Contract](ctx, s.deps.Store, tableContracts,
			recordstore.And(
				recordstore.Or(recordstore.Eq(fieldBuyer, u), recordstore.Eq(fieldSeller, u)),
				recordstore.Eq(fieldStatus, "active"),
			),
			func(c *domain.Contract, id string) { c.ID = id },
			recordstore.WithSort(fieldCreatedAt, true), recordstore.WithMaxRecords(50))
		if err != nil {
			return err
		}
		snap.Contracts = cs
		return nil
	})

	s.spawn(g, gctx, "loans", func(ctx context.Context) error {
		ls, err := selectInto[domain.Loan](ctx, s.deps.Store, tableLoans,
			recordstore.And(
				recordstore.Or(recordstore.Eq(fieldLender, u), recordstore.Eq(fieldBorrower, u)),
				recordstore.Eq(fieldStatus, "active"),
			),
			func(l *domain.Loan, id string) { l.ID = id })
		if err != nil {
			return err
		}
		snap.Loans = ls
		return nil
	})

	if snap.Citizen.GuildID != "" {
		s.spawn(g, gctx, "guild", func(ctx context.Context) error {
			recs, err := s.deps.Store.Select(ctx, tableGuilds,
				recordstore.Eq(fieldGuildID, snap.Citizen.GuildID), recordstore.WithMaxRecords(1))
			if err != nil {
				return err
			}
			if len(recs) == 0 {
				return nil
			}
			var gd domain.Guild
			if err := recs[0].Decode(&gd); err != nil {
				return err
			}
			gd.ID = recs[0].ID
			snap.Guild = &gd
			return nil
		})
	}

	s.spawn(g, gctx, "relationships", func(ctx context.Context) error {
		rels, err := selectInto[domain.Relationship](ctx, s.deps.Store, tableRelationships,
			recordstore.Or(recordstore.Eq(fieldCitizenA, u), recordstore.Eq(fieldCitizenB, u)),
			func(r *domain.Relationship, id string) { r.ID = id })
		if err != nil {
			return err
		}
		snap.Relationships = domain.RankRelationships(rels, s.relationshipLimit)
		return nil
	})

	s.spawn(g, gctx, "problems", func(ctx context.Context) error {
		ps, err := selectInto[domain.Problem](ctx, s.deps.Store, tableProblems,
			recordstore.And(recordstore.Eq(fieldCitizen, u), recordstore.Eq(fieldStatus, "active")),
			func(p *domain.Problem, id string) { p.ID = id },
			recordstore.WithSort(fieldCreatedAt, true), recordstore.WithMaxRecords(20))
		if err != nil {
			return err
		}
		snap.Problems = ps
		return nil
	})

	s.spawn(g, gctx, "messages", func(ctx context.Context) error {
		ms, err := selectInto[domain.Message](ctx, s.deps.Store, tableMessages,
			recordstore.Or(recordstore.Eq(fieldSender, u), recordstore.Eq(fieldReceiver, u)),
			func(m *domain.Message, id string) { m.ID = id },
			recordstore.WithSort(fieldCreatedAt, true), recordstore.WithMaxRecords(20))
		if err != nil {
			return err
		}
		snap.Messages = ms
		return nil
	})

	s.spawn(g, gctx, "thoughts", func(ctx context.Context) error {
		ts, err := selectInto[domain.Message](ctx, s.deps.Store, tableMessages,
			recordstore.And(recordstore.Eq(fieldSender, u), recordstore.Eq(fieldReceiver, u)),
			func(m *domain.Message, id string) { m.ID = id },
			recordstore.WithSort(fieldCreatedAt, true), recordstore.WithMaxRecords(10))
		if err != nil {
			return err
		}
		snap.Thoughts = ts
		return nil
	})

	// 发起的与被针对的各查各的，截断上限按角色独立计，最后合并去重。
	s.spawn(g, gctx, "active_schemes", func(ctx context.Context) error {
		// 过期没有显式状态，查询时用 expires_at 划线
		notExpired := recordstore.Or(
			recordstore.Eq(fieldExpires, nil),
			recordstore.After(fieldExpires, s.now()),
		)
		byMe, err := s.selectSchemes(ctx, recordstore.And(
			recordstore.Eq(fieldExecutor, u),
			recordstore.Eq(fieldStatus, domain.SchemeActive),
			notExpired,
		), recordstore.WithSort(fieldCreatedAt, true))
		if err != nil {
			return err
		}
		onMe, err := s.selectSchemes(ctx, recordstore.And(
			recordstore.Eq(fieldTarget, u),
			recordstore.Eq(fieldStatus, domain.SchemeActive),
			notExpired,
		), recordstore.WithSort(fieldCreatedAt, true))
		if err != nil {
			return err
		}
		snap.ActiveSchemes = mergeSchemes(byMe, onMe)
		return nil
	})

	s.spawn(g, gctx, "past_schemes", func(ctx context.Context) error {
		byMe, err := s.selectSchemes(ctx, recordstore.And(
			recordstore.Eq(fieldExecutor, u),
			recordstore.Eq(fieldStatus, domain.SchemeExecuted),
		), recordstore.WithSort(fieldExecuted, true), recordstore.WithMaxRecords(20))
		if err != nil {
			return err
		}
		onMe, err := s.selectSchemes(ctx, recordstore.And(
			recordstore.Eq(fieldTarget, u),
			recordstore.Eq(fieldStatus, domain.SchemeExecuted),
		), recordstore.WithSort(fieldExecuted, true), recordstore.WithMaxRecords(20))
		if err != nil {
			return err
		}
		snap.PastSchemes = mergeSchemes(byMe, onMe)
		return nil
	})

	s.spawn(g, gctx, "recent_activities", func(ctx context.Context) error {
		as, err := selectInto[domain.Activity](ctx, s.deps.Store, tableActivities,
			recordstore.And(recordstore.Eq(fieldCitizen, u), recordstore.Eq(fieldStatus, "processed")),
			func(a *domain.Activity, id string) { a.ID = id },
			recordstore.WithSort(fieldEndAt, true), recordstore.WithMaxRecords(10))
		if err != nil {
			return err
		}
		snap.RecentActivities = as
		return nil
	})

	s.spawn(g, gctx, "planned_activities", func(ctx context.Context) error {
		as, err := selectInto[domain.Activity](ctx, s.deps.Store, tableActivities,
			recordstore.And(recordstore.Eq(fieldCitizen, u), recordstore.Eq(fieldStatus, "created")),
			func(a *domain.Activity, id string) { a.ID = id },
			recordstore.WithSort(fieldStartAt, false), recordstore.WithMaxRecords(10))
		if err != nil {
			return err
		}
		snap.PlannedActivities = as
		return nil
	})

	s.spawn(g, gctx, "bulletin", func(ctx context.Context) error {
		recs, err := s.deps.Store.Select(ctx, tableBulletins, nil,
			recordstore.WithSort(fieldPublished, true), recordstore.WithMaxRecords(1))
		if err != nil {
			return err
		}
		if len(recs) == 0 {
			return nil
		}
		var b domain.Bulletin
		if err := recs[0].Decode(&b); err != nil {
			return err
		}
		b.ID = recs[0].ID
		snap.Bulletin = &b
		return nil
	})

	s.spawn(g, gctx, "weather", func(ctx context.Context) error {
		w, err := s.deps.Weather.Current(ctx)
		if err != nil {
			return err
		}
		snap.Weather = w
		return nil
	})

	// 贸易快报只有外邦客商关心，且逐条过可见性门限。
	if snap.Citizen.IsOutsider() {
		s.spawn(g, gctx, "trade_reports", func(ctx context.Context) error {
			all, err := s.deps.Reports.ListReports(ctx)
			if err != nil {
				return err
			}
			visible := make([]domain.Report, 0, len(all))
			for _, r := range all {
				if domain.ReportVisible(r.ID, u) {
					visible = append(visible, r)
				}
			}
			snap.TradeReports = visible
			return nil
		})
	}

	// 每个任务都吞错降级，Wait 永远返回 nil。
	_ = g.Wait()
}

// spawn 包一层降级语义：任务失败只打 WARN，不向上冒泡。
// 每个任务写快照里互不重叠的字段，Wait 之后才继续读，无需加锁。
func (s *SnapshotService) spawn(g *errgroup.Group, ctx context.Context, field string, fn func(context.Context) error) {
	g.Go(func() error {
		if err := fn(ctx); err != nil {
			logx.ReportDegraded(ctx, s.deps.Log, field, err)
		}
		return nil
	})
}

// resolveMood 调心境服务；失败兜底中性心境，快照照常出。
func (s *SnapshotService) resolveMood(ctx context.Context, snap *domain.Snapshot) {
	mood, err := s.deps.Mood.ComputeMood(ctx, MoodContext{
		Citizen:       snap.Citizen,
		AtStructure:   snap.AtStructure,
		Weather:       snap.Weather,
		ProblemCount:  len(snap.Problems),
		ContractCount: len(snap.Contracts),
		LoanCount:     len(snap.Loans),
	})
	if err != nil || mood == nil {
		if err != nil {
			logx.ReportDegraded(ctx, s.deps.Log, "mood", err,
				zap.String("reason", ReasonMoodComputeFail.Code))
		}
		snap.Mood = domain.NeutralMood()
		return
	}
	snap.Mood = *mood
}

// enrichBusinesses 为名下商业建筑补拉资源明细；按建筑缓存，失败缓存 nil 占位。
func (s *SnapshotService) enrichBusinesses(ctx context.Context, snap *domain.Snapshot) {
	for i := range snap.OwnedStructures {
		owned := &snap.OwnedStructures[i]
		if !owned.Structure.IsBusiness() {
			continue
		}
		id := owned.Structure.ID
		res, _ := s.resourceCache.GetOrCompute(id, func() (*domain.StructureResources, error) {
			r, err := s.deps.Resources.GetStructureResources(ctx, id)
			if err != nil {
				logx.ReportDegraded(ctx, s.deps.Log, "structure_resources", err,
					zap.String("reason", ReasonResourceFetchFail.Code),
					zap.String("structure_id", id))
				return nil, nil
			}
			return r, nil
		})
		owned.Resources = res
	}
}

func (s *SnapshotService) fetchOneStructure(ctx context.Context, field string, filter recordstore.Expr) *domain.Structure {
	recs, err := s.deps.Store.Select(ctx, tableStructures, filter, recordstore.WithMaxRecords(1))
	if err != nil {
		logx.ReportDegraded(ctx, s.deps.Log, field, err)
		return nil
	}
	if len(recs) == 0 {
		return nil
	}
	var st domain.Structure
	if err := recs[0].Decode(&st); err != nil {
		logx.ReportDegraded(ctx, s.deps.Log, field, err)
		return nil
	}
	st.ID = recs[0].ID
	return &st
}

func (s *SnapshotService) selectSchemes(ctx context.Context, filter recordstore.Expr, opts ...recordstore.SelectOption) ([]domain.Scheme, error) {
	return selectInto[domain.Scheme](ctx, s.deps.Store, tableSchemes, filter,
		func(sc *domain.Scheme, id string) { sc.ID = id }, opts...)
}

// mergeSchemes 合并两路查询结果；自己针对自己的计谋会在两路同时命中，按 id 去重。
func mergeSchemes(a, b []domain.Scheme) []domain.Scheme {
	out := make([]domain.Scheme, 0, len(a)+len(b))
	seen := make(map[string]bool, len(a)+len(b))
	for _, sc := range append(a, b...) {
		if seen[sc.ID] {
			continue
		}
		seen[sc.ID] = true
		out = append(out, sc)
	}
	return out
}

func setStructureID(st *domain.Structure, id string) { st.ID = id }

func selectInto[T any](ctx context.Context, store RecordStore, table string, filter recordstore.Expr,
	setID func(*T, string), opts ...recordstore.SelectOption) ([]T, error) {
	recs, err := store.Select(ctx, table, filter, opts...)
	if err != nil {
		return nil, err
	}
	return decodeRecords[T](recs, setID), nil
}

func decodeRecords[T any](recs []recordstore.Record, setID func(*T, string)) []T {
	out := make([]T, 0, len(recs))
	for _, rec := range recs {
		var v T
		if err := rec.Decode(&v); err != nil {
			// 单条脏记录跳过，不拖垮整批
			continue
		}
		if setID != nil {
			setID(&v, rec.ID)
		}
		out = append(out, v)
	}
	return out
}
