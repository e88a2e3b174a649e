package domain

// Occupancy 是一个地块的容量报告："M 个锚点还剩 N 个可建"。
// 空余 = 全量锚点扣掉已被建筑占用的 id；三类锚点互不影响。
type Occupancy struct {
	FreeBuildingPoints []AnchorPoint `json:"free_building_points"`
	FreeCanalPoints    []AnchorPoint `json:"free_canal_points"`
	FreeBridgePoints   []AnchorPoint `json:"free_bridge_points"`
	TotalBuilding      int           `json:"total_building"`
	TotalCanal         int           `json:"total_canal"`
	TotalBridge        int           `json:"total_bridge"`
}

// ResolveOccupancy 由地块几何与其上建筑算出空余锚点。
// geom 为 nil（几何查询失败/地块无几何）时返回零值：快照照常出，容量显示为 0/0。
// 单个建筑的锚点字段解析失败只影响它自己，不中断其余建筑。
func ResolveOccupancy(geom *ParcelGeometry, structures []Structure) Occupancy {
	if geom == nil {
		return Occupancy{}
	}

	occupied := map[AnchorKind]map[string]struct{}{
		KindBuilding: {},
		KindCanal:    {},
		KindBridge:   {},
	}
	for _, s := range structures {
		kind := s.AnchorKind()
		for _, id := range occupiedPointIDs(s.PointField) {
			occupied[kind][id] = struct{}{}
		}
	}

	return Occupancy{
		FreeBuildingPoints: freePoints(geom.BuildingPoints, occupied[KindBuilding]),
		FreeCanalPoints:    freePoints(geom.CanalPoints, occupied[KindCanal]),
		FreeBridgePoints:   freePoints(geom.BridgePoints, occupied[KindBridge]),
		TotalBuilding:      len(geom.BuildingPoints),
		TotalCanal:         len(geom.CanalPoints),
		TotalBridge:        len(geom.BridgePoints),
	}
}

// occupiedPointIDs 容忍锚点字段的三种历史形态：单个 id、id 列表、脏数据。
// 脏数据贡献零个占用 id，绝不报错。
func occupiedPointIDs(pf any) []string {
	switch v := pf.(type) {
	case nil:
		return nil
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []string:
		out := make([]string, 0, len(v))
		for _, id := range v {
			if id != "" {
				out = append(out, id)
			}
		}
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if id, ok := item.(string); ok && id != "" {
				out = append(out, id)
			}
		}
		return out
	default:
		return nil
	}
}

func freePoints(all []AnchorPoint, occupied map[string]struct{}) []AnchorPoint {
	out := make([]AnchorPoint, 0, len(all))
	for _, p := range all {
		if _, taken := occupied[p.ID]; !taken {
			out = append(out, p)
		}
	}
	return out
}
