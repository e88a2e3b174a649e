package domain

// Parcel 是一块可建设的地皮。
type Parcel struct {
	ID             string `json:"id"`
	HistoricalName string `json:"historical_name" record:"historical_name"`
	District       string `json:"district" record:"district"`
	Owner          string `json:"owner" record:"owner"`
}

// AnchorKind 是锚点类别：同一锚点只属于一类。
type AnchorKind uint8

const (
	KindBuilding AnchorKind = iota
	KindCanal
	KindBridge
)

// AnchorPoint 是地块上一个固定的建设位。
type AnchorPoint struct {
	ID  string  `json:"id"`
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ParcelGeometry 是地块的全部锚点（按类别三分）。来自几何服务，按地块缓存。
type ParcelGeometry struct {
	BuildingPoints []AnchorPoint `json:"building_points"`
	CanalPoints    []AnchorPoint `json:"canal_points"`
	BridgePoints   []AnchorPoint `json:"bridge_points"`
}

// ParcelHolding 是快照里的一项地产：地块档案 + 占用/空余统计。
type ParcelHolding struct {
	Parcel    Parcel    `json:"parcel"`
	Occupancy Occupancy `json:"occupancy"`
}
