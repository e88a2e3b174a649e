package domain

import "strings"

// Structure 是建在地块锚点上的建筑。
type Structure struct {
	ID          string `json:"id"`
	Name        string `json:"name" record:"name"`
	Type        string `json:"type" record:"type"`
	Category    string `json:"category" record:"category"`
	Owner       string `json:"owner" record:"owner"`
	RunBy       string `json:"run_by,omitempty" record:"run_by"`
	Occupant    string `json:"occupant,omitempty" record:"occupant"`
	ParcelID    string `json:"parcel_id" record:"parcel_id"`
	PositionRaw string `json:"-" record:"position"`
	// PointField 是该建筑占用的锚点：单个 id、id 列表，或历史脏数据。
	// 解析由占用计算负责，这里原样保留。
	PointField any `json:"-" record:"point"`
}

// IsBusiness 判断是否商业类建筑；只有商业建筑才补拉资源/贸易明细。
func (s Structure) IsBusiness() bool {
	return s.Category == "business"
}

// AnchorKind 返回该建筑占用哪一类锚点：
// 码头占运河锚点，桥类占桥锚点，其余一律占建筑锚点。
func (s Structure) AnchorKind() AnchorKind {
	switch {
	case s.Type == "dock" || s.Category == "dock":
		return KindCanal
	case strings.Contains(strings.ToLower(s.Type), "bridge"):
		return KindBridge
	default:
		return KindBuilding
	}
}

// Position 解析建筑坐标；脏数据按"无坐标"处理。
func (s Structure) Position() (Position, bool) {
	return ParsePosition(s.PositionRaw)
}

// StructureResources 是商业建筑的资源/贸易明细，来自独立子系统。
type StructureResources struct {
	Stock         []ResourceCount `json:"stock"`
	PublicOffers  []SaleOffer     `json:"public_offers"`
	Recipes       []Recipe        `json:"recipes"`
	CapacityUsed  float64         `json:"capacity_used"`
	CapacityTotal float64         `json:"capacity_total"`
}

type ResourceCount struct {
	Resource string  `json:"resource"`
	Count    float64 `json:"count"`
}

type SaleOffer struct {
	Resource string  `json:"resource"`
	Price    float64 `json:"price"`
	Amount   float64 `json:"amount"`
}

type Recipe struct {
	Inputs  []ResourceCount `json:"inputs"`
	Outputs []ResourceCount `json:"outputs"`
}
