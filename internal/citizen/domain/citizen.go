package domain

import "encoding/json"

// 社会阶层。Forestieri（外邦客商）是唯一的"外来者"阶层，
// 只有他们关心海外贸易快报，且快报按可见性门限发放。
const (
	ClassNobili     = "Nobili"
	ClassCittadini  = "Cittadini"
	ClassPopolani   = "Popolani"
	ClassForestieri = "Forestieri"
)

// Citizen 是记录库里的公民档案。引擎只读，不回写；
// 衍生字段（所在建筑、同位公民、心境）只存在于请求期的快照里。
type Citizen struct {
	ID          string  `json:"id"`
	Username    string  `json:"username" record:"username"`
	FirstName   string  `json:"first_name" record:"first_name"`
	LastName    string  `json:"last_name" record:"last_name"`
	SocialClass string  `json:"social_class" record:"social_class"`
	Ducats      float64 `json:"ducats" record:"ducats"`
	Influence   float64 `json:"influence" record:"influence"`
	GuildID     string  `json:"guild_id,omitempty" record:"guild_id"`
	InCity      bool    `json:"in_city" record:"in_city"`
	Description string  `json:"description,omitempty" record:"description"`
	PositionRaw string  `json:"-" record:"position"`
}

func (c Citizen) IsOutsider() bool {
	return c.SocialClass == ClassForestieri
}

// Position 是城内坐标。记录库把它存成 JSON 字符串。
type Position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ParsePosition 解析记录库的坐标字段；脏数据返回 ok=false，按"无坐标"处理。
func ParsePosition(raw string) (Position, bool) {
	if raw == "" {
		return Position{}, false
	}
	var p Position
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Position{}, false
	}
	if p.Lat == 0 && p.Lng == 0 {
		return Position{}, false
	}
	return p, true
}

// SamePlace 判断两坐标是否同一地点。
// 目前沿用线上行为：浮点精确相等。坐标经过任何重算都会失配，
// 换成小 epsilon 比较或预置地点 id 是候选改法，但行为变化需显式决策。
func (p Position) SamePlace(other Position) bool {
	return p.Lat == other.Lat && p.Lng == other.Lng
}
