package domain

import "time"

// Snapshot 是本引擎的聚合产物：一位公民当下的完整处境。
// 构建后只读；缓存过期或被强制刷新后整体丢弃重建。
// 子查询失败的字段就是空值，快照里不带失败标记（已知取舍）。
type Snapshot struct {
	GeneratedAt time.Time `json:"generated_at"`

	Citizen Citizen `json:"citizen"`
	Mood    Mood    `json:"mood"`

	// 位置衍生字段：所在建筑与同位公民，均为请求期计算，不落库。
	AtStructure    *Structure `json:"at_structure,omitempty"`
	CitizensNearby []Citizen  `json:"citizens_nearby"`
	Workplace      *Structure `json:"workplace,omitempty"`
	Home           *Structure `json:"home,omitempty"`

	OwnedParcels    []ParcelHolding  `json:"owned_parcels"`
	OwnedStructures []OwnedStructure `json:"owned_structures"`

	Contracts []Contract `json:"contracts"`
	Loans     []Loan     `json:"loans"`
	Guild     *Guild     `json:"guild,omitempty"`

	Relationships []Relationship `json:"relationships"`
	Problems      []Problem      `json:"problems"`
	Messages      []Message      `json:"messages"`
	// Thoughts 是发件人等于收件人的留言，视作公民的自我独白。
	Thoughts []Message `json:"thoughts"`

	ActiveSchemes []Scheme `json:"active_schemes"`
	PastSchemes   []Scheme `json:"past_schemes"`

	RecentActivities  []Activity `json:"recent_activities"`
	PlannedActivities []Activity `json:"planned_activities"`

	Weather  *Weather  `json:"weather,omitempty"`
	Bulletin *Bulletin `json:"bulletin,omitempty"`
	// TradeReports 只对 Forestieri 填充，且经过可见性门限过滤。
	TradeReports []Report `json:"trade_reports,omitempty"`
}

// NewSnapshot 返回列表字段全部初始化为空列表的快照底座。
// 列表字段序列化必须是 []，不是 null：子查询失败降级后保持空列表，
// 与"确实没有"在输出上不可区分。
func NewSnapshot(c Citizen) *Snapshot {
	return &Snapshot{
		Citizen:           c,
		CitizensNearby:    []Citizen{},
		OwnedParcels:      []ParcelHolding{},
		OwnedStructures:   []OwnedStructure{},
		Contracts:         []Contract{},
		Loans:             []Loan{},
		Relationships:     []Relationship{},
		Problems:          []Problem{},
		Messages:          []Message{},
		Thoughts:          []Message{},
		ActiveSchemes:     []Scheme{},
		PastSchemes:       []Scheme{},
		RecentActivities:  []Activity{},
		PlannedActivities: []Activity{},
	}
}

// OwnedStructure 是快照里的一处房产；商业建筑附带资源明细。
type OwnedStructure struct {
	Structure Structure           `json:"structure"`
	Resources *StructureResources `json:"resources,omitempty"`
}

// Mood 是外部心境服务的计算结果。
type Mood struct {
	Label          string             `json:"label"`
	Intensity      int                `json:"intensity"` // 0-10
	Description    string             `json:"description"`
	PrimaryEmotion string             `json:"primary_emotion"`
	Breakdown      map[string]float64 `json:"breakdown,omitempty"`
}

// NeutralMood 是心境服务不可用时的兜底。
func NeutralMood() Mood {
	return Mood{
		Label:          "neutral",
		Intensity:      5,
		PrimaryEmotion: "calm",
		Description:    "Going about the day without strong feelings.",
	}
}

type Guild struct {
	ID          string  `json:"id"`
	Name        string  `json:"name" record:"name"`
	Description string  `json:"description,omitempty" record:"description"`
	EntryFee    float64 `json:"entry_fee" record:"entry_fee"`
}

type Problem struct {
	ID          string    `json:"id"`
	Citizen     string    `json:"citizen" record:"citizen"`
	Type        string    `json:"type" record:"type"`
	Title       string    `json:"title" record:"title"`
	Severity    string    `json:"severity" record:"severity"`
	Status      string    `json:"status" record:"status"`
	CreatedAt   time.Time `json:"created_at" record:"created_at"`
	Description string    `json:"description,omitempty" record:"description"`
}

type Message struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender" record:"sender"`
	Receiver  string    `json:"receiver" record:"receiver"`
	Content   string    `json:"content" record:"content"`
	Type      string    `json:"type,omitempty" record:"type"`
	CreatedAt time.Time `json:"created_at" record:"created_at"`
}

// IsThought 判断是否自我独白（发件人即收件人）。
func (m Message) IsThought() bool {
	return m.Sender != "" && m.Sender == m.Receiver
}

type Activity struct {
	ID      string    `json:"id"`
	Citizen string    `json:"citizen" record:"citizen"`
	Type    string    `json:"type" record:"type"`
	Status  string    `json:"status" record:"status"`
	StartAt time.Time `json:"start_at" record:"start_at"`
	EndAt   time.Time `json:"end_at" record:"end_at"`
	Notes   string    `json:"notes,omitempty" record:"notes"`
}

type Weather struct {
	Condition   string  `json:"condition"`
	TempC       float64 `json:"temp_c"`
	WindKph     float64 `json:"wind_kph"`
	Humidity    float64 `json:"humidity"`
	Description string  `json:"description,omitempty"`
}

type Bulletin struct {
	ID          string    `json:"id"`
	Title       string    `json:"title" record:"title"`
	Body        string    `json:"body" record:"body"`
	PublishedAt time.Time `json:"published_at" record:"published_at"`
}

// Report 是海外贸易快报，ID 稳定、可作可见性门限的种子。
type Report struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Content     string    `json:"content"`
	OriginCity  string    `json:"origin_city"`
	PublishedAt time.Time `json:"published_at"`
}
