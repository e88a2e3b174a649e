package serverconfig

type Config struct {
	HTTPServer  HTTPServerConfig  `yaml:"httpserver" mapstructure:"httpserver"`
	RecordStore RecordStoreConfig `yaml:"recordstore" mapstructure:"recordstore"`
	MongoDB     MongoDBConfig     `yaml:"mongodb" mapstructure:"mongodb"`
	WorldAPI    WorldAPIConfig    `yaml:"worldapi" mapstructure:"worldapi"`
	Mood        MoodConfig        `yaml:"mood" mapstructure:"mood"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Snapshot    SnapshotConfig    `yaml:"snapshot" mapstructure:"snapshot"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
}

type HTTPServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
}

// RecordStoreConfig 选择记录库后端：
// - backend=http：外部字段式记录库（REST + 过滤公式）
// - backend=mongodb：自建 Mongo 镜像库（同一套过滤表达式编译为 bson）
type RecordStoreConfig struct {
	Backend  string `yaml:"backend" mapstructure:"backend"`
	BaseURL  string `yaml:"base_url" mapstructure:"base_url"`
	APIKey   string `yaml:"api_key" mapstructure:"api_key"`
	TimeoutS int    `yaml:"timeout_s" mapstructure:"timeout_s"`
}

type MongoDBConfig struct {
	URI             string `yaml:"uri" mapstructure:"uri"`
	Database        string `yaml:"database" mapstructure:"database"`
	ConnectTimeoutS int    `yaml:"connect_timeout_s" mapstructure:"connect_timeout_s"`
}

type WorldAPIConfig struct {
	BaseURL  string `yaml:"base_url" mapstructure:"base_url"`
	TimeoutS int    `yaml:"timeout_s" mapstructure:"timeout_s"`
}

type MoodConfig struct {
	BaseURL  string `yaml:"base_url" mapstructure:"base_url"`
	TimeoutS int    `yaml:"timeout_s" mapstructure:"timeout_s"`
}

// CacheConfig 的三个 TTL 分别对应：地块几何、单建筑资源明细、整张快照。
type CacheConfig struct {
	ParcelTTLMin    int `yaml:"parcel_ttl_min" mapstructure:"parcel_ttl_min"`
	StructureTTLMin int `yaml:"structure_ttl_min" mapstructure:"structure_ttl_min"`
	SnapshotTTLMin  int `yaml:"snapshot_ttl_min" mapstructure:"snapshot_ttl_min"`
}

type SnapshotConfig struct {
	// RelationshipLimit 是亲密关系榜的截断上限，缺省 20。
	RelationshipLimit int `yaml:"relationship_limit" mapstructure:"relationship_limit"`
	// WatchIntervalS 是 websocket watch 推送间隔（秒），缺省 60。
	WatchIntervalS int `yaml:"watch_interval_s" mapstructure:"watch_interval_s"`
}

type LogConfig struct {
	FileDir    string `yaml:"file_dir" mapstructure:"file_dir"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"` // days
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Level      string `yaml:"level" mapstructure:"level"` // debug/info/warn/error...
	Dev        bool   `yaml:"dev" mapstructure:"dev"`
}
