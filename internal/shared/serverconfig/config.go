package serverconfig

import (
	"os"
	"time"

	"Rialto/internal/shared/config"
)

const defaultConfigRelPath = "configs/conf.yml"

// todo 确认 Conf 热更新时的并发读取问题
var Conf Config

func Load() {
	config.Load(defaultConfigRelPath, &Conf)
	// 环境变量优先；未设置时回填配置中的 api_key，兼容本地开发场景。
	if os.Getenv("RECORD_STORE_API_KEY") == "" && Conf.RecordStore.APIKey != "" {
		_ = os.Setenv("RECORD_STORE_API_KEY", Conf.RecordStore.APIKey)
	}
}

// ParcelTTL 地块几何缓存有效期，缺省 10 分钟。
func (c CacheConfig) ParcelTTL() time.Duration {
	return minutesOr(c.ParcelTTLMin, 10)
}

// StructureTTL 单建筑资源明细缓存有效期，缺省 5 分钟。
func (c CacheConfig) StructureTTL() time.Duration {
	return minutesOr(c.StructureTTLMin, 5)
}

// SnapshotTTL 整张快照缓存有效期，缺省 3 分钟。
func (c CacheConfig) SnapshotTTL() time.Duration {
	return minutesOr(c.SnapshotTTLMin, 3)
}

func (c SnapshotConfig) Limit() int {
	if c.RelationshipLimit > 0 {
		return c.RelationshipLimit
	}
	return 20
}

func (c SnapshotConfig) WatchInterval() time.Duration {
	if c.WatchIntervalS > 0 {
		return time.Duration(c.WatchIntervalS) * time.Second
	}
	return time.Minute
}

func minutesOr(n, fallback int) time.Duration {
	if n > 0 {
		return time.Duration(n) * time.Minute
	}
	return time.Duration(fallback) * time.Minute
}
