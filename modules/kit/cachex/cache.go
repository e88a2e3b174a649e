package cachex

import (
	"sync"
	"time"
)

// Cache 是按键缓存"有效期内直接复用、过期重算"的通用 TTL 缓存。
//
// 约束：
// - 进程内共享，允许并发读写；同 key 并发重算不做 singleflight，
//   最后写入者胜出（重复算一次的代价可接受，阻塞合并不值得）
// - 只缓存 compute 返回 err==nil 的结果；希望"缓存失败结论"的调用方
//   （例如查不到地块几何时避免反复打挂掉的依赖）应当在 compute 内
//   吞掉错误并返回哨兵空值
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]entry[V]
	ttl     time.Duration

	// now 可注入，测试用；为 nil 时使用 time.Now。
	now func() time.Time
}

type entry[V any] struct {
	value    V
	storedAt time.Time
}

func New[K comparable, V any](ttl time.Duration) *Cache[K, V] {
	return &Cache[K, V]{
		entries: make(map[K]entry[V]),
		ttl:     ttl,
	}
}

// WithClock 替换时间源，返回自身，便于测试链式构造。
func (c *Cache[K, V]) WithClock(now func() time.Time) *Cache[K, V] {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
	return c
}

// GetOrCompute 在有效期内返回缓存值（不调用 compute）；
// 否则调用 compute，成功则以当前时间覆盖写入并返回。
func (c *Cache[K, V]) GetOrCompute(key K, compute func() (V, error)) (V, error) {
	if v, ok := c.lookup(key); ok {
		return v, nil
	}
	return c.computeAndStore(key, compute)
}

// Refresh 无视现有缓存强制重算；成功后照常写穿缓存（时间戳刷新）。
func (c *Cache[K, V]) Refresh(key K, compute func() (V, error)) (V, error) {
	return c.computeAndStore(key, compute)
}

// StoredAt 返回 key 当前缓存的写入时间（存在且未过期时 ok==true）。
func (c *Cache[K, V]) StoredAt(key K) (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || c.clock()().Sub(e.storedAt) >= c.ttl {
		return time.Time{}, false
	}
	return e.storedAt, true
}

func (c *Cache[K, V]) lookup(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || c.clock()().Sub(e.storedAt) >= c.ttl {
		var zero V
		return zero, false
	}
	return e.value, true
}

func (c *Cache[K, V]) computeAndStore(key K, compute func() (V, error)) (V, error) {
	// compute 期间不持锁：外部是网络 IO，持锁会把无关 key 一起阻塞。
	v, err := compute()
	if err != nil {
		var zero V
		return zero, err
	}
	c.mu.Lock()
	c.entries[key] = entry[V]{value: v, storedAt: c.clock()()}
	c.mu.Unlock()
	return v, nil
}

func (c *Cache[K, V]) clock() func() time.Time {
	if c.now != nil {
		return c.now
	}
	return time.Now
}
