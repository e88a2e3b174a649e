package cachex

import (
	"errors"
	"testing"
	"time"
)

func TestGetOrCompute_有效期内只计算一次(t *testing.T) {
	now := time.Unix(1000, 0)
	c := New[string, int](3 * time.Minute).WithClock(func() time.Time { return now })

	calls := 0
	compute := func() (int, error) {
		calls++
		return 42, nil
	}

	v1, err := c.GetOrCompute("k", compute)
	if err != nil || v1 != 42 {
		t.Fatalf("GetOrCompute v=%d err=%v", v1, err)
	}
	now = now.Add(2 * time.Minute)
	v2, err := c.GetOrCompute("k", compute)
	if err != nil || v2 != 42 {
		t.Fatalf("GetOrCompute v=%d err=%v", v2, err)
	}
	if calls != 1 {
		t.Fatalf("TTL 内期望只计算一次，calls=%d", calls)
	}
}

func TestGetOrCompute_过期后重新计算(t *testing.T) {
	now := time.Unix(1000, 0)
	c := New[string, int](3 * time.Minute).WithClock(func() time.Time { return now })

	calls := 0
	compute := func() (int, error) {
		calls++
		return calls, nil
	}

	if v, _ := c.GetOrCompute("k", compute); v != 1 {
		t.Fatalf("首次 v=%d", v)
	}
	now = now.Add(3 * time.Minute) // 正好过期边界：now-storedAt >= ttl
	if v, _ := c.GetOrCompute("k", compute); v != 2 {
		t.Fatalf("过期后期望重算，v=%d", v)
	}
	if calls != 2 {
		t.Fatalf("calls=%d", calls)
	}
}

func TestRefresh_强制重算并刷新时间戳(t *testing.T) {
	now := time.Unix(1000, 0)
	c := New[string, string](10 * time.Minute).WithClock(func() time.Time { return now })

	if _, err := c.GetOrCompute("k", func() (string, error) { return "old", nil }); err != nil {
		t.Fatal(err)
	}
	first, ok := c.StoredAt("k")
	if !ok {
		t.Fatalf("期望存在缓存条目")
	}

	now = now.Add(time.Minute)
	v, err := c.Refresh("k", func() (string, error) { return "new", nil })
	if err != nil || v != "new" {
		t.Fatalf("Refresh v=%q err=%v", v, err)
	}
	second, _ := c.StoredAt("k")
	if !second.After(first) {
		t.Fatalf("期望 Refresh 后时间戳更新，first=%v second=%v", first, second)
	}

	// 后续读取拿到的是强制重算后的值
	got, _ := c.GetOrCompute("k", func() (string, error) { return "stale", nil })
	if got != "new" {
		t.Fatalf("期望写穿后命中新值，got=%q", got)
	}
}

func TestGetOrCompute_计算失败不写缓存(t *testing.T) {
	now := time.Unix(1000, 0)
	c := New[string, int](time.Minute).WithClock(func() time.Time { return now })

	boom := errors.New("boom")
	if _, err := c.GetOrCompute("k", func() (int, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Fatalf("期望透传 compute 错误，err=%v", err)
	}
	// 失败不落缓存：下一次仍会计算
	v, err := c.GetOrCompute("k", func() (int, error) { return 7, nil })
	if err != nil || v != 7 {
		t.Fatalf("v=%d err=%v", v, err)
	}
}

func TestGetOrCompute_不同key互不影响(t *testing.T) {
	c := New[string, int](time.Minute)
	a, _ := c.GetOrCompute("a", func() (int, error) { return 1, nil })
	b, _ := c.GetOrCompute("b", func() (int, error) { return 2, nil })
	if a != 1 || b != 2 {
		t.Fatalf("a=%d b=%d", a, b)
	}
}
