package tracex

import (
	"context"
	"testing"
)

func TestTraceID_写入与读取(t *testing.T) {
	ctx := WithTraceID(context.Background(), "abc")
	got, ok := TraceIDFrom(ctx)
	if !ok || got != "abc" {
		t.Fatalf("TraceIDFrom got=%q ok=%v", got, ok)
	}
	if _, ok := SpanIDFrom(ctx); ok {
		t.Fatalf("未写入 span_id 不应读到")
	}
}

func TestNewTraceID_长度与随机性(t *testing.T) {
	a := NewTraceID()
	b := NewTraceID()
	if len(a) != 32 || len(b) != 32 {
		t.Fatalf("trace_id 应为 32 个 hex 字符，got=%d/%d", len(a), len(b))
	}
	if a == b {
		t.Fatalf("两次生成的 trace_id 不应相同")
	}
}
