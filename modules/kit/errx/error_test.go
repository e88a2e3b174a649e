package errx

import (
	"errors"
	"testing"
)

func TestError_Is_只按code比较语义(t *testing.T) {
	e1 := NewBiz("BIZ_X", "x").WithData("k", "v").WithCause(errors.New("cause1"))
	e2 := NewBiz("BIZ_X", "x2").WithData("k2", "v2").WithCause(errors.New("cause2"))
	if !errors.Is(e1, e2) {
		t.Fatalf("期望 errors.Is(e1, e2)==true（只按 code 判断语义），e1=%v e2=%v", e1, e2)
	}
	if errors.Is(e1, NewBiz("BIZ_Y", "x")) {
		t.Fatalf("期望不同 code 语义不同")
	}
}

func TestError_业务错误不捕获栈_保留cause链(t *testing.T) {
	cause := errors.New("store down")
	err := NewBiz("CITIZEN_NOT_FOUND", "公民不存在").WithCause(cause)
	if got := err.Stack(); got != nil {
		t.Fatalf("期望业务错误不捕获栈，got=%v", got)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("期望 cause 链不丢，err=%v", err)
	}
}

func TestError_系统错误捕获一次栈_不重复捕获(t *testing.T) {
	cause := errors.New("io timeout")
	sys := NewSys("SERVICE_UNAVAILABLE", "记录库不可用").WithCause(cause)
	if got := sys.Stack(); len(got) == 0 {
		t.Fatalf("期望系统错误在首次 wrap 处捕获栈，got=%v", got)
	}

	// 再包一层：下层已有栈，上层不应重复捕获
	sys2 := NewSys("INTERNAL_ERROR", "装配失败").WithCause(sys)
	if got := sys2.Stack(); got != nil {
		t.Fatalf("期望上层系统错误不重复捕获栈，got=%v", got)
	}
}

func TestError_Data_防止外部修改(t *testing.T) {
	err := NewBiz("BIZ_X", "").WithData("citizen_id", "c1")
	m := err.Data()
	m["citizen_id"] = "mutated"
	if got := err.Data()["citizen_id"]; got != "c1" {
		t.Fatalf("期望 Data() 返回拷贝，got=%v", got)
	}
}

func TestError_Reason透传(t *testing.T) {
	r := reason("LOANS_QUERY_FAIL")
	err := NewSys("SERVICE_UNAVAILABLE", "").WithReason(r)
	if got := err.Reason(); got != "LOANS_QUERY_FAIL" {
		t.Fatalf("期望 reason 透传，got=%q", got)
	}
}

type reason string

func (r reason) ReasonCode() string { return string(r) }
