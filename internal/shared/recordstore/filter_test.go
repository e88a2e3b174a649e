package recordstore

import (
	"testing"
	"time"
)

func TestFormula_等值与逻辑组合(t *testing.T) {
	e := And(
		Eq("citizen", "marco"),
		Or(
			Eq("status", "active"),
			Not(Eq("status", "ended")),
		),
	)
	got := Formula(e)
	want := "AND({citizen}='marco', OR({status}='active', NOT({status}='ended')))"
	if got != want {
		t.Fatalf("Formula:\n got=%s\nwant=%s", got, want)
	}
}

func TestFormula_单引号转义(t *testing.T) {
	got := Formula(Eq("name", "Ca' d'Oro"))
	want := `{name}='Ca\' d\'Oro'`
	if got != want {
		t.Fatalf("Formula: got=%s want=%s", got, want)
	}
	// 反斜杠先转义，否则可借 \ 逃出引号
	got = Formula(Eq("name", `a\'b`))
	want = `{name}='a\\\'b'`
	if got != want {
		t.Fatalf("Formula: got=%s want=%s", got, want)
	}
}

func TestFormula_时间比较(t *testing.T) {
	ts := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	got := Formula(After("executed_at", ts))
	want := "IS_AFTER({executed_at}, '2026-08-28T12:00:00Z')"
	if got != want {
		t.Fatalf("Formula: got=%s want=%s", got, want)
	}
}

func TestFormula_数值与布尔(t *testing.T) {
	if got := Formula(Gt("ducats", 1000)); got != "{ducats}>1000" {
		t.Fatalf("got=%s", got)
	}
	if got := Formula(Eq("in_city", true)); got != "{in_city}=TRUE()" {
		t.Fatalf("got=%s", got)
	}
	if got := Formula(Lt("trust", 12.5)); got != "{trust}<12.5" {
		t.Fatalf("got=%s", got)
	}
}

func TestFormula_空与单元素分组(t *testing.T) {
	if got := Formula(nil); got != "" {
		t.Fatalf("nil 表达式应编译为空串，got=%s", got)
	}
	if got := Formula(And()); got != "TRUE()" {
		t.Fatalf("got=%s", got)
	}
	if got := Formula(And(Eq("a", "b"))); got != "{a}='b'" {
		t.Fatalf("单元素 AND 应去掉包装，got=%s", got)
	}
}

func TestRecord_Decode_弱类型(t *testing.T) {
	r := Record{
		ID: "rec1",
		Fields: map[string]any{
			"username": "marco",
			"ducats":   "1500.5", // 字符串存储的数字
		},
	}
	var out struct {
		Username string  `record:"username"`
		Ducats   float64 `record:"ducats"`
		Missing  string  `record:"missing"`
	}
	if err := r.Decode(&out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out.Username != "marco" || out.Ducats != 1500.5 || out.Missing != "" {
		t.Fatalf("Decode 结果不符：%+v", out)
	}
}

func TestRecord_Float_容忍类型(t *testing.T) {
	r := Record{Fields: map[string]any{"a": 3, "b": "4.5", "c": "abc"}}
	if r.Float("a") != 3 || r.Float("b") != 4.5 {
		t.Fatalf("Float: a=%v b=%v", r.Float("a"), r.Float("b"))
	}
	if r.Float("c") != 0 || r.Float("missing") != 0 {
		t.Fatalf("非法/缺失字段应为 0")
	}
}
