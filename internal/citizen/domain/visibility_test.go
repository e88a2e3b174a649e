package domain

import (
	"fmt"
	"testing"
)

func TestReportVisible_确定性(t *testing.T) {
	first := ReportVisible("report-1", "marco")
	for i := 0; i < 100; i++ {
		if ReportVisible("report-1", "marco") != first {
			t.Fatalf("同一 (快报, 观察者) 的判定必须恒定")
		}
	}
}

func TestReportVisible_顺序敏感(t *testing.T) {
	// 种子是拼接串，(a,b) 与 (b,a) 一般不同；至少要找得到不同的样例
	diff := false
	for i := 0; i < 50 && !diff; i++ {
		a, b := fmt.Sprintf("r%d", i), fmt.Sprintf("v%d", i)
		diff = ReportVisible(a, b) != ReportVisible(b, a)
	}
	if !diff {
		t.Fatalf("期望拼接顺序影响判定结果")
	}
}

func TestReportVisible_比例趋近一半(t *testing.T) {
	const n = 10000
	visible := 0
	for i := 0; i < n; i++ {
		if ReportVisible("report-42", fmt.Sprintf("viewer-%d", i)) {
			visible++
		}
	}
	ratio := float64(visible) / n
	if ratio < 0.45 || ratio > 0.55 {
		t.Fatalf("可见比例应趋近 50%%，got=%.3f", ratio)
	}
}

func TestReportVisible_不同观察者子集有别(t *testing.T) {
	same := true
	for i := 0; i < 50 && same; i++ {
		id := fmt.Sprintf("report-%d", i)
		same = ReportVisible(id, "marco") == ReportVisible(id, "antonio")
	}
	if same {
		t.Fatalf("不同观察者看到的子集不应完全一致")
	}
}
