package handler

import (
	"strings"
	"testing"

	"Rialto/internal/citizen/domain"
)

func TestFormatSnapshot_空字段整段省略(t *testing.T) {
	snap := sampleSnapshot()
	out := FormatSnapshot(snap)

	if !strings.Contains(out, "Marco Polo") || !strings.Contains(out, domain.ClassCittadini) {
		t.Fatalf("头部缺失: %s", out)
	}
	for _, section := range []string{"## Contracts", "## Loans", "## Problems", "## Trade reports"} {
		if strings.Contains(out, section) {
			t.Fatalf("空字段不应渲染 %s", section)
		}
	}
}

func TestFormatSnapshot_契约用第一人称(t *testing.T) {
	snap := sampleSnapshot()
	snap.Contracts = []domain.Contract{{
		Buyer: "marco", Seller: "luca", ResourceType: "timber", PricePerUnit: 3.5,
	}}
	snap.Loans = []domain.Loan{{
		Lender: "banca", Borrower: "marco", Principal: 500, RemainingDebt: 320,
	}}
	out := FormatSnapshot(snap)

	if !strings.Contains(out, "buying timber from luca") {
		t.Fatalf("契约未按买方视角描述: %s", out)
	}
	if !strings.Contains(out, "owe 320 to banca") {
		t.Fatalf("借贷未按借方视角描述: %s", out)
	}
}

func TestFormatSnapshot_地块带空余统计(t *testing.T) {
	snap := sampleSnapshot()
	snap.OwnedParcels = []domain.ParcelHolding{{
		Parcel: domain.Parcel{HistoricalName: "Calle dei Fabbri", District: "San Marco"},
		Occupancy: domain.Occupancy{
			TotalBuilding:      3,
			FreeBuildingPoints: []domain.AnchorPoint{{ID: "pt2"}, {ID: "pt3"}},
		},
	}}
	out := FormatSnapshot(snap)
	if !strings.Contains(out, "2/3 building points free") {
		t.Fatalf("空余统计缺失: %s", out)
	}
}

func TestFormatSnapshot_nil快照返回空串(t *testing.T) {
	if FormatSnapshot(nil) != "" {
		t.Fatal("nil 快照应渲染为空")
	}
}
