package domain

import (
	"fmt"
	"time"
)

// Contract 是两位公民间的双边资源契约。
// buyer/seller 是对称命名，描述必须相对观察者解析成第一人称。
type Contract struct {
	ID           string    `json:"id"`
	Type         string    `json:"type" record:"type"`
	Buyer        string    `json:"buyer" record:"buyer"`
	Seller       string    `json:"seller" record:"seller"`
	ResourceType string    `json:"resource_type" record:"resource_type"`
	PricePerUnit float64   `json:"price_per_unit" record:"price_per_unit"`
	Amount       float64   `json:"amount" record:"amount"`
	Status       string    `json:"status" record:"status"`
	CreatedAt    time.Time `json:"created_at" record:"created_at"`
	EndAt        time.Time `json:"end_at" record:"end_at"`
}

// Counterparty 返回相对 viewer 的对方。
func (c Contract) Counterparty(viewer string) string {
	if viewer == c.Buyer {
		return c.Seller
	}
	if viewer == c.Seller {
		return c.Buyer
	}
	return ""
}

// DescribeFor 生成相对 viewer 的第一人称描述。
func (c Contract) DescribeFor(viewer string) string {
	switch viewer {
	case c.Buyer:
		return fmt.Sprintf("buying %s from %s at %.2f/unit", c.ResourceType, c.Seller, c.PricePerUnit)
	case c.Seller:
		return fmt.Sprintf("selling %s to %s at %.2f/unit", c.ResourceType, c.Buyer, c.PricePerUnit)
	default:
		return fmt.Sprintf("%s sells %s to %s", c.Seller, c.ResourceType, c.Buyer)
	}
}

// Loan 是两位公民（或公民与官库）间的借贷。
type Loan struct {
	ID             string    `json:"id"`
	Lender         string    `json:"lender" record:"lender"`
	Borrower       string    `json:"borrower" record:"borrower"`
	Principal      float64   `json:"principal" record:"principal"`
	InterestRate   float64   `json:"interest_rate" record:"interest_rate"`
	RemainingDebt  float64   `json:"remaining_debt" record:"remaining_debt"`
	Status         string    `json:"status" record:"status"`
	CreatedAt      time.Time `json:"created_at" record:"created_at"`
	FinalPaymentAt time.Time `json:"final_payment_at" record:"final_payment_at"`
}

// DescribeFor 生成相对 viewer 的第一人称描述。
func (l Loan) DescribeFor(viewer string) string {
	switch viewer {
	case l.Lender:
		return fmt.Sprintf("lent %.0f to %s, %.0f outstanding", l.Principal, l.Borrower, l.RemainingDebt)
	case l.Borrower:
		return fmt.Sprintf("owe %.0f to %s of %.0f borrowed", l.RemainingDebt, l.Lender, l.Principal)
	default:
		return fmt.Sprintf("%s lent %.0f to %s", l.Lender, l.Principal, l.Borrower)
	}
}
