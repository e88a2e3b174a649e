package recordstore

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// 过滤表达式以结构化节点表示，由各后端编译为自己的查询语言：
// HTTP 后端编译为文本公式（见 Formula），Mongo 后端编译为 bson。
// 字符串值的转义只发生在编译这一处，上层拼不出可注入的公式。

// Expr 是过滤表达式节点。
type Expr interface {
	expr()
}

type CmpOp string

const (
	OpEq     CmpOp = "="
	OpNe     CmpOp = "!="
	OpGt     CmpOp = ">"
	OpLt     CmpOp = "<"
	OpAfter  CmpOp = "after"  // 时间晚于
	OpBefore CmpOp = "before" // 时间早于
)

type CmpExpr struct {
	Field string
	Op    CmpOp
	Value any
}

type AndExpr struct{ Exprs []Expr }

type OrExpr struct{ Exprs []Expr }

type NotExpr struct{ Expr Expr }

func (CmpExpr) expr() {}
func (AndExpr) expr() {}
func (OrExpr) expr()  {}
func (NotExpr) expr() {}

func Eq(field string, value any) Expr { return CmpExpr{Field: field, Op: OpEq, Value: value} }
func Ne(field string, value any) Expr { return CmpExpr{Field: field, Op: OpNe, Value: value} }
func Gt(field string, value any) Expr { return CmpExpr{Field: field, Op: OpGt, Value: value} }
func Lt(field string, value any) Expr { return CmpExpr{Field: field, Op: OpLt, Value: value} }

func After(field string, t time.Time) Expr  { return CmpExpr{Field: field, Op: OpAfter, Value: t} }
func Before(field string, t time.Time) Expr { return CmpExpr{Field: field, Op: OpBefore, Value: t} }

func And(exprs ...Expr) Expr { return AndExpr{Exprs: exprs} }
func Or(exprs ...Expr) Expr  { return OrExpr{Exprs: exprs} }
func Not(e Expr) Expr        { return NotExpr{Expr: e} }

// Formula 把表达式编译为记录库的文本公式。
// nil 表达式编译为空串（不过滤）。
func Formula(e Expr) string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	writeExpr(&b, e)
	return b.String()
}

func writeExpr(b *strings.Builder, e Expr) {
	switch n := e.(type) {
	case CmpExpr:
		writeCmp(b, n)
	case AndExpr:
		writeGroup(b, "AND", n.Exprs)
	case OrExpr:
		writeGroup(b, "OR", n.Exprs)
	case NotExpr:
		b.WriteString("NOT(")
		writeExpr(b, n.Expr)
		b.WriteString(")")
	default:
		// 未知节点编译为恒假，宁可查空也不放行
		b.WriteString("FALSE()")
	}
}

func writeGroup(b *strings.Builder, op string, exprs []Expr) {
	switch len(exprs) {
	case 0:
		b.WriteString("TRUE()")
		return
	case 1:
		writeExpr(b, exprs[0])
		return
	}
	b.WriteString(op)
	b.WriteString("(")
	for i, e := range exprs {
		if i > 0 {
			b.WriteString(", ")
		}
		writeExpr(b, e)
	}
	b.WriteString(")")
}

func writeCmp(b *strings.Builder, n CmpExpr) {
	switch n.Op {
	case OpAfter, OpBefore:
		fn := "IS_AFTER"
		if n.Op == OpBefore {
			fn = "IS_BEFORE"
		}
		b.WriteString(fn)
		b.WriteString("({")
		b.WriteString(n.Field)
		b.WriteString("}, ")
		b.WriteString(formatValue(n.Value))
		b.WriteString(")")
	default:
		b.WriteString("{")
		b.WriteString(n.Field)
		b.WriteString("}")
		b.WriteString(string(n.Op))
		b.WriteString(formatValue(n.Value))
	}
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "BLANK()"
	case string:
		return "'" + escape(x) + "'"
	case bool:
		if x {
			return "TRUE()"
		}
		return "FALSE()"
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Time:
		return "'" + x.UTC().Format(time.RFC3339) + "'"
	default:
		return "'" + escape(fmt.Sprintf("%v", x)) + "'"
	}
}

// escape 处理公式语言的注入字符：反斜杠和单引号。
func escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return s
}
