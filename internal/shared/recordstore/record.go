package recordstore

import (
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// Record 是记录库里一条带字段集的记录（外部字段式存储的通用形态）。
// 字段名与类型由各表自己约定，这里不做 schema 校验。
type Record struct {
	ID        string
	Fields    map[string]any
	CreatedAt time.Time
}

// Decode 把 Fields 弱类型解码进领域结构（tag: record）。
// 弱类型是刻意的：记录库里数字可能以字符串存储，缺字段视为零值。
func (r Record) Decode(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "record",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeHookFunc(time.RFC3339),
	})
	if err != nil {
		return err
	}
	return dec.Decode(r.Fields)
}

// Str 返回字符串字段，缺失或类型不符返回空串。
func (r Record) Str(key string) string {
	s, _ := r.Fields[key].(string)
	return s
}

// Float 返回数值字段，容忍 int/float/可解析字符串，失败返回 0。
func (r Record) Float(key string) float64 {
	var out float64
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return 0
	}
	if err := dec.Decode(r.Fields[key]); err != nil {
		return 0
	}
	return out
}
