package recordstore

// SelectOptions 是查询的附加参数，各后端自行映射。
type SelectOptions struct {
	SortField  string
	SortDesc   bool
	MaxRecords int
}

type SelectOption func(*SelectOptions)

func WithSort(field string, desc bool) SelectOption {
	return func(o *SelectOptions) {
		o.SortField = field
		o.SortDesc = desc
	}
}

func WithMaxRecords(n int) SelectOption {
	return func(o *SelectOptions) {
		o.MaxRecords = n
	}
}

// BuildOptions 聚合可变参数，零值表示"不排序、不限量"。
func BuildOptions(opts []SelectOption) SelectOptions {
	var out SelectOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&out)
		}
	}
	return out
}
