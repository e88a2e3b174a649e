package app

type Reason struct {
	Code    string
	Message string
}

func (r Reason) ReasonCode() string {
	return r.Code
}

func NewReason(c, m string) Reason {
	return Reason{
		Code:    c,
		Message: m,
	}
}

var (
	// 技术错误 reason（服务内枚举），用于日志与排障。
	ReasonCitizenQueryFail   = NewReason("CITIZEN_QUERY_FAIL", "公民身份查询失败")
	ReasonAssembleCancelled  = NewReason("ASSEMBLE_CANCELLED", "快照装配被取消")
	ReasonGeometryLookupFail = NewReason("GEOMETRY_LOOKUP_FAIL", "地块几何查询失败")
	ReasonResourceFetchFail  = NewReason("RESOURCE_FETCH_FAIL", "建筑资源查询失败")
	ReasonMoodComputeFail    = NewReason("MOOD_COMPUTE_FAIL", "心境计算失败")
)
