package errx

// 这里定义"跨组件统一"的系统类错误码。
//
// 约束：
// - 系统/技术类错误归一化到这几个码上（便于告警、观测、排障）
// - 业务域错误码（例如 CITIZEN_NOT_FOUND）由各业务模块自行定义

const (
	// CodeInternal 表示服务内部不可预期错误（兜底）。
	CodeInternal Code = "INTERNAL_ERROR"
	// CodeUnavailable 表示依赖不可用（记录库/外部服务/网络异常等）。
	CodeUnavailable Code = "SERVICE_UNAVAILABLE"
	// CodeTimeout 表示请求/依赖调用超时。
	CodeTimeout Code = "TIMEOUT"
	// CodeNotFound 表示请求的主体不存在。
	CodeNotFound Code = "NOT_FOUND"
	// CodeBadRequest 表示请求参数错误。
	CodeBadRequest Code = "BAD_REQUEST"
)

// 统一系统类哨兵错误（通过 WithData/WithCause 派生新对象，禁止原地修改）。
var (
	ErrInternal    = NewSys(CodeInternal, "服务器内部错误")
	ErrUnavailable = NewSys(CodeUnavailable, "服务不可用")
	ErrTimeout     = NewSys(CodeTimeout, "请求超时")
	ErrNotFound    = NewBiz(CodeNotFound, "请求主体不存在")
	ErrBadRequest  = NewBiz(CodeBadRequest, "请求参数错误")
)
